// Package services contains the business logic between the HTTP
// transport and the attendance, files and exporter packages.
//
// ReportService drives a full report run: archive discovery, notebook
// parsing with skip-and-warn on corrupt documents, aggregation, view
// construction and concurrent export. HealthService answers liveness
// and readiness probes.
package services
