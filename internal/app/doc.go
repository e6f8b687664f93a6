// Package app wires the attendance report service together: configuration,
// logging, the WebSocket hub, report and health services, and the chi HTTP
// router. The Application type owns the server lifecycle from startup
// through graceful shutdown.
package app
