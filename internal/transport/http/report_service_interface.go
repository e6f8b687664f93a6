package http

import (
	"context"

	"rollcall/internal/services"
	"rollcall/pkg/contracts/domain"
)

// ReportServiceInterface defines the interface for report operations
type ReportServiceInterface interface {
	Generate(ctx context.Context, req domain.ReportRequest) (*services.GenerateResult, error)
	ListReports(ctx context.Context) ([]domain.Artifact, error)
	ReportPath(ctx context.Context, name string) (string, error)
}
