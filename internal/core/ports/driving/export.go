package driving

import (
	"context"

	"github.com/presentai/presentai/internal/core/domain"
)

// ExportService exports presentations to slide-deck archives.
type ExportService interface {
	// Export loads a stored presentation owned by the requester and exports it.
	// Failures are always *domain.ExportError.
	Export(ctx context.Context, req domain.ExportRequest) (*domain.ExportResult, error)

	// ExportDocument exports an in-memory presentation snapshot.
	ExportDocument(ctx context.Context, p *domain.Presentation, opts domain.ExportOptions) (*domain.ExportResult, error)
}
