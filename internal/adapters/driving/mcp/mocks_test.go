package mcp

import (
	"context"

	"github.com/presentai/presentai/internal/core/domain"
)

// mockExportService is a mock implementation of driving.ExportService.
type mockExportService struct {
	result  *domain.ExportResult
	err     error
	lastReq domain.ExportRequest
}

func (m *mockExportService) Export(_ context.Context, req domain.ExportRequest) (*domain.ExportResult, error) {
	m.lastReq = req
	return m.result, m.err
}

func (m *mockExportService) ExportDocument(
	_ context.Context,
	_ *domain.Presentation,
	_ domain.ExportOptions,
) (*domain.ExportResult, error) {
	return m.result, m.err
}

// mockPresentationService is a mock implementation of driving.PresentationService.
type mockPresentationService struct {
	summaries    []domain.PresentationSummary
	presentation *domain.Presentation
	err          error
	lastOwner    string
}

func (m *mockPresentationService) List(_ context.Context, ownerID string) ([]domain.PresentationSummary, error) {
	m.lastOwner = ownerID
	return m.summaries, m.err
}

func (m *mockPresentationService) Get(_ context.Context, ownerID, _ string) (*domain.Presentation, error) {
	m.lastOwner = ownerID
	return m.presentation, m.err
}

func (m *mockPresentationService) Import(_ context.Context, _ string, _ []byte) (*domain.Presentation, error) {
	return m.presentation, m.err
}

func (m *mockPresentationService) Rename(_ context.Context, _, _, _ string) error {
	return m.err
}

func (m *mockPresentationService) Duplicate(_ context.Context, _, _ string) (*domain.Presentation, error) {
	return m.presentation, m.err
}

func (m *mockPresentationService) Delete(_ context.Context, _, _ string) error {
	return m.err
}

// mockThemeService is a mock implementation of driving.ThemeService.
type mockThemeService struct {
	themes []domain.Theme
	err    error
}

func (m *mockThemeService) List(_ context.Context) ([]domain.Theme, error) {
	return m.themes, m.err
}

func (m *mockThemeService) Get(_ context.Context, name string) (*domain.Theme, error) {
	for i := range m.themes {
		if m.themes[i].Name == name {
			return &m.themes[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockThemeService) Resolve(ctx context.Context, name string) (*domain.Theme, error) {
	return m.Get(ctx, name)
}

func validPorts() *Ports {
	return &Ports{
		Export:       &mockExportService{},
		Presentation: &mockPresentationService{},
		OwnerID:      "user-1",
	}
}
