package mcp

import (
	"context"
	"errors"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/presentai/presentai/internal/core/domain"
)

// ExportInput is the input schema for the export_presentation tool.
type ExportInput struct {
	PresentationID string            `json:"presentation_id" jsonschema:"id of the presentation to export"`
	FileName       string            `json:"file_name,omitempty" jsonschema:"file name to use when the presentation has no title"`
	Theme          string            `json:"theme,omitempty" jsonschema:"theme name overriding the presentation's theme"`
	Colors         map[string]string `json:"colors,omitempty" jsonschema:"hex colors by role (primary, secondary, accent, background, text, heading, muted)"`
}

// ExportOutput is the output schema for the export_presentation tool.
// Export failures are reported in Error rather than as a tool error.
type ExportOutput struct {
	Success     bool                `json:"success"`
	Data        string              `json:"data,omitempty"`
	FileName    string              `json:"fileName,omitempty"`
	Degraded    bool                `json:"degraded"`
	Diagnostics []domain.Diagnostic `json:"diagnostics,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// ListPresentationsInput is the (empty) input schema for list_presentations.
type ListPresentationsInput struct{}

// ListPresentationsOutput is the output schema for list_presentations.
type ListPresentationsOutput struct {
	Presentations []PresentationOutput `json:"presentations"`
	Count         int                  `json:"count"`
}

// PresentationOutput represents one stored presentation.
type PresentationOutput struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Theme      string `json:"theme,omitempty"`
	SlideCount int    `json:"slide_count"`
	UpdatedAt  string `json:"updated_at"`
}

// ListThemesInput is the (empty) input schema for list_themes.
type ListThemesInput struct{}

// ListThemesOutput is the output schema for list_themes.
type ListThemesOutput struct {
	Themes []ThemeOutput `json:"themes"`
	Count  int           `json:"count"`
}

// ThemeOutput represents one theme.
type ThemeOutput struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	BuiltIn     bool           `json:"built_in"`
	Light       domain.Palette `json:"light"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_presentation",
		Description: "Export a stored presentation to a PowerPoint (.pptx) file, returned base64 encoded",
	}, s.handleExport)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_presentations",
		Description: "List stored presentations, most recently updated first",
	}, s.handleListPresentations)

	if s.ports.Theme != nil {
		mcp.AddTool(s.server, &mcp.Tool{
			Name:        "list_themes",
			Description: "List the themes available for export",
		}, s.handleListThemes)
	}
}

// handleExport handles the export_presentation tool invocation.
func (s *Server) handleExport(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportInput,
) (*mcp.CallToolResult, ExportOutput, error) {
	override := make(domain.ColorOverride, len(input.Colors))
	for role, color := range input.Colors {
		override[domain.ColorRole(role)] = color
	}

	result, err := s.ports.Export.Export(ctx, domain.ExportRequest{
		PresentationID: input.PresentationID,
		OwnerID:        s.ports.OwnerID,
		FileNameHint:   input.FileName,
		ThemeName:      input.Theme,
		Override:       override,
	})
	if err != nil {
		var exportErr *domain.ExportError
		if errors.As(err, &exportErr) {
			return nil, ExportOutput{Error: exportErr.Error()}, nil
		}
		return nil, ExportOutput{}, err
	}

	return nil, ExportOutput{
		Success:     true,
		Data:        result.Base64(),
		FileName:    result.FileName,
		Degraded:    result.Degraded,
		Diagnostics: result.Diagnostics,
	}, nil
}

// handleListPresentations handles the list_presentations tool invocation.
func (s *Server) handleListPresentations(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListPresentationsInput,
) (*mcp.CallToolResult, ListPresentationsOutput, error) {
	summaries, err := s.ports.Presentation.List(ctx, s.ports.OwnerID)
	if err != nil {
		return nil, ListPresentationsOutput{}, err
	}

	output := ListPresentationsOutput{
		Presentations: make([]PresentationOutput, len(summaries)),
		Count:         len(summaries),
	}
	for i, p := range summaries {
		output.Presentations[i] = PresentationOutput{
			ID:         p.ID,
			Title:      p.Title,
			Theme:      p.ThemeName,
			SlideCount: p.SlideCount,
			UpdatedAt:  p.UpdatedAt.UTC().Format(time.RFC3339),
		}
	}
	return nil, output, nil
}

// handleListThemes handles the list_themes tool invocation.
func (s *Server) handleListThemes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ ListThemesInput,
) (*mcp.CallToolResult, ListThemesOutput, error) {
	themes, err := s.ports.Theme.List(ctx)
	if err != nil {
		return nil, ListThemesOutput{}, err
	}

	output := ListThemesOutput{
		Themes: make([]ThemeOutput, len(themes)),
		Count:  len(themes),
	}
	for i, t := range themes {
		output.Themes[i] = ThemeOutput{
			Name:        t.Name,
			Description: t.Description,
			BuiltIn:     t.BuiltIn,
			Light:       t.Light,
		}
	}
	return nil, output, nil
}
