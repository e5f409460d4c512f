package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/presentai/presentai/internal/core/domain"
)

const (
	// uriScheme is the custom URI scheme for presentai resources.
	uriScheme = "presentai://"
)

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "presentations/{presentationId}",
		Name:        "presentation",
		Description: "A stored presentation as JSON",
		MIMEType:    "application/json",
	}, s.handlePresentationResource)
}

// handlePresentationResource returns one presentation document.
func (s *Server) handlePresentationResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id := extractPresentationID(req.Params.URI)
	if id == "" {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	p, err := s.ports.Presentation.Get(ctx, s.ports.OwnerID, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrForbidden) {
			return nil, mcp.ResourceNotFoundError(req.Params.URI)
		}
		return nil, fmt.Errorf("getting presentation: %w", err)
	}

	data, err := domain.MarshalPresentation(p)
	if err != nil {
		return nil, fmt.Errorf("marshalling presentation: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// extractPresentationID extracts the id from a URI like presentai://presentations/{id}.
func extractPresentationID(uri string) string {
	const prefix = uriScheme + "presentations/"

	if !strings.HasPrefix(uri, prefix) {
		return ""
	}

	id := strings.TrimPrefix(uri, prefix)
	if strings.Contains(id, "/") {
		return ""
	}
	return id
}
