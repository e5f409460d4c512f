// Package mcp provides an MCP (Model Context Protocol) server adapter for presentai.
// It lets AI assistants list a user's presentations and export them to PPTX.
package mcp

import "errors"

var (
	// ErrMissingExportService is returned when the export service is not provided.
	ErrMissingExportService = errors.New("mcp: export service is required")

	// ErrMissingPresentationService is returned when the presentation service is not provided.
	ErrMissingPresentationService = errors.New("mcp: presentation service is required")

	// ErrMissingOwner is returned when no owner identity is configured.
	ErrMissingOwner = errors.New("mcp: owner id is required")
)
