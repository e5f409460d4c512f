package tui

import "errors"

// ErrMissingPresentationService is returned when the presentation service is not provided.
var ErrMissingPresentationService = errors.New("tui: presentation service is required")

// ErrMissingExportService is returned when the export service is not provided.
var ErrMissingExportService = errors.New("tui: export service is required")

// ErrMissingOwner is returned when no owner identity is configured.
var ErrMissingOwner = errors.New("tui: owner id is required")
