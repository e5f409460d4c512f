package domain

import (
	"encoding/base64"
	"fmt"
)

// PPTXMediaType is the MIME type of an exported deck.
const PPTXMediaType = "application/vnd.openxmlformats-officedocument.presentationml.presentation"

// ExportRequest asks for one stored presentation to be exported.
type ExportRequest struct {
	// PresentationID identifies the stored presentation.
	PresentationID string

	// OwnerID is the requesting identity. The presentation must belong to it.
	OwnerID string

	// FileNameHint is used for the suggested file name when the title is empty.
	FileNameHint string

	// ThemeName overrides the presentation's theme. Empty keeps it.
	ThemeName string

	// Override replaces individual light palette roles.
	Override ColorOverride
}

// ExportOptions control how an in-memory presentation is exported.
type ExportOptions struct {
	FileNameHint string
	ThemeName    string
	Override     ColorOverride
}

// ExportResult is a finished deck.
type ExportResult struct {
	// Data is the complete archive.
	Data []byte

	// FileName is the sanitised suggested file name, ending in ".pptx".
	FileName string

	// Degraded is true when at least one element was replaced by a placeholder.
	Degraded bool

	// Diagnostics lists every recovered per-element failure.
	Diagnostics []Diagnostic

	SlideCount int
	MediaCount int
	ChartCount int
}

// Base64 returns the archive encoded for JSON transport.
func (r *ExportResult) Base64() string {
	if r == nil {
		return ""
	}
	return base64.StdEncoding.EncodeToString(r.Data)
}

// FailureKind classifies an export failure.
type FailureKind string

// Failure kinds. Validation and packaging failures fail the export;
// element and fetch failures are recorded as diagnostics.
const (
	FailureValidation     FailureKind = "validation"
	FailurePackaging      FailureKind = "packaging"
	FailurePartialElement FailureKind = "partial_element"
	FailureAssetFetch     FailureKind = "asset_fetch"
)

// Diagnostic records one element that was replaced by a placeholder.
type Diagnostic struct {
	// Slide is the 1-based slide number.
	Slide int `json:"slide"`

	// Path locates the element, e.g. "3" or "2/1" for a container child.
	Path string `json:"path"`

	// ElementKind is the element's type name.
	ElementKind ElementKind `json:"elementKind"`

	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}

// String returns a single-line description.
func (d Diagnostic) String() string {
	return fmt.Sprintf("slide %d element %s (%s): %s: %s", d.Slide, d.Path, d.ElementKind, d.Kind, d.Message)
}

// ExportError is the single structured failure returned by an export.
type ExportError struct {
	Kind FailureKind
	Err  error
}

// Error implements error.
func (e *ExportError) Error() string {
	return fmt.Sprintf("export %s error: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *ExportError) Unwrap() error {
	return e.Err
}
