// Package domain defines the core business entities for presentai.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Presentation: A stored slide deck owned by a user
//   - Slide: An ordered list of elements painted in sequence order
//   - Element: A closed set of slide element kinds (text, image, table, ...)
//   - Theme: A named light/dark palette with font hints
//   - ExportResult: The finished deck plus diagnostics
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
