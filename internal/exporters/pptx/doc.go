// Package pptx writes presentations as Office Open XML slide decks.
//
// The encoder converts a domain.Presentation snapshot into a ZIP package
// containing one slide part per slide, a single shared theme, slide master
// and slide layout, chart parts for chart elements and deduplicated media.
//
// # Pipeline
//
//   - Units and styles: frames are resolved to EMU on a fixed 16:9 canvas
//     and theme tokens to bare upper-case hex (units.go, style.go).
//   - Element serializers: one per element kind, dispatched by an
//     exhaustive type switch (serialize.go and the per-kind files).
//   - Slide assembler: serializes a slide's elements in paint order with a
//     part-scoped relationship allocator (slide.go).
//   - Package builder: owns the archive-wide registries and writes the
//     ZIP (package.go, parts.go).
//
// A failing element is rolled back and replaced by an empty placeholder box.
// The failure is reported as a domain.Diagnostic and never fails the deck.
//
// Inspect and Verify read a package back for round-trip checks.
package pptx
