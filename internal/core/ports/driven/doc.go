// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
// These must be provided for the application to function:
//
//   - PresentationStore: Owner-scoped presentation persistence
//   - ThemeStore: Theme catalogue (built-in and custom themes)
//   - DeckEncoder: Converts a presentation into a slide-deck archive
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil - the application degrades gracefully:
//
//   - AssetFetcher: Resolves remote image URLs. Without it, remote images
//     are replaced by placeholders and only data: URIs are embedded.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter or exporter package
package driven
