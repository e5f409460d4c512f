// Package driving defines the services that the CLI, TUI, HTTP API and
// MCP server call into. Each interface takes the owner ID explicitly so
// every surface enforces the same ownership rules.
//
// Implementations live in internal/core/services.
package driving
