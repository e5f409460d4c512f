// Package api provides the JSON HTTP API for presentai.
//
// Routes:
//
//	GET  /api/health
//	GET  /api/themes
//	GET  /api/presentations
//	GET  /api/presentations/:id
//	POST /api/presentations/:id/export
//	GET  /api/presentations/:id/export.pptx
//
// Every route except health acts as the owner named by the bearer token's
// subject claim, or as the configured local user when no secret is set.
package api
