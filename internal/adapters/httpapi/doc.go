// Package httpapi is the HTTP transport adapter (ports/adapters "delivery" layer).
//
// It should depend on:
// - the application layer: internal/app
// - the extraction registry types it surfaces: internal/app/extraction
//
// It should NOT be imported by internal/app or internal/domain.
//
// Response keys on /upload and /extract keep the snake_case wire format
// the service has always exposed; consumers depend on it.
package httpapi
