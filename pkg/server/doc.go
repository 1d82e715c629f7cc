// Package server exposes the checklist engine over HTTP: the static
// frontend assets, a small JSON API for evaluation and catalog
// introspection, a health endpoint and the Prometheus scrape endpoint.
//
// Routes:
//
//	GET  /api/documents   document codes, names and display metadata
//	GET  /api/fields      the field vocabulary, for form construction
//	POST /api/check       evaluate applicant attributes, returns the
//	                      required and waived documents
//	GET  /healthz         liveness plus active catalog version
//	GET  /metrics         Prometheus metrics (when enabled)
//	GET  /...             static assets from the configured directory
package server
