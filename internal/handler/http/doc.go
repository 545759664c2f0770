// Package http implements the local control API used by the UI shell and the
// CLI to drive remote synchronization.
//
// Routes are served by chi. Every request gets a trace id bound to a
// request-scoped logger and an access log line; handlers delegate to the
// service layer and map service errors to status codes.
package http
