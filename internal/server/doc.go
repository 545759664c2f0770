// Package server runs the local control API.
//
// It owns the HTTP server lifecycle together with the background workers:
// startup, signal handling and graceful shutdown of both.
package server
