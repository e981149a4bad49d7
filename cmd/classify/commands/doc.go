// Package commands implements the classify CLI: one-shot submissions, the
// interactive prompt loop and the HTTP server.
package commands
