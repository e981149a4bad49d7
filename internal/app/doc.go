// Package app wires the classify dependencies for the CLI.
//
// It resolves the service contract, builds the HTTP client and the render
// registry from a config.Config, exposing them via the Wire struct for
// commands to use.
package app
