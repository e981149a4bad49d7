// Package frontend is the top-level entry point for submitting
// {"data": [...]} payloads to the classification service and projecting the
// answer onto the fields a user asked to see.
//
// Most callers need Classify; long-lived callers (a terminal loop, a web
// page) hold a session from NewSession and toggle filters between submits.
package frontend
