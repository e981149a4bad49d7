// Package classify serves the submission page and a JSON endpoint over
// net/http.
//
// The page handler answers GET with an empty form and POST with the outcome of
// the submitted input. The API handler accepts {"input": "...", "filters": [...]}
// and answers with the json renderer's document: 422 for rejected input, 502
// when the service fails, 400 for an unreadable body.
//
// Each request gets its own session, so the handlers keep no state between
// requests.
package classify
