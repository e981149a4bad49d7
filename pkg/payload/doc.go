// Package payload turns raw user text into the request body accepted by the
// classification service.
//
// Validate parses the text into an untyped JSON value first and only then
// asserts the shape { "data": [...] }. Decoding straight into a struct would
// silently drop unknown keys and accept a missing data field, both of which
// must be rejected here.
package payload
