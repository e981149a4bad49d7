// Package render defines how a session view is turned into bytes and keeps a
// registry of the available output formats.
package render

import (
	"context"

	"github.com/puneetripathi/bajaj-frontend/pkg/session"
)

// Renderer draws a session view (plain text, JSON, HTML).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view session.View, options RenderOptions) ([]byte, error)
}
