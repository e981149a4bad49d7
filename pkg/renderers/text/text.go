// Package text renders a session view as plain "Label: value" lines.
package text

import (
	"bytes"
	"context"
	"errors"

	"github.com/puneetripathi/bajaj-frontend/pkg/render"
	"github.com/puneetripathi/bajaj-frontend/pkg/session"
)

// Name is the registry key of this renderer.
const Name = "text"

// Renderer writes one line per projected field, or a single error line.
type Renderer struct {
	errorPrefix string
}

// Option configures the renderer.
type Option func(*Renderer)

// WithErrorPrefix changes the text written before an error message.
func WithErrorPrefix(prefix string) Option {
	return func(r *Renderer) {
		r.errorPrefix = prefix
	}
}

// New builds a text renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{errorPrefix: "Error: "}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

var _ render.Renderer = (*Renderer)(nil)

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return "text/plain; charset=utf-8" }

// Render writes nothing for a view with neither error nor result.
func (r *Renderer) Render(ctx context.Context, view session.View, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("text: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if options.Title != "" {
		buf.WriteString(options.Title)
		buf.WriteByte('\n')
	}

	switch {
	case view.HasError():
		buf.WriteString(r.errorPrefix)
		buf.WriteString(view.Error)
		buf.WriteByte('\n')
	case view.HasResult():
		for _, field := range view.Fields {
			buf.WriteString(field.Label)
			buf.WriteString(": ")
			buf.WriteString(field.Value)
			buf.WriteByte('\n')
		}
	}
	return buf.Bytes(), nil
}
