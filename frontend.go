package frontend

import (
	"context"
	"io/fs"

	"github.com/puneetripathi/bajaj-frontend/pkg/classifier"
	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
	"github.com/puneetripathi/bajaj-frontend/pkg/render"
	"github.com/puneetripathi/bajaj-frontend/pkg/renderers/html"
	"github.com/puneetripathi/bajaj-frontend/pkg/session"
)

// RenderOptions describes per-request overrides such as hidden form fields.
type RenderOptions = render.RenderOptions

// FilterSet aliases projection.FilterSet for callers choosing visible fields.
type FilterSet = projection.FilterSet

// NewSession builds a session backed by a classifier client. With no options
// the client posts to the production service.
func NewSession(filters FilterSet, options ...classifier.Option) (*session.Session, error) {
	client, err := classifier.New(options...)
	if err != nil {
		return nil, err
	}
	return session.New(client, session.WithFilters(filters)), nil
}

// Classify validates raw, sends it and returns the projected answer. It is
// the simplest entry point for callers that just want the display fields.
func Classify(ctx context.Context, raw string, filters FilterSet, options ...classifier.Option) (projection.Projection, error) {
	s, err := NewSession(filters, options...)
	if err != nil {
		return nil, err
	}
	if err := s.SubmitInput(ctx, raw); err != nil {
		return nil, err
	}
	return s.View().Fields, nil
}

// EmbeddedTemplates exposes the built-in page templates so callers can reuse
// or extend them without importing the renderer package directly.
func EmbeddedTemplates() fs.FS {
	return html.TemplatesFS()
}
