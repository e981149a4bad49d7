// Package jsonview renders a session view as a JSON document for API clients.
package jsonview

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
	"github.com/puneetripathi/bajaj-frontend/pkg/render"
	"github.com/puneetripathi/bajaj-frontend/pkg/session"
)

// Name is the registry key of this renderer.
const Name = "json"

// Document is the rendered shape. Error and Fields are mutually exclusive.
type Document struct {
	Title    string                      `json:"title,omitempty"`
	Input    string                      `json:"input"`
	Filters  projection.FilterSet        `json:"filters"`
	Error    string                      `json:"error,omitempty"`
	Fields   projection.Projection       `json:"fields,omitempty"`
	Response *projection.ServiceResponse `json:"response,omitempty"`
}

// Renderer emits a Document.
type Renderer struct {
	indent string
	raw    bool
}

// Option configures the renderer.
type Option func(*Renderer)

// WithIndent pretty-prints the output.
func WithIndent(indent string) Option {
	return func(r *Renderer) {
		r.indent = indent
	}
}

// WithRawResponse includes the untouched service response next to the
// projected fields.
func WithRawResponse(enabled bool) Option {
	return func(r *Renderer) {
		r.raw = enabled
	}
}

// New builds a JSON renderer.
func New(options ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

var _ render.Renderer = (*Renderer)(nil)

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return "application/json" }

// Render encodes view. Output ends with a newline.
func (r *Renderer) Render(ctx context.Context, view session.View, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("jsonview: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := Build(view)
	doc.Title = options.Title
	if !r.raw {
		doc.Response = nil
	}

	var (
		out []byte
		err error
	)
	if r.indent != "" {
		out, err = json.MarshalIndent(doc, "", r.indent)
	} else {
		out, err = json.Marshal(doc)
	}
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

// Build converts a view into a Document.
func Build(view session.View) Document {
	doc := Document{
		Input:   view.Input,
		Filters: view.Filters,
	}
	switch {
	case view.HasError():
		doc.Error = view.Error
	case view.HasResult():
		doc.Fields = view.Fields
		doc.Response = view.Response
	}
	return doc
}
