package render

import (
	"fmt"
	"sort"
	"strings"
)

// RenderOptions carry per-request details a renderer cannot learn from the
// view itself.
type RenderOptions struct {
	// Action is the URL the HTML form posts back to. Empty means the current
	// URL.
	Action string
	// Hidden fields are emitted inside the HTML form, sorted by name.
	Hidden map[string]string
	// Title overrides the page or report heading.
	Title string
}

// HiddenField is a hidden form input.
type HiddenField struct {
	Name  string
	Value string
}

// Hidden returns a HiddenField for an arbitrary name/value pair.
func Hidden(name string, value any) HiddenField {
	return HiddenField{
		Name:  strings.TrimSpace(name),
		Value: fmt.Sprint(value),
	}
}

// CSRFToken builds a hidden field carrying token under name.
func CSRFToken(name, token string) HiddenField {
	return Hidden(name, token)
}

// WithHidden returns a copy of o with fields merged in. Later fields win and
// empty names are dropped.
func (o RenderOptions) WithHidden(fields ...HiddenField) RenderOptions {
	merged := make(map[string]string, len(o.Hidden)+len(fields))
	for key, value := range o.Hidden {
		if trimmed := strings.TrimSpace(key); trimmed != "" {
			merged[trimmed] = value
		}
	}
	for _, field := range fields {
		if name := strings.TrimSpace(field.Name); name != "" {
			merged[name] = field.Value
		}
	}
	if len(merged) == 0 {
		merged = nil
	}
	o.Hidden = merged
	return o
}

// HiddenFields lists o.Hidden sorted by name.
func (o RenderOptions) HiddenFields() []HiddenField {
	if len(o.Hidden) == 0 {
		return nil
	}
	names := make([]string, 0, len(o.Hidden))
	for name := range o.Hidden {
		if strings.TrimSpace(name) != "" {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	out := make([]HiddenField, 0, len(names))
	for _, name := range names {
		out = append(out, HiddenField{Name: strings.TrimSpace(name), Value: o.Hidden[name]})
	}
	return out
}
