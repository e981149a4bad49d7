package session

import "github.com/puneetripathi/bajaj-frontend/pkg/projection"

// View is what a renderer draws. Error and Response are never both set.
type View struct {
	Input    string
	Error    string
	Filters  projection.FilterSet
	Response *projection.ServiceResponse
	Fields   projection.Projection
}

// HasError reports whether an error message should be shown.
func (v View) HasError() bool {
	return v.Error != ""
}

// HasResult reports whether a projection should be shown.
func (v View) HasResult() bool {
	return v.Error == "" && v.Response != nil
}

// Toggles lists every filter key with its current state, in declaration order.
func (v View) Toggles() []Toggle {
	keys := projection.FilterKeys()
	out := make([]Toggle, len(keys))
	for idx, key := range keys {
		out[idx] = Toggle{
			Key:     string(key),
			Title:   key.Title(),
			Checked: v.Filters.Has(key),
		}
	}
	return out
}

// Toggle describes one filter checkbox.
type Toggle struct {
	Key     string
	Title   string
	Checked bool
}
