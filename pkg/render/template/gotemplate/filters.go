package gotemplate

import (
	"fmt"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var defaultFiltersOnce sync.Once

func registerDefaultFilters() {
	defaultFiltersOnce.Do(func() {
		if !pongo2.FilterExists("trim") {
			_ = pongo2.RegisterFilter("trim", filterTrim)
		}
		if !pongo2.FilterExists("join_comma") {
			_ = pongo2.RegisterFilter("join_comma", filterJoinComma)
		}
	})
}

func filterTrim(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

// filterJoinComma joins a sequence with ", ". Non-sequences pass through.
func filterJoinComma(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() {
		return pongo2.AsValue(""), nil
	}
	if in.IsString() || !in.CanSlice() {
		return in, nil
	}
	parts := make([]string, 0, in.Len())
	for idx := 0; idx < in.Len(); idx++ {
		item := in.Index(idx)
		if item.IsNil() {
			parts = append(parts, "")
			continue
		}
		parts = append(parts, fmt.Sprint(item.Interface()))
	}
	return pongo2.AsValue(strings.Join(parts, ", ")), nil
}
