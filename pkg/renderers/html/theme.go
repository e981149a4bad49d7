package html

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

const (
	// DefaultThemeName is the built-in theme.
	DefaultThemeName = "classic"
	// DefaultVariant selects the base tokens of a theme.
	DefaultVariant = "light"

	// PagePartial names the template used for the page when a theme overrides it.
	PagePartial = "classify.page"
	// StylesheetAsset names an optional stylesheet shipped with a theme.
	StylesheetAsset = "classify.stylesheet"
)

// DefaultManifest describes the built-in look: a light base with a dark variant.
func DefaultManifest() *theme.Manifest {
	return &theme.Manifest{
		Name:    DefaultThemeName,
		Version: "1.0.0",
		Tokens: map[string]string{
			"surface":     "#ffffff",
			"text":        "#1f2937",
			"muted":       "#f3f4f6",
			"border":      "#d1d5db",
			"accent":      "#3b82f6",
			"accent-text": "#ffffff",
			"error":       "#ef4444",
			"radius":      "0.25rem",
			"font-family": "system-ui, sans-serif",
		},
		Templates: map[string]string{
			PagePartial: "page",
		},
		Variants: map[string]theme.Variant{
			"dark": {
				Tokens: map[string]string{
					"surface": "#111827",
					"text":    "#f9fafb",
					"muted":   "#1f2937",
					"border":  "#374151",
					"error":   "#f87171",
				},
			},
		},
	}
}

// ManifestSelector resolves themes from an in-memory set of manifests.
type ManifestSelector struct {
	manifests      map[string]*theme.Manifest
	defaultTheme   string
	defaultVariant string
}

var _ theme.ThemeSelector = (*ManifestSelector)(nil)

// NewManifestSelector indexes manifests by name. The first manifest becomes the
// default theme.
func NewManifestSelector(manifests ...*theme.Manifest) (*ManifestSelector, error) {
	s := &ManifestSelector{
		manifests:      make(map[string]*theme.Manifest, len(manifests)),
		defaultVariant: DefaultVariant,
	}
	for _, manifest := range manifests {
		if manifest == nil || strings.TrimSpace(manifest.Name) == "" {
			return nil, errors.New("html: theme manifest requires a name")
		}
		if _, exists := s.manifests[manifest.Name]; exists {
			return nil, fmt.Errorf("html: theme %q registered twice", manifest.Name)
		}
		if s.defaultTheme == "" {
			s.defaultTheme = manifest.Name
		}
		s.manifests[manifest.Name] = manifest
	}
	if len(s.manifests) == 0 {
		return nil, errors.New("html: at least one theme manifest is required")
	}
	return s, nil
}

// Select picks a theme and variant. Empty names fall back to the defaults; the
// base variant is always available, other variants must be declared.
func (s *ManifestSelector) Select(name, variant string, _ ...theme.QueryOption) (*theme.Selection, error) {
	if name = strings.TrimSpace(name); name == "" {
		name = s.defaultTheme
	}
	if variant = strings.TrimSpace(variant); variant == "" {
		variant = s.defaultVariant
	}

	manifest, ok := s.manifests[name]
	if !ok {
		return nil, fmt.Errorf("html: unknown theme %q", name)
	}
	if variant != DefaultVariant {
		if _, ok := manifest.Variants[variant]; !ok {
			return nil, fmt.Errorf("html: theme %q has no variant %q", name, variant)
		}
	}
	return &theme.Selection{Theme: name, Variant: variant, Manifest: manifest}, nil
}

// Themes lists the known theme names.
func (s *ManifestSelector) Themes() []string {
	out := make([]string, 0, len(s.manifests))
	for name := range s.manifests {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// RendererConfig flattens a selection: variant tokens, templates and assets
// override the manifest's, and every token becomes a "--token" CSS variable.
func RendererConfig(selection *theme.Selection) *theme.RendererConfig {
	if selection == nil || selection.Manifest == nil {
		return nil
	}
	manifest := selection.Manifest
	variant := manifest.Variants[selection.Variant]

	tokens := mergeStrings(manifest.Tokens, variant.Tokens)
	cssVars := make(map[string]string, len(tokens))
	for key, value := range tokens {
		cssVars["--"+key] = value
	}

	prefix := manifest.Assets.Prefix
	if variant.Assets.Prefix != "" {
		prefix = variant.Assets.Prefix
	}
	files := mergeStrings(manifest.Assets.Files, variant.Assets.Files)

	return &theme.RendererConfig{
		Theme:    selection.Theme,
		Variant:  selection.Variant,
		Partials: mergeStrings(manifest.Templates, variant.Templates),
		Tokens:   tokens,
		CSSVars:  cssVars,
		AssetURL: func(key string) string {
			file := files[key]
			if file == "" {
				return ""
			}
			if prefix == "" || strings.Contains(file, "://") {
				return file
			}
			return strings.TrimRight(prefix, "/") + "/" + strings.TrimLeft(file, "/")
		},
	}
}

func mergeStrings(base, override map[string]string) map[string]string {
	out := make(map[string]string, len(base)+len(override))
	for key, value := range base {
		out[key] = value
	}
	for key, value := range override {
		out[key] = value
	}
	return out
}

// cssVarsStyle declares vars on :root. Tokens carrying markup are skipped.
func cssVarsStyle(vars map[string]string) string {
	if len(vars) == 0 {
		return ""
	}
	keys := make([]string, 0, len(vars))
	for key, value := range vars {
		if !plainToken(key) || !plainToken(value) {
			continue
		}
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
