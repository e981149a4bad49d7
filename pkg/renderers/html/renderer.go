// Package html renders the submission page: the JSON input, the filter
// checkboxes and either the error or the projected result.
package html

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	theme "github.com/goliatone/go-theme"

	"github.com/puneetripathi/bajaj-frontend/pkg/render"
	rendertemplate "github.com/puneetripathi/bajaj-frontend/pkg/render/template"
	"github.com/puneetripathi/bajaj-frontend/pkg/render/template/gotemplate"
	"github.com/puneetripathi/bajaj-frontend/pkg/session"
)

// Name is the registry key of this renderer.
const Name = "html"

const (
	// DefaultTitle heads the page.
	DefaultTitle = "JSON Classifier"
	// Placeholder is shown in the empty input box.
	Placeholder = `Enter JSON (e.g., { "data": [] })`
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// TemplatesFS exposes the built-in templates.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Renderer draws the page through a template engine.
type Renderer struct {
	templates    fs.FS
	templateDir  string
	engine       rendertemplate.TemplateRenderer
	selector     theme.ThemeSelector
	themeName    string
	themeVariant string
	fixedTheme   *theme.RendererConfig
	title        string
}

// Option configures the renderer.
type Option func(*Renderer)

// WithTemplatesFS replaces the built-in templates. The set must provide the
// page template named by the theme (default "page.html").
func WithTemplatesFS(files fs.FS) Option {
	return func(r *Renderer) {
		if files != nil {
			r.templates = files
		}
	}
}

// WithTemplatesDir loads templates from dir on disk ahead of the built-in
// set, so a directory holding only "page.html" replaces the page.
func WithTemplatesDir(dir string) Option {
	return func(r *Renderer) {
		r.templateDir = strings.TrimSpace(dir)
	}
}

// WithTemplateRenderer uses an existing engine instead of building one.
func WithTemplateRenderer(engine rendertemplate.TemplateRenderer) Option {
	return func(r *Renderer) {
		r.engine = engine
	}
}

// WithThemeSelector resolves name and variant through selector on each render.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(r *Renderer) {
		if selector != nil {
			r.selector = selector
		}
		r.themeName = name
		r.themeVariant = variant
	}
}

// WithTheme picks a theme and variant from the current selector.
func WithTheme(name, variant string) Option {
	return func(r *Renderer) {
		r.themeName = name
		r.themeVariant = variant
	}
}

// WithThemeConfig skips selection and uses cfg as-is.
func WithThemeConfig(cfg *theme.RendererConfig) Option {
	return func(r *Renderer) {
		r.fixedTheme = cfg
	}
}

// WithTitle changes the default page heading.
func WithTitle(title string) Option {
	return func(r *Renderer) {
		if title != "" {
			r.title = title
		}
	}
}

// New builds the renderer with the embedded templates and the classic theme.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		templates:    TemplatesFS(),
		themeName:    DefaultThemeName,
		themeVariant: DefaultVariant,
		title:        DefaultTitle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}

	if r.selector == nil {
		selector, err := NewManifestSelector(DefaultManifest())
		if err != nil {
			return nil, err
		}
		r.selector = selector
	}

	globals := map[string]any{"placeholder": Placeholder}
	if r.engine == nil {
		engineOpts := []gotemplate.Option{
			gotemplate.WithFS(r.templates),
			gotemplate.WithGlobalData(globals),
		}
		if r.templateDir != "" {
			engineOpts = append(engineOpts, gotemplate.WithBaseDir(r.templateDir))
		}
		engine, err := gotemplate.New(engineOpts...)
		if err != nil {
			return nil, fmt.Errorf("html: template engine: %w", err)
		}
		r.engine = engine
	} else if err := r.engine.GlobalContext(globals); err != nil {
		return nil, fmt.Errorf("html: template globals: %w", err)
	}

	if r.fixedTheme == nil {
		if _, err := r.selector.Select(r.themeName, r.themeVariant); err != nil {
			return nil, err
		}
	}
	return r, nil
}

var _ render.Renderer = (*Renderer)(nil)

func (r *Renderer) Name() string        { return Name }
func (r *Renderer) ContentType() string { return "text/html; charset=utf-8" }

// Render draws the full page for view.
func (r *Renderer) Render(ctx context.Context, view session.View, options render.RenderOptions) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("html: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg, err := r.themeConfig()
	if err != nil {
		return nil, err
	}

	page := "page"
	if cfg != nil && cfg.Partials[PagePartial] != "" {
		page = cfg.Partials[PagePartial]
	}

	// A theme partial may name a template or carry the template inline.
	out, err := r.engine.Render(page, r.pageData(view, options, cfg))
	if err != nil {
		return nil, fmt.Errorf("html: render page: %w", err)
	}
	return []byte(out), nil
}

func (r *Renderer) themeConfig() (*theme.RendererConfig, error) {
	if r.fixedTheme != nil {
		return r.fixedTheme, nil
	}
	selection, err := r.selector.Select(r.themeName, r.themeVariant)
	if err != nil {
		return nil, fmt.Errorf("html: select theme: %w", err)
	}
	return RendererConfig(selection), nil
}

func (r *Renderer) pageData(view session.View, options render.RenderOptions, cfg *theme.RendererConfig) map[string]any {
	title := r.title
	if options.Title != "" {
		title = options.Title
	}

	hidden := make([]map[string]any, 0, len(options.Hidden))
	for _, field := range options.HiddenFields() {
		hidden = append(hidden, map[string]any{"name": field.Name, "value": field.Value})
	}

	toggles := make([]map[string]any, 0, 3)
	for _, toggle := range view.Toggles() {
		toggles = append(toggles, map[string]any{
			"key":     toggle.Key,
			"title":   toggle.Title,
			"checked": toggle.Checked,
		})
	}

	fields := make([]map[string]any, 0, len(view.Fields))
	if view.HasResult() {
		for _, field := range view.Fields {
			fields = append(fields, map[string]any{
				"key":   field.Key,
				"label": field.Label,
				"value": field.Value,
			})
		}
	}

	data := map[string]any{
		"title":          title,
		"action":         options.Action,
		"hidden":         hidden,
		"input":          view.Input,
		"toggles":        toggles,
		"has_error":      view.HasError(),
		"error":          view.Error,
		"has_result":     view.HasResult(),
		"fields":         fields,
		"active_filters": view.Filters.Strings(),
	}
	if cfg != nil {
		data["theme_name"] = cfg.Theme
		data["theme_variant"] = cfg.Variant
		data["theme_css"] = cssVarsStyle(cfg.CSSVars)
		if cfg.AssetURL != nil {
			data["stylesheet"] = cfg.AssetURL(StylesheetAsset)
		}
	}
	return data
}
