package html

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	theme "github.com/goliatone/go-theme"

	"github.com/puneetripathi/bajaj-frontend/pkg/payload"
	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
	"github.com/puneetripathi/bajaj-frontend/pkg/render"
	"github.com/puneetripathi/bajaj-frontend/pkg/session"
)

func classifierReturning(resp projection.ServiceResponse) session.Classifier {
	return session.ClassifierFunc(func(context.Context, payload.RequestPayload) (projection.ServiceResponse, error) {
		return resp, nil
	})
}

func renderView(t *testing.T, r *Renderer, view session.View, opts render.RenderOptions) string {
	t.Helper()
	out, err := r.Render(context.Background(), view, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRender_InitialPage(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	page := renderView(t, r, session.New(nil).View(), render.RenderOptions{Action: "/submit"})

	for _, want := range []string{
		`<title>JSON Classifier</title>`,
		`action="/submit"`,
		`placeholder="Enter JSON (e.g., { &quot;data&quot;: [] })"`,
		`value="numbers" checked> Show Numbers`,
		`value="alphabets" checked> Show Alphabets`,
		`value="highest_alphabet" checked> Show Highest Alphabet`,
		`--surface: #ffffff;`,
		`data-theme="classic" data-variant="light"`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q:\n%s", want, page)
		}
	}
	if strings.Contains(page, "classify-error") && strings.Contains(page, `role="alert"`) {
		t.Fatalf("idle page should not show an error")
	}
	if strings.Contains(page, `class="classify-result"`) {
		t.Fatalf("idle page should not show a result")
	}
}

func TestRender_ResultShowsServiceValuesEscaped(t *testing.T) {
	resp := projection.NewServiceResponse(map[string]any{
		"is_success":  true,
		"user_id":     "<b>u1</b>",
		"email":       "a@b.com",
		"roll_number": "12",
		"numbers":     []any{"1", "2"},
		"alphabets":   []any{"<i>", "B"},
	})
	filters := projection.NewFilterSet(projection.Numbers, projection.Alphabets)
	s := session.New(classifierReturning(resp), session.WithFilters(filters))
	if err := s.SubmitInput(context.Background(), `{"data":["1","B"]}`); err != nil {
		t.Fatalf("submit: %v", err)
	}

	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := renderView(t, r, s.View(), render.RenderOptions{})

	if strings.Contains(page, "<b>u1") || strings.Contains(page, "<i>,") {
		t.Fatalf("service markup written unescaped:\n%s", page)
	}
	for _, want := range []string{
		`<strong>Status:</strong> Successful`,
		`<strong>User ID:</strong> &lt;b&gt;u1&lt;/b&gt;`,
		`<strong>Email:</strong> a@b.com`,
		`<strong>numbers:</strong> 1, 2`,
		`<strong>alphabets:</strong> &lt;i&gt;, B`,
		`data-filters="numbers, alphabets"`,
		`value="highest_alphabet"> Show Highest Alphabet`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q:\n%s", want, page)
		}
	}
	if strings.Contains(page, "highest alphabet:") {
		t.Fatalf("filtered field rendered")
	}
}

func TestRender_ValuesKeepWhitespace(t *testing.T) {
	resp := projection.NewServiceResponse(map[string]any{
		"is_success": true,
		"user_id":    "  u1 ",
	})
	s := session.New(classifierReturning(resp))
	if err := s.SubmitInput(context.Background(), `{"data":[]}`); err != nil {
		t.Fatalf("submit: %v", err)
	}

	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := renderView(t, r, s.View(), render.RenderOptions{})

	if !strings.Contains(page, "<strong>User ID:</strong>   u1 </p>") {
		t.Fatalf("value not shown as-is:\n%s", page)
	}
}

func TestRender_Error(t *testing.T) {
	s := session.New(nil)
	_ = s.SubmitInput(context.Background(), `{"data":1}`)

	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := renderView(t, r, s.View(), render.RenderOptions{})

	if !strings.Contains(page, `role="alert">Invalid JSON format. Expected { &quot;data&quot;: [] }</p>`) {
		t.Fatalf("error message missing:\n%s", page)
	}
	if strings.Contains(page, `class="classify-result"`) {
		t.Fatalf("error page should not show a result")
	}
}

func TestRender_HiddenFieldsAndTitle(t *testing.T) {
	r, err := New(WithTitle("Classifier"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	opts := render.RenderOptions{}.WithHidden(render.CSRFToken("_csrf", "tok"))
	page := renderView(t, r, session.New(nil).View(), opts)

	if !strings.Contains(page, `<input type="hidden" name="_csrf" value="tok">`) {
		t.Fatalf("hidden field missing:\n%s", page)
	}
	if !strings.Contains(page, "<h1>Classifier</h1>") {
		t.Fatalf("title missing:\n%s", page)
	}
}

func TestRender_DarkVariantAndStylesheet(t *testing.T) {
	manifest := DefaultManifest()
	manifest.Assets = theme.Assets{
		Prefix: "/assets/themes/classic",
		Files:  map[string]string{StylesheetAsset: "classic.css"},
	}
	selector, err := NewManifestSelector(manifest)
	if err != nil {
		t.Fatalf("selector: %v", err)
	}

	r, err := New(WithThemeSelector(selector, "classic", "dark"))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := renderView(t, r, session.New(nil).View(), render.RenderOptions{})

	for _, want := range []string{
		`--surface: #111827;`,
		`--accent: #3b82f6;`,
		`<link rel="stylesheet" href="/assets/themes/classic/classic.css">`,
		`data-variant="dark"`,
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q:\n%s", want, page)
		}
	}
}

func TestNew_UnknownVariant(t *testing.T) {
	if _, err := New(WithTheme("classic", "sepia")); err == nil {
		t.Fatalf("expected unknown variant error")
	}
	if _, err := New(WithTheme("missing", "")); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}

func TestRender_ThemePartialOverride(t *testing.T) {
	files := fstest.MapFS{
		"compact.html": &fstest.MapFile{Data: []byte(`{{ title }}|{% for t in toggles %}{{ t.key }}{% if t.checked %}*{% endif %};{% endfor %}`)},
	}
	cfg := &theme.RendererConfig{
		Theme:    "compact",
		Variant:  "light",
		Partials: map[string]string{PagePartial: "compact"},
	}

	r, err := New(WithTemplatesFS(files), WithThemeConfig(cfg))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	view := session.New(nil, session.WithFilters(projection.NewFilterSet(projection.Alphabets))).View()
	page := renderView(t, r, view, render.RenderOptions{Title: "T"})

	if page != "T|numbers;alphabets*;highest_alphabet;" {
		t.Fatalf("unexpected output %q", page)
	}
}

func TestRendererConfig(t *testing.T) {
	selector, err := NewManifestSelector(DefaultManifest())
	if err != nil {
		t.Fatalf("selector: %v", err)
	}
	selection, err := selector.Select("", "")
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	cfg := RendererConfig(selection)
	if cfg.Theme != DefaultThemeName || cfg.Variant != DefaultVariant {
		t.Fatalf("unexpected selection %s/%s", cfg.Theme, cfg.Variant)
	}
	if cfg.CSSVars["--accent"] != "#3b82f6" {
		t.Fatalf("css vars not derived from tokens")
	}
	if cfg.AssetURL(StylesheetAsset) != "" {
		t.Fatalf("expected no stylesheet asset")
	}
	if RendererConfig(nil) != nil {
		t.Fatalf("expected nil config for nil selection")
	}
}

func TestRender_TemplatesDirOverridesPage(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.html"), []byte(`{{ placeholder }}|{{ input }}`), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}

	r, err := New(WithTemplatesDir(dir))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := renderView(t, r, session.New(nil).View(), render.RenderOptions{})

	if page != `Enter JSON (e.g., { &quot;data&quot;: [] })|` {
		t.Fatalf("unexpected output %q", page)
	}
}

func TestRender_InlineThemePartial(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:    "inline",
		Variant:  "light",
		Partials: map[string]string{PagePartial: `<h1>{{ title|trim }}</h1>{% if has_error %}{{ error }}{% endif %}`},
	}
	r, err := New(WithThemeConfig(cfg))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	s := session.New(nil)
	_ = s.SubmitInput(context.Background(), `{"data":1}`)
	page := renderView(t, r, s.View(), render.RenderOptions{Title: " Inline "})

	if page != `<h1>Inline</h1>Invalid JSON format. Expected { &quot;data&quot;: [] }` {
		t.Fatalf("unexpected output %q", page)
	}
}

func TestRender_SkipsThemeTokensWithMarkup(t *testing.T) {
	cfg := &theme.RendererConfig{
		Theme:   "classic",
		Variant: "light",
		CSSVars: map[string]string{
			"--accent":      "#3b82f6",
			"--font-family": `"Inter", sans-serif`,
			"--surface":     "#fff</style><script>alert(1)</script>",
		},
	}
	r, err := New(WithThemeConfig(cfg))
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	page := renderView(t, r, session.New(nil).View(), render.RenderOptions{})

	if strings.Contains(page, "<script>") || strings.Contains(page, "--surface:") {
		t.Fatalf("token with markup written:\n%s", page)
	}
	for _, want := range []string{`--accent: #3b82f6;`, `--font-family: "Inter", sans-serif;`} {
		if !strings.Contains(page, want) {
			t.Fatalf("page missing %q:\n%s", want, page)
		}
	}
}
