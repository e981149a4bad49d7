package app

import (
	"context"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/puneetripathi/bajaj-frontend/internal/config"
	"github.com/puneetripathi/bajaj-frontend/pkg/contract"
	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
	"github.com/puneetripathi/bajaj-frontend/pkg/render"
	"github.com/puneetripathi/bajaj-frontend/pkg/testsupport"
)

var quiet = log.New(io.Discard, "", 0)

func TestNewWire_DefaultEndpoint(t *testing.T) {
	w, err := NewWire(context.Background(), config.DefaultConfig(), WithLogger(quiet))
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	if w.Endpoint.URL != config.DefaultBaseURL+"/api" {
		t.Fatalf("unexpected endpoint %q", w.Endpoint.URL)
	}
	if w.Client.Endpoint() != w.Endpoint.URL {
		t.Fatalf("client posts to %q, want %q", w.Client.Endpoint(), w.Endpoint.URL)
	}
	if diff := cmp.Diff([]string{"html", "json", "text"}, w.Renderers.List()); diff != "" {
		t.Fatalf("renderers mismatch (-want +got):\n%s", diff)
	}
}

func TestNewWire_SessionReachesService(t *testing.T) {
	stub := testsupport.NewServiceStub(t)

	cfg := config.DefaultConfig()
	cfg.Service.Endpoint = stub.URL
	cfg.Output.Filters = []string{"alphabets"}

	w, err := NewWire(context.Background(), cfg, WithLogger(quiet))
	if err != nil {
		t.Fatalf("wire: %v", err)
	}

	s := w.Session()
	if err := s.SubmitInput(context.Background(), `{"data":["A"]}`); err != nil {
		t.Fatalf("submit: %v", err)
	}
	view := s.View()
	if diff := cmp.Diff([]string{"Status", "User ID", "Email", "Roll Number", "alphabets"}, view.Fields.Labels()); diff != "" {
		t.Fatalf("labels mismatch (-want +got):\n%s", diff)
	}

	reqs := stub.Requests()
	if len(reqs) != 1 || reqs[0].RequestID == "" {
		t.Fatalf("expected one request carrying an id, got %+v", reqs)
	}
}

func TestNewWire_Renderer(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Format = config.FormatJSON

	w, err := NewWire(context.Background(), cfg, WithLogger(quiet))
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	r, err := w.Renderer("")
	if err != nil || r.Name() != "json" {
		t.Fatalf("expected configured json renderer, got %v (%v)", r, err)
	}
	if _, err := w.Renderer("pdf"); err == nil {
		t.Fatalf("expected unknown renderer error")
	}
}

func TestNewWire_ContractFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "classifier.yaml")
	if err := os.WriteFile(path, contract.Document(), 0o644); err != nil {
		t.Fatalf("write contract: %v", err)
	}

	cfg := config.DefaultConfig()
	cfg.Service.Contract = path
	cfg.Service.Endpoint = ""

	w, err := NewWire(context.Background(), cfg, WithLogger(quiet))
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	if w.Endpoint.URL != w.Contract.BaseURL()+"/api" {
		t.Fatalf("expected contract server, got %q", w.Endpoint.URL)
	}

	cfg.Service.Contract = filepath.Join(t.TempDir(), "missing.yaml")
	if _, err := NewWire(context.Background(), cfg); err == nil {
		t.Fatalf("expected missing contract error")
	}
}

func TestNewWire_Errors(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Format = "xml"
	if _, err := NewWire(context.Background(), cfg); err == nil {
		t.Fatalf("expected validation error")
	}

	cfg = config.DefaultConfig()
	cfg.Theme.Name = "neon"
	if _, err := NewWire(context.Background(), cfg); err == nil {
		t.Fatalf("expected unknown theme error")
	}
}

func TestWire_ComponentUsesFilters(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Output.Filters = []string{"numbers"}

	w, err := NewWire(context.Background(), cfg, WithLogger(quiet))
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	opts := w.Component().Options()
	if opts.DefaultFilters != projection.NewFilterSet(projection.Numbers) {
		t.Fatalf("unexpected default filters %s", opts.DefaultFilters)
	}
	if opts.Renderer == nil || opts.Renderer.Name() != "html" {
		t.Fatalf("expected html page renderer")
	}
}

func TestNewWire_ThemeTemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "page.html"), []byte(`custom {{ title }}`), 0o644); err != nil {
		t.Fatalf("write template: %v", err)
	}
	cfg := config.DefaultConfig()
	cfg.Theme.Templates = dir

	w, err := NewWire(context.Background(), cfg, WithLogger(quiet))
	if err != nil {
		t.Fatalf("wire: %v", err)
	}
	page, err := w.Renderer("html")
	if err != nil {
		t.Fatalf("renderer: %v", err)
	}
	out, err := page.Render(context.Background(), w.Session().View(), render.RenderOptions{Title: "T"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "custom T" {
		t.Fatalf("unexpected page %q", out)
	}
}
