package app

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/puneetripathi/bajaj-frontend/components/classify"
	"github.com/puneetripathi/bajaj-frontend/internal/config"
	"github.com/puneetripathi/bajaj-frontend/pkg/classifier"
	"github.com/puneetripathi/bajaj-frontend/pkg/contract"
	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
	"github.com/puneetripathi/bajaj-frontend/pkg/render"
	"github.com/puneetripathi/bajaj-frontend/pkg/renderers/html"
	"github.com/puneetripathi/bajaj-frontend/pkg/renderers/jsonview"
	"github.com/puneetripathi/bajaj-frontend/pkg/renderers/text"
	"github.com/puneetripathi/bajaj-frontend/pkg/session"
)

// Wire bundles the contract, client and renderers for the CLI.
type Wire struct {
	Config    *config.Config
	Contract  *contract.Contract
	Endpoint  contract.Endpoint
	Client    *classifier.Client
	Renderers *render.Registry
	Filters   projection.FilterSet
	Logger    *log.Logger
}

// Option adjusts NewWire.
type Option func(*wireOptions)

type wireOptions struct {
	logger     *log.Logger
	httpClient *http.Client
}

// WithLogger sets the logger handed to the client and the HTTP component.
func WithLogger(logger *log.Logger) Option {
	return func(o *wireOptions) {
		o.logger = logger
	}
}

// WithHTTPClient overrides the client used to reach the service.
func WithHTTPClient(client *http.Client) Option {
	return func(o *wireOptions) {
		o.httpClient = client
	}
}

// NewWire validates cfg and constructs the dependency graph from it.
func NewWire(ctx context.Context, cfg *config.Config, options ...Option) (*Wire, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := wireOptions{logger: log.Default()}
	for _, opt := range options {
		if opt != nil {
			opt(&opts)
		}
	}

	doc, err := loadContract(ctx, cfg.Service.Contract)
	if err != nil {
		return nil, err
	}
	ep, err := doc.Classify()
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}
	ep = ep.WithBaseURL(cfg.Service.Endpoint)

	timeout, _ := cfg.ServiceTimeout()
	clientOpts := []classifier.Option{
		classifier.WithTimeout(timeout),
		classifier.WithLogger(opts.logger),
	}
	if opts.httpClient != nil {
		clientOpts = append(clientOpts, classifier.WithHTTPClient(opts.httpClient))
	}
	client, err := classifier.NewFromContract(ep, clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	page, err := html.New(
		html.WithTheme(cfg.Theme.Name, cfg.Theme.Variant),
		html.WithTemplatesDir(cfg.Theme.Templates),
	)
	if err != nil {
		return nil, fmt.Errorf("app: html renderer: %w", err)
	}
	registry, err := render.NewRegistry(text.New(), jsonview.New(), page)
	if err != nil {
		return nil, fmt.Errorf("app: %w", err)
	}

	filters, _ := cfg.FilterSet()
	return &Wire{
		Config:    cfg,
		Contract:  doc,
		Endpoint:  ep,
		Client:    client,
		Renderers: registry,
		Filters:   filters,
		Logger:    opts.logger,
	}, nil
}

func loadContract(ctx context.Context, path string) (*contract.Contract, error) {
	if path == "" {
		doc, err := contract.Default(ctx)
		if err != nil {
			return nil, fmt.Errorf("app: %w", err)
		}
		return doc, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("app: read contract: %w", err)
	}
	doc, err := contract.Load(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("app: %s: %w", path, err)
	}
	return doc, nil
}

// Session starts a session with the configured filters.
func (w *Wire) Session() *session.Session {
	return session.New(w.Client, session.WithFilters(w.Filters))
}

// Renderer looks up an output format.
func (w *Wire) Renderer(format string) (render.Renderer, error) {
	if format == "" {
		format = w.Config.Output.Format
	}
	return w.Renderers.Get(format)
}

// Component builds the HTTP component on top of the wired client and page
// renderer. fns are applied last.
func (w *Wire) Component(fns ...classify.OptionFn) *classify.Component {
	base := []classify.OptionFn{
		classify.WithClassifier(w.Client),
		classify.WithDefaultFilters(w.Filters),
		classify.WithLogger(w.Logger),
	}
	if page, err := w.Renderers.Get(html.Name); err == nil {
		base = append(base, classify.WithRenderer(page))
	}
	if api, err := w.Renderers.Get(jsonview.Name); err == nil {
		base = append(base, classify.WithAPIRenderer(api))
	}
	return classify.New(append(base, fns...)...)
}
