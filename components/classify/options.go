package classify

import (
	"log"
	"net/http"

	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
	"github.com/puneetripathi/bajaj-frontend/pkg/render"
	"github.com/puneetripathi/bajaj-frontend/pkg/session"
)

const (
	defaultRoutePath    = "/"
	defaultAPIPath      = "/api/classify"
	defaultMaxBodyBytes = 64 << 10
)

// GuardFunc rejects a request before any work is done. Returning an HTTPError
// picks the status; any other error means 403.
type GuardFunc func(r *http.Request) error

// HiddenFunc supplies hidden form fields (a CSRF token, say) per request.
type HiddenFunc func(r *http.Request) []render.HiddenField

// Options configures the classify routes and their handlers.
type Options struct {
	RoutePath      string
	APIPath        string
	Classifier     session.Classifier
	Renderer       render.Renderer
	APIRenderer    render.Renderer
	MaxBodyBytes   int64
	DefaultFilters projection.FilterSet
	Guard          GuardFunc
	Hidden         HiddenFunc
	Logger         *log.Logger
}

// OptionFn mutates Options.
type OptionFn func(*Options)

// DefaultOptions mounts the page at "/" and the API at "/api/classify".
func DefaultOptions() Options {
	return Options{
		RoutePath:      defaultRoutePath,
		APIPath:        defaultAPIPath,
		MaxBodyBytes:   defaultMaxBodyBytes,
		DefaultFilters: projection.DefaultFilters(),
	}
}

// NewOptions applies fns over DefaultOptions and restores any emptied default.
func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.APIPath == "" {
		opts.APIPath = defaultAPIPath
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	return opts
}

// WithRoutePath sets where the HTML page is served.
func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		o.RoutePath = path
	}
}

// WithAPIPath sets where the JSON API is served.
func WithAPIPath(path string) OptionFn {
	return func(o *Options) {
		o.APIPath = path
	}
}

// WithClassifier sets the service client every request submits through.
func WithClassifier(classifier session.Classifier) OptionFn {
	return func(o *Options) {
		o.Classifier = classifier
	}
}

// WithRenderer sets the page renderer. Defaults to the html renderer.
func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		o.Renderer = renderer
	}
}

// WithAPIRenderer sets the API renderer. Defaults to the json renderer.
func WithAPIRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		o.APIRenderer = renderer
	}
}

// WithMaxBodyBytes caps request bodies.
func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		o.MaxBodyBytes = limit
	}
}

// WithDefaultFilters sets the selection used when a request names none.
func WithDefaultFilters(set projection.FilterSet) OptionFn {
	return func(o *Options) {
		o.DefaultFilters = set
	}
}

// WithGuard runs guard before every request.
func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		o.Guard = guard
	}
}

// WithHidden adds per-request hidden fields to the page form.
func WithHidden(fn HiddenFunc) OptionFn {
	return func(o *Options) {
		o.Hidden = fn
	}
}

// WithLogger logs failed writes and failed submits. Nil uses log.Default().
func WithLogger(logger *log.Logger) OptionFn {
	return func(o *Options) {
		o.Logger = logger
	}
}

func (o Options) logf(format string, args ...any) {
	logger := o.Logger
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}
