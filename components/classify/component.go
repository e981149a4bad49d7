package classify

import "net/http"

// Component bundles the page and API handlers with their configuration.
type Component struct {
	opts Options
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) *Component {
	return &Component{opts: NewOptions(fns...)}
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the page handler.
func (c *Component) Handler() http.Handler {
	if c == nil {
		return Handler()
	}
	return HandlerWithOptions(c.opts)
}

// APIHandler returns the JSON handler.
func (c *Component) APIHandler() http.Handler {
	if c == nil {
		return APIHandler()
	}
	return APIHandlerWithOptions(c.opts)
}

// RegisterRoutes registers both handlers under basePath on mux.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (Mounts, error) {
	if c == nil {
		return RegisterRoutes(mux, basePath)
	}
	return RegisterRoutesWithOptions(mux, basePath, c.opts)
}
