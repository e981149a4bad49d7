package classify

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// Mounts are the patterns the component was registered under.
type Mounts struct {
	Page string
	API  string
}

// MountPath returns the page mount path under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// APIMountPath returns the API mount path under basePath.
func APIMountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.APIPath)
}

// RegisterRoutes registers the page and API handlers under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) (Mounts, error) {
	return RegisterRoutesWithOptions(mux, basePath, NewOptions(fns...))
}

// RegisterRoutesWithOptions registers both handlers using a pre-built Options value.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) (Mounts, error) {
	if mux == nil {
		return Mounts{}, fmt.Errorf("classify: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })

	mounts := Mounts{
		Page: mountPath(basePath, opts.RoutePath),
		API:  mountPath(basePath, opts.APIPath),
	}
	if mounts.Page == mounts.API {
		return Mounts{}, fmt.Errorf("classify: page and api share path %q", mounts.Page)
	}
	mux.Handle(mounts.Page, HandlerWithOptions(opts))
	mux.Handle(mounts.API, APIHandlerWithOptions(opts))
	return mounts, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	if routePath == "/" {
		return basePath + "/"
	}
	return basePath + routePath
}
