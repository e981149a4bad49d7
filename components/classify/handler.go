package classify

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
	"github.com/puneetripathi/bajaj-frontend/pkg/render"
	"github.com/puneetripathi/bajaj-frontend/pkg/renderers/html"
	"github.com/puneetripathi/bajaj-frontend/pkg/renderers/jsonview"
	"github.com/puneetripathi/bajaj-frontend/pkg/session"
)

// Form field names posted by the page.
const (
	FieldInput          = "input"
	FieldFilter         = "filter"
	FieldFiltersPresent = "filters_present"
)

// APIRequest is the body accepted by the API handler. Nil Filters means the
// default selection.
type APIRequest struct {
	Input   string   `json:"input"`
	Filters []string `json:"filters"`
}

// Handler builds the page handler with default options plus overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions serves the page: GET shows the form, POST submits it and
// shows the outcome.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	renderer, err := pageRenderer(opts)
	if err != nil {
		return failingHandler(err)
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead && r.Method != http.MethodPost {
			w.Header().Set("Allow", "GET, HEAD, POST")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		if r.Method == http.MethodPost {
			r.Body = http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes)
			if err := r.ParseForm(); err != nil {
				http.Error(w, http.StatusText(statusForBody(err)), statusForBody(err))
				return
			}
		}

		values := r.URL.Query()
		if r.Method == http.MethodPost {
			values = r.PostForm
		}
		filters := opts.DefaultFilters
		if _, explicit := values[FieldFiltersPresent]; explicit || len(values[FieldFilter]) > 0 {
			parsed, err := projection.ParseFilters(values[FieldFilter])
			if err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			filters = parsed
		}

		s := session.New(opts.Classifier, session.WithFilters(filters), session.WithInput(values.Get(FieldInput)))
		if r.Method == http.MethodPost {
			if err := s.Submit(r.Context()); err != nil {
				opts.logf("classify: submit from %s: %v", r.RemoteAddr, err)
			}
		}

		renderOpts := render.RenderOptions{Action: r.URL.Path}
		if opts.Hidden != nil {
			renderOpts = renderOpts.WithHidden(opts.Hidden(r)...)
		}
		body, err := renderer.Render(r.Context(), s.View(), renderOpts)
		if err != nil {
			opts.logf("classify: render page: %v", err)
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", renderer.ContentType())
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodHead {
			return
		}
		if _, err := w.Write(body); err != nil {
			opts.logf("classify: write page: %v", err)
		}
	})
}

// APIHandler builds the JSON handler with default options plus overrides.
func APIHandler(fns ...OptionFn) http.Handler {
	return APIHandlerWithOptions(NewOptions(fns...))
}

// APIHandlerWithOptions serves POST requests carrying an APIRequest.
func APIHandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	renderer := opts.APIRenderer
	if renderer == nil {
		renderer = jsonview.New()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			w.Header().Set("Allow", http.MethodPost)
			writeJSONError(w, http.StatusMethodNotAllowed, http.StatusText(http.StatusMethodNotAllowed))
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		req, err := decodeAPIRequest(http.MaxBytesReader(w, r.Body, opts.MaxBodyBytes))
		if err != nil {
			writeJSONError(w, statusForBody(err), err.Error())
			return
		}

		filters := opts.DefaultFilters
		if req.Filters != nil {
			filters, err = projection.ParseFilters(req.Filters)
			if err != nil {
				writeJSONError(w, http.StatusBadRequest, err.Error())
				return
			}
		}

		s := session.New(opts.Classifier, session.WithFilters(filters), session.WithInput(req.Input))
		submitErr := s.Submit(r.Context())
		if submitErr != nil {
			opts.logf("classify: api submit from %s: %v", r.RemoteAddr, submitErr)
		}

		body, err := renderer.Render(r.Context(), s.View(), render.RenderOptions{})
		if err != nil {
			opts.logf("classify: render api response: %v", err)
			writeJSONError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
			return
		}

		w.Header().Set("Content-Type", renderer.ContentType())
		w.WriteHeader(statusFor(submitErr))
		if _, err := w.Write(body); err != nil {
			opts.logf("classify: write api response: %v", err)
		}
	})
}

func decodeAPIRequest(body io.Reader) (APIRequest, error) {
	var req APIRequest
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return APIRequest{}, fmt.Errorf("classify: decode request: %w", err)
	}
	if dec.More() {
		return APIRequest{}, errors.New("classify: decode request: unexpected data after body")
	}
	return req, nil
}

func statusForBody(err error) int {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return http.StatusRequestEntityTooLarge
	}
	return http.StatusBadRequest
}

func pageRenderer(opts Options) (render.Renderer, error) {
	if opts.Renderer != nil {
		return opts.Renderer, nil
	}
	renderer, err := html.New()
	if err != nil {
		return nil, fmt.Errorf("classify: default page renderer: %w", err)
	}
	return renderer, nil
}

func failingHandler(err error) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, strings.TrimSpace(err.Error()), http.StatusInternalServerError)
	})
}

func writeJSONError(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(map[string]string{"error": msg})
}
