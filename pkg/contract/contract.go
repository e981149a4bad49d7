// Package contract loads the OpenAPI description of the classification
// service and resolves the endpoint the client posts to.
package contract

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// OperationClassify is the operationId of the classification call.
const OperationClassify = "classify"

// ErrUnknownOperation is returned by Endpoint for an operationId the document
// does not declare.
var ErrUnknownOperation = errors.New("contract: unknown operation")

//go:embed classifier.yaml
var embeddedDocument []byte

// Document returns a copy of the embedded service description.
func Document() []byte {
	out := make([]byte, len(embeddedDocument))
	copy(out, embeddedDocument)
	return out
}

// Endpoint is a resolved operation: method, path and absolute URL.
type Endpoint struct {
	OperationID string
	Method      string
	Path        string
	URL         string
}

// WithBaseURL returns e pointed at a different server. An empty base keeps e.
func (e Endpoint) WithBaseURL(base string) Endpoint {
	base = strings.TrimSpace(base)
	if base == "" {
		return e
	}
	e.URL = joinURL(base, e.Path)
	return e
}

// Contract is a loaded and validated service description.
type Contract struct {
	doc       *openapi3.T
	baseURL   string
	endpoints map[string]Endpoint
}

// Default loads the embedded document.
func Default(ctx context.Context) (*Contract, error) {
	return Load(ctx, embeddedDocument)
}

// Load parses raw (JSON or YAML), validates it and indexes its operations by
// operationId. The first declared server supplies the base URL.
func Load(ctx context.Context, raw []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("contract: document payload is empty")
	}

	loader := &openapi3.Loader{Context: ctx}
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("contract: load document: %w", err)
	}
	if err := doc.Validate(ctx); err != nil {
		return nil, fmt.Errorf("contract: validate: %w", err)
	}
	if len(doc.Servers) == 0 || doc.Servers[0] == nil || strings.TrimSpace(doc.Servers[0].URL) == "" {
		return nil, errors.New("contract: document does not declare a server")
	}

	c := &Contract{
		doc:       doc,
		baseURL:   strings.TrimSpace(doc.Servers[0].URL),
		endpoints: make(map[string]Endpoint),
	}

	if doc.Paths != nil {
		for path, item := range doc.Paths.Map() {
			if item == nil {
				continue
			}
			for method, op := range item.Operations() {
				c.index(method, path, op)
			}
		}
	}
	if len(c.endpoints) == 0 {
		return nil, errors.New("contract: no operations declared")
	}
	return c, nil
}

func (c *Contract) index(method, path string, op *openapi3.Operation) {
	if op == nil {
		return
	}
	id := op.OperationID
	if id == "" {
		id = strings.ToLower(method) + ":" + path
	}
	c.endpoints[id] = Endpoint{
		OperationID: id,
		Method:      strings.ToUpper(method),
		Path:        path,
		URL:         joinURL(c.baseURL, path),
	}
}

// BaseURL is the URL of the first declared server.
func (c *Contract) BaseURL() string {
	return c.baseURL
}

// Title is the document's info title.
func (c *Contract) Title() string {
	if c.doc.Info == nil {
		return ""
	}
	return c.doc.Info.Title
}

// Endpoint resolves operationID.
func (c *Contract) Endpoint(operationID string) (Endpoint, error) {
	ep, ok := c.endpoints[operationID]
	if !ok {
		return Endpoint{}, fmt.Errorf("%w: %q", ErrUnknownOperation, operationID)
	}
	return ep, nil
}

// Classify resolves the classification endpoint.
func (c *Contract) Classify() (Endpoint, error) {
	ep, err := c.Endpoint(OperationClassify)
	if err != nil {
		return Endpoint{}, err
	}
	if ep.Method != http.MethodPost {
		return Endpoint{}, fmt.Errorf("contract: %s must be a POST, got %s", OperationClassify, ep.Method)
	}
	return ep, nil
}

// Operations lists the declared operationIds, sorted.
func (c *Contract) Operations() []string {
	out := make([]string, 0, len(c.endpoints))
	for id := range c.endpoints {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

func joinURL(base, path string) string {
	base = strings.TrimRight(base, "/")
	if path == "" {
		return base
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}
