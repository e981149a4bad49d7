// Package testsupport holds fixtures and golden-file helpers shared by tests.
package testsupport

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
)

// FixtureResponseBody is a complete successful answer from the service.
const FixtureResponseBody = `{"is_success":true,"user_id":"u1","email":"a@b.com","roll_number":"12","numbers":["1","2"],"alphabets":["A","B"],"highest_alphabet":["Z"]}`

// FixtureResponse decodes FixtureResponseBody.
func FixtureResponse(t *testing.T) projection.ServiceResponse {
	t.Helper()

	resp, err := projection.DecodeServiceResponse([]byte(FixtureResponseBody))
	if err != nil {
		t.Fatalf("decode fixture response: %v", err)
	}
	return resp
}

// Recorded is one request seen by a ServiceStub.
type Recorded struct {
	Method      string
	ContentType string
	RequestID   string
	Body        []byte
}

// ServiceStub is an httptest server standing in for the classification
// service. It answers every request with Status and Body.
type ServiceStub struct {
	*httptest.Server

	mu       sync.Mutex
	status   int
	body     string
	requests []Recorded
}

// NewServiceStub starts a stub answering 200 with FixtureResponseBody. The
// server is closed when the test ends.
func NewServiceStub(t *testing.T) *ServiceStub {
	t.Helper()

	stub := &ServiceStub{status: http.StatusOK, body: FixtureResponseBody}
	stub.Server = httptest.NewServer(http.HandlerFunc(stub.serve))
	t.Cleanup(stub.Close)
	return stub
}

// Respond changes the canned answer.
func (s *ServiceStub) Respond(status int, body string) {
	s.mu.Lock()
	s.status = status
	s.body = body
	s.mu.Unlock()
}

// Requests returns what the stub has received so far.
func (s *ServiceStub) Requests() []Recorded {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Recorded, len(s.requests))
	copy(out, s.requests)
	return out
}

func (s *ServiceStub) serve(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)

	s.mu.Lock()
	s.requests = append(s.requests, Recorded{
		Method:      r.Method,
		ContentType: r.Header.Get("Content-Type"),
		RequestID:   r.Header.Get("X-Request-ID"),
		Body:        body,
	})
	status, answer := s.status, s.body
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, answer)
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// MustReadGolden reads a golden file and returns its raw bytes.
func MustReadGolden(t *testing.T, path string) []byte {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	return data
}

// MustReadGoldenString reads a golden file and returns its string content.
func MustReadGoldenString(t *testing.T, path string) string {
	t.Helper()
	return string(MustReadGolden(t, path))
}

// WriteMaybeGolden updates a golden file when UPDATE_GOLDENS is set. Returns
// true if the golden was written (test should exit early).
func WriteMaybeGolden(t *testing.T, path string, data []byte) bool {
	t.Helper()
	if os.Getenv("UPDATE_GOLDENS") == "" {
		return false
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir golden dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("write golden: %v", err)
	}
	return true
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
