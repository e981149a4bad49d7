// Package session holds the state behind one submission form: the raw input,
// the filter toggles and the outcome of the latest submit.
package session

import (
	"context"
	"errors"
	"sync"

	"github.com/puneetripathi/bajaj-frontend/pkg/payload"
	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
)

// ErrSuperseded is returned by Submit when a newer submit started before this
// one finished. Its outcome is discarded.
var ErrSuperseded = errors.New("session: superseded by a newer submit")

// Classifier performs the remote call.
type Classifier interface {
	Classify(ctx context.Context, p payload.RequestPayload) (projection.ServiceResponse, error)
}

// ClassifierFunc adapts a function to Classifier.
type ClassifierFunc func(ctx context.Context, p payload.RequestPayload) (projection.ServiceResponse, error)

func (fn ClassifierFunc) Classify(ctx context.Context, p payload.RequestPayload) (projection.ServiceResponse, error) {
	return fn(ctx, p)
}

// Session is safe for concurrent use. Only the latest submit may change the
// stored error or response.
type Session struct {
	mu         sync.Mutex
	classifier Classifier
	input      string
	filters    projection.FilterSet
	errMsg     string
	response   *projection.ServiceResponse
	seq        uint64
}

// Option configures a Session.
type Option func(*Session)

// WithFilters replaces the initial filter selection.
func WithFilters(set projection.FilterSet) Option {
	return func(s *Session) {
		s.filters = set
	}
}

// WithInput seeds the raw input text.
func WithInput(raw string) Option {
	return func(s *Session) {
		s.input = raw
	}
}

// New builds a Session with every filter selected.
func New(classifier Classifier, options ...Option) *Session {
	s := &Session{
		classifier: classifier,
		filters:    projection.DefaultFilters(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	return s
}

// SetInput replaces the raw input text.
func (s *Session) SetInput(raw string) {
	s.mu.Lock()
	s.input = raw
	s.mu.Unlock()
}

// Input returns the raw input text.
func (s *Session) Input() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// SubmitInput sets the input and submits it.
func (s *Session) SubmitInput(ctx context.Context, raw string) error {
	s.SetInput(raw)
	return s.Submit(ctx)
}

// Submit clears the previous outcome, validates the input and, when valid,
// sends it. The returned error is also stored as the display message unless
// it is ErrSuperseded.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	s.seq++
	seq := s.seq
	s.errMsg = ""
	s.response = nil
	raw := s.input
	classifier := s.classifier
	s.mu.Unlock()

	p, err := payload.Validate(raw)
	if err != nil {
		return s.finish(seq, projection.ServiceResponse{}, err)
	}
	if classifier == nil {
		return s.finish(seq, projection.ServiceResponse{}, errors.New("session: no classifier configured"))
	}

	resp, err := classifier.Classify(ctx, p)
	return s.finish(seq, resp, err)
}

func (s *Session) finish(seq uint64, resp projection.ServiceResponse, err error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if seq != s.seq {
		return ErrSuperseded
	}
	if err != nil {
		s.errMsg = err.Error()
		return err
	}
	s.response = &resp
	return nil
}

// Toggle flips one filter and returns the new set.
func (s *Session) Toggle(key projection.FilterKey) projection.FilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = s.filters.Toggle(key)
	return s.filters
}

// SetFilters replaces the whole selection.
func (s *Session) SetFilters(set projection.FilterSet) {
	s.mu.Lock()
	s.filters = set
	s.mu.Unlock()
}

// Filters returns the current selection.
func (s *Session) Filters() projection.FilterSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.filters
}

// Error returns the stored display message, empty when none.
func (s *Session) Error() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.errMsg
}

// Response returns the stored response, if any.
func (s *Session) Response() (projection.ServiceResponse, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.response == nil {
		return projection.ServiceResponse{}, false
	}
	return *s.response, true
}

// View snapshots the session for rendering. Filters are applied at snapshot
// time, so toggling after a submit changes the next view without a new call.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := View{
		Input:   s.input,
		Error:   s.errMsg,
		Filters: s.filters,
	}
	if s.errMsg == "" && s.response != nil {
		resp := *s.response
		v.Response = &resp
		v.Fields = projection.Project(resp, s.filters)
	}
	return v
}
