package tui

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/puneetripathi/bajaj-frontend/pkg/payload"
	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
	"github.com/puneetripathi/bajaj-frontend/pkg/renderers/text"
	"github.com/puneetripathi/bajaj-frontend/pkg/session"
	"github.com/puneetripathi/bajaj-frontend/pkg/testsupport"
)

type stubDriver struct {
	inputs       []string
	selectIdx    []int
	multiIdx     [][]int
	confirm      []bool
	infoMessages []string
	multiConfigs []SelectConfig
	inputPos     int
	selectPos    int
	multiPos     int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, _ InputConfig) (string, error) {
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, _ ConfirmConfig) (bool, error) {
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, _ SelectConfig) (int, error) {
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) MultiSelect(_ context.Context, cfg SelectConfig) ([]int, error) {
	s.multiConfigs = append(s.multiConfigs, cfg)
	if s.multiPos >= len(s.multiIdx) {
		return nil, errors.New("no multiselect scripted")
	}
	val := s.multiIdx[s.multiPos]
	s.multiPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func newRunner(t *testing.T, driver PromptDriver, classifier session.Classifier) (*Runner, *session.Session) {
	t.Helper()

	s := session.New(classifier)
	r, err := NewRunner(s, text.New(), WithPromptDriver(driver), WithTheme(Theme{ErrorPrefix: "x "}))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}
	return r, s
}

func fixtureClassifier(t *testing.T, calls *int) session.Classifier {
	resp := testsupport.FixtureResponse(t)
	return session.ClassifierFunc(func(context.Context, payload.RequestPayload) (projection.ServiceResponse, error) {
		*calls++
		return resp, nil
	})
}

func TestRun_SubmitAndQuit(t *testing.T) {
	var calls int
	driver := &stubDriver{
		inputs:    []string{`  {"data":["A","1"]}  `},
		multiIdx:  [][]int{{0}},
		confirm:   []bool{true},
		selectIdx: []int{2},
	}
	r, s := newRunner(t, driver, fixtureClassifier(t, &calls))

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	if calls != 1 {
		t.Fatalf("expected one call, got %d", calls)
	}
	if s.Filters() != projection.NewFilterSet(projection.Numbers) {
		t.Fatalf("unexpected filters %s", s.Filters())
	}
	want := []string{"Status: Successful\nUser ID: u1\nEmail: a@b.com\nRoll Number: 12\nnumbers: 1, 2"}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}

	first := driver.multiConfigs[0]
	if diff := cmp.Diff([]string{"Show Numbers", "Show Alphabets", "Show Highest Alphabet"}, first.Options); diff != "" {
		t.Fatalf("options mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{0, 1, 2}, first.Defaults); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_ChangeFiltersReprojectsWithoutCall(t *testing.T) {
	var calls int
	driver := &stubDriver{
		inputs:    []string{`{"data":[]}`},
		multiIdx:  [][]int{{}, {2}},
		confirm:   []bool{true},
		selectIdx: []int{1, 2},
	}
	r, _ := newRunner(t, driver, fixtureClassifier(t, &calls))

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 1 {
		t.Fatalf("changing filters should not call the service, got %d calls", calls)
	}
	if len(driver.infoMessages) != 2 {
		t.Fatalf("expected two outcomes, got %v", driver.infoMessages)
	}
	if got := driver.infoMessages[1]; got != "Status: Successful\nUser ID: u1\nEmail: a@b.com\nRoll Number: 12\nhighest alphabet: Z" {
		t.Fatalf("unexpected re-rendered outcome %q", got)
	}
	if diff := cmp.Diff([]int(nil), driver.multiConfigs[1].Defaults); diff != "" {
		t.Fatalf("second prompt should preselect nothing (-want +got):\n%s", diff)
	}
}

func TestRun_InvalidInputShownThenRetried(t *testing.T) {
	var calls int
	driver := &stubDriver{
		inputs:    []string{`{"data": 5}`, `{"data": [5]}`},
		multiIdx:  [][]int{{0, 1, 2}},
		confirm:   []bool{true, true},
		selectIdx: []int{0, 2},
	}
	r, _ := newRunner(t, driver, fixtureClassifier(t, &calls))

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one call after the retry, got %d", calls)
	}
	if got := driver.infoMessages[0]; got != "x Error: Invalid JSON format. Expected { \"data\": [] }" {
		t.Fatalf("unexpected error message %q", got)
	}
}

func TestRun_DeclinedPayloadIsNotSent(t *testing.T) {
	var calls int
	driver := &stubDriver{
		inputs:    []string{`{"data":["A"]}`, `{"data":["B"]}`},
		multiIdx:  [][]int{{1}},
		confirm:   []bool{false, true},
		selectIdx: []int{0, 2},
	}
	r, _ := newRunner(t, driver, fixtureClassifier(t, &calls))

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected only the confirmed payload to be sent, got %d calls", calls)
	}
	if driver.confirmPos != 2 {
		t.Fatalf("expected a confirmation per payload, got %d", driver.confirmPos)
	}
	want := []string{"Status: Successful\nUser ID: u1\nEmail: a@b.com\nRoll Number: 12\nalphabets: A, B"}
	if diff := cmp.Diff(want, driver.infoMessages); diff != "" {
		t.Fatalf("messages mismatch (-want +got):\n%s", diff)
	}
}

func TestRun_WithoutConfirmation(t *testing.T) {
	var calls int
	driver := &stubDriver{
		inputs:    []string{`{"data":[]}`},
		multiIdx:  [][]int{{0}},
		selectIdx: []int{2},
	}
	s := session.New(fixtureClassifier(t, &calls))
	r, err := NewRunner(s, text.New(), WithPromptDriver(driver), WithConfirmSubmit(false))
	if err != nil {
		t.Fatalf("new runner: %v", err)
	}

	if err := r.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if calls != 1 || driver.confirmPos != 0 {
		t.Fatalf("expected a call without confirmation, got %d calls and %d confirms", calls, driver.confirmPos)
	}
}

func TestRun_Aborted(t *testing.T) {
	driver := &abortingDriver{stubDriver: stubDriver{}}
	r, _ := newRunner(t, driver, nil)

	if err := r.Run(context.Background()); !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

func TestNewRunner_RequiresSession(t *testing.T) {
	if _, err := NewRunner(nil, text.New()); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

type abortingDriver struct {
	stubDriver
}

func (d *abortingDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestIndicesOf(t *testing.T) {
	got := indicesOf([]string{"a", "b", "c"}, []string{"c", "a", "z"})
	if diff := cmp.Diff([]int{0, 2}, got); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"b"}, defaultsFromIndices([]string{"a", "b"}, []int{1, 5, -1})); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}
}
