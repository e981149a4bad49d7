// Package tui runs the submission flow in a terminal: prompt for JSON, pick
// the visible fields, submit, show the outcome, repeat.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/puneetripathi/bajaj-frontend/pkg/projection"
	"github.com/puneetripathi/bajaj-frontend/pkg/render"
	"github.com/puneetripathi/bajaj-frontend/pkg/session"
)

// Placeholder is the help text shown with the JSON prompt.
const Placeholder = `Enter JSON (e.g., { "data": [] })`

// Choices offered after each outcome, in display order.
const (
	ChoiceSubmitAnother = "Submit another payload"
	ChoiceChangeFilters = "Change filters"
	ChoiceQuit          = "Quit"
)

var nextChoices = []string{ChoiceSubmitAnother, ChoiceChangeFilters, ChoiceQuit}

// Theme holds optional prefixes for printed messages.
type Theme struct {
	InfoPrefix  string
	ErrorPrefix string
}

// Runner drives one session through a PromptDriver.
type Runner struct {
	driver        PromptDriver
	session       *session.Session
	renderer      render.Renderer
	theme         Theme
	confirmSubmit bool
}

// Option configures a Runner.
type Option func(*Runner)

// WithPromptDriver overrides the survey driver.
func WithPromptDriver(driver PromptDriver) Option {
	return func(r *Runner) {
		if driver != nil {
			r.driver = driver
		}
	}
}

// WithTheme applies message prefixes.
func WithTheme(theme Theme) Option {
	return func(r *Runner) {
		r.theme = theme
	}
}

// WithConfirmSubmit controls the "Submit this payload?" question asked before
// each call. It is on by default.
func WithConfirmSubmit(enabled bool) Option {
	return func(r *Runner) {
		r.confirmSubmit = enabled
	}
}

// NewRunner builds a runner printing outcomes with renderer.
func NewRunner(s *session.Session, renderer render.Renderer, options ...Option) (*Runner, error) {
	if s == nil {
		return nil, ErrNoSession
	}
	if renderer == nil {
		return nil, errors.New("tui: renderer is required")
	}
	r := &Runner{session: s, renderer: renderer, confirmSubmit: true}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(nil)
	}
	return r, nil
}

// Run loops until the user quits. It returns ErrAborted on Ctrl+C and the
// context error on cancellation; submit failures are shown, not returned.
func (r *Runner) Run(ctx context.Context) error {
	if ctx == nil {
		return errors.New("tui: context is required")
	}

	if err := r.promptInput(ctx); err != nil {
		return err
	}
	if err := r.promptFilters(ctx); err != nil {
		return err
	}

	for {
		send, err := r.confirm(ctx)
		if err != nil {
			return err
		}
		if send {
			if err := r.submit(ctx); err != nil {
				return err
			}
		}

		again, err := r.next(ctx)
		if err != nil || !again {
			return err
		}
		if err := r.promptInput(ctx); err != nil {
			return err
		}
	}
}

// next asks what to do after an outcome. Changing filters re-renders the
// stored outcome without a new call and asks again.
func (r *Runner) next(ctx context.Context) (bool, error) {
	for {
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message: "What next?",
			Options: nextChoices,
		})
		if err != nil {
			return false, err
		}

		switch nextChoices[clampChoice(choice)] {
		case ChoiceSubmitAnother:
			return true, nil
		case ChoiceChangeFilters:
			if err := r.promptFilters(ctx); err != nil {
				return false, err
			}
			if err := r.show(ctx); err != nil {
				return false, err
			}
		default:
			return false, nil
		}
	}
}

// confirm asks before a submit. A declined payload is kept as the next
// input default and no call is made.
func (r *Runner) confirm(ctx context.Context) (bool, error) {
	if !r.confirmSubmit {
		return true, nil
	}
	return r.driver.Confirm(ctx, ConfirmConfig{
		Message: "Submit this payload?",
		Default: true,
		Help:    r.session.Input(),
	})
}

func (r *Runner) promptInput(ctx context.Context) error {
	raw, err := r.driver.Input(ctx, InputConfig{
		Message: "JSON input",
		Default: r.session.Input(),
		Help:    Placeholder,
	})
	if err != nil {
		return err
	}
	r.session.SetInput(strings.TrimSpace(raw))
	return nil
}

// promptFilters offers every key with the current ones preselected, then
// toggles each key whose membership changed.
func (r *Runner) promptFilters(ctx context.Context) error {
	keys := projection.FilterKeys()
	current := r.session.Filters()

	options := make([]string, len(keys))
	var defaults []int
	for idx, key := range keys {
		options[idx] = key.Title()
		if current.Has(key) {
			defaults = append(defaults, idx)
		}
	}

	picked, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  "Visible fields",
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return err
	}

	chosen := make(map[int]bool, len(picked))
	for _, idx := range picked {
		chosen[idx] = true
	}
	for idx, key := range keys {
		if chosen[idx] != current.Has(key) {
			r.session.Toggle(key)
		}
	}
	return nil
}

func (r *Runner) submit(ctx context.Context) error {
	if err := r.session.Submit(ctx); err != nil {
		if errors.Is(err, session.ErrSuperseded) {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
	}
	return r.show(ctx)
}

func (r *Runner) show(ctx context.Context) error {
	view := r.session.View()
	out, err := r.renderer.Render(ctx, view, render.RenderOptions{})
	if err != nil {
		return fmt.Errorf("tui: render outcome: %w", err)
	}

	msg := strings.TrimRight(string(out), "\n")
	prefix := r.theme.InfoPrefix
	if view.HasError() {
		prefix = r.theme.ErrorPrefix
	}
	if msg == "" {
		return nil
	}
	return r.driver.Info(ctx, prefix+msg)
}

func clampChoice(idx int) int {
	if idx < 0 || idx >= len(nextChoices) {
		return len(nextChoices) - 1
	}
	return idx
}
