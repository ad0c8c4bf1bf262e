package form

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/goliatone/go-plantillas/pkg/model"
	"github.com/goliatone/go-plantillas/pkg/validation"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateEditing State = iota
	StateValidating
	StateInvalid
	StateValid
	StateSubmitted
)

func (s State) String() string {
	switch s {
	case StateEditing:
		return "editing"
	case StateValidating:
		return "validating"
	case StateInvalid:
		return "invalid"
	case StateValid:
		return "valid"
	case StateSubmitted:
		return "submitted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// SaveFunc receives the complete value map of a valid submission.
type SaveFunc func(ctx context.Context, values map[string]any) error

// Option configures a Session.
type Option func(*config)

type config struct {
	onSave       SaveFunc
	onCancel     func()
	notifier     Notifier
	logger       logrus.FieldLogger
	checkPayload bool
}

// WithOnSave sets the save callback.
func WithOnSave(fn SaveFunc) Option {
	return func(c *config) { c.onSave = fn }
}

// WithOnCancel sets the cancel callback.
func WithOnCancel(fn func()) Option {
	return func(c *config) { c.onCancel = fn }
}

// WithNotifier sets where validation failures are reported.
func WithNotifier(n Notifier) Option {
	return func(c *config) {
		if n != nil {
			c.notifier = n
		}
	}
}

// WithLogger sets the session logger.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithPayloadCheck also type-checks values against the submission schema.
// Use it when values arrive from an untrusted client.
func WithPayloadCheck() Option {
	return func(c *config) { c.checkPayload = true }
}

// Session drives one form instance from editing to submission.
type Session struct {
	mu        sync.Mutex
	structure model.FormStructure
	values    *ValueMap
	state     State
	lastErrs  []string
	cfg       config
}

// NewSession seeds a session with initial data.
func NewSession(structure model.FormStructure, initial map[string]any, opts ...Option) *Session {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	cfg := config{notifier: discardNotifier{}, logger: logger}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}
	return &Session{
		structure: structure,
		values:    NewValueMap(structure, initial),
		state:     StateEditing,
		cfg:       cfg,
	}
}

// Structure returns the form structure the session validates against.
func (s *Session) Structure() model.FormStructure {
	return s.structure
}

// State reports the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Values returns a copy of the current values.
func (s *Session) Values() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values.Values()
}

// LastErrors returns the messages of the last failed validation.
func (s *Session) LastErrors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.lastErrs...)
}

// Set records an edit. Editing an invalid form returns it to Editing.
func (s *Session) Set(name string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	switch s.state {
	case StateSubmitted:
		return ErrSubmitted
	case StateValid:
		return ErrSaving
	}
	if err := s.values.Set(name, value); err != nil {
		return err
	}
	s.state = StateEditing
	return nil
}

// Reset starts a new edit session from fresh initial data.
func (s *Session) Reset(initial map[string]any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values.Reset(s.structure, initial)
	s.state = StateEditing
	s.lastErrs = nil
}

// Submit validates the values. Failures are notified and returned as a
// *ValidationError without calling the save callback. A valid form is saved
// exactly once; a save error returns the session to Editing with the data
// kept.
func (s *Session) Submit(ctx context.Context) error {
	s.mu.Lock()
	switch s.state {
	case StateSubmitted:
		s.mu.Unlock()
		return ErrSubmitted
	case StateValid:
		s.mu.Unlock()
		return ErrSaving
	}

	s.state = StateValidating
	values := s.values.Values()
	issues := validation.Check(s.structure, values)
	if s.cfg.checkPayload {
		issues = append(issues, validation.CheckPayload(s.structure, values)...)
	}

	if len(issues) > 0 {
		messages := make([]string, 0, len(issues))
		for _, issue := range issues {
			messages = append(messages, issue.Message)
		}
		s.state = StateInvalid
		s.lastErrs = messages
		s.mu.Unlock()

		s.cfg.logger.WithField("errors", len(messages)).Debug("form: submission rejected")
		s.cfg.notifier.Notify(ctx, ValidationNotification(messages))
		return &ValidationError{Messages: messages, Issues: issues}
	}

	s.state = StateValid
	s.lastErrs = nil
	s.mu.Unlock()

	var err error
	if s.cfg.onSave != nil {
		err = s.cfg.onSave(ctx, values)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.state = StateEditing
		s.cfg.logger.WithError(err).Warn("form: save failed")
		return fmt.Errorf("form: save: %w", err)
	}
	s.state = StateSubmitted
	s.cfg.logger.Debug("form: submitted")
	return nil
}

// Cancel notifies the cancel callback. The session itself is unchanged.
func (s *Session) Cancel() {
	if s.cfg.onCancel != nil {
		s.cfg.onCancel()
	}
}
