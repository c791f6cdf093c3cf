// Package typing implements the typing-test state machine.
package typing

import (
	"errors"
	"fmt"
	"time"
)

// DefaultMaxTextLen bounds the target text length in runes.
const DefaultMaxTextLen = 2000

var (
	// ErrEmptyText is wrapped by InvalidTextError when the target text is empty.
	ErrEmptyText = errors.New("target text is empty")
	// ErrTextTooLong is wrapped by InvalidTextError when the target text exceeds the limit.
	ErrTextTooLong = errors.New("target text is too long")
	// ErrUntypable is wrapped by InvalidTextError when the target contains a non-printable character.
	ErrUntypable = errors.New("target text contains an untypable character")
)

// InvalidTextError reports a target text that cannot be used for a session.
type InvalidTextError struct {
	Reason string
	Err    error
}

func (e *InvalidTextError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("invalid text: %v", e.Err)
	}
	return fmt.Sprintf("invalid text: %v: %s", e.Err, e.Reason)
}

func (e *InvalidTextError) Unwrap() error {
	return e.Err
}

// Phase is the lifecycle stage of a test attempt.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseActive
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseCompleted:
		return "completed"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// Clock supplies the current time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

// Now implements Clock.
func (f ClockFunc) Now() time.Time {
	return f()
}

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// Session holds the state of one typing attempt.
type Session struct {
	target []rune
	typed  []rune
	phase  Phase

	startedAt time.Time
	endedAt   time.Time

	stats Stats
	clock Clock
}

type sessionOptions struct {
	clock  Clock
	maxLen int
}

// Option configures session creation.
type Option func(*sessionOptions)

// WithClock sets the clock used for timestamps and elapsed time.
func WithClock(c Clock) Option {
	return func(o *sessionOptions) {
		if c != nil {
			o.clock = c
		}
	}
}

// WithMaxLen overrides DefaultMaxTextLen. Non-positive values keep the default.
func WithMaxLen(n int) Option {
	return func(o *sessionOptions) {
		if n > 0 {
			o.maxLen = n
		}
	}
}

// New creates an idle session for the given target text.
func New(text string, opts ...Option) (*Session, error) {
	o := sessionOptions{clock: SystemClock, maxLen: DefaultMaxTextLen}
	for _, opt := range opts {
		opt(&o)
	}
	target := []rune(text)
	if len(target) == 0 {
		return nil, &InvalidTextError{Err: ErrEmptyText}
	}
	if len(target) > o.maxLen {
		return nil, &InvalidTextError{
			Err:    ErrTextTooLong,
			Reason: fmt.Sprintf("%d characters, limit is %d", len(target), o.maxLen),
		}
	}
	for i, r := range target {
		if !IsPrintable(r) {
			return nil, &InvalidTextError{
				Err:    ErrUntypable,
				Reason: fmt.Sprintf("%q at position %d", r, i),
			}
		}
	}
	return &Session{
		target: target,
		typed:  make([]rune, 0, len(target)),
		phase:  PhaseIdle,
		clock:  o.clock,
	}, nil
}

// IsPrintable reports whether r is in the printable ASCII range.
func IsPrintable(r rune) bool {
	return r >= 0x20 && r <= 0x7e
}

// Phase returns the current lifecycle phase.
func (s *Session) Phase() Phase {
	return s.phase
}

// Target returns the text to reproduce.
func (s *Session) Target() string {
	return string(s.target)
}

// Typed returns the characters entered so far.
func (s *Session) Typed() string {
	return string(s.typed)
}

// Stats returns the statistics computed after the last mutation or refresh.
func (s *Session) Stats() Stats {
	return s.stats
}

// StartedAt returns the first keystroke time; ok is false while idle.
func (s *Session) StartedAt() (time.Time, bool) {
	return s.startedAt, s.phase != PhaseIdle
}

// EndedAt returns the completion time; ok is false until completed.
func (s *Session) EndedAt() (time.Time, bool) {
	return s.endedAt, s.phase == PhaseCompleted
}

// Refresh recomputes statistics against the clock. Completed sessions keep their frozen values.
func (s *Session) Refresh() {
	s.stats = ComputeStats(s.typed, s.target, s.elapsed())
}

func (s *Session) elapsed() time.Duration {
	switch s.phase {
	case PhaseActive:
		return s.clock.Now().Sub(s.startedAt)
	case PhaseCompleted:
		return s.endedAt.Sub(s.startedAt)
	default:
		return 0
	}
}

func (s *Session) appendRune(r rune) bool {
	if s.phase == PhaseCompleted || len(s.typed) >= len(s.target) {
		return false
	}
	if s.phase == PhaseIdle {
		s.startedAt = s.clock.Now()
		s.phase = PhaseActive
	}
	s.typed = append(s.typed, r)
	if len(s.typed) == len(s.target) {
		s.endedAt = s.clock.Now()
		s.phase = PhaseCompleted
	}
	return true
}

func (s *Session) deleteRune() bool {
	if s.phase == PhaseCompleted || len(s.typed) == 0 {
		return false
	}
	s.typed = s.typed[:len(s.typed)-1]
	return true
}

// Snapshot is a read-only view of a session for rendering.
type Snapshot struct {
	Target    []rune
	Typed     []rune
	Phase     Phase
	StartedAt time.Time
	EndedAt   time.Time
	Stats     Stats
}

// Snapshot copies the session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Target:    append([]rune(nil), s.target...),
		Typed:     append([]rune(nil), s.typed...),
		Phase:     s.phase,
		StartedAt: s.startedAt,
		EndedAt:   s.endedAt,
		Stats:     s.stats,
	}
}

// Progress returns the typed fraction of the target in [0, 1].
func (sn Snapshot) Progress() float64 {
	if len(sn.Target) == 0 {
		return 0
	}
	return float64(len(sn.Typed)) / float64(len(sn.Target))
}
