package typing

import (
	"errors"
	"fmt"
)

// EventKind enumerates the abstract key events understood by the processor.
type EventKind int

const (
	EventIgnored EventKind = iota
	EventQuit
	EventRestart
	EventBackspace
	EventChar
)

func (k EventKind) String() string {
	switch k {
	case EventIgnored:
		return "ignored"
	case EventQuit:
		return "quit"
	case EventRestart:
		return "restart"
	case EventBackspace:
		return "backspace"
	case EventChar:
		return "char"
	default:
		return fmt.Sprintf("event(%d)", int(k))
	}
}

// Event is one key event delivered by the event source.
type Event struct {
	Kind EventKind
	Char rune
}

// Char builds a character event.
func Char(r rune) Event {
	return Event{Kind: EventChar, Char: r}
}

var (
	Quit      = Event{Kind: EventQuit}
	Restart   = Event{Kind: EventRestart}
	Backspace = Event{Kind: EventBackspace}
	Ignored   = Event{Kind: EventIgnored}
)

// DefaultIdleRestartKeys restart a session that is idle or completed.
const DefaultIdleRestartKeys = "rR"

// TextProvider supplies target texts for new sessions.
type TextProvider interface {
	Next() (string, error)
}

// ProviderFunc adapts a function to TextProvider.
type ProviderFunc func() (string, error)

// Next implements TextProvider.
func (f ProviderFunc) Next() (string, error) {
	return f()
}

// ErrNoProvider is returned when a restart is requested without a text provider.
var ErrNoProvider = errors.New("no text provider configured")

// Result describes the outcome of processing one event.
type Result struct {
	// Session is the session after the event; a new pointer when Restarted.
	Session   *Session
	Quit      bool
	Restarted bool
	Mutated   bool
}

// Processor reduces key events into session state.
type Processor struct {
	provider    TextProvider
	clock       Clock
	maxLen      int
	idleRestart map[rune]struct{}
}

// ProcessorOption configures a Processor.
type ProcessorOption func(*Processor)

// WithProcessorClock sets the clock passed to new sessions.
func WithProcessorClock(c Clock) ProcessorOption {
	return func(p *Processor) {
		if c != nil {
			p.clock = c
		}
	}
}

// WithTextLimit sets the maximum target length for new sessions.
func WithTextLimit(n int) ProcessorOption {
	return func(p *Processor) {
		if n > 0 {
			p.maxLen = n
		}
	}
}

// WithIdleRestartKeys replaces the restart shortcut set used outside active typing.
// An empty string disables it.
func WithIdleRestartKeys(keys string) ProcessorOption {
	return func(p *Processor) {
		p.idleRestart = runeSet(keys)
	}
}

// NewProcessor returns a processor that draws texts from provider.
func NewProcessor(provider TextProvider, opts ...ProcessorOption) *Processor {
	p := &Processor{
		provider:    provider,
		clock:       SystemClock,
		maxLen:      DefaultMaxTextLen,
		idleRestart: runeSet(DefaultIdleRestartKeys),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func runeSet(s string) map[rune]struct{} {
	set := make(map[rune]struct{}, len(s))
	for _, r := range s {
		set[r] = struct{}{}
	}
	return set
}

// Create builds a fresh session for text using the processor's clock and limit.
func (p *Processor) Create(text string) (*Session, error) {
	return New(text, WithClock(p.clock), WithMaxLen(p.maxLen))
}

// Start builds the first session from the provider.
func (p *Processor) Start() (*Session, error) {
	return p.Restart(nil)
}

// Restart discards current and returns a session with a freshly chosen text.
// On failure the caller keeps current.
func (p *Processor) Restart(_ *Session) (*Session, error) {
	if p.provider == nil {
		return nil, ErrNoProvider
	}
	text, err := p.provider.Next()
	if err != nil {
		return nil, fmt.Errorf("failed to get text: %w", err)
	}
	return p.Create(text)
}

// Process applies ev to s.
func (p *Processor) Process(s *Session, ev Event) (Result, error) {
	res := Result{Session: s}
	switch {
	case ev.Kind == EventQuit:
		res.Quit = true
		return res, nil
	case ev.Kind == EventRestart, p.isIdleRestart(s, ev):
		next, err := p.Restart(s)
		if err != nil {
			return res, err
		}
		res.Session = next
		res.Restarted = true
		return res, nil
	}
	if s.phase == PhaseCompleted {
		return res, nil
	}
	switch ev.Kind {
	case EventBackspace:
		res.Mutated = s.deleteRune()
	case EventChar:
		if IsPrintable(ev.Char) {
			res.Mutated = s.appendRune(ev.Char)
		}
	}
	if res.Mutated {
		s.Refresh()
	}
	return res, nil
}

func (p *Processor) isIdleRestart(s *Session, ev Event) bool {
	if ev.Kind != EventChar || s.phase == PhaseActive {
		return false
	}
	_, ok := p.idleRestart[ev.Char]
	return ok
}
