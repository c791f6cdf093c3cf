package typing

import (
	"errors"
	"strings"
	"testing"
	"time"
)

type fakeClock struct {
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.now = c.now.Add(d)
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestNewSessionIsIdle(t *testing.T) {
	s, err := New("cat")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	if s.Phase() != PhaseIdle {
		t.Fatalf("expected idle, got %s", s.Phase())
	}
	if s.Typed() != "" {
		t.Fatalf("expected empty buffer, got %q", s.Typed())
	}
	if _, ok := s.StartedAt(); ok {
		t.Fatalf("expected no start time")
	}
	if _, ok := s.EndedAt(); ok {
		t.Fatalf("expected no end time")
	}
	if s.Stats() != (Stats{}) {
		t.Fatalf("expected zero stats, got %+v", s.Stats())
	}
}

func TestNewRejectsInvalidText(t *testing.T) {
	tests := []struct {
		name string
		text string
		opts []Option
		want error
	}{
		{"empty", "", nil, ErrEmptyText},
		{"too long", strings.Repeat("a", 11), []Option{WithMaxLen(10)}, ErrTextTooLong},
		{"newline", "a\nb", nil, ErrUntypable},
		{"non ascii", "café", nil, ErrUntypable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.text, tt.opts...)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			var invalid *InvalidTextError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected InvalidTextError, got %T", err)
			}
		})
	}
}

func TestNewAcceptsTextAtLimit(t *testing.T) {
	if _, err := New(strings.Repeat("a", 10), WithMaxLen(10)); err != nil {
		t.Fatalf("expected text at limit to be accepted: %v", err)
	}
}

func TestPhaseString(t *testing.T) {
	if PhaseIdle.String() != "idle" || PhaseActive.String() != "active" || PhaseCompleted.String() != "completed" {
		t.Fatalf("unexpected phase names")
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s, err := New("ab")
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.appendRune('a')
	snap := s.Snapshot()
	snap.Typed[0] = 'z'
	snap.Target[0] = 'z'
	if s.Typed() != "a" || s.Target() != "ab" {
		t.Fatalf("snapshot mutation leaked into session: %q %q", s.Typed(), s.Target())
	}
	if got := snap.Progress(); got != 0.5 {
		t.Fatalf("expected progress 0.5, got %v", got)
	}
}

func TestRefreshIsIdempotent(t *testing.T) {
	clock := newFakeClock()
	s, err := New("hello world", WithClock(clock))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	for _, r := range "hello" {
		s.appendRune(r)
	}
	clock.Advance(6 * time.Second)
	s.Refresh()
	first := s.Stats()
	s.Refresh()
	if s.Stats() != first {
		t.Fatalf("expected identical stats, got %+v and %+v", first, s.Stats())
	}
}

func TestRefreshFrozenAfterCompletion(t *testing.T) {
	clock := newFakeClock()
	s, err := New("hello", WithClock(clock))
	if err != nil {
		t.Fatalf("new session: %v", err)
	}
	s.appendRune('h')
	clock.Advance(60 * time.Second)
	for _, r := range "ello" {
		s.appendRune(r)
	}
	s.Refresh()
	done := s.Stats()
	clock.Advance(time.Hour)
	s.Refresh()
	if s.Stats() != done {
		t.Fatalf("expected frozen stats, got %+v then %+v", done, s.Stats())
	}
	if done.WPM != 1 {
		t.Fatalf("expected 1 wpm, got %d", done.WPM)
	}
}
