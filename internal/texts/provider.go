// Package texts provides the target texts for typing tests.
package texts

import (
	"errors"
	"math/rand"

	"github.com/samber/lo"
)

// ErrNoTexts is returned when a provider has nothing to offer.
var ErrNoTexts = errors.New("no texts available")

// Provider supplies one non-empty text per call.
type Provider interface {
	Next() (string, error)
}

var samples = []string{
	"The quick brown fox jumps over the lazy dog.",
	"Programming is the art of telling another human what one wants the computer to do.",
	"In the beginning was the Word, and the Word was with God, and the Word was God.",
	"To be or not to be, that is the question.",
	"All that glitters is not gold, but gold always glitters in the right light.",
}

// Pool picks randomly among a fixed set of passages, avoiding immediate repeats.
type Pool struct {
	rnd   *rand.Rand
	texts []string
	last  int
}

// NewPool returns a pool over texts, dropping empty and duplicate entries.
func NewPool(rnd *rand.Rand, texts []string) *Pool {
	texts = lo.Uniq(lo.Filter(texts, func(text string, _ int) bool {
		return text != ""
	}))
	return &Pool{rnd: rnd, texts: texts, last: -1}
}

// Builtin returns a pool of the bundled sample sentences cut to maxLen.
func Builtin(rnd *rand.Rand, maxLen int) *Pool {
	return NewPool(rnd, lo.Map(samples, func(text string, _ int) string {
		return Normalize(text, maxLen)
	}))
}

// Len returns the number of distinct passages.
func (p *Pool) Len() int {
	return len(p.texts)
}

// Next implements Provider.
func (p *Pool) Next() (string, error) {
	n := len(p.texts)
	switch {
	case n == 0:
		return "", ErrNoTexts
	case n == 1:
		p.last = 0
		return p.texts[0], nil
	}
	var idx int
	if p.last < 0 {
		idx = p.rnd.Intn(n)
	} else {
		idx = p.rnd.Intn(n - 1)
		if idx >= p.last {
			idx++
		}
	}
	p.last = idx
	return p.texts[idx], nil
}
