package texts

import (
	"math/rand"
	"strings"
	"unicode"
)

// Words generates texts from random words of a word list.
type Words struct {
	rnd      *rand.Rand
	words    []string
	count    int
	capsPct  float64
	punctPct float64
	punctSet []rune
	maxLen   int
}

// WordsOptions configures a Words provider.
type WordsOptions struct {
	Count    int
	CapsPct  float64
	PunctPct float64
	PunctSet []rune
	MaxLen   int
}

// NewWords returns a provider drawing opts.Count words per text from words.
func NewWords(rnd *rand.Rand, words []string, opts WordsOptions) *Words {
	return &Words{
		rnd:      rnd,
		words:    words,
		count:    opts.Count,
		capsPct:  opts.CapsPct,
		punctPct: opts.PunctPct,
		punctSet: opts.PunctSet,
		maxLen:   opts.MaxLen,
	}
}

// Next implements Provider.
func (g *Words) Next() (string, error) {
	if len(g.words) == 0 || g.count <= 0 {
		return "", ErrNoTexts
	}
	return Normalize(strings.Join(g.Generate(), " "), g.maxLen), nil
}

// Generate selects words uniformly and applies caps/punctuation rules.
func (g *Words) Generate() []string {
	result := make([]string, 0, g.count)
	for i := 0; i < g.count; i++ {
		word := g.words[g.rnd.Intn(len(g.words))]
		word = applyCaps(g.rnd, word, g.capsPct)
		word = applyPunct(g.rnd, word, g.punctPct, g.punctSet)
		result = append(result, word)
	}
	return result
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 {
		return word
	}
	if rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

func applyPunct(rnd *rand.Rand, word string, punctPct float64, punctSet []rune) string {
	if punctPct <= 0 || len(punctSet) == 0 {
		return word
	}
	if rnd.Float64() > punctPct {
		return word
	}
	punct := punctSet[rnd.Intn(len(punctSet))]
	return word + string(punct)
}
