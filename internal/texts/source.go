package texts

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"math/rand"

	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/wordlist"
)

// Library lists the bodies of stored texts.
type Library interface {
	Bodies(ctx context.Context) ([]string, error)
}

// Deps holds collaborators for FromConfig.
type Deps struct {
	Rand    *rand.Rand
	Library Library
	// Notice receives non-fatal messages for the user. May be nil.
	Notice func(format string, args ...any)
}

// FromConfig builds the provider selected by cfg.Source.
func FromConfig(ctx context.Context, cfg model.Config, deps Deps) (Provider, error) {
	switch cfg.Source {
	case model.SourceBuiltin, "":
		return Builtin(deps.Rand, cfg.MaxLen), nil
	case model.SourceFile:
		if cfg.File == "" {
			return nil, fmt.Errorf("--file is required for source %q", model.SourceFile)
		}
		passages, err := LoadFile(cfg.File, cfg.MaxLen)
		if err != nil {
			return nil, fmt.Errorf("failed to load texts: %w", err)
		}
		return NewPool(deps.Rand, passages), nil
	case model.SourceWords:
		words, err := loadWords(cfg, deps)
		if err != nil {
			return nil, err
		}
		return NewWords(deps.Rand, words, WordsOptions{
			Count:    cfg.Words,
			CapsPct:  cfg.CapsPct,
			PunctPct: cfg.PunctPct,
			PunctSet: []rune(cfg.PunctSet),
			MaxLen:   cfg.MaxLen,
		}), nil
	case model.SourceLibrary:
		if deps.Library == nil {
			return nil, errors.New("text library is not available")
		}
		bodies, err := deps.Library.Bodies(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load library: %w", err)
		}
		passages := make([]string, 0, len(bodies))
		for _, body := range bodies {
			passages = append(passages, Normalize(body, cfg.MaxLen))
		}
		pool := NewPool(deps.Rand, passages)
		if pool.Len() == 0 {
			return nil, fmt.Errorf("text library is empty; add texts with: typetest texts add: %w", ErrNoTexts)
		}
		return pool, nil
	default:
		return nil, fmt.Errorf("unknown source %q", cfg.Source)
	}
}

func loadWords(cfg model.Config, deps Deps) ([]string, error) {
	words, err := wordlist.LoadWords(cfg.WordList)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && cfg.Lang == "en" {
			if deps.Notice != nil {
				deps.Notice("word list %s not found; using built-in common words\n", cfg.WordList)
			}
			return wordlist.Common(), nil
		}
		return nil, fmt.Errorf("failed to load word list %s: %w", cfg.WordList, err)
	}
	words = wordlist.Filter(words, wordlist.FilterForLang(cfg.Lang))
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s has no typable words", cfg.WordList)
	}
	return words, nil
}
