// Package model defines shared data structures.
package model

import "time"

// Text sources understood by the practice command.
const (
	SourceBuiltin = "builtin"
	SourceFile    = "file"
	SourceWords   = "words"
	SourceLibrary = "library"
)

// Config defines practice settings.
type Config struct {
	Source      string
	File        string
	Lang        string
	WordList    string
	Words       int
	CapsPct     float64
	PunctPct    float64
	PunctSet    string
	MaxLen      int
	IdleRestart string
}

// Text is a passage stored in the text library.
type Text struct {
	ID        int64
	Title     string
	Body      string
	CreatedAt time.Time
}
