package main

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/verte-zerg/typetest/internal/config"
	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/typing"
)

func validConfig() model.Config {
	return model.Config{
		Source:      model.SourceBuiltin,
		Lang:        defaultLang,
		Words:       defaultWords,
		PunctSet:    defaultPunctSet,
		MaxLen:      defaultMaxLen,
		IdleRestart: defaultIdleRestart,
	}
}

func TestValidateConfig(t *testing.T) {
	if err := validateConfig(validConfig()); err != nil {
		t.Fatalf("expected default config to be valid, got %v", err)
	}

	cases := map[string]func(*model.Config){
		"unknown source":    func(c *model.Config) { c.Source = "web" },
		"file without path": func(c *model.Config) { c.Source = model.SourceFile },
		"zero words":        func(c *model.Config) { c.Words = 0 },
		"caps above one":    func(c *model.Config) { c.CapsPct = 1.5 },
		"negative punct":    func(c *model.Config) { c.PunctPct = -0.1 },
		"empty punct set":   func(c *model.Config) { c.PunctPct = 0.5; c.PunctSet = "" },
		"unicode punct set": func(c *model.Config) { c.PunctSet = "…" },
		"zero max len":      func(c *model.Config) { c.MaxLen = 0 },
		"huge max len":      func(c *model.Config) { c.MaxLen = maxAllowedLen + 1 },
		"control restart":   func(c *model.Config) { c.IdleRestart = "\t" },
		"non-ascii restart": func(c *model.Config) { c.IdleRestart = "é" },
	}
	for name, mutate := range cases {
		cfg := validConfig()
		mutate(&cfg)
		if err := validateConfig(cfg); err == nil {
			t.Fatalf("%s: expected error", name)
		}
	}
}

func TestValidateConfigAllowsDisabledIdleRestart(t *testing.T) {
	cfg := validConfig()
	cfg.IdleRestart = ""
	if err := validateConfig(cfg); err != nil {
		t.Fatalf("expected empty idle-restart to be valid, got %v", err)
	}
}

func TestApplyConfigRespectsChangedFlags(t *testing.T) {
	cmd := newRootCmd()
	if err := cmd.Flags().Set("words", "10"); err != nil {
		t.Fatalf("set flag: %v", err)
	}

	words := 50
	lang := "de"
	idle := ""
	applyConfig(cmd, config.FileConfig{
		Practice: config.PracticeConfig{Words: &words, Lang: &lang},
		Keys:     config.KeysConfig{IdleRestart: &idle},
	})

	if practiceWords != 10 {
		t.Fatalf("expected flag value 10 to win, got %d", practiceWords)
	}
	if practiceLang != "de" {
		t.Fatalf("expected config lang de, got %q", practiceLang)
	}
	if practiceIdleRestart != "" {
		t.Fatalf("expected idle restart disabled by config, got %q", practiceIdleRestart)
	}
	if practiceSource != defaultSource {
		t.Fatalf("expected default source, got %q", practiceSource)
	}
}

func TestDefaultConfigTemplateLoads(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := config.LoadConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Practice.Source != nil || cfg.Keys.IdleRestart != nil {
		t.Fatalf("expected template values to be commented out")
	}
}

func TestWriteSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := writeSummary(&buf, 0, typing.Stats{}, false); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output without a completed test, got %q", buf.String())
	}

	last := typing.Stats{Typed: 20, Correct: 19, Accuracy: 95, WPM: 60, Elapsed: 4 * time.Second}
	if err := writeSummary(&buf, 2, last, true); err != nil {
		t.Fatalf("write summary: %v", err)
	}
	want := "Completed 2 tests. Last: 60 WPM, 95.0% accuracy (19/20 correct) in 4s\n"
	if buf.String() != want {
		t.Fatalf("unexpected summary: %q", buf.String())
	}
}

func TestListWordlists(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"en.txt", "de.txt", "notes.md"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("word\n"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "fr.txt"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	langs, err := listWordlists(dir)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !reflect.DeepEqual(langs, []string{"de", "en"}) {
		t.Fatalf("unexpected langs: %v", langs)
	}

	langs, err = listWordlists(filepath.Join(dir, "missing"))
	if err != nil || langs != nil {
		t.Fatalf("expected nil for missing dir, got %v, %v", langs, err)
	}
}

func TestReadTextArg(t *testing.T) {
	got, err := readTextArg(strings.NewReader("from stdin"), []string{"inline"})
	if err != nil || got != "inline" {
		t.Fatalf("expected inline text, got %q, %v", got, err)
	}
	got, err = readTextArg(strings.NewReader("from stdin"), []string{"-"})
	if err != nil || got != "from stdin" {
		t.Fatalf("expected stdin text, got %q, %v", got, err)
	}
	got, err = readTextArg(strings.NewReader("piped"), nil)
	if err != nil || got != "piped" {
		t.Fatalf("expected stdin text, got %q, %v", got, err)
	}
}

func TestTextsTable(t *testing.T) {
	items := []model.Text{
		{ID: 1, Title: "fox", Body: "The quick brown fox.", CreatedAt: time.Now()},
		{ID: 12, Title: "hamlet", Body: "To be or not to be.", CreatedAt: time.Now()},
	}
	lines := textsTable(items)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if !strings.HasPrefix(lines[0], "ID  TITLE ") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], " 1  fox ") || !strings.Contains(lines[1], " 20  ") {
		t.Fatalf("unexpected row: %q", lines[1])
	}
}
