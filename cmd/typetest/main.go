// Package main provides the CLI entrypoint for typetest.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/typetest/internal/config"
	"github.com/verte-zerg/typetest/internal/library"
	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/texts"
	"github.com/verte-zerg/typetest/internal/tui"
	"github.com/verte-zerg/typetest/internal/typing"
)

const (
	defaultSource      = model.SourceBuiltin
	defaultLang        = "en"
	defaultWords       = 25
	defaultCaps        = 0.0
	defaultPunct       = 0.0
	defaultMaxLen      = 1000
	maxAllowedLen      = 5000
	defaultIdleRestart = typing.DefaultIdleRestartKeys
)

const defaultPunctSet = ".,!?;:"

var (
	practiceSource      string
	practiceFile        string
	practiceLang        string
	practiceWordList    string
	practiceWords       int
	practiceCaps        float64
	practicePunct       float64
	practicePunctSet    string
	practiceMaxLen      int
	practiceIdleRestart string
	practiceLogFile     string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "typetest",
		Short:         "Terminal typing speed and accuracy test",
		SilenceUsage:  true,
		SilenceErrors: false,
		Args:          cobra.NoArgs,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceSource, "source", defaultSource, "text source: builtin, file, words or library")
	rootCmd.Flags().StringVar(&practiceFile, "file", "", "text file for --source file (blank-line separated passages)")
	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "word list language for --source words")
	rootCmd.Flags().StringVar(&practiceWordList, "wordlist", "", "word list path for --source words (default: <config>/typetest/wordlists/<lang>.txt)")
	rootCmd.Flags().IntVar(&practiceWords, "words", defaultWords, "words per text for --source words")
	rootCmd.Flags().Float64Var(&practiceCaps, "caps", defaultCaps, "probability of capitalized first letter (0-1)")
	rootCmd.Flags().Float64Var(&practicePunct, "punct", defaultPunct, "punctuation probability per word (0-1)")
	rootCmd.Flags().StringVar(&practicePunctSet, "punct-set", defaultPunctSet, "punctuation set")
	rootCmd.Flags().IntVar(&practiceMaxLen, "max-len", defaultMaxLen, "maximum text length in characters")
	rootCmd.Flags().StringVar(&practiceIdleRestart, "idle-restart", defaultIdleRestart, "characters that start a new text while not typing (empty disables)")
	rootCmd.Flags().StringVar(&practiceLogFile, "log-file", "", "write diagnostic logs to this file")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newTextsCmd())
	rootCmd.AddCommand(newWordlistsCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyConfig(cmd, fileCfg)

	cfg := model.Config{
		Source:      practiceSource,
		File:        practiceFile,
		Lang:        practiceLang,
		WordList:    practiceWordList,
		Words:       practiceWords,
		CapsPct:     practiceCaps,
		PunctPct:    practicePunct,
		PunctSet:    practicePunctSet,
		MaxLen:      practiceMaxLen,
		IdleRestart: practiceIdleRestart,
	}
	if cfg.WordList == "" {
		cfg.WordList = config.DefaultWordListPath(cfg.Lang)
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("stdin is not a terminal")
	}

	logger, closeLog, err := openLogger(practiceLogFile)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := context.Background()
	deps := texts.Deps{
		Rand:   rand.New(rand.NewSource(time.Now().UnixNano())),
		Notice: logErrf,
	}
	if cfg.Source == model.SourceLibrary {
		lib, err := library.Open(config.DefaultLibraryPath())
		if err != nil {
			return fmt.Errorf("failed to open library: %w", err)
		}
		defer func() {
			if cerr := lib.Close(); cerr != nil {
				logErrf("failed to close library: %v\n", cerr)
			}
		}()
		deps.Library = lib
	}
	provider, err := texts.FromConfig(ctx, cfg, deps)
	if err != nil {
		return err
	}

	proc := typing.NewProcessor(provider,
		typing.WithTextLimit(cfg.MaxLen),
		typing.WithIdleRestartKeys(cfg.IdleRestart),
	)
	session, err := proc.Start()
	if err != nil {
		return fmt.Errorf("failed to start test: %w", err)
	}
	logger.Debug("starting", "source", cfg.Source, "max_len", cfg.MaxLen)

	m := tui.NewModel(proc, session, cfg.IdleRestart, logger)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	last, ok := m.LastResult()
	return writeSummary(cmd.OutOrStdout(), m.Completed(), last, ok)
}

func applyConfig(cmd *cobra.Command, fileCfg config.FileConfig) {
	p := fileCfg.Practice
	applyStringConfig(cmd, "source", &practiceSource, p.Source)
	applyStringConfig(cmd, "file", &practiceFile, p.File)
	applyStringConfig(cmd, "lang", &practiceLang, p.Lang)
	applyStringConfig(cmd, "wordlist", &practiceWordList, p.WordList)
	applyIntConfig(cmd, "words", &practiceWords, p.Words)
	applyFloatConfig(cmd, "caps", &practiceCaps, p.CapsPct)
	applyFloatConfig(cmd, "punct", &practicePunct, p.PunctPct)
	applyStringConfig(cmd, "punct-set", &practicePunctSet, p.PunctSet)
	applyIntConfig(cmd, "max-len", &practiceMaxLen, p.MaxLen)
	applyStringConfig(cmd, "idle-restart", &practiceIdleRestart, fileCfg.Keys.IdleRestart)
}

func writeSummary(w io.Writer, completed int, last typing.Stats, ok bool) error {
	if !ok {
		return nil
	}
	noun := "tests"
	if completed == 1 {
		noun = "test"
	}
	_, err := fmt.Fprintf(w, "Completed %d %s. Last: %d WPM, %.1f%% accuracy (%d/%d correct) in %s\n",
		completed, noun, last.WPM, last.Accuracy, last.Correct, last.Typed, last.Elapsed.Round(100*time.Millisecond))
	return err
}

func openLogger(path string) (*slog.Logger, func(), error) {
	if path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, nil)), func() {}, nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return logger, func() {
		if cerr := file.Close(); cerr != nil {
			logErrf("failed to close log file: %v\n", cerr)
		}
	}, nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newWordlistsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "wordlists",
		Short: "List installed word lists",
		Args:  cobra.NoArgs,
		RunE:  runWordlistsCmd,
	}
}

func runWordlistsCmd(cmd *cobra.Command, _ []string) error {
	dir := config.DefaultWordListDir()
	langs, err := listWordlists(dir)
	if err != nil {
		return err
	}
	if len(langs) == 0 {
		logErrf("No word lists found. Put one word per line in %s\n", filepath.Join(dir, "<lang>.txt"))
		logErrln("The built-in English words are used when en.txt is missing.")
		return nil
	}
	for _, lang := range langs {
		if _, err := fmt.Fprintln(cmd.OutOrStdout(), lang); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func listWordlists(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read word list directory: %w", err)
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".txt") {
			continue
		}
		langs = append(langs, strings.TrimSuffix(name, ".txt"))
	}
	sort.Strings(langs)
	return langs, nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# typetest configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# source = %q          # builtin, file, words or library
# file = ""                 # Text file for source = "file"
# lang = %q                 # Word list language for source = "words"
# wordlist = ""             # Word list path (default: wordlists/<lang>.txt)
# words = %d                # Words per text
# caps = %.2f               # Probability of capitalized first letter (0-1)
# punct = %.2f              # Punctuation probability per word (0-1)
# punct-set = %q        # Punctuation set
# max-len = %d            # Maximum text length in characters

[keys]
# idle-restart = %q         # Characters that start a new text while not typing
`,
		defaultSource,
		defaultLang,
		defaultWords,
		defaultCaps,
		defaultPunct,
		defaultPunctSet,
		defaultMaxLen,
		defaultIdleRestart,
	)
}

func validateConfig(cfg model.Config) error {
	switch cfg.Source {
	case model.SourceBuiltin, model.SourceFile, model.SourceWords, model.SourceLibrary:
	default:
		return fmt.Errorf("--source must be one of builtin, file, words, library")
	}
	if cfg.Source == model.SourceFile && cfg.File == "" {
		return fmt.Errorf("--file is required with --source file")
	}
	if cfg.Words <= 0 {
		return fmt.Errorf("--words must be > 0")
	}
	if cfg.CapsPct < 0 || cfg.CapsPct > 1 {
		return fmt.Errorf("--caps must be between 0 and 1")
	}
	if cfg.PunctPct < 0 || cfg.PunctPct > 1 {
		return fmt.Errorf("--punct must be between 0 and 1")
	}
	if cfg.PunctPct > 0 && cfg.PunctSet == "" {
		return fmt.Errorf("--punct-set must not be empty")
	}
	if !isPrintableASCII(cfg.PunctSet) || strings.Contains(cfg.PunctSet, " ") {
		return fmt.Errorf("--punct-set must contain printable ASCII characters only")
	}
	if cfg.MaxLen <= 0 || cfg.MaxLen > maxAllowedLen {
		return fmt.Errorf("--max-len must be between 1 and %d", maxAllowedLen)
	}
	if !isPrintableASCII(cfg.IdleRestart) {
		return fmt.Errorf("--idle-restart must contain printable ASCII characters only")
	}
	return nil
}

func isPrintableASCII(s string) bool {
	for _, r := range s {
		if !typing.IsPrintable(r) {
			return false
		}
	}
	return true
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
