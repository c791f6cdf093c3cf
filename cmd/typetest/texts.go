package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/verte-zerg/typetest/internal/config"
	"github.com/verte-zerg/typetest/internal/library"
	"github.com/verte-zerg/typetest/internal/model"
	"github.com/verte-zerg/typetest/internal/texts"
)

var textsTitle string

func newTextsCmd() *cobra.Command {
	textsCmd := &cobra.Command{
		Use:   "texts",
		Short: "Manage the text library",
	}

	addCmd := &cobra.Command{
		Use:   "add [TEXT|-]",
		Short: "Add a text to the library (reads stdin for - or no argument)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTextsAddCmd,
	}
	addCmd.Flags().StringVar(&textsTitle, "title", "", "title of the text (default: its first words)")

	importCmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Add every blank-line separated passage of FILE",
		Args:  cobra.ExactArgs(1),
		RunE:  runTextsImportCmd,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List stored texts",
		Args:  cobra.NoArgs,
		RunE:  runTextsListCmd,
	}

	rmCmd := &cobra.Command{
		Use:   "rm ID",
		Short: "Remove a text from the library",
		Args:  cobra.ExactArgs(1),
		RunE:  runTextsRmCmd,
	}

	textsCmd.AddCommand(addCmd, importCmd, listCmd, rmCmd)
	return textsCmd
}

func withLibrary(fn func(ctx context.Context, lib *library.Library) error) error {
	lib, err := library.Open(config.DefaultLibraryPath())
	if err != nil {
		return fmt.Errorf("failed to open library: %w", err)
	}
	defer func() {
		if cerr := lib.Close(); cerr != nil {
			logErrf("failed to close library: %v\n", cerr)
		}
	}()
	return fn(context.Background(), lib)
}

func runTextsAddCmd(cmd *cobra.Command, args []string) error {
	body, err := readTextArg(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}
	body = texts.Normalize(body, 0)
	if body == "" {
		return fmt.Errorf("text is empty")
	}
	return withLibrary(func(ctx context.Context, lib *library.Library) error {
		id, err := lib.Add(ctx, textsTitle, body)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(cmd.OutOrStdout(), "Added text %d\n", id)
		return err
	})
}

func readTextArg(stdin io.Reader, args []string) (string, error) {
	if len(args) == 1 && args[0] != "-" {
		return args[0], nil
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return string(data), nil
}

func runTextsImportCmd(cmd *cobra.Command, args []string) error {
	passages, err := texts.LoadFile(args[0], 0)
	if err != nil {
		return fmt.Errorf("failed to import %s: %w", args[0], err)
	}
	return withLibrary(func(ctx context.Context, lib *library.Library) error {
		for _, passage := range passages {
			if _, err := lib.Add(ctx, "", passage); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Imported %d texts from %s\n", len(passages), args[0])
		return err
	})
}

func runTextsListCmd(cmd *cobra.Command, _ []string) error {
	return withLibrary(func(ctx context.Context, lib *library.Library) error {
		items, err := lib.List(ctx)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			logErrln("Library is empty. Add texts with: typetest texts add")
			return nil
		}
		for _, line := range textsTable(items) {
			if _, err := fmt.Fprintln(cmd.OutOrStdout(), line); err != nil {
				return fmt.Errorf("failed to write output: %w", err)
			}
		}
		return nil
	})
}

func textsTable(items []model.Text) []string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			item.Title,
			strconv.Itoa(len(item.Body)),
			item.CreatedAt.Local().Format("2006-01-02 15:04"),
		})
	}
	return formatTable([]string{"ID", "TITLE", "CHARS", "ADDED"}, rows, map[int]bool{0: true, 2: true})
}

func runTextsRmCmd(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(strings.TrimSpace(args[0]), 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid text id %q", args[0])
	}
	return withLibrary(func(ctx context.Context, lib *library.Library) error {
		if err := lib.Delete(ctx, id); err != nil {
			return err
		}
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "Removed text %d\n", id)
		return err
	})
}
