package library

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	lib, err := Open(filepath.Join(t.TempDir(), "nested", "library.db"))
	if err != nil {
		t.Fatalf("open library: %v", err)
	}
	t.Cleanup(func() {
		_ = lib.Close()
	})
	return lib
}

func TestAddAndList(t *testing.T) {
	lib := openTestLibrary(t)
	lib.now = func() time.Time { return time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	id1, err := lib.Add(ctx, "fox", "The quick brown fox.")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	id2, err := lib.Add(ctx, "", "  Second text without a title that is rather long.  ")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if id1 == id2 {
		t.Fatalf("expected distinct ids")
	}

	texts, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(texts) != 2 {
		t.Fatalf("expected 2 texts, got %d", len(texts))
	}
	if texts[0].ID != id1 || texts[0].Title != "fox" || texts[0].Body != "The quick brown fox." {
		t.Fatalf("unexpected first text: %+v", texts[0])
	}
	if texts[1].Body != "Second text without a title that is rather long." {
		t.Fatalf("expected trimmed body, got %q", texts[1].Body)
	}
	if !strings.HasSuffix(texts[1].Title, "...") || len(texts[1].Title) != 32 {
		t.Fatalf("expected derived title, got %q", texts[1].Title)
	}
	if !texts[0].CreatedAt.Equal(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected created_at %v", texts[0].CreatedAt)
	}
}

func TestAddDuplicateReturnsExistingID(t *testing.T) {
	lib := openTestLibrary(t)
	ctx := context.Background()
	id1, err := lib.Add(ctx, "a", "same body")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	id2, err := lib.Add(ctx, "b", "same body")
	if err != nil {
		t.Fatalf("add duplicate: %v", err)
	}
	if id1 != id2 {
		t.Fatalf("expected same id, got %d and %d", id1, id2)
	}
	texts, err := lib.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(texts) != 1 {
		t.Fatalf("expected 1 text, got %d", len(texts))
	}
}

func TestAddEmptyBody(t *testing.T) {
	lib := openTestLibrary(t)
	if _, err := lib.Add(context.Background(), "t", "   "); err == nil {
		t.Fatalf("expected error for empty body")
	}
}

func TestDelete(t *testing.T) {
	lib := openTestLibrary(t)
	ctx := context.Background()
	id, err := lib.Add(ctx, "", "to be removed")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := lib.Delete(ctx, id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := lib.Delete(ctx, id); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	bodies, err := lib.Bodies(ctx)
	if err != nil {
		t.Fatalf("bodies: %v", err)
	}
	if len(bodies) != 0 {
		t.Fatalf("expected empty library, got %v", bodies)
	}
}

func TestReopenKeepsTexts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")
	lib, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := lib.Add(context.Background(), "", "persisted"); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := lib.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
	lib, err = Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer func() {
		_ = lib.Close()
	}()
	bodies, err := lib.Bodies(context.Background())
	if err != nil {
		t.Fatalf("bodies: %v", err)
	}
	if len(bodies) != 1 || bodies[0] != "persisted" {
		t.Fatalf("unexpected bodies: %v", bodies)
	}
}
