package storage_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/nutritrack/nutritrack/internal/storage"
)

func newTestStore(t *testing.T) *storage.Store {
	t.Helper()
	store, err := storage.NewStore(filepath.Join(t.TempDir(), "nutritrack.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

type testRecord struct {
	Name  string  `json:"name"`
	Count int     `json:"count"`
	Score float64 `json:"score"`
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	saved := testRecord{Name: "breakfast", Count: 3, Score: 72.5}
	if err := store.Save(ctx, "test_record", saved); err != nil {
		t.Fatalf("save: %v", err)
	}

	var loaded testRecord
	found, err := store.Load(ctx, "test_record", &loaded)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !found {
		t.Fatal("expected record to be found")
	}
	if loaded != saved {
		t.Fatalf("expected %+v, got %+v", saved, loaded)
	}
}

func TestLoadMissingKeyIsNotAnError(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)

	var loaded testRecord
	found, err := store.Load(context.Background(), "never_saved", &loaded)
	if err != nil {
		t.Fatalf("expected nil error for missing key, got %v", err)
	}
	if found {
		t.Fatal("expected missing key to report not found")
	}
}

func TestSaveReplacesPreviousValue(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Save(ctx, "test_record", testRecord{Name: "first"}); err != nil {
		t.Fatalf("save first: %v", err)
	}
	if err := store.Save(ctx, "test_record", testRecord{Name: "second"}); err != nil {
		t.Fatalf("save second: %v", err)
	}

	var loaded testRecord
	if _, err := store.Load(ctx, "test_record", &loaded); err != nil {
		t.Fatalf("load: %v", err)
	}
	if loaded.Name != "second" {
		t.Fatalf("expected second value to win, got %q", loaded.Name)
	}
}

func TestLoadMismatchedShapeIsAnError(t *testing.T) {
	t.Parallel()
	store := newTestStore(t)
	ctx := context.Background()

	// A stored value that cannot decode into the caller's type must surface
	// as a load error, not a crash.
	if err := store.Save(ctx, "test_record", "not an object"); err != nil {
		t.Fatalf("save: %v", err)
	}

	var loaded testRecord
	if _, err := store.Load(ctx, "test_record", &loaded); err == nil {
		t.Fatal("expected decode error for mismatched shape")
	}
}

func TestValueSurvivesReopen(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nutritrack.db")
	ctx := context.Background()

	store, err := storage.NewStore(path)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.Save(ctx, "test_record", testRecord{Name: "durable"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := storage.NewStore(path)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()

	var loaded testRecord
	found, err := reopened.Load(ctx, "test_record", &loaded)
	if err != nil {
		t.Fatalf("load after reopen: %v", err)
	}
	if !found || loaded.Name != "durable" {
		t.Fatalf("expected durable value after reopen, got found=%v %+v", found, loaded)
	}
}
