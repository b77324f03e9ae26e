package session

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestPathDerivation(t *testing.T) {
	store := NewStore("/tmp/wordlist.txt", testLogger())
	if got, want := store.Path(), "/tmp/wordlist.txt"+FileSuffix; got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestRoundTrip(t *testing.T) {
	output := filepath.Join(t.TempDir(), "wordlist.txt")
	store := NewStore(output, testLogger())

	if err := store.Persist(12345); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if got := store.Read(); got != 12345 {
		t.Errorf("Read() = %d, want 12345", got)
	}

	// Persist overwrites, it does not accumulate.
	if err := store.Persist(20000); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if got := store.Read(); got != 20000 {
		t.Errorf("Read() = %d, want 20000", got)
	}
}

func TestReadMissingRecord(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "wordlist.txt"), testLogger())
	if got := store.Read(); got != 0 {
		t.Errorf("Read() = %d, want 0 for missing record", got)
	}
}

func TestReadMalformedRecord(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "not a number", content: "not-a-count"},
		{name: "negative", content: "-5"},
		{name: "empty", content: ""},
		{name: "trailing junk", content: "123abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "wordlist.txt")
			store := NewStore(output, testLogger())
			if err := os.WriteFile(store.Path(), []byte(tt.content), 0644); err != nil {
				t.Fatalf("WriteFile failed: %v", err)
			}
			if got := store.Read(); got != 0 {
				t.Errorf("Read() = %d, want 0 for malformed record", got)
			}
		})
	}
}

func TestReadTrimsWhitespace(t *testing.T) {
	output := filepath.Join(t.TempDir(), "wordlist.txt")
	store := NewStore(output, testLogger())
	if err := os.WriteFile(store.Path(), []byte("42\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if got := store.Read(); got != 42 {
		t.Errorf("Read() = %d, want 42", got)
	}
}

func TestClear(t *testing.T) {
	output := filepath.Join(t.TempDir(), "wordlist.txt")
	store := NewStore(output, testLogger())

	if err := store.Persist(7); err != nil {
		t.Fatalf("Persist failed: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if _, err := os.Stat(store.Path()); !os.IsNotExist(err) {
		t.Error("session file still exists after Clear")
	}

	// Clearing an already-cleared record is not an error.
	if err := store.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}
