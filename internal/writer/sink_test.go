package writer

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestWriteLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	sink, err := Open(path, false, testLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	for _, line := range []string{"alpha", "beta", "gamma"} {
		if err := sink.WriteLine(line); err != nil {
			t.Fatalf("WriteLine failed: %v", err)
		}
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if got, want := string(data), "alpha\nbeta\ngamma\n"; got != want {
		t.Errorf("file content = %q, want %q", got, want)
	}
}

func TestOpenTruncatesExisting(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("stale content\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	sink, err := Open(path, false, testLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := sink.WriteLine("fresh"); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if got := string(data); got != "fresh\n" {
		t.Errorf("file content = %q, want %q", got, "fresh\n")
	}
}

func TestOpenAppendsWhenResuming(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	if err := os.WriteFile(path, []byte("first\n"), 0644); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	sink, err := Open(path, true, testLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := sink.WriteLine("second"); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if got := string(data); got != "first\nsecond\n" {
		t.Errorf("file content = %q, want %q", got, "first\nsecond\n")
	}
}

func TestFlushMakesLinesVisible(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	sink, err := Open(path, false, testLogger())
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer func() { _ = sink.Close() }()

	if err := sink.WriteLine("buffered"); err != nil {
		t.Fatalf("WriteLine failed: %v", err)
	}
	if err := sink.Flush(); err != nil {
		t.Fatalf("Flush failed: %v", err)
	}

	data, _ := os.ReadFile(path)
	if got := string(data); got != "buffered\n" {
		t.Errorf("file content after flush = %q, want %q", got, "buffered\n")
	}
}

func TestOpenBadPath(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing", "out.txt"), false, testLogger()); err == nil {
		t.Error("expected error opening output in a missing directory")
	}
}
