package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/crimson-sun/newsdesk/internal/model"
	"github.com/crimson-sun/newsdesk/internal/output"
)

func testRecord(ts, msg string) model.Record {
	return model.Record{
		Timestamp:    model.Ptr(ts),
		Author:       model.Ptr("כתב"),
		Message:      model.Ptr(msg),
		Description:  model.Ptr("פרטים נוספים"),
		Source:       "final",
		MessageTypes: []string{"אחר"},
		Extra:        map[string]any{"url": "https://example.com/a?b=1&c=2"},
	}
}

func TestWriteProducesValidNDJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path, output.Standard)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := out.Write(context.Background(), testRecord("08:00", "עדכון")); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	out.Close()

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines, want 5", len(lines))
	}
	for i, line := range lines {
		var rec model.Record
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			t.Errorf("line %d: invalid JSON: %v", i, err)
		}
		if model.Deref(rec.Message) != "עדכון" {
			t.Errorf("line %d: message = %q, want עדכון", i, model.Deref(rec.Message))
		}
	}
}

func TestAppendsByDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	for run := 0; run < 2; run++ {
		out, err := New(path, output.Standard)
		if err != nil {
			t.Fatalf("New error: %v", err)
		}
		out.Write(context.Background(), testRecord("08:00", "a"))
		out.Close()
	}

	data, _ := os.ReadFile(path)
	if n := strings.Count(string(data), "\n"); n != 2 {
		t.Fatalf("got %d lines after two appends, want 2", n)
	}
}

func TestTruncateMakesRerunsIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	var snapshots []string
	for run := 0; run < 2; run++ {
		out, err := New(path, output.Full, WithTruncate())
		if err != nil {
			t.Fatalf("New error: %v", err)
		}
		out.Write(context.Background(), testRecord("08:00", "a"))
		out.Write(context.Background(), testRecord("08:01", "b"))
		out.Close()
		data, _ := os.ReadFile(path)
		snapshots = append(snapshots, string(data))
	}

	if snapshots[0] != snapshots[1] {
		t.Fatalf("reruns differ:\n%s\n---\n%s", snapshots[0], snapshots[1])
	}
	if !strings.Contains(snapshots[0], "a?b=1&c=2") {
		t.Errorf("expected unescaped URL in Full output, got %s", snapshots[0])
	}
}

func TestRotationTriggersAtMaxSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.jsonl")

	// Each line is well over 150 bytes, so every write after the first rotates.
	out, err := New(path, output.Standard, WithMaxSize(150))
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	for i := 0; i < 5; i++ {
		if err := out.Write(context.Background(), testRecord("08:00", "אזעקה")); err != nil {
			t.Fatalf("Write error: %v", err)
		}
	}
	out.Close()

	if _, err := os.Stat(path + ".1"); os.IsNotExist(err) {
		t.Error("expected rotated file .1 to exist")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("current file stat error: %v", err)
	}
	if info.Size() == 0 {
		t.Error("current file is empty after rotation")
	}
}

func TestCloseFlushesData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path, output.Standard)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	out.Write(context.Background(), testRecord("09:00", "x"))
	out.Close()

	data, _ := os.ReadFile(path)
	if len(data) == 0 {
		t.Error("file is empty, Close did not flush buffered data")
	}
}

func TestVerbosityMinimalStripsFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path, output.Minimal)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	out.Write(context.Background(), testRecord("09:00", "x"))
	out.Close()

	data, _ := os.ReadFile(path)
	var m map[string]any
	json.Unmarshal([]byte(strings.TrimSpace(string(data))), &m)

	if m["description"] != nil {
		t.Error("Minimal verbosity should null 'description'")
	}
	if _, ok := m["extra"]; ok {
		t.Error("Minimal verbosity should strip 'extra'")
	}
}

func TestConcurrentWritesSafe(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.jsonl")
	out, err := New(path, output.Standard)
	if err != nil {
		t.Fatalf("New error: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.Write(context.Background(), testRecord("10:00", "y"))
		}()
	}
	wg.Wait()
	out.Close()

	data, _ := os.ReadFile(path)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 50 {
		t.Errorf("got %d lines, want 50", len(lines))
	}
}

func TestNewBadPath(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing-dir", "out.jsonl"), output.Standard)
	if err == nil {
		t.Fatal("expected error for unopenable path")
	}
}
