package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/crimson-sun/newsdesk/internal/metrics"
	"github.com/crimson-sun/newsdesk/internal/model"
	"github.com/crimson-sun/newsdesk/internal/source"

	_ "github.com/crimson-sun/newsdesk/internal/source/jsonl"
)

// --- mocks ---

// echoProcessor turns each raw record's "message" field into a Record.
type echoProcessor struct {
	calls int
	seen  []model.RawRecord
}

func (p *echoProcessor) ProcessBatch(raws []model.RawRecord) ([]model.Record, error) {
	p.calls++
	p.seen = raws
	out := make([]model.Record, 0, len(raws))
	for _, r := range raws {
		msg, _ := r.Fields["message"].(string)
		out = append(out, model.Record{Message: model.Ptr(msg), Source: r.Source, MessageTypes: []string{"אחר"}})
	}
	return out, nil
}

type failingProcessor struct{ err error }

func (p failingProcessor) ProcessBatch([]model.RawRecord) ([]model.Record, error) {
	return nil, p.err
}

type panickingProcessor struct{}

func (panickingProcessor) ProcessBatch([]model.RawRecord) ([]model.Record, error) {
	panic("boom")
}

// mockOutput collects written records; fails after failAfter writes when set.
type mockOutput struct {
	records   []model.Record
	failAfter int
}

func (m *mockOutput) Write(_ context.Context, rec model.Record) error {
	if m.failAfter > 0 && len(m.records) >= m.failAfter {
		return errors.New("sink full")
	}
	m.records = append(m.records, rec)
	return nil
}

func (m *mockOutput) Close() error { return nil }

// --- helpers ---

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func jsonlLocation(path, tag string) source.Location {
	return source.Location{Path: path, Format: "jsonl", Tag: tag}
}

// --- tests ---

func TestLoadTagsRecordsInLocationOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.jsonl", `{"message":"one"}`+"\n"+`{"message":"two"}`+"\n")
	b := writeFile(t, dir, "b.jsonl", `{"message":"three"}`+"\n")

	p := New([]source.Location{jsonlLocation(a, "first"), jsonlLocation(b, "second")}, &echoProcessor{})
	raws, report := p.Load(context.Background())

	if len(raws) != 3 {
		t.Fatalf("got %d raw records, want 3", len(raws))
	}
	wantTags := []string{"first", "first", "second"}
	for i, r := range raws {
		if r.Source != wantTags[i] {
			t.Errorf("raws[%d].Source = %q, want %q", i, r.Source, wantTags[i])
		}
	}
	if report.Loaded["first"] != 2 || report.Loaded["second"] != 1 {
		t.Errorf("Loaded = %v, want first=2 second=1", report.Loaded)
	}
	if report.NoData || len(report.Notices) != 0 {
		t.Errorf("unexpected report: %+v", report)
	}
}

func TestLoadMissingLocationIsSilent(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.jsonl", `{"message":"one"}`+"\n")

	p := New([]source.Location{
		jsonlLocation(filepath.Join(dir, "missing.jsonl"), "gone"),
		jsonlLocation(a, "present"),
	}, &echoProcessor{})
	raws, report := p.Load(context.Background())

	if len(raws) != 1 {
		t.Fatalf("got %d raw records, want 1", len(raws))
	}
	if len(report.Notices) != 0 {
		t.Errorf("missing location should not produce a notice, got %+v", report.Notices)
	}
}

func TestLoadUnknownFormatWarns(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.csv", "message\none\n")

	p := New([]source.Location{{Path: a, Format: "csv", Tag: "x"}}, &echoProcessor{})
	_, report := p.Load(context.Background())

	if len(report.Notices) != 2 {
		t.Fatalf("got %d notices, want warning + no data: %+v", len(report.Notices), report.Notices)
	}
	if report.Notices[0].Level != LevelWarning || report.Notices[0].Location != a {
		t.Errorf("first notice = %+v, want warning for %s", report.Notices[0], a)
	}
	if !report.NoData {
		t.Error("expected NoData")
	}
}

func TestLoadMalformedLocationWarnsAndContinues(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.jsonl", "{not json\n")
	good := writeFile(t, dir, "good.jsonl", `{"message":"ok"}`+"\n")

	p := New([]source.Location{jsonlLocation(bad, "bad"), jsonlLocation(good, "good")}, &echoProcessor{})
	raws, report := p.Load(context.Background())

	if len(raws) != 1 || raws[0].Source != "good" {
		t.Fatalf("expected only the good record, got %+v", raws)
	}
	if len(report.Notices) != 1 {
		t.Fatalf("got %d notices, want 1", len(report.Notices))
	}
	n := report.Notices[0]
	if n.Level != LevelWarning || !strings.Contains(n.Message, "error loading file "+bad) {
		t.Errorf("notice = %+v, want warning naming %s", n, bad)
	}
}

func TestRunNoData(t *testing.T) {
	proc := &echoProcessor{}
	m := metrics.New()
	p := New([]source.Location{jsonlLocation(filepath.Join(t.TempDir(), "none.jsonl"), "x")}, proc, WithMetrics(m))

	res := p.Run(context.Background())

	if !res.Report.NoData {
		t.Fatal("expected NoData")
	}
	if res.Records == nil || len(res.Records) != 0 {
		t.Errorf("Records = %#v, want empty non-nil slice", res.Records)
	}
	if proc.calls != 0 {
		t.Error("processor should not run without data")
	}
	if res.Status() != metrics.StatusNoData {
		t.Errorf("Status = %q, want %q", res.Status(), metrics.StatusNoData)
	}
	last := res.Report.Notices[len(res.Report.Notices)-1]
	if last.Level != LevelError || last.Message != MsgNoData {
		t.Errorf("last notice = %+v, want no-data error", last)
	}

	expected := `
# HELP newsdesk_pipeline_runs_total Pipeline runs by outcome
# TYPE newsdesk_pipeline_runs_total counter
newsdesk_pipeline_runs_total{status="no_data"} 1
`
	if err := testutil.GatherAndCompare(m.Registry(), strings.NewReader(expected), "newsdesk_pipeline_runs_total"); err != nil {
		t.Error(err)
	}
}

func TestRunProcessorError(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.jsonl", `{"message":"one"}`+"\n")
	procErr := errors.New("record 0 from a: malformed")

	p := New([]source.Location{jsonlLocation(a, "a")}, failingProcessor{err: procErr})
	res := p.Run(context.Background())

	if !errors.Is(res.Report.Err, procErr) {
		t.Fatalf("Report.Err = %v, want %v", res.Report.Err, procErr)
	}
	if res.Records == nil || len(res.Records) != 0 {
		t.Errorf("Records = %#v, want empty non-nil slice", res.Records)
	}
	if res.Status() != metrics.StatusError {
		t.Errorf("Status = %q, want error", res.Status())
	}
	last := res.Report.Notices[len(res.Report.Notices)-1]
	if !strings.HasPrefix(last.Message, "error loading data: ") {
		t.Errorf("notice = %q, want error loading data prefix", last.Message)
	}
}

func TestRunRecoversFromPanic(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.jsonl", `{"message":"one"}`+"\n")

	p := New([]source.Location{jsonlLocation(a, "a")}, panickingProcessor{}, WithMetrics(metrics.New()))
	res := p.Run(context.Background())

	if res.Report.Err == nil || !strings.Contains(res.Report.Err.Error(), "boom") {
		t.Fatalf("Report.Err = %v, want panic message", res.Report.Err)
	}
	if res.Records == nil || len(res.Records) != 0 {
		t.Errorf("Records = %#v, want empty non-nil slice", res.Records)
	}
	if res.Report.RunID == "" {
		t.Error("RunID should be set even after a panic")
	}
}

func TestRunAssignsDistinctRunIDs(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.jsonl", `{"message":"one"}`+"\n")
	p := New([]source.Location{jsonlLocation(a, "a")}, &echoProcessor{})

	first := p.Run(context.Background())
	second := p.Run(context.Background())
	if first.Report.RunID == "" || first.Report.RunID == second.Report.RunID {
		t.Errorf("run ids %q and %q should be distinct and non-empty", first.Report.RunID, second.Report.RunID)
	}
}

func TestExportWritesEveryRecord(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.jsonl", `{"message":"one"}`+"\n"+`{"message":"two"}`+"\n")
	p := New([]source.Location{jsonlLocation(a, "a")}, &echoProcessor{})

	out := &mockOutput{}
	res, err := p.Export(context.Background(), out)
	if err != nil {
		t.Fatalf("Export error: %v", err)
	}
	if len(out.records) != 2 || len(res.Records) != 2 {
		t.Fatalf("wrote %d records, result has %d, want 2", len(out.records), len(res.Records))
	}
	if model.Deref(out.records[1].Message) != "two" {
		t.Errorf("second record message = %q, want two", model.Deref(out.records[1].Message))
	}
}

func TestExportWriteError(t *testing.T) {
	dir := t.TempDir()
	a := writeFile(t, dir, "a.jsonl", `{"message":"one"}`+"\n"+`{"message":"two"}`+"\n")
	p := New([]source.Location{jsonlLocation(a, "a")}, &echoProcessor{})

	res, err := p.Export(context.Background(), &mockOutput{failAfter: 1})
	if err == nil {
		t.Fatal("expected write error")
	}
	if len(res.Records) != 2 {
		t.Errorf("result should still carry the dataset, got %d records", len(res.Records))
	}
}
