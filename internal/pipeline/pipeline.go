package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/crimson-sun/newsdesk/internal/metrics"
	"github.com/crimson-sun/newsdesk/internal/model"
	"github.com/crimson-sun/newsdesk/internal/output"
	"github.com/crimson-sun/newsdesk/internal/source"
)

// MsgNoData is reported when no location yielded any record.
const MsgNoData = "no data files found"

// Notice levels.
const (
	LevelWarning = "warning"
	LevelError   = "error"
)

// Processor turns merged raw records into the final dataset.
type Processor interface {
	ProcessBatch(raws []model.RawRecord) ([]model.Record, error)
}

// Notice is a user-visible message produced during a run.
type Notice struct {
	Level    string `json:"level"`
	Location string `json:"location,omitempty"`
	Message  string `json:"message"`
}

// Report describes how a run went.
type Report struct {
	RunID   string         `json:"run_id"`
	Loaded  map[string]int `json:"loaded"` // raw records per source tag
	Notices []Notice       `json:"notices"`
	NoData  bool           `json:"no_data"`
	Err     error          `json:"-"`
}

// Result is the dataset of one run plus its report.
// Records is never nil; on any failure it is empty.
type Result struct {
	Records []model.Record
	Report  Report
}

// Status maps the result onto a metrics status label.
func (r Result) Status() string {
	switch {
	case r.Report.Err != nil:
		return metrics.StatusError
	case r.Report.NoData:
		return metrics.StatusNoData
	default:
		return metrics.StatusOK
	}
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(p *Pipeline) { p.logger = l }
}

// WithMetrics records run and source metrics.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// Pipeline connects the input locations and a processor into one run.
// It holds no state between runs; every Run re-reads every location.
type Pipeline struct {
	locations []source.Location
	processor Processor
	logger    *zap.Logger
	metrics   *metrics.Metrics
}

// New creates a Pipeline over the locations, read in the given order.
func New(locations []source.Location, proc Processor, opts ...Option) *Pipeline {
	p := &Pipeline{
		locations: locations,
		processor: proc,
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load reads every location and returns the merged, tagged raw records.
// Missing locations are skipped silently; unreadable ones add a warning.
func (p *Pipeline) Load(ctx context.Context) ([]model.RawRecord, Report) {
	return p.load(ctx, p.logger)
}

func (p *Pipeline) load(ctx context.Context, log *zap.Logger) ([]model.RawRecord, Report) {
	report := Report{Loaded: map[string]int{}, Notices: []Notice{}}
	var merged []model.RawRecord

	for _, loc := range p.locations {
		ctor, err := source.Get(loc.Format)
		if err != nil {
			report.warn(loc, err)
			log.Warn("skipping location", zap.String("path", loc.Path), zap.Error(err))
			continue
		}

		recs, err := ctor().Load(ctx, loc)
		if errors.Is(err, source.ErrNotFound) {
			log.Debug("location not found, skipping", zap.String("path", loc.Path))
			continue
		}
		if err != nil {
			report.warn(loc, err)
			p.metrics.ObserveSource(loc.Tag, 0, true)
			log.Warn("failed to load location", zap.String("path", loc.Path), zap.Error(err))
			continue
		}

		for i := range recs {
			recs[i].Source = loc.Tag
		}
		merged = append(merged, recs...)
		report.Loaded[loc.Tag] += len(recs)
		p.metrics.ObserveSource(loc.Tag, len(recs), false)
		log.Debug("loaded location", zap.String("path", loc.Path), zap.String("tag", loc.Tag), zap.Int("records", len(recs)))
	}

	if len(merged) == 0 {
		report.NoData = true
		report.Notices = append(report.Notices, Notice{Level: LevelError, Message: MsgNoData})
	}
	return merged, report
}

func (r *Report) warn(loc source.Location, err error) {
	r.Notices = append(r.Notices, Notice{
		Level:    LevelWarning,
		Location: loc.Path,
		Message:  fmt.Sprintf("error loading file %s: %v", loc.Path, err),
	})
}

// Run loads, merges and processes every location. It never panics and
// never returns a nil Records slice: any failure is logged, reported in the
// result and leaves the dataset empty.
func (p *Pipeline) Run(ctx context.Context) (res Result) {
	start := time.Now()
	runID := uuid.NewString()
	log := p.logger.With(zap.String("run_id", runID))

	defer func() {
		if r := recover(); r != nil {
			res.Records = []model.Record{}
			res.Report.fail(fmt.Errorf("pipeline panic: %v", r))
		}
		if res.Report.Err != nil {
			log.Error("pipeline run failed", zap.Error(res.Report.Err))
		}
		res.Report.RunID = runID
		p.metrics.ObserveRun(res.Status(), time.Since(start), len(res.Records))
	}()

	res.Records = []model.Record{}
	raws, report := p.load(ctx, log)
	res.Report = report
	if report.NoData {
		log.Warn(MsgNoData, zap.Int("locations", len(p.locations)))
		return res
	}

	records, err := p.processor.ProcessBatch(raws)
	if err != nil {
		res.Report.fail(err)
		return res
	}
	res.Records = records

	log.Info("pipeline run finished",
		zap.Int("raw", len(raws)),
		zap.Int("records", len(records)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res
}

func (r *Report) fail(err error) {
	r.Err = err
	r.Notices = append(r.Notices, Notice{
		Level:   LevelError,
		Message: fmt.Sprintf("error loading data: %v", err),
	})
}

// Export runs the pipeline and writes every record to out in order.
// The run's report is returned even when writing fails.
func (p *Pipeline) Export(ctx context.Context, out output.Output) (Result, error) {
	res := p.Run(ctx)
	for _, rec := range res.Records {
		if err := out.Write(ctx, rec); err != nil {
			return res, fmt.Errorf("pipeline output: %w", err)
		}
	}
	return res, nil
}
