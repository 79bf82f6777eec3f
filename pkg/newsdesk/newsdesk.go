package newsdesk

import (
	"context"
	"fmt"

	"github.com/crimson-sun/newsdesk/internal/config"
	"github.com/crimson-sun/newsdesk/internal/engine"
	"github.com/crimson-sun/newsdesk/internal/engine/classifier"
	"github.com/crimson-sun/newsdesk/internal/engine/dedup"
	"github.com/crimson-sun/newsdesk/internal/engine/taxonomy"
	"github.com/crimson-sun/newsdesk/internal/pipeline"
	"github.com/crimson-sun/newsdesk/internal/source"

	_ "github.com/crimson-sun/newsdesk/internal/source/jsonarray"
	_ "github.com/crimson-sun/newsdesk/internal/source/jsonl"
)

// Newsdesk loads and classifies feed exports.
// Safe for concurrent use.
type Newsdesk struct {
	pipeline   *pipeline.Pipeline
	classifier *classifier.Classifier
	taxonomy   *taxonomy.Taxonomy
}

// New validates the options and creates a Newsdesk. No file is read until Load.
func New(opts ...Option) (*Newsdesk, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	cfg := config.Config{DataDir: o.dataDir, Output: config.OutputConfig{Verbosity: "standard"}}
	for _, l := range o.locations {
		cfg.Sources = append(cfg.Sources, config.SourceConfig{Path: l.Path, Format: l.Format, Tag: l.Tag})
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("newsdesk: %w", err)
	}

	var locs []source.Location
	for _, s := range cfg.ResolvedSources() {
		locs = append(locs, source.Location{Path: s.Path, Format: s.Format, Tag: s.Tag})
	}

	tax := taxonomy.Default()
	cls := classifier.New(tax)
	eng := engine.New(cls, dedup.New())
	return &Newsdesk{
		pipeline:   pipeline.New(locs, eng, pipeline.WithLogger(o.logger)),
		classifier: cls,
		taxonomy:   tax,
	}, nil
}

// Load reads every location and returns the enriched dataset. Missing
// exports are skipped and unreadable ones become warnings. Any other
// failure returns an error together with an empty dataset.
func (n *Newsdesk) Load(ctx context.Context) (Dataset, error) {
	res := n.pipeline.Run(ctx)

	ds := Dataset{
		Records:  make([]Record, len(res.Records)),
		Warnings: []string{},
		Loaded:   res.Report.Loaded,
		NoData:   res.Report.NoData,
	}
	for i, r := range res.Records {
		ds.Records[i] = recordFromModel(r)
	}
	for _, notice := range res.Report.Notices {
		if notice.Level == pipeline.LevelWarning {
			ds.Warnings = append(ds.Warnings, notice.Message)
		}
	}
	if res.Report.Err != nil {
		return ds, fmt.Errorf("newsdesk: %w", res.Report.Err)
	}
	return ds, nil
}

// Classify returns the category labels for one message, as Load assigns them.
func (n *Newsdesk) Classify(message, description string) []string {
	return n.classifier.Classify(&message, &description)
}

// Records loads the default locations relative to the working directory.
// It never fails: on any problem the result is empty.
func Records() []Record {
	n, err := New()
	if err != nil {
		return []Record{}
	}
	ds, err := n.Load(context.Background())
	if err != nil {
		return []Record{}
	}
	return ds.Records
}
