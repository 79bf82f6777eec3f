package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/crimson-sun/newsdesk/internal/config"
	"github.com/crimson-sun/newsdesk/internal/engine"
	"github.com/crimson-sun/newsdesk/internal/engine/classifier"
	"github.com/crimson-sun/newsdesk/internal/engine/dedup"
	"github.com/crimson-sun/newsdesk/internal/engine/taxonomy"
	"github.com/crimson-sun/newsdesk/internal/logging"
	"github.com/crimson-sun/newsdesk/internal/metrics"
	"github.com/crimson-sun/newsdesk/internal/pipeline"
	"github.com/crimson-sun/newsdesk/internal/source"

	// Register input formats.
	_ "github.com/crimson-sun/newsdesk/internal/source/jsonarray"
	_ "github.com/crimson-sun/newsdesk/internal/source/jsonl"
)

// app carries the state shared by every subcommand.
type app struct {
	configPath string
	logLevel   string
	dataDir    string

	cfg    config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "newsdesk",
		Short: "Merge, classify and summarize live-feed message exports",
		Long: `newsdesk reads the overlapping JSON exports of a live news feed, reconciles
their field names, tags every message with keyword categories, removes
duplicates and presents the result.

Every command re-reads the input files; nothing is cached between runs.`,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return a.init() },
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML config file (optional)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")
	root.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "Base directory for relative input paths (overrides config)")

	root.AddCommand(newExportCmd(a), newReportCmd(a), newServeCmd(a))
	return root
}

func (a *app) init() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}
	if a.dataDir != "" {
		cfg.DataDir = a.dataDir
	}
	a.cfg = cfg
	a.logger = logging.New(logging.ParseLevel(cfg.Log.Level), cfg.Log.JSON)
	return nil
}

// newPipeline wires the configured locations into a fresh engine.
func (a *app) newPipeline(m *metrics.Metrics) *pipeline.Pipeline {
	var locs []source.Location
	for _, s := range a.cfg.ResolvedSources() {
		locs = append(locs, source.Location{Path: s.Path, Format: s.Format, Tag: s.Tag})
	}
	eng := engine.New(classifier.New(taxonomy.Default()), dedup.New())
	return pipeline.New(locs, eng, pipeline.WithLogger(a.logger), pipeline.WithMetrics(m))
}
