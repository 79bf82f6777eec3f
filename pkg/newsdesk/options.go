package newsdesk

import (
	"go.uber.org/zap"

	"github.com/crimson-sun/newsdesk/internal/config"
)

// Location is one input export.
type Location struct {
	Path   string
	Format string // "jsonl" or "json"
	Tag    string // value of Record.Source for its records
}

// DefaultLocations are the three exports read when no location is given,
// in merge order.
func DefaultLocations() []Location {
	var locs []Location
	for _, s := range config.DefaultSources() {
		locs = append(locs, Location{Path: s.Path, Format: s.Format, Tag: s.Tag})
	}
	return locs
}

type options struct {
	dataDir   string
	locations []Location
	logger    *zap.Logger
}

// Option configures a Newsdesk instance.
type Option func(*options)

// WithDataDir resolves relative location paths against dir.
func WithDataDir(dir string) Option {
	return func(o *options) {
		o.dataDir = dir
	}
}

// WithLocations replaces the default locations. Order sets merge order,
// which decides which duplicate is kept.
func WithLocations(locs ...Location) Option {
	return func(o *options) {
		o.locations = locs
	}
}

// WithLogger sets the logger. Default: no-op.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

func defaultOptions() options {
	return options{
		locations: DefaultLocations(),
		logger:    zap.NewNop(),
	}
}
