package engine

import (
	"fmt"

	"github.com/crimson-sun/newsdesk/internal/engine/classifier"
	"github.com/crimson-sun/newsdesk/internal/engine/dedup"
	"github.com/crimson-sun/newsdesk/internal/engine/reconcile"
	"github.com/crimson-sun/newsdesk/internal/model"
)

// Engine orchestrates the reconcile → parse → classify → dedup → sort pipeline.
type Engine struct {
	classifier *classifier.Classifier
	dedup      *dedup.Deduplicator
}

// New creates an Engine with the provided components.
func New(cls *classifier.Classifier, d *dedup.Deduplicator) *Engine {
	return &Engine{
		classifier: cls,
		dedup:      d,
	}
}

// Process reconciles and classifies a single raw record.
func (e *Engine) Process(raw model.RawRecord) (model.Record, error) {
	rec, err := reconcile.Reconcile(raw)
	if err != nil {
		return model.Record{}, err
	}

	rec.Timestamp = NormalizeTimestamp(rec.Timestamp)
	if rec.Timestamp != nil {
		if c, ok := ParseClock(*rec.Timestamp); ok {
			rec.Time = &c
			rec.Hour = &c.Hour
		}
	}

	rec.MessageTypes = e.classifier.Classify(rec.Message, rec.Description)
	return rec, nil
}

// ProcessBatch processes every raw record in merge order, then removes
// (timestamp, message) duplicates and sorts by raw timestamp.
func (e *Engine) ProcessBatch(raws []model.RawRecord) ([]model.Record, error) {
	records := make([]model.Record, 0, len(raws))
	for i, raw := range raws {
		rec, err := e.Process(raw)
		if err != nil {
			return nil, fmt.Errorf("record %d from %s: %w", i, raw.Source, err)
		}
		records = append(records, rec)
	}

	records = e.dedup.DeduplicateBatch(records)
	SortByTimestamp(records)
	if records == nil {
		records = []model.Record{}
	}
	return records, nil
}
