package dedup

import "github.com/crimson-sun/newsdesk/internal/model"

// Deduplicator drops records repeating an earlier (timestamp, message) pair.
type Deduplicator struct{}

// New creates a Deduplicator.
func New() *Deduplicator {
	return &Deduplicator{}
}

// key identifies a record for deduplication. An absent field is a value of
// its own, distinct from the empty string, and equal to other absent fields.
type key struct {
	timestamp, message       string
	hasTimestamp, hasMessage bool
}

func keyOf(r model.Record) key {
	k := key{}
	if r.Timestamp != nil {
		k.timestamp, k.hasTimestamp = *r.Timestamp, true
	}
	if r.Message != nil {
		k.message, k.hasMessage = *r.Message, true
	}
	return k
}

// DeduplicateBatch returns the records whose (timestamp, message) pair has
// not been seen earlier in the slice, preserving order. The first occurrence
// wins regardless of source, author or description.
func (d *Deduplicator) DeduplicateBatch(records []model.Record) []model.Record {
	if len(records) == 0 {
		return nil
	}

	seen := make(map[key]struct{}, len(records))
	result := make([]model.Record, 0, len(records))
	for _, r := range records {
		k := keyOf(r)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		result = append(result, r)
	}
	return result
}
