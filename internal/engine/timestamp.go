package engine

import (
	"sort"

	"github.com/crimson-sun/newsdesk/internal/model"
)

// NowSentinel is the literal the feeds print instead of a time for breaking items.
const NowSentinel = "כעת"

// NormalizeTimestamp maps the "now" sentinel to absent.
func NormalizeTimestamp(ts *string) *string {
	if ts == nil || *ts == NowSentinel {
		return nil
	}
	return ts
}

// ParseClock parses an H:MM or HH:MM time of day. Anything else, including
// surrounding whitespace or a seconds part, is rejected.
func ParseClock(s string) (model.Clock, bool) {
	colon := -1
	for i := 0; i < len(s); i++ {
		if s[i] == ':' {
			colon = i
			break
		}
	}
	if colon < 1 || colon > 2 || len(s)-colon-1 != 2 {
		return model.Clock{}, false
	}

	h, ok := digits(s[:colon])
	if !ok || h > 23 {
		return model.Clock{}, false
	}
	m, ok := digits(s[colon+1:])
	if !ok || m > 59 {
		return model.Clock{}, false
	}
	return model.Clock{Hour: h, Minute: m}, true
}

func digits(s string) (int, bool) {
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// SortByTimestamp orders records by their raw timestamp text, byte-wise.
// This is a string order, not a chronological one: "9:05" sorts after "10:00".
// Records without a timestamp go last; ties keep merge order.
func SortByTimestamp(records []model.Record) {
	sort.SliceStable(records, func(i, j int) bool {
		a, b := records[i].Timestamp, records[j].Timestamp
		if a == nil || b == nil {
			return a != nil && b == nil
		}
		return *a < *b
	})
}
