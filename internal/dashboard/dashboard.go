// Package dashboard holds the filters and aggregations behind every
// presentation of a dataset. All functions are pure: they never modify the
// records they are given and return fresh slices.
package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/crimson-sun/newsdesk/internal/engine/taxonomy"
	"github.com/crimson-sun/newsdesk/internal/model"
)

// AllAuthors is the author option that disables author filtering.
const AllAuthors = "הכל"

// DefaultTopAuthors is the ranking size used when none is given.
const DefaultTopAuthors = 10

// Filter narrows a dataset the way the dashboard controls do.
type Filter struct {
	HourFrom int    `json:"hour_from"`
	HourTo   int    `json:"hour_to"`
	Author   string `json:"author"`
	Search   string `json:"search,omitempty"`
}

// DefaultFilter covers 06:00 to 23:59 for every author.
func DefaultFilter() Filter {
	return Filter{HourFrom: 6, HourTo: 23, Author: AllAuthors}
}

// Validate checks the hour range.
func (f Filter) Validate() error {
	var errs []error
	if f.HourFrom < 0 || f.HourFrom > 23 {
		errs = append(errs, fmt.Errorf("hour from must be 0-23, got %d", f.HourFrom))
	}
	if f.HourTo < 0 || f.HourTo > 23 {
		errs = append(errs, fmt.Errorf("hour to must be 0-23, got %d", f.HourTo))
	}
	if f.HourFrom > f.HourTo {
		errs = append(errs, fmt.Errorf("hour from %d is after hour to %d", f.HourFrom, f.HourTo))
	}
	return errors.Join(errs...)
}

// Hours is the number of hours the filter spans, inclusive.
func (f Filter) Hours() int {
	return f.HourTo - f.HourFrom + 1
}

// Apply keeps records whose hour is known and within range and, unless the
// author is AllAuthors or empty, whose author matches exactly. A non-empty
// Search term is applied last.
func (f Filter) Apply(records []model.Record) []model.Record {
	out := make([]model.Record, 0, len(records))
	for _, r := range records {
		if r.Hour == nil || *r.Hour < f.HourFrom || *r.Hour > f.HourTo {
			continue
		}
		if f.Author != "" && f.Author != AllAuthors && model.Deref(r.Author) != f.Author {
			continue
		}
		out = append(out, r)
	}
	if f.Search != "" {
		out = Search(out, f.Search)
	}
	return out
}

// Search keeps records whose message contains term, ignoring case.
// Records without a message never match. An empty term matches everything.
func Search(records []model.Record, term string) []model.Record {
	if term == "" {
		return append([]model.Record{}, records...)
	}
	lower := cases.Lower(language.Und)
	needle := lower.String(term)

	out := []model.Record{}
	for _, r := range records {
		if r.Message != nil && strings.Contains(lower.String(*r.Message), needle) {
			out = append(out, r)
		}
	}
	return out
}

// ByCategory keeps records carrying label. An empty label selects the
// fallback category.
func ByCategory(records []model.Record, label string) []model.Record {
	if label == "" {
		label = taxonomy.Fallback
	}
	out := []model.Record{}
	for _, r := range records {
		if r.HasType(label) {
			out = append(out, r)
		}
	}
	return out
}

// Metrics are the headline numbers of a filtered dataset.
type Metrics struct {
	Total      int     `json:"total"`
	Authors    int     `json:"authors"`
	AvgPerHour float64 `json:"avg_per_hour"`
}

// Summarize computes headline numbers for records already narrowed by f.
// The average spreads the total over every hour in the filter's range.
func Summarize(records []model.Record, f Filter) Metrics {
	authors := map[string]struct{}{}
	for _, r := range records {
		if r.Author != nil {
			authors[*r.Author] = struct{}{}
		}
	}
	m := Metrics{Total: len(records), Authors: len(authors)}
	if h := f.Hours(); h > 0 {
		m.AvgPerHour = float64(m.Total) / float64(h)
	}
	return m
}

// Count is a label or author with its frequency.
type Count struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// counter tallies names keeping first-appearance order for ties.
type counter struct {
	order []string
	n     map[string]int
}

func newCounter() *counter {
	return &counter{n: map[string]int{}}
}

func (c *counter) add(name string) {
	if _, ok := c.n[name]; !ok {
		c.order = append(c.order, name)
	}
	c.n[name]++
}

func (c *counter) ranked() []Count {
	out := make([]Count, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, Count{Name: name, Count: c.n[name]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	return out
}

// CategoryCounts tallies labels across records. A record counts once for
// each label it carries. Ordered by count, most frequent first; ties keep
// first-appearance order.
func CategoryCounts(records []model.Record) []Count {
	c := newCounter()
	for _, r := range records {
		for _, label := range r.MessageTypes {
			c.add(label)
		}
	}
	return c.ranked()
}

// TopAuthors ranks authors by message count and returns at most n of them.
// Records without an author are ignored. n <= 0 means DefaultTopAuthors.
func TopAuthors(records []model.Record, n int) []Count {
	if n <= 0 {
		n = DefaultTopAuthors
	}
	c := newCounter()
	for _, r := range records {
		if r.Author != nil {
			c.add(*r.Author)
		}
	}
	ranked := c.ranked()
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// HourSourceCount is the number of records one source produced in one hour.
type HourSourceCount struct {
	Hour   int    `json:"hour"`
	Source string `json:"source"`
	Count  int    `json:"count"`
}

// HourlyBySource groups records by (hour, source), ordered by hour then
// source. Records without an hour are left out.
func HourlyBySource(records []model.Record) []HourSourceCount {
	type key struct {
		hour   int
		source string
	}
	counts := map[key]int{}
	for _, r := range records {
		if r.Hour == nil {
			continue
		}
		counts[key{*r.Hour, r.Source}]++
	}

	out := make([]HourSourceCount, 0, len(counts))
	for k, n := range counts {
		out = append(out, HourSourceCount{Hour: k.hour, Source: k.source, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Hour != out[j].Hour {
			return out[i].Hour < out[j].Hour
		}
		return out[i].Source < out[j].Source
	})
	return out
}

// Authors returns the author options: AllAuthors followed by every distinct
// known author in sorted order.
func Authors(records []model.Record) []string {
	seen := map[string]struct{}{}
	var names []string
	for _, r := range records {
		if r.Author == nil {
			continue
		}
		if _, ok := seen[*r.Author]; ok {
			continue
		}
		seen[*r.Author] = struct{}{}
		names = append(names, *r.Author)
	}
	sort.Strings(names)
	return append([]string{AllAuthors}, names...)
}
