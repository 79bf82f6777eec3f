package taxonomy

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/crimson-sun/newsdesk/internal/model"
)

// Taxonomy holds the ordered category table and the fallback label.
type Taxonomy struct {
	categories []model.Category
	fallback   string
}

// New validates the categories and lower-cases their keywords.
func New(categories []model.Category, fallback string) (*Taxonomy, error) {
	if fallback == "" {
		return nil, errors.New("taxonomy: fallback label is required")
	}
	lower := cases.Lower(language.Und)
	seen := map[string]bool{fallback: true}
	cats := make([]model.Category, 0, len(categories))
	for i, c := range categories {
		if c.Label == "" {
			return nil, fmt.Errorf("taxonomy: category %d has no label", i)
		}
		if seen[c.Label] {
			return nil, fmt.Errorf("taxonomy: duplicate label %q", c.Label)
		}
		seen[c.Label] = true

		kws := make([]string, 0, len(c.Keywords))
		for _, kw := range c.Keywords {
			if kw = strings.TrimSpace(kw); kw != "" {
				kws = append(kws, lower.String(kw))
			}
		}
		if len(kws) == 0 {
			return nil, fmt.Errorf("taxonomy: category %q has no keywords", c.Label)
		}
		cats = append(cats, model.Category{Label: c.Label, Desc: c.Desc, Keywords: kws})
	}
	return &Taxonomy{categories: cats, fallback: fallback}, nil
}

// Default returns the built-in taxonomy.
func Default() *Taxonomy {
	t, err := New(DefaultCategories(), Fallback)
	if err != nil {
		panic(err)
	}
	return t
}

// Categories returns the categories in match order.
func (t *Taxonomy) Categories() []model.Category {
	return t.categories
}

// Fallback returns the label assigned when no category matches.
func (t *Taxonomy) Fallback() string {
	return t.fallback
}

// Labels returns every label the taxonomy can assign, fallback last.
func (t *Taxonomy) Labels() []string {
	labels := make([]string, 0, len(t.categories)+1)
	for _, c := range t.categories {
		labels = append(labels, c.Label)
	}
	return append(labels, t.fallback)
}
