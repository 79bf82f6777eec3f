package classifier

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/crimson-sun/newsdesk/internal/engine/taxonomy"
)

// Classifier assigns category labels by keyword containment.
type Classifier struct {
	taxonomy *taxonomy.Taxonomy
}

// New creates a Classifier over the given taxonomy.
func New(tax *taxonomy.Taxonomy) *Classifier {
	return &Classifier{taxonomy: tax}
}

// Classify returns the labels of every category with at least one keyword
// contained in the lower-cased "message description" text, in taxonomy order.
// An absent field counts as empty. When nothing matches the result is the
// fallback label alone, so it is never empty.
func (c *Classifier) Classify(message, description *string) []string {
	content := SearchText(message, description)

	var labels []string
	for _, cat := range c.taxonomy.Categories() {
		for _, kw := range cat.Keywords {
			if strings.Contains(content, kw) {
				labels = append(labels, cat.Label)
				break
			}
		}
	}
	if len(labels) == 0 {
		return []string{c.taxonomy.Fallback()}
	}
	return labels
}

// SearchText builds the lower-cased text keywords are matched against.
func SearchText(message, description *string) string {
	// Caser keeps state between calls; one per call keeps Classify goroutine-safe.
	lower := cases.Lower(language.Und)
	var msg, desc string
	if message != nil {
		msg = lower.String(*message)
	}
	if description != nil {
		desc = lower.String(*description)
	}
	return msg + " " + desc
}
