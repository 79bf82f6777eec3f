package newsdesk

// Category is one keyword category.
type Category struct {
	Label       string   // Hebrew label carried in Record.MessageTypes
	Description string   // English meaning
	Keywords    []string // lower-cased substrings that assign the label
}

// Categories returns the categories in the order they are tested. The
// fallback label, assigned when nothing matches, is last with no keywords.
// This is read-only: changing the result does not affect classification.
func (n *Newsdesk) Categories() []Category {
	cats := n.taxonomy.Categories()
	out := make([]Category, 0, len(cats)+1)
	for _, c := range cats {
		out = append(out, Category{
			Label:       c.Label,
			Description: c.Desc,
			Keywords:    append([]string(nil), c.Keywords...),
		})
	}
	return append(out, Category{Label: n.taxonomy.Fallback(), Description: "other", Keywords: []string{}})
}
