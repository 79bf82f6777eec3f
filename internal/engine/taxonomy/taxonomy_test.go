package taxonomy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-sun/newsdesk/internal/model"
)

func TestDefaultTaxonomy(t *testing.T) {
	tax := Default()

	assert.Len(t, tax.Categories(), 6)
	assert.Equal(t, Fallback, tax.Fallback())
	assert.Equal(t, []string{Alert, Military, Attack, Casualty, Hostage, Update, Fallback}, tax.Labels())
}

func TestDefaultCategoriesHaveKeywords(t *testing.T) {
	for _, c := range DefaultCategories() {
		assert.NotEmpty(t, c.Keywords, c.Label)
		assert.NotEmpty(t, c.Desc, c.Label)
	}
}

func TestNewLowercasesAndTrims(t *testing.T) {
	tax, err := New([]model.Category{
		{Label: "idf", Keywords: []string{" IDF ", "", "Troops"}},
	}, "other")
	require.NoError(t, err)
	assert.Equal(t, []string{"idf", "troops"}, tax.Categories()[0].Keywords)
}

func TestNewRejects(t *testing.T) {
	tests := []struct {
		name     string
		cats     []model.Category
		fallback string
		want     string
	}{
		{"no fallback", nil, "", "fallback"},
		{"no label", []model.Category{{Keywords: []string{"x"}}}, "other", "no label"},
		{"duplicate", []model.Category{
			{Label: "a", Keywords: []string{"x"}},
			{Label: "a", Keywords: []string{"y"}},
		}, "other", "duplicate"},
		{"fallback clash", []model.Category{{Label: "other", Keywords: []string{"x"}}}, "other", "duplicate"},
		{"no keywords", []model.Category{{Label: "a", Keywords: []string{"  "}}}, "other", "no keywords"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cats, tt.fallback)
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
