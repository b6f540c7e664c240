package enrich

import (
	"testing"

	"pulseMontreal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testTaxonomy() []domain.TaxonomyEntry {
	return []domain.TaxonomyEntry{
		{Category: domain.TagCategoryGenre, Value: "techno", Keywords: "techno, warehouse rave"},
		{Category: domain.TagCategoryGenre, Value: "jazz", Keywords: "jazz, bebop, swing"},
		{Category: domain.TagCategoryStyle, Value: "underground", Keywords: "underground, diy"},
		{Category: domain.TagCategoryAmbiance, Value: "intimate", Keywords: "intimate, cozy"},
		{Category: domain.TagCategoryPublic, Value: "family", Keywords: "family friendly, all ages"},
	}
}

func TestMatcherMatchesKeywordsCaseInsensitively(t *testing.T) {
	m := NewMatcher(testTaxonomy())

	tags := m.Match("TECHNO All Night", "an Underground party")

	require.Len(t, tags, 2)
	assert.Equal(t, domain.TagCategoryGenre, tags[0].Category)
	assert.Equal(t, "techno", tags[0].Value)
	assert.Equal(t, domain.TagCategoryStyle, tags[1].Category)
	assert.Equal(t, "underground", tags[1].Value)
}

func TestMatcherDeduplicatesAcrossFieldsAndKeywords(t *testing.T) {
	m := NewMatcher(testTaxonomy())

	// "techno" appears in all three fields and both keywords hit
	tags := m.Match("techno night", "warehouse rave with techno", "techno")

	require.Len(t, tags, 1)
	assert.Equal(t, "techno", tags[0].Value)
}

func TestMatcherIsDeterministic(t *testing.T) {
	m := NewMatcher(testTaxonomy())

	first := m.Match("jazz and techno, cozy underground venue, all ages")
	second := m.Match("jazz and techno, cozy underground venue, all ages")

	assert.Equal(t, first, second)

	// sorted by category then value
	require.Len(t, first, 5)
	assert.Equal(t, "intimate", first[0].Value)
	assert.Equal(t, "jazz", first[1].Value)
	assert.Equal(t, "techno", first[2].Value)
	assert.Equal(t, "family", first[3].Value)
	assert.Equal(t, "underground", first[4].Value)
}

func TestMatcherNoMatchYieldsNoTags(t *testing.T) {
	m := NewMatcher(testTaxonomy())

	tags := m.Match("quarterly earnings call")

	assert.Empty(t, tags)
}

func TestMatcherSkipsEntriesWithoutKeywords(t *testing.T) {
	m := NewMatcher([]domain.TaxonomyEntry{
		{Category: domain.TagCategoryGenre, Value: "empty", Keywords: " , ,"},
	})

	assert.Empty(t, m.Match("empty"))
}
