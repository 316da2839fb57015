package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapFilterToTagSlugs_KnownValues(t *testing.T) {
	assert.Equal(t, []string{"blue", "navy", "sky-blue"}, MapFilterToTagSlugs("color", "blue"))
	assert.Equal(t, []string{"blue", "navy", "sky-blue"}, MapFilterToTagSlugs("color", "  BLUE "))
	assert.Equal(t, []string{"striped", "stripe", "stripes"}, MapFilterToTagSlugs("pattern", "striped"))
	assert.Equal(t, []string{"bi-fold", "bifold"}, MapFilterToTagSlugs("window", "Bi-Fold-Window"))
	assert.Equal(t, []string{"children", "kids", "kids-room", "childrens"}, MapFilterToTagSlugs("room", "children"))
	assert.Equal(t, []string{"blackout", "blackout-blinds", "sleep", "dark"}, MapFilterToTagSlugs("solution", "better-sleep-blinds"))
}

func TestMapFilterToTagSlugs_UnknownValueInKnownType(t *testing.T) {
	assert.Equal(t, []string{"navy blue"}, MapFilterToTagSlugs("color", "Navy Blue"))
	assert.Equal(t, []string{"tartan"}, MapFilterToTagSlugs("pattern", " Tartan"))
}

func TestMapFilterToTagSlugs_UnknownType(t *testing.T) {
	assert.Equal(t, []string{"navy-blue", "navy_blue", "navy blue"}, MapFilterToTagSlugs("material", "Navy Blue"))
	assert.Equal(t, []string{"dark-oak", "dark_oak", "dark \t oak"}, MapFilterToTagSlugs("finish", "Dark \t Oak"))
	assert.Equal(t, []string{"linen"}, MapFilterToTagSlugs("material", "Linen"))
	assert.Equal(t, []string{""}, MapFilterToTagSlugs("material", "   "))
}

func TestMapFilterToTagSlugs_ReturnsCopy(t *testing.T) {
	tags := MapFilterToTagSlugs("color", "red")
	tags[0] = "mutated"
	assert.Equal(t, []string{"red", "crimson", "burgundy"}, MapFilterToTagSlugs("color", "red"))
}

func TestFilterTypes(t *testing.T) {
	for _, ft := range FilterTypes() {
		assert.Contains(t, tagTables, ft)
	}
	assert.Len(t, FilterTypes(), len(tagTables))
}
