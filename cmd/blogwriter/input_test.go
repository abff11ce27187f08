package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "github.com/yungbote/blogwriter-backend/internal/domain/blog"
)

const yamlFixture = `
topic:
  id: t1
  title: Stock up and save
  blogType: money-saving
availableProducts:
  - id: rice
    name: Basmati rice
    sellingPrice: 12.5
    tags: [Pantry, pantry]
    budgetLevel: BUDGET
  - id: oil
    name: Olive oil
    sellingPrice: "8.99"
    budgetLevel: MID
existingBlogSlugs: [pantry-basics]
packs:
  rice:
    count: 1
    netQuantity: 5
    netUnit: kg
  oil:
    count: 1
    netQuantity: 500
    netUnit: ml
`

func TestParseInputYAML(t *testing.T) {
	batch, err := parseInput([]byte(yamlFixture), ".yaml")
	require.NoError(t, err)
	require.Len(t, batch, 1)
	wc := batch[0]
	assert.Equal(t, types.BlogTypeMoneySaving, wc.Topic.BlogType)
	require.Len(t, wc.AvailableProducts, 2)
	assert.Equal(t, "12.5", wc.AvailableProducts[0].SellingPrice.String())
	assert.Equal(t, []string{"pantry"}, wc.AvailableProducts[0].Tags)
	assert.True(t, wc.AvailableProducts[0].IsBulk)
	assert.False(t, wc.AvailableProducts[1].IsBulk)
}

func TestParseInputYMLExtension(t *testing.T) {
	batch, err := parseInput([]byte("topic:\n  title: Glow routine\n  blogType: beauty\n"), ".YML")
	require.NoError(t, err)
	require.Len(t, batch, 1)
	assert.Equal(t, types.BlogTypeBeauty, batch[0].Topic.BlogType)
	assert.Equal(t, "Glow routine", batch[0].Topic.Title)
}

func TestParseInputJSONItems(t *testing.T) {
	raw := `{"items":[{"topic":{"id":"a","title":"A","blogType":"RECIPE"}},{"topic":{"id":"b","title":"B","blogType":"grocery"}}]}`
	batch, err := parseInput([]byte(raw), ".json")
	require.NoError(t, err)
	require.Len(t, batch, 2)
	assert.Equal(t, types.BlogTypeGrocery, batch[1].Topic.BlogType)
}

func TestParseInputErrors(t *testing.T) {
	_, err := parseInput([]byte(`{}`), ".json")
	assert.Error(t, err)
	_, err = parseInput([]byte(`{"topic":{"title":"x","blogType":"FASHION"}}`), ".json")
	assert.ErrorContains(t, err, "unknown blog type")
}
