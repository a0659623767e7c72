package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalog: two categories, prices 10..30 so the price feature spans [0, 1].
func catalog() []Item {
	return []Item{
		{ProductID: 4, Category: "toys", Price: 30},
		{ProductID: 1, Category: "books", Price: 10},
		{ProductID: 3, Category: "toys", Price: 10},
		{ProductID: 2, Category: "books", Price: 20},
		{ProductID: 5, Category: "books", Price: 30},
	}
}

func ids(scored []Scored) []int64 {
	out := make([]int64, 0, len(scored))
	for _, s := range scored {
		out = append(out, s.ProductID)
	}
	return out
}

func TestRecommendRanksBySimilarity(t *testing.T) {
	got := Recommend(catalog(), []Event{{ProductID: 1, Type: "view"}}, 0)

	require.Len(t, got, 4)
	assert.Equal(t, []int64{2, 5, 3, 4}, ids(got))
	assert.InDelta(t, 1/math.Sqrt(1.25), got[0].Score, 1e-9)
	assert.InDelta(t, 1/math.Sqrt(2), got[1].Score, 1e-9)
	assert.Zero(t, got[2].Score)
	assert.Zero(t, got[3].Score)
}

func TestRecommendWeightsAreRowNormalised(t *testing.T) {
	got := Recommend(catalog(), []Event{
		{ProductID: 1, Type: "view"},
		{ProductID: 3, Type: "add_to_cart"},
	}, 5)

	require.Len(t, got, 3)
	assert.Equal(t, []int64{4, 2, 5}, ids(got))
	assert.InDelta(t, 0.75/math.Sqrt(2), got[0].Score, 1e-9)
	assert.InDelta(t, 0.25/math.Sqrt(1.25), got[1].Score, 1e-9)
	assert.InDelta(t, 0.25/math.Sqrt(2), got[2].Score, 1e-9)
}

func TestRecommendRespectsLimit(t *testing.T) {
	got := Recommend(catalog(), []Event{{ProductID: 1, Type: "view"}}, 2)
	assert.Equal(t, []int64{2, 5}, ids(got))
}

func TestRecommendExcludesEveryInteractedProduct(t *testing.T) {
	got := Recommend(catalog(), []Event{
		{ProductID: 1, Type: "view"},
		{ProductID: 2, Type: "wishlist"},
	}, 0)
	assert.Equal(t, []int64{5, 3, 4}, ids(got))
}

func TestRecommendEqualPricesDropPriceFeature(t *testing.T) {
	items := []Item{
		{ProductID: 1, Category: "books", Price: 10},
		{ProductID: 2, Category: "books", Price: 10},
		{ProductID: 3, Category: "toys", Price: 10},
	}
	got := Recommend(items, []Event{{ProductID: 1, Type: "share"}}, 0)

	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ProductID)
	assert.InDelta(t, 1.0, got[0].Score, 1e-9)
	assert.Equal(t, int64(3), got[1].ProductID)
	assert.Zero(t, got[1].Score)
}

func TestRecommendEmptyCases(t *testing.T) {
	t.Run("no events", func(t *testing.T) {
		assert.Empty(t, Recommend(catalog(), nil, 0))
	})
	t.Run("no catalog", func(t *testing.T) {
		assert.Empty(t, Recommend(nil, []Event{{ProductID: 1, Type: "view"}}, 0))
	})
	t.Run("only unweighted events", func(t *testing.T) {
		assert.Empty(t, Recommend(catalog(), []Event{{ProductID: 1, Type: "wishlist"}}, 0))
	})
	t.Run("events on deleted products only", func(t *testing.T) {
		assert.Empty(t, Recommend(catalog(), []Event{{ProductID: 42, Type: "purchase"}}, 0))
	})
}

func TestCosineZeroVector(t *testing.T) {
	assert.Zero(t, cosine([]float64{0, 0}, []float64{1, 0}))
	assert.InDelta(t, 1.0, cosine([]float64{2, 0}, []float64{1, 0}), 1e-12)
}
