// Package engine scores catalog products for a user from their interaction
// history. Items are compared by content: a one-hot category vector plus the
// min-max normalised price, with cosine similarity between items.
package engine

import (
	"math"
	"sort"
)

// DefaultLimit is the number of recommendations returned when none is requested.
const DefaultLimit = 5

// Weights maps interaction types to their contribution to the user-item
// matrix. Types not listed weigh nothing.
var Weights = map[string]float64{
	"view":        1,
	"add_to_cart": 3,
	"share":       2,
	"purchase":    3,
}

// Item is a catalog product as seen by the engine.
type Item struct {
	ProductID int64
	Category  string
	Price     float64
}

// Event is one interaction of the user being scored.
type Event struct {
	ProductID int64
	Type      string
}

// Scored is a recommended product and its score.
type Scored struct {
	ProductID int64
	Score     float64
}

// Recommend returns up to limit products ranked by score descending, ties
// broken by ascending product id. Products the user already interacted with
// are never returned. A user whose events carry no weight on any catalog item
// gets no recommendations.
func Recommend(items []Item, events []Event, limit int) []Scored {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if len(items) == 0 || len(events) == 0 {
		return nil
	}

	items = sortedItems(items)
	index := make(map[int64]int, len(items))
	for i, it := range items {
		index[it.ProductID] = i
	}

	user, touched := userVector(items, index, events)
	if user == nil {
		return nil
	}

	features := featureMatrix(items)
	scores := make([]Scored, 0, len(items))
	for k, it := range items {
		if touched[it.ProductID] {
			continue
		}
		var score float64
		for j, w := range user {
			if w == 0 {
				continue
			}
			score += w * cosine(features[j], features[k])
		}
		scores = append(scores, Scored{ProductID: it.ProductID, Score: score})
	}

	sort.SliceStable(scores, func(a, b int) bool {
		if scores[a].Score != scores[b].Score {
			return scores[a].Score > scores[b].Score
		}
		return scores[a].ProductID < scores[b].ProductID
	})
	if len(scores) > limit {
		scores = scores[:limit]
	}
	return scores
}

func sortedItems(items []Item) []Item {
	out := make([]Item, 0, len(items))
	seen := make(map[int64]bool, len(items))
	for _, it := range items {
		if seen[it.ProductID] {
			continue
		}
		seen[it.ProductID] = true
		out = append(out, it)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].ProductID < out[b].ProductID })
	return out
}

// userVector sums event weights per catalog item and normalises the row to
// sum 1. It returns nil when the row is all zero. Events on products missing
// from the catalog are ignored, but every interacted product is reported in
// touched.
func userVector(items []Item, index map[int64]int, events []Event) ([]float64, map[int64]bool) {
	row := make([]float64, len(items))
	touched := make(map[int64]bool, len(events))
	var total float64
	for _, e := range events {
		touched[e.ProductID] = true
		i, ok := index[e.ProductID]
		if !ok {
			continue
		}
		w := Weights[e.Type]
		row[i] += w
		total += w
	}
	if total == 0 {
		return nil, touched
	}
	for i := range row {
		row[i] /= total
	}
	return row, touched
}

// featureMatrix builds one row per item: a one-hot category block in sorted
// category order followed by the normalised price.
func featureMatrix(items []Item) [][]float64 {
	categories := make(map[string]int)
	names := make([]string, 0)
	minPrice, maxPrice := math.Inf(1), math.Inf(-1)
	for _, it := range items {
		if _, ok := categories[it.Category]; !ok {
			categories[it.Category] = 0
			names = append(names, it.Category)
		}
		minPrice = math.Min(minPrice, it.Price)
		maxPrice = math.Max(maxPrice, it.Price)
	}
	sort.Strings(names)
	for i, name := range names {
		categories[name] = i
	}

	priceSpan := maxPrice - minPrice
	out := make([][]float64, len(items))
	for i, it := range items {
		row := make([]float64, len(names)+1)
		row[categories[it.Category]] = 1
		if priceSpan > 0 {
			row[len(names)] = (it.Price - minPrice) / priceSpan
		}
		out[i] = row
	}
	return out
}

// cosine returns 0 when either vector has zero length.
func cosine(a, b []float64) float64 {
	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}
