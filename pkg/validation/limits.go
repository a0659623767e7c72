package validation

const (
	// MaxBodySize is the maximum allowed request body size (64 KB).
	MaxBodySize = 64 * 1024

	// MaxInteractionTypeLength bounds the free-form interaction type tag.
	MaxInteractionTypeLength = 64

	// MaxRecommendationLimit caps ?limit= on the recommendations endpoint.
	MaxRecommendationLimit = 50
)
