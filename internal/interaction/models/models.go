package models

import (
	"strings"
	"time"
	"unicode/utf8"

	dErrors "recom/pkg/domain-errors"
	"recom/pkg/validation"
)

// MaxTypeLength bounds the free-form interaction type tag.
const MaxTypeLength = validation.MaxInteractionTypeLength

// Interaction records that a user did something with a product. The ids were
// checked against their owning services when the record was created and are
// never re-verified. Interactions are immutable; they can only be deleted.
type Interaction struct {
	ID        int64
	UserID    int64
	ProductID int64
	Type      string
	CreatedAt time.Time
}

// Candidate is an interaction that has not been validated or persisted yet.
type Candidate struct {
	UserID    int64
	ProductID int64
	Type      string
}

// Validate checks shape only; existence of the references is checked remotely.
func (c *Candidate) Validate() error {
	if c == nil {
		return dErrors.New(dErrors.CodeBadRequest, "interaction is required")
	}
	c.Type = strings.TrimSpace(c.Type)
	switch {
	case c.UserID <= 0:
		return dErrors.New(dErrors.CodeValidation, "userId must be a positive integer")
	case c.ProductID <= 0:
		return dErrors.New(dErrors.CodeValidation, "productId must be a positive integer")
	case c.Type == "":
		return dErrors.New(dErrors.CodeValidation, "interactionType is required")
	case utf8.RuneCountInString(c.Type) > MaxTypeLength:
		return dErrors.New(dErrors.CodeValidation, "interactionType must be at most 64 characters")
	}
	return nil
}

func (i *Interaction) Clone() *Interaction {
	if i == nil {
		return nil
	}
	cp := *i
	return &cp
}
