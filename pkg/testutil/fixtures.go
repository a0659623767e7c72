package testutil

import (
	"time"

	"github.com/shopspring/decimal"

	interactionmodels "recom/internal/interaction/models"
	productmodels "recom/internal/product/models"
	usermodels "recom/internal/user/models"
)

// FixedTime is a deterministic timestamp for records built by fixtures.
var FixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

// ProductBuilder provides a fluent interface for building test products.
type ProductBuilder struct {
	product *productmodels.Product
}

func NewProductBuilder() *ProductBuilder {
	return &ProductBuilder{
		product: &productmodels.Product{
			Name:      "Desk Lamp",
			Category:  "home",
			Price:     decimal.RequireFromString("19.99"),
			CreatedAt: FixedTime,
			UpdatedAt: FixedTime,
		},
	}
}

func (b *ProductBuilder) WithName(name string) *ProductBuilder {
	b.product.Name = name
	return b
}

func (b *ProductBuilder) WithCategory(category string) *ProductBuilder {
	b.product.Category = category
	return b
}

func (b *ProductBuilder) WithPrice(price string) *ProductBuilder {
	b.product.Price = decimal.RequireFromString(price)
	return b
}

func (b *ProductBuilder) Build() *productmodels.Product {
	return b.product
}

// NewUser returns an unsaved user with the given profile.
func NewUser(name, email string) *usermodels.User {
	return &usermodels.User{
		Name:      name,
		Email:     email,
		CreatedAt: FixedTime,
		UpdatedAt: FixedTime,
	}
}

// NewInteraction returns an unsaved interaction.
func NewInteraction(userID, productID int64, kind string) *interactionmodels.Interaction {
	return &interactionmodels.Interaction{
		UserID:    userID,
		ProductID: productID,
		Type:      kind,
		CreatedAt: FixedTime,
	}
}
