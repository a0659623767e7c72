package validation

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	dErrors "recom/pkg/domain-errors"
)

type ValidationSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationSuite))
}

type sampleRequest struct {
	UserID int64  `json:"userId" validate:"gt=0"`
	Email  string `json:"email" validate:"omitempty,email"`
	Type   string `json:"interactionType" validate:"notblank,max=64"`
}

type priced struct {
	Price decimal.Decimal `json:"price" validate:"gte=0,lt=10000000000,maxscale=2"`
}

func (s *ValidationSuite) TestValidate() {
	s.Run("valid request passes", func() {
		s.NoError(Validate(sampleRequest{UserID: 1, Type: "view"}))
	})

	s.Run("messages use wire field names", func() {
		err := Validate(sampleRequest{UserID: 0, Type: "view"})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
		s.Equal("userId must be greater than 0", err.Error())
	})

	s.Run("blank type", func() {
		err := Validate(sampleRequest{UserID: 1, Type: "   "})
		s.Equal("interactionType must not be blank", err.Error())
	})

	s.Run("type too long", func() {
		err := Validate(sampleRequest{UserID: 1, Type: strings.Repeat("x", 65)})
		s.Equal("interactionType must be at most 64", err.Error())
	})

	s.Run("bad email", func() {
		err := Validate(sampleRequest{UserID: 1, Type: "view", Email: "nope"})
		s.Equal("email must be a valid email", err.Error())
	})
}

func (s *ValidationSuite) TestDecimalFields() {
	s.NoError(Validate(priced{Price: decimal.RequireFromString("0")}))
	s.NoError(Validate(priced{Price: decimal.RequireFromString("19.99")}))

	err := Validate(priced{Price: decimal.RequireFromString("-0.01")})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal("price must be at least 0", err.Error())
}

func (s *ValidationSuite) TestDecimalFitsStoredPrecision() {
	s.NoError(Validate(priced{Price: decimal.RequireFromString("1.99")}))
	s.NoError(Validate(priced{Price: decimal.RequireFromString("1.990")}))
	s.NoError(Validate(priced{Price: decimal.RequireFromString("9999999999.99")}))

	err := Validate(priced{Price: decimal.RequireFromString("1.999")})
	s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	s.Equal("price must have at most 2 decimal places", err.Error())

	err = Validate(priced{Price: decimal.RequireFromString("123456789012345")})
	s.Equal("price must be less than 10000000000", err.Error())

	err = Validate(priced{Price: decimal.RequireFromString("10000000000")})
	s.Equal("price must be less than 10000000000", err.Error())
}
