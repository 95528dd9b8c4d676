package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutRequest struct {
	Items       []checkoutItem `validate:"required,min=1,dive"`
	TotalAmount float64        `validate:"required,gt=0"`
}

type checkoutItem struct {
	Name  string  `validate:"required"`
	Price float64 `validate:"required,gt=0"`
}

func TestValidateStruct_Valid(t *testing.T) {
	req := checkoutRequest{
		Items:       []checkoutItem{{Name: "Pixel 9", Price: 799}},
		TotalAmount: 799,
	}
	assert.NoError(t, ValidateStruct(req))
}

func TestValidateStruct_MissingFields(t *testing.T) {
	err := ValidateStruct(checkoutRequest{})
	require.Error(t, err)
	require.True(t, IsValidationError(err))

	fields := GetValidationFields(err)
	assert.Contains(t, fields, "Items")
	assert.Contains(t, fields, "TotalAmount")
}

func TestValidateStruct_NestedItem(t *testing.T) {
	err := ValidateStruct(checkoutRequest{
		Items:       []checkoutItem{{Name: "", Price: 0}},
		TotalAmount: 10,
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
	assert.NotEmpty(t, err.Error())
}

func TestGetValidationFields_NotValidationError(t *testing.T) {
	assert.Nil(t, GetValidationFields(assert.AnError))
	assert.False(t, IsValidationError(assert.AnError))
}
