package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type item struct {
	ID    string  `json:"id" validate:"required"`
	Price float64 `json:"price" validate:"gte=0"`
}

type request struct {
	Product  item `json:"product"`
	Quantity int  `json:"quantity" validate:"gte=0,lte=99"`
}

func TestStruct(t *testing.T) {
	v := Struct(request{Product: item{ID: "p1", Price: 1}, Quantity: 1})
	assert.True(t, v.Valid())

	v = Struct(request{Product: item{Price: -1}, Quantity: 100})
	assert.False(t, v.Valid())
	assert.Equal(t, map[string]string{
		"product.id":    "is required",
		"product.price": "must be at least 0",
		"quantity":      "must be at most 99",
	}, v.Errors)
}

func TestValidator_CheckKeepsFirstError(t *testing.T) {
	v := New()
	v.Check(false, "amount", "must be positive")
	v.Check(false, "amount", "second message")
	v.Check(true, "id", "unused")
	assert.Equal(t, map[string]string{"amount": "must be positive"}, v.Errors)
}

func TestStruct_NotAStruct(t *testing.T) {
	v := Struct(42)
	assert.Equal(t, map[string]string{"body": "invalid request"}, v.Errors)
}
