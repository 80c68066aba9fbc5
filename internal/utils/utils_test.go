package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCamelToSnake(t *testing.T) {
	testCases := map[string]string{
		"Name":            "name",
		"NumberInStock":   "number_in_stock",
		"DailyRentalRate": "daily_rental_rate",
		"CustomerID":      "customer_id",
		"isGold":          "is_gold",
		"":                "",
	}
	for in, want := range testCases {
		assert.Equal(t, want, CamelToSnake(in), in)
	}
}
