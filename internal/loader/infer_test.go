package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vvka-141/retailsql/internal/db"
)

func TestInferKind(t *testing.T) {
	tests := []struct {
		name   string
		values []string
		want   db.Kind
	}{
		{"ints", []string{"1", "2", "-3"}, db.KindInt},
		{"one decimal widens to float", []string{"1", "2.5", "3"}, db.KindFloat},
		{"bools", []string{"true", "False", ""}, db.KindBool},
		{"text", []string{"1", "x"}, db.KindString},
		{"dates are text", []string{"2023-01-01"}, db.KindString},
		{"empty values ignored", []string{"", "7", ""}, db.KindInt},
		{"all empty", []string{"", ""}, db.KindString},
		{"no values", nil, db.KindString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferKind(tt.values))
		})
	}
}

func TestNormalizeHeaders(t *testing.T) {
	got := normalizeHeaders([]string{
		"\ufeffTransaction ID", "Customer ID", "Price per Unit", "totalAmount", " Age ", "Product-Category", "age",
	})
	assert.Equal(t, []string{
		"transaction_id", "customer_id", "price_per_unit", "total_amount", "age", "product_category", "age_2",
	}, got)
}
