package handlers

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateCartQuantity(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		stock    int
		wantErr  string
	}{
		{name: "zero quantity", quantity: 0, stock: 10, wantErr: "quantity must be at least 1"},
		{name: "negative quantity", quantity: -2, stock: 10, wantErr: "quantity must be at least 1"},
		{name: "over stock", quantity: 3, stock: 2, wantErr: "Only 2 items available"},
		{name: "zero stock", quantity: 1, stock: 0, wantErr: "Only 0 items available"},
		{name: "exactly stock", quantity: 2, stock: 2},
		{name: "under stock", quantity: 1, stock: 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateCartQuantity(tt.quantity, tt.stock)
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.EqualError(t, err, tt.wantErr)
		})
	}
}
