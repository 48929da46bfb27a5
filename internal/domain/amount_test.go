package domain

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckAmount(t *testing.T) {
	tests := []struct {
		in   string
		want string // expected message, empty when valid
	}{
		{"42.50", ""},
		{"-0.01", ""},
		{"0", ""},
		{"0.0000", ""},
		{"9999999999999999.9999", ""},
		{"-9999999999999999.9999", ""},
		{"1e15", ""},
		{"0.00001", "Amount supports at most 4 decimal places."},
		{"1.00001", "Amount supports at most 4 decimal places."},
		{"1e-300000000", "Amount supports at most 4 decimal places."},
		{"10000000000000000", "Amount is out of range."},
		{"1e16", "Amount is out of range."},
		{"1e30", "Amount is out of range."},
		{"-1e30", "Amount is out of range."},
		{"1e300000000", "Amount is out of range."},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			d, err := decimal.NewFromString(tt.in)
			require.NoError(t, err)

			err = CheckAmount(d)
			if tt.want == "" {
				assert.NoError(t, err)
				return
			}
			var verr *ValidationError
			require.True(t, errors.As(err, &verr), "got %v", err)
			assert.Equal(t, "amount", verr.Field)
			assert.Equal(t, tt.want, verr.Message)
		})
	}
}
