package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumericStringToCents(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"0.00", 0},
		{"1.00", 100},
		{"1.50", 150},
		{"0.01", 1},
		{"12345.67", 1234567},
		{"99999999999.99", 9999999999999},
		{"-5.25", -525},
	}

	for _, tt := range tests {
		got, err := numericStringToCents(tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "input %s", tt.in)
	}
}

func TestNumericStringToCentsInvalid(t *testing.T) {
	_, err := numericStringToCents("not-a-number")
	assert.Error(t, err)
}

func TestCentsToNumericString(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0.00"},
		{100, "1.00"},
		{150, "1.50"},
		{1, "0.01"},
		{1234567, "12345.67"},
		{-525, "-5.25"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, centsToNumericString(tt.in), "input %d", tt.in)
	}
}

func TestRoundTrip(t *testing.T) {
	for _, cents := range []int64{0, 1, 99, 100, 101, 1234567, 9999999999999} {
		got, err := numericStringToCents(centsToNumericString(cents))
		require.NoError(t, err)
		assert.Equal(t, cents, got)
	}
}
