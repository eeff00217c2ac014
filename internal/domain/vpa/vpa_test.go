package vpa

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddress(t *testing.T) {
	assert.Equal(t, "ravi.kumar@okaxis", Address("Ravi.Kumar", "okaxis"))
	assert.Equal(t, "ravi@ybl", Address("ravi", "YBL"))
}

func TestMaskName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Ravi Kumar", "R*** K****"},
		{"Ravi", "R***"},
		{"A", "A"},
		{"  Ravi   Kumar  ", "R*** K****"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MaskName(tc.in))
	}
}

func TestNewVpaLowercasesHandle(t *testing.T) {
	psp := &Psp{ID: "PSP001", PspName: "Axis UPI", PspHandle: "okaxis", Active: true}

	v, err := NewVpa("VPA100000", "U100001", "Ravi.Kumar", psp, "A100001SBISAV")
	require.NoError(t, err)

	assert.Equal(t, "ravi.kumar", v.VpaHandle)
	assert.Equal(t, "ravi.kumar@okaxis", v.VpaAddress)
	assert.Equal(t, "PSP001", v.PspID)
	assert.True(t, v.Active)
	assert.False(t, v.IsPrimary)
}

func TestNewVpaRequiresPsp(t *testing.T) {
	_, err := NewVpa("VPA100000", "U100001", "ravi", nil, "A100001SBISAV")
	require.Error(t, err)
}
