package bank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaskAccountNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123456789012", "XXXXXXXX9012"},
		{"12345", "X2345"},
		{"1234", "1234"},
		{"", ""},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, MaskAccountNumber(tc.in))
	}
}

func TestAccountTypeValid(t *testing.T) {
	for _, typ := range []AccountType{TypeSavings, TypeCurrent, TypeSalary, TypeNRI, TypeFixedDeposit} {
		assert.True(t, typ.Valid())
	}
	assert.False(t, AccountType("CHECKING").Valid())
	assert.False(t, AccountType("").Valid())
}

func TestNewAccountNormalizes(t *testing.T) {
	a, err := NewAccount("A100001SBISAV", "U100001", "BSBI001", "123456789012", "sbin0001234", " Ravi Kumar ", TypeSavings)
	require.NoError(t, err)

	assert.Equal(t, "SBIN0001234", a.IfscCode)
	assert.Equal(t, "Ravi Kumar", a.AccountHolderName)
	assert.Zero(t, a.Balance)
	assert.True(t, a.Active)
	assert.False(t, a.IsPrimary)
}

func TestNewAccountRejectsUnknownType(t *testing.T) {
	_, err := NewAccount("A100001SBISAV", "U100001", "BSBI001", "123456789012", "SBIN0001234", "Ravi", AccountType("CHECKING"))
	require.Error(t, err)
}
