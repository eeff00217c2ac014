package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/idgen"
	"github.com/cassiomorais/upi-registry/internal/testutil"
)

func newBankService(banks *testutil.MockBankRepository) *BankService {
	gen := idgen.New(testutil.NewMockSequenceAllocator())
	return NewBankService(banks, gen, &testutil.MockTxManager{}, newTestMetrics(), zerolog.Nop())
}

func TestRegisterBank(t *testing.T) {
	banks := testutil.NewMockBankRepository()
	svc := newBankService(banks)

	b, err := svc.Register(context.Background(), RegisterBankInput{
		BankName:   "State Bank of India",
		BankCode:   "sbi",
		IfscPrefix: "sbin",
	})
	require.NoError(t, err)

	assert.Equal(t, "BSBI001", b.ID)
	assert.Equal(t, "SBI", b.BankCode)
	assert.Equal(t, "SBIN", b.IfscPrefix)
	assert.True(t, b.UpiEnabled)
	assert.True(t, b.Active)
}

func TestRegisterBankDisabledRails(t *testing.T) {
	banks := testutil.NewMockBankRepository()
	svc := newBankService(banks)

	off := false
	b, err := svc.Register(context.Background(), RegisterBankInput{
		BankName:   "Cooperative Bank",
		BankCode:   "COOP",
		IfscPrefix: "COOP",
		UpiEnabled: &off,
	})
	require.NoError(t, err)
	assert.False(t, b.UpiEnabled)
	assert.True(t, b.ImpsEnabled)
}

func TestRegisterBankDuplicateCode(t *testing.T) {
	banks := testutil.NewMockBankRepository()
	svc := newBankService(banks)

	_, err := svc.Register(context.Background(), RegisterBankInput{
		BankName: "State Bank", BankCode: "SBI", IfscPrefix: "SBIN",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterBankInput{
		BankName: "Another SBI", BankCode: "SBI", IfscPrefix: "SBIX",
	})
	assert.ErrorIs(t, err, domainErrors.ErrDuplicateResource)
}

func TestRegisterBankDuplicateIfscPrefix(t *testing.T) {
	banks := testutil.NewMockBankRepository()
	svc := newBankService(banks)

	_, err := svc.Register(context.Background(), RegisterBankInput{
		BankName: "State Bank", BankCode: "SBI", IfscPrefix: "SBIN",
	})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterBankInput{
		BankName: "Shadow Bank", BankCode: "SHDW", IfscPrefix: "SBIN",
	})
	assert.ErrorIs(t, err, domainErrors.ErrDuplicateResource)
}

func TestBankLookups(t *testing.T) {
	banks := testutil.NewMockBankRepository()
	svc := newBankService(banks)

	off := false
	_, err := svc.Register(context.Background(), RegisterBankInput{
		BankName: "State Bank", BankCode: "SBI", IfscPrefix: "SBIN",
	})
	require.NoError(t, err)
	_, err = svc.Register(context.Background(), RegisterBankInput{
		BankName: "No UPI Bank", BankCode: "NOUPI", IfscPrefix: "NOUP", UpiEnabled: &off,
	})
	require.NoError(t, err)

	b, err := svc.GetByCode(context.Background(), "sbi")
	require.NoError(t, err)
	assert.Equal(t, "BSBI001", b.ID)

	all, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 2)

	upi, err := svc.ListUpiEnabled(context.Background())
	require.NoError(t, err)
	require.Len(t, upi, 1)
	assert.Equal(t, "SBI", upi[0].BankCode)

	_, err = svc.GetByCode(context.Background(), "HDFC")
	assert.ErrorIs(t, err, domainErrors.ErrBankNotFound)
}
