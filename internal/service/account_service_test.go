package service

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
	domainErrors "github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/infrastructure/observability"
	"github.com/cassiomorais/upi-registry/internal/testutil"
)

func newTestMetrics() *observability.Metrics {
	return observability.NewMetrics("test", prometheus.NewRegistry())
}

type accountFixture struct {
	svc      *AccountService
	accounts *testutil.MockAccountRepository
	banks    *testutil.MockBankRepository
	users    *testutil.MockUserRepository
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()
	accounts := testutil.NewMockAccountRepository()
	banks := testutil.NewMockBankRepository()
	users := testutil.NewMockUserRepository()

	require.NoError(t, users.Create(context.Background(), testutil.NewTestUser("U100001", "9876543210")))
	require.NoError(t, banks.Create(context.Background(), testutil.NewTestBank("BSBI001", "State Bank", "SBI", "SBIN")))

	svc := NewAccountService(accounts, banks, users,
		&testutil.MockTxManager{}, testutil.NewMockLocker(), 10, newTestMetrics(), zerolog.Nop())
	return &accountFixture{svc: svc, accounts: accounts, banks: banks, users: users}
}

func linkInput() LinkAccountInput {
	return LinkAccountInput{
		UserID:            "U100001",
		BankCode:          "SBI",
		AccountNumber:     "123456789012",
		IfscCode:          "SBIN0001234",
		AccountHolderName: "Ravi Kumar",
		AccountType:       bank.TypeSavings,
	}
}

func TestLinkFirstAccountBecomesPrimary(t *testing.T) {
	f := newAccountFixture(t)

	in := linkInput()
	in.IsPrimary = false
	a, err := f.svc.Link(context.Background(), in)
	require.NoError(t, err)

	assert.Equal(t, "A100001SBISAV", a.ID)
	assert.True(t, a.IsPrimary, "first account must be primary even when not requested")
	assert.Zero(t, a.Balance)
}

func TestLinkRequestedPrimaryDemotesExisting(t *testing.T) {
	f := newAccountFixture(t)

	first, err := f.svc.Link(context.Background(), linkInput())
	require.NoError(t, err)

	second := linkInput()
	second.AccountNumber = "999999999999"
	second.AccountType = bank.TypeCurrent
	second.IsPrimary = true
	b, err := f.svc.Link(context.Background(), second)
	require.NoError(t, err)
	assert.True(t, b.IsPrimary)

	got, err := f.accounts.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPrimary)
}

func TestLinkSecondAccountNotPrimaryByDefault(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.Link(context.Background(), linkInput())
	require.NoError(t, err)

	second := linkInput()
	second.AccountNumber = "999999999999"
	second.AccountType = bank.TypeCurrent
	b, err := f.svc.Link(context.Background(), second)
	require.NoError(t, err)
	assert.False(t, b.IsPrimary)
}

func TestLinkDuplicateAccount(t *testing.T) {
	f := newAccountFixture(t)

	_, err := f.svc.Link(context.Background(), linkInput())
	require.NoError(t, err)

	_, err = f.svc.Link(context.Background(), linkInput())
	assert.ErrorIs(t, err, domainErrors.ErrDuplicateResource)
}

func TestLinkIfscMustMatchBank(t *testing.T) {
	f := newAccountFixture(t)

	in := linkInput()
	in.IfscCode = "HDFC0001234"
	_, err := f.svc.Link(context.Background(), in)
	assert.ErrorIs(t, err, domainErrors.ErrIfscMismatch)
}

func TestLinkAccountLimit(t *testing.T) {
	accounts := testutil.NewMockAccountRepository()
	banks := testutil.NewMockBankRepository()
	users := testutil.NewMockUserRepository()

	require.NoError(t, users.Create(context.Background(), testutil.NewTestUser("U100001", "9876543210")))
	require.NoError(t, banks.Create(context.Background(), testutil.NewTestBank("BSBI001", "State Bank", "SBI", "SBIN")))

	svc := NewAccountService(accounts, banks, users,
		&testutil.MockTxManager{}, testutil.NewMockLocker(), 1, newTestMetrics(), zerolog.Nop())

	_, err := svc.Link(context.Background(), linkInput())
	require.NoError(t, err)

	second := linkInput()
	second.AccountNumber = "999999999999"
	second.AccountType = bank.TypeCurrent
	_, err = svc.Link(context.Background(), second)
	assert.ErrorIs(t, err, domainErrors.ErrAccountLimitReached)
}

func TestLinkUnknownUser(t *testing.T) {
	f := newAccountFixture(t)

	in := linkInput()
	in.UserID = "U999999"
	_, err := f.svc.Link(context.Background(), in)
	assert.ErrorIs(t, err, domainErrors.ErrUserNotFound)
}

func TestSetPrimaryMovesFlag(t *testing.T) {
	f := newAccountFixture(t)

	first, err := f.svc.Link(context.Background(), linkInput())
	require.NoError(t, err)

	second := linkInput()
	second.AccountNumber = "999999999999"
	second.AccountType = bank.TypeCurrent
	b, err := f.svc.Link(context.Background(), second)
	require.NoError(t, err)

	require.NoError(t, f.svc.SetPrimary(context.Background(), "U100001", b.ID))

	gotFirst, err := f.accounts.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	gotSecond, err := f.accounts.GetByID(context.Background(), b.ID)
	require.NoError(t, err)
	assert.False(t, gotFirst.IsPrimary)
	assert.True(t, gotSecond.IsPrimary)
}

func TestSetPrimaryOwnershipCheck(t *testing.T) {
	f := newAccountFixture(t)

	a, err := f.svc.Link(context.Background(), linkInput())
	require.NoError(t, err)

	err = f.svc.SetPrimary(context.Background(), "U999999", a.ID)
	assert.ErrorIs(t, err, domainErrors.ErrOwnershipMismatch)
}

func TestSetPrimaryUnknownAccount(t *testing.T) {
	f := newAccountFixture(t)
	err := f.svc.SetPrimary(context.Background(), "U100001", "A100001SBISAV")
	assert.ErrorIs(t, err, domainErrors.ErrAccountNotFound)
}

func TestCreditAndDebit(t *testing.T) {
	f := newAccountFixture(t)

	a, err := f.svc.Link(context.Background(), linkInput())
	require.NoError(t, err)

	after, err := f.svc.Credit(context.Background(), a.ID, 50000)
	require.NoError(t, err)
	assert.Equal(t, int64(50000), after.Balance)

	after, err = f.svc.Debit(context.Background(), a.ID, 20000)
	require.NoError(t, err)
	assert.Equal(t, int64(30000), after.Balance)
}

func TestCreditRejectsNonPositiveAmount(t *testing.T) {
	f := newAccountFixture(t)

	for _, amount := range []int64{0, -100} {
		_, err := f.svc.Credit(context.Background(), "A100001SBISAV", amount)
		assert.ErrorIs(t, err, domainErrors.ErrInvalidAmount)
	}
}

func TestDebitInsufficientBalance(t *testing.T) {
	f := newAccountFixture(t)

	a, err := f.svc.Link(context.Background(), linkInput())
	require.NoError(t, err)
	_, err = f.svc.Credit(context.Background(), a.ID, 10000)
	require.NoError(t, err)

	_, err = f.svc.Debit(context.Background(), a.ID, 25000)
	require.ErrorIs(t, err, domainErrors.ErrInsufficientBalance)

	var insufficientErr *domainErrors.InsufficientBalanceError
	require.True(t, errors.As(err, &insufficientErr))
	assert.Equal(t, int64(25000), insufficientErr.Requested)
	assert.Equal(t, int64(10000), insufficientErr.Available)

	got, err := f.accounts.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(10000), got.Balance, "failed debit must not change the balance")
}

func TestDebitUnknownAccount(t *testing.T) {
	f := newAccountFixture(t)
	_, err := f.svc.Debit(context.Background(), "A999999SBISAV", 100)
	assert.ErrorIs(t, err, domainErrors.ErrAccountNotFound)
}

func TestConcurrentDebitsNeverOverdraw(t *testing.T) {
	f := newAccountFixture(t)

	a, err := f.svc.Link(context.Background(), linkInput())
	require.NoError(t, err)
	_, err = f.svc.Credit(context.Background(), a.ID, 100000)
	require.NoError(t, err)

	var succeeded atomic.Int64
	g := new(errgroup.Group)
	for i := 0; i < 20; i++ {
		g.Go(func() error {
			_, err := f.svc.Debit(context.Background(), a.ID, 10000)
			if err == nil {
				succeeded.Add(1)
				return nil
			}
			if errors.Is(err, domainErrors.ErrInsufficientBalance) {
				return nil
			}
			return err
		})
	}
	require.NoError(t, g.Wait())

	assert.Equal(t, int64(10), succeeded.Load())
	got, err := f.accounts.GetByID(context.Background(), a.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), got.Balance)
}

func TestDeleteAccountIsSoft(t *testing.T) {
	f := newAccountFixture(t)

	a, err := f.svc.Link(context.Background(), linkInput())
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), a.ID))

	_, err = f.svc.GetByID(context.Background(), a.ID)
	assert.ErrorIs(t, err, domainErrors.ErrAccountNotFound)

	count, err := f.accounts.CountActiveByUser(context.Background(), "U100001")
	require.NoError(t, err)
	assert.Zero(t, count)
}
