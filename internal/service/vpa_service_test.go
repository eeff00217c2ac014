package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/domain/vpa"
	"github.com/cassiomorais/upi-registry/internal/idgen"
	"github.com/cassiomorais/upi-registry/internal/testutil"
)

type vpaFixture struct {
	svc      *VpaService
	vpas     *testutil.MockVpaRepository
	psps     *testutil.MockPspRepository
	accounts *testutil.MockAccountRepository
	users    *testutil.MockUserRepository
	cache    *testutil.MockCache
}

func newVpaFixture(t *testing.T) *vpaFixture {
	t.Helper()
	vpas := testutil.NewMockVpaRepository()
	psps := testutil.NewMockPspRepository()
	accounts := testutil.NewMockAccountRepository()
	users := testutil.NewMockUserRepository()
	cache := testutil.NewMockCache()

	ctx := context.Background()
	require.NoError(t, users.Create(ctx, testutil.NewTestUser("U100001", "9876543210")))
	require.NoError(t, psps.Create(ctx, testutil.NewTestPsp("PSP001", "Axis UPI", "okaxis")))
	require.NoError(t, accounts.Create(ctx, testutil.NewTestAccount("A100001SBISAV", "U100001", "BSBI001", 50000)))

	svc := NewVpaService(vpas, psps, accounts, users,
		idgen.New(testutil.NewMockSequenceAllocator()),
		&testutil.MockTxManager{}, testutil.NewMockLocker(), cache,
		newTestMetrics(), zerolog.Nop())
	return &vpaFixture{svc: svc, vpas: vpas, psps: psps, accounts: accounts, users: users, cache: cache}
}

func createVpaInput() CreateVpaInput {
	return CreateVpaInput{
		UserID:          "U100001",
		VpaHandle:       "Ravi.Kumar",
		PspID:           "PSP001",
		LinkedAccountID: "A100001SBISAV",
	}
}

func TestCreateVpa(t *testing.T) {
	f := newVpaFixture(t)

	v, err := f.svc.Create(context.Background(), createVpaInput())
	require.NoError(t, err)

	assert.Equal(t, "VPA100000", v.ID)
	assert.Equal(t, "ravi.kumar@okaxis", v.VpaAddress)
	assert.True(t, v.IsPrimary, "first vpa must be primary even when not requested")
	assert.True(t, v.Active)
}

func TestCreateVpaDuplicateAddress(t *testing.T) {
	f := newVpaFixture(t)

	_, err := f.svc.Create(context.Background(), createVpaInput())
	require.NoError(t, err)

	_, err = f.svc.Create(context.Background(), createVpaInput())
	assert.ErrorIs(t, err, domainErrors.ErrDuplicateVpa)
}

func TestCreateVpaAccountOwnershipCheck(t *testing.T) {
	f := newVpaFixture(t)

	ctx := context.Background()
	require.NoError(t, f.users.Create(ctx, testutil.NewTestUser("U100002", "9876543211")))

	in := createVpaInput()
	in.UserID = "U100002"
	_, err := f.svc.Create(ctx, in)
	assert.ErrorIs(t, err, domainErrors.ErrOwnershipMismatch)
}

func TestCreateVpaUnknownPsp(t *testing.T) {
	f := newVpaFixture(t)

	in := createVpaInput()
	in.PspID = "PSP999"
	_, err := f.svc.Create(context.Background(), in)
	assert.ErrorIs(t, err, domainErrors.ErrPspNotFound)
}

func TestCreateSecondVpaRequestedPrimaryDemotesFirst(t *testing.T) {
	f := newVpaFixture(t)

	first, err := f.svc.Create(context.Background(), createVpaInput())
	require.NoError(t, err)

	in := createVpaInput()
	in.VpaHandle = "ravi2"
	in.IsPrimary = true
	second, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	assert.True(t, second.IsPrimary)

	got, err := f.vpas.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.False(t, got.IsPrimary)
}

func TestVerifyVpa(t *testing.T) {
	f := newVpaFixture(t)

	v, err := f.svc.Create(context.Background(), createVpaInput())
	require.NoError(t, err)

	result, err := f.svc.Verify(context.Background(), v.VpaAddress)
	require.NoError(t, err)

	assert.Equal(t, "ravi.kumar@okaxis", result.VpaAddress)
	assert.True(t, result.Exists)
	assert.True(t, result.Active)
	assert.Equal(t, "R*** K****", result.AccountHolderName)
	assert.Equal(t, "Axis UPI", result.PspName)
}

func TestVerifyUnknownVpaIsNotAnError(t *testing.T) {
	f := newVpaFixture(t)

	result, err := f.svc.Verify(context.Background(), "nobody@okaxis")
	require.NoError(t, err)

	assert.Equal(t, "nobody@okaxis", result.VpaAddress)
	assert.False(t, result.Exists)
	assert.False(t, result.Active)
	assert.Empty(t, result.AccountHolderName)
}

func TestVerifyServesRepeatLookupsFromCache(t *testing.T) {
	f := newVpaFixture(t)

	v, err := f.svc.Create(context.Background(), createVpaInput())
	require.NoError(t, err)

	first, err := f.svc.Verify(context.Background(), v.VpaAddress)
	require.NoError(t, err)
	require.True(t, first.Exists)
	require.Equal(t, 1, f.cache.Len())

	calls := 0
	f.vpas.GetByAddressFunc = func(ctx context.Context, address string) (*vpa.Vpa, error) {
		calls++
		return nil, domainErrors.ErrVpaNotFound
	}

	second, err := f.svc.Verify(context.Background(), v.VpaAddress)
	require.NoError(t, err)
	assert.True(t, second.Exists)
	assert.Zero(t, calls, "cached verification must not touch the repository")
}

func TestVerifyCachesNegativeResults(t *testing.T) {
	f := newVpaFixture(t)

	_, err := f.svc.Verify(context.Background(), "nobody@okaxis")
	require.NoError(t, err)
	assert.Equal(t, 1, f.cache.Len())
}

func TestDeleteVpaInvalidatesCache(t *testing.T) {
	f := newVpaFixture(t)

	v, err := f.svc.Create(context.Background(), createVpaInput())
	require.NoError(t, err)

	_, err = f.svc.Verify(context.Background(), v.VpaAddress)
	require.NoError(t, err)
	require.Equal(t, 1, f.cache.Len())

	require.NoError(t, f.svc.Delete(context.Background(), v.ID))
	assert.Zero(t, f.cache.Len())

	result, err := f.svc.Verify(context.Background(), v.VpaAddress)
	require.NoError(t, err)
	assert.False(t, result.Exists)
}

func TestCheckAvailability(t *testing.T) {
	f := newVpaFixture(t)

	available, err := f.svc.CheckAvailability(context.Background(), "ravi.kumar@okaxis")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = f.svc.Create(context.Background(), createVpaInput())
	require.NoError(t, err)

	available, err = f.svc.CheckAvailability(context.Background(), "ravi.kumar@okaxis")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestVpaSetPrimary(t *testing.T) {
	f := newVpaFixture(t)

	first, err := f.svc.Create(context.Background(), createVpaInput())
	require.NoError(t, err)

	in := createVpaInput()
	in.VpaHandle = "ravi2"
	second, err := f.svc.Create(context.Background(), in)
	require.NoError(t, err)
	require.False(t, second.IsPrimary)

	require.NoError(t, f.svc.SetPrimary(context.Background(), "U100001", second.ID))

	gotFirst, err := f.vpas.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	gotSecond, err := f.vpas.GetByID(context.Background(), second.ID)
	require.NoError(t, err)
	assert.False(t, gotFirst.IsPrimary)
	assert.True(t, gotSecond.IsPrimary)
}

func TestVpaLinkAccountOwnershipCheck(t *testing.T) {
	f := newVpaFixture(t)

	ctx := context.Background()
	v, err := f.svc.Create(ctx, createVpaInput())
	require.NoError(t, err)

	require.NoError(t, f.accounts.Create(ctx, testutil.NewTestAccount("A100002SBISAV", "U100002", "BSBI001", 0)))

	err = f.svc.LinkAccount(ctx, v.ID, "A100002SBISAV")
	assert.ErrorIs(t, err, domainErrors.ErrOwnershipMismatch)
}

func TestVpaLinkAccount(t *testing.T) {
	f := newVpaFixture(t)

	ctx := context.Background()
	v, err := f.svc.Create(ctx, createVpaInput())
	require.NoError(t, err)

	other := testutil.NewTestAccount("A100001SBICUR", "U100001", "BSBI001", 0)
	other.AccountNumber = "999999999999"
	require.NoError(t, f.accounts.Create(ctx, other))

	require.NoError(t, f.svc.LinkAccount(ctx, v.ID, "A100001SBICUR"))

	got, err := f.vpas.GetByID(ctx, v.ID)
	require.NoError(t, err)
	assert.Equal(t, "A100001SBICUR", got.LinkedAccountID)
}
