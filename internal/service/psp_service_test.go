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

func newPspService(psps *testutil.MockPspRepository) *PspService {
	gen := idgen.New(testutil.NewMockSequenceAllocator())
	return NewPspService(psps, gen, &testutil.MockTxManager{}, newTestMetrics(), zerolog.Nop())
}

func TestRegisterPsp(t *testing.T) {
	psps := testutil.NewMockPspRepository()
	svc := newPspService(psps)

	p, err := svc.Register(context.Background(), RegisterPspInput{
		PspName:   "Axis UPI",
		PspHandle: "okaxis",
		BankName:  "Axis Bank",
	})
	require.NoError(t, err)

	assert.Equal(t, "PSP001", p.ID)
	assert.Equal(t, "okaxis", p.PspHandle)
	assert.True(t, p.Active)

	second, err := svc.Register(context.Background(), RegisterPspInput{
		PspName:   "YBL",
		PspHandle: "ybl",
	})
	require.NoError(t, err)
	assert.Equal(t, "PSP002", second.ID)
}

func TestRegisterPspDuplicateHandle(t *testing.T) {
	psps := testutil.NewMockPspRepository()
	svc := newPspService(psps)

	_, err := svc.Register(context.Background(), RegisterPspInput{PspName: "Axis UPI", PspHandle: "okaxis"})
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), RegisterPspInput{PspName: "Other", PspHandle: "okaxis"})
	assert.ErrorIs(t, err, domainErrors.ErrDuplicateResource)
}

func TestPspLookups(t *testing.T) {
	psps := testutil.NewMockPspRepository()
	svc := newPspService(psps)

	_, err := svc.Register(context.Background(), RegisterPspInput{PspName: "Axis UPI", PspHandle: "okaxis"})
	require.NoError(t, err)

	p, err := svc.GetByHandle(context.Background(), "okaxis")
	require.NoError(t, err)
	assert.Equal(t, "PSP001", p.ID)

	all, err := svc.ListActive(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 1)

	_, err = svc.GetByHandle(context.Background(), "missing")
	assert.ErrorIs(t, err, domainErrors.ErrPspNotFound)
}
