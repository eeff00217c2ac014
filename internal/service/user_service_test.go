package service

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	domainErrors "github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/idgen"
	"github.com/cassiomorais/upi-registry/internal/testutil"
)

func newUserService(users *testutil.MockUserRepository) *UserService {
	gen := idgen.New(testutil.NewMockSequenceAllocator())
	return NewUserService(users, gen, &testutil.MockTxManager{},
		bcrypt.MinCost, newTestMetrics(), zerolog.Nop())
}

func registerInput(phone, email string) RegisterUserInput {
	return RegisterUserInput{
		FullName: "Ravi Kumar",
		Phone:    phone,
		Email:    email,
		Password: "secret1",
	}
}

func TestRegisterUser(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := newUserService(users)

	u, err := svc.Register(context.Background(), registerInput("9876543210", "ravi@example.com"))
	require.NoError(t, err)

	assert.Equal(t, "U100000", u.ID)
	assert.True(t, u.Active)
	assert.NotEqual(t, "secret1", u.PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")))

	second, err := svc.Register(context.Background(), registerInput("9876543211", "ravi2@example.com"))
	require.NoError(t, err)
	assert.Equal(t, "U100001", second.ID)
}

func TestRegisterDuplicatePhone(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := newUserService(users)

	_, err := svc.Register(context.Background(), registerInput("9876543210", "a@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput("9876543210", "b@example.com"))
	assert.ErrorIs(t, err, domainErrors.ErrDuplicateResource)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := newUserService(users)

	_, err := svc.Register(context.Background(), registerInput("9876543210", "same@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), registerInput("9876543211", "same@example.com"))
	assert.ErrorIs(t, err, domainErrors.ErrDuplicateResource)
}

func TestChangePassword(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := newUserService(users)

	u, err := svc.Register(context.Background(), registerInput("9876543210", "ravi@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), u.ID, "secret1", "newpass2", "newpass2"))

	valid, err := svc.VerifyPassword(context.Background(), "9876543210", "newpass2")
	require.NoError(t, err)
	assert.True(t, valid)
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := newUserService(users)

	u, err := svc.Register(context.Background(), registerInput("9876543210", "ravi@example.com"))
	require.NoError(t, err)

	err = svc.ChangePassword(context.Background(), u.ID, "wrong", "newpass2", "newpass2")
	assert.ErrorIs(t, err, domainErrors.ErrIncorrectPassword)
}

func TestChangePasswordConfirmationMismatch(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := newUserService(users)

	err := svc.ChangePassword(context.Background(), "U100000", "secret1", "newpass2", "other")
	assert.ErrorIs(t, err, domainErrors.ErrPasswordMismatch)
}

func TestVerifyPassword(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := newUserService(users)

	_, err := svc.Register(context.Background(), registerInput("9876543210", "ravi@example.com"))
	require.NoError(t, err)

	valid, err := svc.VerifyPassword(context.Background(), "9876543210", "secret1")
	require.NoError(t, err)
	assert.True(t, valid)

	valid, err = svc.VerifyPassword(context.Background(), "9876543210", "wrong")
	require.NoError(t, err)
	assert.False(t, valid)

	_, err = svc.VerifyPassword(context.Background(), "9999999999", "secret1")
	assert.ErrorIs(t, err, domainErrors.ErrUserNotFound)
}

func TestCheckPhoneAvailable(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := newUserService(users)

	available, err := svc.CheckPhoneAvailable(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.True(t, available)

	_, err = svc.Register(context.Background(), registerInput("9876543210", "ravi@example.com"))
	require.NoError(t, err)

	available, err = svc.CheckPhoneAvailable(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.False(t, available)
}

func TestDeleteUserFreesPhone(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := newUserService(users)

	u, err := svc.Register(context.Background(), registerInput("9876543210", "ravi@example.com"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), u.ID))

	_, err = svc.GetByID(context.Background(), u.ID)
	assert.ErrorIs(t, err, domainErrors.ErrUserNotFound)

	available, err := svc.CheckPhoneAvailable(context.Background(), "9876543210")
	require.NoError(t, err)
	assert.True(t, available)
}

func TestSetKycVerified(t *testing.T) {
	users := testutil.NewMockUserRepository()
	svc := newUserService(users)

	u, err := svc.Register(context.Background(), registerInput("9876543210", "ravi@example.com"))
	require.NoError(t, err)
	assert.False(t, u.KycVerified)

	require.NoError(t, svc.SetKycVerified(context.Background(), u.ID, true))

	got, err := svc.GetByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.True(t, got.KycVerified)
}
