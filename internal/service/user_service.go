package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/domain/user"
	"github.com/cassiomorais/upi-registry/internal/idgen"
	"github.com/cassiomorais/upi-registry/internal/infrastructure/observability"
)

type UserService struct {
	users      user.Repository
	idgen      *idgen.Generator
	tx         TransactionManager
	bcryptCost int
	metrics    *observability.Metrics
	logger     zerolog.Logger
}

func NewUserService(
	users user.Repository,
	gen *idgen.Generator,
	tx TransactionManager,
	bcryptCost int,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *UserService {
	if bcryptCost == 0 {
		bcryptCost = bcrypt.DefaultCost
	}
	return &UserService{
		users:      users,
		idgen:      gen,
		tx:         tx,
		bcryptCost: bcryptCost,
		metrics:    metrics,
		logger:     logger.With().Str("component", "user_service").Logger(),
	}
}

// Register creates a user with a freshly allocated ID and a bcrypt
// password hash. Phone and email must not belong to another active user.
func (s *UserService) Register(ctx context.Context, in RegisterUserInput) (*user.User, error) {
	if exists, err := s.users.ExistsByPhone(ctx, in.Phone); err != nil {
		return nil, err
	} else if exists {
		s.metrics.RegistrationsTotal.WithLabelValues("user", "duplicate").Inc()
		return nil, errors.NewDuplicateError("user", "phone", in.Phone)
	}
	if exists, err := s.users.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, err
	} else if exists {
		s.metrics.RegistrationsTotal.WithLabelValues("user", "duplicate").Inc()
		return nil, errors.NewDuplicateError("user", "email", in.Email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var created *user.User
	err = s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		id, err := s.idgen.UserID(ctx)
		if err != nil {
			return err
		}

		u, err := user.NewUser(id, in.FullName, in.Phone, in.Email, string(hash))
		if err != nil {
			return err
		}
		u.AadhaarNumber = in.AadhaarNumber
		u.PanNumber = in.PanNumber
		u.DeviceID = in.DeviceID

		if err := s.users.Create(ctx, u); err != nil {
			return err
		}
		created = u
		return nil
	})
	if err != nil {
		s.metrics.RegistrationsTotal.WithLabelValues("user", "error").Inc()
		return nil, err
	}

	s.metrics.RegistrationsTotal.WithLabelValues("user", "success").Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

func (s *UserService) GetByID(ctx context.Context, id string) (*user.User, error) {
	return s.users.GetByID(ctx, id)
}

func (s *UserService) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	return s.users.GetByPhone(ctx, phone)
}

// Update replaces non-empty profile fields. A changed email must not
// belong to another active user.
func (s *UserService) Update(ctx context.Context, id string, in UpdateUserInput) (*user.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Email != "" && in.Email != u.Email {
		exists, err := s.users.ExistsByEmail(ctx, in.Email)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, errors.NewDuplicateError("user", "email", in.Email)
		}
		u.Email = in.Email
	}
	if in.FullName != "" {
		u.FullName = in.FullName
	}
	if in.AadhaarNumber != "" {
		u.AadhaarNumber = in.AadhaarNumber
	}
	if in.PanNumber != "" {
		u.PanNumber = in.PanNumber
	}
	if in.DeviceID != "" {
		u.DeviceID = in.DeviceID
	}

	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// ChangePassword verifies the current password and stores a hash of
// the new one. New password and confirmation must match.
func (s *UserService) ChangePassword(ctx context.Context, id, currentPassword, newPassword, confirmPassword string) error {
	if newPassword != confirmPassword {
		return errors.ErrPasswordMismatch
	}

	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(currentPassword)); err != nil {
		return errors.ErrIncorrectPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), s.bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	if err := s.users.Update(ctx, u); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("password changed")
	return nil
}

// VerifyPassword checks credentials by phone and reports whether they
// match. An unknown phone is a not-found error; a wrong password is not.
func (s *UserService) VerifyPassword(ctx context.Context, phone, password string) (bool, error) {
	u, err := s.users.GetByPhone(ctx, phone)
	if err != nil {
		return false, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return false, nil
	}
	return true, nil
}

// CheckPhoneAvailable reports whether no active user holds the phone.
func (s *UserService) CheckPhoneAvailable(ctx context.Context, phone string) (bool, error) {
	exists, err := s.users.ExistsByPhone(ctx, phone)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

func (s *UserService) SetKycVerified(ctx context.Context, id string, verified bool) error {
	return s.users.SetKycVerified(ctx, id, verified)
}

// RecordLogin stamps last_login_at for the user.
func (s *UserService) RecordLogin(ctx context.Context, id string) error {
	return s.users.TouchLastLogin(ctx, id)
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	if err := s.users.Deactivate(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("user_id", id).Msg("user deactivated")
	return nil
}
