package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
	"github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/domain/user"
	"github.com/cassiomorais/upi-registry/internal/domain/vpa"
	"github.com/cassiomorais/upi-registry/internal/idgen"
	"github.com/cassiomorais/upi-registry/internal/infrastructure/observability"
)

type VpaService struct {
	vpas     vpa.Repository
	psps     vpa.PspRepository
	accounts bank.AccountRepository
	users    user.Repository
	idgen    *idgen.Generator
	tx       TransactionManager
	locker   Locker
	cache    Cache
	metrics  *observability.Metrics
	logger   zerolog.Logger
}

func NewVpaService(
	vpas vpa.Repository,
	psps vpa.PspRepository,
	accounts bank.AccountRepository,
	users user.Repository,
	gen *idgen.Generator,
	tx TransactionManager,
	locker Locker,
	cache Cache,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *VpaService {
	return &VpaService{
		vpas:     vpas,
		psps:     psps,
		accounts: accounts,
		users:    users,
		idgen:    gen,
		tx:       tx,
		locker:   locker,
		cache:    cache,
		metrics:  metrics,
		logger:   logger.With().Str("component", "vpa_service").Logger(),
	}
}

// Create registers a VPA for a user. The address is derived from the
// handle and the PSP handle and must be unique among active VPAs. The
// first VPA for a user becomes primary regardless of the requested flag.
func (s *VpaService) Create(ctx context.Context, in CreateVpaInput) (*vpa.Vpa, error) {
	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	p, err := s.psps.GetByID(ctx, in.PspID)
	if err != nil {
		return nil, err
	}

	a, err := s.accounts.GetByID(ctx, in.LinkedAccountID)
	if err != nil {
		return nil, err
	}
	if a.UserID != in.UserID {
		return nil, errors.ErrOwnershipMismatch
	}

	address := vpa.Address(in.VpaHandle, p.PspHandle)
	exists, err := s.vpas.ExistsByAddress(ctx, address)
	if err != nil {
		return nil, err
	}
	if exists {
		s.metrics.RegistrationsTotal.WithLabelValues("vpa", "duplicate").Inc()
		return nil, errors.ErrDuplicateVpa
	}

	var created *vpa.Vpa
	err = s.locker.WithLock(ctx, "primary-vpa:"+in.UserID, func(ctx context.Context) error {
		count, err := s.vpas.CountActiveByUser(ctx, in.UserID)
		if err != nil {
			return err
		}
		isPrimary := in.IsPrimary || count == 0

		return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
			id, err := s.idgen.VpaID(ctx)
			if err != nil {
				return err
			}

			v, err := vpa.NewVpa(id, in.UserID, in.VpaHandle, p, in.LinkedAccountID)
			if err != nil {
				return err
			}
			v.IsPrimary = isPrimary

			if isPrimary {
				if err := s.vpas.ClearPrimary(ctx, in.UserID); err != nil {
					return err
				}
			}
			if err := s.vpas.Create(ctx, v); err != nil {
				return err
			}
			created = v
			return nil
		})
	})
	if err != nil {
		s.metrics.RegistrationsTotal.WithLabelValues("vpa", "error").Inc()
		return nil, err
	}

	s.cache.Delete(ctx, created.VpaAddress)
	s.metrics.RegistrationsTotal.WithLabelValues("vpa", "success").Inc()
	s.logger.Info().
		Str("vpa_id", created.ID).
		Str("vpa_address", created.VpaAddress).
		Str("user_id", in.UserID).
		Msg("vpa created")
	return created, nil
}

func (s *VpaService) GetByID(ctx context.Context, id string) (*vpa.Vpa, error) {
	return s.vpas.GetByID(ctx, id)
}

func (s *VpaService) GetByAddress(ctx context.Context, address string) (*vpa.Vpa, error) {
	return s.vpas.GetByAddress(ctx, address)
}

func (s *VpaService) ListByUser(ctx context.Context, userID string) ([]*vpa.Vpa, error) {
	return s.vpas.ListByUser(ctx, userID)
}

func (s *VpaService) GetPrimary(ctx context.Context, userID string) (*vpa.Vpa, error) {
	return s.vpas.GetPrimaryByUser(ctx, userID)
}

// Verify resolves an address to holder details for pre-payment checks.
// An unknown or inactive address is not an error; it reports
// Exists=false. Results are served from a short-TTL cache.
func (s *VpaService) Verify(ctx context.Context, address string) (*vpa.Verification, error) {
	var cached vpa.Verification
	if err := s.cache.GetJSON(ctx, address, &cached); err == nil {
		s.metrics.VpaCacheHits.WithLabelValues("hit").Inc()
		return &cached, nil
	}
	s.metrics.VpaCacheHits.WithLabelValues("miss").Inc()

	result := &vpa.Verification{VpaAddress: address}

	v, err := s.vpas.GetByAddress(ctx, address)
	if err != nil {
		if !errors.IsNotFound(err) {
			return nil, err
		}
		s.metrics.VpaVerifications.WithLabelValues("not_found").Inc()
		s.cache.SetJSON(ctx, address, result)
		return result, nil
	}

	result.Exists = true
	result.Active = v.Active

	if a, err := s.accounts.GetByID(ctx, v.LinkedAccountID); err == nil {
		result.AccountHolderName = vpa.MaskName(a.AccountHolderName)
	}
	if p, err := s.psps.GetByID(ctx, v.PspID); err == nil {
		result.PspName = p.PspName
	}

	s.metrics.VpaVerifications.WithLabelValues("found").Inc()
	s.cache.SetJSON(ctx, address, result)
	return result, nil
}

// CheckAvailability reports whether the address is free to register.
func (s *VpaService) CheckAvailability(ctx context.Context, address string) (bool, error) {
	exists, err := s.vpas.ExistsByAddress(ctx, address)
	if err != nil {
		return false, err
	}
	return !exists, nil
}

// SetPrimary promotes the VPA to the user's single primary VPA. The
// VPA must exist, be active and belong to the user.
func (s *VpaService) SetPrimary(ctx context.Context, userID, vpaID string) error {
	v, err := s.vpas.GetByID(ctx, vpaID)
	if err != nil {
		return err
	}
	if v.UserID != userID {
		return errors.ErrOwnershipMismatch
	}

	err = s.locker.WithLock(ctx, "primary-vpa:"+userID, func(ctx context.Context) error {
		return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
			if err := s.vpas.ClearPrimary(ctx, userID); err != nil {
				return err
			}
			return s.vpas.SetPrimary(ctx, vpaID)
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("vpa_id", vpaID).Str("user_id", userID).Msg("primary vpa changed")
	return nil
}

// LinkAccount points the VPA at a different bank account of the same
// user.
func (s *VpaService) LinkAccount(ctx context.Context, vpaID, accountID string) error {
	v, err := s.vpas.GetByID(ctx, vpaID)
	if err != nil {
		return err
	}

	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if a.UserID != v.UserID {
		return errors.ErrOwnershipMismatch
	}

	if err := s.vpas.UpdateLinkedAccount(ctx, vpaID, accountID); err != nil {
		return err
	}
	s.cache.Delete(ctx, v.VpaAddress)
	return nil
}

func (s *VpaService) MarkVerified(ctx context.Context, vpaID string) error {
	v, err := s.vpas.GetByID(ctx, vpaID)
	if err != nil {
		return err
	}
	if err := s.vpas.SetVerified(ctx, vpaID); err != nil {
		return err
	}
	s.cache.Delete(ctx, v.VpaAddress)
	return nil
}

func (s *VpaService) Delete(ctx context.Context, vpaID string) error {
	v, err := s.vpas.GetByID(ctx, vpaID)
	if err != nil {
		return err
	}
	if err := s.vpas.Deactivate(ctx, vpaID); err != nil {
		return err
	}
	s.cache.Delete(ctx, v.VpaAddress)
	s.logger.Info().Str("vpa_id", vpaID).Str("vpa_address", v.VpaAddress).Msg("vpa deactivated")
	return nil
}
