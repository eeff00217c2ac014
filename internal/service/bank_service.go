package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
	"github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/idgen"
	"github.com/cassiomorais/upi-registry/internal/infrastructure/observability"
)

type BankService struct {
	banks   bank.Repository
	idgen   *idgen.Generator
	tx      TransactionManager
	metrics *observability.Metrics
	logger  zerolog.Logger
}

func NewBankService(
	banks bank.Repository,
	gen *idgen.Generator,
	tx TransactionManager,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *BankService {
	return &BankService{
		banks:   banks,
		idgen:   gen,
		tx:      tx,
		metrics: metrics,
		logger:  logger.With().Str("component", "bank_service").Logger(),
	}
}

// Register creates a bank. Bank code and IFSC prefix must not belong
// to another active bank.
func (s *BankService) Register(ctx context.Context, in RegisterBankInput) (*bank.Bank, error) {
	if exists, err := s.banks.ExistsByCode(ctx, in.BankCode); err != nil {
		return nil, err
	} else if exists {
		s.metrics.RegistrationsTotal.WithLabelValues("bank", "duplicate").Inc()
		return nil, errors.NewDuplicateError("bank", "bank_code", in.BankCode)
	}
	if exists, err := s.banks.ExistsByIfscPrefix(ctx, in.IfscPrefix); err != nil {
		return nil, err
	} else if exists {
		s.metrics.RegistrationsTotal.WithLabelValues("bank", "duplicate").Inc()
		return nil, errors.NewDuplicateError("bank", "ifsc_prefix", in.IfscPrefix)
	}

	var created *bank.Bank
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		id, err := s.idgen.BankID(ctx, in.BankCode)
		if err != nil {
			return err
		}

		b, err := bank.NewBank(id, in.BankName, in.BankCode, in.IfscPrefix)
		if err != nil {
			return err
		}
		b.LogoURL = in.LogoURL
		if in.UpiEnabled != nil {
			b.UpiEnabled = *in.UpiEnabled
		}
		if in.ImpsEnabled != nil {
			b.ImpsEnabled = *in.ImpsEnabled
		}
		if in.NeftEnabled != nil {
			b.NeftEnabled = *in.NeftEnabled
		}
		if in.RtgsEnabled != nil {
			b.RtgsEnabled = *in.RtgsEnabled
		}

		if err := s.banks.Create(ctx, b); err != nil {
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		s.metrics.RegistrationsTotal.WithLabelValues("bank", "error").Inc()
		return nil, err
	}

	s.metrics.RegistrationsTotal.WithLabelValues("bank", "success").Inc()
	s.logger.Info().Str("bank_id", created.ID).Str("bank_code", created.BankCode).Msg("bank registered")
	return created, nil
}

func (s *BankService) GetByID(ctx context.Context, id string) (*bank.Bank, error) {
	return s.banks.GetByID(ctx, id)
}

func (s *BankService) GetByCode(ctx context.Context, bankCode string) (*bank.Bank, error) {
	return s.banks.GetByCode(ctx, bankCode)
}

func (s *BankService) ListActive(ctx context.Context) ([]*bank.Bank, error) {
	return s.banks.ListActive(ctx)
}

func (s *BankService) ListUpiEnabled(ctx context.Context) ([]*bank.Bank, error) {
	return s.banks.ListUpiEnabled(ctx)
}
