package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/domain/vpa"
	"github.com/cassiomorais/upi-registry/internal/idgen"
	"github.com/cassiomorais/upi-registry/internal/infrastructure/observability"
)

type PspService struct {
	psps    vpa.PspRepository
	idgen   *idgen.Generator
	tx      TransactionManager
	metrics *observability.Metrics
	logger  zerolog.Logger
}

func NewPspService(
	psps vpa.PspRepository,
	gen *idgen.Generator,
	tx TransactionManager,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *PspService {
	return &PspService{
		psps:    psps,
		idgen:   gen,
		tx:      tx,
		metrics: metrics,
		logger:  logger.With().Str("component", "psp_service").Logger(),
	}
}

// Register creates a PSP. The handle must not belong to another active
// PSP.
func (s *PspService) Register(ctx context.Context, in RegisterPspInput) (*vpa.Psp, error) {
	if exists, err := s.psps.ExistsByHandle(ctx, in.PspHandle); err != nil {
		return nil, err
	} else if exists {
		s.metrics.RegistrationsTotal.WithLabelValues("psp", "duplicate").Inc()
		return nil, errors.NewDuplicateError("psp", "psp_handle", in.PspHandle)
	}

	var created *vpa.Psp
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		id, err := s.idgen.PspID(ctx)
		if err != nil {
			return err
		}

		p, err := vpa.NewPsp(id, in.PspName, in.PspHandle)
		if err != nil {
			return err
		}
		p.BankName = in.BankName
		p.BankIfscPrefix = in.BankIfscPrefix
		p.LogoURL = in.LogoURL

		if err := s.psps.Create(ctx, p); err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		s.metrics.RegistrationsTotal.WithLabelValues("psp", "error").Inc()
		return nil, err
	}

	s.metrics.RegistrationsTotal.WithLabelValues("psp", "success").Inc()
	s.logger.Info().Str("psp_id", created.ID).Str("psp_handle", created.PspHandle).Msg("psp registered")
	return created, nil
}

func (s *PspService) GetByID(ctx context.Context, id string) (*vpa.Psp, error) {
	return s.psps.GetByID(ctx, id)
}

func (s *PspService) GetByHandle(ctx context.Context, handle string) (*vpa.Psp, error) {
	return s.psps.GetByHandle(ctx, handle)
}

func (s *PspService) ListActive(ctx context.Context) ([]*vpa.Psp, error) {
	return s.psps.ListActive(ctx)
}
