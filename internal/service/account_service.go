package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
	"github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/domain/user"
	"github.com/cassiomorais/upi-registry/internal/idgen"
	"github.com/cassiomorais/upi-registry/internal/infrastructure/observability"
)

type AccountService struct {
	accounts    bank.AccountRepository
	banks       bank.Repository
	users       user.Repository
	tx          TransactionManager
	locker      Locker
	maxAccounts int
	metrics     *observability.Metrics
	logger      zerolog.Logger
}

func NewAccountService(
	accounts bank.AccountRepository,
	banks bank.Repository,
	users user.Repository,
	tx TransactionManager,
	locker Locker,
	maxAccounts int,
	metrics *observability.Metrics,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		accounts:    accounts,
		banks:       banks,
		users:       users,
		tx:          tx,
		locker:      locker,
		maxAccounts: maxAccounts,
		metrics:     metrics,
		logger:      logger.With().Str("component", "account_service").Logger(),
	}
}

// Link attaches a bank account to a user. The first active account for
// a user becomes primary regardless of the requested flag; a requested
// primary demotes the user's existing primary account.
func (s *AccountService) Link(ctx context.Context, in LinkAccountInput) (*bank.Account, error) {
	if _, err := s.users.GetByID(ctx, in.UserID); err != nil {
		return nil, err
	}

	exists, err := s.accounts.ExistsByUserAccountIfsc(ctx, in.UserID, in.AccountNumber, in.IfscCode)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, errors.NewDuplicateError("bank account", "account_number", in.AccountNumber)
	}

	b, err := s.banks.GetByCode(ctx, in.BankCode)
	if err != nil {
		return nil, err
	}
	if !b.MatchesIfsc(in.IfscCode) {
		return nil, errors.ErrIfscMismatch
	}

	var created *bank.Account
	err = s.locker.WithLock(ctx, "primary-account:"+in.UserID, func(ctx context.Context) error {
		count, err := s.accounts.CountActiveByUser(ctx, in.UserID)
		if err != nil {
			return err
		}
		if s.maxAccounts > 0 && count >= int64(s.maxAccounts) {
			return errors.ErrAccountLimitReached
		}
		isPrimary := in.IsPrimary || count == 0

		return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
			a, err := bank.NewAccount(
				idgen.AccountID(in.UserID, b.BankCode, in.AccountType),
				in.UserID, b.ID, in.AccountNumber, in.IfscCode,
				in.AccountHolderName, in.AccountType,
			)
			if err != nil {
				return err
			}
			a.IsPrimary = isPrimary

			if isPrimary {
				if err := s.accounts.ClearPrimary(ctx, in.UserID); err != nil {
					return err
				}
			}
			if err := s.accounts.Create(ctx, a); err != nil {
				return err
			}
			created = a
			return nil
		})
	})
	if err != nil {
		return nil, err
	}

	s.metrics.AccountsLinked.WithLabelValues(string(in.AccountType)).Inc()
	s.logger.Info().
		Str("account_id", created.ID).
		Str("user_id", in.UserID).
		Bool("primary", created.IsPrimary).
		Msg("bank account linked")
	return created, nil
}

func (s *AccountService) GetByID(ctx context.Context, id string) (*bank.Account, error) {
	return s.accounts.GetByID(ctx, id)
}

func (s *AccountService) ListByUser(ctx context.Context, userID string) ([]*bank.Account, error) {
	return s.accounts.ListByUser(ctx, userID)
}

func (s *AccountService) GetPrimary(ctx context.Context, userID string) (*bank.Account, error) {
	return s.accounts.GetPrimaryByUser(ctx, userID)
}

// SetPrimary promotes the account to the user's single primary
// account. The account must exist, be active and belong to the user.
func (s *AccountService) SetPrimary(ctx context.Context, userID, accountID string) error {
	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return err
	}
	if a.UserID != userID {
		return errors.ErrOwnershipMismatch
	}

	err = s.locker.WithLock(ctx, "primary-account:"+userID, func(ctx context.Context) error {
		return s.tx.WithTransaction(ctx, func(ctx context.Context) error {
			if err := s.accounts.ClearPrimary(ctx, userID); err != nil {
				return err
			}
			return s.accounts.SetPrimary(ctx, accountID)
		})
	})
	if err != nil {
		return err
	}

	s.logger.Info().Str("account_id", accountID).Str("user_id", userID).Msg("primary account changed")
	return nil
}

// Credit adds amount paise to the account balance.
func (s *AccountService) Credit(ctx context.Context, accountID string, amount int64) (*bank.Account, error) {
	if amount <= 0 {
		return nil, errors.ErrInvalidAmount
	}

	if err := s.accounts.Credit(ctx, accountID, amount); err != nil {
		s.metrics.BalanceOperations.WithLabelValues("credit", "error").Inc()
		return nil, err
	}

	s.metrics.BalanceOperations.WithLabelValues("credit", "success").Inc()
	return s.accounts.GetByID(ctx, accountID)
}

// Debit subtracts amount paise if the balance covers it. The reported
// available amount comes from a snapshot read before the conditional
// update and can trail a concurrent mutation.
func (s *AccountService) Debit(ctx context.Context, accountID string, amount int64) (*bank.Account, error) {
	if amount <= 0 {
		return nil, errors.ErrInvalidAmount
	}

	a, err := s.accounts.GetByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	ok, err := s.accounts.Debit(ctx, accountID, amount)
	if err != nil {
		s.metrics.BalanceOperations.WithLabelValues("debit", "error").Inc()
		return nil, err
	}
	if !ok {
		s.metrics.BalanceOperations.WithLabelValues("debit", "insufficient").Inc()
		s.metrics.InsufficientFunds.Inc()
		return nil, &errors.InsufficientBalanceError{
			AccountID: accountID,
			Requested: amount,
			Available: a.Balance,
		}
	}

	s.metrics.BalanceOperations.WithLabelValues("debit", "success").Inc()
	return s.accounts.GetByID(ctx, accountID)
}

func (s *AccountService) MarkVerified(ctx context.Context, accountID string) error {
	return s.accounts.SetVerified(ctx, accountID)
}

func (s *AccountService) Delete(ctx context.Context, accountID string) error {
	if err := s.accounts.Deactivate(ctx, accountID); err != nil {
		return err
	}
	s.logger.Info().Str("account_id", accountID).Msg("bank account unlinked")
	return nil
}
