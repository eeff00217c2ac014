package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
	domainerrors "github.com/cassiomorais/upi-registry/internal/domain/errors"
)

const accountColumns = `id, user_id, bank_id, account_number, ifsc_code, account_holder_name,
	account_type, balance, is_primary, is_verified, active, created_at, updated_at`

type AccountRepository struct {
	pool *pgxpool.Pool
}

func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

func (r *AccountRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

func (r *AccountRepository) Create(ctx context.Context, a *bank.Account) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO bank_accounts (id, user_id, bank_id, account_number, ifsc_code,
			account_holder_name, account_type, balance, is_primary, is_verified,
			active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		a.ID, a.UserID, a.BankID, a.AccountNumber, a.IfscCode,
		a.AccountHolderName, a.AccountType, centsToNumericString(a.Balance),
		a.IsPrimary, a.IsVerified, a.Active, a.CreatedAt, a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert account: %w", err)
	}
	return nil
}

func (r *AccountRepository) GetByID(ctx context.Context, id string) (*bank.Account, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+` FROM bank_accounts WHERE id = $1 AND active = TRUE`, id)
	return scanAccount(row)
}

func (r *AccountRepository) ListByUser(ctx context.Context, userID string) ([]*bank.Account, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+accountColumns+`
		 FROM bank_accounts WHERE user_id = $1 AND active = TRUE
		 ORDER BY is_primary DESC, created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	var accounts []*bank.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate accounts: %w", err)
	}
	return accounts, nil
}

func (r *AccountRepository) GetPrimaryByUser(ctx context.Context, userID string) (*bank.Account, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+accountColumns+`
		 FROM bank_accounts WHERE user_id = $1 AND is_primary = TRUE AND active = TRUE`, userID)
	return scanAccount(row)
}

func (r *AccountRepository) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM bank_accounts WHERE user_id = $1 AND active = TRUE`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count accounts: %w", err)
	}
	return count, nil
}

func (r *AccountRepository) ExistsByUserAccountIfsc(ctx context.Context, userID, accountNumber, ifscCode string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM bank_accounts
			WHERE user_id = $1 AND account_number = $2 AND ifsc_code = $3 AND active = TRUE
		 )`, userID, accountNumber, ifscCode).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check account exists: %w", err)
	}
	return exists, nil
}

// Credit adds amount paise to the account balance in one statement.
func (r *AccountRepository) Credit(ctx context.Context, id string, amount int64) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE bank_accounts
		 SET balance = balance + $2::NUMERIC / 100, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE`, id, amount)
	if err != nil {
		return fmt.Errorf("credit account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrAccountNotFound
	}
	return nil
}

// Debit subtracts amount paise only when the balance covers it and
// reports whether a row was updated. The balance guard and the
// subtraction run as a single statement, so concurrent debits cannot
// take the balance negative.
func (r *AccountRepository) Debit(ctx context.Context, id string, amount int64) (bool, error) {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE bank_accounts
		 SET balance = balance - $2::NUMERIC / 100, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE AND balance >= $2::NUMERIC / 100`, id, amount)
	if err != nil {
		return false, fmt.Errorf("debit account: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *AccountRepository) ClearPrimary(ctx context.Context, userID string) error {
	_, err := r.db(ctx).Exec(ctx,
		`UPDATE bank_accounts
		 SET is_primary = FALSE, updated_at = NOW()
		 WHERE user_id = $1 AND is_primary = TRUE AND active = TRUE`, userID)
	if err != nil {
		return fmt.Errorf("clear primary account: %w", err)
	}
	return nil
}

func (r *AccountRepository) SetPrimary(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE bank_accounts SET is_primary = TRUE, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("set primary account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) SetVerified(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE bank_accounts SET is_verified = TRUE, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("verify account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrAccountNotFound
	}
	return nil
}

func (r *AccountRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE bank_accounts
		 SET active = FALSE, is_primary = FALSE, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("deactivate account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrAccountNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (*bank.Account, error) {
	a := &bank.Account{}
	var balance string
	err := row.Scan(&a.ID, &a.UserID, &a.BankID, &a.AccountNumber, &a.IfscCode,
		&a.AccountHolderName, &a.AccountType, &balance, &a.IsPrimary, &a.IsVerified,
		&a.Active, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("scan account: %w", err)
	}
	a.Balance, err = numericStringToCents(balance)
	if err != nil {
		return nil, fmt.Errorf("parse account balance: %w", err)
	}
	return a, nil
}
