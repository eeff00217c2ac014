package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
	domainerrors "github.com/cassiomorais/upi-registry/internal/domain/errors"
)

const bankColumns = `id, bank_name, bank_code, ifsc_prefix, logo_url, upi_enabled,
	imps_enabled, neft_enabled, rtgs_enabled, active, created_at, updated_at`

type BankRepository struct {
	pool *pgxpool.Pool
}

func NewBankRepository(pool *pgxpool.Pool) *BankRepository {
	return &BankRepository{pool: pool}
}

func (r *BankRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

func (r *BankRepository) Create(ctx context.Context, b *bank.Bank) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO banks (id, bank_name, bank_code, ifsc_prefix, logo_url, upi_enabled,
			imps_enabled, neft_enabled, rtgs_enabled, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.BankName, b.BankCode, b.IfscPrefix, b.LogoURL, b.UpiEnabled,
		b.ImpsEnabled, b.NeftEnabled, b.RtgsEnabled, b.Active, b.CreatedAt, b.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert bank: %w", err)
	}
	return nil
}

func (r *BankRepository) GetByID(ctx context.Context, id string) (*bank.Bank, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+bankColumns+` FROM banks WHERE id = $1 AND active = TRUE`, id)
	return scanBank(row)
}

func (r *BankRepository) GetByCode(ctx context.Context, bankCode string) (*bank.Bank, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+bankColumns+` FROM banks WHERE bank_code = $1 AND active = TRUE`,
		strings.ToUpper(bankCode))
	return scanBank(row)
}

func (r *BankRepository) ListActive(ctx context.Context) ([]*bank.Bank, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+bankColumns+` FROM banks WHERE active = TRUE ORDER BY bank_name`)
	if err != nil {
		return nil, fmt.Errorf("list banks: %w", err)
	}
	defer rows.Close()
	return collectBanks(rows)
}

func (r *BankRepository) ListUpiEnabled(ctx context.Context) ([]*bank.Bank, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+bankColumns+` FROM banks WHERE active = TRUE AND upi_enabled = TRUE ORDER BY bank_name`)
	if err != nil {
		return nil, fmt.Errorf("list upi enabled banks: %w", err)
	}
	defer rows.Close()
	return collectBanks(rows)
}

func (r *BankRepository) ExistsByCode(ctx context.Context, bankCode string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM banks WHERE bank_code = $1 AND active = TRUE)`,
		strings.ToUpper(bankCode)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check bank code exists: %w", err)
	}
	return exists, nil
}

func (r *BankRepository) ExistsByIfscPrefix(ctx context.Context, ifscPrefix string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM banks WHERE ifsc_prefix = $1 AND active = TRUE)`,
		strings.ToUpper(ifscPrefix)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check ifsc prefix exists: %w", err)
	}
	return exists, nil
}

func scanBank(row pgx.Row) (*bank.Bank, error) {
	b := &bank.Bank{}
	err := row.Scan(&b.ID, &b.BankName, &b.BankCode, &b.IfscPrefix, &b.LogoURL,
		&b.UpiEnabled, &b.ImpsEnabled, &b.NeftEnabled, &b.RtgsEnabled, &b.Active,
		&b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.ErrBankNotFound
		}
		return nil, fmt.Errorf("scan bank: %w", err)
	}
	return b, nil
}

func collectBanks(rows pgx.Rows) ([]*bank.Bank, error) {
	var banks []*bank.Bank
	for rows.Next() {
		b, err := scanBank(rows)
		if err != nil {
			return nil, err
		}
		banks = append(banks, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate banks: %w", err)
	}
	return banks, nil
}
