package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainerrors "github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/domain/vpa"
)

const vpaColumns = `id, user_id, vpa_handle, psp_id, vpa_address, linked_account_id,
	is_primary, is_verified, active, created_at, updated_at`

type VpaRepository struct {
	pool *pgxpool.Pool
}

func NewVpaRepository(pool *pgxpool.Pool) *VpaRepository {
	return &VpaRepository{pool: pool}
}

func (r *VpaRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

func (r *VpaRepository) Create(ctx context.Context, v *vpa.Vpa) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO vpas (id, user_id, vpa_handle, psp_id, vpa_address, linked_account_id,
			is_primary, is_verified, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		v.ID, v.UserID, v.VpaHandle, v.PspID, v.VpaAddress, v.LinkedAccountID,
		v.IsPrimary, v.IsVerified, v.Active, v.CreatedAt, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert vpa: %w", err)
	}
	return nil
}

func (r *VpaRepository) GetByID(ctx context.Context, id string) (*vpa.Vpa, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+vpaColumns+` FROM vpas WHERE id = $1 AND active = TRUE`, id)
	return scanVpa(row)
}

func (r *VpaRepository) GetByAddress(ctx context.Context, address string) (*vpa.Vpa, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+vpaColumns+` FROM vpas WHERE vpa_address = $1 AND active = TRUE`,
		strings.ToLower(address))
	return scanVpa(row)
}

func (r *VpaRepository) ListByUser(ctx context.Context, userID string) ([]*vpa.Vpa, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+vpaColumns+`
		 FROM vpas WHERE user_id = $1 AND active = TRUE
		 ORDER BY is_primary DESC, created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list vpas: %w", err)
	}
	defer rows.Close()

	var vpas []*vpa.Vpa
	for rows.Next() {
		v, err := scanVpa(rows)
		if err != nil {
			return nil, err
		}
		vpas = append(vpas, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate vpas: %w", err)
	}
	return vpas, nil
}

func (r *VpaRepository) GetPrimaryByUser(ctx context.Context, userID string) (*vpa.Vpa, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+vpaColumns+`
		 FROM vpas WHERE user_id = $1 AND is_primary = TRUE AND active = TRUE`, userID)
	return scanVpa(row)
}

func (r *VpaRepository) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db(ctx).QueryRow(ctx,
		`SELECT COUNT(*) FROM vpas WHERE user_id = $1 AND active = TRUE`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count vpas: %w", err)
	}
	return count, nil
}

func (r *VpaRepository) ExistsByAddress(ctx context.Context, address string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM vpas WHERE vpa_address = $1 AND active = TRUE)`,
		strings.ToLower(address)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check vpa address exists: %w", err)
	}
	return exists, nil
}

func (r *VpaRepository) ClearPrimary(ctx context.Context, userID string) error {
	_, err := r.db(ctx).Exec(ctx,
		`UPDATE vpas SET is_primary = FALSE, updated_at = NOW()
		 WHERE user_id = $1 AND is_primary = TRUE AND active = TRUE`, userID)
	if err != nil {
		return fmt.Errorf("clear primary vpa: %w", err)
	}
	return nil
}

func (r *VpaRepository) SetPrimary(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE vpas SET is_primary = TRUE, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("set primary vpa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrVpaNotFound
	}
	return nil
}

func (r *VpaRepository) UpdateLinkedAccount(ctx context.Context, id, accountID string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE vpas SET linked_account_id = $2, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE`, id, accountID)
	if err != nil {
		return fmt.Errorf("update vpa linked account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrVpaNotFound
	}
	return nil
}

func (r *VpaRepository) SetVerified(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE vpas SET is_verified = TRUE, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("verify vpa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrVpaNotFound
	}
	return nil
}

func (r *VpaRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE vpas SET active = FALSE, is_primary = FALSE, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("deactivate vpa: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrVpaNotFound
	}
	return nil
}

func scanVpa(row pgx.Row) (*vpa.Vpa, error) {
	v := &vpa.Vpa{}
	err := row.Scan(&v.ID, &v.UserID, &v.VpaHandle, &v.PspID, &v.VpaAddress,
		&v.LinkedAccountID, &v.IsPrimary, &v.IsVerified, &v.Active,
		&v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.ErrVpaNotFound
		}
		return nil, fmt.Errorf("scan vpa: %w", err)
	}
	return v, nil
}
