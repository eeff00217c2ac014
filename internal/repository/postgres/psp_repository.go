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

const pspColumns = `id, psp_name, psp_handle, bank_name, bank_ifsc_prefix, logo_url,
	active, created_at, updated_at`

type PspRepository struct {
	pool *pgxpool.Pool
}

func NewPspRepository(pool *pgxpool.Pool) *PspRepository {
	return &PspRepository{pool: pool}
}

func (r *PspRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

func (r *PspRepository) Create(ctx context.Context, p *vpa.Psp) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO psps (id, psp_name, psp_handle, bank_name, bank_ifsc_prefix,
			logo_url, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.PspName, p.PspHandle, p.BankName, p.BankIfscPrefix,
		p.LogoURL, p.Active, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert psp: %w", err)
	}
	return nil
}

func (r *PspRepository) GetByID(ctx context.Context, id string) (*vpa.Psp, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+pspColumns+` FROM psps WHERE id = $1 AND active = TRUE`, id)
	return scanPsp(row)
}

func (r *PspRepository) GetByHandle(ctx context.Context, handle string) (*vpa.Psp, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+pspColumns+` FROM psps WHERE psp_handle = $1 AND active = TRUE`,
		strings.ToLower(handle))
	return scanPsp(row)
}

func (r *PspRepository) ListActive(ctx context.Context) ([]*vpa.Psp, error) {
	rows, err := r.db(ctx).Query(ctx,
		`SELECT `+pspColumns+` FROM psps WHERE active = TRUE ORDER BY psp_name`)
	if err != nil {
		return nil, fmt.Errorf("list psps: %w", err)
	}
	defer rows.Close()

	var psps []*vpa.Psp
	for rows.Next() {
		p, err := scanPsp(rows)
		if err != nil {
			return nil, err
		}
		psps = append(psps, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate psps: %w", err)
	}
	return psps, nil
}

func (r *PspRepository) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM psps WHERE psp_handle = $1 AND active = TRUE)`,
		strings.ToLower(handle)).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check psp handle exists: %w", err)
	}
	return exists, nil
}

func scanPsp(row pgx.Row) (*vpa.Psp, error) {
	p := &vpa.Psp{}
	err := row.Scan(&p.ID, &p.PspName, &p.PspHandle, &p.BankName, &p.BankIfscPrefix,
		&p.LogoURL, &p.Active, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.ErrPspNotFound
		}
		return nil, fmt.Errorf("scan psp: %w", err)
	}
	return p, nil
}
