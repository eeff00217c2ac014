package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// SequenceRepository allocates values from named counters stored in
// id_sequences. NextValue locks the counter row for the duration of
// the enclosing transaction, so two concurrent allocations of the same
// sequence never observe the same value.
type SequenceRepository struct {
	pool *pgxpool.Pool
}

func NewSequenceRepository(pool *pgxpool.Pool) *SequenceRepository {
	return &SequenceRepository{pool: pool}
}

func (r *SequenceRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

// NextValue returns the current value of the named counter and
// advances it by one. A counter that does not exist yet is created at
// start, so the first allocation returns start itself.
func (r *SequenceRepository) NextValue(ctx context.Context, name string, start int64) (int64, error) {
	db := r.db(ctx)

	_, err := db.Exec(ctx,
		`INSERT INTO id_sequences (sequence_name, current_value)
		 VALUES ($1, $2)
		 ON CONFLICT (sequence_name) DO NOTHING`, name, start)
	if err != nil {
		return 0, fmt.Errorf("seed sequence %s: %w", name, err)
	}

	var current int64
	err = db.QueryRow(ctx,
		`SELECT current_value FROM id_sequences WHERE sequence_name = $1 FOR UPDATE`, name,
	).Scan(&current)
	if err != nil {
		return 0, fmt.Errorf("lock sequence %s: %w", name, err)
	}

	_, err = db.Exec(ctx,
		`UPDATE id_sequences SET current_value = current_value + 1 WHERE sequence_name = $1`, name)
	if err != nil {
		return 0, fmt.Errorf("advance sequence %s: %w", name, err)
	}

	return current, nil
}
