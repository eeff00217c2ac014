package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domainerrors "github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/domain/user"
)

const userColumns = `id, full_name, phone, email, password_hash, aadhaar_number, pan_number,
	device_id, kyc_verified, active, created_at, updated_at, last_login_at`

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) db(ctx context.Context) DBTX {
	return ConnFromCtx(ctx, r.pool)
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	_, err := r.db(ctx).Exec(ctx,
		`INSERT INTO users (id, full_name, phone, email, password_hash, aadhaar_number,
			pan_number, device_id, kyc_verified, active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		u.ID, u.FullName, u.Phone, u.Email, u.PasswordHash, u.AadhaarNumber,
		u.PanNumber, u.DeviceID, u.KycVerified, u.Active, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1 AND active = TRUE`, id)
	return scanUser(row)
}

func (r *UserRepository) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	row := r.db(ctx).QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE phone = $1 AND active = TRUE`, phone)
	return scanUser(row)
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE users
		 SET full_name = $2, email = $3, password_hash = $4, aadhaar_number = $5,
			pan_number = $6, device_id = $7, kyc_verified = $8, updated_at = NOW()
		 WHERE id = $1 AND active = TRUE`,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.AadhaarNumber,
		u.PanNumber, u.DeviceID, u.KycVerified)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE phone = $1 AND active = TRUE)`, phone,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check phone exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db(ctx).QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1 AND active = TRUE)`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check email exists: %w", err)
	}
	return exists, nil
}

func (r *UserRepository) SetKycVerified(ctx context.Context, id string, verified bool) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE users SET kyc_verified = $2, updated_at = NOW() WHERE id = $1 AND active = TRUE`,
		id, verified)
	if err != nil {
		return fmt.Errorf("set kyc verified: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE users SET last_login_at = NOW(), updated_at = NOW() WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) Deactivate(ctx context.Context, id string) error {
	tag, err := r.db(ctx).Exec(ctx,
		`UPDATE users SET active = FALSE, updated_at = NOW() WHERE id = $1 AND active = TRUE`, id)
	if err != nil {
		return fmt.Errorf("deactivate user: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domainerrors.ErrUserNotFound
	}
	return nil
}

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(&u.ID, &u.FullName, &u.Phone, &u.Email, &u.PasswordHash,
		&u.AadhaarNumber, &u.PanNumber, &u.DeviceID, &u.KycVerified, &u.Active,
		&u.CreatedAt, &u.UpdatedAt, &u.LastLoginAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainerrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return u, nil
}
