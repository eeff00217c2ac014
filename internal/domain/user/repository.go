package user

import "context"

// Repository is the persistence port for users. Lookups exclude soft-deleted
// rows unless stated otherwise.
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByPhone(ctx context.Context, phone string) (*User, error)
	Update(ctx context.Context, u *User) error
	ExistsByPhone(ctx context.Context, phone string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	SetKycVerified(ctx context.Context, id string, verified bool) error
	TouchLastLogin(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}
