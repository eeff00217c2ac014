package vpa

import "context"

// PspRepository is the persistence port for payment service providers.
type PspRepository interface {
	Create(ctx context.Context, p *Psp) error
	GetByID(ctx context.Context, id string) (*Psp, error)
	GetByHandle(ctx context.Context, handle string) (*Psp, error)
	ListActive(ctx context.Context) ([]*Psp, error)
	ExistsByHandle(ctx context.Context, handle string) (bool, error)
}

// Repository is the persistence port for virtual payment addresses.
type Repository interface {
	Create(ctx context.Context, v *Vpa) error
	GetByID(ctx context.Context, id string) (*Vpa, error)
	GetByAddress(ctx context.Context, address string) (*Vpa, error)
	ListByUser(ctx context.Context, userID string) ([]*Vpa, error)
	GetPrimaryByUser(ctx context.Context, userID string) (*Vpa, error)
	CountActiveByUser(ctx context.Context, userID string) (int64, error)
	ExistsByAddress(ctx context.Context, address string) (bool, error)
	ClearPrimary(ctx context.Context, userID string) error
	SetPrimary(ctx context.Context, id string) error
	UpdateLinkedAccount(ctx context.Context, id, accountID string) error
	SetVerified(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}
