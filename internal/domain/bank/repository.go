package bank

import "context"

// Repository is the persistence port for banks.
type Repository interface {
	Create(ctx context.Context, b *Bank) error
	GetByID(ctx context.Context, id string) (*Bank, error)
	GetByCode(ctx context.Context, bankCode string) (*Bank, error)
	ListActive(ctx context.Context) ([]*Bank, error)
	ListUpiEnabled(ctx context.Context) ([]*Bank, error)
	ExistsByCode(ctx context.Context, bankCode string) (bool, error)
	ExistsByIfscPrefix(ctx context.Context, ifscPrefix string) (bool, error)
}

// AccountRepository is the persistence port for linked bank accounts.
// Credit, Debit, ClearPrimary and SetPrimary are single atomic statements;
// Debit applies the subtraction only when the balance covers the amount and
// reports whether a row was updated.
type AccountRepository interface {
	Create(ctx context.Context, a *Account) error
	GetByID(ctx context.Context, id string) (*Account, error)
	ListByUser(ctx context.Context, userID string) ([]*Account, error)
	GetPrimaryByUser(ctx context.Context, userID string) (*Account, error)
	CountActiveByUser(ctx context.Context, userID string) (int64, error)
	ExistsByUserAccountIfsc(ctx context.Context, userID, accountNumber, ifscCode string) (bool, error)
	Credit(ctx context.Context, id string, amount int64) error
	Debit(ctx context.Context, id string, amount int64) (bool, error)
	ClearPrimary(ctx context.Context, userID string) error
	SetPrimary(ctx context.Context, id string) error
	SetVerified(ctx context.Context, id string) error
	Deactivate(ctx context.Context, id string) error
}
