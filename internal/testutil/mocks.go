package testutil

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"github.com/cassiomorais/upi-registry/internal/domain/bank"
	domainErrors "github.com/cassiomorais/upi-registry/internal/domain/errors"
	"github.com/cassiomorais/upi-registry/internal/domain/user"
	"github.com/cassiomorais/upi-registry/internal/domain/vpa"
)

// In-memory repository mocks. Default behavior stores entities in maps
// and honors active flags and not-found sentinels; individual methods
// can be overridden through the *Func fields.

// --- User Repository Mock ---

type MockUserRepository struct {
	mu    sync.Mutex
	users map[string]*user.User

	CreateFunc         func(ctx context.Context, u *user.User) error
	GetByIDFunc        func(ctx context.Context, id string) (*user.User, error)
	GetByPhoneFunc     func(ctx context.Context, phone string) (*user.User, error)
	UpdateFunc         func(ctx context.Context, u *user.User) error
	ExistsByPhoneFunc  func(ctx context.Context, phone string) (bool, error)
	ExistsByEmailFunc  func(ctx context.Context, email string) (bool, error)
	SetKycVerifiedFunc func(ctx context.Context, id string, verified bool) error
	TouchLastLoginFunc func(ctx context.Context, id string) error
	DeactivateFunc     func(ctx context.Context, id string) error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*user.User)}
}

func (m *MockUserRepository) Create(ctx context.Context, u *user.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || !u.Active {
		return nil, domainErrors.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (m *MockUserRepository) GetByPhone(ctx context.Context, phone string) (*user.User, error) {
	if m.GetByPhoneFunc != nil {
		return m.GetByPhoneFunc(ctx, phone)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Phone == phone && u.Active {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrUserNotFound
}

func (m *MockUserRepository) Update(ctx context.Context, u *user.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, u)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	existing, ok := m.users[u.ID]
	if !ok || !existing.Active {
		return domainErrors.ErrUserNotFound
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *MockUserRepository) ExistsByPhone(ctx context.Context, phone string) (bool, error) {
	if m.ExistsByPhoneFunc != nil {
		return m.ExistsByPhoneFunc(ctx, phone)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Phone == phone && u.Active {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	if m.ExistsByEmailFunc != nil {
		return m.ExistsByEmailFunc(ctx, email)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.users {
		if u.Email == email && u.Active {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockUserRepository) SetKycVerified(ctx context.Context, id string, verified bool) error {
	if m.SetKycVerifiedFunc != nil {
		return m.SetKycVerifiedFunc(ctx, id, verified)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || !u.Active {
		return domainErrors.ErrUserNotFound
	}
	u.KycVerified = verified
	return nil
}

func (m *MockUserRepository) TouchLastLogin(ctx context.Context, id string) error {
	if m.TouchLastLoginFunc != nil {
		return m.TouchLastLoginFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || !u.Active {
		return domainErrors.ErrUserNotFound
	}
	u.TouchLogin()
	return nil
}

func (m *MockUserRepository) Deactivate(ctx context.Context, id string) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok || !u.Active {
		return domainErrors.ErrUserNotFound
	}
	u.Active = false
	return nil
}

// --- Bank Repository Mock ---

type MockBankRepository struct {
	mu    sync.Mutex
	banks map[string]*bank.Bank

	CreateFunc             func(ctx context.Context, b *bank.Bank) error
	GetByIDFunc            func(ctx context.Context, id string) (*bank.Bank, error)
	GetByCodeFunc          func(ctx context.Context, bankCode string) (*bank.Bank, error)
	ListActiveFunc         func(ctx context.Context) ([]*bank.Bank, error)
	ListUpiEnabledFunc     func(ctx context.Context) ([]*bank.Bank, error)
	ExistsByCodeFunc       func(ctx context.Context, bankCode string) (bool, error)
	ExistsByIfscPrefixFunc func(ctx context.Context, ifscPrefix string) (bool, error)
}

func NewMockBankRepository() *MockBankRepository {
	return &MockBankRepository{banks: make(map[string]*bank.Bank)}
}

func (m *MockBankRepository) Create(ctx context.Context, b *bank.Bank) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, b)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *b
	m.banks[b.ID] = &cp
	return nil
}

func (m *MockBankRepository) GetByID(ctx context.Context, id string) (*bank.Bank, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.banks[id]
	if !ok || !b.Active {
		return nil, domainErrors.ErrBankNotFound
	}
	cp := *b
	return &cp, nil
}

func (m *MockBankRepository) GetByCode(ctx context.Context, bankCode string) (*bank.Bank, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, bankCode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.banks {
		if b.BankCode == strings.ToUpper(bankCode) && b.Active {
			cp := *b
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrBankNotFound
}

func (m *MockBankRepository) ListActive(ctx context.Context) ([]*bank.Bank, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*bank.Bank
	for _, b := range m.banks {
		if b.Active {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockBankRepository) ListUpiEnabled(ctx context.Context) ([]*bank.Bank, error) {
	if m.ListUpiEnabledFunc != nil {
		return m.ListUpiEnabledFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*bank.Bank
	for _, b := range m.banks {
		if b.Active && b.UpiEnabled {
			cp := *b
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockBankRepository) ExistsByCode(ctx context.Context, bankCode string) (bool, error) {
	if m.ExistsByCodeFunc != nil {
		return m.ExistsByCodeFunc(ctx, bankCode)
	}
	_, err := m.GetByCode(ctx, bankCode)
	if err != nil {
		if errors.Is(err, domainErrors.ErrBankNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MockBankRepository) ExistsByIfscPrefix(ctx context.Context, ifscPrefix string) (bool, error) {
	if m.ExistsByIfscPrefixFunc != nil {
		return m.ExistsByIfscPrefixFunc(ctx, ifscPrefix)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.banks {
		if b.IfscPrefix == strings.ToUpper(ifscPrefix) && b.Active {
			return true, nil
		}
	}
	return false, nil
}

// --- Account Repository Mock ---

type MockAccountRepository struct {
	mu       sync.Mutex
	accounts map[string]*bank.Account

	CreateFunc                  func(ctx context.Context, a *bank.Account) error
	GetByIDFunc                 func(ctx context.Context, id string) (*bank.Account, error)
	ListByUserFunc              func(ctx context.Context, userID string) ([]*bank.Account, error)
	GetPrimaryByUserFunc        func(ctx context.Context, userID string) (*bank.Account, error)
	CountActiveByUserFunc       func(ctx context.Context, userID string) (int64, error)
	ExistsByUserAccountIfscFunc func(ctx context.Context, userID, accountNumber, ifscCode string) (bool, error)
	CreditFunc                  func(ctx context.Context, id string, amount int64) error
	DebitFunc                   func(ctx context.Context, id string, amount int64) (bool, error)
	ClearPrimaryFunc            func(ctx context.Context, userID string) error
	SetPrimaryFunc              func(ctx context.Context, id string) error
	SetVerifiedFunc             func(ctx context.Context, id string) error
	DeactivateFunc              func(ctx context.Context, id string) error
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{accounts: make(map[string]*bank.Account)}
}

func (m *MockAccountRepository) Create(ctx context.Context, a *bank.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, a)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.accounts[a.ID] = &cp
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*bank.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || !a.Active {
		return nil, domainErrors.ErrAccountNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MockAccountRepository) ListByUser(ctx context.Context, userID string) ([]*bank.Account, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*bank.Account
	for _, a := range m.accounts {
		if a.UserID == userID && a.Active {
			cp := *a
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockAccountRepository) GetPrimaryByUser(ctx context.Context, userID string) (*bank.Account, error) {
	if m.GetPrimaryByUserFunc != nil {
		return m.GetPrimaryByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.UserID == userID && a.Active && a.IsPrimary {
			cp := *a
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrAccountNotFound
}

func (m *MockAccountRepository) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	if m.CountActiveByUserFunc != nil {
		return m.CountActiveByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, a := range m.accounts {
		if a.UserID == userID && a.Active {
			count++
		}
	}
	return count, nil
}

func (m *MockAccountRepository) ExistsByUserAccountIfsc(ctx context.Context, userID, accountNumber, ifscCode string) (bool, error) {
	if m.ExistsByUserAccountIfscFunc != nil {
		return m.ExistsByUserAccountIfscFunc(ctx, userID, accountNumber, ifscCode)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.UserID == userID && a.AccountNumber == accountNumber && a.IfscCode == ifscCode && a.Active {
			return true, nil
		}
	}
	return false, nil
}

func (m *MockAccountRepository) Credit(ctx context.Context, id string, amount int64) error {
	if m.CreditFunc != nil {
		return m.CreditFunc(ctx, id, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || !a.Active {
		return domainErrors.ErrAccountNotFound
	}
	a.Balance += amount
	return nil
}

func (m *MockAccountRepository) Debit(ctx context.Context, id string, amount int64) (bool, error) {
	if m.DebitFunc != nil {
		return m.DebitFunc(ctx, id, amount)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || !a.Active {
		return false, domainErrors.ErrAccountNotFound
	}
	if a.Balance < amount {
		return false, nil
	}
	a.Balance -= amount
	return true, nil
}

func (m *MockAccountRepository) ClearPrimary(ctx context.Context, userID string) error {
	if m.ClearPrimaryFunc != nil {
		return m.ClearPrimaryFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.accounts {
		if a.UserID == userID && a.Active {
			a.IsPrimary = false
		}
	}
	return nil
}

func (m *MockAccountRepository) SetPrimary(ctx context.Context, id string) error {
	if m.SetPrimaryFunc != nil {
		return m.SetPrimaryFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || !a.Active {
		return domainErrors.ErrAccountNotFound
	}
	a.IsPrimary = true
	return nil
}

func (m *MockAccountRepository) SetVerified(ctx context.Context, id string) error {
	if m.SetVerifiedFunc != nil {
		return m.SetVerifiedFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || !a.Active {
		return domainErrors.ErrAccountNotFound
	}
	a.IsVerified = true
	return nil
}

func (m *MockAccountRepository) Deactivate(ctx context.Context, id string) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.accounts[id]
	if !ok || !a.Active {
		return domainErrors.ErrAccountNotFound
	}
	a.Active = false
	a.IsPrimary = false
	return nil
}

// --- PSP Repository Mock ---

type MockPspRepository struct {
	mu   sync.Mutex
	psps map[string]*vpa.Psp

	CreateFunc         func(ctx context.Context, p *vpa.Psp) error
	GetByIDFunc        func(ctx context.Context, id string) (*vpa.Psp, error)
	GetByHandleFunc    func(ctx context.Context, handle string) (*vpa.Psp, error)
	ListActiveFunc     func(ctx context.Context) ([]*vpa.Psp, error)
	ExistsByHandleFunc func(ctx context.Context, handle string) (bool, error)
}

func NewMockPspRepository() *MockPspRepository {
	return &MockPspRepository{psps: make(map[string]*vpa.Psp)}
}

func (m *MockPspRepository) Create(ctx context.Context, p *vpa.Psp) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, p)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.psps[p.ID] = &cp
	return nil
}

func (m *MockPspRepository) GetByID(ctx context.Context, id string) (*vpa.Psp, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.psps[id]
	if !ok || !p.Active {
		return nil, domainErrors.ErrPspNotFound
	}
	cp := *p
	return &cp, nil
}

func (m *MockPspRepository) GetByHandle(ctx context.Context, handle string) (*vpa.Psp, error) {
	if m.GetByHandleFunc != nil {
		return m.GetByHandleFunc(ctx, handle)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.psps {
		if p.PspHandle == strings.ToLower(handle) && p.Active {
			cp := *p
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrPspNotFound
}

func (m *MockPspRepository) ListActive(ctx context.Context) ([]*vpa.Psp, error) {
	if m.ListActiveFunc != nil {
		return m.ListActiveFunc(ctx)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*vpa.Psp
	for _, p := range m.psps {
		if p.Active {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockPspRepository) ExistsByHandle(ctx context.Context, handle string) (bool, error) {
	if m.ExistsByHandleFunc != nil {
		return m.ExistsByHandleFunc(ctx, handle)
	}
	_, err := m.GetByHandle(ctx, handle)
	if err != nil {
		if errors.Is(err, domainErrors.ErrPspNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// --- VPA Repository Mock ---

type MockVpaRepository struct {
	mu   sync.Mutex
	vpas map[string]*vpa.Vpa

	CreateFunc              func(ctx context.Context, v *vpa.Vpa) error
	GetByIDFunc             func(ctx context.Context, id string) (*vpa.Vpa, error)
	GetByAddressFunc        func(ctx context.Context, address string) (*vpa.Vpa, error)
	ListByUserFunc          func(ctx context.Context, userID string) ([]*vpa.Vpa, error)
	GetPrimaryByUserFunc    func(ctx context.Context, userID string) (*vpa.Vpa, error)
	CountActiveByUserFunc   func(ctx context.Context, userID string) (int64, error)
	ExistsByAddressFunc     func(ctx context.Context, address string) (bool, error)
	ClearPrimaryFunc        func(ctx context.Context, userID string) error
	SetPrimaryFunc          func(ctx context.Context, id string) error
	UpdateLinkedAccountFunc func(ctx context.Context, id, accountID string) error
	SetVerifiedFunc         func(ctx context.Context, id string) error
	DeactivateFunc          func(ctx context.Context, id string) error
}

func NewMockVpaRepository() *MockVpaRepository {
	return &MockVpaRepository{vpas: make(map[string]*vpa.Vpa)}
}

func (m *MockVpaRepository) Create(ctx context.Context, v *vpa.Vpa) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, v)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *v
	m.vpas[v.ID] = &cp
	return nil
}

func (m *MockVpaRepository) GetByID(ctx context.Context, id string) (*vpa.Vpa, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vpas[id]
	if !ok || !v.Active {
		return nil, domainErrors.ErrVpaNotFound
	}
	cp := *v
	return &cp, nil
}

func (m *MockVpaRepository) GetByAddress(ctx context.Context, address string) (*vpa.Vpa, error) {
	if m.GetByAddressFunc != nil {
		return m.GetByAddressFunc(ctx, address)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vpas {
		if v.VpaAddress == strings.ToLower(address) && v.Active {
			cp := *v
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrVpaNotFound
}

func (m *MockVpaRepository) ListByUser(ctx context.Context, userID string) ([]*vpa.Vpa, error) {
	if m.ListByUserFunc != nil {
		return m.ListByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*vpa.Vpa
	for _, v := range m.vpas {
		if v.UserID == userID && v.Active {
			cp := *v
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (m *MockVpaRepository) GetPrimaryByUser(ctx context.Context, userID string) (*vpa.Vpa, error) {
	if m.GetPrimaryByUserFunc != nil {
		return m.GetPrimaryByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vpas {
		if v.UserID == userID && v.Active && v.IsPrimary {
			cp := *v
			return &cp, nil
		}
	}
	return nil, domainErrors.ErrVpaNotFound
}

func (m *MockVpaRepository) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	if m.CountActiveByUserFunc != nil {
		return m.CountActiveByUserFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, v := range m.vpas {
		if v.UserID == userID && v.Active {
			count++
		}
	}
	return count, nil
}

func (m *MockVpaRepository) ExistsByAddress(ctx context.Context, address string) (bool, error) {
	if m.ExistsByAddressFunc != nil {
		return m.ExistsByAddressFunc(ctx, address)
	}
	_, err := m.GetByAddress(ctx, address)
	if err != nil {
		if errors.Is(err, domainErrors.ErrVpaNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (m *MockVpaRepository) ClearPrimary(ctx context.Context, userID string) error {
	if m.ClearPrimaryFunc != nil {
		return m.ClearPrimaryFunc(ctx, userID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.vpas {
		if v.UserID == userID && v.Active {
			v.IsPrimary = false
		}
	}
	return nil
}

func (m *MockVpaRepository) SetPrimary(ctx context.Context, id string) error {
	if m.SetPrimaryFunc != nil {
		return m.SetPrimaryFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vpas[id]
	if !ok || !v.Active {
		return domainErrors.ErrVpaNotFound
	}
	v.IsPrimary = true
	return nil
}

func (m *MockVpaRepository) UpdateLinkedAccount(ctx context.Context, id, accountID string) error {
	if m.UpdateLinkedAccountFunc != nil {
		return m.UpdateLinkedAccountFunc(ctx, id, accountID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vpas[id]
	if !ok || !v.Active {
		return domainErrors.ErrVpaNotFound
	}
	v.LinkedAccountID = accountID
	return nil
}

func (m *MockVpaRepository) SetVerified(ctx context.Context, id string) error {
	if m.SetVerifiedFunc != nil {
		return m.SetVerifiedFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vpas[id]
	if !ok || !v.Active {
		return domainErrors.ErrVpaNotFound
	}
	v.IsVerified = true
	return nil
}

func (m *MockVpaRepository) Deactivate(ctx context.Context, id string) error {
	if m.DeactivateFunc != nil {
		return m.DeactivateFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.vpas[id]
	if !ok || !v.Active {
		return domainErrors.ErrVpaNotFound
	}
	v.Active = false
	v.IsPrimary = false
	return nil
}

// --- Sequence Allocator Mock ---

type MockSequenceAllocator struct {
	mu       sync.Mutex
	counters map[string]int64

	NextValueFunc func(ctx context.Context, name string, start int64) (int64, error)
}

func NewMockSequenceAllocator() *MockSequenceAllocator {
	return &MockSequenceAllocator{counters: make(map[string]int64)}
}

func (m *MockSequenceAllocator) NextValue(ctx context.Context, name string, start int64) (int64, error) {
	if m.NextValueFunc != nil {
		return m.NextValueFunc(ctx, name, start)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.counters[name]
	if !ok {
		v = start
	}
	m.counters[name] = v + 1
	return v, nil
}

// --- Transaction Manager Mock ---

// MockTxManager runs fn directly; the mocks have no transactional state.
type MockTxManager struct {
	WithTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *MockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.WithTransactionFunc != nil {
		return m.WithTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

// --- Locker Mock ---

// MockLocker serializes sections per key with real mutexes, so
// concurrency tests exercise the same exclusion the redis lock gives.
type MockLocker struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewMockLocker() *MockLocker {
	return &MockLocker{locks: make(map[string]*sync.Mutex)}
}

func (m *MockLocker) WithLock(ctx context.Context, key string, fn func(ctx context.Context) error) error {
	m.mu.Lock()
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	m.mu.Unlock()

	l.Lock()
	defer l.Unlock()
	return fn(ctx)
}

// --- Cache Mock ---

var errCacheMiss = errors.New("cache miss")

type MockCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{entries: make(map[string][]byte)}
}

func (m *MockCache) GetJSON(ctx context.Context, key string, dst any) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.entries[key]
	if !ok {
		return errCacheMiss
	}
	return json.Unmarshal(data, dst)
}

func (m *MockCache) SetJSON(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = data
	return nil
}

func (m *MockCache) Delete(ctx context.Context, keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.entries, k)
	}
	return nil
}

// Len reports the number of cached entries.
func (m *MockCache) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
