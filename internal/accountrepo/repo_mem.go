// Package accountrepo manages repository layer of accounts.
package accountrepo

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/go-petr/mini-ledger/internal/domain"
)

// RepoMem is the in-memory account store. It is the sole owner of the
// account set and the only place balances are mutated.
//
// A single RWMutex guards the whole collection: mutating operations hold
// the write lock for their full duration, so a transfer is never observable
// half-applied.
type RepoMem struct {
	mu       sync.RWMutex
	accounts []domain.Account
	byID     map[int32]int    // account id -> index in accounts
	byHandle map[string]int32 // lower-cased handle -> account id
	nextID   int32
}

// New returns an empty account store. IDs start at 1.
func New() *RepoMem {
	return &RepoMem{
		byID:     make(map[int32]int),
		byHandle: make(map[string]int32),
		nextID:   1,
	}
}

// NewSeeded returns a store preloaded with the given accounts in order.
// The id counter continues from the highest seeded id.
func NewSeeded(accounts []domain.Account) (*RepoMem, error) {
	r := New()

	for _, a := range accounts {
		if _, ok := r.byID[a.ID]; ok {
			return nil, fmt.Errorf("duplicate account id %d", a.ID)
		}

		handle := strings.ToLower(a.Handle)
		if _, ok := r.byHandle[handle]; ok {
			return nil, fmt.Errorf("duplicate account handle %q", a.Handle)
		}

		r.accounts = append(r.accounts, a)
		r.byID[a.ID] = len(r.accounts) - 1
		r.byHandle[handle] = a.ID

		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
	}

	return r, nil
}

// Create appends a new account with the next sequential id and returns a copy.
// The handle must be unique under case-insensitive comparison.
func (r *RepoMem) Create(ctx context.Context, displayName, handle string, balance int64) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(handle)
	if _, ok := r.byHandle[key]; ok {
		return domain.Account{}, domain.ErrHandleAlreadyExists
	}

	account := domain.Account{
		ID:          r.nextID,
		DisplayName: displayName,
		Handle:      handle,
		Balance:     balance,
	}

	r.accounts = append(r.accounts, account)
	r.byID[account.ID] = len(r.accounts) - 1
	r.byHandle[key] = account.ID
	r.nextID++

	return account, nil
}

// Get returns a copy of the account with the given id.
func (r *RepoMem) Get(ctx context.Context, id int32) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	idx, ok := r.byID[id]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return r.accounts[idx], nil
}

// GetByHandle returns a copy of the account with the given handle,
// matched case-insensitively.
func (r *RepoMem) GetByHandle(ctx context.Context, handle string) (domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byHandle[strings.ToLower(handle)]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return r.accounts[r.byID[id]], nil
}

// List returns a copy of all accounts in insertion order.
func (r *RepoMem) List(ctx context.Context) ([]domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	accounts := make([]domain.Account, len(r.accounts))
	copy(accounts, r.accounts)

	return accounts, nil
}

// Transfer atomically moves amount from one account to another and returns
// copies of both updated accounts.
//
// All preconditions are checked under the write lock before either balance
// is touched, so a failed call leaves every account exactly as it was.
// The check order is a contract callers depend on: when several conditions
// are violated at once, the earlier check wins. Note that the funds check
// precedes the amount check, so ErrInsufficientBalance can only fire for
// positive amounts.
func (r *RepoMem) Transfer(ctx context.Context, fromID, toID int32, amount int64) (domain.TransferResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fromIdx, ok := r.byID[fromID]
	if !ok {
		return domain.TransferResult{}, domain.ErrAccountNotFound
	}

	toIdx, ok := r.byID[toID]
	if !ok {
		return domain.TransferResult{}, domain.ErrAccountNotFound
	}

	if fromID == toID {
		return domain.TransferResult{}, domain.ErrSelfTransfer
	}

	if r.accounts[fromIdx].Balance < amount {
		return domain.TransferResult{}, domain.ErrInsufficientBalance
	}

	if amount <= 0 {
		return domain.TransferResult{}, domain.ErrInvalidAmount
	}

	r.accounts[fromIdx].Balance -= amount
	r.accounts[toIdx].Balance += amount

	return domain.TransferResult{
		FromAccount: r.accounts[fromIdx],
		ToAccount:   r.accounts[toIdx],
		Amount:      amount,
	}, nil
}
