// Package accountservice manages business logic layer of accounts.
package accountservice

import (
	"context"

	"github.com/go-petr/mini-ledger/internal/domain"
)

// Repo provides data access layer interface needed by account service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package accountservice
type Repo interface {
	Create(ctx context.Context, displayName, handle string, balance int64) (domain.Account, error)
	Get(ctx context.Context, id int32) (domain.Account, error)
	GetByHandle(ctx context.Context, handle string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	Transfer(ctx context.Context, fromID, toID int32, amount int64) (domain.TransferResult, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo                   Repo
	defaultStartingBalance int64
}

// New returns account service struct to manage account bussines logic.
// The default starting balance is substituted when an account is created
// without an explicit balance.
func New(ar Repo, defaultStartingBalance int64) *Service {
	return &Service{
		repo:                   ar,
		defaultStartingBalance: defaultStartingBalance,
	}
}

// Create creates and returns an account. A nil balance means the configured
// default starting balance.
func (s *Service) Create(ctx context.Context, displayName, handle string, balance *int64) (domain.Account, error) {
	b := s.defaultStartingBalance
	if balance != nil {
		b = *balance
	}

	account, err := s.repo.Create(ctx, displayName, handle, b)
	if err != nil {
		return account, err
	}

	return account, nil
}

// Get returns the account with the given id.
func (s *Service) Get(ctx context.Context, id int32) (domain.Account, error) {
	return s.repo.Get(ctx, id)
}

// GetByHandle returns the account with the given handle.
func (s *Service) GetByHandle(ctx context.Context, handle string) (domain.Account, error) {
	return s.repo.GetByHandle(ctx, handle)
}

// List returns all accounts.
func (s *Service) List(ctx context.Context) ([]domain.Account, error) {
	return s.repo.List(ctx)
}

// Transfer moves amount between the two accounts.
func (s *Service) Transfer(ctx context.Context, fromID, toID int32, amount int64) (domain.TransferResult, error) {
	return s.repo.Transfer(ctx, fromID, toID, amount)
}
