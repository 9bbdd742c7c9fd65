// Package domain provides defenitions of all entities.
package domain

import "errors"

var (
	// ErrAccountNotFound indicates that the account is not found.
	ErrAccountNotFound = errors.New("account not found")
	// ErrHandleAlreadyExists indicates that an account with the given handle already exists.
	ErrHandleAlreadyExists = errors.New("handle already exists")
)

// Account holds a single ledger entry: a funds holder and its balance
// in whole currency units.
type Account struct {
	ID          int32  `json:"id"`
	DisplayName string `json:"display_name"`
	Handle      string `json:"handle"`
	Balance     int64  `json:"balance"`
}
