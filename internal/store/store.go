package store

import (
	"errors"

	"FundScope/internal/model"
)

// ErrNotFound is returned when a targeted record does not exist.
var ErrNotFound = errors.New("not found")

// Store is the persistence contract for per-user assumptions and deals.
// Implementations own the consistency guarantees (at most one assumptions
// record per user, atomic upsert); the engine never touches them directly.
type Store interface {
	// LoadAssumptions returns nil without error when the user has not
	// saved an assumptions record yet.
	LoadAssumptions(userID string) (*model.Assumptions, error)

	// SaveAssumptions creates or overwrites the user's single record.
	SaveAssumptions(userID string, a model.Assumptions) error

	// LoadDeals returns the user's deals in insertion order.
	LoadDeals(userID string) ([]model.Deal, error)

	// InsertDeal stores a new deal and returns its generated identifier.
	InsertDeal(userID string, d model.Deal) (string, error)

	// DeleteDeal removes one deal; ErrNotFound when it does not exist.
	DeleteDeal(userID, dealID string) error

	// ListUsers returns every user id with any stored data.
	ListUsers() ([]string, error)

	Close() error
}
