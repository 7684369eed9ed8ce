// Package storage provides abstractions for persistent data storage.
package storage

import (
	"context"
	"errors"

	"github.com/policyexpert/api/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
// Handlers detect it with errors.Is to produce a 404.
var ErrNotFound = errors.New("record not found")

// Counts holds the row counts reported by the health endpoint.
type Counts struct {
	Customers int64
	Claims    int64
}

// Store defines the interface for customer and claims persistence.
// This abstraction keeps the backing engine swappable (SQLite today,
// a networked SQL server tomorrow) without touching the handlers.
type Store interface {
	// GetPolicy retrieves a customer policy by exact, case-sensitive name.
	// Returns ErrNotFound if absent.
	GetPolicy(ctx context.Context, customerName string) (*models.CustomerPolicy, error)

	// SearchPolicies returns policies whose customer name contains the
	// filter, case-insensitively. An empty filter returns every policy.
	SearchPolicies(ctx context.Context, nameFilter string) ([]models.CustomerPolicy, error)

	// UpsertPolicy applies the update to the named policy, inserting a
	// fresh record (customer_since = today) when none exists. The merge
	// is committed atomically and the resulting record returned.
	UpsertPolicy(ctx context.Context, upd models.PolicyUpdate) (*models.CustomerPolicy, error)

	// GetCustomerInfo retrieves the 3-column UI record by exact name.
	// Returns ErrNotFound if absent.
	GetCustomerInfo(ctx context.Context, customerName string) (*models.CustomerInfo, error)

	// UpsertCustomerInfo applies the update to the named record,
	// inserting it when absent, and returns the resulting record.
	UpsertCustomerInfo(ctx context.Context, upd models.CustomerInfoUpdate) (*models.CustomerInfo, error)

	// ClaimsByCustomer returns the customer's claims ordered by
	// submission date descending (most recent first).
	ClaimsByCustomer(ctx context.Context, customerName string) ([]models.Claim, error)

	// InsertClaim persists a claim received from the intake pipeline.
	// The HTTP surface never calls this; claims are read-only here.
	InsertClaim(ctx context.Context, claim *models.Claim) error

	// Ping verifies storage connectivity.
	Ping(ctx context.Context) error

	// Counts reports customer and claim row counts for health checks.
	Counts(ctx context.Context) (Counts, error)

	// Close releases any resources held by the store.
	Close() error
}
