package services

import (
	"context"
	"time"

	"tastymeal-backend/models"
)

// Store interfaces are declared here, on the consumer side, so tests can
// substitute in-memory doubles. Mongo implementations live in repository.

type MenuStore interface {
	FindItemByID(ctx context.Context, itemID string) (*models.MenuItem, error)
	// DecrementStock subtracts qty from the item's stock. The implementation
	// guards against going below zero even though PlaceOrder pre-checks.
	DecrementStock(ctx context.Context, itemID string, qty int64) error
}

type OrderStore interface {
	// NextOrderNumber returns the next TM{YY}{MM}{DD}{seq:03} number for the
	// given day, backed by an atomic per-day counter.
	NextOrderNumber(ctx context.Context, day time.Time) (string, error)
	InsertOrder(ctx context.Context, order *models.Order) error
}

// LedgerKey identifies the ledger bucket an order amount lands in.
type LedgerKey struct {
	AccountType   string
	CustomerPhone string
	CustomerName  string
	CustomerID    *string
	EmployeeKey   string
	EmployeeID    *string
	EmployeePhone *string
	EmployeeName  string
	PeriodMonth   int
	PeriodYear    int
}

type LedgerStore interface {
	// ApplyOrder upserts the ledger row for key and atomically increments
	// total_orders_amount and balance by the order total.
	ApplyOrder(ctx context.Context, key LedgerKey, order *models.Order) (*models.AccountLedger, error)
	FindByLedgerID(ctx context.Context, ledgerID string) (*models.AccountLedger, error)
	// ApplySettlement atomically records the settlement, guarded so the
	// balance can never be driven below zero by a concurrent writer.
	ApplySettlement(ctx context.Context, ledgerID string, settlement models.Settlement, closing bool) (*models.AccountLedger, error)
}

type TxnRunner interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
