package services_test

import (
	"context"
	"testing"
	"time"

	"tastymeal-backend/models"
	"tastymeal-backend/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func customerOrder(phone string, total float64) *models.Order {
	return &models.Order{
		Customer_name:  "Somchai",
		Customer_phone: phone,
		Created_by:     services.CreatedByCustomer,
		Pricing_tier:   services.TierStandard,
		Total:          total,
		Created_at:     time.Now(),
	}
}

func employeeOrder(employeeID string, total float64, createdAt time.Time) *models.Order {
	id := employeeID
	return &models.Order{
		Customer_name:  "Nok",
		Customer_phone: "0898765432",
		Customer_id:    &id,
		Created_by:     services.CreatedByCustomer,
		Pricing_tier:   services.TierInhouse,
		Total:          total,
		Created_at:     createdAt,
	}
}

func TestApplyOrderCreatesAndAccumulates(t *testing.T) {
	stores := newFakeStores()
	_, ledgerService := newServices(stores)

	first, err := ledgerService.ApplyOrderToLedger(context.Background(), customerOrder("081", 250))
	require.NoError(t, err)
	second, err := ledgerService.ApplyOrderToLedger(context.Background(), customerOrder("081", 100))
	require.NoError(t, err)

	assert.Equal(t, first.Ledger_id, second.Ledger_id)
	assert.Equal(t, 350.0, second.Total_orders_amount)
	assert.Equal(t, 350.0, second.Balance)
	assert.Equal(t, 0.0, second.Total_payments_amount)
	require.Len(t, stores.ledgers, 1)
}

func TestApplyOrderEmployeeMonthBuckets(t *testing.T) {
	stores := newFakeStores()
	_, ledgerService := newServices(stores)

	march := time.Date(2026, time.March, 10, 12, 0, 0, 0, time.UTC)
	laterInMarch := time.Date(2026, time.March, 28, 19, 0, 0, 0, time.UTC)
	april := time.Date(2026, time.April, 2, 12, 0, 0, 0, time.UTC)

	_, err := ledgerService.ApplyOrderToLedger(context.Background(), employeeOrder("emp-7", 40, march))
	require.NoError(t, err)
	marchLedger, err := ledgerService.ApplyOrderToLedger(context.Background(), employeeOrder("emp-7", 60, laterInMarch))
	require.NoError(t, err)
	aprilLedger, err := ledgerService.ApplyOrderToLedger(context.Background(), employeeOrder("emp-7", 25, april))
	require.NoError(t, err)

	// both March orders share one row; April starts a fresh one
	require.Len(t, stores.ledgers, 2)
	assert.Equal(t, 100.0, marchLedger.Total_orders_amount)
	assert.Equal(t, 3, *marchLedger.Period_month)
	assert.Equal(t, 25.0, aprilLedger.Total_orders_amount)
	assert.Equal(t, 4, *aprilLedger.Period_month)
	assert.NotEqual(t, marchLedger.Ledger_id, aprilLedger.Ledger_id)
}

func TestRecordSettlementFullByDefaultForCustomers(t *testing.T) {
	stores := newFakeStores()
	_, ledgerService := newServices(stores)

	ledger, err := ledgerService.ApplyOrderToLedger(context.Background(), customerOrder("081", 250))
	require.NoError(t, err)

	settled, err := ledgerService.RecordSettlement(context.Background(), services.SettlementRequest{
		LedgerID:      ledger.Ledger_id,
		PaymentMethod: strPtr("cash"),
	}, services.Caller{Role: services.RoleAdmin, UserID: "admin-1"})

	require.NoError(t, err)
	assert.Equal(t, 0.0, settled.Balance)
	assert.Equal(t, 250.0, settled.Total_payments_amount)
	assert.Equal(t, services.LedgerStatusSettled, settled.Status)
	require.Len(t, settled.Settlements, 1)
	assert.Equal(t, services.SettlementFull, settled.Settlements[0].Type)
	assert.Equal(t, "admin-1", *settled.Settlements[0].Recorded_by)
}

func TestRecordSettlementPartialPolicy(t *testing.T) {
	stores := newFakeStores()
	_, ledgerService := newServices(stores)

	ledger, err := ledgerService.ApplyOrderToLedger(context.Background(), customerOrder("081", 250))
	require.NoError(t, err)

	// partial amount without allow_partial is rejected for customers
	_, err = ledgerService.RecordSettlement(context.Background(), services.SettlementRequest{
		LedgerID: ledger.Ledger_id,
		Amount:   f64Ptr(100),
	}, services.Caller{Role: services.RoleAdmin})
	assert.ErrorIs(t, err, services.ErrPartialNotPermitted)

	fresh, err := stores.FindByLedgerID(context.Background(), ledger.Ledger_id)
	require.NoError(t, err)
	assert.Equal(t, 250.0, fresh.Balance)
	assert.Empty(t, fresh.Settlements)

	// the same call with allow_partial goes through
	partial, err := ledgerService.RecordSettlement(context.Background(), services.SettlementRequest{
		LedgerID:     ledger.Ledger_id,
		Amount:       f64Ptr(100),
		AllowPartial: boolPtr(true),
	}, services.Caller{Role: services.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 150.0, partial.Balance)
	assert.Equal(t, services.LedgerStatusOpen, partial.Status)
	require.Len(t, partial.Settlements, 1)
	assert.Equal(t, services.SettlementPartial, partial.Settlements[0].Type)
}

func TestRecordSettlementEmployeePolicy(t *testing.T) {
	stores := newFakeStores()
	_, ledgerService := newServices(stores)

	ledger, err := ledgerService.ApplyOrderToLedger(context.Background(),
		employeeOrder("emp-7", 300, time.Now()))
	require.NoError(t, err)

	// employees must state an amount, no default-to-full
	_, err = ledgerService.RecordSettlement(context.Background(), services.SettlementRequest{
		LedgerID: ledger.Ledger_id,
	}, services.Caller{Role: services.RoleAdmin})
	assert.ErrorIs(t, err, services.ErrInvalidAmount)

	// partial settlements are the default for employee ledgers
	partial, err := ledgerService.RecordSettlement(context.Background(), services.SettlementRequest{
		LedgerID: ledger.Ledger_id,
		Amount:   f64Ptr(120),
	}, services.Caller{Role: services.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, 180.0, partial.Balance)
	assert.Equal(t, services.LedgerStatusOpen, partial.Status)
}

func TestRecordSettlementRejectsInvalidAmounts(t *testing.T) {
	stores := newFakeStores()
	_, ledgerService := newServices(stores)

	ledger, err := ledgerService.ApplyOrderToLedger(context.Background(), customerOrder("081", 250))
	require.NoError(t, err)

	for _, amount := range []float64{0, -50} {
		_, err := ledgerService.RecordSettlement(context.Background(), services.SettlementRequest{
			LedgerID:     ledger.Ledger_id,
			Amount:       f64Ptr(amount),
			AllowPartial: boolPtr(true),
		}, services.Caller{Role: services.RoleAdmin})
		assert.ErrorIs(t, err, services.ErrInvalidAmount)
	}

	_, err = ledgerService.RecordSettlement(context.Background(), services.SettlementRequest{
		LedgerID:     ledger.Ledger_id,
		Amount:       f64Ptr(300),
		AllowPartial: boolPtr(true),
	}, services.Caller{Role: services.RoleAdmin})
	assert.ErrorIs(t, err, services.ErrAmountExceedsBalance)

	fresh, err := stores.FindByLedgerID(context.Background(), ledger.Ledger_id)
	require.NoError(t, err)
	assert.Equal(t, 250.0, fresh.Balance)
	assert.Equal(t, 0.0, fresh.Total_payments_amount)
	assert.Empty(t, fresh.Settlements)
}

func TestRecordSettlementLedgerNotFound(t *testing.T) {
	stores := newFakeStores()
	_, ledgerService := newServices(stores)

	_, err := ledgerService.RecordSettlement(context.Background(), services.SettlementRequest{
		LedgerID: "nope",
		Amount:   f64Ptr(10),
	}, services.Caller{Role: services.RoleAdmin})
	assert.ErrorIs(t, err, services.ErrLedgerNotFound)
}

func TestSettledCustomerLedgerStaysInertAndNewOrderOpensFresh(t *testing.T) {
	stores := newFakeStores()
	_, ledgerService := newServices(stores)

	first, err := ledgerService.ApplyOrderToLedger(context.Background(), customerOrder("081", 250))
	require.NoError(t, err)
	_, err = ledgerService.RecordSettlement(context.Background(), services.SettlementRequest{
		LedgerID: first.Ledger_id,
	}, services.Caller{Role: services.RoleAdmin})
	require.NoError(t, err)

	second, err := ledgerService.ApplyOrderToLedger(context.Background(), customerOrder("081", 90))
	require.NoError(t, err)

	assert.NotEqual(t, first.Ledger_id, second.Ledger_id)
	assert.Equal(t, 90.0, second.Balance)
	assert.Equal(t, services.LedgerStatusOpen, second.Status)

	// at most one open ledger for the phone
	open := 0
	for _, l := range stores.ledgers {
		if l.Account_type == services.AccountTypeCustomer && l.Status == services.LedgerStatusOpen {
			open++
		}
	}
	assert.Equal(t, 1, open)
	require.Len(t, stores.ledgers, 2)
}

func TestBalanceIdentityAfterMixedOperations(t *testing.T) {
	stores := newFakeStores()
	_, ledgerService := newServices(stores)

	ledger, err := ledgerService.ApplyOrderToLedger(context.Background(),
		employeeOrder("emp-7", 200, time.Now()))
	require.NoError(t, err)

	_, err = ledgerService.RecordSettlement(context.Background(), services.SettlementRequest{
		LedgerID: ledger.Ledger_id,
		Amount:   f64Ptr(80),
	}, services.Caller{Role: services.RoleAdmin})
	require.NoError(t, err)

	_, err = ledgerService.ApplyOrderToLedger(context.Background(),
		employeeOrder("emp-7", 50, time.Now()))
	require.NoError(t, err)

	final, err := ledgerService.RecordSettlement(context.Background(), services.SettlementRequest{
		LedgerID: ledger.Ledger_id,
		Amount:   f64Ptr(100),
	}, services.Caller{Role: services.RoleAdmin})
	require.NoError(t, err)

	assert.Equal(t, final.Balance, final.Total_orders_amount-final.Total_payments_amount)
	assert.Equal(t, 250.0, final.Total_orders_amount)
	assert.Equal(t, 180.0, final.Total_payments_amount)
	assert.Equal(t, 70.0, final.Balance)
}
