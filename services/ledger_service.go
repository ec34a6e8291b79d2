package services

import (
	"context"
	"fmt"
	"time"

	"tastymeal-backend/models"
)

const (
	AccountTypeCustomer = "customer"
	AccountTypeEmployee = "employee"

	LedgerStatusOpen    = "open"
	LedgerStatusSettled = "settled"

	SettlementFull    = "full"
	SettlementPartial = "partial"
)

type SettlementRequest struct {
	LedgerID      string   `json:"ledger_id"`
	Amount        *float64 `json:"amount"`
	Note          *string  `json:"note"`
	PaymentMethod *string  `json:"payment_method"`
	// AllowPartial defaults per account type when omitted: customers must
	// settle in full, employees may pay down incrementally.
	AllowPartial *bool   `json:"allow_partial"`
	RecordedBy   *string `json:"recorded_by"`
}

// LedgerService applies committed orders to account ledgers and records
// settlements against them.
type LedgerService struct {
	store LedgerStore
	txn   TxnRunner
	now   func() time.Time
}

func NewLedgerService(store LedgerStore, txn TxnRunner) *LedgerService {
	return &LedgerService{
		store: store,
		txn:   txn,
		now:   time.Now,
	}
}

// ApplyOrderToLedger routes the order total into its ledger bucket: in-house
// orders land in the employee ledger for the order's calendar month, all
// others in the customer's open ledger. The upsert-with-increment is atomic,
// so concurrent orders never create duplicate rows.
func (s *LedgerService) ApplyOrderToLedger(ctx context.Context, order *models.Order) (*models.AccountLedger, error) {
	var key LedgerKey
	if order.Pricing_tier == TierInhouse {
		employeeKey := order.Customer_phone
		if order.Customer_id != nil && *order.Customer_id != "" {
			employeeKey = *order.Customer_id
		}
		phone := order.Customer_phone
		key = LedgerKey{
			AccountType:   AccountTypeEmployee,
			EmployeeKey:   employeeKey,
			EmployeeID:    order.Customer_id,
			EmployeePhone: &phone,
			EmployeeName:  order.Customer_name,
			PeriodMonth:   int(order.Created_at.Month()),
			PeriodYear:    order.Created_at.Year(),
		}
	} else {
		key = LedgerKey{
			AccountType:   AccountTypeCustomer,
			CustomerPhone: order.Customer_phone,
			CustomerName:  order.Customer_name,
			CustomerID:    order.Customer_id,
		}
	}
	return s.store.ApplyOrder(ctx, key, order)
}

// RecordSettlement validates and applies one settlement in its own
// transaction. A failed settlement leaves the ledger untouched.
func (s *LedgerService) RecordSettlement(ctx context.Context, req SettlementRequest, caller Caller) (*models.AccountLedger, error) {
	var updated *models.AccountLedger
	err := s.txn.WithTransaction(ctx, func(sc context.Context) error {
		ledger, err := s.store.FindByLedgerID(sc, req.LedgerID)
		if err != nil {
			return err
		}

		allowPartial := ledger.Account_type == AccountTypeEmployee
		if req.AllowPartial != nil {
			allowPartial = *req.AllowPartial
		}

		var amount float64
		if req.Amount != nil {
			amount = *req.Amount
		} else {
			if ledger.Account_type == AccountTypeEmployee {
				return fmt.Errorf("%w: employee settlements require an explicit amount", ErrInvalidAmount)
			}
			amount = ledger.Balance
		}

		if amount <= 0 {
			return ErrInvalidAmount
		}
		if !allowPartial && amount < ledger.Balance {
			return ErrPartialNotPermitted
		}
		if amount > ledger.Balance {
			return ErrAmountExceedsBalance
		}

		settlementType := SettlementPartial
		closing := false
		if amount == ledger.Balance {
			settlementType = SettlementFull
			closing = true
		}

		recordedBy := req.RecordedBy
		if recordedBy == nil && caller.UserID != "" {
			uid := caller.UserID
			recordedBy = &uid
		}

		updated, err = s.store.ApplySettlement(sc, req.LedgerID, models.Settlement{
			Amount:         amount,
			Type:           settlementType,
			Note:           req.Note,
			Payment_method: req.PaymentMethod,
			Recorded_by:    recordedBy,
			Recorded_at:    s.now(),
		}, closing)
		return err
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}
