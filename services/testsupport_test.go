package services_test

import (
	"context"
	"fmt"
	"time"

	"tastymeal-backend/models"
	"tastymeal-backend/services"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }
func i64Ptr(i int64) *int64     { return &i }
func boolPtr(b bool) *bool      { return &b }

// fakeStores is an in-memory double for every store interface plus the
// transaction runner. The runner snapshots state before the callback and
// restores it on error, mirroring the abort-on-error transaction semantics.
type fakeStores struct {
	items   map[string]*models.MenuItem
	orders  []*models.Order
	ledgers []*models.AccountLedger
	seq     map[string]int64
}

func newFakeStores() *fakeStores {
	return &fakeStores{
		items: make(map[string]*models.MenuItem),
		seq:   make(map[string]int64),
	}
}

func (s *fakeStores) addItem(id, name string, price float64, inHouse *float64, stock int64, opts ...func(*models.MenuItem)) {
	item := &models.MenuItem{
		Item_id:                 id,
		Name:                    strPtr(name),
		Price:                   f64Ptr(price),
		In_house_price:          inHouse,
		Stock:                   i64Ptr(stock),
		Is_available:            boolPtr(true),
		Available_for:           []string{"breakfast", "lunch", "dinner"},
		Available_for_pre_order: boolPtr(true),
	}
	for _, opt := range opts {
		opt(item)
	}
	s.items[id] = item
}

func (s *fakeStores) stockOf(id string) int64 {
	return *s.items[id].Stock
}

func (s *fakeStores) FindItemByID(ctx context.Context, itemID string) (*models.MenuItem, error) {
	item, ok := s.items[itemID]
	if !ok {
		return nil, fmt.Errorf("%w: %s", services.ErrItemNotFound, itemID)
	}
	return item, nil
}

func (s *fakeStores) DecrementStock(ctx context.Context, itemID string, qty int64) error {
	item, ok := s.items[itemID]
	if !ok {
		return fmt.Errorf("%w: %s", services.ErrItemNotFound, itemID)
	}
	if *item.Stock < qty {
		return fmt.Errorf("%w: %s", services.ErrInsufficientStock, itemID)
	}
	*item.Stock -= qty
	return nil
}

func (s *fakeStores) NextOrderNumber(ctx context.Context, day time.Time) (string, error) {
	dayKey := day.Format("060102")
	s.seq[dayKey]++
	return fmt.Sprintf("TM%s%03d", dayKey, s.seq[dayKey]), nil
}

func (s *fakeStores) InsertOrder(ctx context.Context, order *models.Order) error {
	s.orders = append(s.orders, order)
	return nil
}

func (s *fakeStores) ApplyOrder(ctx context.Context, key services.LedgerKey, order *models.Order) (*models.AccountLedger, error) {
	ledger := s.findBucket(key)
	if ledger == nil {
		ledger = &models.AccountLedger{
			Ledger_id:    fmt.Sprintf("L%03d", len(s.ledgers)+1),
			Account_type: key.AccountType,
			Status:       services.LedgerStatusOpen,
			Settlements:  []models.Settlement{},
			Created_at:   time.Now(),
		}
		if key.AccountType == services.AccountTypeCustomer {
			ledger.Customer_phone = strPtr(key.CustomerPhone)
		} else {
			ledger.Employee_key = strPtr(key.EmployeeKey)
			ledger.Employee_id = key.EmployeeID
			ledger.Employee_phone = key.EmployeePhone
			month := key.PeriodMonth
			year := key.PeriodYear
			ledger.Period_month = &month
			ledger.Period_year = &year
		}
		s.ledgers = append(s.ledgers, ledger)
	}

	ledger.Total_orders_amount += order.Total
	ledger.Balance += order.Total
	orderedAt := order.Created_at
	ledger.Last_order_at = &orderedAt
	if key.AccountType == services.AccountTypeCustomer {
		ledger.Customer_name = strPtr(key.CustomerName)
		ledger.Customer_id = key.CustomerID
	} else {
		ledger.Employee_name = strPtr(key.EmployeeName)
		ledger.Status = services.LedgerStatusOpen
	}
	return ledger, nil
}

func (s *fakeStores) findBucket(key services.LedgerKey) *models.AccountLedger {
	for _, l := range s.ledgers {
		if l.Account_type != key.AccountType {
			continue
		}
		if key.AccountType == services.AccountTypeCustomer {
			if l.Status == services.LedgerStatusOpen && l.Customer_phone != nil && *l.Customer_phone == key.CustomerPhone {
				return l
			}
			continue
		}
		if l.Employee_key != nil && *l.Employee_key == key.EmployeeKey &&
			l.Period_year != nil && *l.Period_year == key.PeriodYear &&
			l.Period_month != nil && *l.Period_month == key.PeriodMonth {
			return l
		}
	}
	return nil
}

func (s *fakeStores) FindByLedgerID(ctx context.Context, ledgerID string) (*models.AccountLedger, error) {
	for _, l := range s.ledgers {
		if l.Ledger_id == ledgerID {
			return l, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", services.ErrLedgerNotFound, ledgerID)
}

func (s *fakeStores) ApplySettlement(ctx context.Context, ledgerID string, settlement models.Settlement, closing bool) (*models.AccountLedger, error) {
	ledger, err := s.FindByLedgerID(ctx, ledgerID)
	if err != nil {
		return nil, err
	}
	if ledger.Balance < settlement.Amount {
		return nil, services.ErrAmountExceedsBalance
	}
	ledger.Total_payments_amount += settlement.Amount
	ledger.Balance -= settlement.Amount
	ledger.Settlements = append(ledger.Settlements, settlement)
	recordedAt := settlement.Recorded_at
	ledger.Last_settlement_at = &recordedAt
	if closing {
		ledger.Status = services.LedgerStatusSettled
	}
	return ledger, nil
}

func (s *fakeStores) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	snapItems := make(map[string]*models.MenuItem, len(s.items))
	for id, item := range s.items {
		clone := *item
		if item.Stock != nil {
			stock := *item.Stock
			clone.Stock = &stock
		}
		snapItems[id] = &clone
	}
	snapOrders := append([]*models.Order(nil), s.orders...)
	snapLedgers := make([]*models.AccountLedger, 0, len(s.ledgers))
	for _, l := range s.ledgers {
		clone := *l
		clone.Settlements = append([]models.Settlement(nil), l.Settlements...)
		snapLedgers = append(snapLedgers, &clone)
	}
	snapSeq := make(map[string]int64, len(s.seq))
	for k, v := range s.seq {
		snapSeq[k] = v
	}

	if err := fn(ctx); err != nil {
		s.items = snapItems
		s.orders = snapOrders
		s.ledgers = snapLedgers
		s.seq = snapSeq
		return err
	}
	return nil
}

func newServices(stores *fakeStores) (*services.OrderService, *services.LedgerService) {
	ledgerService := services.NewLedgerService(stores, stores)
	orderService := services.NewOrderService(stores, stores, ledgerService, stores)
	return orderService, ledgerService
}
