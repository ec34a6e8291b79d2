package services

import (
	"context"
	"fmt"
	"time"

	"tastymeal-backend/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TierStandard = "standard"
	TierInhouse  = "inhouse"

	OrderTypeNow      = "NOW"
	OrderTypePreOrder = "PREORDER"

	MealTimePreOrder = "pre-order"

	CreatedByAdmin    = "admin"
	CreatedByCustomer = "customer"

	RoleAdmin    = "ADMIN"
	RoleEmployee = "EMPLOYEE"
	RoleCustomer = "CUSTOMER"

	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusPreparing = "preparing"
	StatusReady     = "ready"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusPaid      = "paid"

	// pre-orders may be scheduled at most three days out
	preOrderWindow = 72 * time.Hour
)

var mealTimes = map[string]bool{
	"breakfast": true,
	"lunch":     true,
	"dinner":    true,
}

// Caller is the authenticated identity placing the request.
type Caller struct {
	Role   string
	UserID string
}

type OrderItemRequest struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int64  `json:"quantity"`
}

type PlaceOrderRequest struct {
	CustomerName        string             `json:"customer_name"`
	CustomerPhone       string             `json:"customer_phone"`
	CustomerID          *string            `json:"customer_id"`
	Items               []OrderItemRequest `json:"items"`
	MealTime            string             `json:"meal_time"`
	SpecialInstructions *string            `json:"special_instructions"`
	OrderType           string             `json:"order_type"`
	ScheduledFor        *time.Time         `json:"scheduled_for"`
	IsPreOrder          bool               `json:"is_pre_order"`        // legacy pre-order path
	PreOrderDateTime    *time.Time         `json:"pre_order_date_time"` // legacy pre-order path
	CreatedBy           string             `json:"created_by"`
	PricingTier         string             `json:"pricing_tier"`
}

// OrderService validates and prices an incoming order and commits it,
// together with the stock decrements and the ledger increment, in a single
// storage transaction.
type OrderService struct {
	menu   MenuStore
	orders OrderStore
	ledger *LedgerService
	txn    TxnRunner
	now    func() time.Time
}

func NewOrderService(menu MenuStore, orders OrderStore, ledger *LedgerService, txn TxnRunner) *OrderService {
	return &OrderService{
		menu:   menu,
		orders: orders,
		ledger: ledger,
		txn:    txn,
		now:    time.Now,
	}
}

func (s *OrderService) PlaceOrder(ctx context.Context, req PlaceOrderRequest, caller Caller) (*models.Order, error) {
	now := s.now()

	if req.CustomerName == "" {
		return nil, fmt.Errorf("%w: customer name is required", ErrValidationFailed)
	}
	if req.CustomerPhone == "" {
		return nil, fmt.Errorf("%w: customer phone is required", ErrValidationFailed)
	}
	if len(req.Items) == 0 {
		return nil, fmt.Errorf("%w: order must contain at least one item", ErrValidationFailed)
	}
	for _, line := range req.Items {
		if line.MenuItemID == "" {
			return nil, fmt.Errorf("%w: item is missing a menu item id", ErrValidationFailed)
		}
		if line.Quantity < 1 {
			return nil, fmt.Errorf("%w: item quantity must be at least 1", ErrValidationFailed)
		}
	}

	createdBy, err := resolveCreatedBy(req.CreatedBy, caller)
	if err != nil {
		return nil, err
	}

	orderType := req.OrderType
	if orderType == "" {
		if req.IsPreOrder {
			orderType = OrderTypePreOrder
		} else {
			orderType = OrderTypeNow
		}
	}
	if orderType != OrderTypeNow && orderType != OrderTypePreOrder {
		return nil, fmt.Errorf("%w: order type must be NOW or PREORDER", ErrValidationFailed)
	}

	scheduledFor := req.ScheduledFor
	if scheduledFor == nil {
		scheduledFor = req.PreOrderDateTime
	}

	var mealTime string
	if orderType == OrderTypePreOrder {
		if scheduledFor == nil {
			return nil, fmt.Errorf("%w: pre-order requires a scheduled time", ErrInvalidScheduling)
		}
		if !scheduledFor.After(now) {
			return nil, fmt.Errorf("%w: scheduled time must be in the future", ErrInvalidScheduling)
		}
		if scheduledFor.After(now.Add(preOrderWindow)) {
			return nil, fmt.Errorf("%w: scheduled time must be within 3 days", ErrInvalidScheduling)
		}
		mealTime = MealTimePreOrder
	} else {
		mealTime = req.MealTime
		if !mealTimes[mealTime] {
			return nil, fmt.Errorf("%w: meal time must be breakfast, lunch or dinner", ErrValidationFailed)
		}
		scheduledFor = nil
	}

	tier := TierStandard
	if req.PricingTier == TierInhouse && mayUseInhousePricing(caller, createdBy) {
		tier = TierInhouse
	}

	order := &models.Order{
		ID:                   primitive.NewObjectID(),
		Customer_name:        req.CustomerName,
		Customer_phone:       req.CustomerPhone,
		Customer_id:          req.CustomerID,
		Created_by:           createdBy,
		Pricing_tier:         tier,
		Meal_time:            mealTime,
		Special_instructions: req.SpecialInstructions,
		Status:               StatusPending,
		Order_type:           orderType,
		Scheduled_for:        scheduledFor,
		Created_at:           now,
		Updated_at:           now,
	}
	order.Order_id = order.ID.Hex()

	err = s.txn.WithTransaction(ctx, func(sc context.Context) error {
		var total float64
		items := make([]models.OrderItem, 0, len(req.Items))
		for _, line := range req.Items {
			item, err := s.menu.FindItemByID(sc, line.MenuItemID)
			if err != nil {
				return err
			}
			if item.Is_available == nil || !*item.Is_available {
				return fmt.Errorf("%w: %s", ErrItemUnavailable, *item.Name)
			}
			// admins may order any item regardless of meal time
			if mealTime != MealTimePreOrder && createdBy != CreatedByAdmin && !containsMealTime(item.Available_for, mealTime) {
				return fmt.Errorf("%w: %s is not offered for %s", ErrMealTimeMismatch, *item.Name, mealTime)
			}
			if mealTime == MealTimePreOrder && (item.Available_for_pre_order == nil || !*item.Available_for_pre_order) {
				return fmt.Errorf("%w: %s", ErrNotAvailableForPreOrder, *item.Name)
			}
			if item.Stock == nil || *item.Stock < line.Quantity {
				return fmt.Errorf("%w: %s", ErrInsufficientStock, *item.Name)
			}

			unitPrice := *item.Price
			if tier == TierInhouse && item.In_house_price != nil {
				unitPrice = *item.In_house_price
			}
			lineTotal := unitPrice * float64(line.Quantity)

			items = append(items, models.OrderItem{
				Menu_item_id: item.Item_id,
				Name:         *item.Name,
				Quantity:     line.Quantity,
				Unit_price:   unitPrice,
				Total:        lineTotal,
			})
			total += lineTotal

			if err := s.menu.DecrementStock(sc, item.Item_id, line.Quantity); err != nil {
				return err
			}
		}
		order.Items = items
		order.Total = total

		orderNumber, err := s.orders.NextOrderNumber(sc, now)
		if err != nil {
			return err
		}
		order.Order_number = orderNumber

		if err := s.orders.InsertOrder(sc, order); err != nil {
			return err
		}
		// The ledger increment rides in the same transaction, so a committed
		// order is always reflected exactly once in its ledger.
		_, err = s.ledger.ApplyOrderToLedger(sc, order)
		return err
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func resolveCreatedBy(requested string, caller Caller) (string, error) {
	switch requested {
	case "":
		if caller.Role == RoleAdmin {
			return CreatedByAdmin, nil
		}
		return CreatedByCustomer, nil
	case CreatedByAdmin:
		// only a real admin gets the admin override
		if caller.Role == RoleAdmin {
			return CreatedByAdmin, nil
		}
		return CreatedByCustomer, nil
	case CreatedByCustomer:
		return CreatedByCustomer, nil
	default:
		return "", fmt.Errorf("%w: created_by must be customer or admin", ErrValidationFailed)
	}
}

func mayUseInhousePricing(caller Caller, createdBy string) bool {
	return caller.Role == RoleAdmin || caller.Role == RoleEmployee || createdBy == CreatedByAdmin
}

func containsMealTime(availableFor []string, mealTime string) bool {
	for _, m := range availableFor {
		if m == mealTime {
			return true
		}
	}
	return false
}
