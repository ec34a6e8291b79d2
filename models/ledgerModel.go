package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Settlement struct {
	Amount         float64   `json:"amount"`
	Type           string    `json:"type"` // full | partial
	Note           *string   `json:"note"`
	Payment_method *string   `json:"payment_method"`
	Recorded_by    *string   `json:"recorded_by"`
	Recorded_at    time.Time `json:"recorded_at"`
}

// AccountLedger keeps a running balance per account bucket: one open ledger
// per customer phone, one ledger per employee identity and calendar month.
// Balance is maintained as its own counter, not recomputed from the totals.
type AccountLedger struct {
	ID                    primitive.ObjectID `bson:"_id"`
	Ledger_id             string             `json:"ledger_id"`
	Account_type          string             `json:"account_type"` // customer | employee
	Customer_phone        *string            `json:"customer_phone"`
	Customer_name         *string            `json:"customer_name"`
	Customer_id           *string            `json:"customer_id"`
	Employee_key          *string            `json:"employee_key"` // employee_id when known, else phone
	Employee_id           *string            `json:"employee_id"`
	Employee_phone        *string            `json:"employee_phone"`
	Employee_name         *string            `json:"employee_name"`
	Period_month          *int               `json:"period_month" validate:"omitempty,gte=1,lte=12"`
	Period_year           *int               `json:"period_year"`
	Total_orders_amount   float64            `json:"total_orders_amount"`
	Total_payments_amount float64            `json:"total_payments_amount"`
	Balance               float64            `json:"balance"`
	Status                string             `json:"status"` // open | settled
	Settlements           []Settlement       `json:"settlements"`
	Last_order_at         *time.Time         `json:"last_order_at"`
	Last_settlement_at    *time.Time         `json:"last_settlement_at"`
	Created_at            time.Time          `json:"created_at"`
	Updated_at            time.Time          `json:"updated_at"`
}
