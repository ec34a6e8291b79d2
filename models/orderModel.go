package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a point-in-time snapshot: name and unit price are copied from
// the menu item at placement and never change afterwards.
type OrderItem struct {
	Menu_item_id string  `json:"menu_item_id"`
	Name         string  `json:"name"`
	Quantity     int64   `json:"quantity" validate:"gte=1"`
	Unit_price   float64 `json:"unit_price"`
	Total        float64 `json:"total"`
}

type Order struct {
	ID                   primitive.ObjectID `bson:"_id"`
	Order_id             string             `json:"order_id"`
	Order_number         string             `json:"order_number"`
	Customer_name        string             `json:"customer_name"`
	Customer_phone       string             `json:"customer_phone"`
	Customer_id          *string            `json:"customer_id"`
	Created_by           string             `json:"created_by"`   // customer | admin
	Pricing_tier         string             `json:"pricing_tier"` // standard | inhouse
	Items                []OrderItem        `json:"items"`
	Total                float64            `json:"total"`
	Meal_time            string             `json:"meal_time"` // breakfast | lunch | dinner | pre-order
	Special_instructions *string            `json:"special_instructions"`
	Status               string             `json:"status" validate:"eq=pending|eq=confirmed|eq=preparing|eq=ready|eq=completed|eq=cancelled|eq=paid"`
	Order_type           string             `json:"order_type"` // NOW | PREORDER
	Scheduled_for        *time.Time         `json:"scheduled_for"`
	Actual_ready_time    *time.Time         `json:"actual_ready_time"`
	Created_at           time.Time          `json:"created_at"`
	Updated_at           time.Time          `json:"updated_at"`
}
