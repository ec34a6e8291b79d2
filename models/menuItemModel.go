package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MenuItem struct {
	ID                      primitive.ObjectID `bson:"_id"`
	Item_id                 string             `json:"item_id"`
	Name                    *string            `json:"name" validate:"required,min=2,max=100"`
	Price                   *float64           `json:"price" validate:"required,gte=0"`
	In_house_price          *float64           `json:"in_house_price"` // employee tier price, nil when the item has none
	Stock                   *int64             `json:"stock" validate:"required,gte=0"`
	Is_available            *bool              `json:"is_available" validate:"required"`
	Available_for           []string           `json:"available_for" validate:"dive,eq=breakfast|eq=lunch|eq=dinner"`
	Available_for_pre_order *bool              `json:"available_for_pre_order"`
	Created_at              time.Time          `json:"created_at"`
	Updated_at              time.Time          `json:"updated_at"`
}
