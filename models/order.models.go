package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem is a purchased line item. Name and price are copied from the cart
// snapshot at checkout; orders never reference live product documents.
type OrderItem struct {
	Name     string  `bson:"name" json:"name"`
	Quantity int     `bson:"quantity" json:"quantity"`
	Size     Size    `bson:"size" json:"size"`
	Price    float64 `bson:"price" json:"price"`
}

// Order represents a placed order. Orders are immutable after creation.
type Order struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	CustomerEmail string             `bson:"customer_email" json:"customer_email"`
	Items         []OrderItem        `bson:"items" json:"items"`
	Subtotal      float64            `bson:"subtotal" json:"subtotal"`
	Shipping      float64            `bson:"shipping" json:"shipping"`
	Total         float64            `bson:"total" json:"total"`
	Address       *Address           `bson:"address,omitempty" json:"address,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}
