package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Size is the canonical bag-size enumeration shared by products, carts and
// orders.
type Size string

const (
	Size250g Size = "250g"
	Size500g Size = "500g"
	Size1kg  Size = "1kg"
)

// IsValid reports whether s is one of the enumerated sizes.
func (s Size) IsValid() bool {
	switch s {
	case Size250g, Size500g, Size1kg:
		return true
	}
	return false
}

// Variant is a purchasable size of a product with its own price and stock.
type Variant struct {
	Size  Size    `bson:"size" json:"size" validate:"required,oneof=250g 500g 1kg"`
	Price float64 `bson:"price" json:"price" validate:"required,gt=0"`
	Stock int     `bson:"stock" json:"stock" validate:"gte=0"`
}

// Product represents a coffee in the catalog
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Name        string             `bson:"name" json:"name" validate:"required"`
	Description string             `bson:"description" json:"description"`
	Price       float64            `bson:"price" json:"price" validate:"required,gt=0"`
	Images      []string           `bson:"images" json:"images"`
	Category    string             `bson:"category" json:"category"`
	Origin      string             `bson:"origin" json:"origin"`
	Roast       string             `bson:"roast,omitempty" json:"roast,omitempty"`
	Stock       int                `bson:"stock" json:"stock" validate:"gte=0"`
	Variants    []Variant          `bson:"variants" json:"variants" validate:"dive"`
	CreatedAt   time.Time          `bson:"created_at" json:"created_at"`
}

// VariantFor returns the variant matching the given size, if any.
func (p *Product) VariantFor(size Size) (Variant, bool) {
	for _, v := range p.Variants {
		if v.Size == size {
			return v, true
		}
	}
	return Variant{}, false
}
