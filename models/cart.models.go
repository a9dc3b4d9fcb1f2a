package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// CartItem is a point-in-time snapshot of a product taken when it was added.
// Price and name are intentionally not kept in sync with later product edits.
type CartItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Size      Size               `bson:"size" json:"size" validate:"required,oneof=250g 500g 1kg"`
	Quantity  int                `bson:"quantity" json:"quantity" validate:"required,min=1"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
}

// Cart represents a user's shopping cart, one document per user
type Cart struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items  []CartItem         `bson:"items" json:"items"`
}

// ListItem is a saved product reference for favorites and wishlists.
type ListItem struct {
	ProductID primitive.ObjectID `bson:"product_id" json:"product_id"`
	Name      string             `bson:"name" json:"name"`
	Price     float64            `bson:"price" json:"price"`
	Image     string             `bson:"image,omitempty" json:"image,omitempty"`
}

// Favorites holds a user's favorite products, one document per user
type Favorites struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items  []ListItem         `bson:"items" json:"items"`
}

// Wishlist holds a user's wishlist, one document per user
type Wishlist struct {
	ID     primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	UserID primitive.ObjectID `bson:"user_id" json:"user_id"`
	Items  []ListItem         `bson:"items" json:"items"`
}
