package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"roastery/auth"
	"roastery/middleware"
	"roastery/models"
	"roastery/repositories"
	"roastery/utils"
)

// CartController handles cart requests
type CartController struct {
	Carts    repositories.CartRepository
	Products repositories.ProductRepository
}

// NewCartController creates a new CartController
func NewCartController(carts repositories.CartRepository, products repositories.ProductRepository) *CartController {
	return &CartController{Carts: carts, Products: products}
}

func claimUserID(r *http.Request) (primitive.ObjectID, *auth.Claims, error) {
	claims, ok := middleware.ClaimFrom(r.Context())
	if !ok {
		return primitive.NilObjectID, nil, errors.New("no claim in context")
	}
	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return primitive.NilObjectID, nil, err
	}
	return id, claims, nil
}

// GetCart retrieves the user's cart. A user without a cart document gets an
// empty cart, not an error.
func (cc *CartController) GetCart(w http.ResponseWriter, r *http.Request) {
	userID, _, err := claimUserID(r)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := cc.Carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	} else if err != nil {
		log.Printf("cart lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"cart": cart})
}

// AddToCart adds a product to the user's cart. The stored item is a
// point-in-time snapshot of the product: later price or name edits do not
// change what is already in the cart.
func (cc *CartController) AddToCart(w http.ResponseWriter, r *http.Request) {
	userID, _, err := claimUserID(r)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ProductID string      `json:"product_id"`
		Size      models.Size `json:"size"`
		Quantity  int         `json:"quantity"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if req.Quantity < 1 {
		utils.WriteError(w, http.StatusBadRequest, "Quantity must be at least 1")
		return
	}
	if !req.Size.IsValid() {
		utils.WriteError(w, http.StatusBadRequest, "Invalid size")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := cc.Products.FindByID(ctx, req.ProductID)
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		utils.WriteError(w, http.StatusBadRequest, "Invalid product ID")
		return
	case errors.Is(err, repositories.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "Product not found")
		return
	case err != nil:
		log.Printf("product lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching product")
		return
	}

	price := product.Price
	if variant, ok := product.VariantFor(req.Size); ok {
		price = variant.Price
	}

	item := models.CartItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     price,
		Size:      req.Size,
		Quantity:  req.Quantity,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}

	cart, err := cc.Carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		cart = &models.Cart{UserID: userID, Items: []models.CartItem{}}
	} else if err != nil {
		log.Printf("cart lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	merged := false
	for i, existing := range cart.Items {
		if existing.ProductID == item.ProductID && existing.Size == item.Size {
			cart.Items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, item)
	}

	if err := cc.Carts.Save(ctx, cart); err != nil {
		log.Printf("failed to save cart: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Item added to cart"})
}

// RemoveFromCart removes a product/size line from the user's cart
func (cc *CartController) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	userID, _, err := claimUserID(r)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productIDHex := r.URL.Query().Get("product_id")
	size := models.Size(r.URL.Query().Get("size"))
	productID, err := primitive.ObjectIDFromHex(productIDHex)
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cart, err := cc.Carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "Cart not found")
		return
	}
	if err != nil {
		log.Printf("cart lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	updated := []models.CartItem{}
	for _, item := range cart.Items {
		if item.ProductID == productID && (size == "" || item.Size == size) {
			continue
		}
		updated = append(updated, item)
	}
	cart.Items = updated

	if err := cc.Carts.Save(ctx, cart); err != nil {
		log.Printf("failed to save cart: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error updating cart")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Item removed from cart"})
}
