package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"roastery/payment"
	"roastery/repositories"
	"roastery/utils"
)

// PaymentService is the processor client surface the controller needs.
type PaymentService interface {
	CreateSession(ctx context.Context, req payment.SessionRequest) (json.RawMessage, error)
	GetSession(ctx context.Context, sessionID string) (json.RawMessage, error)
}

// CheckoutController bridges the cart to the external payment processor.
type CheckoutController struct {
	Payments PaymentService
	Carts    repositories.CartRepository
}

// NewCheckoutController creates a new CheckoutController
func NewCheckoutController(payments PaymentService, carts repositories.CartRepository) *CheckoutController {
	return &CheckoutController{Payments: payments, Carts: carts}
}

// CreateSession creates a processor checkout session from the user's cart
func (kc *CheckoutController) CreateSession(w http.ResponseWriter, r *http.Request) {
	userID, claims, err := claimUserID(r)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	cart, err := kc.Carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) || (err == nil && len(cart.Items) == 0) {
		utils.WriteError(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if err != nil {
		log.Printf("cart lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}

	req := payment.SessionRequest{CustomerEmail: claims.Email}
	for _, item := range cart.Items {
		req.Items = append(req.Items, payment.SessionItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Price:    item.Price,
		})
	}

	session, err := kc.Payments.CreateSession(ctx, req)
	if err != nil {
		log.Printf("failed to create checkout session: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create checkout session")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(session)
}

// GetSession fetches a checkout session by id. The session payload belongs
// to the processor and is passed through untouched.
func (kc *CheckoutController) GetSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		utils.WriteError(w, http.StatusBadRequest, "session_id query parameter is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()

	session, err := kc.Payments.GetSession(ctx, sessionID)
	if err != nil {
		log.Printf("failed to fetch checkout session: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve checkout session")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(session)
}
