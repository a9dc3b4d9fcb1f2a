package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"roastery/events"
	"roastery/middleware"
	"roastery/models"
	"roastery/repositories"
	"roastery/utils"
)

// Free shipping above this subtotal; flat rate otherwise.
const (
	freeShippingThreshold = 50.0
	flatShippingRate      = 5.99
)

// OrderEventPublisher publishes order lifecycle events.
type OrderEventPublisher interface {
	PublishOrderCreated(evt events.OrderCreated) error
}

// OrderController handles checkout and order history
type OrderController struct {
	Orders       repositories.OrderRepository
	Carts        repositories.CartRepository
	Publisher    OrderEventPublisher
	EmailService *utils.EmailService
}

// NewOrderController creates a new OrderController
func NewOrderController(orders repositories.OrderRepository, carts repositories.CartRepository, publisher OrderEventPublisher, emailService *utils.EmailService) *OrderController {
	return &OrderController{
		Orders:       orders,
		Carts:        carts,
		Publisher:    publisher,
		EmailService: emailService,
	}
}

// CreateOrder places an order from the user's cart. Line items come from the
// cart snapshots, so the charged price is the price at add-to-cart time.
func (oc *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	userID, claims, err := claimUserID(r)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		Address *models.Address `json:"address"`
	}
	// Address is optional; tolerate an empty or absent body.
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		req.Address = nil
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	cart, err := oc.Carts.FindByUser(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.WriteError(w, http.StatusBadRequest, "Cart is empty")
		return
	}
	if err != nil {
		log.Printf("cart lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching cart")
		return
	}
	if len(cart.Items) == 0 {
		utils.WriteError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	subtotal := 0.0
	items := make([]models.OrderItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		subtotal += item.Price * float64(item.Quantity)
		items = append(items, models.OrderItem{
			Name:     item.Name,
			Quantity: item.Quantity,
			Size:     item.Size,
			Price:    item.Price,
		})
	}
	shipping := flatShippingRate
	if subtotal >= freeShippingThreshold {
		shipping = 0
	}

	order := &models.Order{
		CustomerEmail: claims.Email,
		Items:         items,
		Subtotal:      subtotal,
		Shipping:      shipping,
		Total:         subtotal + shipping,
		Address:       req.Address,
	}

	orderID, err := oc.Orders.Insert(ctx, order)
	if err != nil {
		log.Printf("failed to create order: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to create order")
		return
	}
	order.ID = orderID

	// The order is durable at this point; event and email failures are
	// logged, never surfaced.
	if oc.Publisher != nil {
		evt := events.OrderCreated{
			OrderID:       orderID.Hex(),
			CustomerEmail: order.CustomerEmail,
			Total:         order.Total,
			CreatedAt:     order.CreatedAt,
		}
		if err := oc.Publisher.PublishOrderCreated(evt); err != nil {
			log.Printf("failed to publish order event: %v", err)
		}
	}
	if oc.EmailService != nil {
		go func(email string, order models.Order) {
			if err := oc.EmailService.SendOrderConfirmationEmail(email, order); err != nil {
				log.Printf("Failed to send email to %s: %v", email, err)
			}
		}(order.CustomerEmail, *order)
	}

	if err := oc.Carts.Clear(ctx, userID); err != nil {
		log.Printf("failed to clear cart for %s: %v", claims.Email, err)
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"order_id": orderID.Hex(),
		"subtotal": order.Subtotal,
		"shipping": order.Shipping,
		"total":    order.Total,
	})
}

// GetOrdersByCustomer lists a customer's orders, newest first. The email
// query parameter is required; non-admin callers may only query their own
// email.
func (oc *OrderController) GetOrdersByCustomer(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		utils.WriteError(w, http.StatusBadRequest, "Email query parameter is required")
		return
	}

	claims, ok := middleware.ClaimFrom(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	email = models.NormalizeEmail(email)
	if email != models.NormalizeEmail(claims.Email) && !claims.IsAdmin() {
		utils.WriteError(w, http.StatusForbidden, "Cannot view another customer's orders")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	orders, err := oc.Orders.FindByCustomer(ctx, email)
	if err != nil {
		log.Printf("failed to retrieve orders: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve orders")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}
