package routes

import (
	"github.com/gorilla/mux"

	"roastery/auth"
	"roastery/controllers"
	"roastery/middleware"
)

// RegisterRoutes sets up all the routes for the application
func RegisterRoutes(
	router *mux.Router,
	verifier auth.Verifier,
	userController *controllers.UserController,
	productController *controllers.ProductController,
	cartController *controllers.CartController,
	listController *controllers.SavedListController,
	orderController *controllers.OrderController,
	adminController *controllers.AdminController,
	checkoutController *controllers.CheckoutController,
) {
	api := router.PathPrefix("/api").Subrouter()

	// Public routes
	api.HandleFunc("/register", userController.Register).Methods("POST")
	api.HandleFunc("/login", userController.Login).Methods("POST")
	api.HandleFunc("/password/forgot", userController.ForgotPassword).Methods("POST")
	api.HandleFunc("/password/reset", userController.ResetPassword).Methods("POST")
	api.HandleFunc("/products", productController.GetProducts).Methods("GET")
	api.HandleFunc("/products/{id}", productController.GetProductByID).Methods("GET")
	api.HandleFunc("/checkout/session", checkoutController.GetSession).Methods("GET")

	// Protected routes
	protected := api.PathPrefix("/").Subrouter()
	protected.Use(middleware.Authenticate(verifier))
	protected.HandleFunc("/profile", userController.GetProfile).Methods("GET")
	protected.HandleFunc("/cart", cartController.GetCart).Methods("GET")
	protected.HandleFunc("/cart", cartController.AddToCart).Methods("POST")
	protected.HandleFunc("/cart", cartController.RemoveFromCart).Methods("DELETE")
	protected.HandleFunc("/favorites", listController.GetFavorites).Methods("GET")
	protected.HandleFunc("/favorites", listController.AddFavorite).Methods("POST")
	protected.HandleFunc("/favorites", listController.RemoveFavorite).Methods("DELETE")
	protected.HandleFunc("/wishlist", listController.GetWishlist).Methods("GET")
	protected.HandleFunc("/wishlist", listController.AddToWishlist).Methods("POST")
	protected.HandleFunc("/wishlist", listController.RemoveFromWishlist).Methods("DELETE")
	protected.HandleFunc("/orders", orderController.CreateOrder).Methods("POST")
	protected.HandleFunc("/orders/user", orderController.GetOrdersByCustomer).Methods("GET")
	protected.HandleFunc("/checkout/session", checkoutController.CreateSession).Methods("POST")

	// Admin routes: the admin guard layers the role check on top of the
	// authentication guard, it never re-verifies the token.
	admin := api.PathPrefix("/admin").Subrouter()
	admin.Use(middleware.Authenticate(verifier))
	admin.Use(middleware.RequireAdmin)
	admin.HandleFunc("/stats", adminController.GetStats).Methods("GET")
	admin.HandleFunc("/users", adminController.GetUsers).Methods("GET")
	admin.HandleFunc("/verify", adminController.Verify).Methods("GET")

	// Admin catalog management
	adminProducts := api.PathPrefix("/products").Subrouter()
	adminProducts.Use(middleware.Authenticate(verifier))
	adminProducts.Use(middleware.RequireAdmin)
	adminProducts.HandleFunc("", productController.CreateProduct).Methods("POST")
	adminProducts.HandleFunc("/{id}", productController.UpdateProduct).Methods("PUT")
	adminProducts.HandleFunc("/{id}", productController.DeleteProduct).Methods("DELETE")
}
