// main.go
package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"

	"roastery/auth"
	"roastery/config"
	"roastery/controllers"
	"roastery/events"
	"roastery/payment"
	"roastery/repositories"
	"roastery/routes"
	"roastery/stats"
	"roastery/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Connect to MongoDB
	client, err := utils.ConnectDB(cfg.MongoURI)
	if err != nil {
		log.Fatal(err)
	}
	defer func() {
		if err := client.Disconnect(context.TODO()); err != nil {
			log.Printf("Error disconnecting from MongoDB: %v", err)
		}
	}()
	db := client.Database(cfg.DBName)

	// Order event publisher; the API still serves if the broker is down.
	var publisher controllers.OrderEventPublisher
	if p, err := events.NewPublisher(cfg.AMQPURL); err != nil {
		log.Printf("Order events disabled: %v", err)
	} else {
		publisher = p
		defer p.Close()
	}

	emailService := utils.NewEmailService(cfg.SendgridKey, cfg.EmailSender)
	paymentClient := payment.NewClient(cfg.PaymentAPIURL, cfg.PaymentAPIKey)

	signer := auth.NewSigner([]byte(cfg.JWTSecret), cfg.TokenTTL)
	verifier := auth.NewHMACVerifier([]byte(cfg.JWTSecret))

	// Repositories
	userRepo := repositories.NewMongoUserRepository(db)
	productRepo := repositories.NewMongoProductRepository(db)
	orderRepo := repositories.NewMongoOrderRepository(db)
	cartRepo := repositories.NewMongoCartRepository(db)
	favoritesRepo := repositories.NewMongoSavedListRepository(db, "favorites")
	wishlistRepo := repositories.NewMongoSavedListRepository(db, "wishlists")

	// Controllers
	userController := controllers.NewUserController(userRepo, signer, emailService, cfg.AppBaseURL)
	productController := controllers.NewProductController(productRepo)
	cartController := controllers.NewCartController(cartRepo, productRepo)
	listController := controllers.NewSavedListController(favoritesRepo, wishlistRepo, productRepo)
	orderController := controllers.NewOrderController(orderRepo, cartRepo, publisher, emailService)
	adminController := controllers.NewAdminController(stats.NewMongoSource(db), userRepo)
	checkoutController := controllers.NewCheckoutController(paymentClient, cartRepo)

	// Set up the router
	router := mux.NewRouter()
	routes.RegisterRoutes(router, verifier,
		userController, productController, cartController, listController,
		orderController, adminController, checkoutController)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		fmt.Printf("Server is running on port %s\n", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("Error during server shutdown: %v", err)
	}
	log.Println("Server gracefully stopped")
}
