package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"roastery/models"
	"roastery/repositories"
	"roastery/utils"
)

// SavedListController serves favorites and wishlist, which share the same
// one-document-per-owner shape and differ only in the backing collection.
type SavedListController struct {
	Favorites repositories.SavedListRepository
	Wishlists repositories.SavedListRepository
	Products  repositories.ProductRepository
}

// NewSavedListController creates a new SavedListController
func NewSavedListController(favorites, wishlists repositories.SavedListRepository, products repositories.ProductRepository) *SavedListController {
	return &SavedListController{Favorites: favorites, Wishlists: wishlists, Products: products}
}

func (sc *SavedListController) GetFavorites(w http.ResponseWriter, r *http.Request) {
	sc.getList(w, r, sc.Favorites, "favorites")
}

func (sc *SavedListController) AddFavorite(w http.ResponseWriter, r *http.Request) {
	sc.addItem(w, r, sc.Favorites)
}

func (sc *SavedListController) RemoveFavorite(w http.ResponseWriter, r *http.Request) {
	sc.removeItem(w, r, sc.Favorites)
}

func (sc *SavedListController) GetWishlist(w http.ResponseWriter, r *http.Request) {
	sc.getList(w, r, sc.Wishlists, "wishlist")
}

func (sc *SavedListController) AddToWishlist(w http.ResponseWriter, r *http.Request) {
	sc.addItem(w, r, sc.Wishlists)
}

func (sc *SavedListController) RemoveFromWishlist(w http.ResponseWriter, r *http.Request) {
	sc.removeItem(w, r, sc.Wishlists)
}

func (sc *SavedListController) getList(w http.ResponseWriter, r *http.Request, repo repositories.SavedListRepository, key string) {
	userID, _, err := claimUserID(r)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	items, err := repo.FindByUser(ctx, userID)
	if err != nil {
		log.Printf("saved list lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching list")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{key: items})
}

func (sc *SavedListController) addItem(w http.ResponseWriter, r *http.Request, repo repositories.SavedListRepository) {
	userID, _, err := claimUserID(r)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.ProductID == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := sc.Products.FindByID(ctx, req.ProductID)
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

	item := models.ListItem{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
	}
	if len(product.Images) > 0 {
		item.Image = product.Images[0]
	}

	if err := repo.AddItem(ctx, userID, item); err != nil {
		log.Printf("failed to save list item: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error updating list")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Item added"})
}

func (sc *SavedListController) removeItem(w http.ResponseWriter, r *http.Request, repo repositories.SavedListRepository) {
	userID, _, err := claimUserID(r)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	productID, err := primitive.ObjectIDFromHex(r.URL.Query().Get("product_id"))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := repo.RemoveItem(ctx, userID, productID); err != nil {
		log.Printf("failed to remove list item: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error updating list")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Item removed"})
}
