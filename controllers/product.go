package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"roastery/models"
	"roastery/repositories"
	"roastery/utils"
)

// ProductController handles catalog requests
type ProductController struct {
	Products repositories.ProductRepository
}

// NewProductController creates a new ProductController
func NewProductController(products repositories.ProductRepository) *ProductController {
	return &ProductController{Products: products}
}

// GetProducts retrieves the full catalog
func (pc *ProductController) GetProducts(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	products, err := pc.Products.FindAll(ctx)
	if err != nil {
		log.Printf("failed to fetch products: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error fetching products")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"products": products})
}

// GetProductByID retrieves a single product. The catalog is public; no
// authorization applies here.
func (pc *ProductController) GetProductByID(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		utils.WriteError(w, http.StatusBadRequest, "Product ID is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	product, err := pc.Products.FindByID(ctx, id)
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

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"product": product})
}

// CreateProduct handles adding a new product (Admin only)
func (pc *ProductController) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(&product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	id, err := pc.Products.Insert(ctx, &product)
	if err != nil {
		log.Printf("failed to create product: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error creating product")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{"id": id.Hex()})
}

// UpdateProduct handles updating a product (Admin only)
func (pc *ProductController) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	var product models.Product
	if err := json.NewDecoder(r.Body).Decode(&product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(&product); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := pc.Products.Update(ctx, id, &product)
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		utils.WriteError(w, http.StatusBadRequest, "Invalid product ID")
		return
	case errors.Is(err, repositories.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "Product not found")
		return
	case err != nil:
		log.Printf("failed to update product: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error updating product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Product updated"})
}

// DeleteProduct handles deleting a product (Admin only)
func (pc *ProductController) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	err := pc.Products.Delete(ctx, id)
	switch {
	case errors.Is(err, repositories.ErrInvalidID):
		utils.WriteError(w, http.StatusBadRequest, "Invalid product ID")
		return
	case errors.Is(err, repositories.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, "Product not found")
		return
	case err != nil:
		log.Printf("failed to delete product: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error deleting product")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Product deleted"})
}
