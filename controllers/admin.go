package controllers

import (
	"context"
	"log"
	"net/http"
	"time"

	"roastery/middleware"
	"roastery/repositories"
	"roastery/stats"
	"roastery/utils"
)

// AdminController serves the dashboard endpoints. Every route here sits
// behind the admin guard chain.
type AdminController struct {
	Stats stats.Source
	Users repositories.UserRepository
}

// NewAdminController creates a new AdminController
func NewAdminController(source stats.Source, users repositories.UserRepository) *AdminController {
	return &AdminController{Stats: source, Users: users}
}

// GetStats returns the dashboard summary. The four underlying queries run in
// parallel; any failure yields a single 500 with no partial body.
func (ac *AdminController) GetStats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	summary, err := stats.Report(ctx, ac.Stats)
	if err != nil {
		log.Printf("stats aggregation failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to compute statistics")
		return
	}

	utils.WriteJSON(w, http.StatusOK, summary)
}

// GetUsers lists all users, newest first, passwords excluded
func (ac *AdminController) GetUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	users, err := ac.Users.FindAll(ctx)
	if err != nil {
		log.Printf("user listing failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Failed to retrieve users")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// Verify echoes the authenticated admin claim so the dashboard can confirm
// its session without another round trip.
func (ac *AdminController) Verify(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimFrom(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    claims,
	})
}
