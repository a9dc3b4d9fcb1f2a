package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"roastery/auth"
	"roastery/middleware"
	"roastery/models"
	"roastery/repositories"
	"roastery/utils"
)

var validate = validator.New()

// UserController handles registration, login, profile and password reset.
type UserController struct {
	Users        repositories.UserRepository
	Signer       *auth.Signer
	EmailService *utils.EmailService
	AppBaseURL   string
}

// NewUserController creates a new UserController
func NewUserController(users repositories.UserRepository, signer *auth.Signer, emailService *utils.EmailService, appBaseURL string) *UserController {
	return &UserController{
		Users:        users,
		Signer:       signer,
		EmailService: emailService,
		AppBaseURL:   appBaseURL,
	}
}

// Register handles user registration
func (uc *UserController) Register(w http.ResponseWriter, r *http.Request) {
	var user models.User
	if err := json.NewDecoder(r.Body).Decode(&user); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	user.Email = models.NormalizeEmail(user.Email)
	if err := validate.Struct(&user); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	_, err := uc.Users.FindByEmail(ctx, user.Email)
	if err == nil {
		utils.WriteError(w, http.StatusBadRequest, "User already exists")
		return
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("registration lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}
	user.Password = string(hashedPassword)
	user.Role = auth.RoleUser // registration never grants admin

	if _, err := uc.Users.Insert(ctx, &user); err != nil {
		log.Printf("failed to create user: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error creating user")
		return
	}

	utils.WriteJSON(w, http.StatusCreated, map[string]string{"message": "User registered successfully"})
}

// Login handles user authentication
func (uc *UserController) Login(w http.ResponseWriter, r *http.Request) {
	var creds struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByEmail(ctx, creds.Email)
	if err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	token, err := uc.Signer.Issue(user.ID.Hex(), user.Email, user.Role)
	if err != nil {
		log.Printf("failed to issue token: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Error generating token")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"token": token})
}

// GetProfile retrieves the authenticated user's profile
func (uc *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimFrom(r.Context())
	if !ok {
		utils.WriteError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByEmail(ctx, claims.Email)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.WriteError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		log.Printf("profile lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	user.Password = ""
	user.ResetToken = ""
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// ForgotPassword issues a password reset token and emails a reset link. The
// response is the same whether or not the account exists.
func (uc *UserController) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		utils.WriteError(w, http.StatusBadRequest, "Email is required")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	token := uuid.NewString()
	expiry := time.Now().Add(time.Hour)
	err := uc.Users.SetResetToken(ctx, req.Email, token, expiry)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		log.Printf("failed to set reset token: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	if err == nil && uc.EmailService != nil {
		go func(email, token string) {
			if err := uc.EmailService.SendPasswordResetEmail(email, token, uc.AppBaseURL); err != nil {
				log.Printf("Failed to send reset email to %s: %v", email, err)
			}
		}(models.NormalizeEmail(req.Email), token)
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "If the account exists, a reset link has been sent"})
}

// ResetPassword sets a new password given a valid, unexpired reset token.
func (uc *UserController) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token    string `json:"token"`
		Password string `json:"password" validate:"required,min=8"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		utils.WriteError(w, http.StatusBadRequest, "Invalid input")
		return
	}
	if err := validate.Struct(&req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Password must be at least 8 characters")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	user, err := uc.Users.FindByResetToken(ctx, req.Token)
	if errors.Is(err, repositories.ErrNotFound) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}
	if err != nil {
		log.Printf("reset token lookup failed: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		utils.WriteError(w, http.StatusBadRequest, "Invalid or expired reset token")
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.WriteError(w, http.StatusInternalServerError, "Error hashing password")
		return
	}

	if err := uc.Users.UpdatePassword(ctx, user.ID, string(hashedPassword)); err != nil {
		log.Printf("failed to update password: %v", err)
		utils.WriteError(w, http.StatusInternalServerError, "Database error")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]string{"message": "Password updated successfully"})
}
