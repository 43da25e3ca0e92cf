package handlers

import (
	"encoding/json"
	"net/http"

	"botvance_backend/internal/models"
	"botvance_backend/internal/services"

	"github.com/go-playground/validator/v10"
)

type AuthHandler struct {
	authService *services.AuthService
	validate    *validator.Validate
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validate:    validator.New(),
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.UserRegister
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.authService.SignUp(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"message": "User registered successfully",
		"user":    user,
	})
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.UserLogin
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	token, user, err := h.authService.Login(req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Login successful",
		"token":   token,
		"user":    user,
	})
}

// Logout handles POST /api/auth/logout. Sessions are stateless bearer
// tokens, so logout is the client discarding its token; the endpoint exists
// so the dashboard has an explicit sign-out call.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if _, err := authenticate(r, h.authService); err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Logged out",
	})
}

// GetProfile handles GET /api/auth/profile
func (h *AuthHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	profile, err := h.authService.GetProfile(claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Profile not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"profile": profile,
	})
}

// UpdateProfile handles PUT /api/auth/profile
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	var req models.ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	profile, err := h.authService.UpdateProfile(claims.UserID, req)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to update profile")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// GetAccount handles GET /api/account: the account panel's combined profile
// and subscription view.
func (h *AuthHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	claims, err := authenticate(r, h.authService)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	account, err := h.authService.GetAccount(claims.UserID)
	if err != nil {
		writeError(w, http.StatusNotFound, "Account information not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"account": account,
	})
}
