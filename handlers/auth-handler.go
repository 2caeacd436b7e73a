package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/services"
)

type AuthHandler struct {
	AuthService *services.AuthService
}

func NewAuthHandler(authService *services.AuthService) *AuthHandler {
	return &AuthHandler{AuthService: authService}
}

// GoogleLogin exchanges a Google identity assertion for the local user record.
func (h *AuthHandler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Credential string `json:"credential"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.Validation("invalid request payload"))
		return
	}

	user, err := h.AuthService.AuthenticateGoogle(r.Context(), req.Credential)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "User authenticated successfully",
		"user":    user,
	})
}
