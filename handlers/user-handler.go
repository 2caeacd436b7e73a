package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/services"
)

type UserHandler struct {
	UserService *services.UserService
}

func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{UserService: userService}
}

// GetMe returns the caller's profile.
func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	user, err := h.UserService.GetProfile(r.Context(), caller.ID)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

// UpdateMe applies a partial update to the caller's profile.
func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	var req services.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.Validation("invalid request payload"))
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), caller.ID, req)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Profile updated successfully",
		"user":    user,
	})
}

// DeleteMe deletes the caller's account unless other entities still reference it.
func (h *UserHandler) DeleteMe(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	if err := h.UserService.DeleteAccount(r.Context(), caller.ID); err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Account deleted successfully"})
}

// ListUsers returns every user for assignment and membership pickers.
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	users, err := h.UserService.ListUsers(r.Context(), caller.ID)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}
