package handlers

import (
	"encoding/json"
	"net/http"

	"tasklist-project/backend/middleware"
	"tasklist-project/backend/models"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// currentUser returns the caller attached by the authorization gate. Handlers
// behind the gate always find one; nil means the route was wired without it.
func currentUser(r *http.Request) *models.User {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		return nil
	}
	return user
}
