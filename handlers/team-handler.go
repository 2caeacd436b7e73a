package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/services"
)

type TeamHandler struct {
	TeamService *services.TeamService
}

func NewTeamHandler(teamService *services.TeamService) *TeamHandler {
	return &TeamHandler{TeamService: teamService}
}

// ListTeams returns the teams the caller owns, newest first.
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	teams, err := h.TeamService.ListTeamsOwnedBy(r.Context(), caller.ID)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// ListMemberTeams returns the teams the caller belongs to.
func (h *TeamHandler) ListMemberTeams(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	teams, err := h.TeamService.ListTeamsWithMember(r.Context(), caller.ID)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"teams": teams})
}

// CreateTeam creates a team with the caller as owner.
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	var req services.CreateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.Validation("invalid request payload"))
		return
	}

	team, err := h.TeamService.CreateTeam(r.Context(), caller.ID, req)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Team created successfully",
		"team":    team,
	})
}

// UpdateTeam applies a partial update to a team; owner only.
func (h *TeamHandler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	teamID, err := primitive.ObjectIDFromHex(mux.Vars(r)["teamId"])
	if err != nil {
		apperrors.WriteJSON(w, apperrors.Validation("invalid team id"))
		return
	}

	var req services.UpdateTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.Validation("invalid request payload"))
		return
	}

	team, err := h.TeamService.UpdateTeam(r.Context(), caller.ID, teamID, req)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Team updated successfully",
		"team":    team,
	})
}

// DeleteTeam removes a team permanently; owner only.
func (h *TeamHandler) DeleteTeam(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	teamID, err := primitive.ObjectIDFromHex(mux.Vars(r)["teamId"])
	if err != nil {
		apperrors.WriteJSON(w, apperrors.Validation("invalid team id"))
		return
	}

	if err := h.TeamService.DeleteTeam(r.Context(), caller.ID, teamID); err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Team deleted successfully"})
}
