package services

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/logging"
	"tasklist-project/backend/models"
)

// TeamService owns team entities and enforces owner-only mutation.
type TeamService struct {
	teamStore TeamStore
	userStore UserStore
}

func NewTeamService(teamStore TeamStore, userStore UserStore) *TeamService {
	return &TeamService{
		teamStore: teamStore,
		userStore: userStore,
	}
}

type CreateTeamRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Image       string   `json:"image"`
	Members     []string `json:"members"`
}

// UpdateTeamRequest carries a partial team update; nil fields keep their
// prior value.
type UpdateTeamRequest struct {
	Name        *string   `json:"name"`
	Description *string   `json:"description"`
	Image       *string   `json:"image"`
	Members     *[]string `json:"members"`
}

func validateTeamName(name string) error {
	length := len(strings.TrimSpace(name))
	if length < models.TeamNameMinLength || length > models.TeamNameMaxLength {
		return apperrors.Validation("team name must be between %d and %d characters", models.TeamNameMinLength, models.TeamNameMaxLength)
	}
	return nil
}

func validateTeamDescription(description string) error {
	if description == "" {
		return nil
	}
	if len(description) < models.TeamDescriptionMinLength || len(description) > models.TeamDescriptionMaxLength {
		return apperrors.Validation("team description must be between %d and %d characters", models.TeamDescriptionMinLength, models.TeamDescriptionMaxLength)
	}
	return nil
}

// resolveMembers parses and resolves a set of member ids, failing validation
// when any id is malformed or names no existing user.
func (s *TeamService) resolveMembers(ctx context.Context, memberIDs []string) ([]primitive.ObjectID, error) {
	if len(memberIDs) == 0 {
		return nil, apperrors.Validation("a team must have at least one member")
	}

	ids := make([]primitive.ObjectID, 0, len(memberIDs))
	for _, raw := range memberIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, apperrors.Validation("invalid member id %q", raw)
		}
		ids = append(ids, id)
	}

	users, err := s.userStore.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		return nil, apperrors.Validation("one or more members do not exist")
	}
	return ids, nil
}

func (s *TeamService) CreateTeam(ctx context.Context, ownerID primitive.ObjectID, req CreateTeamRequest) (*models.TeamDetails, error) {
	if err := validateTeamName(req.Name); err != nil {
		return nil, err
	}
	if err := validateTeamDescription(req.Description); err != nil {
		return nil, err
	}

	members, err := s.resolveMembers(ctx, req.Members)
	if err != nil {
		return nil, err
	}

	team := &models.Team{
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Image:       req.Image,
		CreatedBy:   ownerID,
		Members:     members,
	}
	if err := s.teamStore.Insert(ctx, team); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: TEAM_CREATED, Description: Team %s created by user %s", team.ID.Hex(), ownerID.Hex())
	return s.expandTeam(ctx, team)
}

func (s *TeamService) UpdateTeam(ctx context.Context, callerID, teamID primitive.ObjectID, req UpdateTeamRequest) (*models.TeamDetails, error) {
	team, err := s.teamStore.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team.CreatedBy != callerID {
		return nil, apperrors.ErrForbidden
	}

	if req.Name != nil {
		if err := validateTeamName(*req.Name); err != nil {
			return nil, err
		}
		team.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		if err := validateTeamDescription(*req.Description); err != nil {
			return nil, err
		}
		team.Description = strings.TrimSpace(*req.Description)
	}
	if req.Image != nil {
		team.Image = *req.Image
	}
	if req.Members != nil {
		members, err := s.resolveMembers(ctx, *req.Members)
		if err != nil {
			return nil, err
		}
		team.Members = members
	}

	if err := s.teamStore.Update(ctx, team); err != nil {
		return nil, err
	}
	return s.expandTeam(ctx, team)
}

func (s *TeamService) DeleteTeam(ctx context.Context, callerID, teamID primitive.ObjectID) error {
	team, err := s.teamStore.FindByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team.CreatedBy != callerID {
		return apperrors.ErrForbidden
	}

	if err := s.teamStore.Delete(ctx, teamID); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: TEAM_DELETED, Description: Team %s deleted by user %s", teamID.Hex(), callerID.Hex())
	return nil
}

// ListTeamsOwnedBy returns the caller's own teams, newest first.
func (s *TeamService) ListTeamsOwnedBy(ctx context.Context, userID primitive.ObjectID) ([]models.TeamDetails, error) {
	teams, err := s.teamStore.FindByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.expandTeams(ctx, teams)
}

// ListTeamsWithMember returns the teams the user belongs to, owned or not.
func (s *TeamService) ListTeamsWithMember(ctx context.Context, userID primitive.ObjectID) ([]models.TeamDetails, error) {
	teams, err := s.teamStore.FindByMember(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.expandTeams(ctx, teams)
}

func (s *TeamService) expandTeam(ctx context.Context, team *models.Team) (*models.TeamDetails, error) {
	details, err := s.expandTeams(ctx, []models.Team{*team})
	if err != nil {
		return nil, err
	}
	return &details[0], nil
}

// expandTeams replaces member/owner references with profile summaries using a
// single user lookup across all teams.
func (s *TeamService) expandTeams(ctx context.Context, teams []models.Team) ([]models.TeamDetails, error) {
	seen := make(map[primitive.ObjectID]bool)
	var ids []primitive.ObjectID
	for _, team := range teams {
		for _, id := range team.Members {
			if !seen[id] {
				seen[id] = true
				ids = append(ids, id)
			}
		}
		if !seen[team.CreatedBy] {
			seen[team.CreatedBy] = true
			ids = append(ids, team.CreatedBy)
		}
	}

	byID := make(map[primitive.ObjectID]models.UserSummary, len(ids))
	if len(ids) > 0 {
		users, err := s.userStore.FindByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for _, user := range users {
			byID[user.ID] = user.Summary()
		}
	}

	details := make([]models.TeamDetails, 0, len(teams))
	for _, team := range teams {
		members := make([]models.UserSummary, 0, len(team.Members))
		for _, id := range team.Members {
			members = append(members, byID[id])
		}
		details = append(details, models.TeamDetails{
			ID:          team.ID,
			Name:        team.Name,
			Description: team.Description,
			Image:       team.Image,
			CreatedBy:   byID[team.CreatedBy],
			Members:     members,
			CreatedAt:   team.CreatedAt,
			UpdatedAt:   team.UpdatedAt,
		})
	}
	return details, nil
}
