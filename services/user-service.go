package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/logging"
	"tasklist-project/backend/models"
)

// UserService is the user directory: profile lookup and update, the listing
// used by assignment pickers, and account deletion.
type UserService struct {
	userStore UserStore
	teamStore TeamStore
	taskStore TaskStore
}

func NewUserService(userStore UserStore, teamStore TeamStore, taskStore TaskStore) *UserService {
	return &UserService{
		userStore: userStore,
		teamStore: teamStore,
		taskStore: taskStore,
	}
}

// ResolveUser maps a caller-supplied identifier to a user record. Identifiers
// that are malformed or name no user both report as an unknown user, so a
// caller cannot tell which ids exist.
func (s *UserService) ResolveUser(ctx context.Context, id string) (*models.User, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, apperrors.ErrUnknownUser
	}

	user, err := s.userStore.FindByID(ctx, objectID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnknownUser
		}
		return nil, err
	}
	return user, nil
}

func (s *UserService) GetProfile(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return s.userStore.FindByID(ctx, id)
}

// UpdateProfileRequest carries a partial profile update; nil fields are left
// untouched.
type UpdateProfileRequest struct {
	Name    *string `json:"name"`
	Email   *string `json:"email"`
	Picture *string `json:"picture"`
	Role    *string `json:"role"`
}

func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, req UpdateProfileRequest) (*models.User, error) {
	user, err := s.userStore.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Role != nil && *req.Role != "" && !models.IsValidRole(*req.Role) {
		return nil, apperrors.Validation("invalid role %q", *req.Role)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, apperrors.Validation("name must not be empty")
		}
		user.Name = name
	}
	if req.Email != nil {
		email := models.NormalizeEmail(*req.Email)
		if email == "" {
			return nil, apperrors.Validation("email must not be empty")
		}
		user.Email = email
	}
	if req.Picture != nil {
		user.Picture = *req.Picture
	}
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userStore.Update(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: email already in use", apperrors.ErrConflict)
		}
		return nil, err
	}
	return user, nil
}

// ListUsers returns all users ordered by name, with the caller's own entry
// relabeled so the UI can present "me" semantics.
func (s *UserService) ListUsers(ctx context.Context, callerID primitive.ObjectID) ([]models.UserSummary, error) {
	users, err := s.userStore.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(users))
	for _, user := range users {
		summary := user.Summary()
		if user.ID == callerID {
			summary.Name = "Me"
			summary.IsCurrentUser = true
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

// DeleteAccount removes the user unless other entities still reference them:
// owning or belonging to a team, or holding an unfinished task assignment,
// blocks deletion so no dangling references are left behind.
func (s *UserService) DeleteAccount(ctx context.Context, id primitive.ObjectID) error {
	owned, err := s.teamStore.FindByOwner(ctx, id)
	if err != nil {
		return err
	}
	if len(owned) > 0 {
		return fmt.Errorf("%w: user still owns %d team(s)", apperrors.ErrConflict, len(owned))
	}

	memberOf, err := s.teamStore.FindByMember(ctx, id)
	if err != nil {
		return err
	}
	if len(memberOf) > 0 {
		return fmt.Errorf("%w: user is still a member of %d team(s)", apperrors.ErrConflict, len(memberOf))
	}

	assigned, err := s.taskStore.FindByAssignee(ctx, id)
	if err != nil {
		return err
	}
	for _, task := range assigned {
		if task.Status != models.StatusCompleted {
			return fmt.Errorf("%w: user still has unfinished assigned tasks", apperrors.ErrConflict)
		}
	}

	if err := s.userStore.Delete(ctx, id); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: USER_DELETED, Description: User %s deleted their account", id.Hex())
	return nil
}
