package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/models"
)

// In-memory stores standing in for the mongo repositories, mirroring their
// behavior: generated ids, timestamps, unique-email conflicts, not-found on
// absent ids.

type fakeUserStore struct {
	users map[primitive.ObjectID]models.User
	down  bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[primitive.ObjectID]models.User)}
}

func (s *fakeUserStore) fail() error {
	if s.down {
		return fmt.Errorf("%w: connection refused", apperrors.ErrDependencyUnavailable)
	}
	return nil
}

func (s *fakeUserStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &user, nil
}

func (s *fakeUserStore) FindByGoogleID(_ context.Context, googleID string) (*models.User, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	for _, user := range s.users {
		if user.GoogleID == googleID {
			u := user
			return &u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (s *fakeUserStore) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	var users []models.User
	for _, id := range ids {
		if user, ok := s.users[id]; ok {
			users = append(users, user)
		}
	}
	return users, nil
}

func (s *fakeUserStore) FindAll(_ context.Context) ([]models.User, error) {
	if err := s.fail(); err != nil {
		return nil, err
	}
	users := make([]models.User, 0, len(s.users))
	for _, user := range s.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return users, nil
}

// emailTaken matches case-insensitively, mirroring the collation on the
// repository's unique email index.
func (s *fakeUserStore) emailTaken(email string, except primitive.ObjectID) bool {
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) && user.ID != except {
			return true
		}
	}
	return false
}

func (s *fakeUserStore) Insert(_ context.Context, user *models.User) error {
	if err := s.fail(); err != nil {
		return err
	}
	if s.emailTaken(user.Email, primitive.NilObjectID) {
		return apperrors.ErrConflict
	}
	user.ID = primitive.NewObjectID()
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) Update(_ context.Context, user *models.User) error {
	if err := s.fail(); err != nil {
		return err
	}
	if _, ok := s.users[user.ID]; !ok {
		return apperrors.ErrNotFound
	}
	if s.emailTaken(user.Email, user.ID) {
		return apperrors.ErrConflict
	}
	user.UpdatedAt = time.Now()
	s.users[user.ID] = *user
	return nil
}

func (s *fakeUserStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if err := s.fail(); err != nil {
		return err
	}
	if _, ok := s.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.users, id)
	return nil
}

func (s *fakeUserStore) add(name, email string) *models.User {
	user := &models.User{GoogleID: "google-" + email, Email: email, Name: name}
	s.Insert(context.Background(), user)
	return user
}

type fakeTeamStore struct {
	teams map[primitive.ObjectID]models.Team
	seq   int
}

func newFakeTeamStore() *fakeTeamStore {
	return &fakeTeamStore{teams: make(map[primitive.ObjectID]models.Team)}
}

func (s *fakeTeamStore) Insert(_ context.Context, team *models.Team) error {
	team.ID = primitive.NewObjectID()
	// Distinct creation times so newest-first ordering is deterministic.
	s.seq++
	team.CreatedAt = time.Unix(int64(s.seq), 0)
	team.UpdatedAt = team.CreatedAt
	s.teams[team.ID] = *team
	return nil
}

func (s *fakeTeamStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Team, error) {
	team, ok := s.teams[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &team, nil
}

func (s *fakeTeamStore) newestFirst(match func(models.Team) bool) []models.Team {
	var teams []models.Team
	for _, team := range s.teams {
		if match(team) {
			teams = append(teams, team)
		}
	}
	sort.Slice(teams, func(i, j int) bool { return teams[i].CreatedAt.After(teams[j].CreatedAt) })
	return teams
}

func (s *fakeTeamStore) FindByOwner(_ context.Context, owner primitive.ObjectID) ([]models.Team, error) {
	return s.newestFirst(func(t models.Team) bool { return t.CreatedBy == owner }), nil
}

func (s *fakeTeamStore) FindByMember(_ context.Context, member primitive.ObjectID) ([]models.Team, error) {
	return s.newestFirst(func(t models.Team) bool {
		for _, id := range t.Members {
			if id == member {
				return true
			}
		}
		return false
	}), nil
}

func (s *fakeTeamStore) Update(_ context.Context, team *models.Team) error {
	if _, ok := s.teams[team.ID]; !ok {
		return apperrors.ErrNotFound
	}
	team.UpdatedAt = time.Now()
	s.teams[team.ID] = *team
	return nil
}

func (s *fakeTeamStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.teams[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.teams, id)
	return nil
}

type fakeTaskStore struct {
	tasks map[primitive.ObjectID]models.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: make(map[primitive.ObjectID]models.Task)}
}

func (s *fakeTaskStore) Insert(_ context.Context, task *models.Task) error {
	task.ID = primitive.NewObjectID()
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	s.tasks[task.ID] = *task
	return nil
}

func (s *fakeTaskStore) FindByID(_ context.Context, id primitive.ObjectID) (*models.Task, error) {
	task, ok := s.tasks[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &task, nil
}

func (s *fakeTaskStore) dueDateAsc(match func(models.Task) bool) []models.Task {
	var tasks []models.Task
	for _, task := range s.tasks {
		if match(task) {
			tasks = append(tasks, task)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].DueDate.Before(tasks[j].DueDate) })
	return tasks
}

func (s *fakeTaskStore) FindByAssignee(_ context.Context, user primitive.ObjectID) ([]models.Task, error) {
	return s.dueDateAsc(func(t models.Task) bool {
		for _, id := range t.AssignedTo {
			if id == user {
				return true
			}
		}
		return false
	}), nil
}

func (s *fakeTaskStore) FindByCreator(_ context.Context, user primitive.ObjectID) ([]models.Task, error) {
	return s.dueDateAsc(func(t models.Task) bool { return t.CreatedBy == user }), nil
}

func (s *fakeTaskStore) Update(_ context.Context, task *models.Task) error {
	if _, ok := s.tasks[task.ID]; !ok {
		return apperrors.ErrNotFound
	}
	task.UpdatedAt = time.Now()
	s.tasks[task.ID] = *task
	return nil
}

func (s *fakeTaskStore) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := s.tasks[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// fakeVerifier returns fixed claims, or an error when broken.
type fakeVerifier struct {
	claims *models.GoogleClaims
	err    error
}

func (v *fakeVerifier) Verify(_ context.Context, _ string) (*models.GoogleClaims, error) {
	if v.err != nil {
		return nil, v.err
	}
	return v.claims, nil
}
