package services

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"tasklist-project/backend/models"
)

// The store interfaces are implemented by the mongo-backed repositories and
// injected at construction, so the registries never touch a database handle
// directly.

type UserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByGoogleID(ctx context.Context, googleID string) (*models.User, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
	FindAll(ctx context.Context) ([]models.User, error)
	Insert(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TeamStore interface {
	Insert(ctx context.Context, team *models.Team) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error)
	FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Team, error)
	FindByMember(ctx context.Context, member primitive.ObjectID) ([]models.Team, error)
	Update(ctx context.Context, team *models.Team) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

type TaskStore interface {
	Insert(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error)
	FindByAssignee(ctx context.Context, user primitive.ObjectID) ([]models.Task, error)
	FindByCreator(ctx context.Context, user primitive.ObjectID) ([]models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}
