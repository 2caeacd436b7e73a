package repositories

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/models"
)

type TeamRepo struct {
	collection *mongo.Collection
}

func NewTeamRepo(collection *mongo.Collection) *TeamRepo {
	return &TeamRepo{collection: collection}
}

func (r *TeamRepo) Insert(ctx context.Context, team *models.Team) error {
	now := time.Now()
	team.CreatedAt = now
	team.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, team)
	if err != nil {
		return classifyError(err)
	}
	team.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *TeamRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Team, error) {
	var team models.Team
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&team); err != nil {
		return nil, classifyError(err)
	}
	return &team, nil
}

// FindByOwner returns the teams created by owner, newest first.
func (r *TeamRepo) FindByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Team, error) {
	return r.find(ctx, bson.M{"createdBy": owner})
}

// FindByMember returns the teams that list member among their members, newest first.
func (r *TeamRepo) FindByMember(ctx context.Context, member primitive.ObjectID) ([]models.Team, error) {
	return r.find(ctx, bson.M{"members": member})
}

func (r *TeamRepo) find(ctx context.Context, filter bson.M) ([]models.Team, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"createdAt": -1}))
	if err != nil {
		return nil, classifyError(err)
	}
	defer cursor.Close(ctx)

	var teams []models.Team
	if err := cursor.All(ctx, &teams); err != nil {
		return nil, classifyError(err)
	}
	return teams, nil
}

func (r *TeamRepo) Update(ctx context.Context, team *models.Team) error {
	team.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": team.ID}, team)
	if err != nil {
		return classifyError(err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TeamRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classifyError(err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
