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

type TaskRepo struct {
	collection *mongo.Collection
}

func NewTaskRepo(collection *mongo.Collection) *TaskRepo {
	return &TaskRepo{collection: collection}
}

// EnsureIndexes creates the lookup indexes used by the filtered listings.
func (r *TaskRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.collection.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.M{"createdBy": 1}},
		{Keys: bson.M{"assignedTo": 1}},
		{Keys: bson.M{"status": 1}},
		{Keys: bson.M{"dueDate": 1}},
	})
	return classifyError(err)
}

func (r *TaskRepo) Insert(ctx context.Context, task *models.Task) error {
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return classifyError(err)
	}
	task.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (r *TaskRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	if err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task); err != nil {
		return nil, classifyError(err)
	}
	return &task, nil
}

// FindByAssignee returns tasks assigned to user, due date ascending.
func (r *TaskRepo) FindByAssignee(ctx context.Context, user primitive.ObjectID) ([]models.Task, error) {
	return r.find(ctx, bson.M{"assignedTo": user})
}

// FindByCreator returns tasks created by user, due date ascending.
func (r *TaskRepo) FindByCreator(ctx context.Context, user primitive.ObjectID) ([]models.Task, error) {
	return r.find(ctx, bson.M{"createdBy": user})
}

func (r *TaskRepo) find(ctx context.Context, filter bson.M) ([]models.Task, error) {
	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.M{"dueDate": 1}))
	if err != nil {
		return nil, classifyError(err)
	}
	defer cursor.Close(ctx)

	var tasks []models.Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, classifyError(err)
	}
	return tasks, nil
}

func (r *TaskRepo) Update(ctx context.Context, task *models.Task) error {
	task.UpdatedAt = time.Now()

	result, err := r.collection.ReplaceOne(ctx, bson.M{"_id": task.ID}, task)
	if err != nil {
		return classifyError(err)
	}
	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *TaskRepo) Delete(ctx context.Context, id primitive.ObjectID) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return classifyError(err)
	}
	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
