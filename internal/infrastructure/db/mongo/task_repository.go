package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taskboard/taskboard/internal/core/domain"
)

const collectionTasks = "tasks"

// TaskRepository stores tasks as documents keyed by task id. Every write is
// filtered by both _id and user_id.
type TaskRepository struct {
	col *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{col: db.Collection(collectionTasks)}
}

// ListByUser returns the user's tasks ordered by created_at descending.
func (r *TaskRepository) ListByUser(ctx context.Context, userID string) ([]domain.Task, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find tasks: %w", err)
	}
	defer cur.Close(ctx)

	tasks := make([]domain.Task, 0)
	if err := cur.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) Insert(ctx context.Context, task domain.Task) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("insert task: %w", err)
	}
	return nil
}

// Update sets only the fields present in patch. A filter that matches nothing
// is not an error.
func (r *TaskRepository) Update(ctx context.Context, id, userID string, patch domain.TaskPatch) error {
	set := patchDocument(patch)
	if len(set) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.UpdateOne(ctx, ownedBy(id, userID), bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("update task: %w", err)
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id, userID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, ownedBy(id, userID)); err != nil {
		return fmt.Errorf("delete task: %w", err)
	}
	return nil
}

// EnsureIndexes creates the listing index on the tasks collection.
func (r *TaskRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("task indexes: %w", err)
	}
	return nil
}

func ownedBy(id, userID string) bson.M {
	return bson.M{"_id": id, "user_id": userID}
}

func patchDocument(p domain.TaskPatch) bson.M {
	set := bson.M{}
	if p.Title != nil {
		set["title"] = *p.Title
	}
	if p.Description != nil {
		set["description"] = *p.Description
	}
	if p.Completed != nil {
		set["completed"] = *p.Completed
	}
	if p.Priority != nil {
		set["priority"] = string(*p.Priority)
	}
	return set
}
