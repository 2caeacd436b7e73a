package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in_progress"
	StatusCompleted  TaskStatus = "completed"
)

// IsValidTaskStatus reports whether status is one of the three task states.
func IsValidTaskStatus(status TaskStatus) bool {
	return status == StatusPending || status == StatusInProgress || status == StatusCompleted
}

const (
	TaskTitleMinLength       = 3
	TaskTitleMaxLength       = 30
	TaskDescriptionMaxLength = 50
	CompletionNoteMaxLength  = 200
)

// CompletionRecord is an append-only entry capturing who marked a task
// complete, when, and optional evidence. At most one record per user.
type CompletionRecord struct {
	User             primitive.ObjectID `bson:"user" json:"user"`
	CompletedAt      time.Time          `bson:"completedAt" json:"completedAt"`
	CompletionNote   string             `bson:"completionNote,omitempty" json:"completionNote,omitempty"`
	CompletionImages []string           `bson:"completionImages,omitempty" json:"completionImages,omitempty"`
}

type Task struct {
	ID           primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Title        string               `bson:"title" json:"title"`
	Description  string               `bson:"description,omitempty" json:"description,omitempty"`
	Image        string               `bson:"image,omitempty" json:"image,omitempty"`
	Status       TaskStatus           `bson:"status" json:"status"`
	CreatedBy    primitive.ObjectID   `bson:"createdBy" json:"createdBy"`
	AssignedTo   []primitive.ObjectID `bson:"assignedTo" json:"assignedTo"`
	DueDate      time.Time            `bson:"dueDate" json:"dueDate"`
	DueTimeStart string               `bson:"dueTimeStart,omitempty" json:"dueTimeStart,omitempty"`
	DueTimeEnd   string               `bson:"dueTimeEnd,omitempty" json:"dueTimeEnd,omitempty"`
	CompletedBy  []CompletionRecord   `bson:"completedBy,omitempty" json:"completedBy,omitempty"`
	CreatedAt    time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time            `bson:"updatedAt" json:"updatedAt"`
}

// IsAssignee reports whether userID is in the task's assignee list.
func (t *Task) IsAssignee(userID primitive.ObjectID) bool {
	for _, id := range t.AssignedTo {
		if id == userID {
			return true
		}
	}
	return false
}

// HasCompletionFrom reports whether userID already appended a completion record.
func (t *Task) HasCompletionFrom(userID primitive.ObjectID) bool {
	for _, record := range t.CompletedBy {
		if record.User == userID {
			return true
		}
	}
	return false
}
