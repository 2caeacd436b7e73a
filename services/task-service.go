package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/logging"
	"tasklist-project/backend/models"
)

// TaskService owns task entities, their completion records and the
// creator-only mutation rule.
type TaskService struct {
	taskStore TaskStore
	userStore UserStore
}

func NewTaskService(taskStore TaskStore, userStore UserStore) *TaskService {
	return &TaskService{
		taskStore: taskStore,
		userStore: userStore,
	}
}

type CreateTaskRequest struct {
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	Image        string    `json:"image"`
	AssignedTo   []string  `json:"assignedTo"`
	DueDate      time.Time `json:"dueDate"`
	DueTimeStart string    `json:"dueTimeStart"`
	DueTimeEnd   string    `json:"dueTimeEnd"`
}

// UpdateTaskRequest carries a partial task update; nil fields keep their
// prior value.
type UpdateTaskRequest struct {
	Title        *string            `json:"title"`
	Description  *string            `json:"description"`
	Image        *string            `json:"image"`
	Status       *models.TaskStatus `json:"status"`
	AssignedTo   *[]string          `json:"assignedTo"`
	DueDate      *time.Time         `json:"dueDate"`
	DueTimeStart *string            `json:"dueTimeStart"`
	DueTimeEnd   *string            `json:"dueTimeEnd"`
}

type AppendCompletionRequest struct {
	CompletionNote   string   `json:"completionNote"`
	CompletionImages []string `json:"completionImages"`
}

func validateTaskTitle(title string) error {
	length := len(strings.TrimSpace(title))
	if length < models.TaskTitleMinLength || length > models.TaskTitleMaxLength {
		return apperrors.Validation("task title must be between %d and %d characters", models.TaskTitleMinLength, models.TaskTitleMaxLength)
	}
	return nil
}

func validateTaskDescription(description string) error {
	if len(description) > models.TaskDescriptionMaxLength {
		return apperrors.Validation("task description must be at most %d characters", models.TaskDescriptionMaxLength)
	}
	return nil
}

// resolveAssignees parses and resolves assignee ids, failing validation when
// the set is empty, malformed or names a missing user.
func (s *TaskService) resolveAssignees(ctx context.Context, assigneeIDs []string) ([]primitive.ObjectID, error) {
	if len(assigneeIDs) == 0 {
		return nil, apperrors.Validation("a task must have at least one assignee")
	}

	ids := make([]primitive.ObjectID, 0, len(assigneeIDs))
	for _, raw := range assigneeIDs {
		id, err := primitive.ObjectIDFromHex(raw)
		if err != nil {
			return nil, apperrors.Validation("invalid assignee id %q", raw)
		}
		ids = append(ids, id)
	}

	users, err := s.userStore.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(users) != len(ids) {
		return nil, apperrors.Validation("one or more assignees do not exist")
	}
	return ids, nil
}

func (s *TaskService) CreateTask(ctx context.Context, creatorID primitive.ObjectID, req CreateTaskRequest) (*models.Task, error) {
	if err := validateTaskTitle(req.Title); err != nil {
		return nil, err
	}
	if err := validateTaskDescription(req.Description); err != nil {
		return nil, err
	}
	if req.DueDate.IsZero() {
		return nil, apperrors.Validation("due date is required")
	}

	assignees, err := s.resolveAssignees(ctx, req.AssignedTo)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		Title:        strings.TrimSpace(req.Title),
		Description:  strings.TrimSpace(req.Description),
		Image:        req.Image,
		Status:       models.StatusPending,
		CreatedBy:    creatorID,
		AssignedTo:   assignees,
		DueDate:      req.DueDate,
		DueTimeStart: req.DueTimeStart,
		DueTimeEnd:   req.DueTimeEnd,
	}
	if err := s.taskStore.Insert(ctx, task); err != nil {
		return nil, err
	}

	logging.Logger.Infof("Event ID: TASK_CREATED, Description: Task %s created by user %s", task.ID.Hex(), creatorID.Hex())
	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, taskID primitive.ObjectID) (*models.Task, error) {
	return s.taskStore.FindByID(ctx, taskID)
}

func (s *TaskService) UpdateTask(ctx context.Context, callerID, taskID primitive.ObjectID, req UpdateTaskRequest) (*models.Task, error) {
	task, err := s.taskStore.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if task.CreatedBy != callerID {
		return nil, apperrors.ErrForbidden
	}

	if req.Title != nil {
		if err := validateTaskTitle(*req.Title); err != nil {
			return nil, err
		}
		task.Title = strings.TrimSpace(*req.Title)
	}
	if req.Description != nil {
		if err := validateTaskDescription(*req.Description); err != nil {
			return nil, err
		}
		task.Description = strings.TrimSpace(*req.Description)
	}
	if req.Image != nil {
		task.Image = *req.Image
	}
	if req.Status != nil {
		if !models.IsValidTaskStatus(*req.Status) {
			return nil, apperrors.Validation("invalid task status %q", *req.Status)
		}
		task.Status = *req.Status
	}
	if req.AssignedTo != nil {
		assignees, err := s.resolveAssignees(ctx, *req.AssignedTo)
		if err != nil {
			return nil, err
		}
		task.AssignedTo = assignees
	}
	if req.DueDate != nil {
		if req.DueDate.IsZero() {
			return nil, apperrors.Validation("due date is required")
		}
		task.DueDate = *req.DueDate
	}
	if req.DueTimeStart != nil {
		task.DueTimeStart = *req.DueTimeStart
	}
	if req.DueTimeEnd != nil {
		task.DueTimeEnd = *req.DueTimeEnd
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, callerID, taskID primitive.ObjectID) error {
	task, err := s.taskStore.FindByID(ctx, taskID)
	if err != nil {
		return err
	}
	if task.CreatedBy != callerID {
		return apperrors.ErrForbidden
	}

	if err := s.taskStore.Delete(ctx, taskID); err != nil {
		return err
	}
	logging.Logger.Infof("Event ID: TASK_DELETED, Description: Task %s deleted by user %s", taskID.Hex(), callerID.Hex())
	return nil
}

// AppendCompletion appends a completion record for the calling assignee.
// Records are append-only and at most one per user. When every assignee has a
// record the task status moves to completed; otherwise status is untouched.
func (s *TaskService) AppendCompletion(ctx context.Context, userID, taskID primitive.ObjectID, req AppendCompletionRequest) (*models.Task, error) {
	if len(req.CompletionNote) > models.CompletionNoteMaxLength {
		return nil, apperrors.Validation("completion note must be at most %d characters", models.CompletionNoteMaxLength)
	}

	task, err := s.taskStore.FindByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !task.IsAssignee(userID) {
		return nil, fmt.Errorf("%w: only assignees can complete a task", apperrors.ErrForbidden)
	}
	if task.HasCompletionFrom(userID) {
		return nil, fmt.Errorf("%w: task already completed by this user", apperrors.ErrConflict)
	}

	task.CompletedBy = append(task.CompletedBy, models.CompletionRecord{
		User:             userID,
		CompletedAt:      time.Now(),
		CompletionNote:   strings.TrimSpace(req.CompletionNote),
		CompletionImages: req.CompletionImages,
	})

	if s.allAssigneesCompleted(task) {
		task.Status = models.StatusCompleted
	}

	if err := s.taskStore.Update(ctx, task); err != nil {
		return nil, err
	}
	logging.Logger.Infof("Event ID: TASK_COMPLETION_APPENDED, Description: User %s completed task %s", userID.Hex(), taskID.Hex())
	return task, nil
}

func (s *TaskService) allAssigneesCompleted(task *models.Task) bool {
	for _, assignee := range task.AssignedTo {
		if !task.HasCompletionFrom(assignee) {
			return false
		}
	}
	return true
}

// ListTasksAssignedTo returns tasks assigned to the user, due date ascending.
func (s *TaskService) ListTasksAssignedTo(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return s.taskStore.FindByAssignee(ctx, userID)
}

// ListTasksCreatedBy returns tasks created by the user, due date ascending.
func (s *TaskService) ListTasksCreatedBy(ctx context.Context, userID primitive.ObjectID) ([]models.Task, error) {
	return s.taskStore.FindByCreator(ctx, userID)
}
