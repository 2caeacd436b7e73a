package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	apperrors "tasklist-project/backend/errors"
	"tasklist-project/backend/services"
)

type TaskHandler struct {
	TaskService *services.TaskService
}

func NewTaskHandler(taskService *services.TaskService) *TaskHandler {
	return &TaskHandler{TaskService: taskService}
}

func taskIDFromRequest(r *http.Request) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(mux.Vars(r)["taskId"])
	if err != nil {
		return primitive.NilObjectID, apperrors.Validation("invalid task id")
	}
	return id, nil
}

// CreateTask creates a task with the caller as creator and status pending.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	var req services.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.Validation("invalid request payload"))
		return
	}

	task, err := h.TaskService.CreateTask(r.Context(), caller.ID, req)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Task created successfully",
		"task":    task,
	})
}

// GetTask returns a single task.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	taskID, err := taskIDFromRequest(r)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	task, err := h.TaskService.GetTask(r.Context(), taskID)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"task": task})
}

// UpdateTask applies a partial update to a task; creator only.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	var req services.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.Validation("invalid request payload"))
		return
	}

	task, err := h.TaskService.UpdateTask(r.Context(), caller.ID, taskID, req)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully",
		"task":    task,
	})
}

// DeleteTask removes a task permanently; creator only.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	if err := h.TaskService.DeleteTask(r.Context(), caller.ID, taskID); err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "Task deleted successfully"})
}

// AppendCompletion records the calling assignee's completion of a task.
func (h *TaskHandler) AppendCompletion(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	taskID, err := taskIDFromRequest(r)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	var req services.AppendCompletionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apperrors.WriteJSON(w, apperrors.Validation("invalid request payload"))
		return
	}

	task, err := h.TaskService.AppendCompletion(r.Context(), caller.ID, taskID, req)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Completion recorded successfully",
		"task":    task,
	})
}

// ListAssignedTasks returns the caller's assigned tasks, due date ascending.
func (h *TaskHandler) ListAssignedTasks(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	tasks, err := h.TaskService.ListTasksAssignedTo(r.Context(), caller.ID)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}

// ListCreatedTasks returns the tasks the caller created, due date ascending.
func (h *TaskHandler) ListCreatedTasks(w http.ResponseWriter, r *http.Request) {
	caller := currentUser(r)
	if caller == nil {
		apperrors.WriteJSON(w, apperrors.ErrMissingCredential)
		return
	}

	tasks, err := h.TaskService.ListTasksCreatedBy(r.Context(), caller.ID)
	if err != nil {
		apperrors.WriteJSON(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"tasks": tasks})
}
