package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/trackly-app/trackly/internal/repository"
	"github.com/trackly-app/trackly/internal/service"
	"github.com/trackly-app/trackly/internal/utils"
)

type taskRequest struct {
	Title    string `json:"title"`
	Duration int    `json:"duration"`
	Date     string `json:"date"`
}

// AddTask records a new task for the authenticated user
func (h *Handler) AddTask(w http.ResponseWriter, r *http.Request) {
	var req taskRequest
	if err := decodeBody(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.Title = utils.SanitizeInput(req.Title)

	if req.Title == "" || req.Duration == 0 || req.Date == "" {
		respondMessage(w, http.StatusBadRequest, "All fields are required")
		return
	}
	if req.Duration < 0 {
		respondMessage(w, http.StatusBadRequest, "Duration must be non-negative")
		return
	}
	date, err := parseDate(req.Date)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid date")
		return
	}

	task, err := h.svc.AddTask(r.Context(), req.Title, req.Duration, date)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusCreated, map[string]interface{}{
		"message": "Task added successfully",
		"task":    task,
	})
}

// GetTask fetches one task by id
func (h *Handler) GetTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	task, err := h.svc.GetTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Task fetched successfully",
		"task":    task,
	})
}

// GetAllTasks returns one page of the user's tasks
func (h *Handler) GetAllTasks(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 1)
	limit := queryInt(r, "limit", 10)

	result, err := h.svc.ListTasks(r.Context(), page, limit)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message":    "Tasks fetched successfully",
		"tasks":      result.Tasks,
		"page":       result.Page,
		"totalpages": result.TotalPages,
		"totaltasks": result.TotalTasks,
	})
}

type taskUpdateRequest struct {
	Title    *string `json:"title"`
	Duration *int    `json:"duration"`
	Date     *string `json:"date"`
}

// UpdateTask applies a partial update to one task by id
func (h *Handler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	var req taskUpdateRequest
	if err := decodeBody(r, &req); err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.Title == nil && req.Duration == nil && req.Date == nil {
		respondMessage(w, http.StatusBadRequest, "At least one field required")
		return
	}
	if req.Title != nil {
		trimmed := utils.SanitizeInput(*req.Title)
		req.Title = &trimmed
	}

	var date *time.Time
	if req.Date != nil {
		parsed, err := parseDate(*req.Date)
		if err != nil {
			respondMessage(w, http.StatusBadRequest, "Invalid date")
			return
		}
		date = &parsed
	}

	task, err := h.svc.UpdateTask(r.Context(), id, req.Title, req.Duration, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Task updated successfully",
		"task":    task,
	})
}

// DeleteTask removes one task by id
func (h *Handler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	if err := h.svc.DeleteTask(r.Context(), id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondMessage(w, http.StatusOK, "Task deleted successfully")
}

// ToggleTask flips a task's completed flag
func (h *Handler) ToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondMessage(w, http.StatusBadRequest, "Invalid task id")
		return
	}

	task, err := h.svc.ToggleTask(r.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			respondMessage(w, http.StatusNotFound, "Task not found")
			return
		}
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message": "Task status toggled successfully",
		"task":    task,
	})
}

// TotalProductivity sums completed-task minutes for a period
func (h *Handler) TotalProductivity(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")
	value := r.URL.Query().Get("value")
	if period == "" || value == "" {
		respondMessage(w, http.StatusBadRequest, "Period and value are required")
		return
	}
	if _, _, err := service.ParsePeriodRange(period, value); err != nil {
		respondMessage(w, http.StatusBadRequest, err.Error())
		return
	}

	total, err := h.svc.TotalProductivity(r.Context(), period, value)
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message":           "Total productivity fetched successfully",
		"totalProductivity": total,
	})
}

// TaskCompletedCount returns the user's all-time completed count
func (h *Handler) TaskCompletedCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.svc.CompletedTaskCount(r.Context())
	if err != nil {
		respondMessage(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	respond(w, http.StatusOK, map[string]interface{}{
		"message":        "Completed task count fetched successfully",
		"completedCount": count,
	})
}
