package service

import (
	"context"
	"time"

	"github.com/trackly-app/trackly/internal/models"
)

// AddTask records a new task, initially not completed
func (s *Service) AddTask(ctx context.Context, title string, duration int, date time.Time) (*models.Task, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}

	task := &models.Task{
		UserID:   userID,
		Title:    title,
		Duration: duration,
		Date:     date,
	}
	if err := s.repo.CreateTask(task); err != nil {
		return nil, err
	}

	s.log.Infof("Task added for user %d: %s", userID, task.Title)
	return task, nil
}

// GetTask fetches one of the user's tasks
func (s *Service) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.FindTaskByID(id, userID)
}

// ListTasks returns one page of the user's tasks, newest first
func (s *Service) ListTasks(ctx context.Context, page, limit int) (*models.TaskPage, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	tasks, err := s.repo.ListTasks(userID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}
	total, err := s.repo.CountTasks(userID)
	if err != nil {
		return nil, err
	}

	return &models.TaskPage{
		Tasks:      tasks,
		Page:       page,
		TotalPages: (total + limit - 1) / limit,
		TotalTasks: total,
	}, nil
}

// UpdateTask applies a partial update to one of the user's tasks
func (s *Service) UpdateTask(ctx context.Context, id int64, title *string, duration *int, date *time.Time) (*models.Task, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	return s.repo.UpdateTask(id, userID, title, duration, date)
}

// DeleteTask removes one of the user's tasks
func (s *Service) DeleteTask(ctx context.Context, id int64) error {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return err
	}
	return s.repo.DeleteTask(id, userID)
}

// ToggleTask flips a task's completed flag
func (s *Service) ToggleTask(ctx context.Context, id int64) (*models.Task, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return nil, err
	}
	task, err := s.repo.ToggleTask(id, userID)
	if err != nil {
		return nil, err
	}
	s.log.Infof("Task %d toggled for user %d: completed=%t", id, userID, task.Completed)
	return task, nil
}

// TotalProductivity sums completed-task minutes for a period
func (s *Service) TotalProductivity(ctx context.Context, period, value string) (int, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return 0, err
	}
	start, end, err := ParsePeriodRange(period, value)
	if err != nil {
		return 0, err
	}
	return s.repo.SumCompletedDuration(userID, start, end)
}

// CompletedTaskCount returns the user's all-time completed count
func (s *Service) CompletedTaskCount(ctx context.Context) (int, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return 0, err
	}
	return s.repo.CountCompletedTasks(userID)
}
