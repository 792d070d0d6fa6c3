package repository

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/trackly-app/trackly/internal/models"
)

// CreateTask creates a new task in the database
func (r *Repository) CreateTask(task *models.Task) error {
	query := `
		INSERT INTO trackly.tasks (user_id, title, duration, completed, date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, CURRENT_TIMESTAMP, CURRENT_TIMESTAMP)
		RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(query, task.UserID, task.Title, task.Duration, task.Completed, task.Date).
		Scan(&task.ID, &task.CreatedAt, &task.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

// FindTaskByID retrieves a user's task by primary key
func (r *Repository) FindTaskByID(id, userID int64) (*models.Task, error) {
	task := &models.Task{}
	query := `
		SELECT id, user_id, title, duration, completed, date, created_at, updated_at
		FROM trackly.tasks
		WHERE id = $1 AND user_id = $2`
	err := r.db.QueryRow(query, id, userID).
		Scan(&task.ID, &task.UserID, &task.Title, &task.Duration, &task.Completed,
			&task.Date, &task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find task: %w", err)
	}
	return task, nil
}

// ListTasks returns one page of a user's tasks, newest first
func (r *Repository) ListTasks(userID int64, limit, offset int) ([]models.Task, error) {
	query := `
		SELECT id, user_id, title, duration, completed, date, created_at, updated_at
		FROM trackly.tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`
	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	defer rows.Close()

	tasks := []models.Task{}
	for rows.Next() {
		var t models.Task
		if err := rows.Scan(&t.ID, &t.UserID, &t.Title, &t.Duration, &t.Completed,
			&t.Date, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

// CountTasks returns the total number of a user's tasks
func (r *Repository) CountTasks(userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM trackly.tasks WHERE user_id = $1`
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tasks: %w", err)
	}
	return count, nil
}

// UpdateTask applies a partial update, keeping any field passed as
// NULL unchanged, and returns the new row.
func (r *Repository) UpdateTask(id, userID int64, title *string, duration *int, date *time.Time) (*models.Task, error) {
	task := &models.Task{}
	query := `
		UPDATE trackly.tasks
		SET title = COALESCE($1, title),
		    duration = COALESCE($2, duration),
		    date = COALESCE($3, date),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $4 AND user_id = $5
		RETURNING id, user_id, title, duration, completed, date, created_at, updated_at`
	err := r.db.QueryRow(query, title, duration, date, id, userID).
		Scan(&task.ID, &task.UserID, &task.Title, &task.Duration, &task.Completed,
			&task.Date, &task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update task: %w", err)
	}
	return task, nil
}

// DeleteTask removes a user's task
func (r *Repository) DeleteTask(id, userID int64) error {
	result, err := r.db.Exec(`DELETE FROM trackly.tasks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleTask flips a task's completed flag and returns the new row
func (r *Repository) ToggleTask(id, userID int64) (*models.Task, error) {
	task := &models.Task{}
	query := `
		UPDATE trackly.tasks
		SET completed = NOT completed, updated_at = CURRENT_TIMESTAMP
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, title, duration, completed, date, created_at, updated_at`
	err := r.db.QueryRow(query, id, userID).
		Scan(&task.ID, &task.UserID, &task.Title, &task.Duration, &task.Completed,
			&task.Date, &task.CreatedAt, &task.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to toggle task: %w", err)
	}
	return task, nil
}

// SumCompletedDuration totals completed-task minutes over [start, end)
func (r *Repository) SumCompletedDuration(userID int64, start, end time.Time) (int, error) {
	var total int
	query := `
		SELECT COALESCE(SUM(duration), 0)
		FROM trackly.tasks
		WHERE user_id = $1 AND completed = TRUE AND date >= $2 AND date < $3`
	if err := r.db.QueryRow(query, userID, start, end).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to sum completed duration: %w", err)
	}
	return total, nil
}

// CountCompletedTasks returns the user's all-time completed count
func (r *Repository) CountCompletedTasks(userID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM trackly.tasks WHERE user_id = $1 AND completed = TRUE`
	if err := r.db.QueryRow(query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count completed tasks: %w", err)
	}
	return count, nil
}

// TaskStatusCounts returns the user's completed and pending counts
func (r *Repository) TaskStatusCounts(userID int64) (models.TaskStatusCounts, error) {
	var counts models.TaskStatusCounts
	query := `
		SELECT
			COUNT(*) FILTER (WHERE completed),
			COUNT(*) FILTER (WHERE NOT completed)
		FROM trackly.tasks
		WHERE user_id = $1`
	if err := r.db.QueryRow(query, userID).Scan(&counts.Completed, &counts.Pending); err != nil {
		return counts, fmt.Errorf("failed to count task status: %w", err)
	}
	return counts, nil
}
