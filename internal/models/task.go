package models

import "time"

// Task represents a tracked task with a duration in minutes
type Task struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Duration  int       `json:"duration"`
	Completed bool      `json:"completed"`
	Date      time.Time `json:"date"`
	CreatedAt string    `json:"created_at"`
	UpdatedAt string    `json:"updated_at"`
}

// TaskPage is one page of a user's tasks, newest first
type TaskPage struct {
	Tasks      []Task `json:"tasks"`
	Page       int    `json:"page"`
	TotalPages int    `json:"totalpages"`
	TotalTasks int    `json:"totaltasks"`
}
