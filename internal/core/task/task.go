// Package task defines the task domain model and the store contract used by the
// command loop.
package task

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when a task id argument is not an integer.
var ErrInvalidID = errors.New("invalid task id")

// Task is a single to-do item.
type Task struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Stats summarizes a task list.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
}

// Pending returns the number of tasks not yet completed.
func (s Stats) Pending() int {
	return s.Total - s.Completed
}

// IDStrategy controls how new task ids are assigned.
type IDStrategy string

const (
	// IDCounter assigns ids from a persisted counter that only grows, so ids are
	// never reused after a delete.
	IDCounter IDStrategy = "counter"
	// IDLength assigns len(tasks)+1. Ids collide after a delete followed by an add;
	// kept for compatibility with older task files.
	IDLength IDStrategy = "length"
)

// IsValid reports whether s is a known strategy.
func (s IDStrategy) IsValid() bool {
	switch s {
	case IDCounter, IDLength:
		return true
	}
	return false
}

// ParseID parses a user supplied task id. Surrounding whitespace is ignored.
func ParseID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidID, s)
	}
	return id, nil
}

// Store defines the operations the command loop needs from task persistence.
// Every mutating call persists the full list before returning.
type Store interface {
	// Add appends a new incomplete task and returns it.
	Add(ctx context.Context, description string) (Task, error)

	// List returns all tasks in insertion order.
	List(ctx context.Context) []Task

	// Complete marks the first task with the given id as completed.
	// Returns false without writing when no task matches.
	Complete(ctx context.Context, id int) (bool, error)

	// Delete removes the first task with the given id.
	// Returns false without writing when no task matches.
	Delete(ctx context.Context, id int) (bool, error)

	// ClearCompleted drops every completed task, preserving the order of the rest,
	// and returns how many were removed. Always persists.
	ClearCompleted(ctx context.Context) (int, error)

	// Stats returns the total and completed counts.
	Stats(ctx context.Context) Stats
}
