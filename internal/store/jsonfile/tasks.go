package jsonfile

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/hay-kot/todo/internal/core/task"
)

// TaskFile is the root JSON structure stored on disk.
type TaskFile struct {
	NextID int         `json:"next_id"`
	Tasks  []task.Task `json:"tasks"`
}

// Options configures a TaskStore.
type Options struct {
	// Path is the backing file location.
	Path string
	// IDs selects the id assignment strategy. Empty means task.IDCounter.
	IDs task.IDStrategy
	// BackupCorrupt copies an undecodable backing file to <Path>.bak on load.
	BackupCorrupt bool
	// Logger receives load/save diagnostics. The zero value discards.
	Logger zerolog.Logger
}

// TaskStore implements task.Store over a single JSON file. The in-memory list is
// authoritative; the file is rewritten after every mutation.
//
// The store assumes it is the only writer of the file.
type TaskStore struct {
	path          string
	ids           task.IDStrategy
	backupCorrupt bool
	log           zerolog.Logger

	mu      sync.RWMutex
	tasks   []task.Task
	nextID  int
	loadErr error
}

var _ task.Store = (*TaskStore)(nil)

// Open creates a store for opts.Path and loads it. A missing or undecodable file
// yields an empty store; only a file that exists but cannot be read is an error.
func Open(opts Options) (*TaskStore, error) {
	if opts.Path == "" {
		return nil, errors.New("task file path is required")
	}

	ids := opts.IDs
	if ids == "" {
		ids = task.IDCounter
	}

	s := &TaskStore{
		path:          opts.Path,
		ids:           ids,
		backupCorrupt: opts.BackupCorrupt,
		log:           opts.Logger,
	}

	if _, err := s.Load(); err != nil {
		return nil, err
	}

	return s, nil
}

// Path returns the backing file location.
func (s *TaskStore) Path() string {
	return s.path
}

// LoadErr returns the decode error recovered from during the last Load, if any.
func (s *TaskStore) LoadErr() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Load replaces the in-memory state with the contents of the backing file and
// returns the loaded tasks.
func (s *TaskStore) Load() ([]task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = nil
	s.nextID = 1
	s.loadErr = nil

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.log.Debug().Str("path", s.path).Msg("task file not found, starting empty")
			return nil, nil
		}
		return nil, fmt.Errorf("read task file: %w", err)
	}

	file, err := decode(data)
	if err != nil {
		s.loadErr = err
		s.log.Warn().Err(err).Str("path", s.path).Msg("task file is not valid, starting empty")
		if s.backupCorrupt {
			s.backup(data)
		}
		return nil, nil
	}

	s.tasks = file.Tasks
	s.nextID = file.NextID
	s.log.Debug().Str("path", s.path).Int("count", len(s.tasks)).Msg("loaded tasks")

	return s.snapshot(), nil
}

// Save writes the full task list to the backing file.
func (s *TaskStore) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.save()
}

// Add appends a new incomplete task.
func (s *TaskStore) Add(ctx context.Context, description string) (task.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := task.Task{
		ID:          s.assignID(),
		Description: description,
	}
	s.tasks = append(s.tasks, t)

	return t, s.save()
}

// List returns a copy of all tasks in insertion order.
func (s *TaskStore) List(ctx context.Context) []task.Task {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot()
}

// Complete marks the first task with id as completed.
func (s *TaskStore) Complete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	s.tasks[i].Completed = true
	return true, s.save()
}

// Delete removes the first task with id.
func (s *TaskStore) Delete(ctx context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}

	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return true, s.save()
}

// ClearCompleted removes all completed tasks and returns how many were removed.
func (s *TaskStore) ClearCompleted(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		if !t.Completed {
			kept = append(kept, t)
		}
	}

	removed := len(s.tasks) - len(kept)
	s.tasks = kept

	return removed, s.save()
}

// Stats returns total and completed counts.
func (s *TaskStore) Stats(ctx context.Context) task.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := task.Stats{Total: len(s.tasks)}
	for _, t := range s.tasks {
		if t.Completed {
			stats.Completed++
		}
	}
	return stats
}

// assignID returns the id for a new task. Caller must hold the write lock.
func (s *TaskStore) assignID() int {
	if s.ids == task.IDLength {
		return len(s.tasks) + 1
	}

	id := s.nextID
	s.nextID++
	return id
}

func (s *TaskStore) indexOf(id int) int {
	for i, t := range s.tasks {
		if t.ID == id {
			return i
		}
	}
	return -1
}

func (s *TaskStore) snapshot() []task.Task {
	out := make([]task.Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

// save writes the task file to disk atomically. Caller must hold a lock.
func (s *TaskStore) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create task dir: %w", err)
	}

	tasks := s.tasks
	if tasks == nil {
		tasks = []task.Task{}
	}

	nextID := s.nextID
	if s.ids == task.IDLength {
		nextID = maxID(tasks) + 1
	}

	data, err := json.MarshalIndent(TaskFile{NextID: nextID, Tasks: tasks}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}

	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}

	s.log.Debug().Str("path", s.path).Int("count", len(tasks)).Msg("saved tasks")
	return nil
}

// backup copies undecodable file contents next to the backing file so the next
// save does not destroy them.
func (s *TaskStore) backup(data []byte) {
	backupPath := s.path + ".bak"
	if err := os.WriteFile(backupPath, data, 0o644); err != nil {
		s.log.Error().Err(err).Str("path", backupPath).Msg("failed to back up task file")
		return
	}
	s.log.Info().Str("path", backupPath).Msg("backed up unreadable task file")
}

// decode parses either the current document shape or the legacy bare array
// format. An empty (or whitespace only) file decodes as no tasks.
func decode(data []byte) (TaskFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return TaskFile{NextID: 1}, nil
	}

	var file TaskFile
	if data[0] == '[' {
		if err := json.Unmarshal(data, &file.Tasks); err != nil {
			return TaskFile{}, err
		}
	} else if err := json.Unmarshal(data, &file); err != nil {
		return TaskFile{}, err
	}

	if next := maxID(file.Tasks) + 1; file.NextID < next {
		file.NextID = next
	}

	return file, nil
}

func maxID(tasks []task.Task) int {
	highest := 0
	for _, t := range tasks {
		if t.ID > highest {
			highest = t.ID
		}
	}
	return highest
}
