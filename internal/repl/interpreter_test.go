package repl

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/todo/internal/core/task"
	"github.com/hay-kot/todo/internal/store/jsonfile"
)

func newStore(t *testing.T) *jsonfile.TaskStore {
	t.Helper()
	s, err := jsonfile.Open(jsonfile.Options{Path: filepath.Join(t.TempDir(), "tasks.json")})
	require.NoError(t, err)
	return s
}

// run feeds input lines to a fresh interpreter and returns everything written.
func run(t *testing.T, store task.Store, input string, opts ...Option) string {
	t.Helper()
	var out bytes.Buffer
	i := New(store, strings.NewReader(input), &out, opts...)
	require.NoError(t, i.Run(context.Background()))
	return out.String()
}

// exec runs one line and returns its output.
func exec(t *testing.T, i *Interpreter, out *bytes.Buffer, line string) string {
	t.Helper()
	out.Reset()
	i.Execute(context.Background(), line)
	return out.String()
}

func TestExecute_Commands(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	var out bytes.Buffer
	i := New(store, strings.NewReader(""), &out)

	assert.Equal(t, "No tasks\n", exec(t, i, &out, "l"))
	assert.Equal(t, "Task added\n", exec(t, i, &out, "a Buy milk"))
	assert.Equal(t, "Task added\n", exec(t, i, &out, "A Walk the Dog"))

	tasks := store.List(ctx)
	require.Len(t, tasks, 2)
	assert.Equal(t, "Buy milk", tasks[0].Description)
	assert.Equal(t, "Walk the Dog", tasks[1].Description, "argument keeps its case")

	assert.Equal(t, "Task marked as complete\n", exec(t, i, &out, "c 1"))
	assert.Equal(t, "[✓] 1: Buy milk\n[ ] 2: Walk the Dog\n", exec(t, i, &out, "l"))
	assert.Equal(t, "Total tasks: 2\nCompleted tasks: 1\n", exec(t, i, &out, "s"))
	assert.Equal(t, "Completed tasks cleared\n", exec(t, i, &out, "x"))
	assert.Equal(t, "[ ] 2: Walk the Dog\n", exec(t, i, &out, "L"))
	assert.Equal(t, "Task deleted\n", exec(t, i, &out, "d 2"))
	assert.Equal(t, "No tasks\n", exec(t, i, &out, "l"))
}

func TestExecute_IDErrors(t *testing.T) {
	store := newStore(t)
	var out bytes.Buffer
	i := New(store, strings.NewReader(""), &out)

	exec(t, i, &out, "a only")

	tests := []struct {
		line string
		want string
	}{
		{line: "c 9", want: MsgNotFound},
		{line: "d 9", want: MsgNotFound},
		{line: "c abc", want: MsgInvalidID},
		{line: "d 1.5", want: MsgInvalidID},
		{line: "c  1 ", want: MsgCompleted},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			assert.Equal(t, tt.want+"\n", exec(t, i, &out, tt.line))
		})
	}

	assert.Len(t, store.List(context.Background()), 1, "invalid ids never delete")
}

func TestExecute_InvalidCommands(t *testing.T) {
	store := newStore(t)
	var out bytes.Buffer
	i := New(store, strings.NewReader(""), &out)

	for _, line := range []string{"", "   ", "z", "add milk", "a", "a   ", "c", "d", "l all", "x now", "help"} {
		t.Run(line, func(t *testing.T) {
			assert.Equal(t, MsgInvalidCommand+"\n", exec(t, i, &out, line))
		})
	}

	assert.Empty(t, store.List(context.Background()))
}

func TestExecute_AddKeepsInnerSpacing(t *testing.T) {
	store := newStore(t)
	var out bytes.Buffer
	i := New(store, strings.NewReader(""), &out)

	exec(t, i, &out, "  a  two spaces  ")

	tasks := store.List(context.Background())
	require.Len(t, tasks, 1)
	assert.Equal(t, " two spaces", tasks[0].Description)
}

func TestExecute_Help(t *testing.T) {
	store := newStore(t)
	var out bytes.Buffer
	i := New(store, strings.NewReader(""), &out)

	got := exec(t, i, &out, "h")
	assert.Equal(t, helpText+"\n", got)
	for _, name := range []string{"a <description>", "l ", "c <id>", "d <id>", "x ", "s ", "h ", "q "} {
		assert.Contains(t, got, "  "+name)
	}
}

func TestExecute_Quit(t *testing.T) {
	i := New(newStore(t), strings.NewReader(""), &bytes.Buffer{})

	assert.True(t, i.Execute(context.Background(), "q"))
	assert.True(t, i.Execute(context.Background(), " Q "))
	assert.False(t, i.Execute(context.Background(), "q now"))
}

func TestRun(t *testing.T) {
	t.Run("stops at quit", func(t *testing.T) {
		store := newStore(t)
		out := run(t, store, "a Task 1\na Task 2\nq\na never\n")

		assert.Len(t, store.List(context.Background()), 2)
		assert.Equal(t, 3, strings.Count(out, "Enter command (h for help): "))
		assert.True(t, strings.HasPrefix(out, "\nEnter command (h for help): Task added\n"))
	})

	t.Run("stops at end of input", func(t *testing.T) {
		store := newStore(t)
		out := run(t, store, "a last")

		assert.Len(t, store.List(context.Background()), 1)
		assert.True(t, strings.HasSuffix(out, "Enter command (h for help): \n"))
	})

	t.Run("context canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		i := New(newStore(t), strings.NewReader("a x\n"), &bytes.Buffer{})
		assert.ErrorIs(t, i.Run(ctx), context.Canceled)
	})

	t.Run("scenario", func(t *testing.T) {
		store := newStore(t)
		out := run(t, store, "a Task 1\na Task 2\nc 1\ns\nx\nl\nq\n")

		assert.Contains(t, out, "Total tasks: 2\nCompleted tasks: 1\n")
		assert.Contains(t, out, "[ ] 2: Task 2\n")
		assert.NotContains(t, out, "Task 1\n")

		tasks := store.List(context.Background())
		require.Len(t, tasks, 1)
		assert.Equal(t, "Task 2", tasks[0].Description)
	})
}

func TestClear_Confirm(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, confirm ConfirmFunc) (*jsonfile.TaskStore, *Interpreter, *bytes.Buffer) {
		t.Helper()
		store := newStore(t)
		_, err := store.Add(ctx, "done")
		require.NoError(t, err)
		_, err = store.Complete(ctx, 1)
		require.NoError(t, err)

		var out bytes.Buffer
		return store, New(store, strings.NewReader(""), &out, WithConfirm(confirm)), &out
	}

	t.Run("accepted", func(t *testing.T) {
		var asked string
		store, i, out := setup(t, func(q string) (bool, error) {
			asked = q
			return true, nil
		})

		assert.Equal(t, MsgCleared+"\n", exec(t, i, out, "x"))
		assert.NotEmpty(t, asked)
		assert.Empty(t, store.List(ctx))
	})

	t.Run("declined", func(t *testing.T) {
		store, i, out := setup(t, func(string) (bool, error) { return false, nil })

		assert.Equal(t, MsgClearCancelled+"\n", exec(t, i, out, "x"))
		assert.Len(t, store.List(ctx), 1)
	})

	t.Run("prompt error", func(t *testing.T) {
		store, i, out := setup(t, func(string) (bool, error) { return false, errors.New("no tty") })

		assert.Contains(t, exec(t, i, out, "x"), "Error: confirm clear: no tty")
		assert.Len(t, store.List(ctx), 1)
	})
}

// failingStore records calls and fails every write.
type failingStore struct {
	tasks []task.Task
	err   error
}

func (f *failingStore) Add(ctx context.Context, description string) (task.Task, error) {
	t := task.Task{ID: len(f.tasks) + 1, Description: description}
	f.tasks = append(f.tasks, t)
	return t, f.err
}

func (f *failingStore) List(ctx context.Context) []task.Task { return f.tasks }

func (f *failingStore) Complete(ctx context.Context, id int) (bool, error) {
	return id == 1, f.err
}

func (f *failingStore) Delete(ctx context.Context, id int) (bool, error) {
	return id == 1, f.err
}

func (f *failingStore) ClearCompleted(ctx context.Context) (int, error) { return 0, f.err }

func (f *failingStore) Stats(ctx context.Context) task.Stats {
	return task.Stats{Total: len(f.tasks)}
}

func TestExecute_StoreErrorsKeepRunning(t *testing.T) {
	store := &failingStore{err: errors.New("disk full")}
	out := run(t, store, "a one\nc 1\nd 1\nx\ns\nq\n")

	assert.Contains(t, out, "Error: add task: disk full\n")
	assert.Contains(t, out, "Error: complete task: disk full\n")
	assert.Contains(t, out, "Error: delete task: disk full\n")
	assert.Contains(t, out, "Error: clear completed: disk full\n")
	assert.Contains(t, out, "Total tasks: 1\n", "loop continues after failures")
}
