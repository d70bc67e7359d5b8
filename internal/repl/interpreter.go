// Package repl implements the interactive command loop that drives a task store.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hay-kot/todo/internal/core/styles"
	"github.com/hay-kot/todo/internal/core/task"
)

const maxLineSize = 1024 * 1024

// ConfirmFunc asks the user a yes/no question.
type ConfirmFunc func(question string) (bool, error)

// Interpreter reads one command per line from its input, applies it to the store
// and writes a human readable result. It is not safe for concurrent use.
type Interpreter struct {
	store   task.Store
	scanner *bufio.Scanner
	out     io.Writer
	styles  styles.Styles
	confirm ConfirmFunc
	log     zerolog.Logger
}

// Option configures an Interpreter.
type Option func(*Interpreter)

// WithStyles overrides the styles derived from the output writer.
func WithStyles(s styles.Styles) Option {
	return func(i *Interpreter) { i.styles = s }
}

// WithConfirm makes clearing completed tasks ask for confirmation first.
func WithConfirm(fn ConfirmFunc) Option {
	return func(i *Interpreter) { i.confirm = fn }
}

// WithLogger sets the logger used for dispatch and error diagnostics.
func WithLogger(l zerolog.Logger) Option {
	return func(i *Interpreter) { i.log = l }
}

// New creates an interpreter reading commands from in and writing to out.
func New(store task.Store, in io.Reader, out io.Writer, opts ...Option) *Interpreter {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)

	i := &Interpreter{
		store:   store,
		scanner: scanner,
		out:     out,
		styles:  styles.New(out, true),
		log:     zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(i)
	}

	return i
}

// Run prompts for and executes commands until the quit command, end of input or
// context cancellation. Cancellation is observed between lines only.
func (i *Interpreter) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		i.printf("\n%s ", i.styles.Prompt.Render(strings.TrimSpace(prompt)))

		if !i.scanner.Scan() {
			if err := i.scanner.Err(); err != nil {
				return fmt.Errorf("read command: %w", err)
			}
			// EOF behaves like quit; finish the prompt line.
			i.println()
			return nil
		}

		if quit := i.Execute(ctx, i.scanner.Text()); quit {
			return nil
		}
	}
}

// Execute runs a single line of input and reports whether it was the quit command.
func (i *Interpreter) Execute(ctx context.Context, line string) (quit bool) {
	cmd := ParseLine(line)

	if takesArg(cmd.Name) != cmd.HasArg {
		i.println(i.styles.Warning.Render(MsgInvalidCommand))
		return false
	}

	i.log.Debug().Str("cmd", cmd.Name).Msg("dispatch")

	switch cmd.Name {
	case CmdHelp:
		i.println(helpText)
	case CmdAdd:
		i.add(ctx, cmd.Arg)
	case CmdList:
		i.list(ctx)
	case CmdComplete:
		i.complete(ctx, cmd.Arg)
	case CmdDelete:
		i.delete(ctx, cmd.Arg)
	case CmdClear:
		i.clear(ctx)
	case CmdStats:
		i.stats(ctx)
	case CmdQuit:
		return true
	default:
		i.println(i.styles.Warning.Render(MsgInvalidCommand))
	}

	return false
}

func (i *Interpreter) add(ctx context.Context, description string) {
	t, err := i.store.Add(ctx, description)
	if err != nil {
		i.fail("add task", err)
		return
	}

	i.log.Debug().Int("id", t.ID).Msg("task added")
	i.println(i.styles.Success.Render(MsgTaskAdded))
}

func (i *Interpreter) list(ctx context.Context) {
	tasks := i.store.List(ctx)
	if len(tasks) == 0 {
		i.println(i.styles.Muted.Render(MsgNoTasks))
		return
	}

	for _, t := range tasks {
		glyph := i.styles.Pending.Render(glyphUndone)
		if t.Completed {
			glyph = i.styles.Done.Render(glyphDone)
		}
		// descriptions are written raw; styling would expand tabs
		i.printf("[%s] %s: %s\n", glyph, i.styles.ID.Render(strconv.Itoa(t.ID)), t.Description)
	}
}

func (i *Interpreter) complete(ctx context.Context, arg string) {
	id, err := task.ParseID(arg)
	if err != nil {
		i.println(i.styles.Warning.Render(MsgInvalidID))
		return
	}

	ok, err := i.store.Complete(ctx, id)
	if err != nil {
		i.fail("complete task", err)
		return
	}
	if !ok {
		i.println(i.styles.Warning.Render(MsgNotFound))
		return
	}

	i.println(i.styles.Success.Render(MsgCompleted))
}

func (i *Interpreter) delete(ctx context.Context, arg string) {
	id, err := task.ParseID(arg)
	if err != nil {
		i.println(i.styles.Warning.Render(MsgInvalidID))
		return
	}

	ok, err := i.store.Delete(ctx, id)
	if err != nil {
		i.fail("delete task", err)
		return
	}
	if !ok {
		i.println(i.styles.Warning.Render(MsgNotFound))
		return
	}

	i.println(i.styles.Success.Render(MsgDeleted))
}

func (i *Interpreter) clear(ctx context.Context) {
	if i.confirm != nil {
		ok, err := i.confirm("Clear all completed tasks?")
		if err != nil {
			i.fail("confirm clear", err)
			return
		}
		if !ok {
			i.println(i.styles.Muted.Render(MsgClearCancelled))
			return
		}
	}

	removed, err := i.store.ClearCompleted(ctx)
	if err != nil {
		i.fail("clear completed", err)
		return
	}

	i.log.Debug().Int("removed", removed).Msg("cleared completed tasks")
	i.println(i.styles.Success.Render(MsgCleared))
}

func (i *Interpreter) stats(ctx context.Context) {
	stats := i.store.Stats(ctx)
	i.printf("Total tasks: %d\n", stats.Total)
	i.printf("Completed tasks: %d\n", stats.Completed)
}

// fail reports a store error and keeps the loop running.
func (i *Interpreter) fail(op string, err error) {
	i.log.Error().Err(err).Str("op", op).Msg("command failed")
	i.println(i.styles.Error.Render(fmt.Sprintf("Error: %s: %v", op, err)))
}

func (i *Interpreter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(i.out, format, args...)
}

func (i *Interpreter) println(args ...any) {
	_, _ = fmt.Fprintln(i.out, args...)
}
