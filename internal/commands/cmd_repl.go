package commands

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/hay-kot/todo/internal/core/logging"
	"github.com/hay-kot/todo/internal/core/styles"
	"github.com/hay-kot/todo/internal/repl"
	"github.com/hay-kot/todo/internal/store/jsonfile"
)

// ReplCmd runs the interactive command loop. It is the root command's action.
type ReplCmd struct {
	flags *Flags

	// isTerminal gates the interactive clear confirmation.
	isTerminal func() bool
	confirm    repl.ConfirmFunc
}

// NewReplCmd creates the interactive loop command.
func NewReplCmd(flags *Flags) *ReplCmd {
	return &ReplCmd{
		flags:      flags,
		isTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
		confirm:    confirmWithForm,
	}
}

// Flags returns the flags the loop adds to the root command.
func (cmd *ReplCmd) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "file",
			Aliases:     []string{"f"},
			Usage:       "path to the task file (overrides store.path)",
			Sources:     cli.EnvVars("TODO_FILE"),
			Destination: &cmd.flags.TaskFile,
		},
	}
}

// Run opens the task store and blocks in the command loop until the user quits.
func (cmd *ReplCmd) Run(ctx context.Context, c *cli.Command) error {
	cfg := cmd.flags.EffectiveConfig()
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	store, err := jsonfile.Open(jsonfile.Options{
		Path:          cfg.Store.Path,
		IDs:           cfg.Store.IDs,
		BackupCorrupt: cfg.Store.ShouldBackupCorrupt(),
		Logger:        logging.Component("store"),
	})
	if err != nil {
		return fmt.Errorf("open task store: %w", err)
	}

	out := c.Root().Writer
	opts := []repl.Option{
		repl.WithStyles(styles.New(out, cfg.UI.ColorEnabled())),
		repl.WithLogger(logging.Component("repl")),
	}
	if cfg.UI.ConfirmClear && cmd.isTerminal() {
		opts = append(opts, repl.WithConfirm(cmd.confirm))
	}

	return repl.New(store, c.Root().Reader, out, opts...).Run(ctx)
}

// confirmWithForm asks a yes/no question with a huh confirm field. Aborting the
// form (ctrl+c, esc) counts as no.
func confirmWithForm(question string) (bool, error) {
	var ok bool

	err := huh.NewConfirm().
		Title(question).
		Affirmative("Yes").
		Negative("No").
		Value(&ok).
		Run()
	if errors.Is(err, huh.ErrUserAborted) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("confirm: %w", err)
	}

	return ok, nil
}
