package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/hay-kot/criterio"
	"github.com/urfave/cli/v3"

	"github.com/hay-kot/todo/internal/core/styles"
	"github.com/hay-kot/todo/pkg/iojson"
)

type ConfigValidateCmd struct {
	flags  *Flags
	format string
}

// ValidationError is a single invalid configuration field.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult is the output of config validate.
type ValidationResult struct {
	Valid      bool              `json:"valid"`
	ConfigFile string            `json:"config_file"`
	TaskFile   string            `json:"task_file"`
	Errors     []ValidationError `json:"errors,omitempty"`
}

// NewConfigValidateCmd creates a new config validate command.
func NewConfigValidateCmd(flags *Flags) *ConfigValidateCmd {
	return &ConfigValidateCmd{flags: flags}
}

// Register adds the config validate command to the application.
func (cmd *ConfigValidateCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:  "config",
		Usage: "Configuration management commands",
		Commands: []*cli.Command{
			{
				Name:        "validate",
				Usage:       "Validate configuration file",
				UsageText:   "todo config validate [options]",
				Description: "Validates the configuration file: the task file path and the id strategy.",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:        "format",
						Usage:       "output format (text, json)",
						Value:       "text",
						Destination: &cmd.format,
					},
				},
				Action: cmd.run,
			},
		},
	})

	return app
}

func (cmd *ConfigValidateCmd) run(ctx context.Context, c *cli.Command) error {
	if cmd.format != "text" && cmd.format != "json" {
		return fmt.Errorf("invalid format %q: must be one of text, json", cmd.format)
	}

	result, err := cmd.validate()
	if err != nil {
		return err
	}

	if cmd.format == "json" {
		if err := iojson.WriteWith(c.Root().Writer, c.Root().ErrWriter, result); err != nil {
			return err
		}
	} else {
		cmd.outputText(c, result)
	}

	if !result.Valid {
		return cli.Exit("", 1)
	}
	return nil
}

// validate checks the effective config and collects every field error.
func (cmd *ConfigValidateCmd) validate() (ValidationResult, error) {
	cfg := cmd.flags.EffectiveConfig()

	result := ValidationResult{
		ConfigFile: cmd.flags.ConfigPath,
		TaskFile:   cfg.Store.Path,
	}

	err := cfg.ValidateDeep(cmd.flags.ConfigPath)
	if err == nil {
		result.Valid = true
		return result, nil
	}

	var fieldErrs criterio.FieldErrors
	if !errors.As(err, &fieldErrs) {
		return result, fmt.Errorf("validate config: %w", err)
	}

	for _, fe := range fieldErrs {
		result.Errors = append(result.Errors, ValidationError{Field: fe.Field, Message: fe.Err.Error()})
	}

	return result, nil
}

func (cmd *ConfigValidateCmd) outputText(c *cli.Command, result ValidationResult) {
	w := c.Root().Writer
	s := styles.New(w, true)

	_, _ = fmt.Fprintf(w, "config file: %s\n", result.ConfigFile)
	_, _ = fmt.Fprintf(w, "task file:   %s\n", result.TaskFile)

	for _, e := range result.Errors {
		_, _ = fmt.Fprintf(w, "%s %s: %s\n", s.Error.Render("✗"), e.Field, e.Message)
	}

	_, _ = fmt.Fprintln(w)
	if result.Valid {
		_, _ = fmt.Fprintln(w, s.Success.Render("Configuration is valid"))
		return
	}

	_, _ = fmt.Fprintln(w, s.Error.Render(fmt.Sprintf("%d error(s) found", len(result.Errors))))
}
