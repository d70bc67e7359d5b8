package repl

import "strings"

// Command names accepted by the loop.
const (
	CmdHelp     = "h"
	CmdAdd      = "a"
	CmdList     = "l"
	CmdComplete = "c"
	CmdDelete   = "d"
	CmdClear    = "x"
	CmdStats    = "s"
	CmdQuit     = "q"
)

// ParsedCommand is one line of input split into a command name and its argument.
type ParsedCommand struct {
	// Name is the lower-cased leading token.
	Name string
	// Arg is everything after the first space, unmodified. Empty when HasArg is false.
	Arg string
	// HasArg reports whether the line contained a space after the name.
	HasArg bool
}

// ParseLine trims surrounding whitespace and splits the line at the first space.
// The name is matched case-insensitively; the argument keeps its case and inner
// spacing, so "a  Buy milk" yields the argument " Buy milk".
func ParseLine(line string) ParsedCommand {
	line = strings.TrimSpace(line)

	name, arg, found := strings.Cut(line, " ")
	return ParsedCommand{
		Name:   strings.ToLower(name),
		Arg:    arg,
		HasArg: found,
	}
}

// takesArg reports whether the command requires an argument. Commands that do not
// take one must be the whole line.
func takesArg(name string) bool {
	switch name {
	case CmdAdd, CmdComplete, CmdDelete:
		return true
	}
	return false
}
