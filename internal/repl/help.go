package repl

const helpText = `
Commands:
  a <description> - Add new task
  l              - List all tasks
  c <id>         - Mark task as complete
  d <id>         - Delete task
  x              - Clear completed tasks
  s              - Show task statistics
  h              - Show this help
  q              - Quit
`

// Messages printed by the loop.
const (
	MsgTaskAdded      = "Task added"
	MsgNoTasks        = "No tasks"
	MsgCompleted      = "Task marked as complete"
	MsgDeleted        = "Task deleted"
	MsgNotFound       = "Task not found"
	MsgInvalidID      = "Invalid task ID"
	MsgCleared        = "Completed tasks cleared"
	MsgClearCancelled = "Clear cancelled"
	MsgInvalidCommand = "Invalid command. Type h for help."

	prompt      = "\nEnter command (h for help): "
	glyphDone   = "✓"
	glyphUndone = " "
)
