package world

// CommandKind identifies an external command.
type CommandKind uint8

const (
	CommandSpawn CommandKind = iota
	CommandSelect
)

func (k CommandKind) String() string {
	switch k {
	case CommandSpawn:
		return "spawn"
	case CommandSelect:
		return "select"
	default:
		return "unknown"
	}
}

// Command is an intent submitted from outside the tick, drained at the start
// of the next step.
type Command struct {
	Kind     CommandKind
	Template string  // CommandSpawn
	X, Y     float64 // CommandSelect, simulation space
}

// SpawnCommand returns a spawn intent for the named template.
func SpawnCommand(template string) Command {
	return Command{Kind: CommandSpawn, Template: template}
}

// SelectCommand returns a selection hit-test at (x, y).
func SelectCommand(x, y float64) Command {
	return Command{Kind: CommandSelect, X: x, Y: y}
}
