package cli

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoSubcommand is returned when neither "render" nor "check" is provided
var ErrNoSubcommand = errors.New("missing subcommand: usage: symbology <render|check> [flags]")

// ErrMissingFlagValue is returned when a flag requires a value but none is provided
var ErrMissingFlagValue = errors.New("flag requires a value")

// ErrUnknownFlag is returned for flags the subcommand does not accept
var ErrUnknownFlag = errors.New("unknown flag")

// ErrUnexpectedArgument is returned for positional arguments
var ErrUnexpectedArgument = errors.New("unexpected argument")

// Subcommand represents the CLI subcommand
type Subcommand string

const (
	SubcommandRender Subcommand = "render"
	SubcommandCheck  Subcommand = "check"
)

// Command represents the parsed CLI input
type Command struct {
	Subcommand Subcommand // "render" or "check"

	DefinitionPath string // --file <path>
	CIMode         bool   // --ci

	// render flags
	YAMLOutput     bool   // --yaml
	ArtifactFile   string // --artifact-file <path>
	ArtifactStdout bool   // --artifact-stdout

	// check flags
	JSONOutput bool // --json
}

// ParseArgs parses CLI arguments into a Command.
// It expects args to be os.Args[1:] (excluding the program name).
func ParseArgs(args []string) (Command, error) {
	if len(args) == 0 {
		return Command{}, ErrNoSubcommand
	}

	subcommand := Subcommand(args[0])
	if subcommand != SubcommandRender && subcommand != SubcommandCheck {
		return Command{}, ErrNoSubcommand
	}

	cmd := Command{
		Subcommand: subcommand,
	}

	for i := 1; i < len(args); i++ {
		arg := args[i]

		if !strings.HasPrefix(arg, "--") {
			return Command{}, fmt.Errorf("%w: %s", ErrUnexpectedArgument, arg)
		}

		flagName := strings.TrimPrefix(arg, "--")

		// Flags shared by every subcommand
		switch flagName {
		case "file":
			if i+1 >= len(args) {
				return Command{}, fmt.Errorf("%w: --%s", ErrMissingFlagValue, flagName)
			}
			i++
			cmd.DefinitionPath = args[i]
			continue
		case "ci":
			cmd.CIMode = true
			continue
		}

		switch {
		case subcommand == SubcommandRender && flagName == "yaml":
			cmd.YAMLOutput = true
		case subcommand == SubcommandRender && flagName == "artifact-stdout":
			cmd.ArtifactStdout = true
		case subcommand == SubcommandRender && flagName == "artifact-file":
			if i+1 >= len(args) {
				return Command{}, fmt.Errorf("%w: --%s", ErrMissingFlagValue, flagName)
			}
			i++
			cmd.ArtifactFile = args[i]
		case subcommand == SubcommandCheck && flagName == "json":
			cmd.JSONOutput = true
		default:
			return Command{}, fmt.Errorf("%w for %s: %s", ErrUnknownFlag, subcommand, arg)
		}
	}

	return cmd, nil
}
