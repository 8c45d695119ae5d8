// pattern: Functional Core
package cli

import (
	"errors"
	"fmt"
	"io"
	"maps"
	"os"
	"slices"

	"shimctl/internal/fail"
)

// Command represents a single CLI command with its metadata and handler.
type Command struct {
	Name    string
	Summary string
	Usage   string
	Run     func(args []string) error
}

// Group represents a group of related commands.
type Group struct {
	Name     string
	Summary  string
	Commands map[string]*Command
}

// App represents the top-level CLI application with groups and ungrouped commands.
type App struct {
	groups   map[string]*Group
	commands map[string]*Command
	version  string

	// Stdout receives help requested by the user. Defaults to os.Stdout.
	Stdout io.Writer
	// Stderr receives usage text and failures. Defaults to os.Stderr.
	Stderr io.Writer
	// RenderError formats a failed command for Stderr.
	RenderError func(error) string
}

// UsageError reports a malformed command line.
type UsageError struct {
	Usage  string
	Reason string
}

func (e *UsageError) Error() string {
	if e.Reason == "" {
		return e.Usage
	}
	return fmt.Sprintf("%s\n%s", e.Reason, e.Usage)
}

func (e *UsageError) ExitCode() fail.ExitCode { return fail.InvalidArguments }

// NewApp creates a new CLI application with the given version.
func NewApp(version string) *App {
	return &App{
		groups:   make(map[string]*Group),
		commands: make(map[string]*Command),
		version:  version,
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
		RenderError: func(err error) string {
			return "error: " + err.Error()
		},
	}
}

// AddGroup creates and registers a new command group.
func (a *App) AddGroup(name, summary string) *Group {
	g := &Group{
		Name:     name,
		Summary:  summary,
		Commands: make(map[string]*Command),
	}
	a.groups[name] = g
	return g
}

// AddCommand registers an ungrouped (top-level) command.
func (a *App) AddCommand(cmd *Command) {
	a.commands[cmd.Name] = cmd
}

// AddCommand registers a command in the group.
func (g *Group) AddCommand(cmd *Command) {
	g.Commands[cmd.Name] = cmd
}

// Execute dispatches the CLI arguments to the appropriate command and returns
// the process exit code.
func (a *App) Execute(args []string) fail.ExitCode {
	if len(args) == 0 || args[0] == "help" || args[0] == "--help" || args[0] == "-h" {
		a.PrintHelp(a.Stdout)
		return fail.Success
	}

	cmdName := args[0]

	if cmd, ok := a.commands[cmdName]; ok {
		return a.run(cmd, args[1:])
	}

	if group, ok := a.groups[cmdName]; ok {
		if len(args) < 2 || args[1] == "help" || args[1] == "--help" || args[1] == "-h" {
			group.PrintHelp(a.Stdout)
			return fail.Success
		}

		if cmd, ok := group.Commands[args[1]]; ok {
			return a.run(cmd, args[2:])
		}

		fmt.Fprintf(a.Stderr, "unknown command %q\n\n", cmdName+" "+args[1])
		group.PrintHelp(a.Stderr)
		return fail.InvalidArguments
	}

	fmt.Fprintf(a.Stderr, "unknown command %q\n\n", cmdName)
	a.PrintHelp(a.Stderr)
	return fail.InvalidArguments
}

func (a *App) run(cmd *Command, args []string) fail.ExitCode {
	for _, arg := range args {
		if arg == "--" {
			break
		}
		if arg == "--help" || arg == "-h" {
			fmt.Fprintf(a.Stdout, "%s\n", cmd.Usage)
			return fail.Success
		}
	}

	err := cmd.Run(args)
	if err == nil {
		return fail.Success
	}

	var usage *UsageError
	if errors.As(err, &usage) {
		fmt.Fprintf(a.Stderr, "%s\n", usage.Error())
		return usage.ExitCode()
	}
	fmt.Fprintf(a.Stderr, "%s\n", a.RenderError(err))
	return fail.CodeOf(err)
}

// PrintHelp prints the top-level help text.
func (a *App) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: shimctl [options] <command>\n\n")
	fmt.Fprintf(w, "Commands:\n")

	for _, name := range slices.Sorted(maps.Keys(a.commands)) {
		cmd := a.commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}

	if len(a.groups) > 0 {
		fmt.Fprintf(w, "\nCommand Groups:\n")
		for _, name := range slices.Sorted(maps.Keys(a.groups)) {
			group := a.groups[name]
			fmt.Fprintf(w, "  %-10s %s\n", group.Name, group.Summary)
		}
	}

	fmt.Fprintf(w, "\nUse \"shimctl <group> help\" for group details.\n\n")
	fmt.Fprintf(w, "Options:\n")
}

// PrintHelp prints help for a specific group.
func (g *Group) PrintHelp(w io.Writer) {
	fmt.Fprintf(w, "Usage: shimctl %s <command>\n\n", g.Name)
	fmt.Fprintf(w, "Commands:\n")
	names := slices.Sorted(maps.Keys(g.Commands))
	for _, name := range names {
		cmd := g.Commands[name]
		fmt.Fprintf(w, "  %-10s %s\n", cmd.Name, cmd.Summary)
	}
	fmt.Fprintf(w, "\nUse \"shimctl %s <command> --help\" for command details.\n", g.Name)
}
