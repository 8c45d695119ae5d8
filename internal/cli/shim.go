// pattern: Imperative Shell
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	flag "github.com/spf13/pflag"

	"shimctl/internal/shim"
)

const (
	listUsage   = "Usage: shimctl shim list [--verbose] [--watch]"
	createUsage = "Usage: shimctl shim create <name> [--verbose]"
	deleteUsage = "Usage: shimctl shim delete <name> [--verbose]"
	autoUsage   = "Usage: shimctl shim auto [<path>] [--verbose]"
)

// RegisterShimCommands registers the shim command group commands.
func RegisterShimCommands(group *Group, env *Env) {
	group.AddCommand(&Command{
		Name:    "list",
		Summary: "List shims, and with --verbose what each one runs",
		Usage:   listUsage,
		Run: func(args []string) error {
			fs := newFlagSet("shim list")
			verbose := fs.BoolP("verbose", "v", false, "resolve each shim")
			watch := fs.BoolP("watch", "w", false, "print the list again whenever a shim is added or removed")
			if err := fs.Parse(args); err != nil {
				return &UsageError{Usage: listUsage, Reason: err.Error()}
			}
			if fs.NArg() != 0 {
				return &UsageError{Usage: listUsage, Reason: "unexpected arguments"}
			}

			if !*watch {
				return listShims(env, *verbose)
			}
			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return watchShims(ctx, env, *verbose)
		},
	})

	group.AddCommand(&Command{
		Name:    "create",
		Summary: "Create a shim",
		Usage:   createUsage,
		Run: func(args []string) error {
			name, verbose, err := parseNameArgs("shim create", createUsage, args)
			if err != nil {
				return err
			}
			if err := env.Registry.Create(name); err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(env.Stdout, "created shim `%s` in %s\n", name, env.Registry.Dir())
			}
			return nil
		},
	})

	group.AddCommand(&Command{
		Name:    "delete",
		Summary: "Delete a shim",
		Usage:   deleteUsage,
		Run: func(args []string) error {
			name, verbose, err := parseNameArgs("shim delete", deleteUsage, args)
			if err != nil {
				return err
			}
			if err := env.Registry.Delete(name); err != nil {
				return err
			}
			if verbose {
				fmt.Fprintf(env.Stdout, "deleted shim `%s` from %s\n", name, env.Registry.Dir())
			}
			return nil
		},
	})

	group.AddCommand(&Command{
		Name:    "auto",
		Summary: "Create shims for every executable a project declares",
		Usage:   autoUsage,
		Run: func(args []string) error {
			fs := newFlagSet("shim auto")
			verbose := fs.BoolP("verbose", "v", false, "print the shims that were created")
			if err := fs.Parse(args); err != nil {
				return &UsageError{Usage: autoUsage, Reason: err.Error()}
			}
			if fs.NArg() > 1 {
				return &UsageError{Usage: autoUsage, Reason: "expected at most one path"}
			}
			return autoshim(env, fs.Arg(0), *verbose)
		},
	})
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func parseNameArgs(cmd, usage string, args []string) (string, bool, error) {
	fs := newFlagSet(cmd)
	verbose := fs.BoolP("verbose", "v", false, "verbose output")
	if err := fs.Parse(args); err != nil {
		return "", false, &UsageError{Usage: usage, Reason: err.Error()}
	}
	if fs.NArg() != 1 {
		return "", false, &UsageError{Usage: usage, Reason: "expected exactly one shim name"}
	}
	return fs.Arg(0), *verbose, nil
}

func listShims(env *Env, verbose bool) error {
	entries, err := shim.List(env.Registry, env.Resolver, env.projectContext(), verbose)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		fmt.Fprintln(env.Stdout, env.Styles.Entry(entry))
	}
	return nil
}

// watchShims prints the listing once and again after every change until ctx
// is done. A listing that fails while watching is reported and watching goes on.
func watchShims(ctx context.Context, env *Env, verbose bool) error {
	if err := listShims(env, verbose); err != nil {
		return err
	}
	return env.Registry.Watch(ctx, func() {
		fmt.Fprintln(env.Stdout, env.Styles.SubtleStyle().Render("---"))
		if err := listShims(env, verbose); err != nil {
			env.Logger.Warn("listing shims failed", "error", err)
			fmt.Fprintln(env.Stderr, env.Styles.Error(err))
		}
	})
}

func autoshim(env *Env, path string, verbose bool) error {
	created, err := env.Scanner.Autoshim(path, env.binarySource())

	var autoErr *shim.AutoshimError
	if errors.As(err, &autoErr) {
		for _, f := range autoErr.Failures {
			fmt.Fprintln(env.Stderr, env.Styles.Failure(f))
		}
	}
	if verbose {
		for _, name := range created {
			fmt.Fprintf(env.Stdout, "created shim `%s`\n", name)
		}
	}
	return err
}
