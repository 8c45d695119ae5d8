// pattern: Imperative Shell
package cli

import (
	"fmt"
	"io"
	"os"

	"shimctl/internal/catalog"
	"shimctl/internal/layout"
	"shimctl/internal/logging"
	"shimctl/internal/project"
	"shimctl/internal/render"
	"shimctl/internal/shim"
)

// Env is what commands run against: the shim registry, the resolver over the
// current catalog, and the project the user is standing in, if any.
type Env struct {
	Home     layout.Home
	Registry *shim.Registry
	Resolver *shim.Resolver
	Scanner  *shim.Scanner
	Project  *project.Project
	Styles   *render.Styles
	Logger   *logging.ScopedLogger
	Stdout   io.Writer
	Stderr   io.Writer
}

// NewEnv wires the shim components for home. launcher overrides the home's
// default launcher when set. proj is nil outside a project.
func NewEnv(home layout.Home, launcher string, cat *catalog.Catalog, proj *project.Project, styles *render.Styles, logs logging.LoggerProvider) *Env {
	if launcher == "" {
		launcher = home.LauncherFile()
	}
	registry := shim.NewRegistry(home.ShimDir(), launcher, logs.For("shim"))
	return &Env{
		Home:     home,
		Registry: registry,
		Resolver: shim.NewResolver(cat, home),
		Scanner:  shim.NewScanner(registry, LocateProject, logs.For("autoshim")),
		Project:  proj,
		Styles:   styles,
		Logger:   logs.For("cli"),
		Stdout:   os.Stdout,
		Stderr:   os.Stderr,
	}
}

// LocateProject finds the project containing dir for autoshim.
func LocateProject(dir string) (shim.BinarySource, error) {
	p, err := project.ForDir(dir)
	if err != nil || p == nil {
		return nil, err
	}
	return p, nil
}

// projectContext returns the ambient project, or an untyped nil outside one.
func (e *Env) projectContext() shim.ProjectContext {
	if e.Project == nil {
		return nil
	}
	return e.Project
}

func (e *Env) binarySource() shim.BinarySource {
	if e.Project == nil {
		return nil
	}
	return e.Project
}

// BuildApp creates and configures the CLI application with all commands and groups.
func BuildApp(version string, env *Env) *App {
	app := NewApp(version)
	app.Stdout = env.Stdout
	app.Stderr = env.Stderr
	app.RenderError = env.Styles.Error

	app.AddCommand(&Command{
		Name:    "which",
		Summary: "Print what a shim name runs in the current directory",
		Usage:   "Usage: shimctl which <name>",
		Run: func(args []string) error {
			return runWhich(env, args)
		},
	})

	app.AddCommand(&Command{
		Name:    "version",
		Summary: "Print version and exit",
		Usage:   "Usage: shimctl version",
		Run: func(args []string) error {
			fmt.Fprintln(env.Stdout, version)
			return nil
		},
	})

	shimGroup := app.AddGroup("shim", "Manage shims for node, yarn and project executables")
	RegisterShimCommands(shimGroup, env)

	return app
}

func runWhich(env *Env, args []string) error {
	const usage = "Usage: shimctl which <name>"
	if len(args) != 1 {
		return &UsageError{Usage: usage, Reason: "expected exactly one shim name"}
	}

	target, err := env.Resolver.Resolve(args[0], env.projectContext())
	if err != nil {
		return err
	}
	env.Logger.Debug("resolved shim", "name", args[0], "kind", target.Kind.String())
	fmt.Fprintln(env.Stdout, env.Styles.Target(target))
	return nil
}
