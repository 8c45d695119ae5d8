// pattern: Imperative Shell
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	flag "github.com/spf13/pflag"

	"shimctl/internal/catalog"
	"shimctl/internal/cli"
	"shimctl/internal/config"
	"shimctl/internal/fail"
	"shimctl/internal/layout"
	"shimctl/internal/logging"
	"shimctl/internal/project"
	"shimctl/internal/render"
)

var version = "dev"

func main() {
	os.Exit(int(run(os.Args[1:], os.Stdout, os.Stderr)))
}

func run(args []string, stdout, stderr io.Writer) fail.ExitCode {
	fs := flag.NewFlagSet("shimctl", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	// Stop parsing flags after the first non-flag arg (the subcommand),
	// so that --help after a subcommand is handled by the subcommand.
	fs.SetInterspersed(false)

	configDir := fs.StringP("config-dir", "c", "", "config directory (default: ~/.config/shimctl)")
	homeDir := fs.String("home", "", "shimctl home directory (default: $SHIMCTL_HOME or ~/.shimctl)")
	debug := fs.Bool("debug", false, "mirror debug logs to stderr")

	showOptions := false
	if err := fs.Parse(args); err != nil {
		if !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(stderr, "error: %v\n\n%s", err, fs.FlagUsages())
			return fail.InvalidArguments
		}
		showOptions = true
	}
	cmdArgs := fs.Args()
	if showOptions {
		cmdArgs = nil
	}

	cfg, err := loadConfig(*configDir)
	if err != nil {
		fmt.Fprintf(stderr, "error: failed to load config: %v\n", err)
		return fail.ConfigurationError
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "error: invalid config: %v\n", err)
		return fail.ConfigurationError
	}
	styles := render.NewStyles(cfg.Theme)

	home, err := resolveHome(*homeDir, cfg)
	if err != nil {
		fmt.Fprintln(stderr, styles.Error(err))
		return fail.ConfigurationError
	}

	logs, closeLogs := startLogging(home, cfg, *debug, stderr)
	defer closeLogs()
	appLogger := logs.For("app")
	appLogger.Debug("shimctl starting", "version", version, "home", home.Root, "args", cmdArgs)

	cat, err := catalog.Load(home.CatalogFile(), home.CatalogLockFile())
	if err != nil {
		appLogger.Error("failed to load catalog", "error", err)
		fmt.Fprintln(stderr, styles.Error(err))
		return fail.ConfigurationError
	}

	proj, err := ambientProject()
	if err != nil {
		appLogger.Error("failed to load project", "error", err)
		fmt.Fprintln(stderr, styles.Error(err))
		return fail.CodeOf(err)
	}
	if proj != nil {
		appLogger.Debug("ambient project", "root", proj.Root(), "name", proj.Manifest().Name)
	}

	env := cli.NewEnv(home, cfg.Launcher, cat, proj, styles, logs)
	env.Stdout = stdout
	env.Stderr = stderr
	app := cli.BuildApp(version, env)

	code := app.Execute(cmdArgs)
	if len(cmdArgs) == 0 {
		fmt.Fprint(stdout, fs.FlagUsages())
	}
	appLogger.Debug("shimctl finished", "exit_code", code.String())
	return code
}

// loadConfig loads the configuration from the specified directory or default location.
func loadConfig(configDir string) (config.Config, error) {
	if configDir != "" {
		return config.LoadFromDir(configDir)
	}
	return config.Load()
}

// resolveHome lets --home win over $SHIMCTL_HOME and the config file.
func resolveHome(flagValue string, cfg config.Config) (layout.Home, error) {
	if flagValue != "" {
		return layout.HomeAt(flagValue)
	}
	return layout.ResolveHome(cfg.Home)
}

// startLogging opens the rotated log under home. A log that cannot be opened
// is reported once and logging is switched off for the run.
func startLogging(home layout.Home, cfg config.Config, debug bool, stderr io.Writer) (logging.LoggerProvider, func()) {
	logCfg := logging.Config{
		FilePath: home.LogFile(),
		Level:    cfg.LogLevel,
	}
	if debug {
		logCfg.Level = "debug"
		logCfg.Console = stderr
	}

	logManager, err := logging.NewManager(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "warning: logging disabled: %v\n", err)
		return logging.NopProvider(), func() {}
	}
	return logManager, func() { _ = logManager.Close() }
}

// ambientProject is the project containing the working directory, or nil.
func ambientProject() (*project.Project, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("detect working directory: %w", err)
	}
	return project.ForDir(cwd)
}
