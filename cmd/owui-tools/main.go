// Owui-tools bridges OpenWebUI tool calls to Jira through an MCP
// gateway.
//
// It exposes the Jira tool registry over a small HTTP API, a CLI for
// one-shot tool calls, and an init subcommand that scaffolds the
// configuration file. Configuration is loaded from a single YAML file
// discovered automatically (see [config.DefaultSearchPaths]).
//
// Usage:
//
//	owui-tools serve               Start the API server
//	owui-tools init [dir]          Write a default config file
//	owui-tools tools               List registered tools
//	owui-tools call <tool> [json]  Invoke one tool and print the result
//	owui-tools version             Print version and build information
//	owui-tools -o json version     Output version information as JSON
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/GilGedje/OWUI-Tools/internal/api"
	"github.com/GilGedje/OWUI-Tools/internal/buildinfo"
	"github.com/GilGedje/OWUI-Tools/internal/config"
	"github.com/GilGedje/OWUI-Tools/internal/jira"
	"github.com/GilGedje/OWUI-Tools/internal/tools"
)

// main is intentionally minimal. It constructs the OS-level environment
// (context, stdio, argv) and delegates immediately to [run]. This keeps
// os.Exit, os.Stdout, and os.Args out of the application logic so that
// the full startup-to-shutdown lifecycle can be driven from tests.
func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run is the real entry point for the owui-tools command. All OS-level
// dependencies are injected as parameters:
//
//   - ctx controls the lifetime of the process. Cancelling it triggers
//     graceful shutdown of the server.
//   - stdout and stderr receive all program output. Structured logs go
//     to stdout; fatal error messages go to stderr.
//   - args is os.Args[1:], the command-line arguments after the
//     program name. We parse these manually rather than using the flag
//     package to avoid global state that interferes with parallel tests.
//
// run returns nil on clean shutdown and a non-nil error for any
// failure. The caller (main) is responsible for printing the error and
// exiting.
func run(ctx context.Context, stdout io.Writer, stderr io.Writer, args []string) error {
	var configPath string
	var outputFmt string // "text" (default) or "json"
	var command string
	var cmdArgs []string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-config" && i+1 < len(args):
			configPath = args[i+1]
			i++ // skip the value
		case strings.HasPrefix(args[i], "-config="):
			configPath = strings.TrimPrefix(args[i], "-config=")
		case (args[i] == "-o" || args[i] == "--output") && i+1 < len(args):
			outputFmt = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-o="):
			outputFmt = strings.TrimPrefix(args[i], "-o=")
		case strings.HasPrefix(args[i], "--output="):
			outputFmt = strings.TrimPrefix(args[i], "--output=")
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			return printUsage(stdout)
		case !strings.HasPrefix(args[i], "-") && command == "":
			command = args[i]
		default:
			if command != "" {
				// Collect remaining args as subcommand arguments.
				cmdArgs = append(cmdArgs, args[i])
			} else {
				return fmt.Errorf("unknown flag: %s", args[i])
			}
		}
	}

	if outputFmt == "" {
		outputFmt = "text"
	}
	if outputFmt != "text" && outputFmt != "json" {
		return fmt.Errorf("unknown output format: %q (expected text or json)", outputFmt)
	}

	switch command {
	case "serve":
		return runServe(ctx, stdout, configPath)
	case "init":
		dir := "."
		if len(cmdArgs) > 0 {
			dir = cmdArgs[0]
		}
		return runInit(stdout, dir)
	case "tools":
		return runTools(stdout, configPath, outputFmt)
	case "call":
		if len(cmdArgs) == 0 {
			return fmt.Errorf("usage: owui-tools call <tool> [json-arguments]")
		}
		return runCall(ctx, stdout, stderr, configPath, cmdArgs)
	case "version":
		return runVersion(stdout, outputFmt)
	case "":
		return printUsage(stdout)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

// runVersion prints build metadata in the requested output format.
func runVersion(w io.Writer, outputFmt string) error {
	info := buildinfo.Info()
	if outputFmt == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(info)
	}
	fmt.Fprintln(w, buildinfo.String())
	// Print fields in a stable order for human readability.
	for _, k := range []string{"version", "git_commit", "git_branch", "build_time", "go_version", "os", "arch"} {
		if v, ok := info[k]; ok {
			fmt.Fprintf(w, "  %-12s %s\n", k+":", v)
		}
	}
	return nil
}

// printUsage writes the top-level help text to w. It is called when
// owui-tools is invoked with no arguments, or with -h / --help.
func printUsage(w io.Writer) error {
	fmt.Fprintln(w, "owui-tools - OpenWebUI Jira tools over MCP")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage: owui-tools [flags] <command> [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  serve               Start the API server")
	fmt.Fprintln(w, "  init [dir]          Write a default config file (default: .)")
	fmt.Fprintln(w, "  tools               List registered tools")
	fmt.Fprintln(w, "  call <tool> [json]  Invoke one tool and print the result")
	fmt.Fprintln(w, "  version             Show version information")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprintln(w, "  -config <path>    Path to config file (default: auto-discover)")
	fmt.Fprintln(w, "  -o, --output fmt  Output format: text (default) or json")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Config search order:")
	fmt.Fprintln(w, "  ./owui-tools.yaml, ~/.config/owui-tools/config.yaml, /etc/owui-tools/config.yaml")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The call subcommand reads JIRA_PAT, LITELLM_API_KEY, and")
	fmt.Fprintln(w, "REQUEST_TIMEOUT from the environment.")
	return nil
}

// runServe handles the "owui-tools serve" subcommand. It is the primary
// operating mode: loads config, builds the Jira connector and tool
// registry, starts the API server, and blocks until a shutdown signal
// arrives.
func runServe(ctx context.Context, stdout io.Writer, configPath string) error {
	logger := newLogger(stdout, slog.LevelInfo, "text")
	logger.Info("starting owui-tools", "version", buildinfo.Version, "commit", buildinfo.GitCommit, "branch", buildinfo.GitBranch, "built", buildinfo.BuildTime)

	cfg, cfgPath, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	// Reconfigure the logger now that we know the desired level and
	// format. The initial Info-level text logger covers only the
	// startup banner.
	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return err
	}
	logger = newLogger(stdout, level, cfg.LogFormat)

	logger.Info("config loaded",
		"path", cfgPath,
		"port", cfg.Listen.Port,
		"gateway", cfg.Gateway.URL,
		"server_group", cfg.Gateway.ServerGroup,
		"read_only", cfg.Gateway.ReadOnly,
	)

	registry := buildRegistry(cfg, logger)
	server := api.NewServer(cfg.Listen.Address, cfg.Listen.Port, registry, logger)

	// NotifyContext wraps the parent context so that SIGINT/SIGTERM
	// cancellation flows through the same ctx used by all components.
	ctx, cancel := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	go func() {
		<-ctx.Done()
		logger.Info("shutdown signal received")
		_ = server.Shutdown(context.Background())
	}()

	if err := server.Start(ctx); err != nil {
		if ctx.Err() == nil {
			return fmt.Errorf("server failed: %w", err)
		}
	}

	logger.Info("owui-tools stopped")
	return nil
}

// runTools prints the registered tool catalog without contacting the
// gateway. Useful for checking what a given config exposes.
func runTools(stdout io.Writer, configPath, outputFmt string) error {
	cfg, err := loadConfigOrDefault(configPath)
	if err != nil {
		return err
	}

	logger := newLogger(io.Discard, slog.LevelInfo, "text")
	registry := buildRegistry(cfg, logger)

	if outputFmt == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(registry.List())
	}

	for _, name := range registry.Names() {
		fmt.Fprintf(stdout, "%-32s %s\n", name, registry.Get(name).Description)
	}
	return nil
}

// runCall handles the "owui-tools call <tool> [json]" subcommand. It
// invokes a single tool and prints the result to stdout, reading the
// per-caller settings (JIRA_PAT, LITELLM_API_KEY, REQUEST_TIMEOUT)
// from the environment the way a host would pass user settings.
// Useful for smoke tests without starting the server.
func runCall(ctx context.Context, stdout io.Writer, stderr io.Writer, configPath string, args []string) error {
	cfg, err := loadConfigOrDefault(configPath)
	if err != nil {
		return err
	}

	// Logs go to stderr at warn level so stdout stays clean for the
	// tool result.
	logger := newLogger(stderr, slog.LevelWarn, "text")
	registry := buildRegistry(cfg, logger)

	toolName := args[0]
	argsJSON := "{}"
	if len(args) > 1 {
		argsJSON = args[1]
	}

	ctx = tools.WithCaller(ctx, callerFromEnv())

	result, err := registry.Execute(ctx, toolName, argsJSON)
	if err != nil {
		return err
	}

	fmt.Fprintln(stdout, result)
	return nil
}

// callerFromEnv builds the per-caller context from the environment.
func callerFromEnv() map[string]any {
	valves := map[string]any{}
	for _, key := range []string{"JIRA_PAT", "LITELLM_API_KEY", "REQUEST_TIMEOUT"} {
		if v := os.Getenv(key); v != "" {
			valves[key] = v
		}
	}
	return map[string]any{"valves": valves}
}

// buildRegistry wires the Jira connector's tools into a fresh registry.
func buildRegistry(cfg *config.Config, logger *slog.Logger) *tools.Registry {
	connector := jira.New(jira.Config{
		URL:          cfg.Gateway.URL,
		ServerGroup:  cfg.Gateway.ServerGroup,
		ReadOnly:     cfg.Gateway.ReadOnly,
		EnabledTools: cfg.Gateway.EnabledTools,
	}, logger)

	registry := tools.NewRegistry()
	connector.RegisterTools(registry)
	return registry
}

// newLogger creates a structured logger that writes to w at the given
// level and format. Format must be "text" or "json"; any other value
// defaults to text. All log output goes through slog; this helper
// standardizes the handler configuration across subcommands.
func newLogger(w io.Writer, level slog.Level, format string) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level:       level,
		ReplaceAttr: config.ReplaceLogLevelNames,
	}
	var handler slog.Handler
	if format == "json" {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}
	return slog.New(handler)
}

// loadConfig locates and parses the YAML configuration file. If
// explicit is non-empty, that exact path is used (and must exist).
// Otherwise, [config.FindConfig] searches the default locations.
// Returns the parsed config, the path that was loaded, and any error.
func loadConfig(explicit string) (*config.Config, string, error) {
	cfgPath, err := config.FindConfig(explicit)
	if err != nil {
		return nil, "", err
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, cfgPath, fmt.Errorf("load config %s: %w", cfgPath, err)
	}

	return cfg, cfgPath, nil
}

// loadConfigOrDefault is loadConfig for subcommands that work without
// a config file: an explicit -config path must still load, but when
// auto-discovery finds nothing the built-in defaults apply.
func loadConfigOrDefault(explicit string) (*config.Config, error) {
	cfg, _, err := loadConfig(explicit)
	if err != nil {
		if explicit != "" {
			return nil, err
		}
		return config.Default(), nil
	}
	return cfg, nil
}
