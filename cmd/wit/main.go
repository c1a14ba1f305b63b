// Command wit is the interactive front end for the Wit API client:
// a line-reading REPL plus one-shot subcommands for message parsing
// and entity management.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/dialogkit/wit"
	"github.com/dialogkit/wit/internal/buildinfo"
	"github.com/dialogkit/wit/internal/config"
)

// main is intentionally minimal: it builds the OS-level environment
// and delegates to run, which keeps os.Exit and os.Args out of the
// application logic so the whole command surface is testable.
func main() {
	ctx := context.Background()

	if err := run(ctx, os.Stdin, os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

// run is the real entry point. Arguments are parsed by hand rather
// than with the flag package: flag relies on package globals, which
// would stop tests from calling run concurrently.
func run(ctx context.Context, stdin io.Reader, stdout, stderr io.Writer, args []string) error {
	var configPath string
	var outputFmt string // "text" (default) or "json"
	var sessionID string
	var command string
	var cmdArgs []string

	for i := 0; i < len(args); i++ {
		switch {
		case args[i] == "-config" && i+1 < len(args):
			configPath = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-config="):
			configPath = strings.TrimPrefix(args[i], "-config=")
		case (args[i] == "-o" || args[i] == "--output") && i+1 < len(args):
			outputFmt = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-o="):
			outputFmt = strings.TrimPrefix(args[i], "-o=")
		case strings.HasPrefix(args[i], "--output="):
			outputFmt = strings.TrimPrefix(args[i], "--output=")
		case args[i] == "-session" && i+1 < len(args):
			sessionID = args[i+1]
			i++
		case strings.HasPrefix(args[i], "-session="):
			sessionID = strings.TrimPrefix(args[i], "-session=")
		case args[i] == "-h" || args[i] == "-help" || args[i] == "--help":
			return printUsage(stdout)
		case !strings.HasPrefix(args[i], "-") && command == "":
			command = args[i]
		default:
			if command != "" {
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
	case "", "interactive":
		return runInteractive(ctx, stdin, stdout, stderr, configPath, sessionID)
	case "message":
		if len(cmdArgs) == 0 {
			return fmt.Errorf("usage: wit message <text>")
		}
		return runMessage(ctx, stdout, stderr, configPath, outputFmt, strings.Join(cmdArgs, " "))
	case "converse":
		if len(cmdArgs) == 0 {
			return fmt.Errorf("usage: wit converse <text>")
		}
		return runConverse(ctx, stdout, stderr, configPath, sessionID, strings.Join(cmdArgs, " "))
	case "entities":
		return runEntities(ctx, stdout, stderr, configPath)
	case "entity":
		if len(cmdArgs) != 1 {
			return fmt.Errorf("usage: wit entity <id>")
		}
		return runEntity(ctx, stdout, stderr, configPath, cmdArgs[0])
	case "entity-delete":
		if len(cmdArgs) != 1 {
			return fmt.Errorf("usage: wit entity-delete <id>")
		}
		return runEntityDelete(ctx, stdout, stderr, configPath, cmdArgs[0])
	case "history":
		var session string
		if len(cmdArgs) > 0 {
			session = cmdArgs[0]
		}
		return runHistory(stdout, configPath, session)
	case "version":
		return runVersion(stdout, outputFmt)
	default:
		return fmt.Errorf("unknown command: %s", command)
	}
}

func printUsage(w io.Writer) error {
	fmt.Fprint(w, `wit - command-line client for the Wit API

Usage:
  wit [flags] [command]

Commands:
  interactive          read lines from stdin and parse each one (default)
  message <text>       one-shot NLU parse
  converse <text>      run one conversation step for a session
  entities             list entities
  entity <id>          show one entity
  entity-delete <id>   delete an entity
  history [session]    list recorded sessions, or replay one transcript
  version              print build information

Flags:
  -config <path>    config file (default: wit.yaml, ~/.config/wit/config.yaml)
  -session <id>     session id for interactive/converse (default: random)
  -o <format>       output format: text or json
`)
	return nil
}

func runVersion(w io.Writer, outputFmt string) error {
	if outputFmt == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(buildinfo.Info())
	}
	fmt.Fprintln(w, buildinfo.String())
	return nil
}

// newLogger builds the CLI's slog logger. Logs go to stderr so command
// output on stdout stays machine-readable.
func newLogger(w io.Writer, level slog.Level) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// loadConfig locates and parses the YAML config file, falling back to
// environment-only configuration when no file exists and none was
// asked for explicitly.
func loadConfig(explicit string) (*config.Config, error) {
	cfgPath, err := config.FindConfig(explicit)
	if err != nil {
		if explicit != "" {
			return nil, err
		}
		// No file anywhere: run on WIT_ACCESS_TOKEN alone.
		return config.Default(), nil
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", cfgPath, err)
	}
	return cfg, nil
}

// newClient builds the library client from CLI configuration.
func newClient(cfg *config.Config, logger *slog.Logger) (*wit.Client, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []wit.Option{wit.WithLogger(logger)}
	if cfg.APIHost != "" {
		opts = append(opts, wit.WithAPIHost(cfg.APIHost))
	}
	if cfg.APIVersion != "" {
		opts = append(opts, wit.WithAPIVersion(cfg.APIVersion))
	}
	return wit.New(cfg.AccessToken, opts...), nil
}

// setup is the shared preamble for one-shot commands: config, logger,
// client.
func setup(stderr io.Writer, configPath string) (*config.Config, *wit.Client, error) {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return nil, nil, err
	}

	level, err := config.ParseLogLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := newLogger(stderr, level)

	client, err := newClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return cfg, client, nil
}

func runMessage(ctx context.Context, stdout, stderr io.Writer, configPath, outputFmt, text string) error {
	_, client, err := setup(stderr, configPath)
	if err != nil {
		return err
	}

	resp, err := client.Message(ctx, text)
	if err != nil {
		return fmt.Errorf("message: %w", err)
	}

	if outputFmt == "json" {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resp)
	}

	fmt.Fprintf(stdout, "text: %s\n", resp.Text)
	for name := range resp.Entities {
		fmt.Fprintf(stdout, "entity: %s\n", name)
	}
	return nil
}

func runEntities(ctx context.Context, stdout, stderr io.Writer, configPath string) error {
	_, client, err := setup(stderr, configPath)
	if err != nil {
		return err
	}

	ids, err := client.GetEntities(ctx)
	if err != nil {
		return fmt.Errorf("entities: %w", err)
	}
	for _, id := range ids {
		fmt.Fprintln(stdout, id)
	}
	return nil
}

func runEntity(ctx context.Context, stdout, stderr io.Writer, configPath, id string) error {
	_, client, err := setup(stderr, configPath)
	if err != nil {
		return err
	}

	entity, err := client.GetEntity(ctx, id)
	if err != nil {
		return fmt.Errorf("entity %s: %w", id, err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(entity)
}

func runEntityDelete(ctx context.Context, stdout, stderr io.Writer, configPath, id string) error {
	_, client, err := setup(stderr, configPath)
	if err != nil {
		return err
	}

	if _, err := client.DeleteEntity(ctx, id); err != nil {
		return fmt.Errorf("delete entity %s: %w", id, err)
	}
	fmt.Fprintf(stdout, "deleted %s\n", id)
	return nil
}
