// Package cmd implements the anchor CLI commands.
//
// The command structure follows standard Go CLI patterns with a root command
// that dispatches to subcommands (layout, hit, watch).
package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/go-drift/anchor/cmd/anchor/internal/config"
	"github.com/go-drift/anchor/pkg/core"
	"github.com/go-drift/anchor/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

// Command represents a CLI command.
type Command struct {
	Name        string
	Short       string
	Long        string
	Usage       string
	Run         func(args []string) error
	SubCommands []*Command
}

var rootCmd = &Command{
	Name:  "anchor",
	Short: "Anchor - inspect anchored element layouts",
	Long: `Anchor loads a scene description (YAML or TOML), builds the element
tree, resolves every position and clip rectangle and prints the result.

Use "anchor <command> --help" for more information about a command.`,
	Usage: "anchor <command> [flags]",
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
	rootCmd.SubCommands = append(rootCmd.SubCommands, cmd)
}

// Output streams. Tests replace them.
var (
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// globalFlags holds flags accepted before or after the command name.
type globalFlags struct {
	noColor  bool
	logLevel string
}

var flags globalFlags

// Execute runs the CLI with the process arguments.
func Execute() error {
	return run(os.Args[1:])
}

func run(args []string) error {
	flags = globalFlags{}

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Handle global flags
	var filteredArgs []string
	for i := 0; i < len(args); i++ {
		arg := args[i]
		switch arg {
		case "-h", "--help", "help":
			if len(filteredArgs) == 0 {
				printHelp(rootCmd)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "-v", "--version", "version":
			if len(filteredArgs) == 0 {
				fmt.Fprintf(stdout, "anchor version %s (built %s)\n", Version, BuildTime)
				return nil
			}
			filteredArgs = append(filteredArgs, arg)
		case "--no-color":
			flags.noColor = true
		case "--log-level":
			if i+1 < len(args) {
				flags.logLevel = args[i+1]
				i++
			} else {
				return fmt.Errorf("--log-level requires a level (debug, info, warn, error)")
			}
		default:
			if strings.HasPrefix(arg, "--log-level=") {
				flags.logLevel = strings.TrimPrefix(arg, "--log-level=")
				continue
			}
			filteredArgs = append(filteredArgs, arg)
		}
	}
	args = filteredArgs

	if len(args) == 0 {
		printHelp(rootCmd)
		return nil
	}

	// Find and execute the command
	cmdName := args[0]
	cmd, ok := commands[cmdName]
	if !ok {
		fmt.Fprintf(stderr, "Error: unknown command %q\n\n", cmdName)
		printHelp(rootCmd)
		return fmt.Errorf("unknown command: %s", cmdName)
	}

	// Check for help flag on subcommand
	cmdArgs := args[1:]
	for _, arg := range cmdArgs {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(cmd)
			return nil
		}
	}

	return cmd.Run(cmdArgs)
}

// session is the resolved configuration shared by the commands.
type session struct {
	cfg    *config.Resolved
	color  bool
	logger *slog.Logger
}

// newSession resolves anchor.yaml and the global flags, then points the
// engine's logger and error handler at stderr.
func newSession() (*session, error) {
	root, err := config.FindProjectRoot()
	if err != nil {
		return nil, err
	}
	cfg, err := config.Resolve(root)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level := cfg.LogLevel
	if flags.logLevel != "" {
		if err := level.UnmarshalText([]byte(flags.logLevel)); err != nil {
			return nil, fmt.Errorf("invalid --log-level %q: %w", flags.logLevel, err)
		}
	}

	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	core.SetLogger(logger)
	verbose := level <= slog.LevelDebug
	errors.SetHandler(&errors.LogHandler{Logger: logger, Verbose: verbose})
	errors.SetCaptureStacks(verbose)

	return &session{
		cfg:    cfg,
		color:  cfg.Color && !flags.noColor,
		logger: logger,
	}, nil
}

// scenePath returns the explicit path, or the project default.
func (s *session) scenePath(explicit string) (string, error) {
	if explicit != "" {
		return explicit, nil
	}
	if s.cfg.Scene != "" {
		return s.cfg.Scene, nil
	}
	return "", fmt.Errorf("scene file is required (pass a path or set scene in %s)", config.FileName)
}

func printHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Commands:")
	for _, sub := range cmd.SubCommands {
		fmt.Fprintf(stdout, "  %-14s %s\n", sub.Name, sub.Short)
	}
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Flags:")
	fmt.Fprintln(stdout, "  -h, --help           Show help for a command")
	fmt.Fprintln(stdout, "  -v, --version        Show version information")
	fmt.Fprintln(stdout, "  --no-color           Disable colored output")
	fmt.Fprintln(stdout, "  --log-level LEVEL    Engine log level (debug, info, warn, error)")
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Configuration:")
	fmt.Fprintf(stdout, "  %-20s Optional project file (scene, log.level, output.color)\n", config.FileName)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Examples:")
	fmt.Fprintln(stdout, "  anchor layout ui.yaml        Print resolved geometry")
	fmt.Fprintln(stdout, "  anchor hit ui.toml 40 12     Show the element under a point")
	fmt.Fprintln(stdout, "  anchor watch ui.yaml         Re-print on every save")
}

func printCommandHelp(cmd *Command) {
	fmt.Fprintln(stdout, cmd.Long)
	fmt.Fprintln(stdout)
	fmt.Fprintln(stdout, "Usage:")
	fmt.Fprintf(stdout, "  %s\n", cmd.Usage)
}
