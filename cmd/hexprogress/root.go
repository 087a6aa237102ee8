package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
)

// Version is set at build time.
var Version = "0.1.0-dev"

// Command represents a CLI command.
type Command struct {
	Name  string
	Short string
	Long  string
	Usage string
	Run   func(args []string) error
}

// Commands registered with the CLI.
var commands = make(map[string]*Command)

// RegisterCommand adds a command to the CLI.
func RegisterCommand(cmd *Command) {
	commands[cmd.Name] = cmd
}

// Execute runs the command named by the first argument.
func Execute(args []string) error {
	if len(args) == 0 {
		printHelp(os.Stdout)
		return nil
	}
	switch args[0] {
	case "-h", "--help", "help":
		printHelp(os.Stdout)
		return nil
	case "--version", "version":
		fmt.Printf("hexprogress version %s\n", Version)
		return nil
	}

	cmd, ok := commands[args[0]]
	if !ok {
		printHelp(os.Stderr)
		return fmt.Errorf("unknown command: %s", args[0])
	}
	for _, arg := range args[1:] {
		if arg == "-h" || arg == "--help" || arg == "help" {
			printCommandHelp(os.Stdout, cmd)
			return nil
		}
	}
	return cmd.Run(args[1:])
}

func printHelp(w io.Writer) {
	fmt.Fprintln(w, "hexprogress renders hexagon progress indicators.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  hexprogress <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  %-10s %s\n", name, commands[name].Short)
	}
}

func printCommandHelp(w io.Writer, cmd *Command) {
	fmt.Fprintln(w, cmd.Long)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintf(w, "  %s\n", cmd.Usage)
}

// commonFlags are shared by the rendering commands.
type commonFlags struct {
	config  string
	size    float64
	value   float64
	verbose bool
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "YAML or TOML file with the widget options")
	fs.Float64Var(&c.size, "size", 200, "size in pixels, used when the configuration has none")
	fs.Float64Var(&c.value, "value", -1, "progress value, overriding the configuration if in [0, 1]")
	fs.BoolVar(&c.verbose, "v", false, "verbose logging")
}

func newLogger(verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}
