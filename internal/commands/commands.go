package commands

import (
	"flag"
	"fmt"
	"io"
	"sort"
	"strings"
)

// Command is a subcommand with its own flags and a Run function.
// Flags are defined on FlagSet; Run is called after Parse and gets the remaining positional arguments.
// A command registered without a FlagSet is positional only: its arguments are never parsed
// as flags, so "rotate -45" passes "-45" through.
type Command struct {
	Name       string
	Usage      string
	FlagSet    *flag.FlagSet
	Run        func(args []string) error
	positional bool
}

// Registry holds subcommands by name. Add commands with Register; run with Execute.
type Registry struct {
	cmds map[string]*Command
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cmds: make(map[string]*Command)}
}

// Register adds a subcommand. name is the first token of a console line (e.g. "shape").
// fs is that command's FlagSet; run is called after fs.Parse(args[1:]) succeeds.
// A nil fs registers a positional-only command; its arguments reach run unparsed.
func (r *Registry) Register(name, usage string, fs *flag.FlagSet, run func(args []string) error) {
	positional := fs == nil
	if positional {
		fs = NewFlagSet(name)
	}
	r.cmds[name] = &Command{Name: name, Usage: usage, FlagSet: fs, Run: run, positional: positional}
}

// NewFlagSet returns a FlagSet for a console command: errors are returned, never printed.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

// Names returns the registered command names, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.cmds))
	for name := range r.cmds {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Help returns one usage line per command.
func (r *Registry) Help() []string {
	names := r.Names()
	out := make([]string, len(names))
	for i, name := range names {
		out[i] = r.cmds[name].Usage
	}
	return out
}

// Parse tokenizes a console line by spaces. Blank lines return nil, false.
func Parse(line string) (args []string, ok bool) {
	args = strings.Fields(line)
	if len(args) == 0 {
		return nil, false
	}
	return args, true
}

// Execute runs the subcommand in args[0] with args[1:] as flag/positional arguments.
// Returns an error for unknown command, parse error, or from Run().
func (r *Registry) Execute(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("missing subcommand")
	}
	name := args[0]
	cmd, ok := r.cmds[name]
	if !ok {
		return fmt.Errorf("unknown command: %s", name)
	}
	if cmd.positional {
		return cmd.Run(args[1:])
	}
	if err := cmd.FlagSet.Parse(args[1:]); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return cmd.Run(cmd.FlagSet.Args())
}

// ExecuteLine parses and runs a console line. Blank lines do nothing.
func (r *Registry) ExecuteLine(line string) error {
	args, ok := Parse(line)
	if !ok {
		return nil
	}
	return r.Execute(args)
}
