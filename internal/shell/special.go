package shell

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sqlsh-dev/sqlsh/pkg/completer"
)

// errQuit signals an orderly exit from the REPL loop.
var errQuit = errors.New("quit")

type commandFunc func(ctx context.Context, sh *Shell, args []string) error

// command is one backslash command.
type command struct {
	name    string
	aliases []string
	usage   string
	help    string
	run     commandFunc
}

// commandSet holds the registered backslash commands.
type commandSet struct {
	byName map[string]*command
	order  []*command
}

func newCommandSet() *commandSet {
	cs := &commandSet{byName: make(map[string]*command)}
	for _, c := range builtinCommands() {
		cs.register(c)
	}
	return cs
}

func (cs *commandSet) register(c *command) {
	cs.order = append(cs.order, c)
	cs.byName[c.name] = c
	for _, alias := range c.aliases {
		cs.byName[alias] = c
	}
}

// names returns every command name and alias, for the completion
// vocabulary.
func (cs *commandSet) names() []string {
	var names []string
	for _, c := range cs.order {
		names = append(names, c.name)
		names = append(names, c.aliases...)
	}
	return names
}

// dispatch parses and runs one backslash line. Unknown commands are
// reported, not an error.
func (cs *commandSet) dispatch(ctx context.Context, sh *Shell, line string) error {
	fields := strings.Fields(line)
	c, ok := cs.byName[strings.ToLower(fields[0])]
	if !ok {
		sh.printError(fmt.Errorf(`unknown command %s (try \help)`, fields[0]))
		return nil
	}
	return c.run(ctx, sh, fields[1:])
}

func builtinCommands() []*command {
	return []*command{
		{
			name:    `\help`,
			aliases: []string{`\?`},
			help:    "Show this help",
			run: func(_ context.Context, sh *Shell, _ []string) error {
				sh.printHelp()
				return nil
			},
		},
		{
			name:    `\quit`,
			aliases: []string{`\q`},
			help:    "Exit the shell",
			run: func(_ context.Context, _ *Shell, _ []string) error {
				return errQuit
			},
		},
		{
			name: `\tables`,
			help: "List tables in the current schema",
			run: func(_ context.Context, sh *Shell, args []string) error {
				return sh.listObjects(completer.TableSuggestion{Schema: firstArg(args)}, "Table")
			},
		},
		{
			name: `\views`,
			help: "List views in the current schema",
			run: func(_ context.Context, sh *Shell, args []string) error {
				return sh.listObjects(completer.ViewSuggestion{Schema: firstArg(args)}, "View")
			},
		},
		{
			name: `\schemas`,
			help: "List known schemas",
			run: func(_ context.Context, sh *Shell, _ []string) error {
				return sh.listObjects(completer.SchemaSuggestion{}, "Schema")
			},
		},
		{
			name:    `\columns`,
			aliases: []string{`\d`},
			usage:   `\columns <table>`,
			help:    "List the columns of a table or view",
			run: func(_ context.Context, sh *Shell, args []string) error {
				if len(args) != 1 {
					return errors.New(`usage: \columns <table>`)
				}
				ref := parseTableRef(args[0])
				return sh.listObjects(completer.ColumnSuggestion{
					Tables: []completer.TableRef{ref},
				}, "Column")
			},
		},
		{
			name:  `\format`,
			usage: `\format [table|csv|json|markdown]`,
			help:  "Show or set the output format",
			run: func(_ context.Context, sh *Shell, args []string) error {
				if len(args) == 0 {
					sh.printInfo("Output format: " + sh.format)
					return nil
				}
				format := strings.ToLower(args[0])
				if !validFormat(format) {
					return fmt.Errorf("unknown format %q (valid: %s)",
						args[0], strings.Join(Formats(), ", "))
				}
				sh.format = format
				sh.printInfo("Output format set to " + format)
				return nil
			},
		},
		{
			name: `\refresh`,
			help: "Reload completion metadata from the database",
			run: func(ctx context.Context, sh *Shell, _ []string) error {
				if err := sh.refresh(ctx); err != nil {
					return err
				}
				sh.printInfo("Completion metadata reloaded")
				return nil
			},
		},
		{
			name:  `\smart`,
			usage: `\smart [on|off]`,
			help:  "Show or toggle smart completion",
			run: func(_ context.Context, sh *Shell, args []string) error {
				switch firstArg(args) {
				case "":
				case "on":
					sh.comp.SetSmartCompletion(true)
				case "off":
					sh.comp.SetSmartCompletion(false)
				default:
					return errors.New(`usage: \smart [on|off]`)
				}
				if sh.comp.SmartCompletion() {
					sh.printInfo("Smart completion is on")
				} else {
					sh.printInfo("Smart completion is off")
				}
				return nil
			},
		},
		{
			name: `\favorites`,
			help: "List saved favorite queries",
			run: func(_ context.Context, sh *Shell, _ []string) error {
				names := sh.favorites.List()
				if len(names) == 0 {
					sh.printInfo("No favorite queries configured")
					return nil
				}
				for _, name := range names {
					query, _ := sh.favorites.Get(name)
					_, _ = fmt.Fprintf(sh.out, "%s\t%s\n", name, sh.styles.Muted.Render(query))
				}
				return nil
			},
		},
		{
			name:  `\f`,
			usage: `\f <name>`,
			help:  "Run a favorite query",
			run: func(ctx context.Context, sh *Shell, args []string) error {
				if len(args) != 1 {
					return errors.New(`usage: \f <name>`)
				}
				query, ok := sh.favorites.Get(args[0])
				if !ok {
					return fmt.Errorf("no favorite named %q", args[0])
				}
				_, _ = fmt.Fprintln(sh.out, sh.styles.Muted.Render(query))
				return sh.execute(ctx, query)
			},
		},
		{
			name:  `\use`,
			usage: `\use <schema>`,
			help:  "Switch the default schema for completion",
			run: func(_ context.Context, sh *Shell, args []string) error {
				if len(args) != 1 {
					return errors.New(`usage: \use <schema>`)
				}
				sh.comp.SetDatabase(args[0])
				sh.printInfo("Default schema set to " + sh.comp.Database())
				return nil
			},
		},
	}
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return strings.ToLower(args[0])
}
