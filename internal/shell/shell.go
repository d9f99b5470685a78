// Package shell implements the interactive SQL shell: a readline REPL
// with context-aware tab completion, backslash commands, and pluggable
// result rendering. Completion candidates come from pkg/completer,
// fed by internal/metadata discovery over the active connection.
package shell

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"golang.org/x/term"

	"github.com/sqlsh-dev/sqlsh/internal/config"
	"github.com/sqlsh-dev/sqlsh/internal/metadata"
	"github.com/sqlsh-dev/sqlsh/pkg/completer"
	"github.com/sqlsh-dev/sqlsh/pkg/dialect"
)

// queryVerbs start statements that produce a result set.
var queryVerbs = map[string]bool{
	"SELECT": true, "WITH": true, "SHOW": true, "DESCRIBE": true,
	"DESC": true, "EXPLAIN": true, "PRAGMA": true, "VALUES": true,
}

// Options configures a Shell.
type Options struct {
	DB      *sql.DB
	Dialect *dialect.Dialect
	Config  *config.Config
	Logger  *slog.Logger
	Stdout  io.Writer
	Stderr  io.Writer
}

// Shell is one interactive session over one connection.
type Shell struct {
	db        *sql.DB
	dialect   *dialect.Dialect
	cfg       *config.Config
	logger    *slog.Logger
	out       io.Writer
	errOut    io.Writer
	styles    Styles
	format    string
	comp      *completer.Completer
	suggester *Suggester
	refresher *metadata.Refresher
	favorites Favorites
	commands  *commandSet

	// buffer accumulates a multi-line statement until its semicolon.
	buffer strings.Builder
}

// New assembles a shell around an open connection. The completer is
// seeded with the dialect's keyword and function vocabularies, the
// backslash command names, the output formats, and the configured
// favorites; catalog metadata arrives on the first refresh.
func New(opts Options) *Shell {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	out := opts.Stdout
	if out == nil {
		out = os.Stdout
	}
	errOut := opts.Stderr
	if errOut == nil {
		errOut = os.Stderr
	}

	styles := PlainStyles()
	if f, ok := out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		styles = DefaultStyles()
	}

	favorites := Favorites(opts.Config.Favorites)
	commands := newCommandSet()
	comp := completer.New(completer.Options{
		Keywords:        opts.Dialect.Keywords,
		FunctionGroups:  opts.Dialect.FunctionGroups(),
		SpecialCommands: commands.names(),
		TableFormats:    Formats(),
		SmartCompletion: opts.Config.SmartCompletion,
		Favorites:       favorites,
		Logger:          logger,
	})

	format := strings.ToLower(opts.Config.OutputFormat)
	if !validFormat(format) {
		format = config.DefaultOutputFormat
	}

	return &Shell{
		db:        opts.DB,
		dialect:   opts.Dialect,
		cfg:       opts.Config,
		logger:    logger,
		out:       out,
		errOut:    errOut,
		styles:    styles,
		format:    format,
		comp:      comp,
		suggester: NewSuggester(comp),
		refresher: metadata.NewRefresher(opts.DB, opts.Dialect, comp, logger),
		favorites: favorites,
		commands:  commands,
	}
}

// Run drives the REPL until EOF or \quit.
func (s *Shell) Run(ctx context.Context) error {
	if err := s.refresh(ctx); err != nil {
		// Partial metadata is survivable; a dead completer is not worth
		// killing the session over.
		s.printError(err)
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          s.prompt(),
		HistoryFile:     config.ExpandPath(s.cfg.HistoryFile),
		AutoComplete:    &lineCompleter{shell: s},
		InterruptPrompt: "^C",
		EOFPrompt:       `\q`,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	s.printBanner()

	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			s.buffer.Reset()
			rl.SetPrompt(s.prompt())
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if s.buffer.Len() == 0 && strings.HasPrefix(line, `\`) {
			if err := s.commands.dispatch(ctx, s, line); err != nil {
				if errors.Is(err, errQuit) {
					return nil
				}
				s.printError(err)
			}
			rl.SetPrompt(s.prompt())
			continue
		}

		s.buffer.WriteString(line)
		if !strings.HasSuffix(line, ";") {
			s.buffer.WriteString(" ")
			rl.SetPrompt(s.contPrompt())
			continue
		}
		rl.SetPrompt(s.prompt())

		stmt := strings.TrimSuffix(strings.TrimSpace(s.buffer.String()), ";")
		s.buffer.Reset()
		if err := s.execute(ctx, stmt); err != nil {
			s.printError(err)
		}
	}
}

// pending returns the buffered part of a multi-line statement, for the
// completer to see the whole statement so far.
func (s *Shell) pending() string {
	return s.buffer.String()
}

// execute runs one statement and renders its outcome.
func (s *Shell) execute(ctx context.Context, stmt string) error {
	fields := strings.Fields(stmt)
	if len(fields) == 0 {
		return nil
	}
	if queryVerbs[strings.ToUpper(fields[0])] {
		rows, err := s.db.QueryContext(ctx, stmt)
		if err != nil {
			return err
		}
		defer func() { _ = rows.Close() }()
		return renderRows(s.out, rows, s.format)
	}

	res, err := s.db.ExecContext(ctx, stmt)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		s.printInfo("OK")
		return nil
	}
	s.printInfo(fmt.Sprintf("OK, %d rows affected", affected))
	return nil
}

// refresh rebuilds completion metadata from the connection.
func (s *Shell) refresh(ctx context.Context) error {
	return s.refresher.Refresh(ctx)
}

// listObjects renders one completion vocabulary as a single-column
// result, which is all the \tables family of commands needs.
func (s *Shell) listObjects(suggestion completer.Suggestion, header string) error {
	completions := s.comp.Complete("", []completer.Suggestion{suggestion})
	records := make([][]string, 0, len(completions))
	for _, c := range completions {
		if c.Text == completer.Wildcard {
			continue
		}
		records = append(records, []string{c.Text})
	}
	return renderRecords(s.out, []string{header}, records, s.format)
}

func (s *Shell) prompt() string {
	prompt := s.cfg.Prompt
	db := s.comp.Database()
	if db == "" {
		db = s.dialect.Name
	}
	prompt = strings.ReplaceAll(prompt, "%d", db)
	return s.styles.Prompt.Render(prompt)
}

func (s *Shell) contPrompt() string {
	return s.styles.Prompt.Render("   ...> ")
}

func (s *Shell) printBanner() {
	_, _ = fmt.Fprintln(s.out, s.styles.Banner.Render(
		fmt.Sprintf("sqlsh (%s)", s.dialect.Name)))
	_, _ = fmt.Fprintln(s.out, s.styles.Muted.Render(
		`Statements end with a semicolon. Type \help for commands, \q to exit.`))
	_, _ = fmt.Fprintln(s.out)
}

func (s *Shell) printHelp() {
	for _, c := range s.commands.order {
		name := c.name
		if c.usage != "" {
			name = c.usage
		}
		if len(c.aliases) > 0 {
			name += " (" + strings.Join(c.aliases, ", ") + ")"
		}
		_, _ = fmt.Fprintf(s.out, "  %-36s %s\n", name, c.help)
	}
}

func (s *Shell) printInfo(msg string) {
	_, _ = fmt.Fprintln(s.out, s.styles.Info.Render(msg))
}

func (s *Shell) printError(err error) {
	_, _ = fmt.Fprintln(s.errOut, s.styles.Error.Render("Error: "+err.Error()))
}
