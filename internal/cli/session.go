package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/aretw0/powerset"
	"github.com/aretw0/powerset/internal/presentation/tui"
	"github.com/aretw0/powerset/pkg/adapters/memory"
	"github.com/aretw0/powerset/pkg/domain"
	"github.com/aretw0/powerset/pkg/parser"
	"github.com/aretw0/powerset/pkg/ports"
	"github.com/aretw0/powerset/pkg/session"
)

// localSessionID names the throwaway session used when no --session is given.
const localSessionID = "local"

// SessionOptions configures the interactive front-end.
type SessionOptions struct {
	Options
	SessionID string // Persist under this ID; empty keeps the session in memory
	StoreDir  string // Where persisted sessions live
	Fresh     bool   // Discard any saved state first
	Quiet     bool   // No banner, no prompt
}

type shell struct {
	opts    SessionOptions
	id      string
	conv    *powerset.Converter
	manager *session.Manager
	logger  *slog.Logger
	pretty  bool
}

// RunSession runs the interactive front-end: submit an NFA, convert it, look at the result, reset.
func RunSession(ctx context.Context, opts SessionOptions) error {
	opts.defaults()
	// The trace command needs it.
	opts.Trace = true

	logger, err := createLogger(opts.LogLevel)
	if err != nil {
		return err
	}
	conv, err := createConverter(opts.Options, logger)
	if err != nil {
		return err
	}

	store, id, err := setupPersistence(opts)
	if err != nil {
		return err
	}
	sh := &shell{
		opts: opts,
		id:   id,
		conv: conv,
		manager: session.NewManager(store,
			session.WithLogger(logger),
			session.WithConvertOptions(conv.Options()...),
		),
		logger: logger,
		pretty: isTerminal(opts.Out),
	}

	if opts.Fresh {
		if err := sh.manager.Delete(ctx, id); err != nil {
			return fmt.Errorf("failed to reset session: %w", err)
		}
	}

	s, err := sh.manager.LoadOrStart(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to init session: %w", err)
	}

	if !opts.Quiet {
		tui.PrintBanner(opts.Out, strings.TrimSpace(powerset.Version))
		if s.Phase != domain.PhaseAwaitingInput {
			printSystemMessage(opts.Out, "Resuming session '%s' (%s, %s).", id, s.Name, s.Phase)
		} else if opts.SessionID != "" {
			printSystemMessage(opts.Out, "Session '%s' active.", id)
		}
		printSystemMessage(opts.Out, "Type 'help' for commands.")
	}

	return handleExecutionError(sh.loop(ctx, s.Phase))
}

// setupPersistence picks the session store: files when an ID is given, memory otherwise.
// Saved sessions are sealed when EnvSessionKey is set.
func setupPersistence(opts SessionOptions) (ports.SessionStore, string, error) {
	if opts.SessionID == "" {
		return memory.NewStore(), localSessionID, nil
	}
	store, err := OpenSessionStore(opts.StoreDir)
	if err != nil {
		return nil, "", err
	}
	return store, opts.SessionID, nil
}

// loop reads commands until quit, EOF or cancellation.
// Lines are read on their own goroutine so cancellation is not stuck behind a blocking read.
func (sh *shell) loop(ctx context.Context, phase domain.Phase) error {
	lines := make(chan string)
	readErr := make(chan error, 1)
	done := make(chan struct{})
	defer close(done)
	go func() {
		scanner := bufio.NewScanner(sh.opts.In)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			readErr <- err
			return
		}
		readErr <- io.EOF
	}()

	for {
		sh.prompt(phase)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			if !sh.opts.Quiet {
				fmt.Fprintln(sh.opts.Out)
			}
			return err
		case raw := <-lines:
			line, err := SanitizeInput(raw)
			if err != nil {
				fmt.Fprintf(sh.opts.Out, "error: %v\n", err)
				continue
			}
			next, quit, err := sh.dispatch(ctx, line)
			if err != nil {
				sh.logger.Debug("command failed", "line", line, "err", err)
				fmt.Fprintf(sh.opts.Out, "error: %v\n", err)
			}
			if next != "" {
				phase = next
			}
			if quit {
				return nil
			}
		}
	}
}

func (sh *shell) prompt(phase domain.Phase) {
	if !sh.opts.Quiet {
		fmt.Fprintf(sh.opts.Out, "powerset [%s]> ", phase)
	}
}

// dispatch executes one command and returns the new phase, if it changed.
func (sh *shell) dispatch(ctx context.Context, line string) (domain.Phase, bool, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return "", false, nil
	}
	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "q", "quit", "exit":
		return "", true, nil
	case "help", "?":
		sh.help()
		return "", false, nil
	case "status":
		s, err := sh.manager.Load(ctx, sh.id)
		if err != nil {
			return "", false, err
		}
		sh.status(s)
		return s.Phase, false, nil
	case "catalog":
		return "", false, sh.listCatalog(ctx)
	case "load":
		if len(args) != 1 {
			return "", false, errors.New("usage: load <file>")
		}
		return sh.convertFile(ctx, args[0])
	case "use":
		if len(args) != 1 {
			return "", false, errors.New("usage: use <catalog-name>")
		}
		return sh.convertNamed(ctx, args[0])
	case "show":
		format := FormatText
		if len(args) > 0 {
			format = args[0]
		}
		return sh.show(ctx, format)
	case "trace":
		s, err := sh.manager.Display(ctx, sh.id)
		if err != nil {
			return "", false, err
		}
		return s.Phase, false, RenderTrace(sh.opts.Out, s.Name, s.Trace, sh.pretty)
	case "reset":
		s, err := sh.manager.Reset(ctx, sh.id)
		if err != nil {
			return "", false, err
		}
		printSystemMessage(sh.opts.Out, "Session reset.")
		return s.Phase, false, nil
	default:
		return "", false, fmt.Errorf("unknown command %q (type 'help')", cmd)
	}
}

func (sh *shell) convertFile(ctx context.Context, path string) (domain.Phase, bool, error) {
	def, err := parser.LoadFile(path)
	if err != nil {
		return "", false, err
	}
	name := displayName(def, strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)))
	return sh.convert(ctx, name, def.ToAutomaton)
}

func (sh *shell) convertNamed(ctx context.Context, name string) (domain.Phase, bool, error) {
	catalog := sh.conv.Catalog()
	if catalog == nil {
		return "", false, powerset.ErrNoCatalog
	}
	def, err := catalog.Get(ctx, name)
	if err != nil {
		return "", false, err
	}
	return sh.convert(ctx, displayName(def, name), def.ToAutomaton)
}

func (sh *shell) convert(ctx context.Context, name string, build func() (*domain.Automaton, error)) (domain.Phase, bool, error) {
	nfa, err := build()
	if err != nil {
		return "", false, reportMalformed(err)
	}
	s, err := sh.manager.Convert(ctx, sh.id, name, nfa)
	if err != nil {
		return "", false, err
	}
	printSystemMessage(sh.opts.Out, "Converted '%s': %d NFA states, %d DFA states.",
		name, len(s.NFA.States()), len(s.DFA.States()))
	return s.Phase, false, nil
}

func (sh *shell) show(ctx context.Context, format string) (domain.Phase, bool, error) {
	s, err := sh.manager.Display(ctx, sh.id)
	if err != nil {
		return "", false, err
	}
	return s.Phase, false, Render(sh.opts.Out, format, s.Name, s.DFA, sh.pretty)
}

func (sh *shell) listCatalog(ctx context.Context) error {
	catalog := sh.conv.Catalog()
	if catalog == nil {
		return powerset.ErrNoCatalog
	}
	names, err := catalog.List(ctx)
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Fprintln(sh.opts.Out, "Catalog is empty.")
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(sh.opts.Out, "- "+name)
	}
	return nil
}

func (sh *shell) status(s *domain.Session) {
	fmt.Fprintf(sh.opts.Out, "session: %s\nphase:   %s\n", s.ID, s.Phase)
	if s.DFA != nil {
		fmt.Fprintf(sh.opts.Out, "name:    %s\nnfa:     %d states\ndfa:     %d states\nviews:   %d\n",
			s.Name, len(s.NFA.States()), len(s.DFA.States()), s.Views)
	}
}

func (sh *shell) help() {
	fmt.Fprint(sh.opts.Out, `Commands:
  load <file>      convert an NFA file (text, YAML or JSON)
  use <name>       convert a catalog entry
  catalog          list catalog entries
  show [format]    print the DFA (text, mermaid, dot, yaml, json, markdown)
  trace            print the construction trace
  status           print the session phase
  reset            discard the result and wait for a new automaton
  quit             leave
`)
}
