package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/term"

	"github.com/Semihazah/skein"
	"github.com/Semihazah/skein/internal/logging"
	"github.com/Semihazah/skein/internal/presentation/tui"
	"github.com/Semihazah/skein/pkg/adapters/file"
	"github.com/Semihazah/skein/pkg/adapters/memory"
	"github.com/Semihazah/skein/pkg/adapters/redis"
	"github.com/Semihazah/skein/pkg/domain"
	"github.com/Semihazah/skein/pkg/persistence/middleware"
	"github.com/Semihazah/skein/pkg/ports"
	"github.com/Semihazah/skein/pkg/vm"
)

// RunOptions parameterize an interactive session.
type RunOptions struct {
	Dir       string
	Locator   string
	StartNode string
	Config    Config

	In  io.Reader
	Out io.Writer
}

// cliHost is the host state handed to command callbacks registered by the
// CLI. Commands from scripts are echoed; games embedding the library register
// their own.
type cliHost struct {
	out io.Writer
}

// RunSession plays one script interactively: lines print as they are
// delivered, choice lists prompt for a numbered selection on stdin, and the
// loop exits when the queue drains.
func RunSession(ctx context.Context, opts RunOptions) error {
	if opts.In == nil {
		opts.In = os.Stdin
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	logger := logging.New(opts.Config.Level())

	storage, err := newVariableStorage(ctx, opts.Config, logger)
	if err != nil {
		return err
	}

	interactive := false
	if f, ok := opts.Out.(*os.File); ok {
		interactive = term.IsTerminal(int(f.Fd()))
	}
	render := func(text string) (string, error) { return text + "\n", nil }
	if interactive {
		tui.PrintBanner()
		render = tui.NewRenderer()
	}

	hooks := domain.Hooks{
		OnLine: func(_ context.Context, e *domain.LineEvent) {
			if out, err := render(e.Text); err == nil {
				fmt.Fprint(opts.Out, out)
			} else {
				fmt.Fprintln(opts.Out, e.Text)
			}
		},
		OnCommand: func(_ context.Context, e *domain.CommandEvent) {
			if !e.Handled {
				logger.Debug("unhandled command", "name", e.Name, "args", e.Args)
			}
		},
		OnSessionError: func(_ context.Context, e *domain.SessionErrorEvent) {
			fmt.Fprintf(opts.Out, "session aborted: %v\n", e.Err)
		},
		OnRequestFailed: func(_ context.Context, e *domain.RequestFailedEvent) {
			fmt.Fprintf(opts.Out, "could not load %q: %v\n", e.Request.Locator, e.Err)
		},
	}

	source := file.NewSource(opts.Dir, file.WithLogger(logger))
	rt, err := skein.New(cliHost{out: opts.Out},
		skein.WithAssetSource[cliHost](source),
		skein.WithInterpreter[cliHost](vm.New(
			vm.WithVariableStorage(storage),
			vm.WithLogger(logger),
		)),
		skein.WithLogger[cliHost](logger),
		skein.WithHooks[cliHost](hooks),
	)
	if err != nil {
		return err
	}
	defer rt.Close()

	rt.Commands().Register("echo", func(host cliHost, args []string) {
		fmt.Fprintln(host.out, strings.Join(args, " "))
	})

	rt.Enqueue(skein.Request{Locator: opts.Locator, StartNode: opts.StartNode})

	reader := bufio.NewReader(opts.In)
	ticker := time.NewTicker(opts.Config.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}

		if err := rt.Tick(ctx); err != nil {
			return err
		}

		status := rt.Status()
		if status.Idle() && rt.QueueLen() == 0 {
			return nil
		}
		if status.Substate != domain.SubstatePresentingChoices {
			continue
		}

		fmt.Fprint(opts.Out, tui.FormatChoices(status.Choices))
		index, err := readChoice(reader, opts.Out, len(status.Choices))
		if err != nil {
			return err
		}
		if err := rt.SelectChoice(index); err != nil {
			return err
		}
	}
}

// readChoice prompts until the user enters a number within range. Indices are
// one-based at the prompt.
func readChoice(reader *bufio.Reader, out io.Writer, count int) (int, error) {
	for {
		fmt.Fprint(out, tui.FormatPrompt())
		raw, err := reader.ReadString('\n')
		if err != nil {
			return 0, fmt.Errorf("reading choice: %w", err)
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || n < 1 || n > count {
			fmt.Fprintf(out, "enter a number between 1 and %d\n", count)
			continue
		}
		return n - 1, nil
	}
}

// newVariableStorage builds the configured variable backend, wrapped with
// the configured middleware.
func newVariableStorage(ctx context.Context, cfg Config, logger *slog.Logger) (ports.VariableStorage, error) {
	var base ports.VariableStorage
	switch cfg.Variables {
	case "", "memory":
		base = memory.NewVariableStorage()
	case "redis":
		storage := redis.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB,
			redis.WithPrefix(cfg.Redis.Prefix),
			redis.WithLogger(logger),
		)
		if err := storage.Ping(ctx); err != nil {
			return nil, fmt.Errorf("connecting to redis at %s: %w", cfg.Redis.Addr, err)
		}
		base = storage
	default:
		return nil, fmt.Errorf("unknown variable backend %q (want memory or redis)", cfg.Variables)
	}

	var mws []middleware.Middleware
	if cfg.Namespace != "" {
		mws = append(mws, middleware.NewNamespaceMiddleware(cfg.Namespace))
	}
	if cfg.Level() <= slog.LevelDebug {
		mws = append(mws, middleware.NewAuditMiddleware(logger))
	}
	return middleware.Chain(base, mws...), nil
}
