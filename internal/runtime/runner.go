// Package runtime implements the skein core: the FIFO dialogue queue, the
// admission gate that promotes requests once their assets are loaded, and the
// session runner that drives the interpreter one suspend point per tick.
package runtime

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Semihazah/skein/pkg/domain"
	"github.com/Semihazah/skein/pkg/lines"
	"github.com/Semihazah/skein/pkg/observability"
	"github.com/Semihazah/skein/pkg/ports"
	"github.com/Semihazah/skein/pkg/registry"
)

// Config wires a Runner's collaborators. Interpreter and Source are
// required; everything else defaults to inert implementations.
type Config struct {
	Interpreter ports.Interpreter
	Source      ports.AssetSource
	Logger      *slog.Logger
	Hooks       domain.Hooks
	Metrics     *observability.Metrics

	// Notify is the edge-triggered change signal, fired whenever the
	// delivered text or the choice list changes. It carries no payload;
	// consumers re-read Status.
	Notify func()

	// Dispatch routes raw command text into the host's registry and
	// reports whether a callback handled it.
	Dispatch func(raw string) bool
}

// Runner coordinates one dialogue session at a time over an opaque
// interpreter. It is single-threaded and cooperative: all progress happens
// inside Tick, which the host calls from its update loop.
//
// Invariant: the runner is Idle exactly when no program is bound, and at
// most one session is active at any time.
type Runner struct {
	interp   ports.Interpreter
	source   ports.AssetSource
	logger   *slog.Logger
	hooks    domain.Hooks
	metrics  *observability.Metrics
	notify   func()
	dispatch func(raw string) bool

	queue *Queue

	phase     domain.Phase
	substate  domain.Substate
	locator   string
	startNode string
	table     *lines.Table
	line      string
	choices   []string

	hold bool
}

// NewRunner creates an idle runner with an empty queue.
func NewRunner(cfg Config) *Runner {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notify := cfg.Notify
	if notify == nil {
		notify = func() {}
	}
	dispatch := cfg.Dispatch
	if dispatch == nil {
		dispatch = func(string) bool { return false }
	}
	return &Runner{
		interp:   cfg.Interpreter,
		source:   cfg.Source,
		logger:   logger,
		hooks:    cfg.Hooks,
		metrics:  cfg.Metrics,
		notify:   notify,
		dispatch: dispatch,
		queue:    NewQueue(),
		phase:    domain.PhaseIdle,
		substate: domain.SubstateNone,
	}
}

// Enqueue appends a request to the queue tail and resolves its asset
// handles. It never blocks and always accepts; locator validity is a caller
// contract.
func (r *Runner) Enqueue(req domain.Request) {
	prog, table := r.source.Resolve(req.Locator)
	r.queue.Push(Pending{Request: req, Program: prog, Table: table})
	r.metrics.SetQueueDepth(r.queue.Len())
}

// QueueLen returns the number of pending requests.
func (r *Runner) QueueLen() int { return r.queue.Len() }

// SetHold sets the level-triggered hold flag. While set, Tick performs no
// runner step; the admission gate still runs. The flag is re-evaluated every
// tick.
func (r *Runner) SetHold(hold bool) { r.hold = hold }

// Held reports the hold flag.
func (r *Runner) Held() bool { return r.hold }

// Status returns a snapshot of the externally visible runner state.
func (r *Runner) Status() domain.Status {
	s := domain.Status{
		Phase:    r.phase,
		Substate: r.substate,
		Script:   r.locator,
		Line:     r.line,
	}
	if len(r.choices) > 0 {
		s.Choices = append([]string(nil), r.choices...)
	}
	return s
}

// SelectChoice resolves the pending choice list by index. Progress resumes
// on the next un-held tick.
func (r *Runner) SelectChoice(index int) error {
	if r.phase != domain.PhaseRunning {
		return domain.ErrNoSession
	}
	if r.substate != domain.SubstatePresentingChoices {
		return domain.ErrNoChoices
	}
	if err := r.interp.SelectOption(index); err != nil {
		return fmt.Errorf("selecting option %d: %w", index, err)
	}
	r.choices = nil
	r.substate = domain.SubstateAwaitingStep
	r.notify()
	return nil
}

// Tick performs one bounded unit of work: the admission gate first, then at
// most one interpreter advance. Calling Tick while Idle with an empty queue
// is a no-op. Tick is not reentrant; command callbacks must not call it.
func (r *Runner) Tick(ctx context.Context) error {
	r.metrics.ObserveTick()
	r.admit(ctx)
	return r.step(ctx)
}

// admit promotes the head request into the runner once both of its assets
// are loaded. Only the head is ever inspected: a slow head deliberately
// blocks every entry behind it, preserving strict FIFO order. Failed heads
// are dropped and admission moves on to the next entry within the same tick.
func (r *Runner) admit(ctx context.Context) {
	if r.phase != domain.PhaseIdle {
		return
	}
	for {
		head, ok := r.queue.Peek()
		if !ok {
			return
		}

		if err := headAssetError(head); err != nil {
			// The failed request is dropped rather than stalling the
			// queue behind it forever.
			if _, perr := r.queue.Pop(); perr != nil {
				panic(perr) // unreachable: Peek just succeeded
			}
			r.metrics.SetQueueDepth(r.queue.Len())
			r.metrics.ObserveFailure("asset")
			r.logger.Error("dropping dialogue request, asset failed",
				"locator", head.Request.Locator, "error", err)
			if r.hooks.OnRequestFailed != nil {
				r.hooks.OnRequestFailed(ctx, &domain.RequestFailedEvent{Request: head.Request, Err: err})
			}
			continue
		}

		if head.Program.State() != ports.AssetLoaded || head.Table.State() != ports.AssetLoaded {
			// Not ready; retry next tick.
			return
		}

		if _, err := r.queue.Pop(); err != nil {
			panic(err) // unreachable: Peek just succeeded
		}
		r.metrics.SetQueueDepth(r.queue.Len())
		r.bind(ctx, head)
		return
	}
}

func headAssetError(head Pending) error {
	if head.Program.State() == ports.AssetFailed {
		if err := head.Program.Err(); err != nil {
			return fmt.Errorf("script asset: %w", err)
		}
		return fmt.Errorf("script asset failed to load")
	}
	if head.Table.State() == ports.AssetFailed {
		if err := head.Table.Err(); err != nil {
			return fmt.Errorf("string table asset: %w", err)
		}
		return fmt.Errorf("string table asset failed to load")
	}
	return nil
}

// bind attaches a ready request's program and table to the interpreter and
// moves to Running(AwaitingStep).
func (r *Runner) bind(ctx context.Context, p Pending) {
	prog := p.Program.Program()
	if err := r.interp.SetProgram(prog); err != nil {
		r.metrics.ObserveFailure("asset")
		r.logger.Error("binding program failed",
			"locator", p.Request.Locator, "error", err)
		if r.hooks.OnRequestFailed != nil {
			r.hooks.OnRequestFailed(ctx, &domain.RequestFailedEvent{Request: p.Request, Err: err})
		}
		return
	}
	if p.Request.StartNode != "" && !r.interp.SetNode(p.Request.StartNode) {
		// Source behavior: silently fall back to the implicit default
		// entry point when the requested node is absent.
		r.logger.Warn("start node not found, using default entry",
			"locator", p.Request.Locator, "node", p.Request.StartNode)
	}

	r.phase = domain.PhaseRunning
	r.substate = domain.SubstateAwaitingStep
	r.locator = p.Request.Locator
	r.startNode = p.Request.StartNode
	r.table = p.Table.Table()
	r.line = ""
	r.choices = nil

	r.metrics.ObservePromotion()
	r.logger.Info("dialogue session started",
		"locator", r.locator, "start_node", r.startNode)
	if r.hooks.OnSessionStart != nil {
		r.hooks.OnSessionStart(ctx, &domain.SessionEvent{Locator: r.locator, StartNode: r.startNode})
	}
}

// step advances the interpreter by exactly one suspend point and applies one
// transition. At most one suspend reason is processed per tick, bounding
// per-frame cost: long runs of silent commands cost one tick each.
func (r *Runner) step(ctx context.Context) error {
	if r.phase == domain.PhaseIdle {
		return nil
	}
	if r.hold {
		return nil
	}
	if r.interp.Waiting() {
		// Blocked on a choice; the host resolves it out of band.
		return nil
	}

	sus, err := r.interp.Advance()
	if err != nil {
		return r.abort(ctx, fmt.Errorf("interpreter advance: %w", err))
	}

	switch sus.Kind {
	case domain.SuspendLine:
		text, err := r.table.Resolve(sus.Line.ID, sus.Line.Substitutions)
		if err != nil {
			return r.abort(ctx, err)
		}
		r.substate = domain.SubstateDeliveringLine
		r.line = text
		r.choices = nil
		r.metrics.ObserveLine()
		if r.hooks.OnLine != nil {
			r.hooks.OnLine(ctx, &domain.LineEvent{Locator: r.locator, LineID: sus.Line.ID, Text: text})
		}
		r.notify()

	case domain.SuspendOptions:
		texts := make([]string, 0, len(sus.Options))
		for _, opt := range sus.Options {
			text, err := r.table.Resolve(opt.Line.ID, opt.Line.Substitutions)
			if err != nil {
				return r.abort(ctx, err)
			}
			texts = append(texts, text)
		}
		r.substate = domain.SubstatePresentingChoices
		r.line = ""
		r.choices = texts
		r.metrics.ObserveChoices()
		if r.hooks.OnChoices != nil {
			r.hooks.OnChoices(ctx, &domain.ChoicesEvent{Locator: r.locator, Texts: texts})
		}
		r.notify()

	case domain.SuspendCommand:
		handled := r.dispatch(sus.Command)
		name, args := registry.Split(sus.Command)
		r.metrics.ObserveCommand(handled)
		if !handled {
			r.logger.Debug("unhandled script command", "name", name)
		}
		if r.hooks.OnCommand != nil {
			r.hooks.OnCommand(ctx, &domain.CommandEvent{
				Locator: r.locator, Name: name, Args: args, Handled: handled,
			})
		}

	case domain.SuspendNodeChange:
		// Informational only.
		r.logger.Debug("node boundary", "locator", r.locator, "node", sus.Node)

	case domain.SuspendComplete:
		r.complete(ctx)

	default:
		return r.abort(ctx, fmt.Errorf("unknown suspend kind %d", sus.Kind))
	}
	return nil
}

// complete finishes the current session and, when the head of the queue is
// already loaded, rebinds directly to it so no Idle tick is observable
// between chained sessions.
func (r *Runner) complete(ctx context.Context) {
	ended := domain.SessionEvent{Locator: r.locator, StartNode: r.startNode}
	hadContent := r.line != "" || len(r.choices) > 0

	r.metrics.ObserveCompletion()
	r.logger.Info("dialogue session complete", "locator", r.locator)

	r.unbind()
	if r.hooks.OnSessionEnd != nil {
		r.hooks.OnSessionEnd(ctx, &ended)
	}

	if head, ok := r.queue.Peek(); ok &&
		head.Program.State() == ports.AssetLoaded &&
		head.Table.State() == ports.AssetLoaded {
		if _, err := r.queue.Pop(); err != nil {
			panic(err) // unreachable: Peek just succeeded
		}
		r.metrics.SetQueueDepth(r.queue.Len())
		r.bind(ctx, head)
	}

	if hadContent {
		r.notify()
	}
}

// abort tears down the session after an unrecoverable fault, surfacing a
// structured error instead of continuing silently.
func (r *Runner) abort(ctx context.Context, err error) error {
	locator := r.locator
	hadContent := r.line != "" || len(r.choices) > 0

	r.metrics.ObserveFailure("content")
	r.logger.Error("dialogue session aborted", "locator", locator, "error", err)

	r.unbind()
	if r.hooks.OnSessionError != nil {
		r.hooks.OnSessionError(ctx, &domain.SessionErrorEvent{Locator: locator, Err: err})
	}
	if hadContent {
		r.notify()
	}
	return err
}

// Close tears the runner down: the bound program and table references are
// released and pending requests are dropped. The runner must not be ticked
// afterwards.
func (r *Runner) Close() {
	r.unbind()
	for r.queue.Len() > 0 {
		if _, err := r.queue.Pop(); err != nil {
			break
		}
	}
	r.metrics.SetQueueDepth(0)
}

// unbind releases the bound program and table references and returns to
// Idle.
func (r *Runner) unbind() {
	r.phase = domain.PhaseIdle
	r.substate = domain.SubstateNone
	r.locator = ""
	r.startNode = ""
	r.table = nil
	r.line = ""
	r.choices = nil
}
