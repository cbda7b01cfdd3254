package skein

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Semihazah/skein/internal/runtime"
	"github.com/Semihazah/skein/pkg/domain"
	"github.com/Semihazah/skein/pkg/observability"
	"github.com/Semihazah/skein/pkg/ports"
	"github.com/Semihazah/skein/pkg/registry"
	"github.com/Semihazah/skein/pkg/vm"
)

// Request aliases domain.Request for convenience at the call site.
type Request = domain.Request

// Status aliases domain.Status.
type Status = domain.Status

// Runtime bundles the dialogue queue, admission gate, session runner and
// command registry behind one explicitly constructed object. H is the host
// state type handed to command callbacks.
//
// A Runtime starts with an empty queue, an empty registry and an idle
// runner. It is not safe for concurrent use: all methods belong to the
// host's tick thread.
type Runtime[H any] struct {
	runner   *runtime.Runner
	registry *registry.Registry[H]
	host     H
	logger   *slog.Logger
}

// Option configures a Runtime.
type Option[H any] func(*settings[H])

type settings[H any] struct {
	interpreter ports.Interpreter
	source      ports.AssetSource
	logger      *slog.Logger
	hooks       domain.Hooks
	metrics     *observability.Metrics
	notify      func()
}

// WithAssetSource sets where scripts and string tables are resolved from.
// Required.
func WithAssetSource[H any](source ports.AssetSource) Option[H] {
	return func(s *settings[H]) { s.source = source }
}

// WithInterpreter injects the bytecode interpreter. Defaults to the built-in
// stack machine (package vm) with in-memory variables.
func WithInterpreter[H any](interp ports.Interpreter) Option[H] {
	return func(s *settings[H]) { s.interpreter = interp }
}

// WithLogger sets a structured logger.
func WithLogger[H any](logger *slog.Logger) Option[H] {
	return func(s *settings[H]) { s.logger = logger }
}

// WithHooks registers lifecycle hooks.
func WithHooks[H any](hooks domain.Hooks) Option[H] {
	return func(s *settings[H]) { s.hooks = hooks }
}

// WithMetrics attaches prometheus instrumentation.
func WithMetrics[H any](m *observability.Metrics) Option[H] {
	return func(s *settings[H]) { s.metrics = m }
}

// WithChangeNotifier registers the edge-triggered change signal, fired
// whenever the delivered line or the choice list changes. It carries no
// payload; consumers re-read Status.
func WithChangeNotifier[H any](notify func()) Option[H] {
	return func(s *settings[H]) { s.notify = notify }
}

// New constructs a Runtime around the given host state.
func New[H any](host H, opts ...Option[H]) (*Runtime[H], error) {
	var s settings[H]
	for _, opt := range opts {
		opt(&s)
	}
	if s.source == nil {
		return nil, fmt.Errorf("an asset source is required (see WithAssetSource)")
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.interpreter == nil {
		s.interpreter = vm.New(vm.WithLogger(s.logger))
	}

	reg := registry.New[H]()
	rt := &Runtime[H]{
		registry: reg,
		host:     host,
		logger:   s.logger,
	}
	rt.runner = runtime.NewRunner(runtime.Config{
		Interpreter: s.interpreter,
		Source:      s.source,
		Logger:      s.logger,
		Hooks:       s.hooks,
		Metrics:     s.metrics,
		Notify:      s.notify,
		Dispatch: func(raw string) bool {
			return reg.Dispatch(raw, rt.host)
		},
	})
	return rt, nil
}

// Commands returns the command registry. Registration should finish during
// setup, before a session that uses the command runs.
func (rt *Runtime[H]) Commands() *registry.Registry[H] { return rt.registry }

// Enqueue appends a dialogue request to the queue tail. It returns
// immediately with no synchronous success feedback; the request starts once
// every earlier request has completed and its own assets are loaded.
func (rt *Runtime[H]) Enqueue(req Request) { rt.runner.Enqueue(req) }

// Tick performs one bounded unit of work: admission first, then at most one
// interpreter advance. The returned error reports a session aborted by a
// content-integrity violation; the runtime itself stays usable and the next
// tick proceeds with the queue.
func (rt *Runtime[H]) Tick(ctx context.Context) error { return rt.runner.Tick(ctx) }

// Status returns a snapshot of the externally visible runner state.
func (rt *Runtime[H]) Status() Status { return rt.runner.Status() }

// SelectChoice resolves the pending choice list by index.
func (rt *Runtime[H]) SelectChoice(index int) error { return rt.runner.SelectChoice(index) }

// SetHold sets the level-triggered hold flag; while set, ticks perform no
// runner step.
func (rt *Runtime[H]) SetHold(hold bool) { rt.runner.SetHold(hold) }

// Held reports the hold flag.
func (rt *Runtime[H]) Held() bool { return rt.runner.Held() }

// QueueLen reports the number of pending requests.
func (rt *Runtime[H]) QueueLen() int { return rt.runner.QueueLen() }

// Close releases the bound program and table references and drops pending
// requests. The Runtime must not be used afterwards.
func (rt *Runtime[H]) Close() { rt.runner.Close() }
