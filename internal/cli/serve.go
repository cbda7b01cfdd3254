package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/Semihazah/skein"
	"github.com/Semihazah/skein/internal/logging"
	"github.com/Semihazah/skein/pkg/adapters/file"
	skeinhttp "github.com/Semihazah/skein/pkg/adapters/http"
	"github.com/Semihazah/skein/pkg/domain"
	"github.com/Semihazah/skein/pkg/observability"
	"github.com/Semihazah/skein/pkg/vm"
)

// ServeOptions parameterize the HTTP server host.
type ServeOptions struct {
	Dir    string
	Config Config
}

// syncRuntime serializes HTTP handler goroutines and the tick loop onto one
// mutex so they share a runtime that is otherwise single-threaded.
type syncRuntime struct {
	mu sync.Mutex
	rt *skein.Runtime[struct{}]
}

func (s *syncRuntime) Enqueue(req domain.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rt.Enqueue(req)
}

func (s *syncRuntime) Status() domain.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rt.Status()
}

func (s *syncRuntime) SelectChoice(index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rt.SelectChoice(index)
}

func (s *syncRuntime) SetHold(hold bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.rt.SetHold(hold)
}

func (s *syncRuntime) Held() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rt.Held()
}

func (s *syncRuntime) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rt.QueueLen()
}

func (s *syncRuntime) tick(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rt.Tick(ctx)
}

// Serve runs the HTTP surface over a runtime ticking in the background.
// It blocks until ctx is cancelled, then shuts the server down gracefully.
func Serve(ctx context.Context, opts ServeOptions) error {
	logger := logging.New(opts.Config.Level())

	storage, err := newVariableStorage(ctx, opts.Config, logger)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	source := file.NewSource(opts.Dir, file.WithLogger(logger))
	rt, err := skein.New(struct{}{},
		skein.WithAssetSource[struct{}](source),
		skein.WithInterpreter[struct{}](vm.New(
			vm.WithVariableStorage(storage),
			vm.WithLogger(logger),
		)),
		skein.WithLogger[struct{}](logger),
		skein.WithMetrics[struct{}](metrics),
	)
	if err != nil {
		return err
	}
	defer rt.Close()

	shared := &syncRuntime{rt: rt}

	go func() {
		ticker := time.NewTicker(opts.Config.TickInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
			if err := shared.tick(ctx); err != nil {
				logger.Error("session aborted", "err", err)
			}
		}
	}()

	srv := &http.Server{
		Addr:    opts.Config.HTTP.Addr,
		Handler: skeinhttp.NewHandler(shared, logger, reg),
	}

	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	logger.Info("listening", "addr", opts.Config.HTTP.Addr)

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server: %w", err)
	}
}
