package shutdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"
)

type hook struct {
	name string
	fn   func(context.Context) error
}

// Handler runs cleanup hooks once, either on a termination signal or when
// the caller finishes normally.
type Handler struct {
	timeout time.Duration
	signals []os.Signal

	mu    sync.Mutex
	hooks []hook

	once sync.Once
	err  error
	done chan struct{}
}

// Option configures a Handler.
type Option func(*Handler)

// WithSignals replaces the signals that trigger shutdown.
func WithSignals(sigs ...os.Signal) Option {
	return func(h *Handler) { h.signals = sigs }
}

// NewHandler creates a new shutdown handler. Hooks share a context that
// expires after timeout.
func NewHandler(timeout time.Duration, opts ...Option) *Handler {
	h := &Handler{
		timeout: timeout,
		signals: []os.Signal{syscall.SIGINT, syscall.SIGTERM},
		done:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// OnShutdown registers a named shutdown hook.
// Hooks are called in reverse order of registration.
func (h *Handler) OnShutdown(name string, fn func(context.Context) error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hooks = append(h.hooks, hook{name: name, fn: fn})
}

// Wait blocks until a shutdown signal arrives or ctx is done, then runs
// the hooks. It returns the received signal, or nil when ctx ended first.
func (h *Handler) Wait(ctx context.Context) (os.Signal, error) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, h.signals...)
	defer signal.Stop(sigCh)

	var sig os.Signal
	select {
	case sig = <-sigCh:
	case <-ctx.Done():
	case <-h.done:
		return nil, h.err
	}
	return sig, h.Shutdown()
}

// Shutdown runs every hook once. Later calls return the first result.
// All hooks run even if some fail; their errors are joined.
func (h *Handler) Shutdown() error {
	h.once.Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), h.timeout)
		defer cancel()

		h.mu.Lock()
		hooks := make([]hook, len(h.hooks))
		copy(hooks, h.hooks)
		h.mu.Unlock()

		var errs []error
		for i := len(hooks) - 1; i >= 0; i-- {
			if err := hooks[i].fn(ctx); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", hooks[i].name, err))
			}
		}
		h.err = errors.Join(errs...)
		close(h.done)
	})
	<-h.done
	return h.err
}

// Done returns a channel that closes when shutdown is complete.
func (h *Handler) Done() <-chan struct{} {
	return h.done
}
