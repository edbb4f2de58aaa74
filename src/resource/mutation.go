package resource

import (
	"context"
	"log/slog"
	"sync"

	"github.com/vietanhdev/agentweave/src/notify"
)

// MutationFunc performs a state-changing call against the backend.
type MutationFunc[In, Out any] func(ctx context.Context, in In) (Out, error)

// Hooks are the lifecycle callbacks of a mutation. For every Trigger exactly
// one of OnSuccess or OnError runs, and OnSettled runs exactly once
// afterwards, regardless of outcome. Nil hooks are skipped.
type Hooks[In, Out any] struct {
	Before    func(in In)
	OnSuccess func(in In, out Out)
	OnError   func(in In, err error)
	OnSettled func(in In)
}

// Mutation wraps a state-changing operation with lifecycle callbacks, error
// notification, and cache invalidation. Invalidation of the declared keys is
// the only way mutations touch the cache; success notifications and custom
// failure wording belong to the caller's hooks and message func.
type Mutation[In, Out any] struct {
	op           MutationFunc[In, Out]
	hooks        Hooks[In, Out]
	notifier     notify.Notifier
	notifyErrors bool
	cache        Cache
	invalidates  []string
	errorMessage func(in In, err error) string
	logger       *slog.Logger

	mu      sync.Mutex
	pending int
	lastOut *Out
	lastErr error
}

// MutationOption configures a Mutation.
type MutationOption[In, Out any] func(*Mutation[In, Out])

// WithHooks sets the lifecycle callbacks.
func WithHooks[In, Out any](hooks Hooks[In, Out]) MutationOption[In, Out] {
	return func(m *Mutation[In, Out]) {
		m.hooks = hooks
	}
}

// WithNotifier sets the notifier used for error surfacing.
func WithNotifier[In, Out any](notifier notify.Notifier) MutationOption[In, Out] {
	return func(m *Mutation[In, Out]) {
		m.notifier = notifier
	}
}

// WithoutErrorNotification suppresses the error notification. Errors are
// still recorded and returned.
func WithoutErrorNotification[In, Out any]() MutationOption[In, Out] {
	return func(m *Mutation[In, Out]) {
		m.notifyErrors = false
	}
}

// WithInvalidation declares cache keys to invalidate after a successful
// trigger.
func WithInvalidation[In, Out any](cache Cache, keys ...string) MutationOption[In, Out] {
	return func(m *Mutation[In, Out]) {
		m.cache = cache
		m.invalidates = keys
	}
}

// WithErrorMessage sets the wording of the error notification. The default
// is the error's own message.
func WithErrorMessage[In, Out any](fn func(in In, err error) string) MutationOption[In, Out] {
	return func(m *Mutation[In, Out]) {
		m.errorMessage = fn
	}
}

// WithMutationLogger sets the mutation's logger.
func WithMutationLogger[In, Out any](logger *slog.Logger) MutationOption[In, Out] {
	return func(m *Mutation[In, Out]) {
		m.logger = logger
	}
}

// NewMutation creates a mutation around op.
func NewMutation[In, Out any](op MutationFunc[In, Out], opts ...MutationOption[In, Out]) *Mutation[In, Out] {
	m := &Mutation[In, Out]{
		op:           op,
		notifier:     notify.Discard{},
		notifyErrors: true,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.logger == nil {
		m.logger = slog.Default()
	}
	m.logger = m.logger.With("component", "mutation")
	return m
}

// Trigger runs the mutation. The Before hook runs synchronously with the
// input, then the operation. On success the result is stored, OnSuccess and
// OnSettled run, declared cache keys are invalidated, and the result is
// returned. On failure the error is stored, OnError and OnSettled run, a
// notification is raised unless suppressed, and the error is returned.
func (m *Mutation[In, Out]) Trigger(ctx context.Context, in In) (Out, error) {
	m.mu.Lock()
	m.pending++
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.pending--
		m.mu.Unlock()
	}()

	if m.hooks.Before != nil {
		m.hooks.Before(in)
	}

	out, err := m.op(ctx, in)

	if err != nil {
		m.mu.Lock()
		m.lastErr = err
		m.mu.Unlock()

		m.logger.Debug("mutation failed", "error", err)
		if m.hooks.OnError != nil {
			m.hooks.OnError(in, err)
		}
		if m.hooks.OnSettled != nil {
			m.hooks.OnSettled(in)
		}
		if m.notifyErrors {
			m.notifier.Error(m.messageFor(in, err))
		}
		var zero Out
		return zero, err
	}

	m.mu.Lock()
	m.lastOut = &out
	m.lastErr = nil
	m.mu.Unlock()

	if m.hooks.OnSuccess != nil {
		m.hooks.OnSuccess(in, out)
	}
	if m.cache != nil {
		for _, key := range m.invalidates {
			m.cache.Invalidate(key)
		}
	}
	if m.hooks.OnSettled != nil {
		m.hooks.OnSettled(in)
	}

	return out, nil
}

// Pending reports whether a trigger is currently in flight.
func (m *Mutation[In, Out]) Pending() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pending > 0
}

// LastResult returns the most recent successful result, if any.
func (m *Mutation[In, Out]) LastResult() (Out, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.lastOut == nil {
		var zero Out
		return zero, false
	}
	return *m.lastOut, true
}

// LastError returns the most recent error. Cleared by a later success.
func (m *Mutation[In, Out]) LastError() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastErr
}

func (m *Mutation[In, Out]) messageFor(in In, err error) string {
	if m.errorMessage != nil {
		return m.errorMessage(in, err)
	}
	return err.Error()
}
