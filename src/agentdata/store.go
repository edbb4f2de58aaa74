// Package agentdata binds the generic resource/mutation layer to the agent
// backend's domain: tools, documents, and chat queries.
package agentdata

import (
	"log/slog"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/vietanhdev/agentweave/src/agentapi"
	"github.com/vietanhdev/agentweave/src/notify"
	"github.com/vietanhdev/agentweave/src/resource"
)

// Store is the domain-level data access layer. Reads go through cache-backed
// resources keyed by URL; mutations invalidate the affected keys on success
// and surface failures through the notifier.
type Store struct {
	client   *agentapi.Client
	cache    resource.Cache
	notifier notify.Notifier
	logger   *slog.Logger
	group    singleflight.Group

	mu             sync.Mutex
	tools          *resource.Resource[[]agentapi.Tool]
	documents      map[string]*resource.Resource[[]agentapi.Document]
	conversationID string
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithNotifier sets the notifier for mutation outcomes.
func WithNotifier(notifier notify.Notifier) StoreOption {
	return func(s *Store) {
		s.notifier = notifier
	}
}

// WithLogger sets the store's logger.
func WithLogger(logger *slog.Logger) StoreOption {
	return func(s *Store) {
		s.logger = logger
	}
}

// NewStore creates a domain store over client and cache.
func NewStore(client *agentapi.Client, cache resource.Cache, opts ...StoreOption) *Store {
	s := &Store{
		client:    client,
		cache:     cache,
		notifier:  notify.Discard{},
		documents: make(map[string]*resource.Resource[[]agentapi.Document]),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	s.logger = s.logger.With("component", "agent_store")
	return s
}

// Client returns the underlying API client.
func (s *Store) Client() *agentapi.Client {
	return s.client
}

// Cache returns the injected cache service.
func (s *Store) Cache() resource.Cache {
	return s.cache
}

// documentKeys snapshots the cache keys of every document listing seen so
// far; document mutations invalidate all of them since any listing may be
// affected. The bare collection key is always included.
func (s *Store) documentKeys() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	keys := []string{agentapi.DocumentsPath}
	for key := range s.documents {
		if key != agentapi.DocumentsPath {
			keys = append(keys, key)
		}
	}
	return keys
}
