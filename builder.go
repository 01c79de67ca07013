package goAccess

import (
	"context"
	"errors"

	"github.com/MrEthical07/goAccess/internal/stores"
	"github.com/redis/go-redis/v9"
)

// Builder assembles a [Store]. Configure with the WithX methods, then call
// [Builder.Build] exactly once.
type Builder struct {
	config Config
	redis  redis.UniversalClient

	bootstrapAdmin string
	auditSink      AuditSink

	built bool
}

// New creates a Builder with [DefaultConfig].
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithRedis backs the store with the given Redis client. Without it the
// store uses a process-local in-memory backend, suitable for embedding the
// store inside a host that serializes calls itself.
func (b *Builder) WithRedis(client redis.UniversalClient) *Builder {
	b.redis = client
	return b
}

// WithBootstrapAdmin names the principal granted admin-bit 0 at
// construction. Required: without a bootstrap admin no grant could ever be
// authorized.
func (b *Builder) WithBootstrapAdmin(principal string) *Builder {
	b.bootstrapAdmin = principal
	return b
}

// WithAuditSink sets the sink that receives audit events when auditing is
// enabled in the config.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithMetricsEnabled toggles metric collection.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build validates the configuration, wires the role store over the chosen
// backend, and performs the bootstrap grant of admin-bit 0.
func (b *Builder) Build() (*Store, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.bootstrapAdmin == "" {
		return nil, errors.New("bootstrap admin principal required")
	}

	var backend stores.Backend
	if b.redis != nil {
		backend = stores.NewRedisBackend(b.redis)
	} else {
		backend = stores.NewMemoryBackend()
	}

	store := &Store{
		config:  cfg,
		roles:   stores.NewRoleStore(backend, cfg.KV.RedisPrefix, cfg.Capacity),
		audit:   newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics: NewMetrics(cfg.Metrics),
	}

	if err := store.bootstrap(context.Background(), b.bootstrapAdmin); err != nil {
		store.Close()
		return nil, err
	}

	b.built = true

	return store, nil
}

// bootstrap grants admin-bit 0 to the initial administrator. Idempotent, so
// rebuilding a store over an existing Redis namespace is safe.
func (s *Store) bootstrap(ctx context.Context, admin string) error {
	held, err := s.roles.AdminRoles(ctx, admin)
	if err != nil {
		return s.wrapStoreErr(err)
	}

	if err := s.roles.SaveAdminRoles(ctx, admin, held.Set(DefaultAdminRole)); err != nil {
		return s.wrapStoreErr(err)
	}

	s.emitAudit(ctx, auditEventBootstrapAdmin, true, admin, admin, DefaultAdminRole, nil, nil)

	return nil
}
