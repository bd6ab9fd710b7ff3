package goACL

import (
	"errors"

	"github.com/MrEthical07/goACL/rolebitmap"
	"github.com/MrEthical07/goACL/state"
	"github.com/redis/go-redis/v9"
)

// Builder assembles an [Engine]. Chain the With* methods and finish with
// [Builder.Build]; a builder is single-use.
type Builder struct {
	config Config
	store  state.Store
	redis  *redis.Client

	roleNames []string
	observer  RoleChangeObserver
	auditSink AuditSink

	built bool
}

// New creates a Builder with default configuration.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig replaces the builder configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStore sets an explicit state store. Takes precedence over WithRedis.
func (b *Builder) WithStore(s state.Store) *Builder {
	b.store = s
	return b
}

// WithRedis backs the engine with a Redis-persisted state store keyed under
// Config.State.RedisPrefix.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithRoles registers named roles in declaration order; the resulting
// registry is frozen at Build and reachable via [Engine.Registry].
func (b *Builder) WithRoles(names ...string) *Builder {
	b.roleNames = append(b.roleNames, names...)
	return b
}

// WithObserver installs the role-change observer invoked synchronously
// inside every grant/revoke/transfer.
func (b *Builder) WithObserver(obs RoleChangeObserver) *Builder {
	b.observer = obs
	return b
}

// WithAuditSink installs the sink receiving audit events when auditing is
// enabled in the config.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// Build validates the assembly and returns a ready Engine.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	store := b.store
	if store == nil && b.redis != nil {
		store = state.NewRedis(b.redis, b.config.State.RedisPrefix)
	}
	if store == nil {
		store = state.NewMemory()
	}

	registry := rolebitmap.NewRegistry()
	for _, name := range b.roleNames {
		if _, err := registry.Register(name); err != nil {
			return nil, err
		}
	}
	registry.Freeze()

	var metrics *Metrics
	if b.config.Metrics.Enabled {
		metrics = newMetrics()
	}

	e := &Engine{
		config:   b.config,
		store:    store,
		registry: registry,
		observer: b.observer,
		audit:    newAuditDispatcher(b.config.Audit, b.auditSink),
		metrics:  metrics,
	}

	b.built = true
	return e, nil
}
