package goIdentity

import (
	"errors"
	"log/slog"

	"github.com/MrEthical07/goIdentity/password"
	"github.com/MrEthical07/goIdentity/token"
)

// Builder assembles an [Engine] from explicit collaborators. There is no
// container: every dependency is handed over as a plain value, and Build
// validates the whole assembly once.
type Builder struct {
	config Config

	users         UserStore
	sessions      SessionStore
	confirmations ConfirmationStore
	tx            TxRunner
	mailer        Mailer
	auditSink     AuditSink
	logger        *slog.Logger

	built bool
}

// New returns a Builder preloaded with [DefaultConfig].
func New() *Builder {
	return &Builder{config: DefaultConfig()}
}

// WithConfig replaces the builder's configuration.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cloneConfig(cfg)
	return b
}

// WithStores injects the three persistence contracts and the unit-of-work
// runner. All four are required.
func (b *Builder) WithStores(users UserStore, sessions SessionStore, confirmations ConfirmationStore, tx TxRunner) *Builder {
	b.users = users
	b.sessions = sessions
	b.confirmations = confirmations
	b.tx = tx
	return b
}

// WithMailer injects the mail collaborator. Optional: without one the
// engine still mints confirmation tokens but dispatches nothing.
func (b *Builder) WithMailer(m Mailer) *Builder {
	b.mailer = m
	return b
}

// WithAuditSink injects the audit sink. Only consulted when
// Config.Audit.Enabled is true.
func (b *Builder) WithAuditSink(sink AuditSink) *Builder {
	b.auditSink = sink
	return b
}

// WithLogger injects the structured logger used for best-effort failures
// (mail dispatch). Nil logs nothing.
func (b *Builder) WithLogger(l *slog.Logger) *Builder {
	b.logger = l
	return b
}

// Build validates configuration and collaborators and returns the Engine.
// Configuration failures here are startup-fatal by design: a process with a
// missing signing secret must never serve authentication traffic.
func (b *Builder) Build() (*Engine, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := cloneConfig(b.config)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if b.users == nil || b.sessions == nil || b.confirmations == nil {
		return nil, errors.New("user, session, and confirmation stores required")
	}
	if b.tx == nil {
		return nil, errors.New("transaction runner required")
	}

	signer, err := token.NewSigner(token.Config{
		Secret:     cfg.JWT.Secret,
		AccessTTL:  cfg.JWT.AccessTTL,
		RefreshTTL: cfg.JWT.RefreshTTL,
		Issuer:     cfg.JWT.Issuer,
	})
	if err != nil {
		return nil, err
	}

	hasher, err := password.NewHasher(password.Config{Cost: cfg.Password.Cost})
	if err != nil {
		return nil, err
	}

	engine := &Engine{
		config:        cfg,
		users:         b.users,
		sessions:      b.sessions,
		confirmations: b.confirmations,
		tx:            b.tx,
		mailer:        b.mailer,
		signer:        signer,
		hasher:        hasher,
		audit:         newAuditDispatcher(cfg.Audit, b.auditSink),
		metrics:       NewMetrics(cfg.Metrics),
		logger:        b.logger,
	}

	b.built = true

	return engine, nil
}
