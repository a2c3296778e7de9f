package goIdentity

import (
	"context"
	"fmt"
	"log/slog"

	internalaudit "github.com/MrEthical07/goIdentity/internal/audit"
	"github.com/MrEthical07/goIdentity/password"
	"github.com/MrEthical07/goIdentity/token"
)

// Engine orchestrates the stores, hasher, signer, and mailer to implement
// the register, login, refresh, and verify-email flows. Construct it through
// [Builder.Build]; after that every method is safe for concurrent use. The
// engine holds no mutable state of its own; all durable state lives in the
// injected stores.
type Engine struct {
	config        Config
	users         UserStore
	sessions      SessionStore
	confirmations ConfirmationStore
	tx            TxRunner
	mailer        Mailer
	signer        *token.Signer
	hasher        *password.Hasher
	audit         *internalaudit.Dispatcher
	metrics       *Metrics
	logger        *slog.Logger
}

// Close flushes and stops the audit dispatcher. Safe on a nil engine.
func (e *Engine) Close() {
	if e == nil {
		return
	}
	if e.audit != nil {
		e.audit.Close()
	}
}

// AuditDropped reports how many audit events were discarded because the
// dispatcher buffer was full.
func (e *Engine) AuditDropped() uint64 {
	if e == nil || e.audit == nil {
		return 0
	}
	return e.audit.Dropped()
}

// MetricsSnapshot returns a point-in-time copy of the engine counters.
func (e *Engine) MetricsSnapshot() MetricsSnapshot {
	if e == nil {
		return MetricsSnapshot{Counters: map[MetricID]uint64{}}
	}
	return e.metrics.Snapshot()
}

func (e *Engine) metricInc(id MetricID) {
	if e == nil {
		return
	}
	e.metrics.Inc(id)
}

// Validate verifies an access token and returns the identity it carries.
// This is the authentication gate used by the transport layer before any
// engine method that acts "as" a user is invoked. All verification
// failures, expired and tampered alike, wrap [ErrUnauthorized].
func (e *Engine) Validate(tokenStr string) (*Identity, error) {
	if e == nil || e.signer == nil {
		return nil, ErrEngineNotReady
	}
	identity, err := e.signer.Verify(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return identity, nil
}

// ValidateRefresh verifies a refresh token's signature and expiry. It does
// not consult the session store; [Engine.Refresh] does that when rotating.
func (e *Engine) ValidateRefresh(tokenStr string) (*Identity, error) {
	if e == nil || e.signer == nil {
		return nil, ErrEngineNotReady
	}
	identity, err := e.signer.Verify(tokenStr)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}
	return identity, nil
}

// issueTokenPair mints a pair for the user and persists the session keyed
// by the new refresh token.
func (e *Engine) issueTokenPair(ctx context.Context, user *User) (*TokenPair, error) {
	pair, err := e.signer.GeneratePair(Identity{
		UserID:        user.ID,
		Email:         user.Email,
		EmailVerified: user.Verified,
	})
	if err != nil {
		return nil, err
	}

	if err := e.sessions.Create(ctx, user.ID, pair.RefreshToken); err != nil {
		return nil, err
	}
	e.metricInc(MetricSessionCreated)

	return pair, nil
}

// sendVerificationMail mints a confirmation token and dispatches the
// verification mail. Best-effort by contract: failures are logged and
// audited, never returned, and this must never run inside a store
// transaction since mail is an external network call.
func (e *Engine) sendVerificationMail(ctx context.Context, user *User) {
	confirmationToken, err := e.confirmations.Create(ctx, user.ID, ConfirmationVerification)
	if err != nil {
		e.log().WarnContext(ctx, "minting confirmation token failed",
			"user_id", user.ID, "error", err)
		e.metricInc(MetricMailSendFailure)
		e.emitAudit(ctx, auditEventMailDispatch, false, user.ID, user.Email, err, nil)
		return
	}

	if e.mailer == nil {
		return
	}
	if err := e.mailer.SendVerification(ctx, user.Email, confirmationToken); err != nil {
		e.log().WarnContext(ctx, "verification mail dispatch failed",
			"user_id", user.ID, "error", err)
		e.metricInc(MetricMailSendFailure)
		e.emitAudit(ctx, auditEventMailDispatch, false, user.ID, user.Email, err, nil)
		return
	}

	e.emitAudit(ctx, auditEventMailDispatch, true, user.ID, user.Email, nil, nil)
}

func (e *Engine) log() *slog.Logger {
	if e == nil || e.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.logger
}
