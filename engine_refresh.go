package goIdentity

import (
	"context"
	"errors"
)

// Refresh rotates a refresh token: the old session is deleted and a new
// pair with a new session is issued, atomically. The identity is the one
// carried by the already-verified refresh token; the transport gate
// validated it before calling in.
//
// Replay of an already-rotated token fails with [ErrSessionNotFound], as
// does a token that was never issued. When two requests race on the same
// token, the store's atomic delete lets exactly one of them win; the loser
// observes the session already gone. If anything after the delete fails,
// the unit of work rolls back and the old session remains usable; a
// half-rotated state never persists.
func (e *Engine) Refresh(ctx context.Context, identity Identity, refreshToken string) (*TokenPair, error) {
	if e == nil || e.sessions == nil || e.signer == nil || e.tx == nil {
		return nil, ErrEngineNotReady
	}

	session, err := e.sessions.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			e.metricInc(MetricRefreshReplay)
			e.emitAudit(ctx, auditEventRefresh, false, identity.UserID, identity.Email, ErrSessionNotFound, nil)
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if session.UserID != identity.UserID {
		e.metricInc(MetricRefreshReplay)
		e.emitAudit(ctx, auditEventRefresh, false, identity.UserID, identity.Email, ErrSessionNotFound, func() map[string]string {
			return map[string]string{"reason": "owner_mismatch"}
		})
		return nil, ErrSessionNotFound
	}

	var pair *TokenPair
	err = e.tx.InTx(ctx, func(ctx context.Context) error {
		if err := e.sessions.Delete(ctx, refreshToken); err != nil {
			return err
		}
		e.metricInc(MetricSessionInvalidated)

		p, err := e.signer.GeneratePair(identity)
		if err != nil {
			return err
		}
		if err := e.sessions.Create(ctx, identity.UserID, p.RefreshToken); err != nil {
			return err
		}
		e.metricInc(MetricSessionCreated)

		pair = p
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			// Lost the race: another request rotated this token first.
			e.metricInc(MetricRefreshReplay)
			e.emitAudit(ctx, auditEventRefresh, false, identity.UserID, identity.Email, ErrSessionNotFound, nil)
			return nil, ErrSessionNotFound
		}
		e.metricInc(MetricRefreshFailure)
		e.emitAudit(ctx, auditEventRefresh, false, identity.UserID, identity.Email, err, nil)
		return nil, err
	}

	e.metricInc(MetricRefreshSuccess)
	e.emitAudit(ctx, auditEventRefresh, true, identity.UserID, identity.Email, nil, nil)
	return pair, nil
}

// Logout deletes the session for the given refresh token. Idempotent: a
// token with no session (already logged out, already rotated) succeeds.
func (e *Engine) Logout(ctx context.Context, refreshToken string) error {
	if e == nil || e.sessions == nil {
		return ErrEngineNotReady
	}

	err := e.sessions.Delete(ctx, refreshToken)
	if err != nil && !errors.Is(err, ErrSessionNotFound) {
		e.emitAudit(ctx, auditEventLogout, false, "", "", err, nil)
		return err
	}
	if err == nil {
		e.metricInc(MetricSessionInvalidated)
	}

	e.emitAudit(ctx, auditEventLogout, true, "", "", nil, nil)
	return nil
}
