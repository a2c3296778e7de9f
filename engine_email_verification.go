package goIdentity

import (
	"context"
	"errors"
)

// VerifyEmail consumes a confirmation token and marks its owner verified.
// Consumption is exactly-once: the token delete and the verified-flag write
// share one unit of work, and the delete reports [ErrConfirmationInvalid]
// when the token is already gone. A second call with the same token (or a
// concurrent duplicate) fails cleanly without touching the user.
func (e *Engine) VerifyEmail(ctx context.Context, tokenValue string) error {
	if e == nil || e.users == nil || e.confirmations == nil || e.tx == nil {
		return ErrEngineNotReady
	}
	if tokenValue == "" {
		e.metricInc(MetricVerificationFailure)
		return ErrConfirmationInvalid
	}

	confirmation, err := e.confirmations.Find(ctx, tokenValue)
	if err != nil {
		if errors.Is(err, ErrConfirmationInvalid) {
			e.metricInc(MetricVerificationFailure)
			e.emitAudit(ctx, auditEventVerifyEmail, false, "", "", ErrConfirmationInvalid, nil)
			return ErrConfirmationInvalid
		}
		return err
	}

	err = e.tx.InTx(ctx, func(ctx context.Context) error {
		if err := e.confirmations.Delete(ctx, tokenValue); err != nil {
			return err
		}
		return e.users.SetVerified(ctx, confirmation.UserID)
	})
	if err != nil {
		e.metricInc(MetricVerificationFailure)
		e.emitAudit(ctx, auditEventVerifyEmail, false, confirmation.UserID, "", err, nil)
		if errors.Is(err, ErrConfirmationInvalid) {
			return ErrConfirmationInvalid
		}
		return err
	}

	e.metricInc(MetricVerificationSuccess)
	e.emitAudit(ctx, auditEventVerifyEmail, true, confirmation.UserID, "", nil, nil)
	return nil
}
