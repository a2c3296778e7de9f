package goIdentity

import (
	"context"
	"errors"
)

// Register creates an unverified account and signs it in. The verification
// mail is dispatched best-effort after the user row exists: a mail failure
// must not roll back the registration, since verification can be resent on
// the next login.
func (e *Engine) Register(ctx context.Context, input RegisterInput) (*TokenPair, error) {
	if e == nil || e.users == nil || e.sessions == nil || e.confirmations == nil || e.hasher == nil || e.signer == nil {
		return nil, ErrEngineNotReady
	}

	existing, err := e.users.FindByEmail(ctx, input.Email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, err
	}
	if existing != nil {
		e.metricInc(MetricRegisterDuplicate)
		e.emitAudit(ctx, auditEventRegister, false, "", input.Email, ErrUserExists, nil)
		return nil, ErrUserExists
	}

	hash, err := e.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := e.users.Create(ctx, CreateUserInput{
		Email:        input.Email,
		PasswordHash: hash,
		FullName:     input.FullName,
	})
	if err != nil {
		e.emitAudit(ctx, auditEventRegister, false, "", input.Email, err, nil)
		return nil, err
	}

	e.sendVerificationMail(ctx, user)

	pair, err := e.issueTokenPair(ctx, user)
	if err != nil {
		e.emitAudit(ctx, auditEventRegister, false, user.ID, user.Email, err, nil)
		return nil, err
	}

	e.metricInc(MetricRegisterSuccess)
	e.emitAudit(ctx, auditEventRegister, true, user.ID, user.Email, nil, nil)
	return pair, nil
}
