package goIdentity

import (
	"context"
	"errors"
	"strings"
)

// Login authenticates an email/password pair and issues a fresh token pair
// with a new session. An unknown email and a wrong password both fail with
// [ErrInvalidCredentials]: the response must not reveal whether the account
// exists.
//
// A successful login on an unverified account re-mints a confirmation token
// and resends the verification mail; this never blocks the login itself.
func (e *Engine) Login(ctx context.Context, email, plaintextPassword string) (*TokenPair, error) {
	if e == nil || e.users == nil || e.sessions == nil || e.hasher == nil || e.signer == nil {
		return nil, ErrEngineNotReady
	}

	user, err := e.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			e.metricInc(MetricLoginFailure)
			e.emitAudit(ctx, auditEventLogin, false, "", email, ErrInvalidCredentials, nil)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !e.hasher.Verify(plaintextPassword, user.PasswordHash) {
		e.metricInc(MetricLoginFailure)
		e.emitAudit(ctx, auditEventLogin, false, user.ID, user.Email, ErrInvalidCredentials, nil)
		return nil, ErrInvalidCredentials
	}

	if !user.Verified {
		e.sendVerificationMail(ctx, user)
	}

	pair, err := e.issueTokenPair(ctx, user)
	if err != nil {
		e.emitAudit(ctx, auditEventLogin, false, user.ID, user.Email, err, nil)
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLogin, true, user.ID, user.Email, nil, nil)
	return pair, nil
}

// LoginExternal signs in a provider-resolved identity (see
// [ExternalIdentityResolver]). A first-time identity gets a local account
// created on the spot; the password hash is left empty and can never verify,
// so the account is reachable only through the provider until a password
// reset sets one. No credential check happens here: the resolver already
// proved control of the identity.
func (e *Engine) LoginExternal(ctx context.Context, identity ExternalIdentity) (*TokenPair, error) {
	if e == nil || e.users == nil || e.sessions == nil || e.signer == nil {
		return nil, ErrEngineNotReady
	}
	if identity.Email == "" {
		return nil, ErrInvalidCredentials
	}

	user, err := e.users.FindByEmail(ctx, identity.Email)
	if err != nil {
		if !errors.Is(err, ErrUserNotFound) {
			return nil, err
		}
		user, err = e.users.Create(ctx, CreateUserInput{
			Email:    identity.Email,
			FullName: externalFullName(identity),
			Verified: identity.Verified,
		})
		if err != nil {
			e.emitAudit(ctx, auditEventLoginExternal, false, "", identity.Email, err, nil)
			return nil, err
		}
	}

	if !user.Verified {
		e.sendVerificationMail(ctx, user)
	}

	pair, err := e.issueTokenPair(ctx, user)
	if err != nil {
		e.emitAudit(ctx, auditEventLoginExternal, false, user.ID, user.Email, err, nil)
		return nil, err
	}

	e.metricInc(MetricLoginSuccess)
	e.emitAudit(ctx, auditEventLoginExternal, true, user.ID, user.Email, nil, nil)
	return pair, nil
}

func externalFullName(identity ExternalIdentity) string {
	return strings.TrimSpace(identity.FirstName + " " + identity.LastName)
}
