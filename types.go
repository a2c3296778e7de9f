package goIdentity

import (
	"context"
	"time"

	"github.com/MrEthical07/goIdentity/token"
)

// ConfirmationTokenType classifies single-use confirmation tokens. Only
// email verification is issued today; the column exists so recovery tokens
// can share the table later.
type ConfirmationTokenType string

const (
	// ConfirmationVerification marks an email-verification token.
	ConfirmationVerification ConfirmationTokenType = "verification"
)

// User is the identity record owned by the persistence layer. Email is
// unique and compared exactly as stored (no case folding).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	FullName     string
	Verified     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is one active refresh-token grant. At most one row exists per
// refresh-token value; a refresh token is usable iff its Session exists.
type Session struct {
	ID           string
	UserID       string
	RefreshToken string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ConfirmationToken is a single-use email-verification credential. The token
// value is random and unguessable; it is deleted in the same unit of work
// that flips the owning user's verified flag.
type ConfirmationToken struct {
	Token     string
	UserID    string
	Type      ConfirmationTokenType
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TokenPair is the ephemeral result of every issuing flow: a short-lived
// access token and a longer-lived refresh token, both carrying the same
// identity payload. The refresh token is additionally tracked server-side as
// a Session so it can be revoked.
type TokenPair = token.Pair

// Identity is the signed token payload: who the token was issued to and
// whether their email was verified at issuance time.
type Identity = token.Identity

// RegisterInput carries the fields accepted by [Engine.Register].
type RegisterInput struct {
	Email    string
	Password string
	FullName string
}

// ExternalIdentity is a provider-resolved identity (e.g. Google) normalized
// by an [ExternalIdentityResolver]. It is an alternative path to password
// login: the engine trusts it and never sees provider credentials.
type ExternalIdentity struct {
	Email     string
	Verified  bool
	FirstName string
	LastName  string
	Picture   string
}

// ExternalIdentityResolver turns a provider-specific artifact (an OAuth code,
// an ID token) into a normalized [ExternalIdentity]. One implementation per
// provider; resolution happens outside the engine.
type ExternalIdentityResolver interface {
	Resolve(ctx context.Context, artifact string) (*ExternalIdentity, error)
}

// CreateUserInput is the input for [UserStore.Create].
type CreateUserInput struct {
	Email        string
	PasswordHash string
	FullName     string
	Verified     bool
}

// UserStore is the user persistence contract consumed by the engine.
//
// FindByEmail and FindByID report a missing row as [ErrUserNotFound].
// Implementations must observe a transaction started by the engine's
// [TxRunner] for calls made inside it.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Create(ctx context.Context, input CreateUserInput) (*User, error)
	SetVerified(ctx context.Context, userID string) error
}

// SessionStore is the durable record of active refresh-token sessions,
// keyed by refresh-token value.
//
// Delete must be atomic and report [ErrSessionNotFound] when no session was
// deleted; refresh rotation relies on that reply to pick exactly one winner
// among concurrent attempts. Find reports a missing session the same way.
type SessionStore interface {
	Create(ctx context.Context, userID, refreshToken string) error
	Find(ctx context.Context, refreshToken string) (*Session, error)
	Delete(ctx context.Context, refreshToken string) error
}

// ConfirmationStore holds single-use confirmation tokens.
//
// Create mints and persists a new random token value. Find and Delete report
// a missing token as [ErrConfirmationInvalid]; Delete of an already-consumed
// token must not succeed, which is what makes consumption exactly-once.
type ConfirmationStore interface {
	Create(ctx context.Context, userID string, typ ConfirmationTokenType) (string, error)
	Find(ctx context.Context, tokenValue string) (*ConfirmationToken, error)
	Delete(ctx context.Context, tokenValue string) error
}

// TxRunner groups store calls into one all-or-nothing unit of work. The
// scope is carried in the context handed to fn and is committed or rolled
// back exactly once; store methods called with that context participate in
// the transaction.
//
// Cache-backed stores without multi-key transactions may run fn directly,
// provided their single-key operations are atomic (see store/redisstore).
type TxRunner interface {
	InTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Mailer dispatches account emails. Best-effort: the engine logs failures
// and never lets them fail or roll back the surrounding flow.
type Mailer interface {
	SendVerification(ctx context.Context, email, confirmationToken string) error
	SendPasswordRecovery(ctx context.Context, email, link string) error
}
