package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	// ErrExpired is returned by Verify for a structurally valid token whose
	// exp claim has passed. Callers use it to silently refresh instead of
	// prompting re-login.
	ErrExpired = errors.New("token expired")
	// ErrInvalid is returned for every other verification failure: bad
	// signature, malformed token, wrong algorithm.
	ErrInvalid = errors.New("invalid token")
)

// Identity is the payload carried by both tokens of a pair, captured at
// issuance time.
type Identity struct {
	UserID        string
	Email         string
	EmailVerified bool
}

// Pair is one issuance result. Not persisted as such; the refresh token's
// server-side existence is tracked by the session store.
type Pair struct {
	AccessToken  string
	RefreshToken string
}

// Config holds the signing inputs. All three fields are required; Signer
// construction fails otherwise so a misconfigured process never serves
// traffic with unsigned or never-expiring credentials.
type Config struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// Signer mints and verifies token pairs. Safe for concurrent use.
type Signer struct {
	config Config
}

type claims struct {
	UID           string `json:"uid"`
	Email         string `json:"email"`
	EmailVerified bool   `json:"email_verified"`
	jwt.RegisteredClaims
}

// NewSigner validates cfg and returns a Signer. A missing secret or a
// non-positive TTL is a startup configuration error, not a runtime one.
func NewSigner(cfg Config) (*Signer, error) {
	if len(cfg.Secret) == 0 {
		return nil, errors.New("token: signing secret required")
	}
	if cfg.AccessTTL <= 0 {
		return nil, errors.New("token: access TTL must be positive")
	}
	if cfg.RefreshTTL <= 0 {
		return nil, errors.New("token: refresh TTL must be positive")
	}
	return &Signer{config: cfg}, nil
}

// GeneratePair signs identity twice with the configured secret: once with
// the access expiration and once with the refresh expiration.
func (s *Signer) GeneratePair(identity Identity) (*Pair, error) {
	access, err := s.sign(identity, s.config.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := s.sign(identity, s.config.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &Pair{AccessToken: access, RefreshToken: refresh}, nil
}

// Verify checks signature and expiry and returns the embedded identity.
// Expired tokens fail with [ErrExpired]; everything else with [ErrInvalid].
func (s *Signer) Verify(tokenStr string) (*Identity, error) {
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	var c claims
	parsed, err := parser.ParseWithClaims(tokenStr, &c, func(t *jwt.Token) (interface{}, error) {
		return s.config.Secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpired
		}
		return nil, ErrInvalid
	}
	if !parsed.Valid {
		return nil, ErrInvalid
	}

	return &Identity{
		UserID:        c.UID,
		Email:         c.Email,
		EmailVerified: c.EmailVerified,
	}, nil
}

func (s *Signer) sign(identity Identity, ttl time.Duration) (string, error) {
	now := time.Now()
	c := claims{
		UID:           identity.UserID,
		Email:         identity.Email,
		EmailVerified: identity.EmailVerified,
		RegisteredClaims: jwt.RegisteredClaims{
			// jti makes every minted token unique even when two tokens for
			// the same identity are signed within the same second. Rotation
			// depends on the new refresh token differing from the old one.
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    s.config.Issuer,
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(s.config.Secret)
}
