package goIdentity

import (
	"errors"
	"time"

	"github.com/MrEthical07/goIdentity/password"
)

// Config is the engine configuration. Populate it in code or through
// [ConfigFromEnv], then hand it to [Builder.WithConfig]. Validation happens
// once in [Builder.Build]; a config that fails validation is a startup
// error and the engine is never constructed.
type Config struct {
	JWT          JWTConfig
	Password     PasswordConfig
	Confirmation ConfirmationConfig
	Mail         MailConfig
	Audit        AuditConfig
	Metrics      MetricsConfig
}

// JWTConfig configures the token signer. Secret is required; both TTLs must
// be positive.
type JWTConfig struct {
	Secret     []byte
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	Issuer     string
}

// PasswordConfig configures the credential hasher.
type PasswordConfig struct {
	Cost int
}

// ConfirmationConfig configures email-confirmation tokens. TTL applies only
// to cache-backed confirmation stores; the durable store keeps tokens until
// consumed.
type ConfirmationConfig struct {
	TTL time.Duration
}

// MailConfig configures verification mail content. VerifyBaseURL is
// prepended to the confirmation token to build the link in the mail body.
type MailConfig struct {
	From          string
	VerifyBaseURL string
}

// AuditConfig controls the async audit dispatcher.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

// MetricsConfig controls the in-process counters.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the development defaults: 15-minute access tokens,
// 30-day refresh tokens (matching the refresh cookie max-age used by the
// transport), bcrypt cost 10, audit and metrics off. The JWT secret has no
// default and must always be supplied.
func DefaultConfig() Config {
	return Config{
		JWT: JWTConfig{
			AccessTTL:  15 * time.Minute,
			RefreshTTL: 30 * 24 * time.Hour,
			Issuer:     "goIdentity",
		},
		Password: PasswordConfig{
			Cost: password.DefaultCost,
		},
		Confirmation: ConfirmationConfig{
			TTL: 24 * time.Hour,
		},
		Audit: AuditConfig{
			BufferSize: 256,
			DropIfFull: true,
		},
	}
}

// Validate reports the first configuration error. All of these are fatal:
// the process must not serve traffic with a missing signing secret or
// non-expiring credentials.
func (c *Config) Validate() error {
	if len(c.JWT.Secret) == 0 {
		return errors.New("config: JWT secret required")
	}
	if c.JWT.AccessTTL <= 0 {
		return errors.New("config: JWT access TTL must be positive")
	}
	if c.JWT.RefreshTTL <= 0 {
		return errors.New("config: JWT refresh TTL must be positive")
	}
	if c.JWT.RefreshTTL < c.JWT.AccessTTL {
		return errors.New("config: refresh TTL must not be shorter than access TTL")
	}
	if c.Confirmation.TTL < 0 {
		return errors.New("config: confirmation TTL must not be negative")
	}
	if c.Audit.BufferSize < 0 {
		return errors.New("config: audit buffer size must not be negative")
	}
	return nil
}

func cloneConfig(cfg Config) Config {
	out := cfg
	out.JWT.Secret = cloneBytes(cfg.JWT.Secret)
	return out
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
