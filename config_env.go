package goIdentity

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type envConfig struct {
	JWTSecret            string        `env:"JWT_SECRET,required"`
	JWTAccessExpiration  time.Duration `env:"JWT_ACCESS_EXPIRATION_TIME" envDefault:"15m"`
	JWTRefreshExpiration time.Duration `env:"JWT_REFRESH_EXPIRATION_TIME" envDefault:"720h"`
	JWTIssuer            string        `env:"JWT_ISSUER" envDefault:"goIdentity"`
	PasswordCost         int           `env:"PASSWORD_BCRYPT_COST" envDefault:"10"`
	ConfirmationTTL      time.Duration `env:"CONFIRMATION_TOKEN_TTL" envDefault:"24h"`
	MailFrom             string        `env:"MAIL_FROM"`
	MailVerifyBaseURL    string        `env:"MAIL_VERIFY_BASE_URL"`
	AuditEnabled         bool          `env:"AUDIT_ENABLED" envDefault:"false"`
	MetricsEnabled       bool          `env:"METRICS_ENABLED" envDefault:"false"`
}

// ConfigFromEnv builds a Config from process environment variables
// (JWT_SECRET, JWT_ACCESS_EXPIRATION_TIME, JWT_REFRESH_EXPIRATION_TIME and
// friends). A missing JWT_SECRET fails here rather than at first login.
func ConfigFromEnv() (Config, error) {
	var raw envConfig
	if err := env.Parse(&raw); err != nil {
		return Config{}, fmt.Errorf("config: parse environment: %w", err)
	}

	cfg := DefaultConfig()
	cfg.JWT.Secret = []byte(raw.JWTSecret)
	cfg.JWT.AccessTTL = raw.JWTAccessExpiration
	cfg.JWT.RefreshTTL = raw.JWTRefreshExpiration
	cfg.JWT.Issuer = raw.JWTIssuer
	cfg.Password.Cost = raw.PasswordCost
	cfg.Confirmation.TTL = raw.ConfirmationTTL
	cfg.Mail.From = raw.MailFrom
	cfg.Mail.VerifyBaseURL = raw.MailVerifyBaseURL
	cfg.Audit.Enabled = raw.AuditEnabled
	cfg.Metrics.Enabled = raw.MetricsEnabled

	return cfg, cfg.Validate()
}
