package token

import (
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Secret:     []byte("test-secret-at-least-32-bytes-long!"),
		AccessTTL:  5 * time.Minute,
		RefreshTTL: 24 * time.Hour,
		Issuer:     "goIdentity-test",
	}
}

func TestNewSignerRejectsMissingConfig(t *testing.T) {
	cases := []struct {
		name string
		mut  func(*Config)
	}{
		{"missing secret", func(c *Config) { c.Secret = nil }},
		{"zero access ttl", func(c *Config) { c.AccessTTL = 0 }},
		{"negative refresh ttl", func(c *Config) { c.RefreshTTL = -time.Minute }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := testConfig()
			tc.mut(&cfg)
			if _, err := NewSigner(cfg); err == nil {
				t.Fatal("expected construction error")
			}
		})
	}
}

func TestGeneratePairRoundTrip(t *testing.T) {
	signer, err := NewSigner(testConfig())
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}

	identity := Identity{UserID: "u1", Email: "a@b.com", EmailVerified: true}
	pair, err := signer.GeneratePair(identity)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatal("expected both tokens to be issued")
	}
	if pair.AccessToken == pair.RefreshToken {
		t.Fatal("access and refresh tokens must differ")
	}

	for _, tok := range []string{pair.AccessToken, pair.RefreshToken} {
		got, err := signer.Verify(tok)
		if err != nil {
			t.Fatalf("Verify failed: %v", err)
		}
		if *got != identity {
			t.Fatalf("identity mismatch: got %+v want %+v", *got, identity)
		}
	}
}

func TestGeneratePairMintsUniqueTokens(t *testing.T) {
	signer, err := NewSigner(testConfig())
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}

	identity := Identity{UserID: "u1", Email: "a@b.com"}
	first, err := signer.GeneratePair(identity)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}
	second, err := signer.GeneratePair(identity)
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}

	// Two pairs for the same identity in the same instant must still
	// differ; rotation replaces one refresh token with another.
	if first.RefreshToken == second.RefreshToken {
		t.Fatal("refresh tokens must be unique per issuance")
	}
	if first.AccessToken == second.AccessToken {
		t.Fatal("access tokens must be unique per issuance")
	}
}

func TestVerifyExpiredIsDistinctFromTampered(t *testing.T) {
	cfg := testConfig()
	cfg.AccessTTL = time.Millisecond
	signer, err := NewSigner(cfg)
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}

	pair, err := signer.GeneratePair(Identity{UserID: "u1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}

	time.Sleep(10 * time.Millisecond)
	if _, err := signer.Verify(pair.AccessToken); !errors.Is(err, ErrExpired) {
		t.Fatalf("want ErrExpired, got %v", err)
	}

	// Tampered signature must not be reported as expiry.
	tampered := pair.RefreshToken[:len(pair.RefreshToken)-2] + "xx"
	if _, err := signer.Verify(tampered); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	signer, err := NewSigner(testConfig())
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}

	other := testConfig()
	other.Secret = []byte("a-completely-different-signing-key")
	foreign, err := NewSigner(other)
	if err != nil {
		t.Fatalf("NewSigner failed: %v", err)
	}

	pair, err := foreign.GeneratePair(Identity{UserID: "u1"})
	if err != nil {
		t.Fatalf("GeneratePair failed: %v", err)
	}
	if _, err := signer.Verify(pair.AccessToken); !errors.Is(err, ErrInvalid) {
		t.Fatalf("want ErrInvalid, got %v", err)
	}
}
