// Package token signs and verifies the JWT credentials issued by the
// engine: short-lived access tokens and longer-lived refresh tokens, both
// HS256 over the same secret with different expirations.
package token
