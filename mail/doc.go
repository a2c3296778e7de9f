// Package mail provides the engine's Mailer implementations: an SMTP
// sender for production and a log-only sender for development and tests.
// Message bodies are rendered from text templates; the verification mail
// embeds a link built from the configured base URL and the confirmation
// token.
package mail
