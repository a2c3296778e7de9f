// Package middleware exposes HTTP adapters for goIdentity.Engine token
// validation.
//
// # Guards
//
//   - [Guard] — reads the Authorization bearer token, validates it, and
//     injects the identity into the request context.
//   - [RefreshGuard] — reads the refresh-token cookie, validates it, and
//     injects the identity plus the raw token for rotation handlers.
//
// # Architecture boundaries
//
// This package translates HTTP semantics into Engine calls. It does NOT
// implement authentication logic itself — all decisions are delegated to
// Engine validation.
//
// # What this package must NOT do
//
//   - Parse or create JWTs directly (delegates to Engine).
//   - Touch the session store (Engine handles I/O).
//   - Make authorization decisions beyond pass/reject.
package middleware
