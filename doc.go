// Package goIdentity implements the credential and session lifecycle for a
// web application: registration, password login, email verification, and
// refresh-token rotation with server-side session tracking.
//
// The package is designed for concurrent server workloads: Engine methods are
// safe to call from multiple goroutines after initialization through
// [Builder.Build].
//
// # Architecture boundaries
//
// goIdentity is the public surface. It exposes [Engine], [Builder], [Config],
// the store contracts ([UserStore], [SessionStore], [ConfirmationStore]) and
// value types. Token signing lives in token/, password hashing in password/,
// and the store backends under store/. Audit dispatch lives under internal/
// and is never exported directly.
//
// # What this package must NOT do
//
//   - Own HTTP routing, request validation, or mail template rendering; those
//     are collaborator concerns (see examples/http-minimal and middleware/).
//   - Retry failed store operations, or convert a mail-send failure into a
//     user-visible error.
//   - Hold mutable state outside the injected stores: every durable fact is
//     a User, Session, or ConfirmationToken row/key.
//
// # Correctness contract
//
// Refresh rotation and email verification are the only multi-statement
// mutations; both run inside a single unit of work supplied by the store
// layer. Concurrent refreshes of one token have exactly one winner, enforced
// by the store's atomic delete rather than engine-level locking.
package goIdentity
