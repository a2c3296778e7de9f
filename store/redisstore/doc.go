// Package redisstore implements the session and confirmation-token
// contracts over Redis, for deployments that keep user records in SQL but
// want token state in a cache with native TTL expiry.
//
// Redis has no multi-key transactions compatible with the engine's unit of
// work, so the package's TxRunner runs the function directly. The
// correctness the engine needs survives that substitution because every
// consuming operation is a single atomic DEL: the reply count decides the
// one winner among concurrent callers.
package redisstore
