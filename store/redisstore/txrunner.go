package redisstore

import "context"

// TxRunner satisfies the engine's unit-of-work contract without a real
// transaction: fn runs directly against the live store. Single-key DEL
// atomicity is what preserves the exactly-once guarantees the engine
// relies on; the trade-off is that a failure after a consuming delete does
// not restore the deleted key.
type TxRunner struct{}

// NewTxRunner returns the pass-through runner.
func NewTxRunner() *TxRunner {
	return &TxRunner{}
}

// InTx runs fn with the unmodified context.
func (*TxRunner) InTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
