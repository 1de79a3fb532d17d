package checkout

import (
	"errors"
	"fmt"
)

// ErrStoreNotFound is returned by the tenant resolver when no store
// matches the submitted slug. There is never a fallback tenant.
var ErrStoreNotFound = errors.New("store not found")

// ValidationError carries every offending field of a checkout
// submission, not just the first one found.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid checkout request: %d field(s) failed validation", len(e.Fields))
}

// PriceMismatchError means the client-claimed total deviates from the
// server-side recomputation beyond the allowed tolerance.
type PriceMismatchError struct {
	Claimed  float64
	Computed float64
}

func (e *PriceMismatchError) Error() string {
	return fmt.Sprintf("claimed total %.2f does not match computed total %.2f", e.Claimed, e.Computed)
}

// PersistenceError wraps a storage failure while creating the order.
type PersistenceError struct {
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("order persistence failed: %v", e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// SettlementError wraps a payment-session initiation failure. The order
// header was already persisted, so the id is carried along for the
// caller to retry settlement without recreating the order.
type SettlementError struct {
	OrderID uint
	Err     error
}

func (e *SettlementError) Error() string {
	return fmt.Sprintf("settlement initiation failed for order %d: %v", e.OrderID, e.Err)
}

func (e *SettlementError) Unwrap() error { return e.Err }
