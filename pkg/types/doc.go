// Package types defines the public configuration and typed errors shared by
// the poolkit packages.
//
// Design goals:
//   - Zero-value friendly: a zero Config is valid after Normalize.
//   - Typed errors with stable categories (config/ownership/type/state).
//   - Explicit teardown; no process-wide state.
package types
