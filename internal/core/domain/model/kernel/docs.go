// Package kernel contains shared domain primitives used across aggregates:
// the UUID value object that identifies parts, orders, batches, and scan
// events. Kernel types are immutable and safe for concurrent use.
package kernel
