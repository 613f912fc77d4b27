// Package scan provides the immutable scan event record that makes up the
// part tracking ledger. A part's current station is always derived as the
// station of its most recent event; the ledger itself is the single source
// of truth for all part and order progress in the system.
package scan
