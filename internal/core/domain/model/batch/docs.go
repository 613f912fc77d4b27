// Package batch provides the aggregate for multi-order production runs.
//
// A batch groups orders that move through the pipeline together. It holds
// an ordered list of order snapshots fixed at creation and a lifecycle
// status machine (Pending -> Processing <-> Paused -> Completed). Progress
// is deliberately not stored: it is recomputed from live order status on
// every read, so the batch record can never go stale relative to the scan
// ledger.
package batch
