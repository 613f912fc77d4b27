// Package services contains stateless domain services that implement
// business logic spanning multiple aggregates. The OrderStatusAggregator
// derives a single order-level status from the independent pipeline
// positions of the order's parts using the minimum-progress rule.
package services
