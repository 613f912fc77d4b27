package ports

import "context"

// MessagePublisher publishes advisory notifications to interested
// collaborators (station UIs, the directory's order screens). Publications
// are fire-and-forget from the core's point of view; the ledger never
// depends on them.
type MessagePublisher interface {
	Publish(ctx context.Context, topic string, msg []byte) error
}
