// Package natspub publishes order status advisories over NATS. Messages are
// fire-and-forget hints for station UIs; the ledger stays the source of
// truth, so a lost message only delays a screen refresh.
package natspub

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"
)

// Publisher implements ports.MessagePublisher over a NATS connection.
type Publisher struct {
	conn *nats.Conn
}

// NewPublisher connects to the NATS server at the given URL.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &Publisher{conn: conn}, nil
}

// Publish sends one message to the topic.
func (p *Publisher) Publish(_ context.Context, topic string, msg []byte) error {
	return p.conn.Publish(topic, msg)
}

// Close drains the connection.
func (p *Publisher) Close() error {
	p.conn.Close()
	return nil
}
