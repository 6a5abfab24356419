package broker

import "context"

// Message is one payload delivered on a topic
type Message struct {
	Topic   string
	Payload []byte
}

// Broker is an at-most-once pub/sub transport. Topics use ":" separators.
type Broker interface {
	Publish(ctx context.Context, topic string, payload []byte) error
	// Subscribe delivers messages until ctx is done, then closes the channel
	Subscribe(ctx context.Context, topics []string) (<-chan Message, error)
	// Healthy reports whether the broker can currently deliver messages
	Healthy() bool
	Close() error
}
