package broker

import (
	"context"
	"strings"

	"github.com/nats-io/nats.go"
)

// NatsBroker publishes over core NATS subjects (at-most-once)
type NatsBroker struct {
	nc         *nats.Conn
	bufferSize int
}

// NewNatsBroker connects to url
func NewNatsBroker(url string, bufferSize int, opts ...nats.Option) (*NatsBroker, error) {
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, err
	}
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &NatsBroker{nc: nc, bufferSize: bufferSize}, nil
}

func (b *NatsBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	return b.nc.Publish(topicToSubject(topic), payload)
}

func (b *NatsBroker) Subscribe(ctx context.Context, topics []string) (<-chan Message, error) {
	out := make(chan Message, b.bufferSize)
	subs := make([]*nats.Subscription, 0, len(topics))

	for _, t := range topics {
		topic := t
		sub, err := b.nc.Subscribe(topicToSubject(topic), func(m *nats.Msg) {
			msg := Message{
				Topic:   topic,
				Payload: m.Data,
			}
			// never block the NATS callback on a slow consumer
			select {
			case out <- msg:
			default:
			}
		})
		if err != nil {
			for _, s := range subs {
				_ = s.Unsubscribe()
			}
			return nil, err
		}
		subs = append(subs, sub)
	}

	go func() {
		<-ctx.Done()
		for _, s := range subs {
			_ = s.Unsubscribe()
		}
		close(out)
	}()

	return out, nil
}

func (b *NatsBroker) Healthy() bool {
	return b.nc != nil && b.nc.IsConnected()
}

func (b *NatsBroker) Close() error {
	if b.nc == nil {
		return nil
	}
	err := b.nc.Drain()
	b.nc.Close()
	return err
}

// topicToSubject maps colon-separated topics onto NATS subject tokens
func topicToSubject(topic string) string { return strings.ReplaceAll(topic, ":", ".") }
