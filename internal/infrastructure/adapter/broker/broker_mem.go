package broker

import (
	"context"
	"errors"
	"sync"
)

// ErrBrokerClosed is returned when publishing or subscribing on a closed broker
var ErrBrokerClosed = errors.New("broker closed")

// MemBroker is an in-process broker for single-instance deployments and tests.
// Slow subscribers drop messages rather than block publishers.
type MemBroker struct {
	mu         sync.RWMutex
	subs       map[string][]chan Message
	bufferSize int
	closed     bool
}

// NewMemBroker creates a MemBroker with per-subscriber buffers of bufferSize
func NewMemBroker(bufferSize int) *MemBroker {
	if bufferSize <= 0 {
		bufferSize = 256
	}
	return &MemBroker{
		subs:       make(map[string][]chan Message),
		bufferSize: bufferSize,
	}
}

func (b *MemBroker) Publish(ctx context.Context, topic string, payload []byte) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return ErrBrokerClosed
	}

	msg := Message{Topic: topic, Payload: payload}
	for _, ch := range b.subs[topic] {
		select {
		case ch <- msg:
		default:
		}
	}
	return nil
}

func (b *MemBroker) Subscribe(ctx context.Context, topics []string) (<-chan Message, error) {
	ch := make(chan Message, b.bufferSize)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBrokerClosed
	}
	for _, t := range topics {
		b.subs[t] = append(b.subs[t], ch)
	}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(ch, topics)
	}()
	return ch, nil
}

// unsubscribe detaches ch under the write lock so no publisher can send on it once closed
func (b *MemBroker) unsubscribe(ch chan Message, topics []string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	for _, t := range topics {
		subs := b.subs[t]
		for i, s := range subs {
			if s == ch {
				b.subs[t] = append(subs[:i:i], subs[i+1:]...)
				break
			}
		}
		if len(b.subs[t]) == 0 {
			delete(b.subs, t)
		}
	}
	close(ch)
}

func (b *MemBroker) Healthy() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return !b.closed
}

// Close closes every subscriber channel
func (b *MemBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}
	b.closed = true

	seen := make(map[chan Message]bool)
	for _, subs := range b.subs {
		for _, ch := range subs {
			if !seen[ch] {
				seen[ch] = true
				close(ch)
			}
		}
	}
	b.subs = nil
	return nil
}
