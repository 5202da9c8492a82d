package service

import (
	"context"
	"sync"

	"github.com/omnia-labs/omnia-api/internal/domain"
)

const subscriberBuffer = 16

// Subscription receives the state events of one account. C is closed when
// the subscription ends, either by Unsubscribe or because the consumer fell
// too far behind.
type Subscription struct {
	AccountID string
	C         <-chan domain.StateEvent

	send chan domain.StateEvent
}

// Broker fans state events out to websocket subscribers.
type Broker struct {
	clients      map[string]map[*Subscription]struct{}
	clientsMutex sync.Mutex
	broadcast    chan domain.StateEvent
	register     chan *Subscription
	unregister   chan *Subscription
}

func NewBroker() *Broker {
	return &Broker{
		clients:    make(map[string]map[*Subscription]struct{}),
		broadcast:  make(chan domain.StateEvent, 256),
		register:   make(chan *Subscription),
		unregister: make(chan *Subscription),
	}
}

// Run delivers events until ctx is done.
func (b *Broker) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			b.closeAll()
			return
		case sub := <-b.register:
			b.clientsMutex.Lock()
			if b.clients[sub.AccountID] == nil {
				b.clients[sub.AccountID] = make(map[*Subscription]struct{})
			}
			b.clients[sub.AccountID][sub] = struct{}{}
			b.clientsMutex.Unlock()
		case sub := <-b.unregister:
			b.clientsMutex.Lock()
			b.remove(sub)
			b.clientsMutex.Unlock()
		case evt := <-b.broadcast:
			b.clientsMutex.Lock()
			for sub := range b.clients[evt.AccountID] {
				select {
				case sub.send <- evt:
				default:
					eventsDroppedTotal.Inc()
					b.remove(sub)
				}
			}
			b.clientsMutex.Unlock()
		}
	}
}

func (b *Broker) Subscribe(ctx context.Context, accountID string) (*Subscription, error) {
	send := make(chan domain.StateEvent, subscriberBuffer)
	sub := &Subscription{AccountID: accountID, C: send, send: send}

	select {
	case b.register <- sub:
		return sub, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (b *Broker) Unsubscribe(ctx context.Context, sub *Subscription) {
	select {
	case b.unregister <- sub:
	case <-ctx.Done():
	}
}

// Publish never blocks; events are dropped when the broker is saturated.
func (b *Broker) Publish(evt domain.StateEvent) {
	select {
	case b.broadcast <- evt:
	default:
		eventsDroppedTotal.Inc()
	}
}

// remove expects clientsMutex to be held.
func (b *Broker) remove(sub *Subscription) {
	subs, ok := b.clients[sub.AccountID]
	if !ok {
		return
	}
	if _, ok = subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	close(sub.send)
	if len(subs) == 0 {
		delete(b.clients, sub.AccountID)
	}
}

func (b *Broker) closeAll() {
	b.clientsMutex.Lock()
	defer b.clientsMutex.Unlock()
	for _, subs := range b.clients {
		for sub := range subs {
			b.remove(sub)
		}
	}
}
