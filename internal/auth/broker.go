package auth

import (
	"sync"

	"github.com/finanzas-app/backend/internal/models"
	"github.com/rs/zerolog/log"
)

// subscriberBuffer is the number of events buffered per subscriber.
const subscriberBuffer = 16

// Broker distributes session events to all subscribers.
//
// Publishing never blocks: when the buffer of a subscriber is full,
// the event is dropped for that subscriber.
type Broker struct {
	mu          sync.Mutex
	nextID      int
	subscribers map[int]chan models.SessionEvent
}

func NewBroker() *Broker {
	return &Broker{
		subscribers: make(map[int]chan models.SessionEvent),
	}
}

// Subscribe registers a new subscriber. The returned function removes
// the subscription and closes the channel, it can be called multiple times.
func (b *Broker) Subscribe() (<-chan models.SessionEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++

	ch := make(chan models.SessionEvent, subscriberBuffer)
	b.subscribers[id] = ch

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()

			delete(b.subscribers, id)
			close(ch)
		})
	}
}

// Publish sends the event to all current subscribers.
func (b *Broker) Publish(event models.SessionEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for id, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			log.Warn().Int("subscriber", id).Str("event", string(event.Type)).Msg("dropping session event for slow subscriber")
		}
	}
}
