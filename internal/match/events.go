package match

import (
	"sync"
	"time"

	"github.com/lox/pokergm/internal/deck"
	"github.com/lox/pokergm/internal/game"
)

// EventType identifies a match event
type EventType string

const (
	EventTypeHandStart      EventType = "hand_start"
	EventTypeHandEnd        EventType = "hand_end"
	EventTypeStreetChange   EventType = "street_change"
	EventTypePlayerAction   EventType = "player_action"
	EventTypeActionRejected EventType = "action_rejected"
	EventTypeHearts         EventType = "hearts"
	EventTypeGameOver       EventType = "game_over"
)

func (et EventType) String() string {
	return string(et)
}

// Event is anything published on the match event bus
type Event interface {
	EventType() EventType
	Timestamp() time.Time
}

// HandStartEvent is published once blinds are posted and cards dealt
type HandStartEvent struct {
	Info      game.RoundInfo
	timestamp time.Time
}

func (e HandStartEvent) EventType() EventType { return EventTypeHandStart }
func (e HandStartEvent) Timestamp() time.Time { return e.timestamp }

// PlayerActionEvent is published for every accepted action
type PlayerActionEvent struct {
	Result    game.ActionResult
	Street    game.Street
	Reasoning string
	PotAfter  int
	timestamp time.Time
}

func (e PlayerActionEvent) EventType() EventType { return EventTypePlayerAction }
func (e PlayerActionEvent) Timestamp() time.Time { return e.timestamp }

// ActionRejectedEvent is published when the human submits an illegal action
type ActionRejectedEvent struct {
	Player    string
	Err       error
	timestamp time.Time
}

func (e ActionRejectedEvent) EventType() EventType { return EventTypeActionRejected }
func (e ActionRejectedEvent) Timestamp() time.Time { return e.timestamp }

// StreetChangeEvent is published after the board is dealt for a new street
type StreetChangeEvent struct {
	Street    game.Street
	Board     []deck.Card
	timestamp time.Time
}

func (e StreetChangeEvent) EventType() EventType { return EventTypeStreetChange }
func (e StreetChangeEvent) Timestamp() time.Time { return e.timestamp }

// HandEndEvent is published after the pot is awarded
type HandEndEvent struct {
	Result    game.RoundResult
	timestamp time.Time
}

func (e HandEndEvent) EventType() EventType { return EventTypeHandEnd }
func (e HandEndEvent) Timestamp() time.Time { return e.timestamp }

// HeartsEvent is published when the human loses a heart or trades one for
// chips.
type HeartsEvent struct {
	Player    string
	Before    int
	After     int
	Exchanged bool
	timestamp time.Time
}

func (e HeartsEvent) EventType() EventType { return EventTypeHearts }
func (e HeartsEvent) Timestamp() time.Time { return e.timestamp }

// GameOverEvent is published once when the match ends
type GameOverEvent struct {
	Status    Status
	timestamp time.Time
}

func (e GameOverEvent) EventType() EventType { return EventTypeGameOver }
func (e GameOverEvent) Timestamp() time.Time { return e.timestamp }

// Subscriber receives match events
type Subscriber interface {
	OnEvent(event Event)
}

// SubscriberFunc adapts a function to the Subscriber interface
type SubscriberFunc func(Event)

func (f SubscriberFunc) OnEvent(event Event) { f(event) }

// EventBus delivers events synchronously to subscribers in subscription order
type EventBus struct {
	mu          sync.Mutex
	nextID      int
	subscribers []subscription
}

type subscription struct {
	id  int
	sub Subscriber
}

// NewEventBus creates an empty event bus
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe adds a subscriber and returns a function that removes it
func (bus *EventBus) Subscribe(subscriber Subscriber) (unsubscribe func()) {
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.nextID++
	id := bus.nextID
	bus.subscribers = append(bus.subscribers, subscription{id: id, sub: subscriber})

	return func() {
		bus.mu.Lock()
		defer bus.mu.Unlock()
		for i, s := range bus.subscribers {
			if s.id == id {
				bus.subscribers = append(bus.subscribers[:i:i], bus.subscribers[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to every subscriber
func (bus *EventBus) Publish(event Event) {
	bus.mu.Lock()
	subs := make([]subscription, len(bus.subscribers))
	copy(subs, bus.subscribers)
	bus.mu.Unlock()

	for _, s := range subs {
		s.sub.OnEvent(event)
	}
}
