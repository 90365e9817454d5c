// Package event provides change notification for the calculator core.
//
// The core follows a mutate-then-notify pattern: every session mutation
// fires the topic it changed and the presentation layer re-reads the
// observable state it renders. Delivery is synchronous and in
// subscription order; a panicking handler is isolated so it cannot take
// down the session.
package event

import (
	"sync"

	"github.com/google/uuid"
)

// Topic identifies a slice of observable session state.
type Topic string

const (
	// TopicExpression fires when the buffer text or cursor changes.
	TopicExpression Topic = "expression"

	// TopicResult fires when the displayed result changes.
	TopicResult Topic = "result"

	// TopicHistory fires when the evaluation history changes.
	TopicHistory Topic = "history"

	// TopicFormulas fires when the saved formulas change.
	TopicFormulas Topic = "formulas"
)

// Handler is called when a subscribed topic fires.
type Handler func(topic Topic)

// Subscription identifies an active subscription.
type Subscription struct {
	id    string
	topic Topic
}

// ID returns the unique subscription identifier.
func (s Subscription) ID() string { return s.id }

// Topic returns the subscribed topic.
func (s Subscription) Topic() Topic { return s.topic }

// entry pairs a subscription with its handler.
type entry struct {
	id      string
	handler Handler
}

// Notifier dispatches topic notifications to subscribers. All methods
// are safe for concurrent use.
type Notifier struct {
	mu   sync.RWMutex
	subs map[Topic][]entry
}

// NewNotifier creates an empty notifier.
func NewNotifier() *Notifier {
	return &Notifier{subs: make(map[Topic][]entry)}
}

// Subscribe registers handler for topic and returns the subscription.
func (n *Notifier) Subscribe(topic Topic, handler Handler) Subscription {
	sub := Subscription{id: uuid.New().String(), topic: topic}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.subs[topic] = append(n.subs[topic], entry{id: sub.id, handler: handler})

	return sub
}

// Unsubscribe removes a subscription. Unknown subscriptions are a no-op.
func (n *Notifier) Unsubscribe(sub Subscription) {
	n.mu.Lock()
	defer n.mu.Unlock()

	entries := n.subs[sub.topic]
	for i, e := range entries {
		if e.id == sub.id {
			n.subs[sub.topic] = append(entries[:i], entries[i+1:]...)
			return
		}
	}
}

// Notify fires topic, invoking handlers synchronously in subscription
// order. Handler panics are recovered per handler.
func (n *Notifier) Notify(topic Topic) {
	n.mu.RLock()
	entries := append([]entry(nil), n.subs[topic]...)
	n.mu.RUnlock()

	for _, e := range entries {
		invoke(e.handler, topic)
	}
}

func invoke(h Handler, topic Topic) {
	defer func() {
		_ = recover()
	}()
	h(topic)
}
