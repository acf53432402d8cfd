package realtime

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/qr-checkin/backend/internal/models"
)

// loopbackBridge models Redis pub/sub: a publish is delivered to every
// subscription, including one held by the publishing instance itself.
type loopbackBridge struct {
	mu       sync.Mutex
	handlers map[int]func(event string, payload []byte)
	nextID   int
	cancels  int
}

func newLoopbackBridge() *loopbackBridge {
	return &loopbackBridge{handlers: make(map[int]func(event string, payload []byte))}
}

func (b *loopbackBridge) PublishCheckinEvent(event string, payload []byte) error {
	b.mu.Lock()
	handlers := make([]func(string, []byte), 0, len(b.handlers))
	for _, h := range b.handlers {
		handlers = append(handlers, h)
	}
	b.mu.Unlock()
	for _, h := range handlers {
		h(event, payload)
	}
	return nil
}

func (b *loopbackBridge) SubscribeCheckinEvents(handler func(event string, payload []byte)) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id := b.nextID
	b.nextID++
	b.handlers[id] = handler
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
		b.cancels++
	}, nil
}

func newFeedClient(id string) *Client {
	return &Client{ID: id, send: make(chan WSMessage, 8)}
}

func received(c *Client) []WSMessage {
	var msgs []WSMessage
	for {
		select {
		case m := <-c.send:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

type feedPayload struct {
	Checkin models.Checkin `json:"checkin"`
	Total   int            `json:"total"`
}

func TestCheckinRecordedDeliveredOnceWithBridge(t *testing.T) {
	bridge := newLoopbackBridge()
	hub := NewHub(nil, bridge, bridge)
	client := newFeedClient("dash-1")
	hub.Register(client)

	hub.CheckinRecorded(models.Checkin{ID: "G1", Name: "A"}, 1)

	msgs := received(client)
	if len(msgs) != 1 {
		t.Fatalf("expected exactly 1 message on the publishing instance, got %d", len(msgs))
	}
	if msgs[0].Event != "checkin_recorded" {
		t.Fatalf("expected checkin_recorded event, got %q", msgs[0].Event)
	}
	var p feedPayload
	if err := json.Unmarshal(msgs[0].Data, &p); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if p.Checkin.ID != "G1" || p.Total != 1 {
		t.Fatalf("unexpected payload %+v", p)
	}
}

func TestCheckinRecordedCrossInstance(t *testing.T) {
	bridge := newLoopbackBridge()
	hubA := NewHub(nil, bridge, bridge)
	hubB := NewHub(nil, bridge, bridge)
	clientA := newFeedClient("dash-a")
	clientB := newFeedClient("dash-b")
	hubA.Register(clientA)
	hubB.Register(clientB)

	hubA.CheckinRecorded(models.Checkin{ID: "G1", Name: "A"}, 1)

	for name, c := range map[string]*Client{"publisher": clientA, "remote": clientB} {
		if got := len(received(c)); got != 1 {
			t.Fatalf("%s instance: expected 1 message, got %d", name, got)
		}
	}
}

func TestCheckinRecordedWithoutBridge(t *testing.T) {
	hub := NewHub(nil, nil, nil)
	one := newFeedClient("dash-1")
	two := newFeedClient("dash-2")
	hub.Register(one)
	hub.Register(two)

	hub.CheckinRecorded(models.Checkin{ID: "G1", Name: "A"}, 1)

	for _, c := range []*Client{one, two} {
		if got := len(received(c)); got != 1 {
			t.Fatalf("client %s: expected 1 message, got %d", c.ID, got)
		}
	}
}

func TestSubscriptionLifecycle(t *testing.T) {
	bridge := newLoopbackBridge()
	hub := NewHub(nil, bridge, bridge)

	first := newFeedClient("dash-1")
	second := newFeedClient("dash-2")
	hub.Register(first)
	hub.Register(second)
	if len(bridge.handlers) != 1 {
		t.Fatalf("expected a single subscription for the hub, got %d", len(bridge.handlers))
	}
	if hub.ClientCount() != 2 {
		t.Fatalf("expected 2 clients, got %d", hub.ClientCount())
	}

	hub.Unregister(first)
	if bridge.cancels != 0 {
		t.Fatal("subscription must stay while clients remain")
	}
	hub.Unregister(second)
	if bridge.cancels != 1 {
		t.Fatalf("expected subscription cancelled with last client, cancels=%d", bridge.cancels)
	}
	if len(bridge.handlers) != 0 {
		t.Fatalf("expected no live handlers, got %d", len(bridge.handlers))
	}

	// A returning client resubscribes.
	hub.Register(newFeedClient("dash-3"))
	if len(bridge.handlers) != 1 {
		t.Fatalf("expected resubscription, got %d handlers", len(bridge.handlers))
	}
}
