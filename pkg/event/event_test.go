// pkg/event/event_test.go
package event

import (
	"sync"
	"testing"

	"github.com/opd-ai/go-turret/pkg/physics"
)

func TestNewEventBus_Creation_ReturnsInitializedBus(t *testing.T) {
	bus := NewEventBus()

	if bus == nil {
		t.Fatal("NewEventBus returned nil")
	}
	if bus.handlers == nil {
		t.Error("handlers map not initialized")
	}
}

func TestBus_Subscribe_ReturnsDistinctIDs(t *testing.T) {
	bus := NewEventBus()

	first := bus.Subscribe(PointerMoved, func(Event) {})
	second := bus.Subscribe(PointerMoved, func(Event) {})

	if first == second {
		t.Errorf("Subscribe returned the same ID twice: %d", first)
	}
}

func TestBus_Publish_DeliversToSubscribers(t *testing.T) {
	bus := NewEventBus()

	var received []Type
	bus.Subscribe(PointerClicked, func(e Event) {
		received = append(received, e.GetType())
	})
	bus.Subscribe(PointerClicked, func(e Event) {
		received = append(received, e.GetType())
	})

	bus.Publish(&BaseEvent{EventType: PointerClicked})

	if len(received) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(received))
	}
	for _, typ := range received {
		if typ != PointerClicked {
			t.Errorf("delivered type = %q, expected %q", typ, PointerClicked)
		}
	}
}

func TestBus_Publish_IgnoresOtherEventTypes(t *testing.T) {
	bus := NewEventBus()

	called := false
	bus.Subscribe(PointerMoved, func(Event) { called = true })

	bus.Publish(&BaseEvent{EventType: KeyPressed})

	if called {
		t.Error("handler for pointer_moved received a key_pressed event")
	}
}

func TestBus_Unsubscribe_StopsDelivery(t *testing.T) {
	bus := NewEventBus()

	calls := 0
	id := bus.Subscribe(BulletFired, func(Event) { calls++ })

	bus.Publish(&BaseEvent{EventType: BulletFired})
	bus.Unsubscribe(BulletFired, id)
	bus.Publish(&BaseEvent{EventType: BulletFired})

	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}

func TestBus_Unsubscribe_UnknownID_IsNoOp(t *testing.T) {
	bus := NewEventBus()

	// Must not panic on a type nobody subscribed to or a stale ID
	bus.Unsubscribe(WorldStopped, 42)

	id := bus.Subscribe(WorldStopped, func(Event) {})
	bus.Unsubscribe(WorldStopped, id)
	bus.Unsubscribe(WorldStopped, id)
}

func TestBus_Publish_ConcurrentWithSubscribe(t *testing.T) {
	bus := NewEventBus()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			bus.Subscribe(ObjectDestroyed, func(Event) {})
		}()
		go func() {
			defer wg.Done()
			bus.Publish(&BaseEvent{EventType: ObjectDestroyed})
		}()
	}
	wg.Wait()
}

func TestNewPointerEvent(t *testing.T) {
	pos := physics.Vector2D{X: 12, Y: 34}
	e := NewPointerEvent(PointerMoved, "test", pos)

	if e.GetType() != PointerMoved {
		t.Errorf("GetType() = %q, expected %q", e.GetType(), PointerMoved)
	}
	if e.GetSource() != "test" {
		t.Errorf("GetSource() = %v, expected test", e.GetSource())
	}
	if e.Position != pos {
		t.Errorf("Position = %v, expected %v", e.Position, pos)
	}
}

func TestNewResizeEvent(t *testing.T) {
	bounds := physics.RectFromEdges(0, 0, 1024, 768)
	e := NewResizeEvent(nil, bounds)

	if e.GetType() != SurfaceResized {
		t.Errorf("GetType() = %q, expected %q", e.GetType(), SurfaceResized)
	}
	if e.Bounds != bounds {
		t.Errorf("Bounds = %v, expected %v", e.Bounds, bounds)
	}
}

func TestNewKeyEvent(t *testing.T) {
	tests := []struct {
		name string
		key  Key
		r    rune
	}{
		{name: "escape", key: KeyEscape, r: 0},
		{name: "rune_key", key: KeyRune, r: 'q'},
		{name: "interrupt", key: KeyInterrupt, r: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := NewKeyEvent(nil, tt.key, tt.r)
			if e.GetType() != KeyPressed {
				t.Errorf("GetType() = %q, expected %q", e.GetType(), KeyPressed)
			}
			if e.Key != tt.key || e.Rune != tt.r {
				t.Errorf("KeyEvent = {%v %q}, expected {%v %q}", e.Key, e.Rune, tt.key, tt.r)
			}
		})
	}
}

func TestNewObjectEvent(t *testing.T) {
	e := NewObjectEvent(BulletFired, nil, 7)

	if e.GetType() != BulletFired {
		t.Errorf("GetType() = %q, expected %q", e.GetType(), BulletFired)
	}
	if e.ObjectID != 7 {
		t.Errorf("ObjectID = %d, expected 7", e.ObjectID)
	}
}
