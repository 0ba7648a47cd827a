// pkg/event/event_test.go
package event

import (
	"testing"
)

// TestBus_PublishSubscribe tests that handlers receive matching events
func TestBus_PublishSubscribe(t *testing.T) {
	bus := NewEventBus()

	received := 0
	bus.Subscribe(PartBroken, func(e Event) {
		pe, ok := e.(*PartEvent)
		if !ok {
			t.Fatal("handler received wrong payload type")
		}
		if pe.ShipID != 7 || pe.PartIndex != 3 {
			t.Errorf("payload = ship %d part %d, want ship 7 part 3", pe.ShipID, pe.PartIndex)
		}
		received++
	})

	bus.Publish(NewPartEvent(PartBroken, nil, 7, 3))
	if received != 1 {
		t.Errorf("handler called %d times, want 1", received)
	}
}

// TestBus_TypeIsolation tests that handlers only see their subscribed type
func TestBus_TypeIsolation(t *testing.T) {
	bus := NewEventBus()

	var calls []Type
	bus.Subscribe(ShipDestroyed, func(e Event) { calls = append(calls, e.GetType()) })

	bus.Publish(NewShipEvent(ShipAssembled, nil, 1, 0))
	bus.Publish(NewShipEvent(ShipDestroyed, nil, 1, 0))
	bus.Publish(NewHitEvent(ProjectileHit, nil, 1, 2, 0, 5))

	if len(calls) != 1 || calls[0] != ShipDestroyed {
		t.Errorf("calls = %v, want exactly one ShipDestroyed", calls)
	}
}

// TestBus_MultipleHandlers tests subscription-order fan-out
func TestBus_MultipleHandlers(t *testing.T) {
	bus := NewEventBus()

	var order []int
	bus.Subscribe(HazardStrike, func(Event) { order = append(order, 1) })
	bus.Subscribe(HazardStrike, func(Event) { order = append(order, 2) })

	bus.Publish(NewHazardEvent(HazardStrike, nil, "saw", 1, 2, 0, 2))

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("handler order = %v, want [1 2]", order)
	}
}

// TestBus_NoSubscribers tests that publishing without handlers is safe
func TestBus_NoSubscribers(t *testing.T) {
	bus := NewEventBus()
	bus.Publish(NewEquipmentEvent(EquipmentDisabled, nil, 1, "cannon", 0))
}

// TestEvent_Accessors tests the base event accessors
func TestEvent_Accessors(t *testing.T) {
	src := &struct{}{}
	e := NewShipEvent(ShipAssembled, src, 42, 1)

	if e.GetType() != ShipAssembled {
		t.Errorf("GetType() = %v, want %v", e.GetType(), ShipAssembled)
	}
	if e.GetSource() != src {
		t.Error("GetSource() did not return the source")
	}
}
