// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Common event types
const (
	ShipAssembled      Type = "ship_assembled"
	ShipDestroyed      Type = "ship_destroyed"
	PartBroken         Type = "part_broken"
	EquipmentDisabled  Type = "equipment_disabled"
	ThrusterOverheated Type = "thruster_overheated"
	ProjectileFired    Type = "projectile_fired"
	ProjectileHit      Type = "projectile_hit"
	HazardStrike       Type = "hazard_strike"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]Handler),
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish sends an event to all subscribed handlers, synchronously and in
// subscription order
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	handlers, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, handler := range handlers {
		handler(event)
	}
}

// Specific event implementations

// ShipEvent contains information about ship lifecycle events
type ShipEvent struct {
	BaseEvent
	ShipID uint64
	TeamID int
}

// NewShipEvent creates a new ship event
func NewShipEvent(eventType Type, source interface{}, shipID uint64, teamID int) *ShipEvent {
	return &ShipEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID: shipID,
		TeamID: teamID,
	}
}

// PartEvent reports a part of a ship breaking
type PartEvent struct {
	BaseEvent
	ShipID    uint64
	PartIndex int
}

// NewPartEvent creates a new part event
func NewPartEvent(eventType Type, source interface{}, shipID uint64, partIndex int) *PartEvent {
	return &PartEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID:    shipID,
		PartIndex: partIndex,
	}
}

// EquipmentEvent reports a thruster or cannon changing availability.
// Equipment is "thruster" or "cannon"; Index is the position in the ship's
// corresponding equipment list
type EquipmentEvent struct {
	BaseEvent
	ShipID    uint64
	Equipment string
	Index     int
}

// NewEquipmentEvent creates a new equipment event
func NewEquipmentEvent(eventType Type, source interface{}, shipID uint64, equipment string, index int) *EquipmentEvent {
	return &EquipmentEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShipID:    shipID,
		Equipment: equipment,
		Index:     index,
	}
}

// HitEvent reports a projectile striking a ship part
type HitEvent struct {
	BaseEvent
	ShooterID uint64
	TargetID  uint64
	PartIndex int
	Damage    float64
}

// NewHitEvent creates a new hit event
func NewHitEvent(eventType Type, source interface{}, shooterID, targetID uint64, partIndex int, damage float64) *HitEvent {
	return &HitEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		ShooterID: shooterID,
		TargetID:  targetID,
		PartIndex: partIndex,
		Damage:    damage,
	}
}

// HazardEvent reports a hazard striking a ship part. Hazard is "saw" or
// "energy_ball"
type HazardEvent struct {
	BaseEvent
	Hazard    string
	HazardID  uint64
	ShipID    uint64
	PartIndex int
	Damage    float64
}

// NewHazardEvent creates a new hazard event
func NewHazardEvent(eventType Type, source interface{}, hazard string, hazardID, shipID uint64, partIndex int, damage float64) *HazardEvent {
	return &HazardEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Hazard:    hazard,
		HazardID:  hazardID,
		ShipID:    shipID,
		PartIndex: partIndex,
		Damage:    damage,
	}
}
