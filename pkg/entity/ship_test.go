// pkg/entity/ship_test.go
package entity

import (
	"errors"
	"math"
	"testing"

	"github.com/scrapship/arena/pkg/physics"
	"github.com/scrapship/arena/pkg/piece"
)

const epsilon = 1e-9

func newTestWorld() *physics.World {
	return physics.NewWorld(1000, 800, physics.WallConfig{Elasticity: 0.5, Friction: 0.5})
}

func assembleFighter(t *testing.T, w *physics.World, pos physics.Vector2D) *Ship {
	t.Helper()
	ship, err := AssembleShip(w, piece.StandardFighter(), AssemblyOptions{Position: pos})
	if err != nil {
		t.Fatalf("AssembleShip() error = %v", err)
	}
	return ship
}

// TestAssembleShip_Empty tests the empty-assembly sentinel
func TestAssembleShip_Empty(t *testing.T) {
	w := newTestWorld()
	_, err := AssembleShip(w, nil, AssemblyOptions{})
	if !errors.Is(err, ErrEmptyAssembly) {
		t.Errorf("AssembleShip(nil pieces) error = %v, want ErrEmptyAssembly", err)
	}
}

// TestAssembleShip_Registries tests part and equipment registry construction
// for the stock fighter
func TestAssembleShip_Registries(t *testing.T) {
	w := newTestWorld()
	ship := assembleFighter(t, w, physics.Vector2D{X: 500, Y: 400})

	if len(ship.Parts) != 9 {
		t.Errorf("len(Parts) = %d, want 9", len(ship.Parts))
	}
	// Three thruster pieces, one of which carries two extra exhaust ports.
	if len(ship.Thrusters) != 5 {
		t.Errorf("len(Thrusters) = %d, want 5", len(ship.Thrusters))
	}
	mains, virtuals := 0, 0
	for _, th := range ship.Thrusters {
		switch th.Kind {
		case ThrusterMain:
			mains++
			if th.ParentIndex != -1 {
				t.Errorf("main thruster ParentIndex = %d, want -1", th.ParentIndex)
			}
		case ThrusterVirtual:
			virtuals++
			parent := ship.Thrusters[th.ParentIndex]
			if parent.Kind != ThrusterMain || parent.PartIndex != th.PartIndex {
				t.Errorf("virtual thruster parent mismatch: parent part %d, virtual part %d",
					parent.PartIndex, th.PartIndex)
			}
		}
	}
	if mains != 3 || virtuals != 2 {
		t.Errorf("thruster kinds = %d mains, %d virtuals, want 3 and 2", mains, virtuals)
	}

	if len(ship.Cannons) != 2 {
		t.Errorf("len(Cannons) = %d, want 2", len(ship.Cannons))
	}
	if ship.Core == nil {
		t.Fatal("Core = nil, want core registry entry")
	}
	if ship.Destroyed {
		t.Error("new ship marked destroyed")
	}
}

// TestAssembleShip_CenterOfMass tests the mass-weighted grid centroid
func TestAssembleShip_CenterOfMass(t *testing.T) {
	w := newTestWorld()
	ship := assembleFighter(t, w, physics.Vector2D{X: 500, Y: 400})

	// The fighter is symmetric in X; the heavy core sits on the middle row.
	if math.Abs(ship.CenterOfMass.X-1.5) > epsilon {
		t.Errorf("CenterOfMass.X = %v, want 1.5", ship.CenterOfMass.X)
	}
	if math.Abs(ship.CenterOfMass.Y-1.5) > epsilon {
		t.Errorf("CenterOfMass.Y = %v, want 1.5", ship.CenterOfMass.Y)
	}

	// The core piece is at the centroid, so its local offset is zero.
	core := ship.Parts[ship.Core.PartIndex]
	if core.LocalPos.Length() > epsilon {
		t.Errorf("core LocalPos = %v, want origin", core.LocalPos)
	}
}

// TestAssembleShip_SpawnPosition tests that the body spawns where requested
func TestAssembleShip_SpawnPosition(t *testing.T) {
	w := newTestWorld()
	pos := physics.Vector2D{X: 250, Y: 300}
	ship := assembleFighter(t, w, pos)

	if got := ship.Position(); got.Distance(pos) > epsilon {
		t.Errorf("Position() = %v, want %v", got, pos)
	}
	if got := ship.Body.Mass(); math.Abs(got-10) > epsilon {
		t.Errorf("body Mass() = %v, want 10", got)
	}
}

// TestShip_PartAt tests point-containment part lookup
func TestShip_PartAt(t *testing.T) {
	w := newTestWorld()
	ship := assembleFighter(t, w, physics.Vector2D{X: 500, Y: 400})

	// The core sits at the body origin.
	part := ship.PartAt(physics.Vector2D{X: 500, Y: 400})
	if part == nil || !part.IsCore {
		t.Fatalf("PartAt(center) = %v, want core part", part)
	}

	// The first cannon's cell center: grid (0.5, 0.5) relative to the (1.5,
	// 1.5) centroid at scale 10, with the row axis flipped.
	cannonCenter := physics.Vector2D{X: 490, Y: 410}
	part = ship.PartAt(cannonCenter)
	if part == nil || part.Index != 0 {
		t.Fatalf("PartAt(cannon center) = %v, want part 0", part)
	}

	if got := ship.PartAt(physics.Vector2D{X: 900, Y: 100}); got != nil {
		t.Errorf("PartAt(far point) = %v, want nil", got)
	}

	// Broken parts stop registering hits.
	part.Broken = true
	if got := ship.PartAt(cannonCenter); got != nil && got.Index == 0 {
		t.Errorf("PartAt on broken part = part %d, want a different part or nil", got.Index)
	}
}

// TestShip_NearestPart tests nearest-center part lookup
func TestShip_NearestPart(t *testing.T) {
	w := newTestWorld()
	ship := assembleFighter(t, w, physics.Vector2D{X: 500, Y: 400})

	// A probe point just forward-left of the ship is closest to the first
	// cannon's cell.
	part, center := ship.NearestPart(physics.Vector2D{X: 480, Y: 420})
	if part == nil || part.Index != 0 {
		t.Fatalf("NearestPart() = %v, want part 0", part)
	}
	if center.Distance(physics.Vector2D{X: 490, Y: 410}) > epsilon {
		t.Errorf("NearestPart() center = %v, want {490 410}", center)
	}

	for _, p := range ship.Parts {
		p.Broken = true
	}
	if part, _ := ship.NearestPart(physics.Vector2D{X: 500, Y: 400}); part != nil {
		t.Errorf("NearestPart() with all parts broken = %v, want nil", part)
	}
}

// TestShip_NilAccessors tests accessors on nil and bodyless ships
func TestShip_NilAccessors(t *testing.T) {
	var ship *Ship
	if got := ship.Position(); got != (physics.Vector2D{}) {
		t.Errorf("nil Position() = %v, want zero", got)
	}
	if got := ship.Angle(); got != 0 {
		t.Errorf("nil Angle() = %v, want 0", got)
	}
	if got := ship.Velocity(); got != (physics.Vector2D{}) {
		t.Errorf("nil Velocity() = %v, want zero", got)
	}
	if got := ship.PartAt(physics.Vector2D{}); got != nil {
		t.Errorf("nil PartAt() = %v, want nil", got)
	}
}
