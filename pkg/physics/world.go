// Package physics adapts the Chipmunk2D rigid-body engine to the arena's
// coordinate conventions. The arena frame has Y growing downward (matching the
// design grid) and clockwise-positive angles; Chipmunk uses Y-up with
// counter-clockwise angles. Every position, velocity, force, angle, and torque
// crossing into or out of the substrate is converted here by negating the Y
// component and the angle sign. No other package performs this conversion.
package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

// toSubstrate converts an arena-frame point or vector to the substrate frame.
func toSubstrate(v Vector2D) cp.Vector {
	return cp.Vector{X: v.X, Y: -v.Y}
}

// fromSubstrate converts a substrate-frame point or vector to the arena frame.
func fromSubstrate(v cp.Vector) Vector2D {
	return Vector2D{X: v.X, Y: -v.Y}
}

// World wraps a Chipmunk space holding all arena bodies and the static walls.
type World struct {
	space  *cp.Space
	width  float64
	height float64
}

// WallConfig tunes the static arena boundary segments.
type WallConfig struct {
	Elasticity float64
	Friction   float64
}

// NewWorld creates a zero-gravity bounded space of the given arena dimensions.
func NewWorld(width, height float64, walls WallConfig) *World {
	space := cp.NewSpace()
	space.Iterations = 10
	space.SetGravity(cp.Vector{})

	w := &World{
		space:  space,
		width:  width,
		height: height,
	}
	w.addWalls(walls)
	return w
}

// Width returns the arena width in world units.
func (w *World) Width() float64 { return w.width }

// Height returns the arena height in world units.
func (w *World) Height() float64 { return w.height }

// Step advances the substrate by dt seconds. Accumulated forces and torques
// are consumed by the step.
func (w *World) Step(dt float64) {
	w.space.Step(dt)
}

// addWalls installs the four static boundary segments.
func (w *World) addWalls(cfg WallConfig) {
	corners := []Vector2D{
		{X: 0, Y: 0},
		{X: w.width, Y: 0},
		{X: w.width, Y: w.height},
		{X: 0, Y: w.height},
	}
	for i := range corners {
		a := corners[i]
		b := corners[(i+1)%len(corners)]
		seg := cp.NewSegment(w.space.StaticBody, toSubstrate(a), toSubstrate(b), 1)
		seg.SetElasticity(cfg.Elasticity)
		seg.SetFriction(cfg.Friction)
		w.space.AddShape(seg)
	}
}

// BoxSpec describes one sub-shape of a compound body: an axis-aligned box at a
// body-local offset (arena frame, relative to the body's center of mass).
type BoxSpec struct {
	Offset Vector2D
	Width  float64
	Height float64
	Mass   float64
	Tag    int
}

// BodyConfig tunes a compound body's response. Damping values are the fraction
// of (linear/angular) velocity retained per second.
type BodyConfig struct {
	LinearDamping  float64
	AngularDamping float64
	Elasticity     float64
	Friction       float64
}

// NewCompoundBody builds one dynamic body from the given box sub-shapes and
// inserts it into the space. The returned shapes parallel the input specs.
// Offsets are assumed to be relative to the compound center of mass, so the
// body origin coincides with it.
func (w *World) NewCompoundBody(boxes []BoxSpec, cfg BodyConfig) (*Body, []*Shape) {
	if len(boxes) == 0 {
		return nil, nil
	}

	totalMass := 0.0
	moment := 0.0
	for _, box := range boxes {
		totalMass += box.Mass
		moment += cp.MomentForBox(box.Mass, box.Width, box.Height) +
			box.Mass*box.Offset.LengthSquared()
	}

	body := cp.NewBody(totalMass, moment)
	w.space.AddBody(body)

	linDamp := cfg.LinearDamping
	angDamp := cfg.AngularDamping
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, _ float64, dt float64) {
		cp.BodyUpdateVelocity(b, gravity, math.Pow(linDamp, dt), dt)
		b.SetAngularVelocity(b.AngularVelocity() * math.Pow(angDamp, dt))
	})

	shapes := make([]*Shape, 0, len(boxes))
	for _, box := range boxes {
		center := toSubstrate(box.Offset)
		hw := box.Width / 2
		hh := box.Height / 2
		bb := cp.BB{
			L: center.X - hw,
			B: center.Y - hh,
			R: center.X + hw,
			T: center.Y + hh,
		}
		shape := cp.NewBox2(body, bb, 0)
		shape.SetElasticity(cfg.Elasticity)
		shape.SetFriction(cfg.Friction)
		shape.UserData = box.Tag
		w.space.AddShape(shape)
		shapes = append(shapes, &Shape{
			shape: shape,
			local: box.Offset,
			tag:   box.Tag,
		})
	}

	return &Body{body: body}, shapes
}

// RemoveBody detaches a body and all of its shapes from the space.
func (w *World) RemoveBody(b *Body) {
	if b == nil || b.body == nil {
		return
	}
	b.body.EachShape(func(s *cp.Shape) {
		w.space.RemoveShape(s)
	})
	w.space.RemoveBody(b.body)
	b.body = nil
}

// Body is an arena-frame handle on one compound rigid body.
type Body struct {
	body *cp.Body
}

// Position returns the body origin in arena coordinates.
func (b *Body) Position() Vector2D {
	return fromSubstrate(b.body.Position())
}

// SetPosition translates the body to an arena-frame point.
func (b *Body) SetPosition(p Vector2D) {
	b.body.SetPosition(toSubstrate(p))
}

// Angle returns the body rotation, clockwise-positive in the arena frame.
func (b *Body) Angle() float64 {
	return -b.body.Angle()
}

// SetAngle sets the body rotation from an arena-frame angle.
func (b *Body) SetAngle(a float64) {
	b.body.SetAngle(-a)
}

// Velocity returns the linear velocity in arena coordinates.
func (b *Body) Velocity() Vector2D {
	return fromSubstrate(b.body.Velocity())
}

// SetVelocity sets the linear velocity from an arena-frame vector.
func (b *Body) SetVelocity(v Vector2D) {
	b.body.SetVelocityVector(toSubstrate(v))
}

// AngularVelocity returns the spin rate, clockwise-positive.
func (b *Body) AngularVelocity() float64 {
	return -b.body.AngularVelocity()
}

// SetAngularVelocity sets the spin rate from an arena-frame value.
func (b *Body) SetAngularVelocity(w float64) {
	b.body.SetAngularVelocity(-w)
}

// Mass returns the total body mass.
func (b *Body) Mass() float64 {
	return b.body.Mass()
}

// Moment returns the body's moment of inertia about its origin.
func (b *Body) Moment() float64 {
	return b.body.Moment()
}

// Force returns the force accumulated on the body this tick, arena frame.
func (b *Body) Force() Vector2D {
	return fromSubstrate(b.body.Force())
}

// Torque returns the torque accumulated this tick, clockwise-positive.
func (b *Body) Torque() float64 {
	return -b.body.Torque()
}

// ApplyForce accumulates a force applied at a world point, both arena frame.
func (b *Body) ApplyForce(force, point Vector2D) {
	b.body.ApplyForceAtWorldPoint(toSubstrate(force), toSubstrate(point))
}

// ApplyImpulse applies an instantaneous impulse at a world point.
func (b *Body) ApplyImpulse(impulse, point Vector2D) {
	b.body.ApplyImpulseAtWorldPoint(toSubstrate(impulse), toSubstrate(point))
}

// ApplyTorque accumulates a pure torque, clockwise-positive.
func (b *Body) ApplyTorque(t float64) {
	b.body.SetTorque(b.body.Torque() + -t)
}

// ApplyTorqueImpulse instantaneously changes angular velocity by t/moment.
func (b *Body) ApplyTorqueImpulse(t float64) {
	b.body.SetAngularVelocity(b.body.AngularVelocity() + -t/b.body.Moment())
}

// Shape is an arena-frame handle on one sub-shape of a compound body.
type Shape struct {
	shape *cp.Shape
	local Vector2D
	tag   int
}

// Tag returns the identifier the shape was created with.
func (s *Shape) Tag() int { return s.tag }

// LocalCenter returns the shape's center offset in body-local arena coordinates.
func (s *Shape) LocalCenter() Vector2D { return s.local }

// ContainsPoint reports whether an arena-frame world point lies inside the shape.
func (s *Shape) ContainsPoint(p Vector2D) bool {
	info := s.shape.PointQuery(toSubstrate(p))
	return info.Distance <= 0
}
