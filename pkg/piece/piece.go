// Package piece defines the design-time units a ship is assembled from:
// structural blocks, thrusters, cannons, and the core, each placed on an
// integer grid with a cell footprint and a facing angle.
package piece

import (
	"math"

	"github.com/scrapship/arena/pkg/physics"
)

// Kind classifies a piece for assembly and damage handling.
type Kind int

const (
	KindBlock Kind = iota
	KindThruster
	KindCannon
	KindCore
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindBlock:
		return "block"
	case KindThruster:
		return "thruster"
	case KindCannon:
		return "cannon"
	case KindCore:
		return "core"
	default:
		return "unknown"
	}
}

// DefaultHitPoints is the hit-point value of any piece that does not define
// its own.
const DefaultHitPoints = 6.0

// RampUpConfig makes a thruster start at a reduced force fraction and scale
// linearly to full force over RampTime seconds of continuous firing.
type RampUpConfig struct {
	StartPercent float64 `json:"startPercent"`
	RampTime     float64 `json:"rampTime"`
}

// OverheatConfig locks a thruster out once its fired time within a sliding
// window exceeds the threshold fraction of that window.
type OverheatConfig struct {
	WindowSeconds float64 `json:"windowSeconds"`
	Threshold     float64 `json:"threshold"`
	CooldownTime  float64 `json:"cooldownTime"`
}

// ThrusterDef is the equipment definition for a thruster piece. ExtraExhausts
// lists additional exhaust directions as angle offsets from the main exhaust;
// each one becomes a virtual thruster sharing the piece's mount.
type ThrusterDef struct {
	Force         float64         `json:"force"`
	RampUp        *RampUpConfig   `json:"rampUp,omitempty"`
	Overheat      *OverheatConfig `json:"overheat,omitempty"`
	ExtraExhausts []float64       `json:"extraExhausts,omitempty"`
}

// CannonDef is the equipment definition for a cannon piece. BurstCount,
// BurstDelay, Spread, and Penetrating are persisted stats with no firing-logic
// consumer yet.
type CannonDef struct {
	FiringArc          float64 `json:"firingArc"`
	AimingArc          float64 `json:"aimingArc"`
	AimSpeed           float64 `json:"aimSpeed"`
	ProjectileSpeed    float64 `json:"projectileSpeed"`
	ProjectileLifetime float64 `json:"projectileLifetime"`
	Damage             float64 `json:"damage"`
	ReloadTime         float64 `json:"reloadTime"`
	Spread             float64 `json:"spread"`
	BurstCount         int     `json:"burstCount"`
	BurstDelay         float64 `json:"burstDelay"`
	Penetrating        bool    `json:"penetrating"`
}

// CoreDef is the equipment definition for the core piece. The core supplies
// all omni (non-directional) linear thrust and all angular thrust.
type CoreDef struct {
	OmniThrustForce    float64 `json:"omniThrustForce"`
	AngularThrustForce float64 `json:"angularThrustForce"`
	HitPoints          float64 `json:"hitPoints"`
}

// Piece is one placed design-time unit. Col/Row is the top-left grid cell;
// Cols/Rows the cell footprint. Angle is the facing relative to the ship,
// where zero points toward ship-forward (+Y in the ship's local frame).
type Piece struct {
	Name  string  `json:"name"`
	Kind  Kind    `json:"kind"`
	Col   int     `json:"col"`
	Row   int     `json:"row"`
	Cols  int     `json:"cols"`
	Rows  int     `json:"rows"`
	Angle float64 `json:"angle"`
	Mass  float64 `json:"mass"`

	Thruster *ThrusterDef `json:"thruster,omitempty"`
	Cannon   *CannonDef   `json:"cannon,omitempty"`
	Core     *CoreDef     `json:"core,omitempty"`
}

// HitPoints returns the piece's hit-point budget: the core's defined value for
// core pieces, DefaultHitPoints otherwise.
func (p *Piece) HitPoints() float64 {
	if p.Kind == KindCore && p.Core != nil && p.Core.HitPoints > 0 {
		return p.Core.HitPoints
	}
	return DefaultHitPoints
}

// Center returns the piece center in grid-cell coordinates.
func (p *Piece) Center() physics.Vector2D {
	return physics.Vector2D{
		X: float64(p.Col) + float64(p.Cols)/2,
		Y: float64(p.Row) + float64(p.Rows)/2,
	}
}

// Footprint returns the piece's grid-cell rectangle.
func (p *Piece) Footprint() Rect {
	return Rect{Col: p.Col, Row: p.Row, Cols: p.Cols, Rows: p.Rows}
}

// Rect is an axis-aligned rectangle of grid cells.
type Rect struct {
	Col  int
	Row  int
	Cols int
	Rows int
}

// Overlaps reports whether two cell rectangles share at least one cell.
func (r Rect) Overlaps(o Rect) bool {
	return r.Col < o.Col+o.Cols && o.Col < r.Col+r.Cols &&
		r.Row < o.Row+o.Rows && o.Row < r.Row+r.Rows
}

// LocalDirection converts a piece-relative facing angle to a unit vector in
// the ship's local frame, where angle zero is ship-forward (+Y) and positive
// angles rotate with the world angle convention, turning toward -X. A cannon
// and a thruster mounted at the same angle face the same way.
func LocalDirection(angle float64) physics.Vector2D {
	return physics.Vector2D{X: -math.Sin(angle), Y: math.Cos(angle)}
}
