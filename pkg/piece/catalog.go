// pkg/piece/catalog.go
package piece

import "math"

// Standard catalog tuning. The ratios between thruster force, omni force, and
// projectile stats matter more than the absolute numbers; damage values are
// sized against DefaultHitPoints.
const (
	blockMass    = 1.0
	coreMass     = 2.0
	thrusterMass = 1.0
	cannonMass   = 1.0

	coreOmniForce    = 50.0
	coreAngularForce = 60.0
	coreHitPoints    = 12.0

	mk1ThrustForce    = 100.0
	vectorThrustForce = 140.0

	lightCannonDamage = 2.0
	heavyCannonDamage = 5.0
)

// NewBlock returns a 1x1 structural block.
func NewBlock(col, row int) *Piece {
	return &Piece{
		Name: "block",
		Kind: KindBlock,
		Col:  col, Row: row,
		Cols: 1, Rows: 1,
		Mass: blockMass,
	}
}

// NewCore returns the core piece. A ship has at most one.
func NewCore(col, row int) *Piece {
	return &Piece{
		Name: "core",
		Kind: KindCore,
		Col:  col, Row: row,
		Cols: 1, Rows: 1,
		Mass: coreMass,
		Core: &CoreDef{
			OmniThrustForce:    coreOmniForce,
			AngularThrustForce: coreAngularForce,
			HitPoints:          coreHitPoints,
		},
	}
}

// NewMK1Thruster returns a plain fixed thruster with no ramp-up or overheat.
func NewMK1Thruster(col, row int, angle float64) *Piece {
	return &Piece{
		Name: "thruster-mk1",
		Kind: KindThruster,
		Col:  col, Row: row,
		Cols: 1, Rows: 1,
		Angle: angle,
		Mass:  thrusterMass,
		Thruster: &ThrusterDef{
			Force: mk1ThrustForce,
		},
	}
}

// NewVectorThruster returns a stronger thruster with side exhaust ports. The
// side ports become virtual thrusters at assembly time. It ramps up from 20%
// force and overheats under sustained use.
func NewVectorThruster(col, row int, angle float64) *Piece {
	return &Piece{
		Name: "thruster-vector",
		Kind: KindThruster,
		Col:  col, Row: row,
		Cols: 1, Rows: 1,
		Angle: angle,
		Mass:  thrusterMass,
		Thruster: &ThrusterDef{
			Force:         vectorThrustForce,
			RampUp:        &RampUpConfig{StartPercent: 0.2, RampTime: 1.0},
			Overheat:      &OverheatConfig{WindowSeconds: 2.0, Threshold: 0.5, CooldownTime: 3.0},
			ExtraExhausts: []float64{math.Pi / 2, -math.Pi / 2},
		},
	}
}

// NewLightCannon returns a fast-tracking low-damage cannon.
func NewLightCannon(col, row int, angle float64) *Piece {
	return &Piece{
		Name: "cannon-light",
		Kind: KindCannon,
		Col:  col, Row: row,
		Cols: 1, Rows: 1,
		Angle: angle,
		Mass:  cannonMass,
		Cannon: &CannonDef{
			FiringArc:          math.Pi / 3,
			AimingArc:          math.Pi / 2,
			AimSpeed:           2.5,
			ProjectileSpeed:    420,
			ProjectileLifetime: 1.6,
			Damage:             lightCannonDamage,
			ReloadTime:         0.35,
			BurstCount:         1,
		},
	}
}

// NewHeavyCannon returns a slow high-damage cannon. Penetrating is a reserved
// stat carried through to the runtime cannon record.
func NewHeavyCannon(col, row int, angle float64) *Piece {
	return &Piece{
		Name: "cannon-heavy",
		Kind: KindCannon,
		Col:  col, Row: row,
		Cols: 1, Rows: 1,
		Angle: angle,
		Mass:  cannonMass,
		Cannon: &CannonDef{
			FiringArc:          math.Pi / 4,
			AimingArc:          math.Pi / 3,
			AimSpeed:           1.6,
			ProjectileSpeed:    320,
			ProjectileLifetime: 2.2,
			Damage:             heavyCannonDamage,
			ReloadTime:         1.1,
			BurstCount:         1,
			Penetrating:        true,
		},
	}
}

// StandardFighter returns the piece list for the stock 3x3 test ship: a core
// flanked by blocks, two forward cannons, and two rear thrusters. Forward is
// toward lower row indices.
func StandardFighter() []*Piece {
	return []*Piece{
		NewLightCannon(0, 0, 0),
		NewBlock(1, 0),
		NewLightCannon(2, 0, 0),
		NewBlock(0, 1),
		NewCore(1, 1),
		NewBlock(2, 1),
		NewMK1Thruster(0, 2, 0),
		NewVectorThruster(1, 2, 0),
		NewMK1Thruster(2, 2, 0),
	}
}
