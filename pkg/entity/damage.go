// pkg/entity/damage.go
package entity

import "github.com/scrapship/arena/pkg/piece"

// DamageResult reports what one damage application changed. The disabled
// slices hold Thrusters/Cannons indices that went from live to disabled.
type DamageResult struct {
	PartIndex         int
	Broken            bool
	CoreDestroyed     bool
	DisabledThrusters []int
	DisabledCannons   []int
}

// ApplyDamage subtracts hit points from a part. HP clamps at zero and Broken
// is monotonic: a part never un-breaks. Breaking a part disables the equipment
// mounted on it; breaking a structural block or the core additionally disables
// equipment whose grid footprint overlaps the broken piece, modeling mounts
// torn off with their support. Breaking the core destroys the ship.
func (s *Ship) ApplyDamage(part *Part, amount float64) DamageResult {
	result := DamageResult{PartIndex: -1}
	if s == nil || part == nil || amount <= 0 || part.Broken {
		if part != nil {
			result.PartIndex = part.Index
		}
		return result
	}
	result.PartIndex = part.Index

	part.HP -= amount
	if part.HP > 0 {
		return result
	}
	part.HP = 0
	part.Broken = true
	result.Broken = true

	if part.IsCore && !s.Destroyed {
		s.Destroyed = true
		result.CoreDestroyed = true
	}

	s.disableEquipmentOnPart(part.Index, &result)
	if part.Piece.Kind == piece.KindBlock || part.Piece.Kind == piece.KindCore {
		s.disableOverlappingEquipment(part.Piece.Footprint(), &result)
	}
	return result
}

// disableEquipmentOnPart disables every thruster and cannon mounted on the
// given part, recording newly disabled ones.
func (s *Ship) disableEquipmentOnPart(partIndex int, result *DamageResult) {
	for i, t := range s.Thrusters {
		if t.PartIndex == partIndex && !t.Disabled {
			t.Disabled = true
			result.DisabledThrusters = append(result.DisabledThrusters, i)
		}
	}
	for i, c := range s.Cannons {
		if c.PartIndex == partIndex && !c.Disabled {
			c.Disabled = true
			result.DisabledCannons = append(result.DisabledCannons, i)
		}
	}
}

// disableOverlappingEquipment disables equipment whose piece footprint shares
// a grid cell with the broken footprint.
func (s *Ship) disableOverlappingEquipment(broken piece.Rect, result *DamageResult) {
	for i, t := range s.Thrusters {
		if t.Disabled {
			continue
		}
		if s.Parts[t.PartIndex].Piece.Footprint().Overlaps(broken) {
			t.Disabled = true
			result.DisabledThrusters = append(result.DisabledThrusters, i)
		}
	}
	for i, c := range s.Cannons {
		if c.Disabled {
			continue
		}
		if s.Parts[c.PartIndex].Piece.Footprint().Overlaps(broken) {
			c.Disabled = true
			result.DisabledCannons = append(result.DisabledCannons, i)
		}
	}
}
