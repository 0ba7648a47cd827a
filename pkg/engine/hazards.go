// pkg/engine/hazards.go
package engine

import (
	"github.com/EngoEngine/ecs"

	"github.com/scrapship/arena/pkg/entity"
	"github.com/scrapship/arena/pkg/event"
)

// HazardSystem owns the arena's environmental hazards: saw blades circulating
// a rectangular wall-inset path and energy balls sweeping horizontal lanes.
type HazardSystem struct {
	arena *Arena
	Saws  []*entity.SawBlade
	Balls []*entity.EnergyBall
}

func newHazardSystem(a *Arena) *HazardSystem {
	hs := &HazardSystem{arena: a}
	cfg := a.cfg

	sawCfg := cfg.SawBlades
	if sawCfg.Count > 0 && sawCfg.Speed > 0 {
		pathW := cfg.ArenaWidth - 2*sawCfg.Inset
		pathH := cfg.ArenaHeight - 2*sawCfg.Inset
		perimeter := 2 * (pathW + pathH)
		for i := 0; i < sawCfg.Count; i++ {
			hs.Saws = append(hs.Saws, entity.NewSawBlade(cfg.ArenaWidth, cfg.ArenaHeight, entity.SawBladeConfig{
				Inset:         sawCfg.Inset,
				Offset:        perimeter * float64(i) / float64(sawCfg.Count),
				Speed:         sawCfg.Speed,
				Radius:        sawCfg.Radius,
				Damage:        sawCfg.Damage,
				HitCooldown:   sawCfg.HitCooldown,
				Impulse:       sawCfg.Impulse,
				TorqueImpulse: sawCfg.TorqueImpulse,
			}))
		}
	}

	ballCfg := cfg.EnergyBalls
	if ballCfg.Rows > 0 && ballCfg.Speed > 0 {
		for r := 0; r < ballCfg.Rows; r++ {
			dir := 1.0
			if r%2 == 1 {
				dir = -1
			}
			hs.Balls = append(hs.Balls, entity.NewEnergyBall(cfg.ArenaWidth, entity.EnergyBallConfig{
				Y:       cfg.ArenaHeight * float64(r+1) / float64(ballCfg.Rows+1),
				Dir:     dir,
				Speed:   ballCfg.Speed,
				Radius:  ballCfg.Radius,
				Damage:  ballCfg.Damage,
				Impulse: ballCfg.Impulse,
			}))
		}
	}

	return hs
}

func (hs *HazardSystem) Priority() int { return hazardPriority }

func (hs *HazardSystem) Remove(ecs.BasicEntity) {}

func (hs *HazardSystem) Update(dt float32) {
	a := hs.arena
	step := float64(dt)

	for _, saw := range hs.Saws {
		for _, hit := range saw.Update(step, a.ships) {
			a.Events.Publish(event.NewHazardEvent(event.HazardStrike, a,
				"saw", saw.ID(), hit.Ship.ID(), hit.PartIndex, hit.Damage))
			a.publishDamage(hit.Ship, hit.Result)
		}
	}
	for _, ball := range hs.Balls {
		for _, hit := range ball.Update(step, a.ships) {
			a.Events.Publish(event.NewHazardEvent(event.HazardStrike, a,
				"energy_ball", ball.ID(), hit.Ship.ID(), hit.PartIndex, hit.Damage))
			a.publishDamage(hit.Ship, hit.Result)
		}
	}
}
