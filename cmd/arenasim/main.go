// cmd/arenasim/main.go
package main

import (
	"context"
	"flag"
	"math"
	"os"

	"github.com/scrapship/arena/pkg/config"
	"github.com/scrapship/arena/pkg/engine"
	"github.com/scrapship/arena/pkg/event"
	"github.com/scrapship/arena/pkg/logging"
	"github.com/scrapship/arena/pkg/physics"
	"github.com/scrapship/arena/pkg/piece"
)

func main() {
	logger := logging.NewLogger()
	ctx := logging.WithCorrelationID(context.Background(), "")

	configPath := flag.String("config", "config.json", "Path to configuration file")
	createDefault := flag.Bool("default", false, "Create default configuration file")
	ticks := flag.Int("ticks", 1800, "Number of simulation ticks to run")
	flag.Parse()

	// Create default configuration file if requested
	if *createDefault {
		defaultConfig := config.DefaultConfig()
		if err := config.SaveConfig(defaultConfig, *configPath); err != nil {
			logger.Error(ctx, "Failed to create default configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
		logger.Info(ctx, "Created default configuration file",
			"config_path", *configPath,
		)
		return
	}

	// Load configuration
	var arenaConfig *config.ArenaConfig

	if _, err := os.Stat(*configPath); os.IsNotExist(err) {
		logger.Info(ctx, "Configuration file not found, using default configuration",
			"config_path", *configPath,
		)
		arenaConfig = config.DefaultConfig()
		config.ApplyEnvironmentOverrides(arenaConfig)
	} else {
		arenaConfig, err = config.LoadConfig(*configPath)
		if err != nil {
			logger.Error(ctx, "Failed to load configuration", err,
				"config_path", *configPath,
			)
			os.Exit(1)
		}
	}

	arena, err := engine.NewArena(arenaConfig)
	if err != nil {
		logger.Error(ctx, "Failed to create arena", err)
		os.Exit(1)
	}

	subscribeEventLogging(ctx, logger, arena)

	// Two stock fighters facing each other across the arena.
	left, err := arena.AddShip(piece.StandardFighter(), 0, physics.Vector2D{
		X: arenaConfig.ArenaWidth * 0.25,
		Y: arenaConfig.ArenaHeight * 0.5,
	})
	if err != nil {
		logger.Error(ctx, "Failed to assemble ship", err, "team", 0)
		os.Exit(1)
	}
	right, err := arena.AddShip(piece.StandardFighter(), 1, physics.Vector2D{
		X: arenaConfig.ArenaWidth * 0.75,
		Y: arenaConfig.ArenaHeight * 0.5,
	})
	if err != nil {
		logger.Error(ctx, "Failed to assemble ship", err, "team", 1)
		os.Exit(1)
	}

	logger.Info(ctx, "Arena simulation starting",
		"ticks", *ticks,
		"time_step", arenaConfig.TimeStep,
		"ships", len(arena.Ships()),
	)

	for i := 0; i < *ticks; i++ {
		arena.SetInput(left.ID(), chaseInput(left, right))
		arena.SetInput(right.ID(), chaseInput(right, left))
		arena.Update()

		if left.Destroyed || right.Destroyed {
			break
		}
	}

	snap := arena.Snapshot()
	encoded, err := engine.EncodeSnapshot(snap)
	if err != nil {
		logger.Error(ctx, "Failed to encode final snapshot", err)
		os.Exit(1)
	}

	logger.Info(ctx, "Arena simulation finished",
		"tick", snap.Tick,
		"snapshot_bytes", len(encoded),
		"projectiles_live", len(snap.Projectiles),
	)
	for _, ship := range snap.Ships {
		logger.Info(ctx, "Ship result",
			"ship_id", ship.ID,
			"team", ship.TeamID,
			"destroyed", ship.Destroyed,
			"parts", len(ship.Parts),
		)
	}
}

// subscribeEventLogging logs the simulation's combat events.
func subscribeEventLogging(ctx context.Context, logger *logging.Logger, arena *engine.Arena) {
	arena.Events.Subscribe(event.ShipAssembled, func(e event.Event) {
		if se, ok := e.(*event.ShipEvent); ok {
			logger.Info(ctx, "Ship assembled", "ship_id", se.ShipID, "team", se.TeamID)
		}
	})
	arena.Events.Subscribe(event.PartBroken, func(e event.Event) {
		if pe, ok := e.(*event.PartEvent); ok {
			logger.Info(ctx, "Part broken", "ship_id", pe.ShipID, "part", pe.PartIndex)
		}
	})
	arena.Events.Subscribe(event.EquipmentDisabled, func(e event.Event) {
		if ee, ok := e.(*event.EquipmentEvent); ok {
			logger.Info(ctx, "Equipment disabled",
				"ship_id", ee.ShipID, "equipment", ee.Equipment, "index", ee.Index)
		}
	})
	arena.Events.Subscribe(event.ThrusterOverheated, func(e event.Event) {
		if ee, ok := e.(*event.EquipmentEvent); ok {
			logger.Debug(ctx, "Thruster overheated", "ship_id", ee.ShipID, "index", ee.Index)
		}
	})
	arena.Events.Subscribe(event.HazardStrike, func(e event.Event) {
		if he, ok := e.(*event.HazardEvent); ok {
			logger.Info(ctx, "Hazard strike",
				"hazard", he.Hazard, "ship_id", he.ShipID, "part", he.PartIndex, "damage", he.Damage)
		}
	})
	arena.Events.Subscribe(event.ShipDestroyed, func(e event.Event) {
		if se, ok := e.(*event.ShipEvent); ok {
			logger.Info(ctx, "Ship destroyed", "ship_id", se.ShipID, "team", se.TeamID)
		}
	})
}

// chaseInput steers a ship toward its enemy, thrusting forward and firing
// whenever the enemy is roughly ahead.
func chaseInput(ship, enemy interface {
	Position() physics.Vector2D
	Angle() float64
}) engine.InputState {
	target := enemy.Position()
	toEnemy := target.Sub(ship.Position())
	// Ship-forward points along angle + 90 degrees in world terms.
	facing := physics.NormalizeAngle(toEnemy.Angle() - math.Pi/2)

	in := engine.InputState{
		TurnToward:  true,
		TargetAngle: facing,
		AimTarget:   &target,
	}
	heading := math.Abs(physics.NormalizeAngle(facing - ship.Angle()))
	if heading < math.Pi/4 {
		in.Forward = true
	}
	if heading < math.Pi/3 {
		in.Fire = true
	}
	return in
}
