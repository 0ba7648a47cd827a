// pkg/config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/scrapship/arena/pkg/logging"
)

// ArenaConfig contains configuration for one arena simulation
type ArenaConfig struct {
	ArenaWidth     float64          `json:"arenaWidth"`
	ArenaHeight    float64          `json:"arenaHeight"`
	TimeStep       float64          `json:"timeStep"`
	ShipScale      float64          `json:"shipScale"`
	MaxProjectiles int              `json:"maxProjectiles"`
	Assembly       AssemblyConfig   `json:"assembly"`
	SawBlades      SawBladeConfig   `json:"sawBlades"`
	EnergyBalls    EnergyBallConfig `json:"energyBalls"`
}

// AssemblyConfig contains compound-body tuning applied to every ship
type AssemblyConfig struct {
	LinearDamping  float64 `json:"linearDamping"`
	AngularDamping float64 `json:"angularDamping"`
	Restitution    float64 `json:"restitution"`
	Friction       float64 `json:"friction"`
}

// SawBladeConfig contains saw blade hazard configuration. Count blades are
// spread evenly along the shared rectangular path
type SawBladeConfig struct {
	Count         int     `json:"count"`
	Inset         float64 `json:"inset"`
	Speed         float64 `json:"speed"`
	Radius        float64 `json:"radius"`
	Damage        float64 `json:"damage"`
	HitCooldown   float64 `json:"hitCooldown"`
	Impulse       float64 `json:"impulse"`
	TorqueImpulse float64 `json:"torqueImpulse"`
}

// EnergyBallConfig contains energy ball hazard configuration. Rows lanes are
// spaced evenly down the arena, alternating traversal direction
type EnergyBallConfig struct {
	Rows    int     `json:"rows"`
	Speed   float64 `json:"speed"`
	Radius  float64 `json:"radius"`
	Damage  float64 `json:"damage"`
	Impulse float64 `json:"impulse"`
}

// LoadConfig loads a configuration from a file and applies environment
// overrides
func LoadConfig(path string) (*ArenaConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, logging.WrapError(err, "failed to read config file %s", path)
	}

	var config ArenaConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, logging.WrapError(err, "failed to parse config file %s", path)
	}

	ApplyEnvironmentOverrides(&config)
	return &config, nil
}

// SaveConfig saves a configuration to a file
func SaveConfig(config *ArenaConfig, path string) error {
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return logging.WrapError(err, "failed to marshal config")
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return logging.WrapError(err, "failed to write config file %s", path)
	}

	return nil
}

// DefaultConfig returns a default arena configuration
func DefaultConfig() *ArenaConfig {
	return &ArenaConfig{
		ArenaWidth:     1200,
		ArenaHeight:    800,
		TimeStep:       1.0 / 60.0,
		ShipScale:      10,
		MaxProjectiles: 256,
		Assembly: AssemblyConfig{
			LinearDamping:  0.5,
			AngularDamping: 0.3,
			Restitution:    0.4,
			Friction:       0.6,
		},
		SawBlades: SawBladeConfig{
			Count:         2,
			Inset:         60,
			Speed:         180,
			Radius:        28,
			Damage:        2,
			HitCooldown:   0.5,
			Impulse:       220,
			TorqueImpulse: 40,
		},
		EnergyBalls: EnergyBallConfig{
			Rows:    3,
			Speed:   120,
			Radius:  16,
			Damage:  3,
			Impulse: 160,
		},
	}
}

// Environment variable names recognized by ApplyEnvironmentOverrides
const (
	EnvArenaWidth     = "ARENA_WIDTH"
	EnvArenaHeight    = "ARENA_HEIGHT"
	EnvTimeStep       = "ARENA_TIME_STEP"
	EnvShipScale      = "ARENA_SHIP_SCALE"
	EnvMaxProjectiles = "ARENA_MAX_PROJECTILES"
	EnvSawCount       = "ARENA_SAW_COUNT"
	EnvSawSpeed       = "ARENA_SAW_SPEED"
	EnvBallRows       = "ARENA_BALL_ROWS"
	EnvBallSpeed      = "ARENA_BALL_SPEED"
)

// ApplyEnvironmentOverrides overwrites config fields from ARENA_* environment
// variables. Unset or unparseable variables leave the field unchanged
func ApplyEnvironmentOverrides(config *ArenaConfig) {
	config.ArenaWidth = getEnvAsFloatOrDefault(EnvArenaWidth, config.ArenaWidth)
	config.ArenaHeight = getEnvAsFloatOrDefault(EnvArenaHeight, config.ArenaHeight)
	config.TimeStep = getEnvAsFloatOrDefault(EnvTimeStep, config.TimeStep)
	config.ShipScale = getEnvAsFloatOrDefault(EnvShipScale, config.ShipScale)
	config.MaxProjectiles = getEnvAsIntOrDefault(EnvMaxProjectiles, config.MaxProjectiles)
	config.SawBlades.Count = getEnvAsIntOrDefault(EnvSawCount, config.SawBlades.Count)
	config.SawBlades.Speed = getEnvAsFloatOrDefault(EnvSawSpeed, config.SawBlades.Speed)
	config.EnergyBalls.Rows = getEnvAsIntOrDefault(EnvBallRows, config.EnergyBalls.Rows)
	config.EnergyBalls.Speed = getEnvAsFloatOrDefault(EnvBallSpeed, config.EnergyBalls.Speed)
}

// getEnvAsIntOrDefault returns the environment variable as an int or a default
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvAsFloatOrDefault returns the environment variable as a float64 or a
// default
func getEnvAsFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// Validate checks a configuration for values the simulation cannot run with
func (c *ArenaConfig) Validate() error {
	if c.ArenaWidth <= 0 || c.ArenaHeight <= 0 {
		return fmt.Errorf("invalid arena dimensions %gx%g", c.ArenaWidth, c.ArenaHeight)
	}
	if c.TimeStep <= 0 {
		return fmt.Errorf("invalid time step %g", c.TimeStep)
	}
	if c.ShipScale <= 0 {
		return fmt.Errorf("invalid ship scale %g", c.ShipScale)
	}
	if c.MaxProjectiles <= 0 {
		return fmt.Errorf("invalid projectile cap %d", c.MaxProjectiles)
	}
	return nil
}
