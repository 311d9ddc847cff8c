// Package config provides YAML-based game configuration loading and the
// difficulty table for Leafglide.
package config

import (
	"fmt"
	"time"
)

// GameConfig contains all tunable parameters of the simulation.
type GameConfig struct {
	Playfield PlayfieldConfig `yaml:"playfield"`
	Character CharacterConfig `yaml:"character"`
	Obstacles ObstacleConfig  `yaml:"obstacles"`
	PowerUps  PowerUpConfig   `yaml:"powerups"`
	Particles ParticleConfig  `yaml:"particles"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Levels    []LevelSettings `yaml:"levels"`
}

// PlayfieldConfig defines the world dimensions in abstract pixels.
type PlayfieldConfig struct {
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	GroundHeight float64 `yaml:"ground_height"`
}

// CharacterConfig defines the gliding character's geometry and limits.
type CharacterConfig struct {
	X            float64 `yaml:"x"`
	Width        float64 `yaml:"width"`
	Height       float64 `yaml:"height"`
	MaxFallSpeed float64 `yaml:"max_fall_speed"`
}

// ObstacleConfig defines obstacle geometry shared by all levels.
type ObstacleConfig struct {
	Width        float64 `yaml:"width"`
	MinGapMargin float64 `yaml:"min_gap_margin"`
}

// PowerUpConfig defines power-up spawning and movement.
// The spawn cadence is fixed and independent of the current level.
type PowerUpConfig struct {
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"`
	Size            float64 `yaml:"size"`
	Drift           float64 `yaml:"drift"`
	BobAmplitude    float64 `yaml:"bob_amplitude"`
	TopMargin       float64 `yaml:"top_margin"`
	BottomMargin    float64 `yaml:"bottom_margin"`
}

// ParticleConfig defines the decorative leaf layer.
type ParticleConfig struct {
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"`
	MaxCount        int     `yaml:"max_count"`
	OverflowMargin  float64 `yaml:"overflow_margin"`
}

// ScoringConfig defines score-to-level progression.
type ScoringConfig struct {
	PointsPerLevel int `yaml:"points_per_level"`
}

// LevelSettings is one row of the difficulty table: the simulation constants
// for a single level. Levels are 1-based in the public API; the table is a
// plain slice internally.
type LevelSettings struct {
	Speed           float64 `yaml:"speed"`             // Obstacle speed, pixels per frame
	SpawnIntervalMS int     `yaml:"spawn_interval_ms"` // Obstacle spawn cadence
	Gravity         float64 `yaml:"gravity"`           // Downward acceleration per frame
	FlapImpulse     float64 `yaml:"flap_impulse"`      // Upward velocity on flap (negative = up)
	GapSize         float64 `yaml:"gap_size"`          // Vertical gap between barrier pair
}

// SpawnInterval returns the obstacle cadence as a duration.
func (l LevelSettings) SpawnInterval() time.Duration {
	return time.Duration(l.SpawnIntervalMS) * time.Millisecond
}

// MaxLevel returns the highest level in the difficulty table.
func (c GameConfig) MaxLevel() int {
	return len(c.Levels)
}

// LevelFor returns the settings for the given 1-based level.
// Out-of-range levels clamp to the nearest valid bound; the lookup never
// fails.
func (c GameConfig) LevelFor(level int) LevelSettings {
	if len(c.Levels) == 0 {
		return DefaultGameConfig().Levels[0]
	}
	idx := level - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(c.Levels) {
		idx = len(c.Levels) - 1
	}
	return c.Levels[idx]
}

// Validate checks structural sanity and the monotonic-difficulty invariant:
// as the level rises, speed must not decrease and spawn interval and gap
// must not increase. Gravity and flap impulse are tuned per level for feel
// and carry no monotone requirement.
func (c GameConfig) Validate() error {
	if c.Playfield.Width <= 0 || c.Playfield.Height <= 0 {
		return fmt.Errorf("config: playfield dimensions must be positive")
	}
	if c.Playfield.GroundHeight < 0 || c.Playfield.GroundHeight >= c.Playfield.Height {
		return fmt.Errorf("config: ground height %v out of range", c.Playfield.GroundHeight)
	}
	if c.Character.Width <= 0 || c.Character.Height <= 0 {
		return fmt.Errorf("config: character dimensions must be positive")
	}
	if c.Scoring.PointsPerLevel <= 0 {
		return fmt.Errorf("config: points_per_level must be positive")
	}
	if len(c.Levels) == 0 {
		return fmt.Errorf("config: difficulty table is empty")
	}

	for i, lvl := range c.Levels {
		if lvl.Speed <= 0 {
			return fmt.Errorf("config: level %d speed must be positive", i+1)
		}
		if lvl.SpawnIntervalMS <= 0 {
			return fmt.Errorf("config: level %d spawn interval must be positive", i+1)
		}
		if lvl.GapSize <= c.Character.Height {
			return fmt.Errorf("config: level %d gap %v does not fit the character", i+1, lvl.GapSize)
		}
		if lvl.GapSize+2*c.Obstacles.MinGapMargin > c.Playfield.Height {
			return fmt.Errorf("config: level %d gap %v does not fit the playfield", i+1, lvl.GapSize)
		}
		if i == 0 {
			continue
		}
		prev := c.Levels[i-1]
		if lvl.Speed < prev.Speed {
			return fmt.Errorf("config: level %d speed decreases", i+1)
		}
		if lvl.SpawnIntervalMS > prev.SpawnIntervalMS {
			return fmt.Errorf("config: level %d spawn interval increases", i+1)
		}
		if lvl.GapSize > prev.GapSize {
			return fmt.Errorf("config: level %d gap increases", i+1)
		}
	}

	return nil
}
