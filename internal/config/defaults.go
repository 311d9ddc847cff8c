package config

import (
	_ "embed"
)

//go:embed defaults/leafglide.yaml
var defaultYAML []byte

// DefaultGameConfig returns the built-in configuration, used when no YAML
// file can be found or parsed.
func DefaultGameConfig() GameConfig {
	return GameConfig{
		Playfield: PlayfieldConfig{
			Width:        800,
			Height:       600,
			GroundHeight: 80,
		},
		Character: CharacterConfig{
			X:            100,
			Width:        34,
			Height:       24,
			MaxFallSpeed: 12,
		},
		Obstacles: ObstacleConfig{
			Width:        70,
			MinGapMargin: 40,
		},
		PowerUps: PowerUpConfig{
			SpawnIntervalMS: 9000,
			Size:            26,
			Drift:           1.2,
			BobAmplitude:    6,
			TopMargin:       60,
			BottomMargin:    120,
		},
		Particles: ParticleConfig{
			SpawnIntervalMS: 450,
			MaxCount:        24,
			OverflowMargin:  40,
		},
		Scoring: ScoringConfig{
			PointsPerLevel: 10,
		},
		Levels: []LevelSettings{
			{Speed: 2.0, SpawnIntervalMS: 1800, Gravity: 0.38, FlapImpulse: -7.0, GapSize: 170},
			{Speed: 2.5, SpawnIntervalMS: 1650, Gravity: 0.40, FlapImpulse: -7.0, GapSize: 162},
			{Speed: 3.0, SpawnIntervalMS: 1500, Gravity: 0.42, FlapImpulse: -7.2, GapSize: 154},
			{Speed: 3.5, SpawnIntervalMS: 1350, Gravity: 0.44, FlapImpulse: -7.2, GapSize: 146},
			{Speed: 4.0, SpawnIntervalMS: 1200, Gravity: 0.46, FlapImpulse: -7.5, GapSize: 138},
		},
	}
}
