package game

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/math/f64"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds every tunable of the simulation. It is read once at start-up
// and never reloaded. Durations and rates are in seconds; distances in
// world units.
type Config struct {
	Seed      int64           `yaml:"seed"` // 0 = seed from the wall clock
	World     WorldConfig     `yaml:"world"`
	Player    PlayerConfig    `yaml:"player"`
	Enemies   EnemiesConfig   `yaml:"enemies"`
	Damage    DamageConfig    `yaml:"damage"`
	Ignite    IgniteConfig    `yaml:"ignite"`
	Heat      HeatConfig      `yaml:"heat"`
	Spawn     SpawnConfig     `yaml:"spawn"`
	Pickups   PickupConfig    `yaml:"pickups"`
	Challenge ChallengeConfig `yaml:"challenge"`
}

type WorldConfig struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	FallSpeed float64 `yaml:"fall_speed"` // depth units per second
	MaxDepth  float64 `yaml:"max_depth"`
}

type PlayerConfig struct {
	MaxHP             int      `yaml:"max_hp"`
	FuelCapacity      float64  `yaml:"fuel_capacity"`
	FuelRegen         float64  `yaml:"fuel_regen"` // per second in regular form
	FuelDrain         float64  `yaml:"fuel_drain"` // per second in overdrive
	OverdriveExitFuel float64  `yaml:"overdrive_exit_fuel"`
	Invulnerability   float64  `yaml:"invulnerability"`
	Speed             float64  `yaml:"speed"`
	OverdriveSpeed    float64  `yaml:"overdrive_speed"`
	Collider          f64.Vec2 `yaml:"collider"`
	OverdriveCollider f64.Vec2 `yaml:"overdrive_collider"`
	ArriveRadius      float64  `yaml:"arrive_radius"` // no movement within this distance of the pointer
}

// ArchetypeConfig holds the base stats of one enemy archetype. The ranged
// fields are ignored for pursuers.
type ArchetypeConfig struct {
	HP                 float64  `yaml:"hp"`
	Speed              float64  `yaml:"speed"`
	Collider           f64.Vec2 `yaml:"collider"`
	DepthLevel         float64  `yaml:"depth_level"`
	CounterThreshold   float64  `yaml:"counter_threshold"`
	CounterHeal        float64  `yaml:"counter_heal"`
	Reload             float64  `yaml:"reload"`
	MaxRange           float64  `yaml:"max_range"`
	ProjectileSpeed    float64  `yaml:"projectile_speed"`
	ProjectileCollider f64.Vec2 `yaml:"projectile_collider"`
}

type EnemiesConfig struct {
	Pursuer ArchetypeConfig `yaml:"pursuer"`
	Ranged  ArchetypeConfig `yaml:"ranged"`
	Boss    ArchetypeConfig `yaml:"boss"`
}

// For returns the stats of archetype a.
func (ec *EnemiesConfig) For(a Archetype) ArchetypeConfig {
	switch a {
	case ArchetypeRanged:
		return ec.Ranged
	case ArchetypeBoss:
		return ec.Boss
	default:
		return ec.Pursuer
	}
}

type DamageConfig struct {
	Rate       float64 `yaml:"rate"`        // enemy HP lost per second of overdrive contact
	SlowFactor float64 `yaml:"slow_factor"` // enemy speed lost per second of overdrive contact
}

type IgniteConfig struct {
	Duration  float64 `yaml:"duration"`
	SpeedGain float64 `yaml:"speed_gain"`
}

type HeatConfig struct {
	Gain  float64 `yaml:"gain"` // per second of overdrive contact
	Limit float64 `yaml:"limit"`
}

type SpawnConfig struct {
	Period        float64  `yaml:"period"`
	MaxEnemies    int      `yaml:"max_enemies"`
	ShooterDepth  float64  `yaml:"shooter_depth"`
	BossDepth     float64  `yaml:"boss_depth"`
	RangedWeight  float64  `yaml:"ranged_weight"` // chance of ranged between the two depths
	SpeedJitter   f64.Vec2 `yaml:"speed_jitter"`  // [min, max] multiplier on archetype speed
	ArriveEpsilon float64  `yaml:"arrive_epsilon"`
}

type PickupConfig struct {
	Period        float64  `yaml:"period"`
	Speed         float64  `yaml:"speed"`
	Collider      f64.Vec2 `yaml:"collider"`
	FuelRestore   float64  `yaml:"fuel_restore"`
	HealthRestore int      `yaml:"health_restore"`
}

type ChallengeConfig struct {
	Length      int     `yaml:"length"`
	Duration    float64 `yaml:"duration"`
	Tokens      []Token `yaml:"tokens"`
	FuelReward  float64 `yaml:"fuel_reward"`
	FuelPenalty float64 `yaml:"fuel_penalty"`
}

// DefaultConfig returns the shipped tuning.
func DefaultConfig() Config {
	return Config{
		World: WorldConfig{
			Width:     520,
			Height:    640,
			FallSpeed: 100,
			MaxDepth:  6000,
		},
		Player: PlayerConfig{
			MaxHP:             5,
			FuelCapacity:      100,
			FuelRegen:         5,
			FuelDrain:         10,
			OverdriveExitFuel: 1,
			Invulnerability:   2,
			Speed:             250,
			OverdriveSpeed:    400,
			Collider:          f64.Vec2{40, 40},
			OverdriveCollider: f64.Vec2{64, 64},
			ArriveRadius:      10,
		},
		Enemies: EnemiesConfig{
			Pursuer: ArchetypeConfig{
				HP:               10,
				Speed:            85,
				Collider:         f64.Vec2{48, 48},
				DepthLevel:       0,
				CounterThreshold: 3,
				CounterHeal:      4,
			},
			Ranged: ArchetypeConfig{
				HP:                 15,
				Speed:              70,
				Collider:           f64.Vec2{48, 48},
				DepthLevel:         1,
				CounterThreshold:   4,
				CounterHeal:        5,
				Reload:             2,
				MaxRange:           400,
				ProjectileSpeed:    220,
				ProjectileCollider: f64.Vec2{12, 12},
			},
			Boss: ArchetypeConfig{
				HP:                 120,
				Speed:              60,
				Collider:           f64.Vec2{128, 128},
				DepthLevel:         2,
				CounterThreshold:   20,
				CounterHeal:        25,
				Reload:             0.8,
				MaxRange:           800,
				ProjectileSpeed:    280,
				ProjectileCollider: f64.Vec2{20, 20},
			},
		},
		Damage: DamageConfig{
			Rate:       30,
			SlowFactor: 20,
		},
		Ignite: IgniteConfig{
			Duration:  3,
			SpeedGain: 120,
		},
		Heat: HeatConfig{
			Gain:  40,
			Limit: 100,
		},
		Spawn: SpawnConfig{
			Period:        3,
			MaxEnemies:    8,
			ShooterDepth:  1500,
			BossDepth:     6000,
			RangedWeight:  0.4,
			SpeedJitter:   f64.Vec2{0.8, 1.2},
			ArriveEpsilon: 1,
		},
		Pickups: PickupConfig{
			Period:        4,
			Speed:         100,
			Collider:      f64.Vec2{32, 32},
			FuelRestore:   25,
			HealthRestore: 1,
		},
		Challenge: ChallengeConfig{
			Length:      4,
			Duration:    3,
			Tokens:      []Token{TokenPrimary, TokenSecondary},
			FuelReward:  30,
			FuelPenalty: 20,
		},
	}
}

// LoadConfig reads a YAML file over DefaultConfig and validates the result.
// Keys missing from the file keep their default values.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Encode renders cfg as YAML, the same shape LoadConfig reads.
func (cfg *Config) Encode() ([]byte, error) {
	return yaml.Marshal(cfg)
}

// Validate reports every malformed value. The returned error wraps
// ErrInvalidConfig.
func (cfg *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf(format, args...))
	}
	positive := func(name string, v float64) {
		if v <= 0 {
			bad("%s must be > 0, got %v", name, v)
		}
	}
	nonNegative := func(name string, v float64) {
		if v < 0 {
			bad("%s must be >= 0, got %v", name, v)
		}
	}
	size := func(name string, v f64.Vec2) {
		if v[0] <= 0 || v[1] <= 0 {
			bad("%s must have positive width and height, got %v", name, v)
		}
	}

	positive("world.width", cfg.World.Width)
	positive("world.height", cfg.World.Height)
	nonNegative("world.fall_speed", cfg.World.FallSpeed)
	nonNegative("world.max_depth", cfg.World.MaxDepth)

	p := cfg.Player
	if p.MaxHP <= 0 {
		bad("player.max_hp must be > 0, got %d", p.MaxHP)
	}
	positive("player.fuel_capacity", p.FuelCapacity)
	nonNegative("player.fuel_regen", p.FuelRegen)
	nonNegative("player.fuel_drain", p.FuelDrain)
	nonNegative("player.overdrive_exit_fuel", p.OverdriveExitFuel)
	if p.OverdriveExitFuel >= p.FuelCapacity {
		bad("player.overdrive_exit_fuel (%v) must be below fuel_capacity (%v)", p.OverdriveExitFuel, p.FuelCapacity)
	}
	positive("player.invulnerability", p.Invulnerability)
	nonNegative("player.speed", p.Speed)
	nonNegative("player.overdrive_speed", p.OverdriveSpeed)
	size("player.collider", p.Collider)
	size("player.overdrive_collider", p.OverdriveCollider)
	nonNegative("player.arrive_radius", p.ArriveRadius)

	for _, a := range []Archetype{ArchetypePursuer, ArchetypeRanged, ArchetypeBoss} {
		ac := cfg.Enemies.For(a)
		prefix := "enemies." + a.String()
		positive(prefix+".hp", ac.HP)
		nonNegative(prefix+".speed", ac.Speed)
		size(prefix+".collider", ac.Collider)
		nonNegative(prefix+".counter_threshold", ac.CounterThreshold)
		if ac.CounterThreshold >= ac.HP {
			bad("%s.counter_threshold (%v) must be below hp (%v)", prefix, ac.CounterThreshold, ac.HP)
		}
		nonNegative(prefix+".counter_heal", ac.CounterHeal)
		if a.Ranged() {
			positive(prefix+".reload", ac.Reload)
			positive(prefix+".max_range", ac.MaxRange)
			positive(prefix+".projectile_speed", ac.ProjectileSpeed)
			size(prefix+".projectile_collider", ac.ProjectileCollider)
		}
	}

	nonNegative("damage.rate", cfg.Damage.Rate)
	nonNegative("damage.slow_factor", cfg.Damage.SlowFactor)
	positive("ignite.duration", cfg.Ignite.Duration)
	nonNegative("ignite.speed_gain", cfg.Ignite.SpeedGain)
	nonNegative("heat.gain", cfg.Heat.Gain)
	positive("heat.limit", cfg.Heat.Limit)

	s := cfg.Spawn
	positive("spawn.period", s.Period)
	if s.MaxEnemies < 0 {
		bad("spawn.max_enemies must be >= 0, got %d", s.MaxEnemies)
	}
	nonNegative("spawn.shooter_depth", s.ShooterDepth)
	if s.BossDepth < s.ShooterDepth {
		bad("spawn.boss_depth (%v) must not be below shooter_depth (%v)", s.BossDepth, s.ShooterDepth)
	}
	if s.BossDepth > cfg.World.MaxDepth {
		bad("spawn.boss_depth (%v) must not exceed world.max_depth (%v)", s.BossDepth, cfg.World.MaxDepth)
	}
	if s.RangedWeight < 0 || s.RangedWeight > 1 {
		bad("spawn.ranged_weight must be in [0,1], got %v", s.RangedWeight)
	}
	if s.SpeedJitter[0] <= 0 || s.SpeedJitter[1] < s.SpeedJitter[0] {
		bad("spawn.speed_jitter must be 0 < min <= max, got %v", s.SpeedJitter)
	}
	positive("spawn.arrive_epsilon", s.ArriveEpsilon)

	positive("pickups.period", cfg.Pickups.Period)
	nonNegative("pickups.speed", cfg.Pickups.Speed)
	size("pickups.collider", cfg.Pickups.Collider)
	nonNegative("pickups.fuel_restore", cfg.Pickups.FuelRestore)
	if cfg.Pickups.HealthRestore < 0 {
		bad("pickups.health_restore must be >= 0, got %d", cfg.Pickups.HealthRestore)
	}

	c := cfg.Challenge
	if c.Length <= 0 {
		bad("challenge.length must be > 0, got %d", c.Length)
	}
	positive("challenge.duration", c.Duration)
	if len(c.Tokens) == 0 {
		bad("challenge.tokens must not be empty")
	}
	for i, t := range c.Tokens {
		if !t.Valid() {
			bad("challenge.tokens[%d] is not a known token", i)
		}
	}
	nonNegative("challenge.fuel_reward", c.FuelReward)
	nonNegative("challenge.fuel_penalty", c.FuelPenalty)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}
