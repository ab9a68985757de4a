package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Simulation holds all configuration of the summoning binary.
type Simulation struct {
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// Driver
	TickInterval   time.Duration `yaml:"tick_interval"`
	StatusInterval time.Duration `yaml:"status_interval"` // 0 disables the status reporter

	// Content
	MapPath       string `yaml:"map_path"`
	TemplatesPath string `yaml:"templates_path"`

	// Pathfinding
	PathWorkers       int     `yaml:"path_workers"`
	PathQueueSize     int     `yaml:"path_queue_size"`
	PathMaxIterations int     `yaml:"path_max_iterations"`
	CellSize          float64 `yaml:"cell_size"` // used when the map does not set one

	Tower  TowerConfig  `yaml:"tower"`
	Enemy  EnemyConfig  `yaml:"enemy"`
	Minion MinionConfig `yaml:"minion"`
	Player PlayerConfig `yaml:"player"`

	// Database (match results)
	Database DatabaseConfig `yaml:"database"`
}

// TowerConfig holds the economy of every tower.
type TowerConfig struct {
	MaxHealth         int32         `yaml:"max_health"`
	PowerGain         int32         `yaml:"power_gain"`
	PowerGainInterval time.Duration `yaml:"power_gain_interval"`
	ExtGainCooldown   time.Duration `yaml:"ext_gain_cooldown"`
	Size              float64       `yaml:"size"` // hit-test box edge
}

// EnemyConfig is the fixed minion kind spawned by enemy towers.
type EnemyConfig struct {
	SpawnCost      int32  `yaml:"spawn_cost"`
	Health         int32  `yaml:"health"`
	TowerDamage    int32  `yaml:"tower_damage"`
	KillReward     int32  `yaml:"kill_reward"`
	TowerHitReward int32  `yaml:"tower_hit_reward"`
	Visual         string `yaml:"visual"`
}

// MinionConfig holds movement and combat values shared by all minions.
type MinionConfig struct {
	Speed           float64       `yaml:"speed"`
	MoveInterval    time.Duration `yaml:"move_interval"`
	DamageCooldown  time.Duration `yaml:"damage_cooldown"`
	CollisionStrike int32         `yaml:"collision_strike"`
	Size            float64       `yaml:"size"`
	ArriveEpsilon   float64       `yaml:"arrive_epsilon"`
}

// PlayerConfig holds the commanded spawner settings.
type PlayerConfig struct {
	SpawnCooldown time.Duration `yaml:"spawn_cooldown"`
}

// DatabaseConfig holds PostgreSQL connection parameters.
type DatabaseConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
	SSLMode  string `yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.DBName, d.SSLMode,
	)
}

// DefaultSimulation returns Simulation config with the stock game values.
func DefaultSimulation() Simulation {
	return Simulation{
		LogLevel:          "info",
		TickInterval:      16 * time.Millisecond,
		StatusInterval:    2 * time.Second,
		MapPath:           "maps/level1.yaml",
		TemplatesPath:     "config/minions.yaml",
		PathWorkers:       2,
		PathQueueSize:     64,
		PathMaxIterations: 7000,
		CellSize:          32,
		Tower: TowerConfig{
			MaxHealth:         1000,
			PowerGain:         10,
			PowerGainInterval: 3 * time.Second,
			ExtGainCooldown:   time.Second,
			Size:              32,
		},
		Enemy: EnemyConfig{
			SpawnCost:      30,
			Health:         100,
			TowerDamage:    50,
			KillReward:     10,
			TowerHitReward: 25,
			Visual:         "enemy",
		},
		Minion: MinionConfig{
			Speed:           1.5,
			MoveInterval:    time.Millisecond,
			DamageCooldown:  time.Second,
			CollisionStrike: 100,
			Size:            16,
			ArriveEpsilon:   1,
		},
		Player: PlayerConfig{
			SpawnCooldown: time.Second,
		},
		Database: DatabaseConfig{
			Enabled:  false,
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "summoning",
			Password: "summoning",
			DBName:   "summoning",
			SSLMode:  "disable",
		},
	}
}

// LoadSimulation loads config from a YAML file and validates it.
// If the file doesn't exist, returns defaults.
func LoadSimulation(path string) (Simulation, error) {
	cfg := DefaultSimulation()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate rejects values the simulation cannot run with.
func (c Simulation) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.TickInterval > 0, "tick_interval must be positive")
	check(c.StatusInterval >= 0, "status_interval must not be negative")
	check(c.PathWorkers > 0, "path_workers must be positive")
	check(c.PathQueueSize >= 0, "path_queue_size must not be negative")
	check(c.PathMaxIterations > 0, "path_max_iterations must be positive")
	check(c.CellSize > 0, "cell_size must be positive")

	check(c.Tower.MaxHealth > 0, "tower.max_health must be positive")
	check(c.Tower.PowerGain >= 0, "tower.power_gain must not be negative")
	check(c.Tower.PowerGainInterval >= 0, "tower.power_gain_interval must not be negative")
	check(c.Tower.ExtGainCooldown >= 0, "tower.ext_gain_cooldown must not be negative")
	check(c.Tower.Size > 0, "tower.size must be positive")

	check(c.Enemy.SpawnCost > 0, "enemy.spawn_cost must be positive")
	check(c.Enemy.Health > 0, "enemy.health must be positive")
	check(c.Enemy.TowerDamage >= 0, "enemy.tower_damage must not be negative")
	check(c.Enemy.KillReward >= 0, "enemy.kill_reward must not be negative")
	check(c.Enemy.TowerHitReward >= 0, "enemy.tower_hit_reward must not be negative")

	check(c.Minion.Speed > 0, "minion.speed must be positive")
	check(c.Minion.MoveInterval >= 0, "minion.move_interval must not be negative")
	check(c.Minion.DamageCooldown >= 0, "minion.damage_cooldown must not be negative")
	check(c.Minion.CollisionStrike >= 0, "minion.collision_strike must not be negative")
	check(c.Minion.Size > 0, "minion.size must be positive")
	check(c.Minion.ArriveEpsilon >= 0, "minion.arrive_epsilon must not be negative")

	check(c.Player.SpawnCooldown >= 0, "player.spawn_cooldown must not be negative")

	return errors.Join(errs...)
}
