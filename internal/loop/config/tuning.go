package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Tuning holds every gameplay number the simulation reads.
// Fields absent from a YAML file keep their defaults.
type Tuning struct {
	TickTime time.Duration `yaml:"tickTime"` // Simulated time per step

	PlayerWidth       float64       `yaml:"playerWidth"`
	PlayerHeight      float64       `yaml:"playerHeight"`
	PlayerSpawnOffset float64       `yaml:"playerSpawnOffset"` // Distance from the bottom edge to the player's top
	PlayerBaseSpeed   float64       `yaml:"playerBaseSpeed"`
	MaxHealth         int           `yaml:"maxHealth"`
	ShotCooldown      time.Duration `yaml:"shotCooldown"`
	BulletSpeed       float64       `yaml:"bulletSpeed"`
	BulletSize        float64       `yaml:"bulletSize"`

	EnemyWidth          float64       `yaml:"enemyWidth"`
	EnemyHeight         float64       `yaml:"enemyHeight"`
	EnemyBaseSpeed      float64       `yaml:"enemyBaseSpeed"`
	EnemySpeedPerWave   float64       `yaml:"enemySpeedPerWave"`
	EnemyBaseHealth     int           `yaml:"enemyBaseHealth"`
	EnemyHealthPerWave  int           `yaml:"enemyHealthPerWave"`
	FastSpeedMultiplier float64       `yaml:"fastSpeedMultiplier"`
	TankHealthFactor    int           `yaml:"tankHealthFactor"`
	EnemyFireCooldown   time.Duration `yaml:"enemyFireCooldown"`
	EnemyBulletSpeed    float64       `yaml:"enemyBulletSpeed"`

	BulletDamage  int `yaml:"bulletDamage"`
	HitScore      int `yaml:"hitScore"`
	KillScore     int `yaml:"killScore"`
	ContactDamage int `yaml:"contactDamage"`

	PowerUpSize     float64       `yaml:"powerUpSize"`
	PowerUpLifetime time.Duration `yaml:"powerUpLifetime"`
	HealAmount      int           `yaml:"healAmount"`
	BuffDuration    time.Duration `yaml:"buffDuration"`
	SpeedBoost      float64       `yaml:"speedBoost"`
	BulletBoost     float64       `yaml:"bulletBoost"`
	FlashDuration   time.Duration `yaml:"flashDuration"`

	EnemySpawnInterval   time.Duration `yaml:"enemySpawnInterval"`
	PowerUpSpawnInterval time.Duration `yaml:"powerUpSpawnInterval"`
	WaveDuration         time.Duration `yaml:"waveDuration"`
}

// DefaultTuning returns the classic survival-mode numbers.
func DefaultTuning() Tuning {
	return Tuning{
		TickTime: time.Second / 60,

		PlayerWidth:       50,
		PlayerHeight:      50,
		PlayerSpawnOffset: 100,
		PlayerBaseSpeed:   5,
		MaxHealth:         100,
		ShotCooldown:      300 * time.Millisecond,
		BulletSpeed:       6,
		BulletSize:        10,

		EnemyWidth:          50,
		EnemyHeight:         50,
		EnemyBaseSpeed:      2,
		EnemySpeedPerWave:   0.2,
		EnemyBaseHealth:     30,
		EnemyHealthPerWave:  5,
		FastSpeedMultiplier: 1.5,
		TankHealthFactor:    2,
		EnemyFireCooldown:   2000 * time.Millisecond,
		EnemyBulletSpeed:    4,

		BulletDamage:  20,
		HitScore:      5,
		KillScore:     10,
		ContactDamage: 10,

		PowerUpSize:     30,
		PowerUpLifetime: 10 * time.Second,
		HealAmount:      20,
		BuffDuration:    5 * time.Second,
		SpeedBoost:      2,
		BulletBoost:     2,
		FlashDuration:   100 * time.Millisecond,

		EnemySpawnInterval:   2 * time.Second,
		PowerUpSpawnInterval: 10 * time.Second,
		WaveDuration:         30 * time.Second,
	}
}

// LoadTuning reads a YAML tuning file on top of DefaultTuning.
// An empty path returns the defaults.
func LoadTuning(path string) (Tuning, error) {
	tuning := DefaultTuning()
	if path == "" {
		return tuning, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return tuning, fmt.Errorf("failed to read tuning file %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &tuning); err != nil {
		return DefaultTuning(), fmt.Errorf("failed to parse tuning YAML from %s: %w", path, err)
	}

	if err := tuning.Validate(); err != nil {
		return DefaultTuning(), fmt.Errorf("invalid tuning in %s: %w", path, err)
	}

	return tuning, nil
}

// Validate checks that every size, speed and interval is usable.
func (t Tuning) Validate() error {
	positive := []struct {
		name  string
		value float64
	}{
		{"playerWidth", t.PlayerWidth},
		{"playerHeight", t.PlayerHeight},
		{"playerBaseSpeed", t.PlayerBaseSpeed},
		{"bulletSpeed", t.BulletSpeed},
		{"bulletSize", t.BulletSize},
		{"enemyWidth", t.EnemyWidth},
		{"enemyHeight", t.EnemyHeight},
		{"enemyBaseSpeed", t.EnemyBaseSpeed},
		{"fastSpeedMultiplier", t.FastSpeedMultiplier},
		{"enemyBulletSpeed", t.EnemyBulletSpeed},
		{"powerUpSize", t.PowerUpSize},
		{"maxHealth", float64(t.MaxHealth)},
		{"enemyBaseHealth", float64(t.EnemyBaseHealth)},
		{"tankHealthFactor", float64(t.TankHealthFactor)},
	}
	for _, p := range positive {
		if p.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", p.name, p.value)
		}
	}

	durations := []struct {
		name  string
		value time.Duration
	}{
		{"tickTime", t.TickTime},
		{"enemySpawnInterval", t.EnemySpawnInterval},
		{"powerUpSpawnInterval", t.PowerUpSpawnInterval},
		{"powerUpLifetime", t.PowerUpLifetime},
		{"buffDuration", t.BuffDuration},
		{"flashDuration", t.FlashDuration},
		{"waveDuration", t.WaveDuration},
	}
	for _, d := range durations {
		if d.value <= 0 {
			return fmt.Errorf("%s must be positive, got %v", d.name, d.value)
		}
	}

	if t.ShotCooldown < 0 || t.EnemyFireCooldown < 0 {
		return fmt.Errorf("cooldowns cannot be negative")
	}
	if t.EnemySpeedPerWave < 0 || t.EnemyHealthPerWave < 0 {
		return fmt.Errorf("per-wave scaling cannot be negative")
	}
	if t.BulletDamage < 0 || t.ContactDamage < 0 || t.HealAmount < 0 {
		return fmt.Errorf("damage and heal amounts cannot be negative")
	}

	return nil
}
