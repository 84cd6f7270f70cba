// Package config holds the game tunables and the helpers that load them from
// YAML files and PONG_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config is passed explicitly to every component at construction.
// Sizes are logical arena units; speeds are units per tick.
type Config struct {
	Title  string `yaml:"title"`
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`

	Paddle PaddleConfig `yaml:"paddle"`
	Ball   BallConfig   `yaml:"ball"`

	// Extra padding added to paddle rects so grazing hits still bounce.
	CollisionEpsilon float64 `yaml:"collision_epsilon"`

	MaxScore int   `yaml:"max_score"` // 0 plays forever
	TickRate int   `yaml:"tick_rate"` // ticks per second
	Seed     int64 `yaml:"seed"`      // 0 seeds from the clock
}

// PaddleConfig sizes and positions both paddles.
type PaddleConfig struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Speed  float64 `yaml:"speed"`
	Margin float64 `yaml:"margin"` // distance from the gutter
}

// BallConfig controls the ball's size and speed escalation.
type BallConfig struct {
	Radius        float64 `yaml:"radius"`
	InitSpeed     float64 `yaml:"init_speed"`
	SpeedIncrease float64 `yaml:"speed_increase"`
	SpeedCap      float64 `yaml:"speed_cap"`
}

// Default returns the stock tuning.
func Default() Config {
	return Config{
		Title:  "Pong",
		Width:  960,
		Height: 600,
		Paddle: PaddleConfig{
			Width:  20,
			Height: 100,
			Speed:  28,
			Margin: 40,
		},
		Ball: BallConfig{
			Radius:        10,
			InitSpeed:     7.0,
			SpeedIncrease: 1.06,
			SpeedCap:      22.0,
		},
		CollisionEpsilon: 1.0,
		MaxScore:         0,
		TickRate:         60,
	}
}

// HalfWidth is the arena's half extent on x.
func (c Config) HalfWidth() float64 { return float64(c.Width) / 2 }

// HalfHeight is the arena's half extent on y.
func (c Config) HalfHeight() float64 { return float64(c.Height) / 2 }

// TickPeriod is the wall-clock duration of one tick.
func (c Config) TickPeriod() time.Duration {
	if c.TickRate <= 0 {
		return time.Second / 60
	}
	return time.Second / time.Duration(c.TickRate)
}

// Validate checks the invariants the physics relies on.
func (c Config) Validate() error {
	switch {
	case c.Width <= 0 || c.Height <= 0:
		return fmt.Errorf("%w: arena %dx%d must be positive", ErrInvalid, c.Width, c.Height)
	case c.Paddle.Width <= 0 || c.Paddle.Height <= 0:
		return fmt.Errorf("%w: paddle size must be positive", ErrInvalid)
	case c.Paddle.Height >= float64(c.Height):
		return fmt.Errorf("%w: paddle height %.0f does not fit arena height %d", ErrInvalid, c.Paddle.Height, c.Height)
	case c.Paddle.Margin < 0 || c.Paddle.Margin >= c.HalfWidth():
		return fmt.Errorf("%w: paddle margin %.0f outside arena", ErrInvalid, c.Paddle.Margin)
	case c.Ball.Radius <= 0:
		return fmt.Errorf("%w: ball radius must be positive", ErrInvalid)
	case c.Ball.InitSpeed <= 0:
		return fmt.Errorf("%w: ball init speed must be positive", ErrInvalid)
	case c.Ball.SpeedIncrease < 1:
		return fmt.Errorf("%w: ball speed increase %.2f would slow the ball", ErrInvalid, c.Ball.SpeedIncrease)
	case c.Ball.SpeedCap < c.Ball.InitSpeed:
		return fmt.Errorf("%w: ball speed cap %.2f below init speed %.2f", ErrInvalid, c.Ball.SpeedCap, c.Ball.InitSpeed)
	case c.CollisionEpsilon < 0:
		return fmt.Errorf("%w: collision epsilon must not be negative", ErrInvalid)
	case c.MaxScore < 0:
		return fmt.Errorf("%w: max score must not be negative", ErrInvalid)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick rate must be positive", ErrInvalid)
	}
	return nil
}

// Load reads a YAML file over the defaults. Keys missing from the file keep
// their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// FromEnv applies PONG_* environment overrides on top of cfg.
func FromEnv(cfg Config) Config {
	cfg.Width = GetEnvInt("PONG_WIDTH", cfg.Width)
	cfg.Height = GetEnvInt("PONG_HEIGHT", cfg.Height)
	cfg.Paddle.Speed = GetEnvFloat("PONG_PADDLE_SPEED", cfg.Paddle.Speed)
	cfg.Ball.InitSpeed = GetEnvFloat("PONG_BALL_SPEED", cfg.Ball.InitSpeed)
	cfg.Ball.SpeedCap = GetEnvFloat("PONG_BALL_SPEED_CAP", cfg.Ball.SpeedCap)
	cfg.MaxScore = GetEnvInt("PONG_MAX_SCORE", cfg.MaxScore)
	cfg.TickRate = GetEnvInt("PONG_TICK_RATE", cfg.TickRate)
	cfg.Seed = int64(GetEnvInt("PONG_SEED", int(cfg.Seed)))
	return cfg
}

// Resolve builds the effective config: defaults, then the file named by
// PONG_CONFIG (if any), then environment overrides, then validation.
func Resolve() (Config, error) {
	cfg := Default()
	if path := GetEnv("PONG_CONFIG", ""); path != "" {
		loaded, err := Load(path)
		if err != nil {
			return cfg, err
		}
		cfg = loaded
	}
	cfg = FromEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
