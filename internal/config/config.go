package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"

	"edgescroll/internal/gesture"
)

// Config holds application configuration.
type Config struct {
	Strategy StrategyConfig
	Gesture  GestureConfig
	Texts    TextsConfig
	Panel    PanelConfig
	Feed     FeedConfig
	Log      LogConfig
	// AuthoringMode disables both gestures, as when previewing a layout.
	AuthoringMode bool `mapstructure:"authoring_mode"`
}

// StrategyConfig selects the gesture strategy.
type StrategyConfig struct {
	Name   string
	Native bool
}

// GestureConfig tunes strategies. Rows are terminal rows.
type GestureConfig struct {
	Threshold    int
	BottomMargin int `mapstructure:"bottom_margin"`
	ReleaseStep  int `mapstructure:"release_step"`
	SettleMS     int `mapstructure:"settle_ms"`
	FrameMS      int `mapstructure:"frame_ms"`
}

// TextsConfig holds the pocket labels.
type TextsConfig struct {
	PullingDown string `mapstructure:"pulling_down"`
	PulledDown  string `mapstructure:"pulled_down"`
	Refreshing  string
	ReachBottom string `mapstructure:"reach_bottom"`
}

// PanelConfig controls the load panel overlay.
type PanelConfig struct {
	DelayMS int `mapstructure:"delay_ms"`
}

// FeedConfig shapes the demo content source.
type FeedConfig struct {
	PageSize  int `mapstructure:"page_size"`
	Pages     int
	LatencyMS int `mapstructure:"latency_ms"`
}

// LogConfig routes logs away from the terminal the TUI owns.
type LogConfig struct {
	File      string
	Verbosity int
}

// Settle is the idle window after which a pull is considered released.
func (g GestureConfig) Settle() time.Duration { return time.Duration(g.SettleMS) * time.Millisecond }

// Frame is the release animation step interval.
func (g GestureConfig) Frame() time.Duration { return time.Duration(g.FrameMS) * time.Millisecond }

func (p PanelConfig) Delay() time.Duration { return time.Duration(p.DelayMS) * time.Millisecond }

func (f FeedConfig) Latency() time.Duration { return time.Duration(f.LatencyMS) * time.Millisecond }

// StrategyName returns the configured strategy, falling back to the
// platform default when unset.
func (c Config) StrategyName() gesture.Name {
	if strings.TrimSpace(c.Strategy.Name) == "" {
		return gesture.DefaultFor(runtime.GOOS)
	}
	return gesture.Name(c.Strategy.Name)
}

// GestureOptions converts the tuning section for gesture strategies.
func (c Config) GestureOptions() gesture.Options {
	return gesture.Options{
		Threshold:    c.Gesture.Threshold,
		BottomMargin: c.Gesture.BottomMargin,
		ReleaseStep:  c.Gesture.ReleaseStep,
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("strategy.name", "")
	v.SetDefault("strategy.native", true)
	v.SetDefault("authoring_mode", false)
	v.SetDefault("gesture.threshold", 3)
	v.SetDefault("gesture.bottom_margin", 2)
	v.SetDefault("gesture.release_step", 1)
	v.SetDefault("gesture.settle_ms", 350)
	v.SetDefault("gesture.frame_ms", 60)
	v.SetDefault("texts.pulling_down", "Pull down to refresh...")
	v.SetDefault("texts.pulled_down", "Release to refresh...")
	v.SetDefault("texts.refreshing", "Refreshing...")
	v.SetDefault("texts.reach_bottom", "Loading...")
	v.SetDefault("panel.delay_ms", 400)
	v.SetDefault("feed.page_size", 20)
	v.SetDefault("feed.pages", 5)
	v.SetDefault("feed.latency_ms", 800)
	v.SetDefault("log.file", "")
	v.SetDefault("log.verbosity", 0)
}

// Default returns the built-in configuration.
func Default() Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	// defaults always decode
	_ = v.Unmarshal(&c)
	return c
}

// Load reads configuration from file and env. Env var overrides use prefix
// EDGESCROLL_. An explicit path must exist; the default location is optional.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.SetConfigType("toml")

	if path == "" {
		path = os.Getenv("EDGESCROLL_CONFIG")
	}
	explicit := path != ""
	if explicit {
		v.SetConfigFile(path)
	} else {
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "edgescroll"))
		}
		v.AddConfigPath(".")
		v.SetConfigName("edgescroll")
	}

	v.SetEnvPrefix("EDGESCROLL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate rejects an unknown strategy name and non-positive tuning.
func (c Config) Validate() error {
	if _, _, err := gesture.Select(c.StrategyName(), true); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Gesture.Threshold <= 0 {
		return fmt.Errorf("config: gesture.threshold must be positive, got %d", c.Gesture.Threshold)
	}
	if c.Feed.PageSize <= 0 {
		return fmt.Errorf("config: feed.page_size must be positive, got %d", c.Feed.PageSize)
	}
	return nil
}

// Save writes the provided config as TOML, creating the directory if needed.
func Save(path string, c Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}
	v := viper.New()
	v.SetConfigType("toml")
	v.Set("strategy.name", c.Strategy.Name)
	v.Set("strategy.native", c.Strategy.Native)
	v.Set("authoring_mode", c.AuthoringMode)
	v.Set("gesture.threshold", c.Gesture.Threshold)
	v.Set("gesture.bottom_margin", c.Gesture.BottomMargin)
	v.Set("gesture.release_step", c.Gesture.ReleaseStep)
	v.Set("gesture.settle_ms", c.Gesture.SettleMS)
	v.Set("gesture.frame_ms", c.Gesture.FrameMS)
	v.Set("texts.pulling_down", c.Texts.PullingDown)
	v.Set("texts.pulled_down", c.Texts.PulledDown)
	v.Set("texts.refreshing", c.Texts.Refreshing)
	v.Set("texts.reach_bottom", c.Texts.ReachBottom)
	v.Set("panel.delay_ms", c.Panel.DelayMS)
	v.Set("feed.page_size", c.Feed.PageSize)
	v.Set("feed.pages", c.Feed.Pages)
	v.Set("feed.latency_ms", c.Feed.LatencyMS)
	v.Set("log.file", c.Log.File)
	v.Set("log.verbosity", c.Log.Verbosity)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
