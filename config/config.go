// Package config loads tool settings from defaults, an optional TOML file and
// RSQRT_* environment variables, in increasing order of precedence.
package config

import (
	"math"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"github.com/xyproto/env/v2"

	"github.com/AnnTaiwan/computer-arch/harness"
	"github.com/AnnTaiwan/computer-arch/loudness"
	"github.com/AnnTaiwan/computer-arch/statsview"
)

// Contention settings for the false sharing demo
type Contention struct {
	Workers    int    `toml:"workers"`
	Iterations uint64 `toml:"iterations"`
	Pin        bool   `toml:"pin"`
}

// Loudness settings for the normaliser
type Loudness struct {
	Target int `toml:"target"`
}

// Config holds every tool's settings
type Config struct {
	Iterations int              `toml:"iterations"`
	SweepLo    uint32           `toml:"sweep_lo"`
	SweepHi    uint32           `toml:"sweep_hi"`
	SweepStep  uint32           `toml:"sweep_step"`
	Chart      string           `toml:"chart"`
	StatsView  bool             `toml:"statsview"`
	StatsAddr  string           `toml:"statsview_addr"`
	Vectors    []harness.Vector `toml:"vectors"`

	Contention Contention `toml:"contention"`
	Loudness   Loudness   `toml:"loudness"`
}

// Default returns the built-in configuration
func Default() *Config {
	return &Config{
		Iterations: 10_000_000,
		SweepLo:    1,
		SweepHi:    1 << 16,
		SweepStep:  1,
		StatsAddr:  statsview.DefaultAddr,
		Vectors:    harness.ReferenceVectors(),
		Contention: Contention{
			Workers:    2,
			Iterations: 100_000_000,
		},
		Loudness: Loudness{Target: loudness.DefaultTarget},
	}
}

// Load reads path when non-empty, applies environment overrides and validates the result
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		md, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, errors.Wrapf(err, "config: decode %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.Errorf("config: unknown key %q in %s", undecoded[0].String(), path)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	var err error
	set := func(name string, lo, hi int64, apply func(int64)) {
		if err != nil || !env.Has(name) {
			return
		}
		var v int64
		if v, err = envInt(name, lo, hi); err == nil {
			apply(v)
		}
	}

	set("RSQRT_ITERATIONS", 1, math.MaxInt32, func(v int64) { cfg.Iterations = int(v) })
	set("RSQRT_SWEEP_LO", 0, math.MaxUint32, func(v int64) { cfg.SweepLo = uint32(v) })
	set("RSQRT_SWEEP_HI", 0, math.MaxUint32, func(v int64) { cfg.SweepHi = uint32(v) })
	set("RSQRT_SWEEP_STEP", 1, math.MaxUint32, func(v int64) { cfg.SweepStep = uint32(v) })
	set("RSQRT_WORKERS", 1, math.MaxInt32, func(v int64) { cfg.Contention.Workers = int(v) })
	set("RSQRT_CONTENTION_ITERATIONS", 1, math.MaxInt64, func(v int64) { cfg.Contention.Iterations = uint64(v) })
	set("RSQRT_TARGET_RMS", 1, loudness.FullScale, func(v int64) { cfg.Loudness.Target = int(v) })
	if err != nil {
		return err
	}

	cfg.Chart = env.Str("RSQRT_CHART", cfg.Chart)
	cfg.StatsAddr = env.Str("RSQRT_STATSVIEW_ADDR", cfg.StatsAddr)
	if env.Has("RSQRT_STATSVIEW") {
		cfg.StatsView = env.Bool("RSQRT_STATSVIEW")
	}
	if env.Has("RSQRT_PIN") {
		cfg.Contention.Pin = env.Bool("RSQRT_PIN")
	}
	return nil
}

// envInt parses name as a base 10 integer inside [lo, hi]
func envInt(name string, lo, hi int64) (int64, error) {
	raw := strings.TrimSpace(env.Str(name))
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.Wrapf(err, "config: %s", name)
	}
	if v < lo || v > hi {
		return 0, errors.Errorf("config: %s=%d outside [%d, %d]", name, v, lo, hi)
	}
	return v, nil
}

// Validate checks ranges that the tools rely on
func (c *Config) Validate() error {
	if c.Iterations <= 0 {
		return errors.Errorf("config: iterations must be positive, got %d", c.Iterations)
	}
	if c.SweepHi < c.SweepLo {
		return errors.Errorf("config: sweep_hi %d below sweep_lo %d", c.SweepHi, c.SweepLo)
	}
	if c.SweepStep == 0 {
		return errors.New("config: sweep_step must be positive")
	}
	for i, v := range c.Vectors {
		if v.Exact10 == 0 {
			return errors.Errorf("config: vector %d (in=%d) has zero exact10", i, v.In)
		}
	}
	if c.Contention.Workers <= 0 {
		return errors.Errorf("config: contention workers must be positive, got %d", c.Contention.Workers)
	}
	if c.Loudness.Target <= 0 || c.Loudness.Target > loudness.FullScale {
		return errors.Errorf("config: loudness target %d outside (0, %d]", c.Loudness.Target, loudness.FullScale)
	}
	return nil
}
