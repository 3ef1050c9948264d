package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all harness configuration: the builder's own tunables
// plus the ambient telemetry and logging concerns.
type Config struct {
	Build     BuildConfig
	Telemetry TelemetryConfig
	Logging   LoggingConfig
}

// BuildConfig controls one Generate call (spec §4.5/§6's -v/-scale/
// -no-parallel flags, plus the seed and worker count the CLI doesn't
// expose directly but the config layer still owns).
type BuildConfig struct {
	VoxelDensity    float64 // default 0.2
	ResolutionScale float64 // default 1.0
	Parallel        bool    // default true
	Seed            int64
	NumWorkers      int
}

// TelemetryConfig controls the optional /metrics and /healthz server.
type TelemetryConfig struct {
	Enabled         bool
	Addr            string        // host:port to listen on
	ShutdownTimeout time.Duration // graceful shutdown budget
}

// LoggingConfig controls the structured logger and the degenerate-
// triangle diagnostic throttle.
type LoggingConfig struct {
	Level                string  // DEBUG/INFO/WARN/ERROR
	DiagnosticRatePerSec float64 // degenerate-triangle log lines/sec
	DiagnosticBurst      int
}

// Default returns the harness's documented flag defaults.
func Default() *Config {
	return &Config{
		Build: BuildConfig{
			VoxelDensity:    0.2,
			ResolutionScale: 1.0,
			Parallel:        true,
			Seed:            1,
			NumWorkers:      8,
		},
		Telemetry: TelemetryConfig{
			Enabled:         false,
			Addr:            "0.0.0.0:9090",
			ShutdownTimeout: 10 * time.Second,
		},
		Logging: LoggingConfig{
			Level:                "INFO",
			DiagnosticRatePerSec: 5,
			DiagnosticBurst:      10,
		},
	}
}

// LoadFromEnv loads configuration from SDFBAKE_* environment variables,
// falling back to Default() for anything unset or malformed.
func LoadFromEnv() *Config {
	cfg := Default()

	if v := os.Getenv("SDFBAKE_VOXEL_DENSITY"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Build.VoxelDensity = f
		}
	}
	if v := os.Getenv("SDFBAKE_RESOLUTION_SCALE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Build.ResolutionScale = f
		}
	}
	if v := os.Getenv("SDFBAKE_PARALLEL"); v == "false" {
		cfg.Build.Parallel = false
	}
	if v := os.Getenv("SDFBAKE_SEED"); v != "" {
		if s, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.Build.Seed = s
		}
	}
	if v := os.Getenv("SDFBAKE_NUM_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Build.NumWorkers = n
		}
	}

	if v := os.Getenv("SDFBAKE_METRICS_ENABLED"); v == "true" {
		cfg.Telemetry.Enabled = true
	}
	if v := os.Getenv("SDFBAKE_METRICS_ADDR"); v != "" {
		cfg.Telemetry.Addr = v
	}
	if v := os.Getenv("SDFBAKE_SHUTDOWN_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Telemetry.ShutdownTimeout = d
		}
	}

	if v := os.Getenv("SDFBAKE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("SDFBAKE_DIAGNOSTIC_RATE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Logging.DiagnosticRatePerSec = f
		}
	}
	if v := os.Getenv("SDFBAKE_DIAGNOSTIC_BURST"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Logging.DiagnosticBurst = n
		}
	}

	return cfg
}

// Validate checks the configuration for values the builder or telemetry
// server cannot sensibly run with.
func (c *Config) Validate() error {
	if c.Build.VoxelDensity <= 0 {
		return fmt.Errorf("invalid voxel density: %v (must be > 0)", c.Build.VoxelDensity)
	}
	if c.Build.NumWorkers < 0 {
		return fmt.Errorf("invalid worker count: %d (must be >= 0)", c.Build.NumWorkers)
	}
	if c.Telemetry.Enabled && c.Telemetry.Addr == "" {
		return fmt.Errorf("metrics enabled but no listen address configured")
	}
	return nil
}
