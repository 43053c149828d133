/*
 * MIT License
 *
 * Copyright (c) 2024-2026 StellarForge
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in all
 * copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 */

// Package config loads the engine configuration from TOML files.
package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/stellarforge/actorlife/log"
	"github.com/stellarforge/actorlife/monitor"
	"github.com/stellarforge/actorlife/optimizer"
	"github.com/stellarforge/actorlife/persistence"
)

// Duration is a time.Duration that decodes from TOML strings such as
// "500ms" or "1m30s".
type Duration time.Duration

var _ toml.Unmarshaler = (*Duration)(nil)

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Duration) UnmarshalTOML(value any) error {
	text, ok := value.(string)
	if !ok {
		return fmt.Errorf("duration must be a string, got %T", value)
	}
	parsed, err := time.ParseDuration(text)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Log configures the engine logger.
type Log struct {
	// Level is one of debug, info, warning, error, panic or fatal.
	Level string `toml:"level"`
}

// Pool configures lifecycle context pooling.
type Pool struct {
	Enabled bool `toml:"enabled"`
	MaxSize int  `toml:"max_size"`
}

// Monitor configures the lifecycle monitor.
type Monitor struct {
	Enabled                   bool     `toml:"enabled"`
	RealTime                  bool     `toml:"real_time"`
	PeriodicReports           bool     `toml:"periodic_reports"`
	Alerting                  bool     `toml:"alerting"`
	FileLogging               bool     `toml:"file_logging"`
	ReportInterval            Duration `toml:"report_interval"`
	SlowInitThreshold         Duration `toml:"slow_init_threshold"`
	SlowActiveThreshold       Duration `toml:"slow_active_threshold"`
	HighCreationRateThreshold int      `toml:"high_creation_rate_threshold"`
	MaxActiveActors           int      `toml:"max_active_actors"`
	LogFilePath               string   `toml:"log_file_path"`
}

// Optimizer configures the performance optimizer.
type Optimizer struct {
	Enabled                    bool     `toml:"enabled"`
	EnableBatching             bool     `toml:"enable_batching"`
	EnableParallel             bool     `toml:"enable_parallel"`
	EnableMonitoring           bool     `toml:"enable_monitoring"`
	PreferredBatchSize         int      `toml:"preferred_batch_size"`
	MaxBatchSize               int      `toml:"max_batch_size"`
	BatchTimeout               Duration `toml:"batch_timeout"`
	TargetTransitionsPerSecond float64  `toml:"target_transitions_per_second"`
	MemoryWarningThresholdMB   float64  `toml:"memory_warning_threshold_mb"`
}

// Analytics configures the analytics collector.
type Analytics struct {
	Enabled bool `toml:"enabled"`
}

// Persistence configures the analytics archiver.
type Persistence struct {
	Enabled         bool     `toml:"enabled"`
	Directory       string   `toml:"directory"`
	MaxArchives     int      `toml:"max_archives"`
	AutoArchive     bool     `toml:"auto_archive"`
	ArchiveInterval Duration `toml:"archive_interval"`
	FinalExport     bool     `toml:"final_export"`
}

// Config is the full engine configuration.
type Config struct {
	Log         Log         `toml:"log"`
	Pool        Pool        `toml:"pool"`
	Monitor     Monitor     `toml:"monitor"`
	Optimizer   Optimizer   `toml:"optimizer"`
	Analytics   Analytics   `toml:"analytics"`
	Persistence Persistence `toml:"persistence"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	monitorDefaults := monitor.DefaultConfig()
	optimizerDefaults := optimizer.DefaultConfig()
	persistenceDefaults := persistence.DefaultConfig()
	return Config{
		Log: Log{Level: "info"},
		Pool: Pool{
			Enabled: true,
			MaxSize: optimizerDefaults.MaxPoolSize,
		},
		Monitor: Monitor{
			Enabled:                   true,
			RealTime:                  monitorDefaults.RealTime,
			PeriodicReports:           monitorDefaults.PeriodicReports,
			Alerting:                  monitorDefaults.Alerting,
			FileLogging:               monitorDefaults.FileLogging,
			ReportInterval:            Duration(monitorDefaults.ReportInterval),
			SlowInitThreshold:         Duration(monitorDefaults.SlowInitThreshold),
			SlowActiveThreshold:       Duration(monitorDefaults.SlowActiveThreshold),
			HighCreationRateThreshold: monitorDefaults.HighCreationRateThreshold,
			MaxActiveActors:           monitorDefaults.MaxActiveActors,
			LogFilePath:               monitorDefaults.LogFilePath,
		},
		Optimizer: Optimizer{
			Enabled:                    true,
			EnableBatching:             optimizerDefaults.EnableBatching,
			EnableParallel:             optimizerDefaults.EnableParallel,
			EnableMonitoring:           optimizerDefaults.EnableMonitoring,
			PreferredBatchSize:         optimizerDefaults.PreferredBatchSize,
			MaxBatchSize:               optimizerDefaults.MaxBatchSize,
			BatchTimeout:               Duration(optimizerDefaults.BatchTimeout),
			TargetTransitionsPerSecond: optimizerDefaults.TargetTransitionsPerSecond,
			MemoryWarningThresholdMB:   optimizerDefaults.MemoryWarningThresholdMB,
		},
		Analytics: Analytics{Enabled: true},
		Persistence: Persistence{
			Enabled:         false,
			Directory:       persistenceDefaults.Directory,
			MaxArchives:     persistenceDefaults.MaxArchives,
			AutoArchive:     persistenceDefaults.AutoArchive,
			ArchiveInterval: Duration(persistenceDefaults.ArchiveInterval),
			FinalExport:     persistenceDefaults.FinalExport,
		},
	}
}

// Load reads a TOML file on top of the defaults. Keys absent from the
// file keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to load config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("unknown config key %q in %s", undecoded[0].String(), path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks cross-field consistency.
func (c Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Pool.Enabled && c.Pool.MaxSize <= 0 {
		return fmt.Errorf("pool.max_size must be positive, got %d", c.Pool.MaxSize)
	}
	if c.Monitor.Enabled {
		if c.Monitor.PeriodicReports && c.Monitor.ReportInterval <= 0 {
			return fmt.Errorf("monitor.report_interval must be positive")
		}
		if c.Monitor.HighCreationRateThreshold < 0 {
			return fmt.Errorf("monitor.high_creation_rate_threshold cannot be negative")
		}
		if c.Monitor.MaxActiveActors <= 0 {
			return fmt.Errorf("monitor.max_active_actors must be positive")
		}
		if c.Monitor.FileLogging && c.Monitor.LogFilePath == "" {
			return fmt.Errorf("monitor.log_file_path is required when file logging is on")
		}
	}
	if c.Optimizer.Enabled {
		if c.Optimizer.PreferredBatchSize <= 0 {
			return fmt.Errorf("optimizer.preferred_batch_size must be positive")
		}
		if c.Optimizer.MaxBatchSize < c.Optimizer.PreferredBatchSize {
			return fmt.Errorf("optimizer.max_batch_size cannot be below the preferred batch size")
		}
		if c.Optimizer.BatchTimeout <= 0 {
			return fmt.Errorf("optimizer.batch_timeout must be positive")
		}
	}
	if c.Persistence.Enabled {
		if c.Persistence.Directory == "" {
			return fmt.Errorf("persistence.directory is required")
		}
		if c.Persistence.AutoArchive && c.Persistence.ArchiveInterval <= 0 {
			return fmt.Errorf("persistence.archive_interval must be positive")
		}
	}
	return nil
}

// LogLevel returns the parsed logger level.
func (c Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// MonitorConfig maps the monitor section onto the monitor package
// config.
func (c Config) MonitorConfig() monitor.Config {
	return monitor.Config{
		RealTime:                  c.Monitor.RealTime,
		PeriodicReports:           c.Monitor.PeriodicReports,
		Alerting:                  c.Monitor.Alerting,
		FileLogging:               c.Monitor.FileLogging,
		ReportInterval:            c.Monitor.ReportInterval.Std(),
		SlowInitThreshold:         c.Monitor.SlowInitThreshold.Std(),
		SlowActiveThreshold:       c.Monitor.SlowActiveThreshold.Std(),
		HighCreationRateThreshold: c.Monitor.HighCreationRateThreshold,
		MaxActiveActors:           c.Monitor.MaxActiveActors,
		LogFilePath:               c.Monitor.LogFilePath,
	}
}

// OptimizerConfig maps the optimizer section onto the optimizer package
// config.
func (c Config) OptimizerConfig() optimizer.Config {
	return optimizer.Config{
		EnableBatching:             c.Optimizer.EnableBatching,
		EnableParallel:             c.Optimizer.EnableParallel,
		EnablePooling:              c.Pool.Enabled,
		EnableMonitoring:           c.Optimizer.EnableMonitoring,
		PreferredBatchSize:         c.Optimizer.PreferredBatchSize,
		MaxBatchSize:               c.Optimizer.MaxBatchSize,
		BatchTimeout:               c.Optimizer.BatchTimeout.Std(),
		MaxPoolSize:                c.Pool.MaxSize,
		TargetTransitionsPerSecond: c.Optimizer.TargetTransitionsPerSecond,
		MemoryWarningThresholdMB:   c.Optimizer.MemoryWarningThresholdMB,
	}
}

// PersistenceConfig maps the persistence section onto the persistence
// package config.
func (c Config) PersistenceConfig() persistence.Config {
	return persistence.Config{
		Directory:       c.Persistence.Directory,
		MaxArchives:     c.Persistence.MaxArchives,
		AutoArchive:     c.Persistence.AutoArchive,
		ArchiveInterval: c.Persistence.ArchiveInterval.Std(),
		FinalExport:     c.Persistence.FinalExport,
	}
}
