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

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stellarforge/actorlife/log"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "engine.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, log.InfoLevel, cfg.LogLevel())
	assert.True(t, cfg.Pool.Enabled)
	assert.True(t, cfg.Monitor.Enabled)
	assert.True(t, cfg.Optimizer.Enabled)
	assert.False(t, cfg.Persistence.Enabled)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "debug"

[pool]
max_size = 64

[monitor]
slow_init_threshold = "250ms"
max_active_actors = 50

[optimizer]
preferred_batch_size = 16
max_batch_size = 32

[persistence]
enabled = true
directory = "archives"
auto_archive = true
archive_interval = "1m"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, log.DebugLevel, cfg.LogLevel())
	assert.Equal(t, 64, cfg.Pool.MaxSize)
	assert.Equal(t, 250*time.Millisecond, cfg.MonitorConfig().SlowInitThreshold)
	assert.Equal(t, 50, cfg.MonitorConfig().MaxActiveActors)
	assert.Equal(t, 16, cfg.OptimizerConfig().PreferredBatchSize)
	assert.Equal(t, 32, cfg.OptimizerConfig().MaxBatchSize)
	assert.True(t, cfg.Persistence.Enabled)
	assert.Equal(t, time.Minute, cfg.PersistenceConfig().ArchiveInterval)

	// untouched sections keep their defaults
	assert.True(t, cfg.Monitor.Alerting)
	assert.Equal(t, 30*time.Second, cfg.MonitorConfig().ReportInterval)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, `
[monitor]
slow_boot_threshold = "1s"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")
}

func TestLoadRejectsBadDuration(t *testing.T) {
	path := writeConfig(t, `
[monitor]
report_interval = "soon"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid duration")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.Error(t, err)
}

func TestValidateRejections(t *testing.T) {
	t.Run("With bad log level", func(t *testing.T) {
		cfg := Default()
		cfg.Log.Level = "verbose"
		assert.Error(t, cfg.Validate())
	})
	t.Run("With non positive pool size", func(t *testing.T) {
		cfg := Default()
		cfg.Pool.MaxSize = 0
		assert.Error(t, cfg.Validate())
	})
	t.Run("With max batch below preferred", func(t *testing.T) {
		cfg := Default()
		cfg.Optimizer.PreferredBatchSize = 100
		cfg.Optimizer.MaxBatchSize = 10
		assert.Error(t, cfg.Validate())
	})
	t.Run("With file logging and no path", func(t *testing.T) {
		cfg := Default()
		cfg.Monitor.FileLogging = true
		cfg.Monitor.LogFilePath = ""
		assert.Error(t, cfg.Validate())
	})
	t.Run("With persistence and no directory", func(t *testing.T) {
		cfg := Default()
		cfg.Persistence.Enabled = true
		cfg.Persistence.Directory = ""
		assert.Error(t, cfg.Validate())
	})
	t.Run("With disabled sections", func(t *testing.T) {
		cfg := Default()
		cfg.Monitor.Enabled = false
		cfg.Monitor.MaxActiveActors = 0
		cfg.Optimizer.Enabled = false
		cfg.Optimizer.PreferredBatchSize = 0
		assert.NoError(t, cfg.Validate())
	})
}

func TestOptimizerConfigCarriesPooling(t *testing.T) {
	cfg := Default()
	cfg.Pool.Enabled = false
	cfg.Pool.MaxSize = 10

	mapped := cfg.OptimizerConfig()
	assert.False(t, mapped.EnablePooling)
	assert.Equal(t, 10, mapped.MaxPoolSize)
}
