//go:build unit
// +build unit

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const loggerYAML = `
logger:
  log_level: debug
  log_type: console
  max_size: 20
  max_backups: 5
  max_age: 14
`

func TestLoadLoggerFromYAML(t *testing.T) {
	t.Setenv("JWT_SECRET", testSecret)

	cfg, err := Load(writeConfig(t, loggerYAML), ServiceCommunity)
	require.NoError(t, err)

	assert.Equal(t, LogLevelDebug, cfg.Logger.LogLevel)
	assert.Equal(t, LogTypeConsole, cfg.Logger.LogType)
	assert.Empty(t, cfg.Logger.FilePath)
}

func TestLoadLoggerEnvOverridesYAML(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "community.log")
	t.Setenv("JWT_SECRET", testSecret)
	t.Setenv("LOG_LEVEL", LogLevelCritical)
	t.Setenv("LOG_TYPE", LogTypeFile)
	t.Setenv("LOG_FILE", logFile)

	cfg, err := Load(writeConfig(t, loggerYAML), ServiceCommunity)
	require.NoError(t, err)

	assert.Equal(t, LogLevelCritical, cfg.Logger.LogLevel)
	assert.Equal(t, LogTypeFile, cfg.Logger.LogType)
	assert.Equal(t, logFile, cfg.Logger.FilePath)
	// rotation has no env override and keeps the yaml values
	assert.Equal(t, 20, cfg.Logger.MaxSize)
	assert.Equal(t, 5, cfg.Logger.MaxBackups)
	assert.Equal(t, 14, cfg.Logger.MaxAge)
}

func TestLoadLoggerRejectsBadOverrides(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		env  map[string]string
	}{
		{
			name: "unknown level",
			yaml: loggerYAML,
			env:  map[string]string{"LOG_LEVEL": "verbose"},
		},
		{
			name: "unknown type",
			yaml: loggerYAML,
			env:  map[string]string{"LOG_TYPE": "syslog"},
		},
		{
			name: "file logger without a path",
			yaml: loggerYAML,
			env:  map[string]string{"LOG_TYPE": LogTypeFile},
		},
		{
			name: "file logger without rotation",
			yaml: "logger:\n  log_level: info\n  log_type: console\n",
			env:  map[string]string{"LOG_TYPE": LogTypeFile, "LOG_FILE": "/var/log/hub/community.log"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("JWT_SECRET", testSecret)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(writeConfig(t, tt.yaml), ServiceCommunity)
			assert.Error(t, err)
		})
	}
}

func TestLoggerSettingsRotationBounds(t *testing.T) {
	valid := func() *LoggerSettings {
		return &LoggerSettings{
			LogLevel:   LogLevelWarning,
			LogType:    LogTypeFile,
			FilePath:   "/var/log/hub/business.log",
			MaxSize:    100,
			MaxBackups: 10,
			MaxAge:     365,
		}
	}
	require.NoError(t, valid().Validate())

	tooManyBackups := valid()
	tooManyBackups.MaxBackups = 11
	assert.ErrorContains(t, tooManyBackups.Validate(), "max backups")

	tooOld := valid()
	tooOld.MaxAge = 366
	assert.ErrorContains(t, tooOld.Validate(), "max age")

	// console loggers never look at rotation
	console := valid()
	console.LogType = LogTypeConsole
	console.MaxSize = 0
	assert.NoError(t, console.Validate())
}
