package config_test

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/pocket/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, slog.LevelInfo, cfg.App.LogLevel)
	assert.Equal(t, 30*time.Second, cfg.Scheduler.PollInterval)
	assert.Equal(t, time.Minute, cfg.Scheduler.MisfireThreshold)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Empty(t, cfg.AMQP.URL)
	assert.Empty(t, cfg.Auth.JWTSecret)
	assert.Equal(t, "postgres://postgres:@localhost:5432/pocket?sslmode=disable", cfg.ConnectionString())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("SCHEDULER_POLL_INTERVAL", "5s")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("DB_NAME", "ledger")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, slog.LevelDebug, cfg.App.LogLevel)
	assert.Equal(t, 5*time.Second, cfg.Scheduler.PollInterval)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
	assert.Contains(t, cfg.ConnectionString(), "/ledger?")
}

func TestLoad_SchedulerValidation(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "ZeroPollInterval",
			env:     map[string]string{"SCHEDULER_POLL_INTERVAL": "0s"},
			wantErr: "SCHEDULER_POLL_INTERVAL",
		},
		{
			name:    "ThresholdBelowPollInterval",
			env:     map[string]string{"SCHEDULER_POLL_INTERVAL": "30s", "SCHEDULER_MISFIRE_THRESHOLD": "10s"},
			wantErr: "SCHEDULER_MISFIRE_THRESHOLD",
		},
		{
			name:    "DefaultThresholdBelowSlowPolling",
			env:     map[string]string{"SCHEDULER_POLL_INTERVAL": "5m"},
			wantErr: "SCHEDULER_MISFIRE_THRESHOLD",
		},
		{
			name: "ThresholdEqualToPollInterval",
			env:  map[string]string{"SCHEDULER_POLL_INTERVAL": "1m", "SCHEDULER_MISFIRE_THRESHOLD": "1m"},
		},
		{
			name:    "ZeroBatchSize",
			env:     map[string]string{"SCHEDULER_BATCH_SIZE": "0"},
			wantErr: "SCHEDULER_BATCH_SIZE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
