package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.App.Port)
	assert.True(t, cfg.App.IsDev())
	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, time.Hour, cfg.DB.ConnMaxLifetime)
	assert.Equal(t, 7*24*time.Hour, cfg.Session.TTL)
	assert.Equal(t, EventsDriverNone, cfg.Events.Driver)
	assert.False(t, cfg.OIDC.Enabled())
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("SESSION_SECRET", "test-secret")
	t.Setenv("APP_ENV", "prod")
	t.Setenv("DB_DRIVER", "SQLITE")
	t.Setenv("DATABASE_DSN", "file::memory:")
	t.Setenv("ADMIN_EMAILS", "root@example.com, ops@example.com ,")
	t.Setenv("EVENTS_DRIVER", "kafka")
	t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
	t.Setenv("SESSION_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.App.IsDev())
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, []string{"root@example.com", "ops@example.com"}, cfg.OIDC.AdminEmails)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.Events.KafkaBrokers)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{
			name: "missing session secret",
			env:  map[string]string{},
			want: "SESSION_SECRET",
		},
		{
			name: "unknown db driver",
			env:  map[string]string{"SESSION_SECRET": "s", "DB_DRIVER": "mysql"},
			want: "DB_DRIVER",
		},
		{
			name: "unknown events driver",
			env:  map[string]string{"SESSION_SECRET": "s", "EVENTS_DRIVER": "nats"},
			want: "EVENTS_DRIVER",
		},
		{
			name: "oidc without client id",
			env:  map[string]string{"SESSION_SECRET": "s", "OIDC_ISSUER_URL": "https://id.example.com"},
			want: "OIDC_CLIENT_ID",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SESSION_SECRET", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadDatabaseSkipsSessionSecret(t *testing.T) {
	t.Setenv("SESSION_SECRET", "")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DATABASE_DSN", "storefront.db")

	_, err := Load()
	require.Error(t, err)

	cfg, err := LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "storefront.db", cfg.DB.DSN)
}
