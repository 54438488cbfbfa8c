package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/redcobro-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("SCHEDULER_ENABLED", "false")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "redcobro", cfg.App.Name)
	assert.Equal(t, "America/Mexico_City", cfg.App.Timezone)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
	assert.False(t, cfg.Scheduler.Enabled)
	assert.False(t, cfg.Redis.Enabled(), "sin REDIS_ADDR se usa la caché en memoria")
	assert.Equal(t, 24*time.Hour, cfg.Billing.IdempotencyTTL())
	assert.Equal(t, 25, cfg.DB.MaxConns)
	assert.Equal(t, 5000, cfg.DB.LockTimeoutMS)
	assert.Equal(t, "info", cfg.App.LogLevel)
}

func TestLoad_ProductionSinSecret_Falla(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	_, err := config.Load()
	assert.Error(t, err)
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:w/rd", DBName: "redcobro", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aw%2Frd@db:5432/redcobro?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://otro"
	assert.Equal(t, "postgres://otro", c.ConnectionString())
}

func TestSchedulerConfig_IntervaloMinimo(t *testing.T) {
	assert.Equal(t, time.Minute, config.SchedulerConfig{IntervalMinutes: 0}.Interval())
	assert.Equal(t, 15*time.Minute, config.SchedulerConfig{IntervalMinutes: 15}.Interval())
}
