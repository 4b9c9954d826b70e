package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_DefaultValues tests that hardcoded defaults are applied correctly.
// This test doesn't depend on YAML files - it only tests the defaults() function.
func TestLoad_DefaultValues(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultServiceName, cfg.App.Name)
	assert.Equal(t, "dev", cfg.App.Version)
	assert.Equal(t, "local", cfg.App.Environment)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.False(t, cfg.Proverbs.StrictSituations)
	require.NoError(t, cfg.Validate())
}

// TestLoad_EnvVarOverrides tests that environment variables override defaults.
func TestLoad_EnvVarOverrides(t *testing.T) {
	t.Setenv("APP_SERVER_PORT", "9090")
	t.Setenv("APP_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_MultiWordEnvVars(t *testing.T) {
	t.Setenv("APP_MONGO_MAX_POOL_SIZE", "25")
	t.Setenv("APP_SERVER_REQUEST_TIMEOUT", "3s")
	t.Setenv("APP_PROVERBS_STRICT_SITUATIONS", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, uint64(25), cfg.Mongo.MaxPoolSize)
	assert.Equal(t, 3*time.Second, cfg.Server.RequestTimeout)
	assert.True(t, cfg.Proverbs.StrictSituations)
}

func TestLoad_MongoURIFromConventionalEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://db.internal:27017")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.URI)
}

func TestLoad_AppMongoURIWinsOverConventionalEnv(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://from-conventional:27017")
	t.Setenv("APP_MONGO_URI", "mongodb://from-app:27017")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "mongodb://from-app:27017", cfg.Mongo.URI)
}

// TestLoad_DurationParsing tests that duration strings are parsed correctly.
func TestLoad_DurationParsing(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
	assert.Equal(t, 120*time.Second, cfg.Server.IdleTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, 15*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, DefaultMongoConnectTimeout, cfg.Mongo.ConnectTimeout)
	assert.Equal(t, DefaultMongoSocketTimeout, cfg.Mongo.SocketTimeout)
	assert.Equal(t, DefaultCacheTTL, cfg.Cache.TTL)
}

// TestLoad_NonExistentProfile tests that a missing profile file doesn't cause errors.
func TestLoad_NonExistentProfile(t *testing.T) {
	cfg, err := Load("nonexistent")
	require.NoError(t, err)

	assert.Equal(t, DefaultServiceName, cfg.App.Name)
}

// TestLoad_BoolEnvVar tests that boolean environment variables are parsed correctly.
func TestLoad_BoolEnvVar(t *testing.T) {
	t.Setenv("APP_TELEMETRY_ENABLED", "true")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Telemetry.Enabled)
}

func TestLoad_AuthDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Auth.Enabled)
	assert.Equal(t, "X-User-ID", cfg.Auth.SubjectHeader)
	assert.Equal(t, "X-User-Roles", cfg.Auth.RolesHeader)
	assert.Empty(t, cfg.Auth.WriteRole)
}

// TestLoad_LogFileDefaults tests that log file defaults are set correctly.
func TestLoad_LogFileDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, "./logs/app.log", cfg.Log.File.Path)
	assert.Equal(t, DefaultLogFileMaxSizeMB, cfg.Log.File.MaxSizeMB)
	assert.Equal(t, DefaultLogFileMaxBackups, cfg.Log.File.MaxBackups)
	assert.Equal(t, DefaultLogFileMaxAgeDays, cfg.Log.File.MaxAgeDays)
	assert.True(t, cfg.Log.File.Compress)
}

// TestLoad_TelemetryDefaults tests that telemetry defaults are set correctly.
func TestLoad_TelemetryDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Telemetry.Enabled)
	assert.Equal(t, DefaultServiceName, cfg.Telemetry.ServiceName)
	assert.Equal(t, 1.0, cfg.Telemetry.SamplingRate)
}

func TestLoad_MongoDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultMongoURI, cfg.Mongo.URI)
	assert.Equal(t, "proverbs", cfg.Mongo.Database)
	assert.Equal(t, "proverbs", cfg.Mongo.Collection)
	assert.Equal(t, uint64(DefaultMongoMaxPoolSize), cfg.Mongo.MaxPoolSize)
}

func TestLoad_CacheDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, "localhost:6379", cfg.Cache.Addr)
	assert.Equal(t, 0, cfg.Cache.DB)
}

// TestDefaults tests that the defaults map contains expected values.
func TestDefaults(t *testing.T) {
	d := defaults()

	assert.Equal(t, DefaultServiceName, d["app.name"])
	assert.Equal(t, "dev", d["app.version"])
	assert.Equal(t, "local", d["app.environment"])
	assert.Equal(t, DefaultServerPort, d["server.port"])
	assert.Equal(t, "0.0.0.0", d["server.host"])
	assert.Equal(t, "info", d["log.level"])
	assert.Equal(t, "json", d["log.format"])
	assert.Equal(t, DefaultMongoMaxPoolSize, d["mongo.max_pool_size"])
	assert.Equal(t, "5s", d["mongo.connect_timeout"])
}

func TestEnvKey(t *testing.T) {
	tests := []struct {
		env  string
		want string
	}{
		{"APP_SERVER_PORT", "server.port"},
		{"APP_LOG_FILE_ENABLED", "log.file.enabled"},
		{"APP_LOG_FILE_MAX_BACKUPS", "log.file.max_backups"},
		{"APP_MONGO_SOCKET_TIMEOUT", "mongo.socket_timeout"},
		{"APP_CACHE_TTL", "cache.ttl"},
		{"APP_AUTH_WRITE_ROLE", "auth.write_role"},
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			assert.Equal(t, tt.want, envKey(tt.env))
		})
	}
}

func TestAppConfig_IsProduction(t *testing.T) {
	assert.True(t, (&AppConfig{Environment: "prod"}).IsProduction())
	assert.False(t, (&AppConfig{Environment: "dev"}).IsProduction())

	var nilCfg *AppConfig
	assert.False(t, nilCfg.IsProduction())
}
