// Package config provides configuration loading and management using koanf.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Default configuration values.
const (
	// DefaultServiceName names the service in logs, traces and metrics.
	DefaultServiceName = "proverb-service"

	// DefaultServerPort is the default HTTP server port.
	DefaultServerPort = 8080

	// DefaultMaxRequestSize is the default maximum request body size (1MB).
	DefaultMaxRequestSize = 1 << 20 // 1048576 bytes

	// DefaultMongoURI is used when neither MONGODB_URI nor mongo.uri is set.
	DefaultMongoURI = "mongodb://localhost:27017"

	// DefaultMongoDatabase is the database holding the proverbs collection.
	DefaultMongoDatabase = "proverbs"

	// DefaultMongoCollection is the collection holding proverb records.
	DefaultMongoCollection = "proverbs"

	// DefaultMongoMaxPoolSize bounds the driver connection pool.
	DefaultMongoMaxPoolSize = 10

	// DefaultMongoConnectTimeout bounds connection establishment.
	DefaultMongoConnectTimeout = 5 * time.Second

	// DefaultMongoSocketTimeout bounds individual socket reads and writes.
	DefaultMongoSocketTimeout = 5 * time.Second

	// DefaultCacheTTL is how long the cached proverb list lives.
	DefaultCacheTTL = 30 * time.Second

	// DefaultLogFileMaxSizeMB is the default max log file size in megabytes.
	DefaultLogFileMaxSizeMB = 100

	// DefaultLogFileMaxBackups is the default number of old log files to retain.
	DefaultLogFileMaxBackups = 3

	// DefaultLogFileMaxAgeDays is the default max days to retain old log files.
	DefaultLogFileMaxAgeDays = 28
)

// mongoURIEnv is the conventional connection string variable, honoured
// alongside APP_MONGO_URI.
const mongoURIEnv = "MONGODB_URI"

// Config is the root configuration structure.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Auth      AuthConfig      `koanf:"auth"`
	Mongo     MongoConfig     `koanf:"mongo"     validate:"required"`
	Cache     CacheConfig     `koanf:"cache"`
	Proverbs  ProverbsConfig  `koanf:"proverbs"`
}

// AppConfig contains application-level settings.
type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// IsProduction reports whether internal error details must be hidden from clients.
func (a *AppConfig) IsProduction() bool {
	return a != nil && a.Environment == "prod"
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"  validate:"required,min=1s"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig contains rolling log file settings.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"        validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"    validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"     validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

// TelemetryConfig contains OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
	Insecure     bool    `koanf:"insecure"`
}

// AuthConfig contains gateway-header authentication settings.
// When enabled, write operations require an authenticated subject and,
// if WriteRole is set, that role.
type AuthConfig struct {
	Enabled       bool   `koanf:"enabled"`
	SubjectHeader string `koanf:"subject_header" validate:"required_if=Enabled true"`
	RolesHeader   string `koanf:"roles_header"`
	WriteRole     string `koanf:"write_role"`
}

// MongoConfig contains persistence service settings.
type MongoConfig struct {
	URI            string        `koanf:"uri"             validate:"required,startswith=mongodb"`
	Database       string        `koanf:"database"        validate:"required"`
	Collection     string        `koanf:"collection"      validate:"required"`
	MaxPoolSize    uint64        `koanf:"max_pool_size"   validate:"required,min=1,max=500"`
	ConnectTimeout time.Duration `koanf:"connect_timeout" validate:"required,min=100ms"`
	SocketTimeout  time.Duration `koanf:"socket_timeout"  validate:"required,min=100ms"`
}

// CacheConfig contains settings for the optional Redis list cache.
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Addr     string        `koanf:"addr"     validate:"required_if=Enabled true,omitempty,hostname_port"`
	Password string        `koanf:"password"`
	DB       int           `koanf:"db"       validate:"min=0,max=15"`
	TTL      time.Duration `koanf:"ttl"      validate:"required_if=Enabled true,omitempty,min=1s"`
}

// ProverbsConfig contains record validation settings.
type ProverbsConfig struct {
	StrictSituations bool `koanf:"strict_situations"`
}

// defaults returns the default configuration values.
func defaults() map[string]any {
	return map[string]any{
		"app.name":        DefaultServiceName,
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "15s",
		"server.max_request_size": DefaultMaxRequestSize,

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  DefaultServiceName,
		"telemetry.sampling_rate": 1.0,
		"telemetry.insecure":      true,

		"auth.enabled":        false,
		"auth.subject_header": "X-User-ID",
		"auth.roles_header":   "X-User-Roles",
		"auth.write_role":     "",

		"mongo.uri":             DefaultMongoURI,
		"mongo.database":        DefaultMongoDatabase,
		"mongo.collection":      DefaultMongoCollection,
		"mongo.max_pool_size":   DefaultMongoMaxPoolSize,
		"mongo.connect_timeout": DefaultMongoConnectTimeout.String(),
		"mongo.socket_timeout":  DefaultMongoSocketTimeout.String(),

		"cache.enabled":  false,
		"cache.addr":     "localhost:6379",
		"cache.password": "",
		"cache.db":       0,
		"cache.ttl":      DefaultCacheTTL.String(),

		"proverbs.strict_situations": false,
	}
}

// Load loads configuration with the following precedence (highest to lowest):
//  1. Environment variables (APP_ prefix, plus MONGODB_URI)
//  2. Profile config file (configs/{profile}.yaml)
//  3. Base config file (configs/base.yaml)
//  4. Default values
func Load(profile string) (*Config, error) {
	k := koanf.New(".")

	// 1. Load defaults
	err := k.Load(confmap.Provider(defaults(), "."), nil)
	if err != nil {
		return nil, fmt.Errorf("loading defaults: %w", err)
	}

	// 2. Load base config file if it exists
	err = loadFileIfExists(k, "configs/base.yaml")
	if err != nil {
		return nil, fmt.Errorf("loading base config: %w", err)
	}

	// 3. Load profile config file if it exists
	if profile != "" {
		profilePath := fmt.Sprintf("configs/%s.yaml", profile)

		err := loadFileIfExists(k, profilePath)
		if err != nil {
			return nil, fmt.Errorf("loading profile config %q: %w", profile, err)
		}
	}

	// 4. MONGODB_URI, then APP_ variables so APP_MONGO_URI takes precedence
	err = k.Load(env.Provider(mongoURIEnv, ".", func(string) string {
		return "mongo.uri"
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", mongoURIEnv, err)
	}

	err = k.Load(env.Provider("APP_", ".", envKey), nil)
	if err != nil {
		return nil, fmt.Errorf("loading env vars: %w", err)
	}

	// Unmarshal into Config struct
	var cfg Config

	err = k.Unmarshal("", &cfg)
	if err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return &cfg, nil
}

// multiWordKeys lists config keys whose final segment contains underscores,
// so APP_MONGO_MAX_POOL_SIZE resolves to mongo.max_pool_size.
var multiWordKeys = []string{
	"server.read_timeout", "server.write_timeout", "server.idle_timeout",
	"server.shutdown_timeout", "server.request_timeout", "server.max_request_size",
	"log.file.max_size", "log.file.max_backups", "log.file.max_age",
	"telemetry.service_name", "telemetry.sampling_rate",
	"auth.subject_header", "auth.roles_header", "auth.write_role",
	"mongo.max_pool_size", "mongo.connect_timeout", "mongo.socket_timeout",
	"proverbs.strict_situations",
}

// envKey maps APP_SERVER_PORT to server.port.
func envKey(s string) string {
	key := strings.ToLower(strings.TrimPrefix(s, "APP_"))
	dotted := strings.ReplaceAll(key, "_", ".")

	for _, known := range multiWordKeys {
		if strings.ReplaceAll(known, "_", ".") == dotted {
			return known
		}
	}

	return dotted
}

// loadFileIfExists loads a YAML config file if it exists.
// Returns nil if the file doesn't exist, error only for parse/read failures.
func loadFileIfExists(k *koanf.Koanf, path string) error {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return k.Load(file.Provider(path), yaml.Parser())
}
