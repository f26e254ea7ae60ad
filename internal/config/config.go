// AngelaMos | 2026
// config.go

package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

type Config struct {
	App       AppConfig       `koanf:"app"`
	Server    ServerConfig    `koanf:"server"`
	Mongo     MongoConfig     `koanf:"mongo"`
	Ledger    DatabaseConfig  `koanf:"ledger"`
	Redis     RedisConfig     `koanf:"redis"`
	JWT       JWTConfig       `koanf:"jwt"`
	Payment   PaymentConfig   `koanf:"payment"`
	API       APIConfig       `koanf:"api"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	CORS      CORSConfig      `koanf:"cors"`
	Log       LogConfig       `koanf:"log"`
	Otel      OtelConfig      `koanf:"otel"`
}

type AppConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	MaxBodyBytes    int64         `koanf:"max_body_bytes"`
}

type MongoConfig struct {
	URI            string        `koanf:"uri"`
	Database       string        `koanf:"database"`
	MaxPoolSize    uint64        `koanf:"max_pool_size"`
	ConnectTimeout time.Duration `koanf:"connect_timeout"`
}

// DatabaseConfig describes the relational payment ledger. An empty URL
// disables the ledger.
type DatabaseConfig struct {
	URL             string        `koanf:"url"`
	MaxOpenConns    int           `koanf:"max_open_conns"`
	MaxIdleConns    int           `koanf:"max_idle_conns"`
	ConnMaxLifetime time.Duration `koanf:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `koanf:"conn_max_idle_time"`
}

type RedisConfig struct {
	URL          string `koanf:"url"`
	PoolSize     int    `koanf:"pool_size"`
	MinIdleConns int    `koanf:"min_idle_conns"`
}

type JWTConfig struct {
	PrivateKeyPath string        `koanf:"private_key_path"`
	PublicKeyPath  string        `koanf:"public_key_path"`
	TokenExpire    time.Duration `koanf:"token_expire"`
	Issuer         string        `koanf:"issuer"`
	Audience       string        `koanf:"audience"`
}

type PaymentConfig struct {
	Environment        string        `koanf:"environment"`
	MerchantID         string        `koanf:"merchant_id"`
	PublicKey          string        `koanf:"public_key"`
	PrivateKey         string        `koanf:"private_key"`
	RepriceFromCatalog bool          `koanf:"reprice_from_catalog"`
	BreakerFailures    uint32        `koanf:"breaker_failures"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout"`
	RequestTimeout     time.Duration `koanf:"request_timeout"`
}

type APIConfig struct {
	// ExposeErrorDetails serializes downstream error text into the
	// "error" field of failure responses. Compatibility only.
	ExposeErrorDetails bool `koanf:"expose_error_details"`
}

// RateLimitConfig sizes the general bucket. Credential and checkout
// endpoints get their own, smaller budgets per window.
type RateLimitConfig struct {
	Requests         int           `koanf:"requests"`
	Window           time.Duration `koanf:"window"`
	Burst            int           `koanf:"burst"`
	AuthRequests     int           `koanf:"auth_requests"`
	CheckoutRequests int           `koanf:"checkout_requests"`
}

type CORSConfig struct {
	AllowedOrigins   []string `koanf:"allowed_origins"`
	AllowedMethods   []string `koanf:"allowed_methods"`
	AllowedHeaders   []string `koanf:"allowed_headers"`
	AllowCredentials bool     `koanf:"allow_credentials"`
	MaxAge           int      `koanf:"max_age"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

type OtelConfig struct {
	Endpoint    string  `koanf:"endpoint"`
	ServiceName string  `koanf:"service_name"`
	Enabled     bool    `koanf:"enabled"`
	Insecure    bool    `koanf:"insecure"`
	SampleRate  float64 `koanf:"sample_rate"`
}

var (
	cfg  *Config
	once sync.Once
)

func Load(configPath string) (*Config, error) {
	var loadErr error

	once.Do(func() {
		cfg, loadErr = load(configPath)
	})

	if loadErr != nil {
		return nil, loadErr
	}

	return cfg, nil
}

func load(configPath string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	if configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKeyReplacer), nil); err != nil {
		return nil, fmt.Errorf("load env vars: %w", err)
	}

	c := &Config{}
	if err := k.Unmarshal("", c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validate(c); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return c, nil
}

func Get() *Config {
	if cfg == nil {
		panic("config not loaded: call Load() first")
	}
	return cfg
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"app.name":        "Storefront",
		"app.version":     "1.0.0",
		"app.environment": "development",

		"server.host":             "0.0.0.0",
		"server.port":             8080,
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "15s",
		"server.max_body_bytes":   4 << 20,

		"mongo.database":        "ecommerce",
		"mongo.max_pool_size":   50,
		"mongo.connect_timeout": "10s",

		"ledger.max_open_conns":     10,
		"ledger.max_idle_conns":     2,
		"ledger.conn_max_lifetime":  "1h",
		"ledger.conn_max_idle_time": "30m",

		"redis.pool_size":      10,
		"redis.min_idle_conns": 5,

		"jwt.token_expire":     "168h",
		"jwt.issuer":           "storefront",
		"jwt.audience":         "storefront-api",
		"jwt.private_key_path": "keys/private.pem",
		"jwt.public_key_path":  "keys/public.pem",

		"payment.environment":          "sandbox",
		"payment.reprice_from_catalog": false,
		"payment.breaker_failures":     5,
		"payment.breaker_timeout":      "30s",
		"payment.request_timeout":      "20s",

		"api.expose_error_details": false,

		"rate_limit.requests":          100,
		"rate_limit.window":            "1m",
		"rate_limit.burst":             20,
		"rate_limit.auth_requests":     10,
		"rate_limit.checkout_requests": 5,

		"cors.allowed_origins": []string{"http://localhost:3000"},
		"cors.allowed_methods": []string{
			"GET",
			"POST",
			"PUT",
			"PATCH",
			"DELETE",
			"OPTIONS",
		},
		"cors.allowed_headers": []string{
			"Accept",
			"Authorization",
			"Content-Type",
			"X-Request-ID",
		},
		"cors.allow_credentials": true,
		"cors.max_age":           300,

		"log.level":  "info",
		"log.format": "json",

		"otel.enabled":      false,
		"otel.insecure":     true,
		"otel.sample_rate":  0.1,
		"otel.service_name": "storefront",
	}

	for key, value := range defaults {
		if err := k.Set(key, value); err != nil {
			return fmt.Errorf("set default %s: %w", key, err)
		}
	}

	return nil
}

var envKeyMap = map[string]string{
	"MONGO_URL":                    "mongo.uri",
	"MONGO_URI":                    "mongo.uri",
	"MONGO_DATABASE":               "mongo.database",
	"LEDGER_DATABASE_URL":          "ledger.url",
	"REDIS_URL":                    "redis.url",
	"ENVIRONMENT":                  "app.environment",
	"HOST":                         "server.host",
	"PORT":                         "server.port",
	"LOG_LEVEL":                    "log.level",
	"LOG_FORMAT":                   "log.format",
	"JWT_PRIVATE_KEY_PATH":         "jwt.private_key_path",
	"JWT_PUBLIC_KEY_PATH":          "jwt.public_key_path",
	"JWT_TOKEN_EXPIRE":             "jwt.token_expire",
	"JWT_ISSUER":                   "jwt.issuer",
	"JWT_AUDIENCE":                 "jwt.audience",
	"BRAINTREE_ENVIRONMENT":        "payment.environment",
	"BRAINTREE_MERCHANT_ID":        "payment.merchant_id",
	"BRAINTREE_PUBLIC_KEY":         "payment.public_key",
	"BRAINTREE_PRIVATE_KEY":        "payment.private_key",
	"PAYMENT_REPRICE_FROM_CATALOG": "payment.reprice_from_catalog",
	"API_EXPOSE_ERROR_DETAILS":     "api.expose_error_details",
	"RATE_LIMIT_REQUESTS":          "rate_limit.requests",
	"RATE_LIMIT_WINDOW":            "rate_limit.window",
	"RATE_LIMIT_BURST":             "rate_limit.burst",
	"RATE_LIMIT_AUTH_REQUESTS":     "rate_limit.auth_requests",
	"RATE_LIMIT_CHECKOUT_REQUESTS": "rate_limit.checkout_requests",
	"OTEL_ENDPOINT":                "otel.endpoint",
	"OTEL_EXPORTER_OTLP_ENDPOINT":  "otel.endpoint",
	"OTEL_SERVICE_NAME":            "otel.service_name",
	"OTEL_ENABLED":                 "otel.enabled",
	"OTEL_INSECURE":                "otel.insecure",
	"OTEL_SAMPLE_RATE":             "otel.sample_rate",
}

func envKeyReplacer(s string) string {
	if mapped, ok := envKeyMap[s]; ok {
		return mapped
	}
	return ""
}

func validate(c *Config) error {
	if c.Mongo.URI == "" {
		return fmt.Errorf("MONGO_URL is required")
	}

	if c.Mongo.Database == "" {
		return fmt.Errorf("mongo.database is required")
	}

	if c.Redis.URL == "" {
		return fmt.Errorf("REDIS_URL is required")
	}

	if c.JWT.PrivateKeyPath == "" {
		return fmt.Errorf("JWT_PRIVATE_KEY_PATH is required")
	}

	if c.JWT.PublicKeyPath == "" {
		return fmt.Errorf("JWT_PUBLIC_KEY_PATH is required")
	}

	if c.JWT.TokenExpire <= 0 {
		return fmt.Errorf("jwt.token_expire must be positive")
	}

	if c.RateLimit.Requests <= 0 || c.RateLimit.AuthRequests <= 0 ||
		c.RateLimit.CheckoutRequests <= 0 {
		return fmt.Errorf("rate_limit budgets must be positive")
	}

	switch c.Payment.Environment {
	case "sandbox", "development", "production":
	default:
		return fmt.Errorf(
			"payment.environment %q is not supported",
			c.Payment.Environment,
		)
	}

	if c.CORS.AllowCredentials {
		for _, origin := range c.CORS.AllowedOrigins {
			if origin == "*" {
				return fmt.Errorf(
					"CORS wildcard '*' cannot be used with AllowCredentials",
				)
			}
		}
	}

	if c.App.Environment == "production" {
		if c.Otel.Enabled && c.Otel.Insecure {
			return fmt.Errorf("OTEL_INSECURE must be false in production")
		}
		if c.Payment.MerchantID == "" {
			return fmt.Errorf("BRAINTREE_MERCHANT_ID is required in production")
		}
		if c.API.ExposeErrorDetails {
			return fmt.Errorf("API_EXPOSE_ERROR_DETAILS must be false in production")
		}
	}

	if c.Server.ReadTimeout <= 0 {
		return fmt.Errorf("server.read_timeout must be positive")
	}

	if c.Server.WriteTimeout <= 0 {
		return fmt.Errorf("server.write_timeout must be positive")
	}

	return nil
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

func (c *Config) LedgerEnabled() bool {
	return c.Ledger.URL != ""
}

func (s *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
