// AngelaMos | 2026
// config_test.go

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MONGO_URL", "mongodb://localhost:27017")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("PORT", "")
	t.Setenv("BRAINTREE_ENVIRONMENT", "")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)
	os.Unsetenv("PORT")
	os.Unsetenv("BRAINTREE_ENVIRONMENT")

	c, err := load("")
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if c.Server.Port != 8080 {
		t.Errorf("port = %d", c.Server.Port)
	}
	if c.JWT.TokenExpire != 7*24*time.Hour {
		t.Errorf("token expire = %s", c.JWT.TokenExpire)
	}
	if c.Payment.Environment != "sandbox" || c.Payment.BreakerFailures != 5 {
		t.Errorf("payment = %+v", c.Payment)
	}
	if c.RateLimit.Window != time.Minute || c.RateLimit.AuthRequests != 10 {
		t.Errorf("rate limit = %+v", c.RateLimit)
	}
	if c.Server.MaxBodyBytes != 4<<20 {
		t.Errorf("max body = %d", c.Server.MaxBodyBytes)
	}
	if c.LedgerEnabled() {
		t.Error("ledger enabled without a url")
	}
	if c.Mongo.Database != "ecommerce" {
		t.Errorf("mongo database = %q", c.Mongo.Database)
	}
}

func TestLoadFileThenEnv(t *testing.T) {
	setRequired(t)
	os.Unsetenv("BRAINTREE_ENVIRONMENT")
	t.Setenv("PORT", "9100")
	t.Setenv("LEDGER_DATABASE_URL", "postgres://ledger@localhost/ledger")

	path := filepath.Join(t.TempDir(), "config.yaml")
	yamlBody := strings.Join([]string{
		"server:",
		"  port: 9000",
		"  max_body_bytes: 1048576",
		"payment:",
		"  reprice_from_catalog: true",
		"  breaker_timeout: 45s",
		"rate_limit:",
		"  requests: 30",
		"",
	}, "\n")
	if err := os.WriteFile(path, []byte(yamlBody), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	c, err := load(path)
	if err != nil {
		t.Fatalf("load() error = %v", err)
	}

	if c.Server.Port != 9100 {
		t.Errorf("port = %d, want env override", c.Server.Port)
	}
	if c.Server.MaxBodyBytes != 1<<20 {
		t.Errorf("max body = %d", c.Server.MaxBodyBytes)
	}
	if !c.Payment.RepriceFromCatalog || c.Payment.BreakerTimeout != 45*time.Second {
		t.Errorf("payment = %+v", c.Payment)
	}
	if c.RateLimit.Requests != 30 || c.RateLimit.Burst != 20 {
		t.Errorf("rate limit = %+v", c.RateLimit)
	}
	if !c.LedgerEnabled() {
		t.Error("ledger url from env ignored")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			App:     AppConfig{Environment: "development"},
			Server:  ServerConfig{ReadTimeout: time.Second, WriteTimeout: time.Second},
			Mongo:   MongoConfig{URI: "mongodb://x", Database: "ecommerce"},
			Redis:   RedisConfig{URL: "redis://x"},
			JWT:     JWTConfig{PrivateKeyPath: "a", PublicKeyPath: "b", TokenExpire: time.Hour},
			Payment: PaymentConfig{Environment: "sandbox"},
			RateLimit: RateLimitConfig{
				Requests:         100,
				AuthRequests:     10,
				CheckoutRequests: 5,
			},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"missing mongo", func(c *Config) { c.Mongo.URI = "" }, "MONGO_URL"},
		{"missing redis", func(c *Config) { c.Redis.URL = "" }, "REDIS_URL"},
		{"zero expiry", func(c *Config) { c.JWT.TokenExpire = 0 }, "token_expire"},
		{"zero checkout budget", func(c *Config) { c.RateLimit.CheckoutRequests = 0 }, "rate_limit"},
		{"unknown gateway env", func(c *Config) { c.Payment.Environment = "qa" }, "payment.environment"},
		{"wildcard with credentials", func(c *Config) {
			c.CORS = CORSConfig{AllowedOrigins: []string{"*"}, AllowCredentials: true}
		}, "CORS"},
		{"production needs merchant", func(c *Config) { c.App.Environment = "production" }, "BRAINTREE_MERCHANT_ID"},
		{"production hides details", func(c *Config) {
			c.App.Environment = "production"
			c.Payment.MerchantID = "m"
			c.API.ExposeErrorDetails = true
		}, "API_EXPOSE_ERROR_DETAILS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			err := validate(c)
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("validate() error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
