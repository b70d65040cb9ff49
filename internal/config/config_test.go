package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{
		"SERVER_PORT", "STORE_DRIVER", "SESSION_STORE", "SESSION_TTL",
		"API_ACCESS", "DEFAULT_ROLE", "COOKIE_SECURE", "AUTH_RATE_LIMIT_BURST",
		"CORS_ALLOWED_ORIGINS",
	} {
		t.Setenv(k, "")
	}

	cfg := Load()

	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, DriverRedis, cfg.SessionStore)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, APIAccessPublic, cfg.APIAccess)
	assert.True(t, cfg.APIPublic())
	assert.Empty(t, cfg.DefaultRole)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 10, cfg.AuthRateLimitBurst)
	assert.Empty(t, cfg.CORSAllowedOrigins)
	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("STORE_DRIVER", "MEMORY")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("API_ACCESS", "authenticated")
	t.Setenv("DEFAULT_ROLE", "patient")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("AUTH_RATE_LIMIT_RPS", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	cfg := Load()

	assert.Equal(t, ":9090", cfg.Addr())
	assert.Equal(t, DriverMemory, cfg.StoreDriver)
	assert.Equal(t, DriverMemory, cfg.SessionStore)
	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.False(t, cfg.APIPublic())
	assert.Equal(t, "PATIENT", cfg.DefaultRole)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 2.5, cfg.AuthRateLimitRPS)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	require.NoError(t, cfg.Validate())
}

func TestLoad_BadValuesFallBack(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("COOKIE_SECURE", "maybe")
	t.Setenv("AUTH_RATE_LIMIT_BURST", "many")

	cfg := Load()

	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.False(t, cfg.CookieSecure)
	assert.Equal(t, 10, cfg.AuthRateLimitBurst)
}

func TestValidate_Rejects(t *testing.T) {
	base := func() *Config {
		return &Config{
			StoreDriver:  DriverMemory,
			SessionStore: DriverMemory,
			APIAccess:    APIAccessPublic,
			SessionTTL:   time.Minute,
			TokenTTL:     time.Minute,
			JWTSecret:    "s",

			AuthRateLimitRPS:   1,
			AuthRateLimitBurst: 1,
		}
	}

	cases := map[string]func(c *Config){
		"store driver":  func(c *Config) { c.StoreDriver = "mysql" },
		"session store": func(c *Config) { c.SessionStore = "memcached" },
		"api access":    func(c *Config) { c.APIAccess = "sometimes" },
		"session ttl":   func(c *Config) { c.SessionTTL = 0 },
		"jwt secret":    func(c *Config) { c.JWTSecret = "" },
		"admin pair":    func(c *Config) { c.AdminEmail = "admin@x.com" },
		"admin default": func(c *Config) { c.DefaultRole = "ADMIN" },
		"zero rps":      func(c *Config) { c.AuthRateLimitRPS = 0 },
		"negative rps":  func(c *Config) { c.AuthRateLimitRPS = -1 },
		"zero burst":    func(c *Config) { c.AuthRateLimitBurst = 0 },
	}

	require.NoError(t, base().Validate())

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			c := base()
			mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestLoad_AdminDefaultRoleRejected(t *testing.T) {
	t.Setenv("DEFAULT_ROLE", "admin")
	t.Setenv("JWT_SECRET", "s")

	cfg := Load()

	assert.Equal(t, "ADMIN", cfg.DefaultRole)
	assert.ErrorContains(t, cfg.Validate(), "DEFAULT_ROLE")
}
