package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.AppAddr)
	assert.Equal(t, "data", cfg.FixtureDir)
	assert.Equal(t, 12, cfg.GraphQLMaxDepth)
	assert.EqualValues(t, 1<<20, cfg.GraphQLMaxBodyBytes)
	assert.Equal(t, 120, cfg.RateLimitRequests)
	assert.Equal(t, time.Minute, cfg.RateLimitWindow)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.IsProduction())
	assert.True(t, cfg.IntrospectionEnabled())
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("FIXTURE_DIR", "/srv/etaxql/fixtures")
	t.Setenv("GRAPHQL_INTROSPECTION", "ON")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ":9090", cfg.AppAddr)
	assert.Equal(t, "/srv/etaxql/fixtures", cfg.FixtureDir)
	assert.True(t, cfg.IntrospectionEnabled())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, 30*time.Second, cfg.RateLimitWindow)
}

func TestLoadConfigRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"LOG_FORMAT":             "xml",
		"LOG_LEVEL":              "verbose",
		"GRAPHQL_INTROSPECTION":  "sometimes",
		"GRAPHQL_MAX_BODY_BYTES": "0",
		"GRAPHQL_MAX_DEPTH":      "deep",
	}
	for key, value := range cases {
		t.Run(key, func(t *testing.T) {
			t.Setenv(key, value)
			_, err := LoadConfig()
			require.Error(t, err)
		})
	}
}

func TestIntrospectionEnabled(t *testing.T) {
	cases := []struct {
		env  string
		mode string
		want bool
	}{
		{env: "development", mode: IntrospectionAuto, want: true},
		{env: "production", mode: IntrospectionAuto, want: false},
		{env: "production", mode: IntrospectionOn, want: true},
		{env: "development", mode: IntrospectionOff, want: false},
	}
	for _, tc := range cases {
		cfg := &Config{AppEnv: tc.env, GraphQLIntrospection: tc.mode}
		assert.Equal(t, tc.want, cfg.IntrospectionEnabled(), "%s/%s", tc.env, tc.mode)
	}

	var nilCfg *Config
	assert.True(t, nilCfg.IntrospectionEnabled())
	assert.False(t, nilCfg.IsProduction())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel(&Config{LogLevel: "debug"}).String())
	assert.Equal(t, "WARN", parseLevel(&Config{LogLevel: "warn"}).String())
	assert.Equal(t, "INFO", parseLevel(&Config{LogLevel: "bogus"}).String())
	assert.Equal(t, "INFO", parseLevel(nil).String())
}
