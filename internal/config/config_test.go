package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func env(values map[string]string) func(string) string {
	return func(key string) string {
		return values[key]
	}
}

func TestLoadSuiteConfig_Defaults(t *testing.T) {
	config, err := LoadSuiteConfig(env(nil))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", config.BaseURL)
	assert.Equal(t, BrowserChromium, config.Browser)
	assert.True(t, config.Headless)
	assert.Equal(t, 1920, config.ViewportWidth)
	assert.Equal(t, 1080, config.ViewportHeight)
	assert.Equal(t, 10*time.Second, config.DefaultTimeout)
	assert.Equal(t, 30*time.Second, config.PageLoadTimeout)
	assert.Zero(t, config.FixtureSeed)
	assert.Equal(t, "info", config.LogLevel)
	assert.Equal(t, "console", config.LogFormat)
}

func TestLoadSuiteConfig_Overrides(t *testing.T) {
	config, err := LoadSuiteConfig(env(map[string]string{
		"BASE_URL":          "https://shop.example.com/",
		"BROWSER":           "Firefox",
		"HEADLESS":          "false",
		"SLOW_MO":           "250",
		"VIEWPORT_WIDTH":    "375",
		"VIEWPORT_HEIGHT":   "812",
		"DEFAULT_TIMEOUT":   "4s",
		"PAGE_LOAD_TIMEOUT": "45000",
		"FIXTURE_SEED":      "42",
	}))
	require.NoError(t, err)

	assert.Equal(t, "https://shop.example.com", config.BaseURL)
	assert.Equal(t, BrowserFirefox, config.Browser)
	assert.False(t, config.Headless)
	assert.Equal(t, 250*time.Millisecond, config.SlowMo)
	assert.Equal(t, 375, config.ViewportWidth)
	assert.Equal(t, 812, config.ViewportHeight)
	assert.Equal(t, 4*time.Second, config.DefaultTimeout)
	assert.Equal(t, 45*time.Second, config.PageLoadTimeout)
	assert.Equal(t, int64(42), config.FixtureSeed)
}

func TestLoadSuiteConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown browser", map[string]string{"BROWSER": "netscape"}},
		{"bad headless", map[string]string{"HEADLESS": "maybe"}},
		{"bad timeout", map[string]string{"DEFAULT_TIMEOUT": "soon"}},
		{"bad seed", map[string]string{"FIXTURE_SEED": "abc"}},
		{"zero viewport", map[string]string{"VIEWPORT_WIDTH": "0"}},
		{"page load shorter than default", map[string]string{"DEFAULT_TIMEOUT": "20s", "PAGE_LOAD_TIMEOUT": "5s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSuiteConfig(env(tt.env))
			assert.Error(t, err)
		})
	}
}

func TestSuiteConfig_UseViewport(t *testing.T) {
	config, err := LoadSuiteConfig(env(nil))
	require.NoError(t, err)

	require.NoError(t, config.UseViewport("iphone-x"))
	assert.Equal(t, 375, config.ViewportWidth)
	assert.Equal(t, 812, config.ViewportHeight)

	assert.Error(t, config.UseViewport("watch"))
}

func TestLoadPostgresConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
		wantDSN string
	}{
		{
			name: "all required set",
			env: map[string]string{
				"POSTGRES_USER":     "shop",
				"POSTGRES_PASSWORD": "secret",
				"POSTGRES_DB":       "fixtures",
				"POSTGRES_HOSTNAME": "db",
			},
			wantDSN: "host=db port=5432 user=shop password=secret dbname=fixtures sslmode=disable",
		},
		{
			name: "schema and port",
			env: map[string]string{
				"POSTGRES_USER":     "shop",
				"POSTGRES_PASSWORD": "secret",
				"POSTGRES_DB":       "fixtures",
				"POSTGRES_HOSTNAME": "db",
				"POSTGRES_PORT":     "6543",
				"POSTGRES_SCHEMA":   "nightly",
			},
			wantDSN: "host=db port=6543 user=shop password=secret dbname=fixtures sslmode=disable search_path=nightly",
		},
		{
			name: "missing password",
			env: map[string]string{
				"POSTGRES_USER":     "shop",
				"POSTGRES_DB":       "fixtures",
				"POSTGRES_HOSTNAME": "db",
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadPostgresConfig(env(tt.env))
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantDSN, config.ConnectionString())
		})
	}
}

func TestLoadServerConfig(t *testing.T) {
	assert.Equal(t, ServerConfig{Port: "8080", Markup: "testid"}, LoadServerConfig(env(nil)))
	assert.Equal(t, ServerConfig{Port: "9000", Markup: "class"},
		LoadServerConfig(env(map[string]string{"PORT": "9000", "STOREFRONT_MARKUP": "class"})))
}
