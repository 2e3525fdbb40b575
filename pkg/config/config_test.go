package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromViper_Defaults(t *testing.T) {
	cfg, err := fromViper(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.HTTP.Addr())
	assert.Equal(t, 200, cfg.EOQ.SampleCount)
	assert.Equal(t, "around_eoq", cfg.EOQ.RangePolicy)
	assert.Equal(t, 0.5, cfg.EOQ.RangeLow)
	assert.Equal(t, 1.5, cfg.EOQ.RangeHigh)
	assert.Equal(t, 1.0, cfg.EOQ.RangeFloor)
	assert.Equal(t, "Rp", cfg.Format.Currency)
	assert.Equal(t, "id", cfg.Format.Locale)
}

func TestFromViper_StringOverrides(t *testing.T) {
	v := viper.New()
	v.Set("HTTP_PORT", "9090")
	v.Set("EOQ_SAMPLE_COUNT", "120")
	v.Set("EOQ_RANGE_HIGH", "2.5")
	v.Set("RATE_LIMIT_RPS", "0.5")
	v.Set("FORMAT_CURRENCY", "$")

	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, 120, cfg.EOQ.SampleCount)
	assert.Equal(t, 2.5, cfg.EOQ.RangeHigh)
	assert.Equal(t, 0.5, cfg.RateLimit.RPS)
	assert.Equal(t, "$", cfg.Format.Currency)
}

func TestFromViper_RejectsInvalidCurveDefaults(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]any
	}{
		{"una muestra", map[string]any{"EOQ_SAMPLE_COUNT": 1}},
		{"demasiadas muestras", map[string]any{"EOQ_SAMPLE_COUNT": "10001"}},
		{"factores invertidos", map[string]any{"EOQ_RANGE_LOW": 2.0, "EOQ_RANGE_HIGH": 1.0}},
		{"bajo negativo", map[string]any{"EOQ_RANGE_LOW": -0.5}},
		{"piso cero", map[string]any{"EOQ_RANGE_FLOOR": "0"}},
		{"política con typo", map[string]any{"EOQ_RANGE_POLICY": "arround_eoq"}},
		{"fixed sin cotas", map[string]any{"EOQ_RANGE_POLICY": "fixed"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			for k, val := range tt.env {
				v.Set(k, val)
			}
			_, err := fromViper(v)
			assert.Error(t, err)
		})
	}
}

func TestFromViper_NormalizesRangePolicy(t *testing.T) {
	v := viper.New()
	v.Set("EOQ_RANGE_POLICY", " Full_Demand ")
	cfg, err := fromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "full_demand", cfg.EOQ.RangePolicy)
}

func TestLoad_ReadsEnvironment(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("EOQ_RANGE_POLICY", "full_demand")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "production", cfg.App.Env)
	assert.Equal(t, "full_demand", cfg.EOQ.RangePolicy)
}
