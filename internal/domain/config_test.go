package domain_test

import (
	"errors"
	"testing"

	"github.com/designlint/designlint/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestDefaultConfig(t *testing.T) {
	cfg := domain.DefaultConfig()
	assert.Equal(t, []float64{0, 2, 4, 8, 16}, cfg.AllowedRadii)
	assert.Equal(t, "storedErrorsToIgnore", cfg.StorageKey)
	assert.Equal(t, ".designlint", cfg.StorageDir)
	assert.False(t, cfg.IsolateSiblingChildren)
	assert.NoError(t, cfg.Validate())
}

func TestDefaultConfig_DoesNotShareRadii(t *testing.T) {
	cfg := domain.DefaultConfig()
	cfg.AllowedRadii[0] = 99
	assert.Equal(t, 0.0, domain.DefaultAllowedRadii[0])
}

func TestConfig_WithDefaults(t *testing.T) {
	cfg := domain.Config{AllowedRadii: []float64{0, 6}}.WithDefaults()
	assert.Equal(t, []float64{0, 6}, cfg.AllowedRadii)
	assert.Equal(t, domain.DefaultStorageKey, cfg.StorageKey)
	assert.Equal(t, domain.DefaultStorageDir, cfg.StorageDir)
}

func TestConfig_IsRuleDisabled(t *testing.T) {
	cfg := domain.Config{DisabledRules: []string{"radius"}}
	assert.True(t, cfg.IsRuleDisabled(domain.CategoryRadius))
	assert.False(t, cfg.IsRuleDisabled(domain.CategoryFill))
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     domain.Config
		wantErr string
	}{
		{"zero value", domain.Config{}, ""},
		{"empty radii", domain.Config{AllowedRadii: []float64{}}, "allowed_radii must not be empty"},
		{"negative radius", domain.Config{AllowedRadii: []float64{-1}}, "negative radius"},
		{"unknown rule", domain.Config{DisabledRules: []string{"shadow"}}, `unknown rule "shadow"`},
		{"all rules disabled", domain.Config{DisabledRules: []string{
			"fill", "stroke", "effects", "text", "radius", "component",
		}}, "cannot disable all rules"},
		{"bad log format", domain.Config{LogFormat: "xml"}, `unknown log_format "xml"`},
		{"json log format", domain.Config{LogFormat: "json"}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.True(t, errors.Is(err, domain.ErrInvalidConfig))
		})
	}
}
