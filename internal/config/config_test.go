package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("SHEETS_BACKEND", "memory")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8501", cfg.Port)
	assert.Equal(t, "expocci.com", cfg.CorporateDomain)
	assert.Equal(t, 30*time.Second, cfg.Sheets.CacheTTL)
	assert.Equal(t, []string{"Miami Boat Show 2025", "New York Auto Show 2025", "Paris Expo 2025"}, cfg.Shows)
	assert.Equal(t, "Miami Boat Show 2025", cfg.DefaultShow())
	assert.False(t, cfg.Database.Enabled())
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("SHEETS_BACKEND", "memory")

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"google needs sheet id", Config{Shows: []string{"A"}, Sheets: SheetsConfig{Backend: "google"}}, true},
		{"google with sheet id", Config{Shows: []string{"A"}, Sheets: SheetsConfig{Backend: "google", OrdersSheetID: "abc"}}, false},
		{"unknown backend", Config{Shows: []string{"A"}, Sheets: SheetsConfig{Backend: "excel"}}, true},
		{"blank shows", Config{Shows: []string{" ", ""}, Sheets: SheetsConfig{Backend: "memory"}}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateNormalizesDomainAndShows(t *testing.T) {
	cfg := Config{
		CorporateDomain: " @ExpoCCI.com ",
		Shows:           []string{" Paris Expo 2025 ", "", "Miami Boat Show 2025"},
		Sheets:          SheetsConfig{Backend: "memory"},
	}
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "expocci.com", cfg.CorporateDomain)
	assert.Equal(t, []string{"Paris Expo 2025", "Miami Boat Show 2025"}, cfg.Shows)
	assert.True(t, cfg.HasShow("Paris Expo 2025"))
	assert.False(t, cfg.HasShow("Unknown Show"))
}
