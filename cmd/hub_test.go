package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pergazuz/thai-map/internal/model"
)

func TestHubCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range hubCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"add", "list", "rename", "rm"} {
		assert.True(t, names[name], "hub should have subcommand %q", name)
	}
}

func TestHubAddCommand_Flags(t *testing.T) {
	for _, flagName := range []string{"lat", "lng", "name"} {
		flag := hubAddCmd.Flags().Lookup(flagName)
		require.NotNil(t, flag, "hub add should have --%s flag", flagName)
	}
	assert.Equal(t, "0", hubAddCmd.Flags().Lookup("lat").DefValue)
}

func TestFormatHubs(t *testing.T) {
	hubs := []model.Hub{
		{
			ID:              "a1b2c3d4-0000-0000-0000-000000000000",
			Label:           "Central",
			Lat:             13.7563,
			Lng:             100.5018,
			PrimaryRadiusM:  model.DefaultPrimaryRadiusM,
			ExtendedRadiusM: model.DefaultExtendedRadiusM,
			CreatedAt:       time.Date(2025, 8, 1, 9, 30, 0, 0, time.UTC),
		},
	}

	var buf bytes.Buffer
	formatHubs(&buf, hubs)
	out := buf.String()

	assert.Contains(t, out, "LABEL")
	assert.Contains(t, out, "a1b2c3d4")
	assert.Contains(t, out, "Central")
	assert.Contains(t, out, "13.756300")
	assert.Contains(t, out, "50")
	assert.Contains(t, out, "100")
	assert.Contains(t, out, "2025-08-01 09:30")
}

func TestFormatHubs_Empty(t *testing.T) {
	var buf bytes.Buffer
	formatHubs(&buf, nil)

	// Header only
	assert.Contains(t, buf.String(), "ID")
	assert.NotContains(t, buf.String(), "Central")
}
