package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rock-salt/match-cli/internal/compat"
	"github.com/rock-salt/match-cli/internal/model"
	"github.com/rock-salt/match-cli/internal/store"
)

func newWeightsCmd(t *testing.T) *cobra.Command {
	t.Helper()
	cfg = testConfig()
	cmd := &cobra.Command{Use: "test"}
	registerWeightFlags(cmd)
	return cmd
}

func TestLoadWeights_ConfigDefaults(t *testing.T) {
	cmd := newWeightsCmd(t)

	w, err := loadWeights(cmd)
	require.NoError(t, err)
	assert.Equal(t, compat.DefaultWeights(), w)
}

func TestLoadWeights_FileOverride(t *testing.T) {
	cmd := newWeightsCmd(t)

	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("financial: 50\nstage_size: 10\n"), 0o644))
	require.NoError(t, cmd.Flags().Set("weights", path))

	w, err := loadWeights(cmd)
	require.NoError(t, err)
	assert.Equal(t, 50.0, w.Financial)
	assert.Equal(t, 10.0, w.StageSize)
	assert.Equal(t, 15.0, w.InputChannels, "unlisted factors keep their config values")
}

func TestLoadWeights_FlagBeatsFile(t *testing.T) {
	cmd := newWeightsCmd(t)

	path := filepath.Join(t.TempDir(), "weights.yaml")
	require.NoError(t, os.WriteFile(path, []byte("financial: 50\n"), 0o644))
	require.NoError(t, cmd.Flags().Set("weights", path))
	require.NoError(t, cmd.Flags().Set("weight-financial", "70"))

	w, err := loadWeights(cmd)
	require.NoError(t, err)
	assert.Equal(t, 70.0, w.Financial)
}

func TestLoadWeights_RejectsNegative(t *testing.T) {
	cmd := newWeightsCmd(t)
	require.NoError(t, cmd.Flags().Set("weight-house-drums", "-5"))

	_, err := loadWeights(cmd)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "house_drums")
}

func newTestStore(t *testing.T) store.Store {
	t.Helper()
	s, err := store.NewSQLite(filepath.Join(t.TempDir(), "match.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.Migrate(context.Background()))
	return s
}

func TestLoadRider_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "rider.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"act_name": "The Night Owls", "min_input_channels": 8}`), 0o644))

	r, err := loadRider(context.Background(), nil, path, "")
	require.NoError(t, err)
	assert.Equal(t, "The Night Owls", r.ActName)
}

func TestLoadRider_FromStore(t *testing.T) {
	s := newTestStore(t)
	saved, err := s.PutRider(context.Background(), model.Rider{ActName: "Stored Act"})
	require.NoError(t, err)

	r, err := loadRider(context.Background(), s, "", saved.ID)
	require.NoError(t, err)
	assert.Equal(t, "Stored Act", r.ActName)
}

func TestLoadRider_Ambiguous(t *testing.T) {
	_, err := loadRider(context.Background(), nil, "rider.json", "some-id")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not both")
}

func TestLoadRider_Missing(t *testing.T) {
	_, err := loadRider(context.Background(), nil, "", "")
	require.Error(t, err)
}

func TestLoadVenue_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "venue.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"capacity": 0}`), 0o644))

	_, err := loadVenue(context.Background(), nil, path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "capacity")
}
