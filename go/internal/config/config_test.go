package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), *cfg)
	assert.Equal(t, "leaderboard.json", cfg.Leaderboard.Path)
	assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 2*time.Second, cfg.Stimulus.MinDelay)
	assert.Equal(t, 5*time.Second, cfg.Stimulus.MaxDelay)
	assert.Equal(t, 50.0, cfg.Feedback.NearBandMs)
	assert.Equal(t, "overwrite", cfg.Remote.RefreshPolicy)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reaction.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
leaderboard:
  path: scores.json
remote:
  url: http://localhost:8090/leaderboard.json
  timeout: 2s
  refresh_policy: merge
stimulus:
  min_delay: 1s
  max_delay: 3s
`), 0o644))

	t.Setenv("REACTION_NEAR_BAND_MS", "25")
	t.Setenv("REACTION_LOG_LEVEL", "debug")
	t.Setenv("REACTION_SERVER_ALLOWED_ORIGINS", "http://a.test,http://b.test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "scores.json", cfg.Leaderboard.Path)
	assert.Equal(t, "http://localhost:8090/leaderboard.json", cfg.Remote.URL)
	assert.Equal(t, 2*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, "merge", cfg.Remote.RefreshPolicy)
	assert.Equal(t, time.Second, cfg.Stimulus.MinDelay)
	assert.Equal(t, 3*time.Second, cfg.Stimulus.MaxDelay)
	assert.Equal(t, 25.0, cfg.Feedback.NearBandMs)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Server.AllowedOrigins)
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "bad yaml",
			yaml: "leaderboard: [",
			want: "failed to parse config",
		},
		{
			name: "empty delay range",
			yaml: "stimulus:\n  min_delay: 5s\n  max_delay: 2s\n",
			want: "delay range",
		},
		{
			name: "unknown policy",
			yaml: "remote:\n  refresh_policy: append\n",
			want: "unknown refresh policy",
		},
		{
			name: "negative band",
			yaml: "feedback:\n  near_band_ms: -1\n",
			want: "near_band_ms",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "reaction.yaml")
			require.NoError(t, os.WriteFile(path, []byte(tt.yaml), 0o644))

			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestEnvIgnoresUnparsableValues(t *testing.T) {
	t.Setenv("REACTION_REMOTE_TIMEOUT", "soon")
	t.Setenv("REACTION_SERVER_BURST", "many")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Second, cfg.Remote.Timeout)
	assert.Equal(t, 10, cfg.Server.Burst)
}
