package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const samplePresets = `
presets:
  - name: api
    description: JSON API defaults
    headers:
      Accept: application/json
    status:
      ok: 2xx
      created: 201
      failed: ["4xx", "5xx"]
  - name: admin
    parent: api
    headers:
      X-Role: admin
    prepare_merge_strategy: pre
    send_merge_strategy: post
`

func TestLoadPresetFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "presets.yaml")
	require.NoError(t, os.WriteFile(path, []byte(samplePresets), 0o600))

	file, err := LoadPresetFile(path)
	require.NoError(t, err)
	require.Len(t, file.Presets, 2)

	api := file.Presets[0]
	assert.Equal(t, "api", api.Name)
	assert.Equal(t, "application/json", api.Headers["Accept"])
	require.Contains(t, api.Status, "failed")
	assert.True(t, api.Status["failed"].Match(503))
	assert.True(t, api.Status["created"].Match(201))

	admin := file.Presets[1]
	assert.Equal(t, "api", admin.Parent)
	assert.Equal(t, "pre", admin.PrepareMergeStrategy)
}

func TestLoadPresetFile_Missing(t *testing.T) {
	t.Parallel()
	_, err := LoadPresetFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestParsePresets_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		errPart string
	}{
		{
			name:    "missing name",
			src:     "presets:\n  - headers: {A: b}\n",
			errPart: "name is required",
		},
		{
			name:    "duplicate",
			src:     "presets:\n  - name: a\n  - name: a\n",
			errPart: "duplicate",
		},
		{
			name:    "parent declared later",
			src:     "presets:\n  - name: child\n    parent: base\n  - name: base\n",
			errPart: "declared earlier",
		},
		{
			name:    "bad strategy",
			src:     "presets:\n  - name: a\n    send_merge_strategy: around\n",
			errPart: "send_merge_strategy",
		},
		{
			name:    "bad status rule",
			src:     "presets:\n  - name: a\n    status: {ok: 2x}\n",
			errPart: "invalid status rule",
		},
		{
			name:    "unknown key",
			src:     "presets:\n  - name: a\n    header: {A: b}\n",
			errPart: "header",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := ParsePresets([]byte(tt.src))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tt.errPart), "err=%v", err)
		})
	}
}

func TestParsePresets_Empty(t *testing.T) {
	t.Parallel()
	file, err := ParsePresets(nil)
	require.NoError(t, err)
	assert.Empty(t, file.Presets)
}

func TestNetSvcConfig_Builders(t *testing.T) {
	t.Parallel()

	cfg := DefaultNetSvcConfig()
	cfg.WithUserAgent("ua/1").
		WithBlacklistDomains("evil.com").
		WithWhitelistDomains("example.com").
		WithExtraHeaders(map[string]string{"X-A": "1"}).
		WithRelay(nil)

	assert.Equal(t, "ua/1", cfg.UserAgent)
	assert.Equal(t, []string{"evil.com"}, cfg.BlacklistDomains)
	assert.Equal(t, []string{"example.com"}, cfg.WhitelistDomains)
	assert.Equal(t, "1", cfg.ExtraHeaders["X-A"])
	assert.NotNil(t, cfg.Relay(), "nil relay falls back to slog relay")
}
