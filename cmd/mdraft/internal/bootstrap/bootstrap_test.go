package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-mdraft"
	"github.com/goliatone/go-mdraft/internal/logging"
	"github.com/goliatone/go-mdraft/pkg/interfaces"
)

func TestLoadConfigAppliesOverrides(t *testing.T) {
	schema := true
	cfg, err := LoadConfig(Options{
		LogLevel:    "debug",
		LogProvider: "gologger",
		LogFormat:   "json",
		Schema:      &schema,
		MaxNesting:  8,
	})
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "gologger", cfg.Logging.Provider)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Validation.Schema)
	assert.Equal(t, 8, cfg.Limits.MaxNesting)
}

func TestLoadConfigReadsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mdraft.toml")
	require.NoError(t, os.WriteFile(path, []byte("[styles.block_styles]\nHeader1 = \"title\"\n"), 0o600))

	cfg, err := LoadConfig(Options{ConfigPath: path})
	require.NoError(t, err)
	assert.Equal(t, "title", cfg.Styles.BlockStyles["Header1"])
}

func TestLoadConfigRejectsInvalidLevel(t *testing.T) {
	_, err := LoadConfig(Options{LogLevel: "loud"})
	require.ErrorIs(t, err, mdraft.ErrLoggingLevelInvalid)
}

func TestBuildModule(t *testing.T) {
	module, err := BuildModule(Options{LoggerProvider: recordingProvider{}})
	require.NoError(t, err)
	require.NotNil(t, module.Module)
	require.NotNil(t, module.Logger)
}

func TestParseStyles(t *testing.T) {
	overrides, err := ParseStyles(
		map[string]string{"Header1": "title"},
		map[string]string{"Strong": "HEAVY:**", "Emphasis": "SLANT"},
	)
	require.NoError(t, err)
	assert.Equal(t, "title", overrides.BlockStyles["Header1"])
	assert.Equal(t, mdraft.InlineStyle{Type: "HEAVY", Symbol: "**"}, overrides.InlineStyles["Strong"])
	assert.Equal(t, mdraft.InlineStyle{Type: "SLANT"}, overrides.InlineStyles["Emphasis"])

	_, err = ParseStyles(map[string]string{"Header1": ""}, nil)
	require.Error(t, err)

	_, err = ParseStyles(nil, map[string]string{"Strong": ":**"})
	require.Error(t, err)
}

type recordingProvider struct{}

func (recordingProvider) GetLogger(string) interfaces.Logger {
	return logging.NoOp()
}
