package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Environment: "development"},
		Logger:   LoggerConfig{Level: "info"},
		Data:     DataConfig{BasePath: "/some/path"},
		Corpus:   CorpusConfig{Path: "/some/path/reviews.json"},
		Approval: ApprovalConfig{MutationRPS: 5, MutationBurst: 10},
	}
}

func TestValidate_ValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_AllEnvironments(t *testing.T) {
	tests := []struct {
		env   string
		valid bool
	}{
		{"development", true},
		{"staging", true},
		{"production", true},
		{"test", false},
		{"", false},
		{"DEVELOPMENT", false}, // case sensitive
	}

	for _, tt := range tests {
		t.Run(tt.env, func(t *testing.T) {
			cfg := validConfig()
			cfg.App.Environment = tt.env
			err := cfg.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestValidate_LogLevels(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error", "WARN"} {
		cfg := validConfig()
		cfg.Logger.Level = level
		assert.NoError(t, cfg.Validate(), "level=%s", level)
	}

	cfg := validConfig()
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())
}

func TestValidate_RequiredPaths(t *testing.T) {
	cfg := validConfig()
	cfg.Corpus.Path = ""
	assert.Error(t, cfg.Validate())

	cfg = validConfig()
	cfg.Data.BasePath = ""
	assert.Error(t, cfg.Validate())
}

func TestValidate_MutationRate(t *testing.T) {
	cfg := validConfig()
	cfg.Approval.MutationRPS = 0
	assert.Error(t, cfg.Validate())
}

func TestExpandDataPath(t *testing.T) {
	cfg := validConfig()
	cfg.Data.BasePath = "./data"
	require.NoError(t, cfg.expandDataPath())
	assert.True(t, filepath.IsAbs(cfg.Data.BasePath))
}

func TestGetConfigValue(t *testing.T) {
	t.Setenv("REVIEWS_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "REVIEWS_TEST_KEY", "default"))
	assert.Equal(t, "from-env", getConfigValue("", "REVIEWS_TEST_KEY", "default"))
	assert.Equal(t, "default", getConfigValue("", "REVIEWS_TEST_ABSENT", "default"))
}

func TestGetBoolConfigValue(t *testing.T) {
	t.Setenv("REVIEWS_TEST_BOOL", "false")
	assert.False(t, getBoolConfigValue("", "REVIEWS_TEST_BOOL", true))

	t.Setenv("REVIEWS_TEST_BOOL", "not-a-bool")
	assert.True(t, getBoolConfigValue("", "REVIEWS_TEST_BOOL", true))

	assert.True(t, getBoolConfigValue("", "REVIEWS_TEST_BOOL_ABSENT", true))
}

func TestGetNumericConfigValues(t *testing.T) {
	t.Setenv("REVIEWS_TEST_INT", "25")
	assert.Equal(t, 25, getIntConfigValue("", "REVIEWS_TEST_INT", 10))
	assert.Equal(t, 10, getIntConfigValue("", "REVIEWS_TEST_INT_ABSENT", 10))

	t.Setenv("REVIEWS_TEST_FLOAT", "2.5")
	assert.Equal(t, 2.5, getFloatConfigValue("", "REVIEWS_TEST_FLOAT", 1))
	assert.Equal(t, 1.0, getFloatConfigValue("", "REVIEWS_TEST_FLOAT_ABSENT", 1))
}

func TestParseDuration(t *testing.T) {
	d, err := parseDuration("", "REVIEWS_TEST_DURATION_ABSENT", "15s")
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, d)

	d, err = parseDuration("2m", "REVIEWS_TEST_DURATION_ABSENT", "15s")
	require.NoError(t, err)
	assert.Equal(t, 2*time.Minute, d)

	_, err = parseDuration("soon", "REVIEWS_TEST_DURATION_ABSENT", "15s")
	assert.Error(t, err)
}

func TestSplitOrigins(t *testing.T) {
	assert.Equal(t, []string{"*"}, splitOrigins("*"))
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, splitOrigins(" https://a.example ,, https://b.example "))
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "# comment\nREVIEWS_ENVFILE_A=alpha\nREVIEWS_ENVFILE_B=\"quoted\"\nmalformed line\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	t.Setenv("REVIEWS_ENVFILE_A", "preset")
	t.Setenv("REVIEWS_ENVFILE_B", "")

	require.NoError(t, loadEnvFile(path))

	// Existing environment values win over the file.
	assert.Equal(t, "preset", os.Getenv("REVIEWS_ENVFILE_A"))
	assert.Equal(t, "quoted", os.Getenv("REVIEWS_ENVFILE_B"))

	assert.Error(t, loadEnvFile(filepath.Join(t.TempDir(), "absent")))
}
