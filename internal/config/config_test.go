package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func base() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyJWTSecret, "secret")
	return v
}

func TestNew_Defaults(t *testing.T) {
	cfg, err := New(base())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, SourceUpstream, cfg.DataSource)
	assert.Equal(t, 10*time.Second, cfg.UpstreamTimeout)
	assert.Equal(t, 5*time.Minute, cfg.ConfirmTTL)
	assert.Equal(t, 5, cfg.TopN)
	assert.False(t, cfg.WorkingHours.Enabled)
	assert.True(t, cfg.Development())
}

func TestNew_CollectsAllProblems(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set(KeyDataSource, "postgres")
	v.Set(KeyTopN, 0)
	v.Set(KeyWorkingHours, "20-8")

	_, err := New(v)
	require.Error(t, err)
	msg := err.Error()
	assert.Contains(t, msg, "JWT_SECRET is required")
	assert.Contains(t, msg, "DATABASE_URL is required")
	assert.Contains(t, msg, "TOP_N must be positive")
	assert.Contains(t, msg, "working hours")
}

func TestNew_UnknownDataSource(t *testing.T) {
	v := base()
	v.Set(KeyDataSource, "mongo")

	_, err := New(v)
	assert.ErrorContains(t, err, `DATA_SOURCE "mongo"`)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	yaml := "jwt_secret: from-file\nworking_hours: 8-18\ntop_n: 3\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "storeadmin.yaml"), []byte(yaml), 0o600))
	t.Setenv("TOP_N", "7")

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, 7, cfg.TopN, "environment wins over the file")
	assert.Equal(t, WorkingHours{Open: 8, Close: 18, Enabled: true}, cfg.WorkingHours)
}

func TestLoad_MissingFileIsFine(t *testing.T) {
	t.Setenv("JWT_SECRET", "env")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "env", cfg.JWTSecret)
}

func TestWorkingHours(t *testing.T) {
	at := func(h int) time.Time { return time.Date(2024, 5, 1, h, 30, 0, 0, time.Local) }

	w, err := ParseWorkingHours("8-23")
	require.NoError(t, err)
	assert.False(t, w.Contains(at(7)))
	assert.True(t, w.Contains(at(8)))
	assert.True(t, w.Contains(at(23)))

	always, err := ParseWorkingHours("")
	require.NoError(t, err)
	assert.True(t, always.Contains(at(3)))

	for _, bad := range []string{"8", "a-b", "8-x", "9-24", "-1-5", "18-8"} {
		_, err := ParseWorkingHours(bad)
		assert.Error(t, err, bad)
	}
}
