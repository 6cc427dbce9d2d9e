package options

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, logrus.InfoLevel, lvl)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keeloq.yaml")
	require.NoError(t, os.WriteFile(path, []byte("profile: intellicode\nlog_level: debug\nformat: kv\n"), 0o600))
	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "intellicode", cfg.Profile)
	require.Equal(t, DefaultWorkers, cfg.Workers)
	require.Equal(t, FormatKV, cfg.Format)
	lvl, err := cfg.Level()
	require.NoError(t, err)
	require.Equal(t, logrus.DebugLevel, lvl)
}

func TestParseErrors(t *testing.T) {
	for _, in := range []string{
		"workers: 0\n",
		"log_level: loud\n",
		"profile: \"\"\n",
		"unknown_key: 1\n",
		"workers: [1]\n",
		"format: xml\n",
	} {
		_, err := Parse([]byte(in))
		require.Error(t, err, "input %q", in)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
