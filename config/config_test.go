package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotEmpty(t, cfg.DataDir)
	require.NotEmpty(t, cfg.MetricsAddress)

	_, err = cfg.DeployerAddress()
	require.NoError(t, err, "generated deployer should parse")

	require.FileExists(t, path)
	require.FileExists(t, filepath.Join(dir, "deployer.key"))

	// A second load reads the persisted file back unchanged.
	reloaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, cfg.Deployer, reloaded.Deployer)
	require.Equal(t, cfg.DistributionRatioBps, reloaded.DistributionRatioBps)
}

func TestLoadRejectsShortDeployer(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "DataDir = \"./data\"\nDeployer = \"0x01\"\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}

func TestLoadRejectsOutOfRangeRatio(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	contents := "DataDir = \"./data\"\nDeployer = \"0x0000000000000000000000000000000000000001\"\nDistributionRatioBps = 10001\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
