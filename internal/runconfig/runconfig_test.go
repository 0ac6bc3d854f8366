package runconfig_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/amazingrofa/geofac/internal/runconfig"
	"github.com/amazingrofa/geofac/kernel"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	f, err := runconfig.Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	require.NoError(t, f.Validate())
	require.Equal(t, "gaussian", f.Search.KernelVariant)
}

func TestLoadExpandsEnvironmentVariables(t *testing.T) {
	t.Setenv("GRFC_TEST_SIGMA", "0.5")
	path := filepath.Join(t.TempDir(), "grfc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("search:\n  sigma: ${GRFC_TEST_SIGMA}\n"), 0644))

	f, err := runconfig.Load(path)
	require.NoError(t, err)
	require.Equal(t, 0.5, f.Search.Sigma)
}

func TestEngineConfigTranslatesKernelVariant(t *testing.T) {
	f := runconfig.Default()
	f.Search.KernelVariant = "dirichlet"
	cfg := f.EngineConfig()
	require.Equal(t, kernel.Dirichlet, cfg.KernelVariant)
}

func TestValidateRejectsBadThreshold(t *testing.T) {
	f := runconfig.Default()
	f.Search.Threshold = 1.5
	require.Error(t, f.Validate())
}

func TestSaveThenLoadRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "grfc.yaml")
	f := runconfig.Default()
	f.Search.Samples = 42
	require.NoError(t, f.Save(path))

	loaded, err := runconfig.Load(path)
	require.NoError(t, err)
	require.Equal(t, int64(42), loaded.Search.Samples)
}
