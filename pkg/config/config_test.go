package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pscal-toolchain/core/pkg/config"
)

func TestLoadMergesYamlAndEnv(t *testing.T) {
	t.Setenv(config.EnvUnitPath, "/opt/units:/extra/units")

	cfg, err := config.Load([]byte("unit_search_path:\n  - /usr/share/pscal/units\n"))
	require.NoError(t, err)

	assert.Equal(t, []string{
		"/usr/share/pscal/units", "/opt/units", "/extra/units",
	}, cfg.SearchPath())
}

func TestLoadWithNoDataAndNoEnv(t *testing.T) {
	t.Setenv(config.EnvUnitPath, "")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Empty(t, cfg.SearchPath())
}
