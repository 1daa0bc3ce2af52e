package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigValidates(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())
}

func TestValidateRejectsOutOfRangePort(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Port = 70000
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsMissingChainID(t *testing.T) {
	cfg := DefaultConfig()
	cfg.ChainID = ""
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsTooManyAccounts(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalAccounts = 5000
	assert.Error(t, cfg.Validate())
}

func TestChainIDFeltIsDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	assert.True(t, cfg.chainIDFelt().Equal(cfg.chainIDFelt()))
}
