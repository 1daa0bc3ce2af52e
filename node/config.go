// Package node wires the engine's components (blockchain, builder,
// pipeline, predeploy, rpc.Handler) into one running HTTP process, the
// way juno's own node package composes its services behind a single
// Config struct validated with go-playground/validator before startup.
package node

import (
	"github.com/go-playground/validator/v10"

	"github.com/starknet-devnet/devnetgo/core/felt"
)

// Config is the resolved devnet configuration, bound from
// spf13/viper+pflag in cmd/devnet and validated here before any component
// is constructed — matching SPEC_FULL.md §6's config surface.
type Config struct {
	Host string `mapstructure:"host" validate:"required"`
	Port int    `mapstructure:"port" validate:"gte=1,lte=65535"`

	Seed           int64  `mapstructure:"seed"`
	TotalAccounts  int    `mapstructure:"total_accounts" validate:"gte=0,lte=1000"`
	InitialBalance uint64 `mapstructure:"initial_balance" validate:"gte=0"`
	GasPrice       uint64 `mapstructure:"gas_price" validate:"gte=0"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=1"`
	ChainID        string `mapstructure:"chain_id" validate:"required"`
}

// DefaultConfig returns the node's default settings. InitialBalance is a
// uint64, so it defaults to 10^18 and cannot be set above 2^64-1.
func DefaultConfig() Config {
	return Config{
		Host:           "127.0.0.1",
		Port:           5050,
		Seed:           123,
		TotalAccounts:  10,
		InitialBalance: 1_000_000_000_000_000_000,
		GasPrice:       100_000_000_000,
		TimeoutSeconds: 120,
		ChainID:        "SN_GOERLI",
	}
}

var validate = validator.New()

// Validate checks Config's struct tags, surfacing BindFailure-taxonomy
// errors (spec.md §7) before any component is constructed.
func (c Config) Validate() error {
	return validate.Struct(c)
}

func (c Config) chainIDFelt() *felt.Felt {
	return new(felt.Felt).SetBytes([]byte(c.ChainID))
}
