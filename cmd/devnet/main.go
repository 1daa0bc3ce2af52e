package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	_ "go.uber.org/automaxprocs"

	"github.com/starknet-devnet/devnetgo/node"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	defaults := node.DefaultConfig()
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "devnet",
		Short: "A local StarkNet devnet for testing contracts before deploying to a live network.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, v)
		},
	}

	flags := cmd.Flags()
	flags.String("host", defaults.Host, "address the JSON-RPC server binds to")
	flags.Int("port", defaults.Port, "port the JSON-RPC server binds to")
	flags.Int64("seed", defaults.Seed, "seed for deterministic predeployed account generation")
	flags.Int("accounts", defaults.TotalAccounts, "number of funded accounts to predeploy")
	flags.Uint64("initial-balance", defaults.InitialBalance, "initial fee-token balance credited to each predeployed account")
	flags.Uint64("gas-price", defaults.GasPrice, "L2 gas price used for fee computation")
	flags.Int("timeout", defaults.TimeoutSeconds, "graceful shutdown timeout, in seconds")
	flags.String("chain-id", defaults.ChainID, "chain ID embedded in transaction and block hashes")

	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}
	v.SetEnvPrefix("devnet")
	v.AutomaticEnv()

	return cmd
}

func run(cmd *cobra.Command, v *viper.Viper) error {
	cfg := node.Config{
		Host:           v.GetString("host"),
		Port:           v.GetInt("port"),
		Seed:           v.GetInt64("seed"),
		TotalAccounts:  v.GetInt("accounts"),
		InitialBalance: v.GetUint64("initial-balance"),
		GasPrice:       v.GetUint64("gas-price"),
		TimeoutSeconds: v.GetInt("timeout"),
		ChainID:        v.GetString("chain-id"),
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer logger.Sync() //nolint:errcheck
	sugar := logger.Sugar()

	n, err := node.New(cfg, sugar)
	if err != nil {
		return fmt.Errorf("constructing node: %w", err)
	}

	sugar.Infow("predeployed accounts ready", "count", cfg.TotalAccounts, "seed", cfg.Seed)

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	return n.Run(ctx)
}
