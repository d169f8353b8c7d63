package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/lugondev/go-amm/internal/amm"
	"github.com/lugondev/go-amm/internal/config"
	solclient "github.com/lugondev/go-amm/internal/solana"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [address]",
	Short: "Inspect an on-chain pool",
	Long: `Fetch a pool configuration account over RPC, decode it and print it
as YAML together with the account balance.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		address, err := solana.PublicKeyFromBase58(args[0])
		if err != nil {
			return fmt.Errorf("invalid address: %w", err)
		}

		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}

		client := solclient.NewClient(cfg.Solana.GetRPCEndpoint())
		ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(cfg.Solana.Timeout)*time.Second)
		defer cancel()

		data, err := client.GetAccountData(ctx, address)
		if err != nil {
			return err
		}
		poolConfig, err := amm.DecodeConfig(data)
		if err != nil {
			return fmt.Errorf("account is not a pool configuration: %w", err)
		}

		balance, err := client.GetBalanceSOL(ctx, address)
		if err != nil {
			return err
		}

		fmt.Printf("Address: %s\n", address)
		fmt.Printf("Balance: %.9f SOL\n", balance)
		fmt.Println()

		out, err := renderConfig(poolConfig)
		if err != nil {
			return err
		}
		fmt.Print(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
