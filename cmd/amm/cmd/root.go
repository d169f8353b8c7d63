package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "amm",
	Short: "AMM CLI - constant-product pool tooling",
	Long: `AMM is a CLI application for working with constant-product liquidity pools.

It provides commands for:
- Deriving pool, share-mint and vault addresses
- Decoding pool configuration records
- Inspecting on-chain pool accounts
- And more...`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.amm.yaml)")
	rootCmd.PersistentFlags().String("rpc", "https://api.devnet.solana.com", "Solana RPC endpoint")
	rootCmd.PersistentFlags().String("program", "", "pool program id (base58)")

	if err := viper.BindPFlag("solana.rpc", rootCmd.PersistentFlags().Lookup("rpc")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding flag: %v\n", err)
	}
	if err := viper.BindPFlag("solana.program", rootCmd.PersistentFlags().Lookup("program")); err != nil {
		fmt.Fprintf(os.Stderr, "Error binding flag: %v\n", err)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".amm")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}
