package cmd

import (
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/spf13/cobra"

	"github.com/lugondev/go-amm/internal/amm"
	"github.com/lugondev/go-amm/internal/config"
)

var (
	deriveSeed  uint64
	deriveMintX string
	deriveMintY string
)

var deriveCmd = &cobra.Command{
	Use:   "derive",
	Short: "Derive pool addresses",
	Long: `Derive the pool, share-mint and vault addresses for a (seed, pair)
combination under the configured program id.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgFile)
		if err != nil {
			return err
		}
		program, err := solana.PublicKeyFromBase58(cfg.Solana.Program)
		if err != nil {
			return fmt.Errorf("invalid program id: %w", err)
		}
		mintX, err := solana.PublicKeyFromBase58(deriveMintX)
		if err != nil {
			return fmt.Errorf("invalid mint-x: %w", err)
		}
		mintY, err := solana.PublicKeyFromBase58(deriveMintY)
		if err != nil {
			return fmt.Errorf("invalid mint-y: %w", err)
		}

		pool, configBump, err := amm.DerivePoolAddress(program, deriveSeed, mintX, mintY)
		if err != nil {
			return fmt.Errorf("derive pool: %w", err)
		}
		shareMint, shareBump, err := amm.DeriveShareMintAddress(program, pool)
		if err != nil {
			return fmt.Errorf("derive share mint: %w", err)
		}
		vaultX, err := amm.DeriveVaultAddress(pool, amm.TokenProgramID, mintX)
		if err != nil {
			return fmt.Errorf("derive vault x: %w", err)
		}
		vaultY, err := amm.DeriveVaultAddress(pool, amm.TokenProgramID, mintY)
		if err != nil {
			return fmt.Errorf("derive vault y: %w", err)
		}

		fmt.Printf("Pool:       %s (bump %d)\n", pool, configBump)
		fmt.Printf("Share Mint: %s (bump %d)\n", shareMint, shareBump)
		fmt.Printf("Vault X:    %s\n", vaultX)
		fmt.Printf("Vault Y:    %s\n", vaultY)

		return nil
	},
}

func init() {
	deriveCmd.Flags().Uint64Var(&deriveSeed, "seed", 0, "pool seed")
	deriveCmd.Flags().StringVar(&deriveMintX, "mint-x", "", "mint X address (base58)")
	deriveCmd.Flags().StringVar(&deriveMintY, "mint-y", "", "mint Y address (base58)")
	cobra.CheckErr(deriveCmd.MarkFlagRequired("mint-x"))
	cobra.CheckErr(deriveCmd.MarkFlagRequired("mint-y"))

	rootCmd.AddCommand(deriveCmd)
}
