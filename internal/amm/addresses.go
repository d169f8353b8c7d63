package amm

import (
	"encoding/binary"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/internal/host"
	"github.com/lugondev/go-amm/pkg/types"
)

// Well-known companion program ids, fixed at build time.
var (
	// TokenProgramID is the token-ledger program owning mints and token accounts.
	TokenProgramID = solana.TokenProgramID

	// AssociatedTokenProgramID is the derivation authority for associated
	// token addresses.
	AssociatedTokenProgramID = solana.SPLAssociatedTokenAccountProgramID

	// SystemProgramID is the account-creation program.
	SystemProgramID = solana.SystemProgramID
)

// Derived-address seed tags.
var (
	configSeedTag = []byte("config")
	shareSeedTag  = []byte("mint_lp")
)

// configSeeds returns the seed list (bump excluded) for a pool address:
// ["config", seed LE, mint_x, mint_y].
func configSeeds(seed uint64, mintX, mintY types.Pubkey) [][]byte {
	seedBytes := make([]byte, 8)
	binary.LittleEndian.PutUint64(seedBytes, seed)
	return [][]byte{configSeedTag, seedBytes, mintX[:], mintY[:]}
}

// shareMintSeeds returns the seed list (bump excluded) for a pool's share
// mint: ["mint_lp", pool address].
func shareMintSeeds(pool types.Pubkey) [][]byte {
	return [][]byte{shareSeedTag, pool[:]}
}

// DerivePoolAddress computes the pool address and bump for a (seed, pair)
// combination under the given program.
func DerivePoolAddress(program types.Pubkey, seed uint64, mintX, mintY types.Pubkey) (types.Pubkey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(configSeeds(seed, mintX, mintY), program)
	if err != nil {
		return types.Pubkey{}, 0, errors.ErrAddressMismatch.WithCause(err)
	}
	return addr, bump, nil
}

// DeriveShareMintAddress computes the share-mint address and bump for a pool
// under the given program.
func DeriveShareMintAddress(program, pool types.Pubkey) (types.Pubkey, uint8, error) {
	addr, bump, err := solana.FindProgramAddress(shareMintSeeds(pool), program)
	if err != nil {
		return types.Pubkey{}, 0, errors.ErrAddressMismatch.WithCause(err)
	}
	return addr, bump, nil
}

// DeriveVaultAddress computes the expected reserve address for (pool, token
// program, mint) under the associated-account derivation scheme.
func DeriveVaultAddress(pool, tokenProgram, mint types.Pubkey) (types.Pubkey, error) {
	addr, _, err := solana.FindProgramAddress(
		[][]byte{pool[:], tokenProgram[:], mint[:]},
		AssociatedTokenProgramID,
	)
	if err != nil {
		return types.Pubkey{}, errors.ErrAddressMismatch.WithCause(err)
	}
	return addr, nil
}

// verifyPoolAddress re-derives the pool address from the config's own fields
// and cached bump and compares it to the caller-supplied account. A config
// record copied into an account at the wrong address fails here.
func verifyPoolAddress(program, pool types.Pubkey, config *Config) error {
	seeds := append(configSeeds(config.Seed, config.MintX, config.MintY), []byte{config.ConfigBump})
	derived, err := solana.CreateProgramAddress(seeds, program)
	if err != nil {
		return errors.ErrAddressMismatch.WithCause(err)
	}
	if !derived.Equals(pool) {
		return errors.ErrAddressMismatch
	}
	return nil
}

// verifyVaultAddress checks that a caller-supplied reserve account is the
// associated address for (pool, token program, mint).
func verifyVaultAddress(vault, pool, tokenProgram, mint types.Pubkey) error {
	expected, err := DeriveVaultAddress(pool, tokenProgram, mint)
	if err != nil {
		return err
	}
	if !expected.Equals(vault) {
		return errors.ErrAddressMismatch
	}
	return nil
}

// poolSigner builds a fresh single-use signer for the pool address. Each
// privileged ledger operation constructs its own; a signer is never shared
// between two legs.
func poolSigner(config *Config) *host.Signer {
	seeds := append(configSeeds(config.Seed, config.MintX, config.MintY), []byte{config.ConfigBump})
	return host.NewSigner(seeds...)
}
