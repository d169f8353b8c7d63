// Package types provides the base Solana types shared across the go-amm engine.
// It wraps and extends the solana-go library types for consistency and convenience.
package types

import (
	"github.com/gagliardetto/solana-go"
)

// Pubkey is a Solana public key (32 bytes).
type Pubkey = solana.PublicKey

// Account represents a Solana account with its data and metadata.
type Account struct {
	// Lamports is the number of lamports owned by this account.
	Lamports uint64 `json:"lamports"`

	// Data is the data held in this account.
	Data []byte `json:"data"`

	// Owner is the program that owns this account.
	Owner Pubkey `json:"owner"`

	// Executable indicates if the account contains a program.
	Executable bool `json:"executable"`
}

// Clone returns a deep copy of the account.
func (a *Account) Clone() *Account {
	data := make([]byte, len(a.Data))
	copy(data, a.Data)
	return &Account{
		Lamports:   a.Lamports,
		Data:       data,
		Owner:      a.Owner,
		Executable: a.Executable,
	}
}

// AccountMeta describes a single account involved in an instruction.
type AccountMeta struct {
	// Pubkey is the public key of the account.
	Pubkey Pubkey `json:"pubkey"`

	// IsSigner indicates if the account is a signer.
	IsSigner bool `json:"is_signer"`

	// IsWritable indicates if the account is writable.
	IsWritable bool `json:"is_writable"`
}

// Meta constructs a read-only, non-signer AccountMeta for the given key.
func Meta(pubkey Pubkey) AccountMeta {
	return AccountMeta{Pubkey: pubkey}
}

// Signer marks the meta as a signer and returns it.
func (am AccountMeta) Signer() AccountMeta {
	am.IsSigner = true
	return am
}

// Writable marks the meta as writable and returns it.
func (am AccountMeta) Writable() AccountMeta {
	am.IsWritable = true
	return am
}

// Instruction represents a Solana instruction.
type Instruction struct {
	// ProgramID is the program that will process this instruction.
	ProgramID Pubkey `json:"program_id"`

	// Accounts is the list of accounts to pass to the program.
	Accounts []AccountMeta `json:"accounts"`

	// Data is the instruction data.
	Data []byte `json:"data"`
}

// LamportsPerSOL is the number of lamports per SOL.
const LamportsPerSOL uint64 = 1_000_000_000
