package ledger

import (
	"encoding/binary"

	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/pkg/types"
)

// Record sizes for the token ledger, byte-exact with the SPL token layout.
const (
	// MintSize is the serialized size of a mint record.
	MintSize = 82

	// TokenAccountSize is the serialized size of a token account record.
	TokenAccountSize = 165
)

// Token account states.
const (
	accountStateUninitialized = 0
	accountStateInitialized   = 1
)

// Mint is a token mint record: the total supply and the authority allowed to
// mint more.
type Mint struct {
	// MintAuthority may mint new tokens. Only meaningful when HasMintAuthority.
	MintAuthority    types.Pubkey
	HasMintAuthority bool

	// Supply is the total outstanding amount of this token.
	Supply uint64

	// Decimals is the display scale of the token.
	Decimals uint8

	// Initialized reports whether the record has been initialized.
	Initialized bool

	// FreezeAuthority may freeze token accounts. Only meaningful when
	// HasFreezeAuthority.
	FreezeAuthority    types.Pubkey
	HasFreezeAuthority bool
}

// DecodeMint parses a mint record, validating the exact length. This is the
// explicit parse boundary for mint bytes: no reinterpretation, no partial reads.
func DecodeMint(data []byte) (*Mint, error) {
	if len(data) != MintSize {
		return nil, errors.ErrInvalidAccountData
	}

	m := &Mint{}
	m.HasMintAuthority = binary.LittleEndian.Uint32(data[0:4]) != 0
	copy(m.MintAuthority[:], data[4:36])
	m.Supply = binary.LittleEndian.Uint64(data[36:44])
	m.Decimals = data[44]
	m.Initialized = data[45] != 0
	m.HasFreezeAuthority = binary.LittleEndian.Uint32(data[46:50]) != 0
	copy(m.FreezeAuthority[:], data[50:82])
	return m, nil
}

// Encode serializes the mint record into its fixed layout.
func (m *Mint) Encode() []byte {
	data := make([]byte, MintSize)
	if m.HasMintAuthority {
		binary.LittleEndian.PutUint32(data[0:4], 1)
	}
	copy(data[4:36], m.MintAuthority[:])
	binary.LittleEndian.PutUint64(data[36:44], m.Supply)
	data[44] = m.Decimals
	if m.Initialized {
		data[45] = 1
	}
	if m.HasFreezeAuthority {
		binary.LittleEndian.PutUint32(data[46:50], 1)
	}
	copy(data[50:82], m.FreezeAuthority[:])
	return data
}

// TokenAccount is a token holding record: an amount of one mint, controlled
// by an owner.
type TokenAccount struct {
	// Mint identifies the token type held.
	Mint types.Pubkey

	// Owner controls transfers out of this account.
	Owner types.Pubkey

	// Amount is the balance, never cached by the engine: always read fresh.
	Amount uint64

	// State is the account lifecycle state.
	State uint8
}

// DecodeTokenAccount parses a token account record, validating the exact
// length. Delegate, native, and close-authority fields are not modeled.
func DecodeTokenAccount(data []byte) (*TokenAccount, error) {
	if len(data) != TokenAccountSize {
		return nil, errors.ErrInvalidAccountData
	}

	a := &TokenAccount{}
	copy(a.Mint[:], data[0:32])
	copy(a.Owner[:], data[32:64])
	a.Amount = binary.LittleEndian.Uint64(data[64:72])
	a.State = data[108]
	return a, nil
}

// Encode serializes the token account record into its fixed layout.
func (a *TokenAccount) Encode() []byte {
	data := make([]byte, TokenAccountSize)
	copy(data[0:32], a.Mint[:])
	copy(data[32:64], a.Owner[:])
	binary.LittleEndian.PutUint64(data[64:72], a.Amount)
	data[108] = a.State
	return data
}
