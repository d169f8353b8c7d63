// Package amm implements the pool-accounting engine: the pool-configuration
// state machine, the deposit/withdraw share math, the constant-product swap,
// and the validation discipline that makes the engine safe to call with an
// attacker-controlled account list. Every address the engine trusts is
// re-derived and compared against the caller's accounts; nothing is taken on
// faith from instruction inputs.
package amm

import (
	"encoding/binary"

	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/pkg/curve"
	"github.com/lugondev/go-amm/pkg/types"
)

// PoolState is the lifecycle state of a pool. The enumeration is closed:
// SetState rejects anything above StateWithdrawOnly.
type PoolState uint8

const (
	// StateUninitialized is the zero value of a freshly created account.
	StateUninitialized PoolState = iota

	// StateInitialized permits deposits, withdrawals, and swaps.
	StateInitialized

	// StateDisabled halts the pool entirely.
	StateDisabled

	// StateWithdrawOnly permits withdrawals only, so providers can always
	// exit unless the pool is fully halted.
	StateWithdrawOnly
)

// String returns a human-readable state name.
func (s PoolState) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateInitialized:
		return "initialized"
	case StateDisabled:
		return "disabled"
	case StateWithdrawOnly:
		return "withdraw-only"
	default:
		return "invalid"
	}
}

// ConfigLen is the exact serialized size of a pool configuration record:
// state(1) + seed(8) + authority(32) + mint_x(32) + mint_y(32) + fee(2) + bump(1).
const ConfigLen = 1 + 8 + 32 + 32 + 32 + 2 + 1

// ShareDecimals is the fixed decimal scale of the pool-share mint.
const ShareDecimals = 6

// Config is the persistent record of a pool's identity, trading pair, fee,
// and lifecycle state. The account holding it is the signing authority over
// the two reserves and the share mint; it owns no tokens itself.
type Config struct {
	// State governs which instructions may execute.
	State PoolState

	// Seed distinguishes multiple pools over the same token pair.
	Seed uint64

	// AuthorityKey is the administrative authority. All-zero means the pool
	// is immutable; use Authority to read it.
	AuthorityKey types.Pubkey

	// MintX and MintY identify the two reserve token types. Immutable after
	// creation.
	MintX types.Pubkey
	MintY types.Pubkey

	// Fee is the swap fee in basis points, always below 10000.
	Fee uint16

	// ConfigBump is the cached derived-address bump byte, so later
	// instructions avoid re-searching for it.
	ConfigBump uint8
}

// Authority returns the administrative authority, with ok=false when the
// stored key is the all-zero immutable-pool sentinel.
func (c *Config) Authority() (types.Pubkey, bool) {
	if c.AuthorityKey.IsZero() {
		return types.Pubkey{}, false
	}
	return c.AuthorityKey, true
}

// SetState transitions the lifecycle state, rejecting values outside the
// closed enumeration.
func (c *Config) SetState(state PoolState) error {
	if state > StateWithdrawOnly {
		return errors.ErrInvalidState
	}
	c.State = state
	return nil
}

// SetFee sets the swap fee, rejecting 100% or more.
func (c *Config) SetFee(fee uint16) error {
	if fee >= curve.FeeDenominator {
		return errors.ErrFeeOutOfRange
	}
	c.Fee = fee
	return nil
}

// DecodeConfig parses a pool configuration record. The length must match
// exactly and the state byte must be within the closed enumeration. This is
// the parse boundary: bytes are never reinterpreted as a record without
// passing through here.
func DecodeConfig(data []byte) (*Config, error) {
	if len(data) != ConfigLen {
		return nil, errors.ErrInvalidAccountData
	}

	c := &Config{}
	c.State = PoolState(data[0])
	if c.State > StateWithdrawOnly {
		return nil, errors.ErrInvalidAccountData
	}
	c.Seed = binary.LittleEndian.Uint64(data[1:9])
	copy(c.AuthorityKey[:], data[9:41])
	copy(c.MintX[:], data[41:73])
	copy(c.MintY[:], data[73:105])
	c.Fee = binary.LittleEndian.Uint16(data[105:107])
	if c.Fee >= curve.FeeDenominator {
		return nil, errors.ErrInvalidAccountData
	}
	c.ConfigBump = data[107]
	return c, nil
}

// Encode serializes the record into its fixed 108-byte layout.
func (c *Config) Encode() []byte {
	data := make([]byte, ConfigLen)
	data[0] = uint8(c.State)
	binary.LittleEndian.PutUint64(data[1:9], c.Seed)
	copy(data[9:41], c.AuthorityKey[:])
	copy(data[41:73], c.MintX[:])
	copy(data[73:105], c.MintY[:])
	binary.LittleEndian.PutUint16(data[105:107], c.Fee)
	data[107] = c.ConfigBump
	return data
}

// LoadConfig decodes a pool configuration from an account, additionally
// requiring the account to be owned by the pool program. Handlers must load
// configs through here so an attacker-supplied look-alike account under a
// different program is rejected before its contents are trusted.
func LoadConfig(account *types.Account, program types.Pubkey) (*Config, error) {
	if account == nil {
		return nil, errors.ErrAccountNotFound
	}
	if !account.Owner.Equals(program) {
		return nil, errors.ErrInvalidAccountOwner
	}
	return DecodeConfig(account.Data)
}
