// Package host models the execution environment the pool engine runs inside:
// an account store with all-or-nothing mutation semantics, a clock, account
// creation at derived addresses, and single-use derived-address signers.
//
// The host executes one instruction at a time. There is no locking here; the
// scheduling layer is assumed to reject conflicting instructions before the
// engine runs.
package host

import (
	"log/slog"

	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/pkg/types"
)

// Rent parameters for newly created accounts.
const (
	rentExemptBase    = 890_880
	rentExemptPerByte = 6_960
)

// RentExemptMinimum returns the lamports a fresh account of the given data
// size must hold.
func RentExemptMinimum(size int) uint64 {
	return rentExemptBase + uint64(size)*rentExemptPerByte
}

// AccountStore holds the persisted accounts visible to the engine.
type AccountStore struct {
	accounts map[types.Pubkey]*types.Account
}

// NewAccountStore creates an empty account store.
func NewAccountStore() *AccountStore {
	return &AccountStore{
		accounts: make(map[types.Pubkey]*types.Account),
	}
}

// Get returns the account at addr, or nil if none exists.
func (s *AccountStore) Get(addr types.Pubkey) *types.Account {
	return s.accounts[addr]
}

// Put stores the account at addr, replacing any previous record.
func (s *AccountStore) Put(addr types.Pubkey, account *types.Account) {
	s.accounts[addr] = account
}

// Snapshot captures the full store state so a failed instruction can be
// rolled back without partial mutation.
func (s *AccountStore) Snapshot() map[types.Pubkey]*types.Account {
	snap := make(map[types.Pubkey]*types.Account, len(s.accounts))
	for addr, account := range s.accounts {
		snap[addr] = account.Clone()
	}
	return snap
}

// Restore replaces the store contents with a previously taken snapshot.
func (s *AccountStore) Restore(snap map[types.Pubkey]*types.Account) {
	s.accounts = snap
}

// Len returns the number of stored accounts.
func (s *AccountStore) Len() int {
	return len(s.accounts)
}

// Clock supplies the current unix timestamp to the engine.
type Clock func() int64

// Runtime bundles the host primitives an instruction handler may use.
type Runtime struct {
	// Store is the persisted account state.
	Store *AccountStore

	// Clock returns the current unix timestamp.
	Clock Clock

	// Program is the engine's own program id; accounts the engine creates for
	// itself are owned by it, and derived signers sign under it.
	Program types.Pubkey

	// Logger is used for debug logging (optional).
	Logger *slog.Logger
}

// NewRuntime creates a runtime over the given store and clock.
func NewRuntime(store *AccountStore, clock Clock, program types.Pubkey) *Runtime {
	return &Runtime{
		Store:   store,
		Clock:   clock,
		Program: program,
		Logger:  slog.Default(),
	}
}

// Now returns the host's current unix timestamp.
func (r *Runtime) Now() int64 {
	return r.Clock()
}

// CreateAccount creates a rent-exempt account of the given size at a derived
// address, funded by payer. The signer's seeds must re-derive to addr: the
// program is creating an account at an address it holds no private key for,
// so the derivation itself is the proof of control. Fails if any account
// already exists at addr.
func (r *Runtime) CreateAccount(payer types.Pubkey, payerSigned bool, addr types.Pubkey, signer *Signer, size int, owner types.Pubkey) error {
	if !payerSigned {
		return errors.ErrMissingSignature
	}
	derived, err := signer.Address(r.Program)
	if err != nil {
		return err
	}
	if !derived.Equals(addr) {
		return errors.ErrAddressMismatch
	}
	if err := signer.Consume(); err != nil {
		return err
	}
	if r.Store.Get(addr) != nil {
		return errors.ErrAccountExists
	}

	payerAccount := r.Store.Get(payer)
	if payerAccount == nil {
		return errors.ErrAccountNotFound
	}
	rent := RentExemptMinimum(size)
	if payerAccount.Lamports < rent {
		return errors.ErrInsufficientFunds
	}
	payerAccount.Lamports -= rent

	r.Store.Put(addr, &types.Account{
		Lamports: rent,
		Data:     make([]byte, size),
		Owner:    owner,
	})
	return nil
}
