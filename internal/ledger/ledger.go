// Package ledger defines the token-ledger contract the pool engine invokes
// and an in-memory implementation of it over the host account store.
//
// The engine treats the ledger as an external collaborator with four atomic
// operations. Each operation either fully succeeds or fails without effect;
// there is no partial transfer. Authorization is by signature: either the
// transaction signed for the authority account, or a single-use derived
// signer stands in for it.
package ledger

import (
	"log/slog"
	"math"

	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/internal/host"
	"github.com/lugondev/go-amm/pkg/types"
)

// Ledger is the token-ledger contract: the four operations the pool engine
// invokes but does not implement.
type Ledger interface {
	// Transfer moves amount from one token account to another. The authority
	// must be the source account's owner.
	Transfer(from, to types.Pubkey, authority host.Authority, amount uint64) error

	// MintTo creates amount new tokens in the destination account. The
	// authority must be the mint's mint authority.
	MintTo(mint, to types.Pubkey, authority host.Authority, amount uint64) error

	// Burn destroys amount tokens from the source account. The authority must
	// be the source account's owner.
	Burn(mint, from types.Pubkey, authority host.Authority, amount uint64) error

	// InitializeMint initializes a mint record with the given decimals and
	// mint authority. The account must already exist, sized for a mint.
	InitializeMint(mint types.Pubkey, decimals uint8, mintAuthority types.Pubkey) error
}

// MemoryLedger implements Ledger over a host account store, with records
// owned by a fixed token program id.
type MemoryLedger struct {
	store   *host.AccountStore
	program types.Pubkey
	logger  *slog.Logger
}

// NewMemoryLedger creates a ledger whose records live in the given store and
// are owned by tokenProgram.
func NewMemoryLedger(store *host.AccountStore, tokenProgram types.Pubkey) *MemoryLedger {
	return &MemoryLedger{
		store:   store,
		program: tokenProgram,
		logger:  slog.Default(),
	}
}

// WithLogger sets a custom logger.
func (l *MemoryLedger) WithLogger(logger *slog.Logger) *MemoryLedger {
	if logger != nil {
		l.logger = logger
	}
	return l
}

// ProgramID returns the token program id owning all ledger records.
func (l *MemoryLedger) ProgramID() types.Pubkey {
	return l.program
}

func (l *MemoryLedger) loadTokenAccount(addr types.Pubkey) (*TokenAccount, *types.Account, error) {
	account := l.store.Get(addr)
	if account == nil {
		return nil, nil, errors.ErrAccountNotFound
	}
	if !account.Owner.Equals(l.program) {
		return nil, nil, errors.ErrInvalidAccountOwner
	}
	record, err := DecodeTokenAccount(account.Data)
	if err != nil {
		return nil, nil, err
	}
	if record.State != accountStateInitialized {
		return nil, nil, errors.ErrInvalidAccountData
	}
	return record, account, nil
}

func (l *MemoryLedger) loadMint(addr types.Pubkey) (*Mint, *types.Account, error) {
	account := l.store.Get(addr)
	if account == nil {
		return nil, nil, errors.ErrAccountNotFound
	}
	if !account.Owner.Equals(l.program) {
		return nil, nil, errors.ErrInvalidAccountOwner
	}
	record, err := DecodeMint(account.Data)
	if err != nil {
		return nil, nil, err
	}
	if !record.Initialized {
		return nil, nil, errors.ErrInvalidAccountData
	}
	return record, account, nil
}

// Transfer implements Ledger.
func (l *MemoryLedger) Transfer(from, to types.Pubkey, authority host.Authority, amount uint64) error {
	source, sourceAccount, err := l.loadTokenAccount(from)
	if err != nil {
		return err
	}
	dest, destAccount, err := l.loadTokenAccount(to)
	if err != nil {
		return err
	}
	if !source.Mint.Equals(dest.Mint) {
		return errors.ErrInvalidAccountData
	}
	if !authority.Address.Equals(source.Owner) {
		return errors.ErrMissingSignature
	}
	if err := authority.Verify(); err != nil {
		return err
	}
	if source.Amount < amount {
		return errors.ErrInsufficientFunds
	}
	if dest.Amount > math.MaxUint64-amount {
		return errors.ErrMathOverflow
	}

	source.Amount -= amount
	dest.Amount += amount
	sourceAccount.Data = source.Encode()
	destAccount.Data = dest.Encode()
	return nil
}

// MintTo implements Ledger.
func (l *MemoryLedger) MintTo(mint, to types.Pubkey, authority host.Authority, amount uint64) error {
	mintRecord, mintAccount, err := l.loadMint(mint)
	if err != nil {
		return err
	}
	dest, destAccount, err := l.loadTokenAccount(to)
	if err != nil {
		return err
	}
	if !dest.Mint.Equals(mint) {
		return errors.ErrInvalidAccountData
	}
	if !mintRecord.HasMintAuthority || !authority.Address.Equals(mintRecord.MintAuthority) {
		return errors.ErrMissingSignature
	}
	if err := authority.Verify(); err != nil {
		return err
	}
	if mintRecord.Supply > math.MaxUint64-amount {
		return errors.ErrMathOverflow
	}

	mintRecord.Supply += amount
	dest.Amount += amount
	mintAccount.Data = mintRecord.Encode()
	destAccount.Data = dest.Encode()
	return nil
}

// Burn implements Ledger.
func (l *MemoryLedger) Burn(mint, from types.Pubkey, authority host.Authority, amount uint64) error {
	mintRecord, mintAccount, err := l.loadMint(mint)
	if err != nil {
		return err
	}
	source, sourceAccount, err := l.loadTokenAccount(from)
	if err != nil {
		return err
	}
	if !source.Mint.Equals(mint) {
		return errors.ErrInvalidAccountData
	}
	if !authority.Address.Equals(source.Owner) {
		return errors.ErrMissingSignature
	}
	if err := authority.Verify(); err != nil {
		return err
	}
	if source.Amount < amount || mintRecord.Supply < amount {
		return errors.ErrInsufficientFunds
	}

	source.Amount -= amount
	mintRecord.Supply -= amount
	sourceAccount.Data = source.Encode()
	mintAccount.Data = mintRecord.Encode()
	return nil
}

// InitializeMint implements Ledger.
func (l *MemoryLedger) InitializeMint(mint types.Pubkey, decimals uint8, mintAuthority types.Pubkey) error {
	account := l.store.Get(mint)
	if account == nil {
		return errors.ErrAccountNotFound
	}
	if !account.Owner.Equals(l.program) {
		return errors.ErrInvalidAccountOwner
	}
	if len(account.Data) != MintSize {
		return errors.ErrInvalidAccountData
	}
	if existing, err := DecodeMint(account.Data); err == nil && existing.Initialized {
		return errors.ErrAccountExists
	}

	record := &Mint{
		MintAuthority:    mintAuthority,
		HasMintAuthority: true,
		Decimals:         decimals,
		Initialized:      true,
	}
	account.Data = record.Encode()
	return nil
}

// InitializeAccount initializes a token account record for (mint, owner). The
// account must already exist, owned by the token program and sized for a
// token account. This stands in for the external associated-account creation
// flow.
func (l *MemoryLedger) InitializeAccount(addr, mint, owner types.Pubkey) error {
	account := l.store.Get(addr)
	if account == nil {
		return errors.ErrAccountNotFound
	}
	if !account.Owner.Equals(l.program) {
		return errors.ErrInvalidAccountOwner
	}
	if len(account.Data) != TokenAccountSize {
		return errors.ErrInvalidAccountData
	}
	if existing, err := DecodeTokenAccount(account.Data); err == nil && existing.State == accountStateInitialized {
		return errors.ErrAccountExists
	}

	record := &TokenAccount{
		Mint:  mint,
		Owner: owner,
		State: accountStateInitialized,
	}
	account.Data = record.Encode()
	return nil
}

// CreateTokenAccount places a fresh initialized token account for (mint,
// owner) directly into the store. It models the account-creation collaborator
// that funds and allocates associated accounts outside the engine.
func (l *MemoryLedger) CreateTokenAccount(addr, mint, owner types.Pubkey) error {
	if l.store.Get(addr) != nil {
		return errors.ErrAccountExists
	}
	l.store.Put(addr, &types.Account{
		Lamports: host.RentExemptMinimum(TokenAccountSize),
		Data:     make([]byte, TokenAccountSize),
		Owner:    l.program,
	})
	return l.InitializeAccount(addr, mint, owner)
}

// Balance returns the balance of a token account.
func (l *MemoryLedger) Balance(addr types.Pubkey) (uint64, error) {
	record, _, err := l.loadTokenAccount(addr)
	if err != nil {
		return 0, err
	}
	return record.Amount, nil
}

// Supply returns the outstanding supply of a mint.
func (l *MemoryLedger) Supply(mint types.Pubkey) (uint64, error) {
	record, _, err := l.loadMint(mint)
	if err != nil {
		return 0, err
	}
	return record.Supply, nil
}
