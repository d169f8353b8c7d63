package amm

import (
	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/internal/ledger"
	"github.com/lugondev/go-amm/pkg/types"
)

// The account list of every instruction is positional and caller-supplied,
// so each handler first decodes the list into a named struct and then
// validates every address it intends to trust. An account list of the wrong
// shape is a decode error, not a panic.

// initializeAccounts is the account view for Initialize.
type initializeAccounts struct {
	initializer   accountView
	shareMint     accountView
	config        accountView
	systemProgram accountView
	tokenProgram  accountView
}

func initializeAccountsFrom(views []accountView) (*initializeAccounts, error) {
	if len(views) != 5 {
		return nil, errors.ErrNotEnoughAccounts
	}
	return &initializeAccounts{
		initializer:   views[0],
		shareMint:     views[1],
		config:        views[2],
		systemProgram: views[3],
		tokenProgram:  views[4],
	}, nil
}

// liquidityAccounts is the shared account view for Deposit and Withdraw.
type liquidityAccounts struct {
	user         accountView
	shareMint    accountView
	vaultX       accountView
	vaultY       accountView
	userX        accountView
	userY        accountView
	userShare    accountView
	config       accountView
	tokenProgram accountView
}

func liquidityAccountsFrom(views []accountView) (*liquidityAccounts, error) {
	if len(views) != 9 {
		return nil, errors.ErrNotEnoughAccounts
	}
	return &liquidityAccounts{
		user:         views[0],
		shareMint:    views[1],
		vaultX:       views[2],
		vaultY:       views[3],
		userX:        views[4],
		userY:        views[5],
		userShare:    views[6],
		config:       views[7],
		tokenProgram: views[8],
	}, nil
}

// swapAccounts is the account view for Swap.
type swapAccounts struct {
	user         accountView
	userX        accountView
	userY        accountView
	vaultX       accountView
	vaultY       accountView
	config       accountView
	tokenProgram accountView
}

func swapAccountsFrom(views []accountView) (*swapAccounts, error) {
	if len(views) != 7 {
		return nil, errors.ErrNotEnoughAccounts
	}
	return &swapAccounts{
		user:         views[0],
		userX:        views[1],
		userY:        views[2],
		vaultX:       views[3],
		vaultY:       views[4],
		config:       views[5],
		tokenProgram: views[6],
	}, nil
}

// loadMintRecord decodes a mint record from a view, requiring the account to
// be owned by the token program.
func loadMintRecord(v accountView, tokenProgram types.Pubkey) (*ledger.Mint, error) {
	account := v.Account()
	if account == nil {
		return nil, errors.ErrAccountNotFound
	}
	if !account.Owner.Equals(tokenProgram) {
		return nil, errors.ErrInvalidAccountOwner
	}
	record, err := ledger.DecodeMint(account.Data)
	if err != nil {
		return nil, errors.DecodeFailed("mint record", err)
	}
	return record, nil
}

// loadTokenRecord decodes a token account record from a view, requiring the
// account to be owned by the token program. Reserve balances are always read
// fresh through here, never cached.
func loadTokenRecord(v accountView, tokenProgram types.Pubkey) (*ledger.TokenAccount, error) {
	account := v.Account()
	if account == nil {
		return nil, errors.ErrAccountNotFound
	}
	if !account.Owner.Equals(tokenProgram) {
		return nil, errors.ErrInvalidAccountOwner
	}
	record, err := ledger.DecodeTokenAccount(account.Data)
	if err != nil {
		return nil, errors.DecodeFailed("token account record", err)
	}
	return record, nil
}
