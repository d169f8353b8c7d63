package amm

import (
	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/internal/host"
	"github.com/lugondev/go-amm/pkg/curve"
)

// processSwap trades an exact input of one reserve token for a computed
// output of the other under the constant-product formula. The input transfer
// is issued before the output transfer, so the pool is never observed to have
// paid out before receiving payment.
func (p *Processor) processSwap(views []accountView, payload []byte) error {
	accounts, err := swapAccountsFrom(views)
	if err != nil {
		return err
	}
	data, err := DecodeSwapData(payload)
	if err != nil {
		return err
	}

	if p.Runtime.Now() >= data.Expiration {
		return errors.ErrOrderExpired
	}

	config, err := LoadConfig(accounts.config.Account(), p.Program)
	if err != nil {
		return err
	}
	if config.State != StateInitialized {
		return errors.ErrInvalidState
	}
	if !accounts.user.IsSigner() {
		return errors.ErrMissingSignature
	}
	if !accounts.tokenProgram.Pubkey().Equals(TokenProgramID) {
		return errors.ErrAddressMismatch
	}

	configAddr := accounts.config.Pubkey()
	if err := verifyPoolAddress(p.Program, configAddr, config); err != nil {
		return err
	}
	if err := verifyVaultAddress(accounts.vaultX.Pubkey(), configAddr, TokenProgramID, config.MintX); err != nil {
		return err
	}
	if err := verifyVaultAddress(accounts.vaultY.Pubkey(), configAddr, TokenProgramID, config.MintY); err != nil {
		return err
	}

	vaultX, err := loadTokenRecord(accounts.vaultX, TokenProgramID)
	if err != nil {
		return err
	}
	vaultY, err := loadTokenRecord(accounts.vaultY, TokenProgramID)
	if err != nil {
		return err
	}

	// Balances are read fresh from the vaults for every trade.
	var reserveIn, reserveOut uint64
	if data.IsX {
		reserveIn, reserveOut = vaultX.Amount, vaultY.Amount
	} else {
		reserveIn, reserveOut = vaultY.Amount, vaultX.Amount
	}

	result, err := curve.SwapOutput(reserveIn, reserveOut, data.Amount, config.Fee)
	if err != nil {
		return mapCurveError(err)
	}
	if result.Deposit == 0 || result.Withdraw == 0 {
		return errors.ErrZeroSwapLeg
	}
	if result.Withdraw < data.Min {
		return errors.ErrSlippageExceeded
	}

	var userIn, userOut, vaultIn, vaultOut accountView
	if data.IsX {
		userIn, vaultIn = accounts.userX, accounts.vaultX
		userOut, vaultOut = accounts.userY, accounts.vaultY
	} else {
		userIn, vaultIn = accounts.userY, accounts.vaultY
		userOut, vaultOut = accounts.userX, accounts.vaultX
	}

	userAuth := host.SignedBy(accounts.user.Pubkey(), accounts.user.IsSigner())
	if err := p.Ledger.Transfer(userIn.Pubkey(), vaultIn.Pubkey(), userAuth, result.Deposit); err != nil {
		return err
	}

	poolAuth := host.DerivedBy(configAddr, poolSigner(config), p.Program)
	return p.Ledger.Transfer(vaultOut.Pubkey(), userOut.Pubkey(), poolAuth, result.Withdraw)
}
