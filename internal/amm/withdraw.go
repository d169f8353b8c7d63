package amm

import (
	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/internal/host"
	"github.com/lugondev/go-amm/pkg/curve"
)

// processWithdraw pays out proportional amounts of both reserves for the
// shares being burned, then burns them. Withdrawals are permitted in every
// state except Disabled, so providers can always exit unless the pool is
// fully halted. Each payout transfer signs with its own freshly constructed
// pool signer.
func (p *Processor) processWithdraw(views []accountView, payload []byte) error {
	accounts, err := liquidityAccountsFrom(views)
	if err != nil {
		return err
	}
	data, err := DecodeWithdrawData(payload)
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
	if config.State == StateDisabled {
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

	shareMint, err := loadMintRecord(accounts.shareMint, TokenProgramID)
	if err != nil {
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

	var x, y uint64
	if data.Amount == shareMint.Supply {
		// The last holder exiting takes both reserves whole, so no rounding
		// remainder is stranded.
		x, y = vaultX.Amount, vaultY.Amount
	} else {
		x, y, err = curve.WithdrawAmounts(vaultX.Amount, vaultY.Amount, shareMint.Supply, data.Amount)
		if err != nil {
			return mapCurveError(err)
		}
	}

	if x < data.MinX || y < data.MinY {
		return errors.ErrSlippageExceeded
	}

	// A signer is single-use: each payout leg rebuilds its own.
	authX := host.DerivedBy(configAddr, poolSigner(config), p.Program)
	if err := p.Ledger.Transfer(accounts.vaultX.Pubkey(), accounts.userX.Pubkey(), authX, x); err != nil {
		return err
	}
	authY := host.DerivedBy(configAddr, poolSigner(config), p.Program)
	if err := p.Ledger.Transfer(accounts.vaultY.Pubkey(), accounts.userY.Pubkey(), authY, y); err != nil {
		return err
	}

	userAuth := host.SignedBy(accounts.user.Pubkey(), accounts.user.IsSigner())
	return p.Ledger.Burn(accounts.shareMint.Pubkey(), accounts.userShare.Pubkey(), userAuth, data.Amount)
}
