package amm

import (
	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/internal/host"
	"github.com/lugondev/go-amm/pkg/curve"
)

// processDeposit moves proportional amounts of both reserve tokens from the
// depositor into the vaults, then mints the requested shares. Both reserve
// transfers complete before the mint: minting is the irrevocable step that
// grants value.
func (p *Processor) processDeposit(views []accountView, payload []byte) error {
	accounts, err := liquidityAccountsFrom(views)
	if err != nil {
		return err
	}
	data, err := DecodeDepositData(payload)
	if err != nil {
		return err
	}

	// Expiry is checked before any account content is trusted.
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
	if shareMint.Supply == 0 && vaultX.Amount == 0 && vaultY.Amount == 0 {
		// First deposit: the ceilings are taken literally as seed liquidity.
		x, y = data.MaxX, data.MaxY
	} else {
		x, y, err = curve.DepositAmounts(vaultX.Amount, vaultY.Amount, shareMint.Supply, data.Amount)
		if err != nil {
			return mapCurveError(err)
		}
	}

	if x > data.MaxX || y > data.MaxY {
		return errors.ErrSlippageExceeded
	}

	userAuth := host.SignedBy(accounts.user.Pubkey(), accounts.user.IsSigner())
	if err := p.Ledger.Transfer(accounts.userX.Pubkey(), accounts.vaultX.Pubkey(), userAuth, x); err != nil {
		return err
	}
	if err := p.Ledger.Transfer(accounts.userY.Pubkey(), accounts.vaultY.Pubkey(), userAuth, y); err != nil {
		return err
	}

	poolAuth := host.DerivedBy(configAddr, poolSigner(config), p.Program)
	return p.Ledger.MintTo(accounts.shareMint.Pubkey(), accounts.userShare.Pubkey(), poolAuth, data.Amount)
}

// mapCurveError translates curve math failures into instruction errors.
func mapCurveError(err error) error {
	switch err {
	case curve.ErrAmountOverflow:
		return errors.ErrMathOverflow.WithCause(err)
	case curve.ErrZeroOutput:
		return errors.ErrZeroSwapLeg.WithCause(err)
	case curve.ErrFeeOutOfRange:
		return errors.ErrFeeOutOfRange.WithCause(err)
	case curve.ErrZeroSupply, curve.ErrInsufficientShares, curve.ErrEmptyReserves:
		return errors.ErrInsufficientFunds.WithCause(err)
	default:
		return errors.ErrMathOverflow.WithCause(err)
	}
}
