package amm

import (
	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/internal/host"
	"github.com/lugondev/go-amm/internal/ledger"
)

// processInitialize creates a pool: the configuration account at its derived
// address and the share mint at its own derived address, with 6 decimals and
// the pool as mint authority. No reserve funds move here.
func (p *Processor) processInitialize(views []accountView, payload []byte) error {
	accounts, err := initializeAccountsFrom(views)
	if err != nil {
		return err
	}
	data, err := DecodeInitializeData(payload)
	if err != nil {
		return err
	}

	if !accounts.initializer.IsSigner() {
		return errors.ErrMissingSignature
	}
	if !accounts.systemProgram.Pubkey().Equals(SystemProgramID) {
		return errors.ErrAddressMismatch
	}
	if !accounts.tokenProgram.Pubkey().Equals(TokenProgramID) {
		return errors.ErrAddressMismatch
	}

	config := &Config{
		Seed:         data.Seed,
		AuthorityKey: data.Authority,
		MintX:        data.MintX,
		MintY:        data.MintY,
		ConfigBump:   data.ConfigBump,
	}
	if err := config.SetFee(data.Fee); err != nil {
		return err
	}
	if err := config.SetState(StateInitialized); err != nil {
		return err
	}

	// Create the config account at its derived address. The signer's seeds
	// must re-derive to the supplied account, which both proves the caller
	// passed the right address and authorizes creation there.
	configAddr := accounts.config.Pubkey()
	configSigner := poolSigner(config)
	if err := p.Runtime.CreateAccount(
		accounts.initializer.Pubkey(), accounts.initializer.IsSigner(),
		configAddr, configSigner, ConfigLen, p.Program,
	); err != nil {
		return err
	}
	p.Runtime.Store.Get(configAddr).Data = config.Encode()

	// Create the share mint at its derived address, owned by the token
	// program, then initialize it with the pool as mint authority.
	shareAddr := accounts.shareMint.Pubkey()
	shareSeeds := append(shareMintSeeds(configAddr), []byte{data.ShareBump})
	shareSigner := host.NewSigner(shareSeeds...)
	if err := p.Runtime.CreateAccount(
		accounts.initializer.Pubkey(), accounts.initializer.IsSigner(),
		shareAddr, shareSigner, ledger.MintSize, TokenProgramID,
	); err != nil {
		return err
	}

	return p.Ledger.InitializeMint(shareAddr, ShareDecimals, configAddr)
}
