package host

import (
	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/pkg/types"
)

// Signer is a single-use signing credential for a program-derived address.
// It is built from the seed list (bump included) immediately before the
// privileged operation that needs it, and consumed exactly once. A handler
// that signs two transfers constructs two signers.
type Signer struct {
	seeds    [][]byte
	consumed bool
}

// NewSigner creates a signer from a seed list. The final seed is expected to
// be the one-byte bump that pushed the derivation off the ed25519 curve.
func NewSigner(seeds ...[]byte) *Signer {
	copied := make([][]byte, len(seeds))
	for i, s := range seeds {
		copied[i] = append([]byte(nil), s...)
	}
	return &Signer{seeds: copied}
}

// Address re-derives the program address the seeds sign for.
func (s *Signer) Address(program types.Pubkey) (types.Pubkey, error) {
	addr, err := solana.CreateProgramAddress(s.seeds, program)
	if err != nil {
		return types.Pubkey{}, errors.ErrAddressMismatch.WithCause(err)
	}
	return addr, nil
}

// Consume marks the signer as used. A second call fails.
func (s *Signer) Consume() error {
	if s.consumed {
		return errors.ErrSignerConsumed
	}
	s.consumed = true
	return nil
}

// Authority identifies who authorizes a ledger operation: either an account
// whose signature is present on the transaction, or a program-derived address
// standing in via a single-use Signer.
type Authority struct {
	// Address is the authorizing account.
	Address types.Pubkey

	signed  bool
	derived *Signer
}

// SignedBy builds an authority backed by a transaction signature. The signed
// flag comes from the instruction's account metadata.
func SignedBy(addr types.Pubkey, signed bool) Authority {
	return Authority{Address: addr, signed: signed}
}

// DerivedBy builds an authority backed by a derived signer. The signer's
// seeds must re-derive to addr under the given program or verification fails.
func DerivedBy(addr types.Pubkey, signer *Signer, program types.Pubkey) Authority {
	a := Authority{Address: addr, derived: signer}
	if derived, err := signer.Address(program); err != nil || !derived.Equals(addr) {
		// Seeds do not sign for addr; Verify will report the missing credential.
		a.derived = nil
	}
	return a
}

// Verify checks the authority's credential, consuming the derived signer if
// one backs it.
func (a Authority) Verify() error {
	if a.signed {
		return nil
	}
	if a.derived != nil {
		return a.derived.Consume()
	}
	return errors.ErrMissingSignature
}
