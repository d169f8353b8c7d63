// Package curve implements the constant-product pricing and share math used by
// the pool engine. All functions are pure: they take u64 reserve and share
// quantities, compute with big.Int intermediates so products of two u64 values
// cannot overflow, and return explicit errors instead of saturating.
//
// Rounding discipline:
//   - DepositAmounts rounds up, so a depositor never contributes less than the
//     exact proportional value of the shares they receive.
//   - WithdrawAmounts rounds down, so a withdrawer never receives more than the
//     exact proportional value of the shares they burn.
//   - SwapOutput floors the output, so the reserve product never decreases.
package curve

import (
	"errors"
	"math/big"
)

// FeeDenominator is the basis-point scale for pool fees. A fee of 30 means
// 0.3% of the swap input stays in the reserves.
const FeeDenominator = 10_000

var (
	// ErrZeroSupply is returned when proportional share math is requested
	// against a pool with no outstanding shares.
	ErrZeroSupply = errors.New("curve: share supply is zero")

	// ErrInsufficientShares is returned when a withdrawal asks for more shares
	// than exist.
	ErrInsufficientShares = errors.New("curve: shares exceed supply")

	// ErrEmptyReserves is returned when a swap is priced against a reserve
	// that holds no tokens.
	ErrEmptyReserves = errors.New("curve: reserve is empty")

	// ErrFeeOutOfRange is returned for fees at or above 100%.
	ErrFeeOutOfRange = errors.New("curve: fee must be below 10000 basis points")

	// ErrAmountOverflow is returned when a computed amount does not fit in a u64.
	ErrAmountOverflow = errors.New("curve: amount overflows u64")

	// ErrZeroOutput is returned when a swap would move zero tokens on either leg.
	ErrZeroOutput = errors.New("curve: swap produces a zero leg")
)

// DepositAmounts returns the reserve-unit amounts (x, y) a depositor must
// contribute so that minting shares new pool shares leaves every existing
// holder's proportional claim intact. Both legs round up.
func DepositAmounts(reserveX, reserveY, supply, shares uint64) (uint64, uint64, error) {
	if supply == 0 {
		return 0, 0, ErrZeroSupply
	}

	x, err := mulDivCeil(reserveX, shares, supply)
	if err != nil {
		return 0, 0, err
	}
	y, err := mulDivCeil(reserveY, shares, supply)
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// WithdrawAmounts returns the reserve-unit amounts (x, y) owed for burning
// shares pool shares. Both legs round down, so rounding remainders stay with
// the pool.
func WithdrawAmounts(reserveX, reserveY, supply, shares uint64) (uint64, uint64, error) {
	if supply == 0 {
		return 0, 0, ErrZeroSupply
	}
	if shares > supply {
		return 0, 0, ErrInsufficientShares
	}

	x := mulDivFloor(reserveX, shares, supply)
	y := mulDivFloor(reserveY, shares, supply)
	return x, y, nil
}

// SwapResult describes the two legs of a priced swap.
type SwapResult struct {
	// Deposit is the input amount moved from the trader into the input reserve.
	Deposit uint64

	// Withdraw is the output amount moved from the output reserve to the trader.
	Withdraw uint64
}

// SwapOutput prices a constant-product swap of amountIn against the
// (reserveIn, reserveOut) pair with a fee in basis points. The fee-reduced
// input is floored, and the output is floored, which together guarantee
// (reserveIn + amountIn) * (reserveOut - out) >= reserveIn * reserveOut.
func SwapOutput(reserveIn, reserveOut, amountIn uint64, feeBps uint16) (SwapResult, error) {
	if feeBps >= FeeDenominator {
		return SwapResult{}, ErrFeeOutOfRange
	}
	if reserveIn == 0 || reserveOut == 0 {
		return SwapResult{}, ErrEmptyReserves
	}

	// effective = amountIn * (10000 - fee) / 10000, floored
	effective := new(big.Int).SetUint64(amountIn)
	effective.Mul(effective, big.NewInt(int64(FeeDenominator-feeBps)))
	effective.Div(effective, big.NewInt(FeeDenominator))

	// out = reserveOut * effective / (reserveIn + effective), floored
	rin := new(big.Int).SetUint64(reserveIn)
	num := new(big.Int).SetUint64(reserveOut)
	num.Mul(num, effective)
	den := new(big.Int).Add(rin, effective)
	out := num.Div(num, den)

	if !out.IsUint64() {
		return SwapResult{}, ErrAmountOverflow
	}
	result := SwapResult{Deposit: amountIn, Withdraw: out.Uint64()}
	if result.Deposit == 0 || result.Withdraw == 0 {
		return SwapResult{}, ErrZeroOutput
	}
	if result.Withdraw >= reserveOut {
		// Cannot drain the reserve; the formula only approaches it.
		return SwapResult{}, ErrEmptyReserves
	}
	return result, nil
}

// mulDivFloor computes a*b/c with a 128-bit intermediate. c must be non-zero,
// and the result of reserve-proportional math always fits in u64 when
// shares <= supply.
func mulDivFloor(a, b, c uint64) uint64 {
	n := new(big.Int).SetUint64(a)
	n.Mul(n, new(big.Int).SetUint64(b))
	n.Div(n, new(big.Int).SetUint64(c))
	return n.Uint64()
}

// mulDivCeil computes ceil(a*b/c) with a 128-bit intermediate, reporting
// overflow of the u64 result.
func mulDivCeil(a, b, c uint64) (uint64, error) {
	n := new(big.Int).SetUint64(a)
	n.Mul(n, new(big.Int).SetUint64(b))
	d := new(big.Int).SetUint64(c)
	q, r := n.QuoRem(n, d, new(big.Int))
	if r.Sign() != 0 {
		q.Add(q, big.NewInt(1))
	}
	if !q.IsUint64() {
		return 0, ErrAmountOverflow
	}
	return q.Uint64(), nil
}
