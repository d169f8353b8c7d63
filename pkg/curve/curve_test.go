package curve

import (
	"testing"
)

func TestDepositAmountsRoundsUp(t *testing.T) {
	// 3 shares of a 10-share pool over reserves (100, 7): exact values are
	// 30 and 2.1, so the depositor owes 30 and 3.
	x, y, err := DepositAmounts(100, 7, 10, 3)
	if err != nil {
		t.Fatalf("DepositAmounts failed: %v", err)
	}
	if x != 30 {
		t.Errorf("expected x=30, got %d", x)
	}
	if y != 3 {
		t.Errorf("expected y=3 (rounded up from 2.1), got %d", y)
	}
}

func TestDepositAmountsZeroSupply(t *testing.T) {
	if _, _, err := DepositAmounts(100, 100, 0, 10); err != ErrZeroSupply {
		t.Errorf("expected ErrZeroSupply, got %v", err)
	}
}

func TestWithdrawAmountsRoundsDown(t *testing.T) {
	x, y, err := WithdrawAmounts(100, 7, 10, 3)
	if err != nil {
		t.Fatalf("WithdrawAmounts failed: %v", err)
	}
	if x != 30 {
		t.Errorf("expected x=30, got %d", x)
	}
	if y != 2 {
		t.Errorf("expected y=2 (rounded down from 2.1), got %d", y)
	}
}

func TestWithdrawAmountsSharesExceedSupply(t *testing.T) {
	if _, _, err := WithdrawAmounts(100, 100, 10, 11); err != ErrInsufficientShares {
		t.Errorf("expected ErrInsufficientShares, got %v", err)
	}
}

// A deposit followed by a withdrawal of the same shares must never pay out
// more than was contributed, and rounding may cost at most one unit per leg.
func TestShareProportionality(t *testing.T) {
	cases := []struct {
		rx, ry, supply, shares uint64
	}{
		{1_000_000, 1_000_000, 500_000, 1},
		{1_000_000, 2_000_000, 333_333, 1_000},
		{7, 13, 29, 11},
		{1 << 40, 3, 1_000_003, 999},
	}

	for _, tc := range cases {
		inX, inY, err := DepositAmounts(tc.rx, tc.ry, tc.supply, tc.shares)
		if err != nil {
			t.Fatalf("DepositAmounts(%+v) failed: %v", tc, err)
		}
		outX, outY, err := WithdrawAmounts(tc.rx+inX, tc.ry+inY, tc.supply+tc.shares, tc.shares)
		if err != nil {
			t.Fatalf("WithdrawAmounts(%+v) failed: %v", tc, err)
		}
		if outX > inX || outY > inY {
			t.Errorf("case %+v: withdrawal (%d,%d) exceeds deposit (%d,%d)", tc, outX, outY, inX, inY)
		}
		if inX-outX > 1 || inY-outY > 1 {
			t.Errorf("case %+v: rounding lost more than one unit per leg: in=(%d,%d) out=(%d,%d)", tc, inX, inY, outX, outY)
		}
	}
}

func TestSwapOutputNoFee(t *testing.T) {
	// k = 1000*1000; swapping in 1000 with no fee doubles the input reserve,
	// so the output reserve halves: out = 500.
	res, err := SwapOutput(1000, 1000, 1000, 0)
	if err != nil {
		t.Fatalf("SwapOutput failed: %v", err)
	}
	if res.Withdraw != 500 {
		t.Errorf("expected output 500, got %d", res.Withdraw)
	}
	if res.Deposit != 1000 {
		t.Errorf("expected deposit 1000, got %d", res.Deposit)
	}
}

func TestSwapOutputFeeAccrual(t *testing.T) {
	const rx, ry, in = 1_000_000, 1_000_000, 10_000

	noFee, err := SwapOutput(rx, ry, in, 0)
	if err != nil {
		t.Fatalf("no-fee swap failed: %v", err)
	}
	withFee, err := SwapOutput(rx, ry, in, 30)
	if err != nil {
		t.Fatalf("0.3%% swap failed: %v", err)
	}

	if withFee.Withdraw >= noFee.Withdraw {
		t.Errorf("fee swap output %d not below fee-less output %d", withFee.Withdraw, noFee.Withdraw)
	}

	kBefore := uint64(rx) * uint64(ry)
	kAfter := (uint64(rx) + in) * (uint64(ry) - withFee.Withdraw)
	if kAfter <= kBefore {
		t.Errorf("post-trade invariant %d does not exceed pre-trade invariant %d", kAfter, kBefore)
	}
}

// The product of the reserves must be monotonically non-decreasing over any
// sequence of swaps, in both directions and across fee settings.
func TestSwapInvariantNonDecrease(t *testing.T) {
	for _, fee := range []uint16{0, 1, 30, 100, 9_999} {
		rx, ry := uint64(5_000_000), uint64(3_000_000)
		k := rx * ry

		amounts := []uint64{1, 17, 1_000, 250_000, 999_999}
		for i, in := range amounts {
			var res SwapResult
			var err error
			if i%2 == 0 {
				res, err = SwapOutput(rx, ry, in, fee)
				if err != nil {
					continue
				}
				rx += res.Deposit
				ry -= res.Withdraw
			} else {
				res, err = SwapOutput(ry, rx, in, fee)
				if err != nil {
					continue
				}
				ry += res.Deposit
				rx -= res.Withdraw
			}
			if rx*ry < k {
				t.Fatalf("fee=%d step=%d: invariant decreased from %d to %d", fee, i, k, rx*ry)
			}
			k = rx * ry
		}
	}
}

func TestSwapOutputRejectsDegenerate(t *testing.T) {
	if _, err := SwapOutput(0, 1000, 10, 0); err != ErrEmptyReserves {
		t.Errorf("empty input reserve: expected ErrEmptyReserves, got %v", err)
	}
	if _, err := SwapOutput(1000, 0, 10, 0); err != ErrEmptyReserves {
		t.Errorf("empty output reserve: expected ErrEmptyReserves, got %v", err)
	}
	if _, err := SwapOutput(1000, 1000, 10, 10_000); err != ErrFeeOutOfRange {
		t.Errorf("fee 10000: expected ErrFeeOutOfRange, got %v", err)
	}
	// Tiny input against a deep pool floors to zero output.
	if _, err := SwapOutput(1_000_000_000, 10, 1, 30); err != ErrZeroOutput {
		t.Errorf("dust input: expected ErrZeroOutput, got %v", err)
	}
}
