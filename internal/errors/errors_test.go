package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestIsMatchesByCode(t *testing.T) {
	if !Is(ErrOrderExpired, ErrOrderExpired) {
		t.Error("sentinel must match itself")
	}
	if Is(ErrOrderExpired, ErrSlippageExceeded) {
		t.Error("distinct codes must not match")
	}
	if Is(stderrors.New("order expired"), ErrOrderExpired) {
		t.Error("plain errors must not match a coded sentinel")
	}
}

func TestWithCauseKeepsCodeAndChain(t *testing.T) {
	cause := stderrors.New("boom")
	err := ErrMathOverflow.WithCause(cause)

	if !Is(err, ErrMathOverflow) {
		t.Error("wrapped error lost its code")
	}
	if !Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if ErrMathOverflow.Cause != nil {
		t.Error("WithCause must not mutate the sentinel")
	}
}

func TestDecodeFailed(t *testing.T) {
	cause := stderrors.New("short buffer")
	err := DecodeFailed("mint record", cause)

	if !Is(err, ErrInvalidAccountData) {
		t.Error("decode failures must classify as invalid account data")
	}
	if !Is(err, cause) {
		t.Error("cause not reachable through Unwrap")
	}
	if !strings.Contains(err.Error(), "mint record") {
		t.Errorf("message does not name the record: %q", err.Error())
	}
}
