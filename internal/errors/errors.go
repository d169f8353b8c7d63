// Package errors defines the error types used throughout the go-amm engine.
//
// Every instruction failure is classified under a stable code so callers can
// distinguish decode, authorization, state, temporal, and economic failures
// without string matching. An instruction that returns any of these errors
// performs no persisted mutation.
package errors

import (
	"errors"
	"fmt"
)

// Error codes for the amm engine.
const (
	ErrCodeInvalidInstructionData = "INVALID_INSTRUCTION_DATA"
	ErrCodeNotEnoughAccounts      = "NOT_ENOUGH_ACCOUNTS"
	ErrCodeUnknownInstruction     = "UNKNOWN_INSTRUCTION"
	ErrCodeMissingSignature       = "MISSING_SIGNATURE"
	ErrCodeInvalidAccountOwner    = "INVALID_ACCOUNT_OWNER"
	ErrCodeInvalidAccountData     = "INVALID_ACCOUNT_DATA"
	ErrCodeAddressMismatch        = "ADDRESS_MISMATCH"
	ErrCodeInvalidState           = "INVALID_STATE"
	ErrCodeOrderExpired           = "ORDER_EXPIRED"
	ErrCodeSlippageExceeded       = "SLIPPAGE_EXCEEDED"
	ErrCodeFeeOutOfRange          = "FEE_OUT_OF_RANGE"
	ErrCodeMathOverflow           = "MATH_OVERFLOW"
	ErrCodeZeroSwapLeg            = "ZERO_SWAP_LEG"
	ErrCodeAccountExists          = "ACCOUNT_EXISTS"
	ErrCodeAccountNotFound        = "ACCOUNT_NOT_FOUND"
	ErrCodeInsufficientFunds      = "INSUFFICIENT_FUNDS"
	ErrCodeSignerConsumed         = "SIGNER_CONSUMED"
)

// AmmError represents a classified failure in the amm engine.
type AmmError struct {
	// Code is a unique error code for this error type.
	Code string

	// Message is a human-readable error message.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *AmmError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *AmmError) Unwrap() error {
	return e.Cause
}

// Is reports whether the error matches the target by code.
func (e *AmmError) Is(target error) bool {
	t, ok := target.(*AmmError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// WithCause returns a copy of the error carrying the given cause.
func (e *AmmError) WithCause(cause error) *AmmError {
	return &AmmError{Code: e.Code, Message: e.Message, Cause: cause}
}

// NewError creates a new AmmError.
func NewError(code, message string) *AmmError {
	return &AmmError{
		Code:    code,
		Message: message,
	}
}

// Pre-defined errors for common failure cases.
var (
	// ErrInvalidInstructionData is returned when a payload has the wrong length
	// or carries a zero value where a positive one is mandatory.
	ErrInvalidInstructionData = NewError(ErrCodeInvalidInstructionData, "invalid instruction data")

	// ErrNotEnoughAccounts is returned when the caller-supplied account list is
	// shorter than the instruction requires.
	ErrNotEnoughAccounts = NewError(ErrCodeNotEnoughAccounts, "not enough account keys")

	// ErrUnknownInstruction is returned for an unrecognized discriminator byte.
	ErrUnknownInstruction = NewError(ErrCodeUnknownInstruction, "unknown instruction discriminator")

	// ErrMissingSignature is returned when a required signer did not sign.
	ErrMissingSignature = NewError(ErrCodeMissingSignature, "required signature is missing")

	// ErrInvalidAccountOwner is returned when an account is not owned by the
	// expected program.
	ErrInvalidAccountOwner = NewError(ErrCodeInvalidAccountOwner, "account not owned by expected program")

	// ErrInvalidAccountData is returned when account bytes cannot be
	// interpreted as the expected record.
	ErrInvalidAccountData = NewError(ErrCodeInvalidAccountData, "invalid account data")

	// ErrAddressMismatch is returned when a caller-supplied account does not
	// match its re-derived address.
	ErrAddressMismatch = NewError(ErrCodeAddressMismatch, "account does not match derived address")

	// ErrInvalidState is returned when the pool state forbids the operation.
	ErrInvalidState = NewError(ErrCodeInvalidState, "pool state does not permit this operation")

	// ErrOrderExpired is returned when the current time is at or past the
	// instruction's expiration.
	ErrOrderExpired = NewError(ErrCodeOrderExpired, "order expired")

	// ErrSlippageExceeded is returned when a slippage ceiling or floor is violated.
	ErrSlippageExceeded = NewError(ErrCodeSlippageExceeded, "slippage bound violated")

	// ErrFeeOutOfRange is returned for fees at or above 10000 basis points.
	ErrFeeOutOfRange = NewError(ErrCodeFeeOutOfRange, "fee must be below 10000 basis points")

	// ErrMathOverflow is returned when curve math overflows.
	ErrMathOverflow = NewError(ErrCodeMathOverflow, "math overflow in curve computation")

	// ErrZeroSwapLeg is returned when a swap would move zero tokens on a leg.
	ErrZeroSwapLeg = NewError(ErrCodeZeroSwapLeg, "degenerate swap with a zero leg")

	// ErrAccountExists is returned when creating an account at an occupied address.
	ErrAccountExists = NewError(ErrCodeAccountExists, "account already exists at target address")

	// ErrAccountNotFound is returned when a referenced account does not exist.
	ErrAccountNotFound = NewError(ErrCodeAccountNotFound, "account not found")

	// ErrInsufficientFunds is returned when a ledger operation exceeds a balance.
	ErrInsufficientFunds = NewError(ErrCodeInsufficientFunds, "insufficient funds")

	// ErrSignerConsumed is returned when a derived signer is used twice.
	ErrSignerConsumed = NewError(ErrCodeSignerConsumed, "derived signer already consumed")
)

// DecodeFailed creates an error for decoding failures, naming the record that
// could not be parsed.
func DecodeFailed(what string, cause error) *AmmError {
	return NewError(ErrCodeInvalidAccountData, fmt.Sprintf("failed to decode %s", what)).WithCause(cause)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
