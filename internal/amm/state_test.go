package amm

import (
	"bytes"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/pkg/types"
)

func TestConfigCodec(t *testing.T) {
	authority := solana.NewWallet().PublicKey()
	config := &Config{
		State:        StateInitialized,
		Seed:         0xDEADBEEF,
		AuthorityKey: authority,
		MintX:        solana.NewWallet().PublicKey(),
		MintY:        solana.NewWallet().PublicKey(),
		Fee:          30,
		ConfigBump:   254,
	}

	data := config.Encode()
	if len(data) != ConfigLen {
		t.Fatalf("expected %d bytes, got %d", ConfigLen, len(data))
	}

	decoded, err := DecodeConfig(data)
	if err != nil {
		t.Fatalf("DecodeConfig failed: %v", err)
	}
	if decoded.State != StateInitialized || decoded.Seed != 0xDEADBEEF ||
		!decoded.AuthorityKey.Equals(authority) || decoded.Fee != 30 || decoded.ConfigBump != 254 {
		t.Errorf("roundtrip mismatch: %+v", decoded)
	}
	if !bytes.Equal(decoded.Encode(), data) {
		t.Error("re-encoding changed bytes")
	}
}

func TestDecodeConfigRejectsBadRecords(t *testing.T) {
	config := &Config{State: StateInitialized, Fee: 30}

	short := config.Encode()[:ConfigLen-1]
	if _, err := DecodeConfig(short); !errors.Is(err, errors.ErrInvalidAccountData) {
		t.Errorf("short record: expected ErrInvalidAccountData, got %v", err)
	}

	badState := config.Encode()
	badState[0] = 7
	if _, err := DecodeConfig(badState); !errors.Is(err, errors.ErrInvalidAccountData) {
		t.Errorf("state byte 7: expected ErrInvalidAccountData, got %v", err)
	}

	badFee := config.Encode()
	badFee[105] = 0x10 // fee = 10000 little-endian
	badFee[106] = 0x27
	if _, err := DecodeConfig(badFee); !errors.Is(err, errors.ErrInvalidAccountData) {
		t.Errorf("fee 10000: expected ErrInvalidAccountData, got %v", err)
	}
}

func TestSetStateClosedEnum(t *testing.T) {
	config := &Config{}
	for _, state := range []PoolState{StateUninitialized, StateInitialized, StateDisabled, StateWithdrawOnly} {
		if err := config.SetState(state); err != nil {
			t.Errorf("SetState(%v) failed: %v", state, err)
		}
	}
	if err := config.SetState(StateWithdrawOnly + 1); !errors.Is(err, errors.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState, got %v", err)
	}
}

func TestSetFeeRange(t *testing.T) {
	config := &Config{}
	if err := config.SetFee(9_999); err != nil {
		t.Errorf("SetFee(9999) failed: %v", err)
	}
	if err := config.SetFee(10_000); !errors.Is(err, errors.ErrFeeOutOfRange) {
		t.Errorf("SetFee(10000): expected ErrFeeOutOfRange, got %v", err)
	}
}

func TestAuthoritySentinel(t *testing.T) {
	config := &Config{}
	if _, ok := config.Authority(); ok {
		t.Error("all-zero authority should read as absent")
	}

	key := solana.NewWallet().PublicKey()
	config.AuthorityKey = key
	got, ok := config.Authority()
	if !ok || !got.Equals(key) {
		t.Errorf("expected authority %s, got %s (ok=%v)", key, got, ok)
	}
}

func TestLoadConfigChecksOwner(t *testing.T) {
	program := solana.NewWallet().PublicKey()
	config := &Config{State: StateInitialized, Fee: 30}

	account := &types.Account{Data: config.Encode(), Owner: program}
	if _, err := LoadConfig(account, program); err != nil {
		t.Errorf("LoadConfig failed on valid account: %v", err)
	}

	foreign := &types.Account{Data: config.Encode(), Owner: solana.NewWallet().PublicKey()}
	if _, err := LoadConfig(foreign, program); !errors.Is(err, errors.ErrInvalidAccountOwner) {
		t.Errorf("expected ErrInvalidAccountOwner, got %v", err)
	}

	if _, err := LoadConfig(nil, program); !errors.Is(err, errors.ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
