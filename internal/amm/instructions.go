package amm

import (
	"encoding/binary"

	"github.com/lugondev/go-amm/internal/errors"
	"github.com/lugondev/go-amm/pkg/types"
)

// Instruction discriminators: the leading byte of every payload.
const (
	DiscriminatorInitialize uint8 = 0
	DiscriminatorDeposit    uint8 = 1
	DiscriminatorWithdraw   uint8 = 2
	DiscriminatorSwap       uint8 = 3
)

// Payload sizes, discriminator excluded. Decoders reject any other length.
const (
	// initializeDataLen omits the trailing authority; initializeDataLenFull
	// includes it.
	initializeDataLen     = 8 + 2 + 32 + 32 + 1 + 1
	initializeDataLenFull = initializeDataLen + 32

	depositDataLen  = 8 + 8 + 8 + 8
	withdrawDataLen = 8 + 8 + 8 + 8
	swapDataLen     = 1 + 8 + 8 + 8
)

// InitializeData is the decoded Initialize payload.
type InitializeData struct {
	Seed       uint64
	Fee        uint16
	MintX      types.Pubkey
	MintY      types.Pubkey
	ConfigBump uint8
	ShareBump  uint8

	// Authority is all-zero when the short payload form is used: the pool is
	// immutable.
	Authority types.Pubkey
}

// DecodeInitializeData parses an Initialize payload. Both the short (no
// authority) and long forms are accepted; the short form zero-fills the
// authority.
func DecodeInitializeData(data []byte) (*InitializeData, error) {
	switch len(data) {
	case initializeDataLen, initializeDataLenFull:
	default:
		return nil, errors.ErrInvalidInstructionData
	}

	d := &InitializeData{}
	d.Seed = binary.LittleEndian.Uint64(data[0:8])
	d.Fee = binary.LittleEndian.Uint16(data[8:10])
	copy(d.MintX[:], data[10:42])
	copy(d.MintY[:], data[42:74])
	d.ConfigBump = data[74]
	d.ShareBump = data[75]
	if len(data) == initializeDataLenFull {
		copy(d.Authority[:], data[76:108])
	}
	return d, nil
}

// DepositData is the decoded Deposit payload.
type DepositData struct {
	// Amount is the number of shares to mint.
	Amount uint64

	// MaxX and MaxY are the slippage ceilings on each reserve leg.
	MaxX uint64
	MaxY uint64

	// Expiration is the unix timestamp the order is valid strictly before.
	Expiration int64
}

// DecodeDepositData parses a Deposit payload. Amount and both ceilings must
// be positive.
func DecodeDepositData(data []byte) (*DepositData, error) {
	if len(data) != depositDataLen {
		return nil, errors.ErrInvalidInstructionData
	}

	d := &DepositData{
		Amount:     binary.LittleEndian.Uint64(data[0:8]),
		MaxX:       binary.LittleEndian.Uint64(data[8:16]),
		MaxY:       binary.LittleEndian.Uint64(data[16:24]),
		Expiration: int64(binary.LittleEndian.Uint64(data[24:32])),
	}
	if d.Amount == 0 || d.MaxX == 0 || d.MaxY == 0 {
		return nil, errors.ErrInvalidInstructionData
	}
	return d, nil
}

// WithdrawData is the decoded Withdraw payload.
type WithdrawData struct {
	// Amount is the number of shares to burn.
	Amount uint64

	// MinX and MinY are the slippage floors on each reserve leg.
	MinX uint64
	MinY uint64

	// Expiration is the unix timestamp the order is valid strictly before.
	Expiration int64
}

// DecodeWithdrawData parses a Withdraw payload. Amount must be positive.
func DecodeWithdrawData(data []byte) (*WithdrawData, error) {
	if len(data) != withdrawDataLen {
		return nil, errors.ErrInvalidInstructionData
	}

	d := &WithdrawData{
		Amount:     binary.LittleEndian.Uint64(data[0:8]),
		MinX:       binary.LittleEndian.Uint64(data[8:16]),
		MinY:       binary.LittleEndian.Uint64(data[16:24]),
		Expiration: int64(binary.LittleEndian.Uint64(data[24:32])),
	}
	if d.Amount == 0 {
		return nil, errors.ErrInvalidInstructionData
	}
	return d, nil
}

// SwapData is the decoded Swap payload.
type SwapData struct {
	// IsX is the direction flag: true means the caller sends token X and
	// receives token Y.
	IsX bool

	// Amount is the input amount.
	Amount uint64

	// Min is the minimum acceptable output.
	Min uint64

	// Expiration is the unix timestamp the order is valid strictly before.
	Expiration int64
}

// DecodeSwapData parses a Swap payload. Amount and Min must be positive.
func DecodeSwapData(data []byte) (*SwapData, error) {
	if len(data) != swapDataLen {
		return nil, errors.ErrInvalidInstructionData
	}

	d := &SwapData{
		IsX:        data[0] != 0,
		Amount:     binary.LittleEndian.Uint64(data[1:9]),
		Min:        binary.LittleEndian.Uint64(data[9:17]),
		Expiration: int64(binary.LittleEndian.Uint64(data[17:25])),
	}
	if d.Amount == 0 || d.Min == 0 {
		return nil, errors.ErrInvalidInstructionData
	}
	return d, nil
}

// EncodeInitializeData builds an Initialize payload (discriminator excluded).
// A zero authority produces the short form.
func (d *InitializeData) Encode() []byte {
	size := initializeDataLen
	if !d.Authority.IsZero() {
		size = initializeDataLenFull
	}
	data := make([]byte, size)
	binary.LittleEndian.PutUint64(data[0:8], d.Seed)
	binary.LittleEndian.PutUint16(data[8:10], d.Fee)
	copy(data[10:42], d.MintX[:])
	copy(data[42:74], d.MintY[:])
	data[74] = d.ConfigBump
	data[75] = d.ShareBump
	if size == initializeDataLenFull {
		copy(data[76:108], d.Authority[:])
	}
	return data
}

// Encode builds a Deposit payload (discriminator excluded).
func (d *DepositData) Encode() []byte {
	data := make([]byte, depositDataLen)
	binary.LittleEndian.PutUint64(data[0:8], d.Amount)
	binary.LittleEndian.PutUint64(data[8:16], d.MaxX)
	binary.LittleEndian.PutUint64(data[16:24], d.MaxY)
	binary.LittleEndian.PutUint64(data[24:32], uint64(d.Expiration))
	return data
}

// Encode builds a Withdraw payload (discriminator excluded).
func (d *WithdrawData) Encode() []byte {
	data := make([]byte, withdrawDataLen)
	binary.LittleEndian.PutUint64(data[0:8], d.Amount)
	binary.LittleEndian.PutUint64(data[8:16], d.MinX)
	binary.LittleEndian.PutUint64(data[16:24], d.MinY)
	binary.LittleEndian.PutUint64(data[24:32], uint64(d.Expiration))
	return data
}

// Encode builds a Swap payload (discriminator excluded).
func (d *SwapData) Encode() []byte {
	data := make([]byte, swapDataLen)
	if d.IsX {
		data[0] = 1
	}
	binary.LittleEndian.PutUint64(data[1:9], d.Amount)
	binary.LittleEndian.PutUint64(data[9:17], d.Min)
	binary.LittleEndian.PutUint64(data[17:25], uint64(d.Expiration))
	return data
}
