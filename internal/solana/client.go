package solana

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client wraps the Solana RPC client
type Client struct {
	rpc *rpc.Client
}

// NewClient creates a new Solana client
func NewClient(endpoint string) *Client {
	return &Client{
		rpc: rpc.New(endpoint),
	}
}

// GetBalance returns the balance of an account in lamports
func (c *Client) GetBalance(ctx context.Context, pubkey solana.PublicKey) (uint64, error) {
	result, err := c.rpc.GetBalance(ctx, pubkey, rpc.CommitmentFinalized)
	if err != nil {
		return 0, fmt.Errorf("failed to get balance: %w", err)
	}
	return result.Value, nil
}

// GetBalanceSOL returns the balance in SOL (not lamports)
func (c *Client) GetBalanceSOL(ctx context.Context, pubkey solana.PublicKey) (float64, error) {
	lamports, err := c.GetBalance(ctx, pubkey)
	if err != nil {
		return 0, err
	}
	return float64(lamports) / float64(solana.LAMPORTS_PER_SOL), nil
}

// GetAccountInfo returns the account info for a given public key
func (c *Client) GetAccountInfo(ctx context.Context, pubkey solana.PublicKey) (*rpc.GetAccountInfoResult, error) {
	result, err := c.rpc.GetAccountInfo(ctx, pubkey)
	if err != nil {
		return nil, fmt.Errorf("failed to get account info: %w", err)
	}
	return result, nil
}

// GetAccountData returns the raw data bytes of an account, or an error if the
// account does not exist.
func (c *Client) GetAccountData(ctx context.Context, pubkey solana.PublicKey) ([]byte, error) {
	result, err := c.GetAccountInfo(ctx, pubkey)
	if err != nil {
		return nil, err
	}
	if result.Value == nil {
		return nil, fmt.Errorf("account %s not found", pubkey)
	}
	return result.Value.Data.GetBinary(), nil
}
