package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/lmittmann/w3"
)

// Caller calls read-only contract functions.
type Caller struct {
	client *chain.EVMClient
}

// NewCaller creates a Caller on top of an RPC handle.
func NewCaller(client *chain.EVMClient) *Caller {
	return &Caller{client: client}
}

// BalanceOf returns the ERC-20 balance of owner on token.
func (c *Caller) BalanceOf(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	return c.callUint(ctx, token, funcBalanceOf, "balanceOf", owner)
}

// CreationFee returns the factory's creationFee() in wei.
func (c *Caller) CreationFee(ctx context.Context, factory common.Address) (*big.Int, error) {
	return c.callUint(ctx, factory, funcCreationFee, "creationFee")
}

// callUint runs a view function returning a single uint256.
func (c *Caller) callUint(ctx context.Context, to common.Address, fn *w3.Func, name string, args ...any) (*big.Int, error) {
	data, err := fn.EncodeArgs(args...)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	out, err := c.client.CallContract(ctx, to, data)
	if err != nil {
		return nil, fmt.Errorf("%s call failed: %w", name, err)
	}
	var v *big.Int
	if err := fn.DecodeReturns(out, &v); err != nil {
		return nil, fmt.Errorf("decoding %s result: %w", name, err)
	}
	return v, nil
}
