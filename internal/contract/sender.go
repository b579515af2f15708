package contract

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxSigner signs transactions for one account.
type TxSigner interface {
	SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error)
	Address() common.Address
}

// Call is a single write transaction.
type Call struct {
	To    common.Address
	Data  []byte
	Value *big.Int // wei attached to the call; nil means zero
	Gas   uint64   // fixed gas budget
}

// Sender signs and broadcasts write transactions.
type Sender struct {
	client  *chain.EVMClient
	signer  TxSigner
	chainID *big.Int
}

// NewSender creates a Sender.
func NewSender(client *chain.EVMClient, signer TxSigner, chainID *big.Int) *Sender {
	return &Sender{client: client, signer: signer, chainID: chainID}
}

// Send builds an EIP-1559 transaction for call, signs it and broadcasts it.
// Returns the transaction hash.
func (s *Sender) Send(ctx context.Context, call Call) (common.Hash, error) {
	from := s.signer.Address()

	gasPrice, err := s.client.GasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("getting gas price: %w", err)
	}

	nonce, err := s.client.GetNonce(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("getting nonce: %w", err)
	}

	value := call.Value
	if value == nil {
		value = new(big.Int)
	}
	to := call.To

	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   s.chainID,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       call.Gas,
		To:        &to,
		Value:     value,
		Data:      call.Data,
	})

	raw, err := s.signer.SignTx(tx, s.chainID)
	if err != nil {
		return common.Hash{}, fmt.Errorf("signing transaction: %w", err)
	}

	hash, err := s.client.SendRawTransaction(ctx, raw)
	if err != nil {
		return common.Hash{}, fmt.Errorf("broadcasting transaction: %w", err)
	}
	return hash, nil
}
