package contract

import (
	"context"
	"crypto/ecdsa"
	"encoding/json"
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const hardhatKey = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"

type keySigner struct{ key *ecdsa.PrivateKey }

func newKeySigner(t *testing.T) *keySigner {
	t.Helper()
	k, err := crypto.HexToECDSA(hardhatKey)
	require.NoError(t, err)
	return &keySigner{key: k}
}

func (s *keySigner) SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), s.key)
	if err != nil {
		return nil, err
	}
	return signed.MarshalBinary()
}

func (s *keySigner) Address() common.Address { return crypto.PubkeyToAddress(s.key.PublicKey) }

func sentTx(t *testing.T, rec *rpcRecorder) *types.Transaction {
	t.Helper()
	calls := rec.params("eth_sendRawTransaction")
	require.Len(t, calls, 1)
	var params []string
	require.NoError(t, json.Unmarshal(calls[0], &params))
	raw, err := hexutil.Decode(params[0])
	require.NoError(t, err)
	tx := new(types.Transaction)
	require.NoError(t, tx.UnmarshalBinary(raw))
	return tx
}

func TestSenderSend(t *testing.T) {
	txHash := "0xab00000000000000000000000000000000000000000000000000000000000001"
	rec, client := newRecorder(t, map[string]interface{}{
		"eth_gasPrice":            "0x3b9aca00", // 1 gwei
		"eth_getTransactionCount": "0x7",
		"eth_sendRawTransaction":  txHash,
	})
	signer := newKeySigner(t)
	chainID := big.NewInt(207)

	data, err := EncodeCreateToken(CreateTokenArgs{
		Name: "Test", Symbol: "TST",
		InitialSupply: big.NewInt(1000), Decimals: 18,
		BuyTaxRate: new(big.Int), SellTaxRate: new(big.Int), BurnRate: new(big.Int),
		MaxTxPercentage: new(big.Int),
	})
	require.NoError(t, err)
	fee := new(big.Int).Mul(big.NewInt(10_000), big.NewInt(1e18))

	hash, err := NewSender(client, signer, chainID).Send(context.Background(), Call{
		To:    factoryAddr,
		Data:  data,
		Value: fee,
		Gas:   3_000_000,
	})
	require.NoError(t, err)
	assert.Equal(t, common.HexToHash(txHash), hash)

	tx := sentTx(t, rec)
	assert.Equal(t, uint8(types.DynamicFeeTxType), tx.Type())
	assert.Equal(t, int64(207), tx.ChainId().Int64())
	assert.Equal(t, uint64(7), tx.Nonce())
	assert.Equal(t, uint64(3_000_000), tx.Gas())
	assert.Equal(t, 0, fee.Cmp(tx.Value()))
	assert.Equal(t, factoryAddr, *tx.To())
	assert.Equal(t, data, tx.Data())
	assert.Equal(t, int64(1_000_000_000), tx.GasTipCap().Int64())
	assert.Equal(t, int64(2_000_000_000), tx.GasFeeCap().Int64())

	from, err := types.Sender(types.LatestSignerForChainID(chainID), tx)
	require.NoError(t, err)
	assert.Equal(t, signer.Address(), from)
}

func TestSenderNilValue(t *testing.T) {
	rec, client := newRecorder(t, map[string]interface{}{
		"eth_gasPrice":            "0x1",
		"eth_getTransactionCount": "0x0",
		"eth_sendRawTransaction":  "0x" + "00000000000000000000000000000000000000000000000000000000000000cd",
	})

	_, err := NewSender(client, newKeySigner(t), big.NewInt(207)).Send(context.Background(), Call{To: factoryAddr, Gas: 21000})
	require.NoError(t, err)
	assert.Equal(t, int64(0), sentTx(t, rec).Value().Int64())
}

func TestSenderGasPriceError(t *testing.T) {
	rec, client := newRecorder(t, map[string]interface{}{})

	_, err := NewSender(client, newKeySigner(t), big.NewInt(207)).Send(context.Background(), Call{To: factoryAddr})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "getting gas price")
	assert.Empty(t, rec.params("eth_sendRawTransaction"))
}

func TestSenderBroadcastError(t *testing.T) {
	_, client := newRecorder(t, map[string]interface{}{
		"eth_gasPrice":            "0x1",
		"eth_getTransactionCount": "0x0",
	})

	_, err := NewSender(client, newKeySigner(t), big.NewInt(207)).Send(context.Background(), Call{To: factoryAddr, Gas: 21000})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broadcasting transaction")
}
