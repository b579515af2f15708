package wallet

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signingWallet(t *testing.T, ks KeystoreBackend) *Wallet {
	t.Helper()
	ref, err := ks.Store("deployer", testPrivKeyHex)
	require.NoError(t, err)
	return &Wallet{Name: "deployer", Address: testSignerAddr, Type: TypeSigning, KeyRef: ref}
}

func dynamicTx() *types.Transaction {
	to := common.HexToAddress("0xAAbe8531d02C2b1c1FCaa954E2E38D6bA1A6e0f7")
	return types.NewTx(&types.DynamicFeeTx{
		ChainID:   big.NewInt(207),
		Nonce:     3,
		GasTipCap: big.NewInt(1e9),
		GasFeeCap: big.NewInt(2e9),
		Gas:       3_000_000,
		To:        &to,
		Value:     big.NewInt(1e18),
		Data:      []byte{0xde, 0xad},
	})
}

func TestSignerAddress(t *testing.T) {
	s := NewSigner(&Wallet{Name: "w", Address: testSignerAddr, Type: TypeSigning}, NewInMemoryKeystore())
	assert.Equal(t, common.HexToAddress(testSignerAddr), s.Address())
	assert.Equal(t, "w", s.WalletName())
}

func TestSignTxWatchOnlyError(t *testing.T) {
	s := NewSigner(&Wallet{Name: "watcher", Address: testSignerAddr, Type: TypeWatchOnly}, NewInMemoryKeystore())

	_, err := s.SignTx(dynamicTx(), big.NewInt(207))
	assert.ErrorIs(t, err, ErrWatchOnly)
}

func TestSignTxKeyNotFound(t *testing.T) {
	t.Setenv(KeyEnvVar, "")
	w := &Wallet{Name: "missing", Address: testSignerAddr, Type: TypeSigning, KeyRef: "vinutoken.doesnotexist"}
	s := NewSigner(w, testKeystore(t, nil))

	_, err := s.SignTx(dynamicTx(), big.NewInt(207))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "retrieving key")
}

func TestSignTxRecoversSender(t *testing.T) {
	t.Setenv(KeyEnvVar, "")
	ks := testKeystore(t, nil)
	s := NewSigner(signingWallet(t, ks), ks)

	raw, err := s.SignTx(dynamicTx(), big.NewInt(207))
	require.NoError(t, err)

	var tx types.Transaction
	require.NoError(t, tx.UnmarshalBinary(raw))
	assert.Equal(t, big.NewInt(207), tx.ChainId())
	assert.Equal(t, uint64(3_000_000), tx.Gas())
	assert.Equal(t, big.NewInt(1e18), tx.Value())

	from, err := types.Sender(types.LatestSignerForChainID(big.NewInt(207)), &tx)
	require.NoError(t, err)
	assert.Equal(t, common.HexToAddress(testSignerAddr), from)
}

func TestSignTxDifferentChainIDs(t *testing.T) {
	ks := NewInMemoryKeystore()
	s := NewSigner(signingWallet(t, ks), ks)

	tx := types.NewTransaction(0, common.Address{1}, big.NewInt(0), 21000, big.NewInt(1e9), nil)
	rawVinu, err := s.SignTx(tx, big.NewInt(207))
	require.NoError(t, err)
	rawEth, err := s.SignTx(tx, big.NewInt(1))
	require.NoError(t, err)

	assert.NotEqual(t, rawVinu, rawEth, "same tx signed on different chains must differ")
}

func TestSignTxRejectsForeignEnvKey(t *testing.T) {
	// Anvil account #1, not the wallet's key.
	t.Setenv(KeyEnvVar, "0x59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d")
	s := NewSigner(&Wallet{Name: "deployer", Address: testSignerAddr, Type: TypeSigning, KeyRef: "vinutoken.deployer"}, NewKeystore(nil, nil))

	_, err := s.SignTx(dynamicTx(), big.NewInt(207))
	assert.ErrorIs(t, err, ErrKeyMismatch)
}
