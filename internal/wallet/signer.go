package wallet

import (
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

var (
	// ErrWatchOnly is returned when a watch-only wallet is asked to sign.
	ErrWatchOnly = errors.New("wallet is watch-only and cannot sign")
	// ErrKeyMismatch is returned when the key found for a wallet derives a
	// different address, typically a stale VINUTOKEN_PRIVATE_KEY.
	ErrKeyMismatch = errors.New("key does not belong to wallet")
)

// Signer signs deployment transactions for one signing wallet. The key is
// read from the keystore on every call and never cached here.
type Signer struct {
	wallet *Wallet
	ks     KeystoreBackend
}

// NewSigner returns a signer for w whose key lives in ks.
func NewSigner(w *Wallet, ks KeystoreBackend) *Signer {
	return &Signer{wallet: w, ks: ks}
}

// Address returns the wallet's address.
func (s *Signer) Address() common.Address { return common.HexToAddress(s.wallet.Address) }

// WalletName returns the name of the wallet behind the signer.
func (s *Signer) WalletName() string { return s.wallet.Name }

// SignTx signs tx for chainID and returns its binary encoding, ready for
// eth_sendRawTransaction.
func (s *Signer) SignTx(tx *types.Transaction, chainID *big.Int) ([]byte, error) {
	key, err := s.key()
	if err != nil {
		return nil, err
	}
	signed, err := types.SignTx(tx, types.LatestSignerForChainID(chainID), key)
	if err != nil {
		return nil, fmt.Errorf("signing transaction: %w", err)
	}
	raw, err := signed.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("encoding signed transaction: %w", err)
	}
	return raw, nil
}

func (s *Signer) key() (*ecdsa.PrivateKey, error) {
	name := s.wallet.Name
	if !s.wallet.CanSign() {
		return nil, fmt.Errorf("%q: %w", name, ErrWatchOnly)
	}

	hexKey, err := s.ks.Retrieve(s.wallet.KeyRef)
	if err != nil {
		return nil, fmt.Errorf("retrieving key for %q: %w", name, err)
	}
	key, err := crypto.HexToECDSA(normaliseHexKey(hexKey))
	if err != nil {
		return nil, fmt.Errorf("%w for %q: %v", ErrInvalidKey, name, err)
	}

	if got := crypto.PubkeyToAddress(key.PublicKey); got != s.Address() {
		return nil, fmt.Errorf("%w: key for %q derives %s, wallet is %s", ErrKeyMismatch, name, got.Hex(), s.wallet.Address)
	}
	return key, nil
}
