// Package session performs the wallet handshake that precedes a deployment:
// account access, moving the wallet onto VinuChain, and reading the
// connected account's WVC balance.
package session

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"cosmossdk.io/log"
	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/Mohsinsiddi/vinutoken/internal/contract"
	"github.com/Mohsinsiddi/vinutoken/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
)

// BalanceUnavailable is shown in place of the balance when the read fails.
const BalanceUnavailable = "Error fetching balance"

var (
	ErrProviderMissing     = errors.New("no wallet provider available")
	ErrUserRejected        = errors.New("user rejected wallet connection")
	ErrSwitchRejected      = errors.New("user rejected network switch to VinuChain")
	ErrNetworkSwitchFailed = errors.New("network switch error")
)

// Session is a connected wallet on the target chain. A nil *Session means
// no wallet is connected.
type Session struct {
	Network    *chain.EVMClient
	Chain      chain.Chain
	Signer     *wallet.Signer
	Address    common.Address
	BalanceWei *big.Int // nil when the balance read failed
	Balance    string
}

// ShortAddress renders the address as 0x1234…abcd.
func (s *Session) ShortAddress() string {
	return Shorten(s.Address.Hex())
}

// Shorten truncates a hex address to its first 6 and last 4 characters.
func Shorten(addr string) string {
	if len(addr) <= 10 {
		return addr
	}
	return addr[:6] + "…" + addr[len(addr)-4:]
}

// Options configures Connect.
type Options struct {
	Provider      wallet.Provider
	Target        chain.Chain
	WrappedNative common.Address
	Logger        log.Logger
}

// Connect runs the full handshake against opts.Provider and returns a
// populated session. Every call repeats the handshake from the start.
func Connect(ctx context.Context, opts Options) (*Session, error) {
	if opts.Provider == nil {
		return nil, ErrProviderMissing
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	p := opts.Provider

	if _, err := p.RequestAccounts(ctx); err != nil {
		if wallet.HasCode(err, wallet.CodeUserRejected) {
			return nil, ErrUserRejected
		}
		return nil, fmt.Errorf("requesting accounts: %w", err)
	}

	current, err := p.ChainID(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading wallet chain: %w", err)
	}
	if current != opts.Target.ChainID {
		logger.Debug("switching wallet network", "from", current, "to", opts.Target.HexID())
		if err := ensureChain(ctx, p, opts.Target); err != nil {
			return nil, err
		}
	}

	signer, err := p.Signer(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting signer: %w", err)
	}
	client, err := p.Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting network handle: %w", err)
	}

	s := &Session{
		Network: client,
		Chain:   opts.Target,
		Signer:  signer,
		Address: signer.Address(),
	}

	bal, err := contract.NewCaller(client).BalanceOf(ctx, opts.WrappedNative, s.Address)
	if err != nil {
		logger.Error("failed to fetch WVC balance", "address", s.Address.Hex(), "err", err)
		s.Balance = BalanceUnavailable
	} else {
		s.BalanceWei = bal
		s.Balance = chain.FormatWei(bal, 18) + " WVC"
	}

	logger.Info("wallet connected", "address", s.Address.Hex(), "rpc", client.URL())
	return s, nil
}

// ensureChain switches the wallet to target, registering it first when the
// wallet does not know it.
func ensureChain(ctx context.Context, p wallet.Provider, target chain.Chain) error {
	err := p.SwitchChain(ctx, target.ChainID)
	if wallet.HasCode(err, wallet.CodeUnrecognizedChain) {
		err = p.AddChain(ctx, target.AddChainParams())
	}
	switch {
	case err == nil:
		return nil
	case wallet.HasCode(err, wallet.CodeUserRejected):
		return ErrSwitchRejected
	default:
		return fmt.Errorf("%w: %s", ErrNetworkSwitchFailed, providerMessage(err))
	}
}

func providerMessage(err error) string {
	var pe *wallet.ProviderError
	if errors.As(err, &pe) {
		return pe.Message
	}
	return err.Error()
}
