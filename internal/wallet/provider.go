package wallet

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/ethereum/go-ethereum/common"
)

// Provider error codes, as defined by EIP-1193 and EIP-3326.
const (
	CodeUserRejected      = 4001
	CodeUnauthorized      = 4100
	CodeUnrecognizedChain = 4902
	CodeInvalidParams     = -32602
)

// ProviderError is a coded error returned by a wallet provider.
type ProviderError struct {
	Code    int
	Message string
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s (code %d)", e.Message, e.Code)
}

// HasCode reports whether err is a *ProviderError with the given code.
func HasCode(err error, code int) bool {
	var pe *ProviderError
	return errors.As(err, &pe) && pe.Code == code
}

// Provider is the capability surface of a connected wallet.
type Provider interface {
	// RequestAccounts asks the user to expose their accounts.
	RequestAccounts(ctx context.Context) ([]common.Address, error)
	// ChainID returns the chain the wallet is currently on.
	ChainID(ctx context.Context) (int64, error)
	// SwitchChain moves the wallet to a chain it already knows.
	SwitchChain(ctx context.Context, chainID int64) error
	// AddChain registers a network with the wallet and switches to it.
	AddChain(ctx context.Context, params chain.AddChainParams) error
	// Signer returns a transaction signer for the connected account.
	Signer(ctx context.Context) (*Signer, error)
	// Client returns a JSON-RPC handle for the current chain.
	Client(ctx context.Context) (*chain.EVMClient, error)
}

// RPCSelector picks an endpoint for c.
type RPCSelector func(ctx context.Context, c chain.Chain) (string, error)

// ProviderOption configures a LocalProvider.
type ProviderOption func(*LocalProvider)

// WithApprover sets the prompt used for every request that needs consent.
// Without one, all requests are approved.
func WithApprover(fn func(prompt string) bool) ProviderOption {
	return func(p *LocalProvider) { p.approve = fn }
}

// WithRPCSelector sets how Client picks an endpoint. Without one, the first
// RPC of the chain is used.
func WithRPCSelector(fn RPCSelector) ProviderOption {
	return func(p *LocalProvider) { p.selectRPC = fn }
}

// WithChainListener registers a hook run after the wallet changes network.
// added is true when the chain was registered by AddChain.
func WithChainListener(fn func(c chain.Chain, added bool)) ProviderOption {
	return func(p *LocalProvider) { p.onChainChanged = fn }
}

// LocalProvider is a Provider backed by a wallet from the manager and its
// keystore.
type LocalProvider struct {
	wallet *Wallet
	ks     KeystoreBackend
	chains *chain.Registry

	approve        func(prompt string) bool
	selectRPC      RPCSelector
	onChainChanged func(c chain.Chain, added bool)

	mu        sync.Mutex
	current   int64
	connected bool
}

// NewLocalProvider returns a provider for w, currently on chainID.
func NewLocalProvider(w *Wallet, ks KeystoreBackend, chains *chain.Registry, chainID int64, opts ...ProviderOption) *LocalProvider {
	p := &LocalProvider{
		wallet:  w,
		ks:      ks,
		chains:  chains,
		current: chainID,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *LocalProvider) RequestAccounts(_ context.Context) ([]common.Address, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.connected {
		if !p.ask(fmt.Sprintf("Connect wallet %q (%s)?", p.wallet.Name, p.wallet.Address)) {
			return nil, rejected()
		}
		p.connected = true
	}
	return []common.Address{common.HexToAddress(p.wallet.Address)}, nil
}

func (p *LocalProvider) ChainID(_ context.Context) (int64, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current, nil
}

func (p *LocalProvider) SwitchChain(_ context.Context, chainID int64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, err := p.chains.GetByChainID(chainID)
	if err != nil {
		return &ProviderError{
			Code:    CodeUnrecognizedChain,
			Message: fmt.Sprintf("Unrecognized chain ID 0x%X. Try adding the chain first.", chainID),
		}
	}
	if chainID == p.current {
		return nil
	}
	if !p.ask(fmt.Sprintf("Switch wallet network to %s?", c.DisplayName)) {
		return rejected()
	}
	p.current = chainID
	p.notify(*c, false)
	return nil
}

func (p *LocalProvider) AddChain(_ context.Context, params chain.AddChainParams) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	c, err := chain.ChainFromParams(params)
	if err != nil {
		return &ProviderError{Code: CodeInvalidParams, Message: err.Error()}
	}
	prompt := fmt.Sprintf("Add network %s (chain %d, RPC %s) and switch to it?", c.DisplayName, c.ChainID, c.RPCs[0])
	if !p.ask(prompt) {
		return rejected()
	}
	p.chains.Add(c)
	p.current = c.ChainID
	p.notify(c, true)
	return nil
}

func (p *LocalProvider) Signer(_ context.Context) (*Signer, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.connected {
		return nil, &ProviderError{Code: CodeUnauthorized, Message: "Wallet is not connected."}
	}
	if !p.wallet.CanSign() {
		return nil, &ProviderError{
			Code:    CodeUnauthorized,
			Message: fmt.Sprintf("Wallet %q is watch-only and cannot sign.", p.wallet.Name),
		}
	}
	return NewSigner(p.wallet, p.ks), nil
}

func (p *LocalProvider) Client(ctx context.Context) (*chain.EVMClient, error) {
	p.mu.Lock()
	id := p.current
	c, err := p.chains.GetByChainID(id)
	p.mu.Unlock()
	if err != nil {
		return nil, fmt.Errorf("current chain %d: %w", id, err)
	}

	if p.selectRPC != nil {
		url, err := p.selectRPC(ctx, *c)
		if err != nil {
			return nil, fmt.Errorf("selecting RPC for %s: %w", c.DisplayName, err)
		}
		return chain.NewEVMClient(url), nil
	}
	if len(c.RPCs) == 0 {
		return nil, fmt.Errorf("no RPC configured for %s", c.DisplayName)
	}
	return chain.NewEVMClient(c.RPCs[0]), nil
}

func (p *LocalProvider) ask(prompt string) bool {
	if p.approve == nil {
		return true
	}
	return p.approve(prompt)
}

func (p *LocalProvider) notify(c chain.Chain, added bool) {
	if p.onChainChanged != nil {
		p.onChainChanged(c, added)
	}
}

func rejected() error {
	return &ProviderError{Code: CodeUserRejected, Message: "User rejected the request."}
}

var _ Provider = (*LocalProvider)(nil)
