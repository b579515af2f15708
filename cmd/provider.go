package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/Mohsinsiddi/vinutoken/internal/config"
	"github.com/Mohsinsiddi/vinutoken/internal/rpc"
	"github.com/Mohsinsiddi/vinutoken/internal/session"
	"github.com/Mohsinsiddi/vinutoken/internal/ui"
	"github.com/Mohsinsiddi/vinutoken/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
)

// vinuChain returns the target chain with custom RPCs from config first.
func vinuChain() chain.Chain {
	c := chain.VinuChain()
	c.RPCs = rpcURLs(c)
	return c
}

// rpcURLs merges configured custom RPCs ahead of the built-in ones.
func rpcURLs(c chain.Chain) []string {
	urls := slices.Clone(cfg.GetRPCs(c.Name))
	for _, u := range c.RPCs {
		if !slices.Contains(urls, u) {
			urls = append(urls, u)
		}
	}
	return urls
}

// walletRegistry returns the networks the local wallet knows: the built-in
// set plus every chain it was asked to add before.
func walletRegistry() *chain.Registry {
	reg := chain.NewRegistry()
	for _, ac := range cfg.AddedChains {
		reg.Add(chain.Chain{
			Name:           ac.Name,
			DisplayName:    ac.DisplayName,
			ChainID:        ac.ChainID,
			NativeCurrency: ac.NativeCurrency,
			Decimals:       18,
			RPCs:           ac.RPCs,
			Explorer:       ac.Explorer,
		})
	}
	return reg
}

// selectRPC benchmarks the chain's endpoints and picks one with the
// configured algorithm.
func selectRPC(ctx context.Context, c chain.Chain) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, config.RPCSelectTimeout)
	defer cancel()

	url, err := rpc.SelectBest(ctx, rpcURLs(c), cfg.RPCAlgorithm, c.ChainID)
	if err != nil {
		return "", err
	}
	logger.Debug("rpc selected", "chain", c.Name, "url", url, "algorithm", cfg.RPCAlgorithm)
	return url, nil
}

// approve asks before a wallet action unless --yes was given.
func approve(prompt string) bool {
	if assumeYes {
		return true
	}
	if !ui.Interactive() {
		logger.Warn("no terminal to approve wallet request", "request", prompt)
		return false
	}
	return ui.Confirm(prompt)
}

// rememberChain persists the wallet's network and any chain it registered.
func rememberChain(c chain.Chain, added bool) {
	if added {
		cfg.PutChain(config.AddedChain{
			ChainID:        c.ChainID,
			Name:           c.Name,
			DisplayName:    c.DisplayName,
			NativeCurrency: c.NativeCurrency,
			RPCs:           c.RPCs,
			Explorer:       c.Explorer,
		})
	}
	cfg.WalletNetwork = c.Name
	if err := cfg.Save(); err != nil {
		logger.Error("saving wallet network", "err", err)
	}
}

// resolveWallet returns the named wallet, else the default one, else asks.
func resolveWallet(mgr *wallet.Manager, name string) (*wallet.Wallet, error) {
	if name == "" {
		name = cfg.DefaultWallet
	}
	if name != "" {
		return mgr.Get(name)
	}
	if w := mgr.Default(); w != nil {
		return w, nil
	}
	picked, err := pickWallet(mgr, "Select deployer wallet", true)
	if err != nil {
		return nil, err
	}
	return mgr.Get(picked)
}

// newProvider builds the local wallet provider for w, starting on the
// network it was last switched to.
func newProvider(w *wallet.Wallet, ks wallet.KeystoreBackend) *wallet.LocalProvider {
	reg := walletRegistry()
	start := int64(1)
	if c, err := reg.GetByName(cfg.WalletNetwork); err == nil {
		start = c.ChainID
	}
	return wallet.NewLocalProvider(w, ks, reg, start,
		wallet.WithApprover(approve),
		wallet.WithRPCSelector(selectRPC),
		wallet.WithChainListener(rememberChain),
	)
}

// connect runs the wallet handshake for walletName (or the default wallet).
func connect(ctx context.Context, walletName string) (*session.Session, error) {
	mgr := newWalletManager()
	w, err := resolveWallet(mgr, walletName)
	if err != nil {
		if errors.Is(err, wallet.ErrWalletNotFound) {
			return nil, fmt.Errorf("%w; run 'vinutoken wallet list'", err)
		}
		return nil, err
	}
	logger.Debug("connecting wallet", "wallet", w.Name, "network", cfg.WalletNetwork)

	return session.Connect(ctx, session.Options{
		Provider:      newProvider(w, mgr.Keystore()),
		Target:        vinuChain(),
		WrappedNative: common.HexToAddress(cfg.WrappedNativeAddress()),
		Logger:        logger,
	})
}

func printSession(s *session.Session) {
	fmt.Println(ui.Success("Connected: " + ui.Addr(s.ShortAddress())))
	fmt.Println(ui.KeyValueBlock("", [][2]string{
		{"Wallet", s.Signer.WalletName()},
		{"Network", fmt.Sprintf("%s (%s)", s.Chain.DisplayName, s.Chain.HexID())},
		{"RPC", s.Network.URL()},
		{"Balance", s.Balance},
	}))
}
