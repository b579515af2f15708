package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Mohsinsiddi/vinutoken/internal/ui"
	"github.com/Mohsinsiddi/vinutoken/internal/wallet"
	"github.com/spf13/cobra"
)

var (
	walletKeyStdin  bool
	walletGenerate  bool
	walletUnlockAll bool
)

var walletCmd = &cobra.Command{
	Use:   "wallet",
	Short: "Manage deployer wallets",
}

var walletAddCmd = &cobra.Command{
	Use:   "add <name> [address]",
	Short: "Add a wallet",
	Long: `Add a signing wallet (key stored in the OS keychain) or a watch-only address.

  vinutoken wallet add deployer              # prompts for the private key
  vinutoken wallet add deployer --key-stdin < key.txt
  vinutoken wallet add fresh --generate
  vinutoken wallet add treasury 0xAbC…       # watch-only`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		mgr := newWalletManager()

		if len(args) == 2 {
			if err := mgr.AddWatchOnly(name, args[1]); err != nil {
				return err
			}
			w, _ := mgr.Get(name)
			fmt.Println(ui.Success(fmt.Sprintf("Watch-only wallet %q added: %s", name, ui.Addr(w.Address))))
			fmt.Println(ui.Hint("Watch-only wallets cannot deploy. Add a key to sign."))
			return nil
		}

		var (
			w   *wallet.Wallet
			err error
		)
		switch {
		case walletGenerate:
			w, err = mgr.Generate(name)
		default:
			var key string
			key, err = readKey(walletKeyStdin)
			if err != nil {
				return err
			}
			w, err = mgr.AddWithKey(name, key)
		}
		if err != nil {
			return err
		}

		fmt.Println(ui.Success(fmt.Sprintf("Signing wallet %q added: %s", name, ui.Addr(w.Address))))
		if mgr.Default() == nil || cfg.DefaultWallet == "" {
			fmt.Println(ui.Hint("Set as default with: vinutoken wallet use " + name))
		}
		return nil
	},
}

var walletListCmd = &cobra.Command{
	Use:   "list",
	Short: "List wallets",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wallets, err := newWalletManager().List()
		if err != nil {
			return err
		}
		if len(wallets) == 0 {
			fmt.Println(ui.Info("No wallets configured yet."))
			fmt.Println(ui.Hint("Add one with: vinutoken wallet add deployer"))
			return nil
		}

		t := ui.NewTable([]ui.Column{
			{Title: "Name", Width: 16},
			{Title: "Address", Width: 42},
			{Title: "Type", Width: 10},
			{Title: "Default", Width: 7},
		})
		for _, w := range wallets {
			def := ""
			if w.IsDefault || w.Name == cfg.DefaultWallet {
				def = "✓"
			}
			t.AddRow(ui.Row{w.Name, w.Address, w.Type, def})
		}
		fmt.Println(t.Render())
		fmt.Println(ui.Meta(fmt.Sprintf("%d wallet(s) configured", len(wallets))))
		return nil
	},
}

var walletRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a wallet and its stored key",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if !assumeYes && !ui.ConfirmDanger(fmt.Sprintf("Remove wallet %q and delete its key?", name)) {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}
		if err := newWalletManager().Remove(name); err != nil {
			return err
		}
		if cfg.DefaultWallet == name {
			cfg.DefaultWallet = ""
			if err := cfg.Save(); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
		}
		fmt.Println(ui.Success(fmt.Sprintf("Wallet %q removed.", name)))
		return nil
	},
}

var walletUseCmd = &cobra.Command{
	Use:   "use [name]",
	Short: "Set the default deployer wallet",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()

		var name string
		if len(args) == 1 {
			name = args[0]
		} else {
			picked, err := pickWallet(mgr, "Default wallet", false)
			if err != nil {
				return err
			}
			name = picked
		}

		if err := mgr.SetDefault(name); err != nil {
			return err
		}
		cfg.DefaultWallet = name
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		fmt.Println(ui.Success(fmt.Sprintf("Default wallet set to %q.", name)))
		return nil
	},
}

var walletUnlockCmd = &cobra.Command{
	Use:   "unlock [name]",
	Short: "Cache wallet key(s) so deploys skip keychain prompts",
	Long: `Read private keys from the OS keychain once and cache them in a
restricted file until 'vinutoken wallet lock'.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mgr := newWalletManager()
		wallets, err := mgr.List()
		if err != nil {
			return err
		}

		var names []string
		switch {
		case walletUnlockAll:
			for _, w := range wallets {
				if w.CanSign() {
					names = append(names, w.Name)
				}
			}
		case len(args) == 1:
			names = args
		default:
			picked, err := pickWallet(mgr, "Unlock wallet", true)
			if err != nil {
				return err
			}
			names = []string{picked}
		}
		if len(names) == 0 {
			fmt.Println(ui.Info("No signing wallets found."))
			return nil
		}

		cache := wallet.DefaultUnlockCache()
		ks := wallet.DefaultKeystore(cfg.Dir(), nil)
		unlocked := 0
		for _, name := range names {
			w, err := mgr.Get(name)
			if err != nil {
				fmt.Println(ui.Err(err.Error()))
				continue
			}
			if !w.CanSign() {
				fmt.Println(ui.Warn(fmt.Sprintf("%-16s watch-only, skipped", name)))
				continue
			}
			key, err := ks.Retrieve(w.KeyRef)
			if err == nil {
				err = cache.Put(w.KeyRef, key)
			}
			if err != nil {
				fmt.Println(ui.Err(fmt.Sprintf("%-16s %v", name, err)))
				continue
			}
			fmt.Println(ui.Success(fmt.Sprintf("%-16s unlocked", name)))
			unlocked++
		}
		if unlocked > 0 {
			fmt.Println(ui.Hint("Run 'vinutoken wallet lock' to clear cached keys."))
		}
		return nil
	},
}

var walletLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Clear cached wallet keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cache := wallet.DefaultUnlockCache()
		if !cache.Active() {
			fmt.Println(ui.Meta("No unlocked wallets."))
			return nil
		}
		if err := cache.Clear(); err != nil {
			return fmt.Errorf("clearing unlock cache: %w", err)
		}
		fmt.Println(ui.Success("Cached keys cleared."))
		return nil
	},
}

func init() {
	walletAddCmd.Flags().BoolVar(&walletKeyStdin, "key-stdin", false, "read the private key from stdin")
	walletAddCmd.Flags().BoolVar(&walletGenerate, "generate", false, "generate a new key")
	walletAddCmd.MarkFlagsMutuallyExclusive("key-stdin", "generate")
	walletUnlockCmd.Flags().BoolVar(&walletUnlockAll, "all", false, "unlock every signing wallet")

	walletCmd.AddCommand(walletAddCmd, walletListCmd, walletRemoveCmd, walletUseCmd, walletUnlockCmd, walletLockCmd)
}

// newWalletManager creates a Manager backed by wallets.toml in the config
// dir and the OS keychain.
func newWalletManager() *wallet.Manager {
	store := wallet.NewFileStore(filepath.Join(cfg.Dir(), "wallets.toml"))
	ks := wallet.DefaultKeystore(cfg.Dir(), wallet.DefaultUnlockCache())
	return wallet.NewManager(wallet.WithStore(store), wallet.WithKeystore(ks))
}

// readKey takes the private key from stdin or a hidden prompt.
func readKey(fromStdin bool) (string, error) {
	if fromStdin {
		line, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil && line == "" {
			return "", fmt.Errorf("reading key from stdin: %w", err)
		}
		return strings.TrimSpace(line), nil
	}
	if !ui.Interactive() {
		return "", errors.New("no key given: use --key-stdin, --generate or pass an address for a watch-only wallet")
	}
	return ui.PromptSecret("Private key (hex)")
}

// pickWallet shows the wallet picker. signingOnly greys out watch-only
// wallets.
func pickWallet(mgr *wallet.Manager, title string, signingOnly bool) (string, error) {
	wallets, err := mgr.List()
	if err != nil {
		return "", err
	}
	if len(wallets) == 0 {
		return "", errors.New("no wallets configured; add one with: vinutoken wallet add <name>")
	}
	if !ui.Interactive() {
		return "", errors.New("wallet name required")
	}

	items := make([]ui.PickerItem, len(wallets))
	start := 0
	for i, w := range wallets {
		badge := ""
		switch {
		case w.Name == cfg.DefaultWallet || w.IsDefault:
			badge = "default"
			start = i
		case !w.CanSign():
			badge = "watch-only"
		}
		items[i] = ui.PickerItem{
			Label:    w.Name,
			SubLabel: ui.TruncateAddr(w.Address),
			Badge:    badge,
			Value:    w.Name,
			Disabled: signingOnly && !w.CanSign(),
		}
	}
	return ui.PickItem(title, items, start)
}
