package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/Mohsinsiddi/vinutoken/internal/ui"
	"github.com/spf13/cobra"
)

var networkCmd = &cobra.Command{
	Use:   "network",
	Short: "Inspect and switch the local wallet's network",
}

var networkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the networks the local wallet knows",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		reg := walletRegistry()
		target := chain.VinuChain()

		t := ui.NewTable([]ui.Column{
			{Title: "", Width: 2},
			{Title: "Name", Width: 16},
			{Title: "Display", Width: 20},
			{Title: "Chain ID", Width: 12},
			{Title: "Currency", Width: 8},
			{Title: "Note", Width: 18},
		})

		rows := reg.All()
		if _, err := reg.GetByChainID(target.ChainID); err != nil {
			rows = append(rows, target)
		}
		for _, c := range rows {
			mark, note := "", ""
			if c.Name == cfg.WalletNetwork {
				mark = "●"
			}
			if c.ChainID == target.ChainID {
				note = "deploy target"
				if _, err := reg.GetByChainID(c.ChainID); err != nil {
					note = "added on connect"
				}
			}
			t.AddRow(ui.Row{
				mark,
				ui.ChainName(c.Name),
				c.DisplayName,
				fmt.Sprintf("%d (%s)", c.ChainID, c.HexID()),
				c.NativeCurrency,
				ui.Meta(note),
			})
		}

		fmt.Println(t.Render())
		current := cfg.WalletNetwork
		if current == "" {
			current = "ethereum"
		}
		fmt.Println(ui.Meta(fmt.Sprintf("wallet is on %s", current)))
		return nil
	},
}

var networkUseCmd = &cobra.Command{
	Use:   "use <chain>",
	Short: "Point the local wallet at a known network",
	Long: `Set the network the local wallet starts on. create and connect switch
it to VinuChain anyway; this is mostly useful for testing the switch flow.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if _, err := walletRegistry().GetByName(name); err != nil {
			return fmt.Errorf("%w: %q; run 'vinutoken network list'", err, name)
		}

		cfg.WalletNetwork = name
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Wallet network set to " + ui.ChainName(name)))
		return nil
	},
}

func init() {
	networkCmd.AddCommand(networkListCmd, networkUseCmd)
}
