package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/Mohsinsiddi/vinutoken/internal/config"
	"github.com/Mohsinsiddi/vinutoken/internal/rpc"
	"github.com/Mohsinsiddi/vinutoken/internal/ui"
	"github.com/spf13/cobra"
)

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Manage VinuChain RPC endpoints",
}

var rpcAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add a custom VinuChain RPC URL",
	Long:  "Add a custom RPC URL. The endpoint must answer and report chain ID 207.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		c := chain.VinuChain()

		ctx, cancel := context.WithTimeout(cmd.Context(), config.RPCHealthTimeout)
		defer cancel()
		ep, err := rpc.HealthCheck(ctx, url, c.ChainID)
		if err != nil {
			return fmt.Errorf("checking %s: %w", url, err)
		}

		if err := cfg.AddRPC(c.Name, url); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Added RPC %s (%dms, block %d)", url, ep.Latency.Milliseconds(), ep.BlockNumber)))
		return nil
	},
}

var rpcRemoveCmd = &cobra.Command{
	Use:   "remove <url>",
	Short: "Remove a custom RPC URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		url := args[0]
		if err := cfg.RemoveRPC(chain.VinuChain().Name, url); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success("Removed RPC " + url))
		return nil
	},
}

var rpcListCmd = &cobra.Command{
	Use:   "list",
	Short: "List VinuChain RPC URLs in selection order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := chain.VinuChain()
		custom := cfg.GetRPCs(c.Name)

		fmt.Println(ui.StyleTitle.Render(fmt.Sprintf("RPCs for %s (algorithm: %s)", c.DisplayName, cfg.RPCAlgorithm)))
		for _, u := range rpcURLs(c) {
			src := ui.Meta("(built-in)")
			if slices.Contains(custom, u) {
				src = ui.Meta("(custom)")
			}
			fmt.Printf("  %s %s\n", src, u)
		}
		return nil
	},
}

var rpcBenchmarkCmd = &cobra.Command{
	Use:   "benchmark",
	Short: "Measure every VinuChain RPC",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		c := vinuChain()
		fmt.Println(ui.StyleTitle.Render(fmt.Sprintf("Benchmarking %s RPCs...", c.DisplayName)))

		ctx, cancel := context.WithTimeout(cmd.Context(), config.RPCBenchmarkTimeout)
		defer cancel()
		results := rpc.Benchmark(ctx, c.RPCs, c.ChainID)

		t := ui.NewTable([]ui.Column{
			{Title: "RPC URL", Width: 40},
			{Title: "Latency", Width: 10},
			{Title: "Block #", Width: 12},
			{Title: "Status", Width: 24},
		})
		for _, r := range results {
			if r.Err != nil {
				t.AddRow(ui.Row{r.URL, "-", "-", ui.Err(r.Err.Error())})
				continue
			}
			t.AddRow(ui.Row{
				r.URL,
				fmt.Sprintf("%dms", r.Latency.Milliseconds()),
				fmt.Sprintf("%d", r.BlockNumber),
				ui.Success("healthy"),
			})
		}
		fmt.Println(t.Render())
		return nil
	},
}

var rpcAlgorithmCmd = &cobra.Command{
	Use:   "algorithm",
	Short: "Show or set the RPC selection algorithm",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(cfg.RPCAlgorithm)
		return nil
	},
}

var rpcAlgorithmSetCmd = &cobra.Command{
	Use:       "set <fastest|round-robin|failover>",
	Short:     "Set the RPC selection algorithm",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(rpc.AlgorithmFastest), string(rpc.AlgorithmRoundRobin), string(rpc.AlgorithmFailover)},
	RunE: func(cmd *cobra.Command, args []string) error {
		algo, err := rpc.ParseAlgorithm(args[0])
		if err != nil {
			return err
		}
		cfg.RPCAlgorithm = string(algo)
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("RPC algorithm set to %q", algo)))
		return nil
	},
}

func init() {
	rpcAlgorithmCmd.AddCommand(rpcAlgorithmSetCmd)
	rpcCmd.AddCommand(rpcAddCmd, rpcRemoveCmd, rpcListCmd, rpcBenchmarkCmd, rpcAlgorithmCmd)
}
