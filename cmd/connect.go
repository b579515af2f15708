package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/vinutoken/internal/chain"
	"github.com/Mohsinsiddi/vinutoken/internal/config"
	"github.com/Mohsinsiddi/vinutoken/internal/contract"
	"github.com/Mohsinsiddi/vinutoken/internal/deploy"
	"github.com/Mohsinsiddi/vinutoken/internal/token"
	"github.com/Mohsinsiddi/vinutoken/internal/ui"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var connectWallet string

var connectCmd = &cobra.Command{
	Use:   "connect",
	Short: "Connect the deployer wallet to VinuChain and show its WVC balance",
	Long: `Run the wallet handshake: request account access, switch the wallet to
VinuChain (adding the network if the wallet does not know it), then read the
account's WVC balance and the current creation fee.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		sess, err := connect(ctx, connectWallet)
		if err != nil {
			return err
		}
		printSession(sess)

		quote := newFeeOracle().Fetch(ctx, contract.NewCaller(sess.Network))
		printFee(quote)
		return nil
	},
}

var feeCmd = &cobra.Command{
	Use:   "fee",
	Short: "Show the factory's current creation fee",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		oracle := newFeeOracle()

		url, err := selectRPC(ctx, vinuChain())
		if err != nil {
			logger.Error("no VinuChain RPC available", "err", err)
			printFee(oracle.Current())
			return nil
		}
		printFee(oracle.Fetch(ctx, contract.NewCaller(chain.NewEVMClient(url))))
		return nil
	},
}

func init() {
	connectCmd.Flags().StringVarP(&connectWallet, "wallet", "w", "", "wallet name (default: configured default wallet)")
}

// newFeeOracle returns an oracle for the configured fee source, starting at
// the configured fallback fee.
func newFeeOracle() *deploy.FeeOracle {
	fallback, err := token.ParseUnits(cfg.FallbackFeeVC(), 18)
	if err != nil {
		logger.Warn("invalid fallback fee in config, using default", "value", cfg.FallbackFeeVC(), "err", err)
		fallback, _ = token.ParseUnits(config.FallbackCreationFee, 18)
	}
	return deploy.NewFeeOracle(common.HexToAddress(cfg.FeeSourceAddress()), fallback, logger)
}

func printFee(q deploy.Quote) {
	line := fmt.Sprintf("Creation fee: %s", ui.Val(q.Display))
	if q.Fallback {
		fmt.Println(ui.Warn(line + " (default, could not read from chain)"))
		return
	}
	fmt.Println(ui.Info(line))
}
