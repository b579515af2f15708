package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/Mohsinsiddi/vinutoken/internal/contract"
	"github.com/Mohsinsiddi/vinutoken/internal/deploy"
	"github.com/Mohsinsiddi/vinutoken/internal/token"
	"github.com/Mohsinsiddi/vinutoken/internal/ui"
	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

var (
	createFlags   paramFlags
	createWallet  string
	createForm    bool
	createTimeout time.Duration
)

var createCmd = &cobra.Command{
	Use:     "create",
	Aliases: []string{"deploy"},
	Short:   "Create a token through the VinuChain factory",
	Long: `Validate the token parameters, connect the deployer wallet, quote the
creation fee and submit createToken with the fee attached.

Parameters come from --params and flags. With --form (or when required
values are missing on a terminal) they are collected interactively.`,
	Example: `  vinutoken create --form
  vinutoken create --params token.toml --wallet deployer
  vinutoken create --name "Vinu Cat" --symbol VCAT --supply 1000000000 --buy-tax 2 --dev-wallet 0x… -y`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := createFlags.params(cmd)
		if err != nil {
			return err
		}
		p, err = gatherParams(p)
		if err != nil {
			return err
		}
		if err := printValidation(token.Validate(p)); err != nil {
			return err
		}
		fmt.Println(previewBlock(p))

		ctx := cmd.Context()
		if createTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, createTimeout)
			defer cancel()
		}

		log := logger.With("submission", uuid.NewString())
		sess, err := connect(ctx, createWallet)
		if err != nil {
			return err
		}
		printSession(sess)

		fee := newFeeOracle().Fetch(ctx, contract.NewCaller(sess.Network))
		printFee(fee)

		if !assumeYes {
			q := fmt.Sprintf("Create %s (%s) for %s?", p.Name, p.Symbol, fee.Display)
			if !ui.Interactive() {
				return fmt.Errorf("%w: no terminal to confirm; pass --yes", ui.ErrCancelled)
			}
			if !ui.Confirm(q) {
				return ui.ErrCancelled
			}
		}

		spin := ui.NewSpinner("Waiting for wallet signature…")
		sub := deploy.NewSubmitter(common.HexToAddress(cfg.FactoryAddress()),
			deploy.WithGasLimit(cfg.CreateTokenGasLimit()),
			deploy.WithLogger(log),
			deploy.WithNotify(func(e deploy.Event) {
				switch e.Kind {
				case deploy.EventSubmitted:
					spin.Update("Transaction sent, waiting for confirmation… " + ui.Meta(e.ExplorerTx))
				case deploy.EventMined:
					spin.Update(fmt.Sprintf("Mined in block %d", e.Block))
				}
			}),
		)

		spin.Start()
		out, err := sub.Deploy(ctx, p, sess, fee)
		spin.Stop()
		if err != nil {
			return err
		}
		printOutcome(out)
		return nil
	},
}

func init() {
	createFlags.register(createCmd)
	createCmd.Flags().StringVarP(&createWallet, "wallet", "w", "", "deployer wallet (default: configured default wallet)")
	createCmd.Flags().BoolVar(&createForm, "form", false, "edit parameters in the interactive form")
	createCmd.Flags().DurationVar(&createTimeout, "timeout", 0, "give up after this long (0 = wait for the receipt)")
}

// gatherParams fills p from the form or from prompts when a terminal is
// available.
func gatherParams(p token.Params) (token.Params, error) {
	if !ui.Interactive() {
		if createForm {
			return p, fmt.Errorf("--form needs a terminal")
		}
		return p, nil
	}
	if createForm {
		return ui.RunForm(p)
	}
	return promptMissing(p)
}

func printOutcome(out *deploy.Outcome) {
	if out.Degraded {
		fmt.Println(ui.Warn(out.Summary()))
	} else {
		fmt.Println(ui.Success(out.Summary()))
	}

	pairs := [][2]string{
		{"Transaction", out.TxHash.Hex()},
		{"Explorer", out.ExplorerTx},
	}
	if !out.Degraded {
		pairs = append([][2]string{{"Token", out.Token.Hex()}, {"Creator", out.Creator.Hex()}}, pairs...)
	}
	fmt.Println(ui.KeyValueBlock("Deployment", pairs))

	if len(out.NextSteps) > 0 {
		fmt.Println(ui.Steps("Next steps", out.NextSteps))
	}
}
