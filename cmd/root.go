package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"cosmossdk.io/log"
	"github.com/Mohsinsiddi/vinutoken/internal/config"
	"github.com/Mohsinsiddi/vinutoken/internal/deploy"
	"github.com/Mohsinsiddi/vinutoken/internal/session"
	"github.com/Mohsinsiddi/vinutoken/internal/ui"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/vinutoken/cmd.Version=1.2.3" .
var Version = "0.1.0"

// ConfigDirEnv overrides the --config flag default.
const ConfigDirEnv = "VINUTOKEN_CONFIG_DIR"

var (
	cfgDir    string
	cfg       *config.Config
	verbose   bool
	assumeYes bool
	logger    log.Logger = log.NewNopLogger()
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "vinutoken",
	Short: "Create tokens on VinuChain",
	Long: `vinutoken creates ERC-20 tokens with buy/sell taxes, burn rate and
max-transaction limits through the VinuChain token factory.

  vinutoken wallet add deployer --key-stdin < key.txt
  vinutoken connect
  vinutoken create --name "Vinu Cat" --symbol VCAT --supply 1000000000`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = newLogger(verbose)

		if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "version" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		logger.Debug("config loaded", "dir", cfg.Dir())
		return nil
	},
}

// Execute runs the root command. Ctrl-C cancels the running operation.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		if errors.Is(err, ui.ErrCancelled) || errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, ui.Meta("Cancelled."))
		} else {
			fmt.Fprintln(os.Stderr, ui.Err(errorMessage(err)))
		}
		os.Exit(1)
	}
}

// errorMessage turns the sentinels a user can act on into the sentence
// shown for them. Anything else prints as is.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, deploy.ErrNoSigner):
		return "Please connect wallet first."
	case errors.Is(err, session.ErrSwitchRejected):
		return "User rejected network switch to VinuChain."
	case errors.Is(err, session.ErrUserRejected):
		return "Wallet connection was rejected."
	default:
		return err.Error()
	}
}

// newLogger returns a stderr logger; library noise stays hidden unless
// verbose is set.
func newLogger(verbose bool) log.Logger {
	level := zerolog.WarnLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	return log.NewLogger(os.Stderr, log.LevelOption(level), log.ColorOption(ui.Interactive()))
}

func init() {
	if envDir := os.Getenv(ConfigDirEnv); envDir != "" {
		cfgDir = envDir
	}

	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", cfgDir, "config directory (default: ~/.vinutoken, env "+ConfigDirEnv+")")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "approve wallet prompts without asking")

	rootCmd.AddCommand(
		walletCmd,
		connectCmd,
		feeCmd,
		validateCmd,
		previewCmd,
		createCmd,
		networkCmd,
		rpcCmd,
		versionCmd,
	)
}
