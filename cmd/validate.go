package cmd

import (
	"fmt"

	"github.com/Mohsinsiddi/vinutoken/internal/token"
	"github.com/Mohsinsiddi/vinutoken/internal/ui"
	"github.com/spf13/cobra"
)

var validateFlags paramFlags

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check token parameters without deploying",
	Example: `  vinutoken validate --params token.toml
  vinutoken validate --name "Vinu Cat" --symbol VCAT --supply 1000000 --buy-tax 2 --dev-wallet 0x…`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := validateFlags.params(cmd)
		if err != nil {
			return err
		}
		if err := printValidation(token.Validate(p)); err != nil {
			return err
		}
		fmt.Println(ui.Success("Parameters are valid."))
		return nil
	},
}

var previewFlags paramFlags

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Show how the token parameters will be submitted",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := previewFlags.params(cmd)
		if err != nil {
			return err
		}
		fmt.Println(previewBlock(p))
		if errs := token.Validate(p); len(errs) > 0 {
			fmt.Println(ui.Warn(fmt.Sprintf("%d field(s) need attention; run 'vinutoken validate' for details.", len(errs))))
		}
		return nil
	},
}

func init() {
	validateFlags.register(validateCmd)
	previewFlags.register(previewCmd)
}
