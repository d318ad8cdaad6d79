package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/configuring"
)

var validateCmd = &cobra.Command{
	Use:   "validate <config.json>",
	Short: "Valida um documento de configuração de preços",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		document, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("não foi possível ler %s: %w", args[0], err)
		}

		cfg, err := configuring.Parse(document)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Configuração %s válida (%d kombos).\n", cfg.Version, len(cfg.Kombos))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
