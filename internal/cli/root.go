// Package cli implementa a ferramenta pricingctl: validação de documentos de
// configuração, cotações offline e emissão de tokens de acesso
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/vfg2006/kenlo-pricing-api/pkg/output"
)

var (
	outputFormat string

	formatter output.Formatter
)

var rootCmd = &cobra.Command{
	Use:   "pricingctl",
	Short: "Ferramenta de linha de comando da tabela de preços Kenlo",
	Long: `pricingctl valida documentos de configuração de preços e calcula
cotações localmente, com as mesmas regras usadas pela API.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		switch outputFormat {
		case "table", "json", "yaml":
		default:
			return fmt.Errorf("formato de saída desconhecido: %q (use %v)", outputFormat, output.Formats)
		}
		formatter = output.NewFormatter(outputFormat)
		return nil
	},
}

// Execute executa o comando raiz
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Erro:", err)
		os.Exit(1)
	}
}

// RootCmd retorna o comando raiz para os testes
func RootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "table", "formato de saída: table, json, yaml")
}
