package cli

import (
	"fmt"
	"io"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/configuring"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/quoting"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	quoteConfigPath string
	quoteInputPath  string
	quoteKombo      string
)

var quoteCmd = &cobra.Command{
	Use:   "quote",
	Short: "Calcula uma cotação a partir de um documento de configuração",
	Long: `Calcula a cotação descrita em --input (JSON, "-" para a entrada padrão)
com a configuração de --config e imprime os valores arredondados.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		document, err := os.ReadFile(quoteConfigPath)
		if err != nil {
			return fmt.Errorf("não foi possível ler %s: %w", quoteConfigPath, err)
		}

		cfg, err := configuring.Parse(document)
		if err != nil {
			return err
		}

		raw, err := readInput(cmd, quoteInputPath)
		if err != nil {
			return err
		}

		var in domain.QuoteInput
		if err := json.Unmarshal(raw, &in); err != nil {
			return fmt.Errorf("cotação inválida em %s: %w", quoteInputPath, err)
		}
		if quoteKombo != "" {
			in.KomboID = quoteKombo
		}

		result, err := quoting.ComputeQuote(cfg, in)
		if err != nil {
			return err
		}

		fmt.Fprint(cmd.OutOrStdout(), formatter.Format(result.Present()))
		return nil
	},
}

func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(cmd.InOrStdin())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("não foi possível ler %s: %w", path, err)
	}
	return raw, nil
}

func init() {
	quoteCmd.Flags().StringVar(&quoteConfigPath, "config", "configs/pricing.json", "documento de configuração de preços")
	quoteCmd.Flags().StringVar(&quoteInputPath, "input", "-", "cotação em JSON (\"-\" lê da entrada padrão)")
	quoteCmd.Flags().StringVar(&quoteKombo, "kombo", "", "kombo a aplicar (\"auto\" escolhe o melhor)")
	rootCmd.AddCommand(quoteCmd)
}
