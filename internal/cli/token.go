package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vfg2006/kenlo-pricing-api/internal/config"
	"github.com/vfg2006/kenlo-pricing-api/internal/domain"
	"github.com/vfg2006/kenlo-pricing-api/internal/usecases/authenticating"
)

var (
	tokenEmail string
	tokenName  string
	tokenRole  string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Emite um token de acesso assinado com AUTH_SECRET",
	RunE: func(cmd *cobra.Command, args []string) error {
		viper.AutomaticEnv()

		auth, err := authenticating.NewService(config.Auth{Secret: viper.GetString("AUTH_SECRET")})
		if err != nil {
			return err
		}

		token, err := auth.IssueToken(tokenEmail, tokenName, tokenRole, tokenTTL)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "e-mail do usuário")
	tokenCmd.Flags().StringVar(&tokenName, "name", "", "nome do usuário")
	tokenCmd.Flags().StringVar(&tokenRole, "role", domain.RoleSales, "perfil: admin ou sales")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "validade do token")
	_ = tokenCmd.MarkFlagRequired("email")
	rootCmd.AddCommand(tokenCmd)
}
