package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/inada-mfg/quote-cli/internal/validate"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login <email>",
	Short: "Obtain a bearer token and store it locally",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		email := args[0]
		password := loginPassword
		if password == "" {
			password = os.Getenv("QUOTE_PASSWORD")
		}

		if res := validate.Login(validate.Credentials{Email: email, Password: password}); !res.Valid {
			return eris.New(res.Error)
		}

		resp, err := newAPIClient().Login(cmd.Context(), email, password)
		if err != nil {
			return err
		}
		if resp.Data.Token == "" {
			return eris.New("login: server returned no token")
		}

		if err := os.WriteFile(cfg.Auth.TokenFile, []byte(resp.Data.Token), 0o600); err != nil {
			return eris.Wrap(err, "login: write token file")
		}

		zap.L().Info("login successful", zap.String("token_file", cfg.Auth.TokenFile))
		fmt.Printf("logged in, token written to %s\n", cfg.Auth.TokenFile)
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password (or set QUOTE_PASSWORD)")
	rootCmd.AddCommand(loginCmd)
}
