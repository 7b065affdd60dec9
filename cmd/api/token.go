package main

import (
	"errors"
	"fmt"

	"github.com/cmlabs-hris/sge-backend-go/internal/pkg/jwt"
	"github.com/spf13/cobra"
)

var tokenFlags struct {
	subject    string
	employeeID string
	role       string
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an access token for local testing",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.JWT.Secret == "" {
			return errors.New("JWT_SECRET_KEY is not set")
		}

		role, ok := jwt.ParseRole(tokenFlags.role)
		if !ok {
			return fmt.Errorf("unknown role %q", tokenFlags.role)
		}
		if role == jwt.RoleEmployee && tokenFlags.employeeID == "" {
			return errors.New("--employee-id is required for the employee role")
		}

		svc, err := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
		if err != nil {
			return err
		}

		token, _, err := svc.GenerateAccessToken(tokenFlags.subject, tokenFlags.employeeID, role)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), token)
		return nil
	},
}

func init() {
	tokenCmd.Flags().StringVar(&tokenFlags.subject, "subject", "dev", "token subject")
	tokenCmd.Flags().StringVar(&tokenFlags.employeeID, "employee-id", "", "employee the token acts for")
	tokenCmd.Flags().StringVar(&tokenFlags.role, "role", string(jwt.RoleEmployee), "employee, manager or admin")
}
