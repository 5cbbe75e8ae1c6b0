package main

import (
	"fmt"
	"time"

	"tradesupport/internal/app/config"
	"tradesupport/internal/app/middleware"

	"github.com/spf13/cobra"
)

var tokenEmail string

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a JWT for an existing user",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "user email")
	_ = tokenCmd.MarkFlagRequired("email")
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	repo, err := openRepository()
	if err != nil {
		return err
	}

	user, err := repo.GetUserByEmail(cmd.Context(), tokenEmail)
	if err != nil {
		return err
	}

	token, err := middleware.IssueToken(user, cfg.JWT, time.Now())
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), token)
	return nil
}
