package main

import (
	"fmt"

	"tradesupport/internal/app/dsn"
	"tradesupport/internal/app/repository"
	"tradesupport/internal/app/role"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	seedEmail string
	seedName  string
)

var seedAdminCmd = &cobra.Command{
	Use:   "seed-admin",
	Short: "Create the first administrator",
	RunE:  runSeedAdmin,
}

func init() {
	seedAdminCmd.Flags().StringVar(&seedEmail, "email", "", "administrator email")
	seedAdminCmd.Flags().StringVar(&seedName, "name", "Administrator", "administrator full name")
	_ = seedAdminCmd.MarkFlagRequired("email")
}

func openRepository() (*repository.Repository, error) {
	_ = godotenv.Load()
	dsnStr := dsn.FromEnv()
	if dsnStr == "" {
		return nil, fmt.Errorf("DSN string is empty, check DB_* variables")
	}
	return repository.New(dsnStr)
}

func runSeedAdmin(cmd *cobra.Command, _ []string) error {
	repo, err := openRepository()
	if err != nil {
		return err
	}

	user, created, err := repo.EnsureUser(cmd.Context(), seedEmail, seedName, role.Administrator)
	if err != nil {
		return err
	}
	if !created {
		logrus.Infof("user %s already exists with role %s", user.Email, user.Role)
		return nil
	}
	logrus.Infof("administrator %s created", user.Email)
	return nil
}
