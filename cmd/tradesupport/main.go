package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:          "tradesupport",
	Short:        "Trade support requests API: submit, approve and post support requests",
	SilenceUsage: true,
	RunE:         runServe,
}

func init() {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(seedAdminCmd)
	rootCmd.AddCommand(tokenCmd)
}

func main() {
	logrus.Info("App start")
	if err := rootCmd.Execute(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
	logrus.Info("App terminated")
}
