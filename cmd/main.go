package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "salon-booking-service",
		Short: "Salon booking and slot availability API",
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to config.toml")

	rootCmd.AddCommand(serveCmd(&configPath))
	rootCmd.AddCommand(provisionCmd(&configPath))

	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
