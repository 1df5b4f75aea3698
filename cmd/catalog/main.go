// Command catalog runs the catalog API and its maintenance tasks.
//
//	catalog serve                          # start the HTTP server
//	catalog seed --products 50             # fill the store with fake data
//	catalog route:list                     # print the API routes
//	catalog token --subject ops --ttl 24h  # mint a bearer token for writes
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/pkg/logger"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "catalog",
	Short:         "Catalog service: categories, products, orders and sales dashboard",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(routeListCmd)
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(tokenCmd)
}

// boot loads configuration and installs the process logger.
func boot() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	log := logger.New(cfg.AppEnv)
	slog.SetDefault(log)
	return cfg, log, nil
}
