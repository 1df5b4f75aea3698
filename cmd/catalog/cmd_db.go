package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/catalog/config"
	"github.com/shashiranjanraj/catalog/database/seeders"
	"github.com/shashiranjanraj/catalog/internal/server"
	"github.com/shashiranjanraj/catalog/pkg/auth"
)

var (
	seedCounts = seeders.DefaultCounts
	seedValue  uint64
)

// catalog seed
var seedCmd = &cobra.Command{
	Use:     "seed",
	Aliases: []string{"populate-db"},
	Short:   "Fill the store with fake categories, products and orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, log, err := boot()
		if err != nil {
			return err
		}
		if cfg.DBDriver == config.DriverMemory {
			return fmt.Errorf("seed: DB_DRIVER=%s keeps nothing after exit", cfg.DBDriver)
		}

		app, err := server.Build(cmd.Context(), cfg, log)
		if err != nil {
			return err
		}
		defer app.Close(context.Background()) //nolint:errcheck

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Running seeders…")
		res, err := seeders.New(app.Services, seedValue, out).Run(cmd.Context(), seedCounts)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Database populated: %d categories, %d products, %d orders\n",
			len(res.Categories), len(res.Products), len(res.Orders))
		return nil
	},
}

var (
	tokenSubject string
	tokenRole    string
	tokenTTL     time.Duration
)

// catalog token
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue a bearer token for the write routes",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		v := auth.NewVerifier(cfg.JWTSecret)
		if v == nil {
			return fmt.Errorf("token: JWT_SECRET is not set, write routes are open")
		}

		t, err := v.Issue(tokenSubject, tokenRole, tokenTTL)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	},
}

func init() {
	seedCmd.Flags().IntVar(&seedCounts.Categories, "categories", seedCounts.Categories, "number of categories")
	seedCmd.Flags().IntVar(&seedCounts.Products, "products", seedCounts.Products, "number of products")
	seedCmd.Flags().IntVar(&seedCounts.Orders, "orders", seedCounts.Orders, "number of orders")
	seedCmd.Flags().Uint64Var(&seedValue, "seed", 0, "random seed (0 picks one)")

	tokenCmd.Flags().StringVar(&tokenSubject, "subject", "admin", "token subject")
	tokenCmd.Flags().StringVar(&tokenRole, "role", "admin", "role claim")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
}
