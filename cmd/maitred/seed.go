package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/maitredhq/maitred/internal/catalog"
	"github.com/maitredhq/maitred/internal/config"
)

func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create and populate the catalog database with demo data",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			path := filepath.Join(cfg.DataDir, "catalog.sqlite")
			cat, err := catalog.Open(path)
			if err != nil {
				return err
			}
			defer cat.Close()
			if err := cat.Seed(cmd.Context()); err != nil {
				return err
			}
			fmt.Printf("Catalog ready at %s\n", path)
			return nil
		},
	}
}
