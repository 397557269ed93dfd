package main

import (
	"medistock/internal/config"
	"medistock/internal/router"
	"medistock/internal/seed"

	"github.com/spf13/cobra"
)

var seedFile string

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Carga médicos, productos, ciclos y visitas desde un YAML",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		fx, err := seed.LoadFile(seedFile)
		if err != nil {
			return err
		}

		backend, closeBackend, err := openBackend(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeBackend()

		svcs := router.NewServices(backend, log, nil)
		res, err := seed.Apply(cmd.Context(), fx, svcs.Doctors, svcs.Products, svcs.Ledger)
		if err != nil {
			return err
		}
		log.Info("seed applied", map[string]any{
			"file":     seedFile,
			"doctors":  res.Doctors,
			"products": res.Products,
			"cycles":   res.Cycles,
			"visits":   res.Visits,
		})
		return nil
	},
}
