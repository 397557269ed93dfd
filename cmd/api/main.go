package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title MediStock API
// @version 1.0
// @description Stock de muestras médicas por ciclo, médicos, productos y visitas.
// @BasePath /
// @securityDefinitions.basic BasicAuth
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "api",
	Short:         "MediStock: stock de muestras médicas por ciclo",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
	serveCmd.Flags().BoolVar(&devAuth, "dev-auth", false, "acepta X-Debug-User-ID/X-Debug-Role en lugar de Basic auth")
	rootCmd.Flags().AddFlagSet(serveCmd.Flags())
	seedCmd.Flags().StringVar(&seedFile, "file", "fixtures.yaml", "archivo YAML con los datos")
}
