package main

import (
	"fmt"
	"os"

	"comprobantes/internal/logger"

	"github.com/spf13/cobra"
)

var version = "1.0.0"

var configPath string

var rootCmd = &cobra.Command{
	Use:   "comprobantes",
	Short: "Comprobantes viewer - billing documents table with a contextual panel",
	Long: `Comprobantes serves a read-only table of billing documents. Right-clicking
a row opens a panel with who created the document and, for voided documents,
who cancelled it and when.

Documents are loaded once at startup from the configured source (embedded
sample data, a JSON file, PostgreSQL or an S3 bucket) and never modified.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log := logger.WithComponent("cmd")
		log.Error().Err(err).Msg("Command execution failed")
		fmt.Fprintf(os.Stderr, "Error executing command: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (default configs/config.yaml)")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(exportCmd)
}
