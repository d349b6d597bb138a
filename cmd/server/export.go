package main

import (
	"context"
	"fmt"
	"os"

	"comprobantes/internal/logger"
	"comprobantes/internal/services"

	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOut    string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the comprobantes table as XLSX or PDF",
	Example: `  # Spreadsheet of the configured source
  comprobantes export --format xlsx --out comprobantes.xlsx

  # PDF listing
  comprobantes export -f pdf -o comprobantes.pdf`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", services.FormatXLSX, "output format: xlsx or pdf")
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file (default comprobantes.<format>)")
}

func runExport(cmd *cobra.Command, args []string) error {
	if exportFormat != services.FormatXLSX && exportFormat != services.FormatPDF {
		return fmt.Errorf("unsupported format %q, use xlsx or pdf", exportFormat)
	}
	if exportOut == "" {
		exportOut = "comprobantes." + exportFormat
	}

	ctx := context.Background()
	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	svc := services.NewExportService(a.store, a.store.Fingerprint(), a.cfg.UI.Title)
	data, err := svc.Export(ctx, exportFormat)
	if err != nil {
		return err
	}
	if err := os.WriteFile(exportOut, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", exportOut, err)
	}

	log := logger.WithComponent("export")
	log.Info().
		Str("format", exportFormat).
		Str("file", exportOut).
		Int("bytes", len(data)).
		Msg("Export written")
	return nil
}
