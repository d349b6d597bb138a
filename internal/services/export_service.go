package services

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"comprobantes/internal/cache"
	"comprobantes/internal/models"
	"comprobantes/internal/store"
	"comprobantes/internal/timeutil"
	"comprobantes/pkg/utils"

	"github.com/jung-kurt/gofpdf/v2"
	"github.com/xuri/excelize/v2"
)

// Export formats
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

const exportSheet = "Comprobantes"

var exportHeadings = []string{
	"Suc", "CM", "Comprobante", "Referencia", "Número", "Fecha", "Importe",
	"Cliente", "Nombre", "Creado por", "Creado", "Anulado por", "Anulado",
}

// ExportService renders the comprobantes table as downloadable files
type ExportService struct {
	Store       store.Store
	Fingerprint string
	Title       string
}

func NewExportService(s store.Store, fingerprint, title string) *ExportService {
	return &ExportService{Store: s, Fingerprint: fingerprint, Title: title}
}

// Export returns the table in format, using Redis when available
func (s *ExportService) Export(ctx context.Context, format string) ([]byte, error) {
	if data, ok := cache.GetCachedExport(ctx, s.Fingerprint, format); ok {
		return data, nil
	}

	var (
		data []byte
		err  error
	)
	switch format {
	case FormatXLSX:
		data, err = s.XLSX()
	case FormatPDF:
		data, err = s.PDF()
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if err != nil {
		return nil, err
	}

	cache.CacheExport(ctx, s.Fingerprint, format, data)
	return data, nil
}

func stampText(t models.Audit) string {
	st := timeutil.FormatStamp(t.At)
	return st.Date + " " + st.Time
}

// XLSX builds a workbook with one row per comprobante
func (s *ExportService) XLSX() ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	header, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	money, err := f.NewStyle(&excelize.Style{CustomNumFmt: strPtr("#,##0.00")})
	if err != nil {
		return nil, err
	}

	headings := make([]interface{}, len(exportHeadings))
	for i, h := range exportHeadings {
		headings[i] = h
	}
	if err := writeRow(f, exportSheet, 1, headings); err != nil {
		return nil, err
	}
	last, err := excelize.CoordinatesToCellName(len(exportHeadings), 1)
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(exportSheet, "A1", last, header); err != nil {
		return nil, fmt.Errorf("style xlsx header: %w", err)
	}

	for i, c := range s.Store.All() {
		values := []interface{}{
			c.Branch, c.TypeCode, c.TypeLabel, c.Reference, c.Number, c.Date,
			c.Amount.InexactFloat64(), c.CustomerID, c.CustomerName,
			c.Creation.User, stampText(c.Creation), "", "",
		}
		if c.Cancellation != nil {
			values[11] = c.Cancellation.User
			values[12] = stampText(*c.Cancellation)
		}

		rowNo := i + 2
		if err := writeRow(f, exportSheet, rowNo, values); err != nil {
			return nil, err
		}
		amountCell, err := excelize.CoordinatesToCellName(7, rowNo)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(exportSheet, amountCell, amountCell, money); err != nil {
			return nil, fmt.Errorf("style xlsx amount %s: %w", amountCell, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}
	return buf.Bytes(), nil
}

// PDF builds a landscape A4 listing of the comprobantes
func (s *ExportService) PDF() ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(277, 10, tr(s.Title), "", 1, "C", false, 0, "")
	pdf.SetFont("Arial", "", 9)
	pdf.CellFormat(277, 6, tr("Generado: "+timeutil.ToBusiness(time.Now()).Format("02/01/2006 15:04")), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	type column struct {
		title string
		width float64
		align string
	}
	columns := []column{
		{"Suc", 12, "C"}, {"CM", 12, "C"}, {"Comprobante", 32, "L"}, {"Ref.", 14, "C"},
		{"Número", 28, "C"}, {"Fecha", 18, "C"}, {"Importe", 28, "R"}, {"Cliente", 16, "C"},
		{"Nombre", 72, "L"}, {"Estado", 45, "L"},
	}

	pdf.SetFont("Arial", "B", 9)
	pdf.SetFillColor(220, 226, 235)
	for _, col := range columns {
		pdf.CellFormat(col.width, 7, tr(col.title), "1", 0, "C", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, c := range s.Store.All() {
		status := "Activo"
		if c.Cancellation != nil {
			status = fmt.Sprintf("Anulado %s (%s)", timeutil.FormatStamp(c.Cancellation.At).Date, c.Cancellation.User)
			pdf.SetFillColor(255, 220, 220)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		values := []string{
			c.Branch, c.TypeCode, c.TypeLabel, c.Reference, c.Number, c.Date,
			utils.FormatAmount(c.Amount), c.CustomerID, c.CustomerName, status,
		}
		for i, col := range columns {
			pdf.CellFormat(col.width, 6, tr(values[i]), "1", 0, col.align, true, 0, "")
		}
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("write pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// writeRow fills row (1-based) of sheet from column A onwards
func writeRow(f *excelize.File, sheet string, row int, values []interface{}) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("write xlsx cell %s: %w", cell, err)
		}
	}
	return nil
}

func strPtr(s string) *string { return &s }
