package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"comprobantes/internal/panel"
	"comprobantes/internal/store"
	"comprobantes/internal/views"

	"github.com/xuri/excelize/v2"
)

func seedStore(t *testing.T) *store.Memory {
	t.Helper()
	s, err := store.Load(context.Background(), store.Embedded{})
	if err != nil {
		t.Fatalf("load embedded store: %v", err)
	}
	return s
}

func TestComprobanteService_GetComprobante(t *testing.T) {
	s := seedStore(t)
	svc := NewComprobanteService(s, views.New(), s.Fingerprint())

	detail, err := svc.GetComprobante(3)
	if err != nil {
		t.Fatalf("GetComprobante: %v", err)
	}
	if detail.Row.Index != 3 {
		t.Errorf("row index = %d, want 3", detail.Row.Index)
	}
	if detail.Row.Number != "00001-000009" {
		t.Errorf("number = %q", detail.Row.Number)
	}
	if len(detail.Panel.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(detail.Panel.Sections))
	}
	if detail.Panel.Sections[1].Title != panel.SectionCancellation {
		t.Errorf("second section = %q", detail.Panel.Sections[1].Title)
	}

	if _, err := svc.GetComprobante(99); !errors.Is(err, store.ErrRowNotFound) {
		t.Errorf("GetComprobante(99) error = %v, want ErrRowNotFound", err)
	}
}

func TestComprobanteService_Rows(t *testing.T) {
	s := seedStore(t)
	svc := NewComprobanteService(s, views.New(), s.Fingerprint())

	rows := svc.Rows()
	if len(rows) != s.Len() {
		t.Fatalf("rows = %d, want %d", len(rows), s.Len())
	}
	for i, r := range rows {
		if r.Index != i {
			t.Errorf("rows[%d].Index = %d", i, r.Index)
		}
		if r.Selected {
			t.Errorf("rows[%d] selected", i)
		}
	}
	if rows[0].Amount != "263.442,63" {
		t.Errorf("amount = %q", rows[0].Amount)
	}
}

func TestComprobanteService_PanelFragment(t *testing.T) {
	s := seedStore(t)
	svc := NewComprobanteService(s, views.New(), s.Fingerprint())

	html, err := svc.PanelFragment(context.Background(), 0)
	if err != nil {
		t.Fatalf("PanelFragment: %v", err)
	}
	out := string(html)
	if !strings.Contains(out, "Creación") || !strings.Contains(out, "Miércoles") {
		t.Errorf("fragment missing creation section: %s", out)
	}
	if strings.Contains(out, "Anulación") {
		t.Errorf("fragment has cancellation section for active comprobante")
	}

	if _, err := svc.PanelFragment(context.Background(), -1); !errors.Is(err, store.ErrRowNotFound) {
		t.Errorf("PanelFragment(-1) error = %v", err)
	}
}

func TestExportService_XLSX(t *testing.T) {
	s := seedStore(t)
	svc := NewExportService(s, s.Fingerprint(), "Comprobantes")

	data, err := svc.Export(context.Background(), FormatXLSX)
	if err != nil {
		t.Fatalf("Export xlsx: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatalf("xlsx does not look like a zip archive")
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen xlsx: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(exportSheet)
	if err != nil {
		t.Fatalf("GetRows: %v", err)
	}
	if len(rows) != s.Len()+1 {
		t.Fatalf("rows = %d, want %d", len(rows), s.Len()+1)
	}
	if rows[0][0] != "Suc" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[4][4] != "00001-000009" {
		t.Errorf("row 4 number = %q", rows[4][4])
	}
	if len(rows[4]) < 13 || rows[4][11] != "ggonzalez" {
		t.Errorf("row 4 cancellation = %v", rows[4])
	}
}

func TestExportService_PDF(t *testing.T) {
	s := seedStore(t)
	svc := NewExportService(s, s.Fingerprint(), "Comprobantes")

	data, err := svc.Export(context.Background(), FormatPDF)
	if err != nil {
		t.Fatalf("Export pdf: %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF")) {
		t.Errorf("output is not a PDF")
	}
}

func TestExportService_UnknownFormat(t *testing.T) {
	s := seedStore(t)
	svc := NewExportService(s, s.Fingerprint(), "Comprobantes")

	if _, err := svc.Export(context.Background(), "csv"); err == nil {
		t.Error("expected error for csv")
	}
}

func TestWriteRowReportsErrors(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRow(f, "Sheet1", 1, []interface{}{"a", 2}); err != nil {
		t.Fatalf("writeRow on existing sheet: %v", err)
	}
	if v, _ := f.GetCellValue("Sheet1", "B1"); v != "2" {
		t.Errorf("B1 = %q, want 2", v)
	}

	if err := writeRow(f, "Missing", 1, []interface{}{"a"}); err == nil {
		t.Error("expected error writing to a missing sheet")
	}
	if err := writeRow(f, "Sheet1", 0, []interface{}{"a"}); err == nil {
		t.Error("expected error for row 0")
	}
}
