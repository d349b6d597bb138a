package store

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"comprobantes/internal/models"
)

//go:embed seed/comprobantes.json
var seedJSON []byte

// Source yields comprobantes from wherever they are kept.
type Source interface {
	List(ctx context.Context) ([]models.Comprobante, error)
}

// Load reads src once and builds a validated Memory store from it.
func Load(ctx context.Context, src Source) (*Memory, error) {
	records, err := src.List(ctx)
	if err != nil {
		return nil, err
	}
	return NewMemory(records)
}

// Decode reads a JSON array of comprobantes.
func Decode(r io.Reader) ([]models.Comprobante, error) {
	var records []models.Comprobante
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode comprobantes: %w", err)
	}
	return records, nil
}

// Embedded is the sample data compiled into the binary.
type Embedded struct{}

func (Embedded) List(ctx context.Context) ([]models.Comprobante, error) {
	var records []models.Comprobante
	if err := json.Unmarshal(seedJSON, &records); err != nil {
		return nil, fmt.Errorf("decode embedded comprobantes: %w", err)
	}
	return records, nil
}

// File reads a JSON array of comprobantes from disk.
type File struct {
	Path string
}

func (f File) List(ctx context.Context) ([]models.Comprobante, error) {
	fh, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("open comprobantes file: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}
