// Package store holds the read-only, ordered set of comprobantes shown by the
// viewer. Records are validated once when the store is built and never change
// afterwards.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"

	"comprobantes/internal/models"

	"github.com/go-playground/validator/v10"
)

// ErrRowNotFound is returned for an index outside the store.
var ErrRowNotFound = errors.New("comprobante not found")

// Store is an ordered, read-only sequence of comprobantes.
type Store interface {
	All() []models.Comprobante
	Get(index int) (models.Comprobante, error)
	Len() int
}

// Memory is the in-process Store implementation.
type Memory struct {
	records     []models.Comprobante
	fingerprint string
}

var validate = validator.New()

// NewMemory validates records and freezes a private copy of them.
func NewMemory(records []models.Comprobante) (*Memory, error) {
	if err := Validate(records); err != nil {
		return nil, err
	}

	frozen := make([]models.Comprobante, len(records))
	for i, c := range records {
		frozen[i] = clone(c)
	}

	sum, err := json.Marshal(frozen)
	if err != nil {
		return nil, fmt.Errorf("fingerprint comprobantes: %w", err)
	}
	h := sha256.Sum256(sum)

	return &Memory{
		records:     frozen,
		fingerprint: hex.EncodeToString(h[:])[:16],
	}, nil
}

// All returns a copy of every comprobante in load order.
func (m *Memory) All() []models.Comprobante {
	out := make([]models.Comprobante, len(m.records))
	for i, c := range m.records {
		out[i] = clone(c)
	}
	return out
}

// Get returns the comprobante at index.
func (m *Memory) Get(index int) (models.Comprobante, error) {
	if index < 0 || index >= len(m.records) {
		return models.Comprobante{}, fmt.Errorf("%w: index %d", ErrRowNotFound, index)
	}
	return clone(m.records[index]), nil
}

// Len returns the number of comprobantes.
func (m *Memory) Len() int {
	return len(m.records)
}

// Fingerprint identifies the store contents; used to namespace cache keys.
func (m *Memory) Fingerprint() string {
	return m.fingerprint
}

// Validate checks the required fields of every record and that a
// cancellation, when present, carries both user and timestamp.
func Validate(records []models.Comprobante) error {
	for i, c := range records {
		if err := validate.Struct(c); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) && len(verrs) > 0 {
				fe := verrs[0]
				return models.NewValidationError(i, fe.Namespace(), fe.Value(), "failed on '"+fe.Tag()+"'")
			}
			return err
		}
		if c.Creation.At.IsZero() {
			return models.NewValidationError(i, "Comprobante.Creation.At", nil, "failed on 'required'")
		}
		if c.Cancellation != nil && c.Cancellation.At.IsZero() {
			return models.NewValidationError(i, "Comprobante.Cancellation.At", nil, "cancellation user without timestamp")
		}
	}
	return nil
}

func clone(c models.Comprobante) models.Comprobante {
	if c.Cancellation != nil {
		cancellation := *c.Cancellation
		c.Cancellation = &cancellation
	}
	return c
}
