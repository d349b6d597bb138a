package models

import (
	"encoding/json"
	"time"

	"comprobantes/internal/timeutil"

	"github.com/shopspring/decimal"
)

// Comprobante represents a billing document (invoice, delivery note, order, receipt)
type Comprobante struct {
	Branch       string          `json:"branch" validate:"required"`
	TypeCode     string          `json:"type_code" validate:"required"`
	TypeLabel    string          `json:"type_label" validate:"required"`
	Reference    string          `json:"reference"`
	Number       string          `json:"number" validate:"required"`
	Date         string          `json:"date" validate:"required"`
	Amount       decimal.Decimal `json:"amount"`
	CustomerID   string          `json:"customer_id" validate:"required"`
	CustomerName string          `json:"customer_name" validate:"required"`
	Creation     Audit           `json:"creation"`
	Cancellation *Audit          `json:"cancellation,omitempty"`
}

// Audit records who performed an action on a comprobante and when
type Audit struct {
	User string    `json:"user" validate:"required"`
	At   time.Time `json:"at"`
}

// Voided reports whether the comprobante was cancelled
func (c Comprobante) Voided() bool {
	return c.Cancellation != nil
}

type auditJSON struct {
	User string `json:"user"`
	At   string `json:"at"`
}

// UnmarshalJSON accepts zone-less stamps ("2022-10-12T10:15:00") and reads
// them in the business location.
func (a *Audit) UnmarshalJSON(data []byte) error {
	var raw auditJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.User = raw.User
	a.At = time.Time{}
	if raw.At == "" {
		return nil
	}
	at, err := timeutil.ParseStamp(raw.At)
	if err != nil {
		return err
	}
	a.At = at
	return nil
}

// MarshalJSON writes At in the same zone-less layout UnmarshalJSON reads.
func (a Audit) MarshalJSON() ([]byte, error) {
	raw := auditJSON{User: a.User}
	if !a.At.IsZero() {
		raw.At = timeutil.ToBusiness(a.At).Format(timeutil.StampLayout)
	}
	return json.Marshal(raw)
}
