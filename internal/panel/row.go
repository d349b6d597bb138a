package panel

import (
	"comprobantes/internal/models"
	"comprobantes/pkg/utils"
)

// Row is the display form of one comprobante in the table.
type Row struct {
	Index        int    `json:"index"`
	Branch       string `json:"branch"`
	TypeCode     string `json:"type_code"`
	TypeLabel    string `json:"type_label"`
	Reference    string `json:"reference"`
	Number       string `json:"number"`
	Date         string `json:"date"`
	Amount       string `json:"amount"`
	CustomerID   string `json:"customer_id"`
	CustomerName string `json:"customer_name"`
	Voided       bool   `json:"voided"`
	Selected     bool   `json:"selected"`
}

// BuildRows maps comprobantes to rows, preserving order.
func BuildRows(records []models.Comprobante) []Row {
	rows := make([]Row, len(records))
	for i, c := range records {
		rows[i] = Row{
			Index:        i,
			Branch:       c.Branch,
			TypeCode:     c.TypeCode,
			TypeLabel:    c.TypeLabel,
			Reference:    c.Reference,
			Number:       c.Number,
			Date:         c.Date,
			Amount:       utils.FormatAmount(c.Amount),
			CustomerID:   c.CustomerID,
			CustomerName: c.CustomerName,
			Voided:       c.Voided(),
		}
	}
	return rows
}
