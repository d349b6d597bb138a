package repositories

import (
	"context"
	"fmt"
	"time"

	"comprobantes/internal/models"
	"comprobantes/internal/timeutil"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type ComprobanteRepository struct {
	DB *pgxpool.Pool
}

func NewComprobanteRepository(db *pgxpool.Pool) *ComprobanteRepository {
	return &ComprobanteRepository{DB: db}
}

const listComprobantesSQL = `
	SELECT branch, type_code, type_label, reference, number, date_label, amount::text,
	       customer_id, customer_name, created_by, created_at, voided_by, voided_at
	FROM comprobantes
	ORDER BY position`

// List returns every comprobante in display order
func (r *ComprobanteRepository) List(ctx context.Context) ([]models.Comprobante, error) {
	rows, err := r.DB.Query(ctx, listComprobantesSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query comprobantes: %w", err)
	}
	defer rows.Close()

	var comprobantes []models.Comprobante
	for rows.Next() {
		c, err := scanComprobante(rows, len(comprobantes))
		if err != nil {
			return nil, err
		}
		comprobantes = append(comprobantes, c)
	}

	return comprobantes, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanComprobante(row rowScanner, index int) (models.Comprobante, error) {
	var (
		c         models.Comprobante
		amount    string
		createdAt time.Time
		voidedBy  *string
		voidedAt  *time.Time
	)
	err := row.Scan(&c.Branch, &c.TypeCode, &c.TypeLabel, &c.Reference, &c.Number, &c.Date, &amount,
		&c.CustomerID, &c.CustomerName, &c.Creation.User, &createdAt, &voidedBy, &voidedAt)
	if err != nil {
		return c, fmt.Errorf("failed to scan comprobante %d: %w", index, err)
	}

	c.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return c, models.NewValidationError(index, "amount", amount, "not a decimal")
	}
	c.Creation.At = timeutil.AsBusiness(createdAt)

	switch {
	case voidedBy == nil && voidedAt == nil:
	case voidedBy != nil && voidedAt != nil:
		c.Cancellation = &models.Audit{User: *voidedBy, At: timeutil.AsBusiness(*voidedAt)}
	default:
		return c, models.NewValidationError(index, "voided_by/voided_at", nil, "must be both set or both null")
	}

	return c, nil
}
