package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/procurehub/procurement-gateway/internal/domain"
	"github.com/procurehub/procurement-gateway/internal/repository/builder"
)

type orderRepository struct {
	db *sql.DB
}

// NewOrderRepository creates a new instance of OrderReader
func NewOrderRepository(db *sql.DB) domain.OrderReader {
	return &orderRepository{db: db}
}

func (r *orderRepository) GetOrder(ctx context.Context, id int64) (*domain.Order, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("id", "order_number", "order_date", "expected_delivery", "notes", "priority", "status", "supplier_id").
		From("orders").
		Where("id = ?", id).
		Build()

	row := r.db.QueryRowContext(ctx, query, args...)
	var o domain.Order
	if err := row.Scan(&o.ID, &o.OrderNumber, &o.OrderDate, &o.ExpectedDelivery, &o.Notes, &o.Priority, &o.Status, &o.SupplierID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("order %d: %w", id, domain.ErrOrderNotFound)
		}
		return nil, fmt.Errorf("fetching order %d: %w", id, err)
	}
	return &o, nil
}

func (r *orderRepository) GetSupplier(ctx context.Context, id int64) (*domain.Supplier, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("id", "name", "contact_person", "email", "phone", "address", "payment_terms", "logo_ref", "template_type", "template_config").
		From("suppliers").
		Where("id = ?", id).
		Build()

	row := r.db.QueryRowContext(ctx, query, args...)
	var s domain.Supplier
	if err := row.Scan(&s.ID, &s.Name, &s.ContactPerson, &s.Email, &s.Phone, &s.Address, &s.PaymentTerms, &s.LogoRef, &s.TemplateType, &s.TemplateConfig); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("supplier %d: %w", id, domain.ErrNoSupplier)
		}
		return nil, fmt.Errorf("fetching supplier %d: %w", id, err)
	}
	return &s, nil
}

func (r *orderRepository) GetOrderParts(ctx context.Context, orderID int64) ([]domain.Part, error) {
	b := builder.NewSQLBuilder()
	query, args := b.Select("part_number", "name", "description", "specifications", "quantity", "unit_price").
		From("order_parts").
		Where("order_id = ?", orderID).
		OrderBy("position ASC").
		Build()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetching parts of order %d: %w", orderID, err)
	}
	defer rows.Close()

	var parts []domain.Part
	for rows.Next() {
		var p domain.Part
		var rawSpecs []byte
		if err := rows.Scan(&p.PartNumber, &p.Name, &p.Description, &rawSpecs, &p.Quantity, &p.UnitPrice); err != nil {
			return nil, fmt.Errorf("scanning part of order %d: %w", orderID, err)
		}
		if len(rawSpecs) > 0 {
			// specifications is a jsonb column; an unreadable value is
			// rendered as an empty mapping rather than failing the export
			if err := json.Unmarshal(rawSpecs, &p.Specifications); err != nil {
				p.Specifications = nil
			}
		}
		parts = append(parts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parts of order %d: %w", orderID, err)
	}
	return parts, nil
}
