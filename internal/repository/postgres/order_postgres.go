package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"orderapi/internal/model"
	"orderapi/internal/repository"
)

// OrderPostgres is a PostgreSQL implementation of repository.OrderRepository.
// The order body is stored in a JSONB payload column.
type OrderPostgres struct {
	db *sql.DB
}

// NewOrderPostgres creates a new OrderPostgres repository.
func NewOrderPostgres(db *sql.DB) *OrderPostgres {
	return &OrderPostgres{db: db}
}

var _ repository.OrderRepository = (*OrderPostgres)(nil)

const orderColumns = `id, document_id, shipment_id, payload, created_at`

func scanOrder(row interface{ Scan(...any) error }) (*model.OrderRecord, error) {
	var rec model.OrderRecord
	var payload []byte
	if err := row.Scan(
		&rec.ID,
		&rec.DocumentID,
		&rec.ShipmentID,
		&payload,
		&rec.CreatedAt,
	); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(payload, &rec.Order); err != nil {
		return nil, fmt.Errorf("decode order payload: %w", err)
	}
	return &rec, nil
}

// Create inserts a new order row and returns the stored record.
func (r *OrderPostgres) Create(ctx context.Context, rec *model.OrderRecord) (*model.OrderRecord, error) {
	payload, err := json.Marshal(rec.Order)
	if err != nil {
		return nil, fmt.Errorf("encode order payload: %w", err)
	}

	const q = `
		INSERT INTO orders (id, document_id, shipment_id, payload, created_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + orderColumns
	row := r.db.QueryRowContext(ctx, q,
		rec.ID,
		rec.DocumentID,
		rec.ShipmentID,
		payload,
		rec.CreatedAt,
	)
	return scanOrder(row)
}

// FindByID fetches a single order by its ID.
func (r *OrderPostgres) FindByID(ctx context.Context, id string) (*model.OrderRecord, error) {
	const q = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE id = $1
	`
	return scanOrder(r.db.QueryRowContext(ctx, q, id))
}

// FindByDocument fetches the order extracted from the given document.
func (r *OrderPostgres) FindByDocument(ctx context.Context, documentID string) (*model.OrderRecord, error) {
	const q = `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE document_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	return scanOrder(r.db.QueryRowContext(ctx, q, documentID))
}

// List returns orders using LIMIT/OFFSET pagination and a total count.
func (r *OrderPostgres) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.OrderRecord], error) {
	const qCount = `SELECT COUNT(*) FROM orders`
	var total int
	if err := r.db.QueryRowContext(ctx, qCount).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + orderColumns + `
		FROM orders
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.QueryContext(ctx, qList, pq.Limit, pq.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.OrderRecord, 0)
	for rows.Next() {
		rec, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.OrderRecord]{
		Items: items,
		Total: total,
	}, nil
}

// Delete removes an order by ID. It does not return an error if the row does not exist.
func (r *OrderPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM orders WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
