package repository

import (
	"context"

	"orderapi/internal/model"
)

// OrderRepository defines data access for extracted orders. The order body is
// stored as a JSONB payload; the implementations own the (un)marshalling.
type OrderRepository interface {
	// Create inserts a new order record and returns the stored record.
	Create(ctx context.Context, rec *model.OrderRecord) (*model.OrderRecord, error)

	// FindByID returns an order by its ID.
	FindByID(ctx context.Context, id string) (*model.OrderRecord, error)

	// FindByDocument returns the order extracted from the given document.
	FindByDocument(ctx context.Context, documentID string) (*model.OrderRecord, error)

	// List returns a paginated list of orders and a total count.
	List(ctx context.Context, pq PageQuery) (*PageResult[model.OrderRecord], error)

	// Delete removes an order by ID. It returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
