package service

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"orderapi/internal/model"
	"orderapi/internal/repository"
)

// ErrOrderNotFound is returned when no order matches the given ID.
var ErrOrderNotFound = errors.New("order not found")

// OrderListResult is the service-level DTO for paginated orders.
type OrderListResult struct {
	Items []model.OrderRecord `json:"data"`
	Total int                 `json:"total"`
}

// OrderService defines the read/delete use cases for extracted orders.
// Orders are created by IngestService only.
type OrderService interface {
	// List returns orders using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*OrderListResult, error)

	// Export returns the bare order payloads for the given page, without
	// record identifiers, the shape consumed by downstream systems.
	Export(ctx context.Context, limit, offset int) (*model.OrderList, error)

	// Get returns a single order by its ID.
	Get(ctx context.Context, id string) (*model.OrderRecord, error)

	// GetByDocument returns the order extracted from the given document.
	GetByDocument(ctx context.Context, documentID string) (*model.OrderRecord, error)

	// Delete removes an order by ID. The source document is untouched.
	Delete(ctx context.Context, id string) error

	// PreviewHTML renders the order's source document markdown as HTML.
	PreviewHTML(ctx context.Context, id string) ([]byte, error)
}

// markdownRenderer produces the HTML document preview. GFM keeps the pipe
// tables of converted order sheets intact.
var markdownRenderer = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// orderService is the concrete implementation of OrderService.
type orderService struct {
	orders repository.OrderRepository
	ingest IngestService
}

// NewOrderService constructs a new OrderService. The ingest service supplies
// the markdown rendering of source documents for previews.
func NewOrderService(orders repository.OrderRepository, ingest IngestService) OrderService {
	return &orderService{orders: orders, ingest: ingest}
}

// List returns paginated orders without exposing repository types.
func (s *orderService) List(ctx context.Context, limit, offset int) (*OrderListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	res, err := s.orders.List(ctx, repository.PageQuery{Limit: limit, Offset: offset})
	if err != nil {
		return nil, err
	}
	return &OrderListResult{Items: res.Items, Total: res.Total}, nil
}

// Export strips record identifiers from a page of orders.
func (s *orderService) Export(ctx context.Context, limit, offset int) (*model.OrderList, error) {
	res, err := s.List(ctx, limit, offset)
	if err != nil {
		return nil, err
	}

	list := &model.OrderList{Orders: make([]model.Order, 0, len(res.Items))}
	for _, rec := range res.Items {
		list.Orders = append(list.Orders, rec.Order)
	}
	return list, nil
}

// Get returns an order by ID.
func (s *orderService) Get(ctx context.Context, id string) (*model.OrderRecord, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.orders.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return rec, nil
}

// GetByDocument returns the order extracted from the given document.
func (s *orderService) GetByDocument(ctx context.Context, documentID string) (*model.OrderRecord, error) {
	if documentID == "" {
		return nil, ErrIDRequired
	}
	rec, err := s.orders.FindByDocument(ctx, documentID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return rec, nil
}

// Delete removes an order record by ID.
func (s *orderService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	return s.orders.Delete(ctx, id)
}

// PreviewHTML renders the markdown of the order's source document.
func (s *orderService) PreviewHTML(ctx context.Context, id string) ([]byte, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	md, err := s.ingest.Markdown(ctx, rec.DocumentID)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := markdownRenderer.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("render preview: %w", err)
	}
	return buf.Bytes(), nil
}
