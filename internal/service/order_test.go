package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"orderapi/internal/model"
	"orderapi/internal/repository"
	repoMocks "orderapi/internal/repository/mocks"
)

// markdownStub satisfies the one IngestService method PreviewHTML needs.
type markdownStub struct {
	IngestService
	md  string
	err error
}

func (s *markdownStub) Markdown(ctx context.Context, id string) (string, error) {
	return s.md, s.err
}

func TestOrderService_List(t *testing.T) {
	ctx := context.Background()
	mOrders := new(repoMocks.MockOrderRepository)
	svc := NewOrderService(mOrders, nil)

	mOrders.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.OrderRecord]{
			Items: []model.OrderRecord{{ID: "ord-1", ShipmentID: "EXP-2024-0042"}},
			Total: 1,
		}, nil)

	res, err := svc.List(ctx, 0, -3)

	require.NoError(t, err)
	assert.Equal(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "EXP-2024-0042", res.Items[0].ShipmentID)
	mOrders.AssertExpectations(t)
}

func TestOrderService_Export(t *testing.T) {
	ctx := context.Background()
	mOrders := new(repoMocks.MockOrderRepository)
	svc := NewOrderService(mOrders, nil)

	rec := model.OrderRecord{
		ID:         "ord-1",
		DocumentID: "doc-1",
		ShipmentID: "EXP-2024-0042",
		Order: model.Order{
			Header: model.Header{ShipmentID: "EXP-2024-0042", NumberOfStops: 2, NumberOfVehicles: 1},
		},
	}
	mOrders.On("List", ctx, repository.PageQuery{Limit: 10, Offset: 0}).
		Return(&repository.PageResult[model.OrderRecord]{Items: []model.OrderRecord{rec}, Total: 1}, nil)

	list, err := svc.Export(ctx, 10, 0)

	require.NoError(t, err)
	require.Len(t, list.Orders, 1)
	assert.Equal(t, "EXP-2024-0042", list.Orders[0].Header.ShipmentID)
	mOrders.AssertExpectations(t)
}

func TestOrderService_Get(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		id         string
		setupMocks func(m *repoMocks.MockOrderRepository)
		wantErr    error
	}{
		{
			name: "found",
			id:   "ord-1",
			setupMocks: func(m *repoMocks.MockOrderRepository) {
				m.On("FindByID", ctx, "ord-1").Return(&model.OrderRecord{ID: "ord-1"}, nil)
			},
		},
		{
			name: "not found",
			id:   "missing",
			setupMocks: func(m *repoMocks.MockOrderRepository) {
				m.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)
			},
			wantErr: ErrOrderNotFound,
		},
		{
			name:       "empty id",
			id:         "",
			setupMocks: func(m *repoMocks.MockOrderRepository) {},
			wantErr:    ErrIDRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mOrders := new(repoMocks.MockOrderRepository)
			tt.setupMocks(mOrders)
			svc := NewOrderService(mOrders, nil)

			rec, err := svc.Get(ctx, tt.id)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.id, rec.ID)
		})
	}
}

func TestOrderService_GetByDocument(t *testing.T) {
	ctx := context.Background()
	mOrders := new(repoMocks.MockOrderRepository)
	svc := NewOrderService(mOrders, nil)

	mOrders.On("FindByDocument", ctx, "doc-1").
		Return(&model.OrderRecord{ID: "ord-1", DocumentID: "doc-1"}, nil)

	rec, err := svc.GetByDocument(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", rec.DocumentID)
}

func TestOrderService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mOrders := new(repoMocks.MockOrderRepository)
		svc := NewOrderService(mOrders, nil)

		mOrders.On("FindByID", ctx, "ord-1").Return(&model.OrderRecord{ID: "ord-1"}, nil)
		mOrders.On("Delete", ctx, "ord-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "ord-1"))
		mOrders.AssertExpectations(t)
	})

	t.Run("missing order", func(t *testing.T) {
		mOrders := new(repoMocks.MockOrderRepository)
		svc := NewOrderService(mOrders, nil)

		mOrders.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrOrderNotFound)
		mOrders.AssertNotCalled(t, "Delete", ctx, "missing")
	})
}

func TestOrderService_PreviewHTML(t *testing.T) {
	ctx := context.Background()

	t.Run("renders GFM tables", func(t *testing.T) {
		mOrders := new(repoMocks.MockOrderRepository)
		mOrders.On("FindByID", ctx, "ord-1").
			Return(&model.OrderRecord{ID: "ord-1", DocumentID: "doc-1"}, nil)

		md := "# Orden de Transporte\n\n| Matrícula / Bastidor: | 1234ABC |\n| --- | --- |\n| Marca: | SEAT |\n"
		svc := NewOrderService(mOrders, &markdownStub{md: md})

		html, err := svc.PreviewHTML(ctx, "ord-1")

		require.NoError(t, err)
		assert.Contains(t, string(html), "<h1")
		assert.Contains(t, string(html), "<table>")
		assert.Contains(t, string(html), "1234ABC")
	})

	t.Run("markdown failure propagates", func(t *testing.T) {
		mOrders := new(repoMocks.MockOrderRepository)
		mOrders.On("FindByID", ctx, mock.Anything).
			Return(&model.OrderRecord{ID: "ord-1", DocumentID: "doc-1"}, nil)

		svc := NewOrderService(mOrders, &markdownStub{err: errors.New("storage down")})

		_, err := svc.PreviewHTML(ctx, "ord-1")
		assert.ErrorContains(t, err, "storage down")
	})
}
