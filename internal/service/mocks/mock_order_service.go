package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orderapi/internal/model"
	"orderapi/internal/service"
)

type MockOrderService struct {
	mock.Mock
}

func (m *MockOrderService) List(ctx context.Context, limit, offset int) (*service.OrderListResult, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.OrderListResult), args.Error(1)
}

func (m *MockOrderService) Export(ctx context.Context, limit, offset int) (*model.OrderList, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderList), args.Error(1)
}

func (m *MockOrderService) Get(ctx context.Context, id string) (*model.OrderRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderRecord), args.Error(1)
}

func (m *MockOrderService) GetByDocument(ctx context.Context, documentID string) (*model.OrderRecord, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderRecord), args.Error(1)
}

func (m *MockOrderService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderService) PreviewHTML(ctx context.Context, id string) ([]byte, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
