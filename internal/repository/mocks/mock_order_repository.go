package mocks

import (
	"context"

	"orderapi/internal/model"
	"orderapi/internal/repository"

	"github.com/stretchr/testify/mock"
)

type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Create(ctx context.Context, rec *model.OrderRecord) (*model.OrderRecord, error) {
	args := m.Called(ctx, rec)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	if f, ok := args.Get(0).(func(context.Context, *model.OrderRecord) *model.OrderRecord); ok {
		return f(ctx, rec), args.Error(1)
	}
	return args.Get(0).(*model.OrderRecord), args.Error(1)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id string) (*model.OrderRecord, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderRecord), args.Error(1)
}

func (m *MockOrderRepository) FindByDocument(ctx context.Context, documentID string) (*model.OrderRecord, error) {
	args := m.Called(ctx, documentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.OrderRecord), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, pq repository.PageQuery) (*repository.PageResult[model.OrderRecord], error) {
	args := m.Called(ctx, pq)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.OrderRecord]), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
