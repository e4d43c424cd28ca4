package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"orderapi/internal/convert"
)

type MockConversionCache struct {
	mock.Mock
}

func (m *MockConversionCache) Get(ctx context.Context, contentHash string) (*convert.Result, error) {
	args := m.Called(ctx, contentHash)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*convert.Result), args.Error(1)
}

func (m *MockConversionCache) Set(ctx context.Context, contentHash string, res *convert.Result) error {
	args := m.Called(ctx, contentHash, res)
	return args.Error(0)
}
