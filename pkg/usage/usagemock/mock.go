package usagemock

import (
	"context"

	"github.com/raterudder/solarsizer/pkg/types"
	"github.com/raterudder/solarsizer/pkg/usage"
	"github.com/stretchr/testify/mock"
)

type MockReader struct {
	mock.Mock
}

var _ usage.Reader = (*MockReader)(nil)

func (m *MockReader) ReadFile(ctx context.Context, path string) ([]types.Usage, error) {
	args := m.Called(ctx, path)
	if v := args.Get(0); v != nil {
		return v.([]types.Usage), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReader) ReadDir(ctx context.Context, dir string) ([]types.Usage, error) {
	args := m.Called(ctx, dir)
	if v := args.Get(0); v != nil {
		return v.([]types.Usage), args.Error(1)
	}
	return nil, args.Error(1)
}
