package stats_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"roastery/stats"
)

// MockSource is a mock implementation of stats.Source
type MockSource struct {
	mock.Mock
}

func (m *MockSource) CountProducts(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSource) CountOrders(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockSource) SumOrderTotals(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockSource) CountDistinctCustomers(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestReportAggregatesAllFour(t *testing.T) {
	src := new(MockSource)
	// Orders with totals 10, 20, 30 from two distinct customers.
	src.On("CountProducts", mock.Anything).Return(int64(5), nil)
	src.On("CountOrders", mock.Anything).Return(int64(3), nil)
	src.On("SumOrderTotals", mock.Anything).Return(60.0, nil)
	src.On("CountDistinctCustomers", mock.Anything).Return(int64(2), nil)

	summary, err := stats.Report(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, int64(5), summary.TotalProducts)
	assert.Equal(t, int64(3), summary.TotalOrders)
	assert.Equal(t, 60.0, summary.TotalRevenue)
	assert.Equal(t, int64(2), summary.TotalUsers)
	src.AssertExpectations(t)
}

func TestReportZeroOrders(t *testing.T) {
	src := new(MockSource)
	src.On("CountProducts", mock.Anything).Return(int64(5), nil)
	src.On("CountOrders", mock.Anything).Return(int64(0), nil)
	src.On("SumOrderTotals", mock.Anything).Return(0.0, nil)
	src.On("CountDistinctCustomers", mock.Anything).Return(int64(0), nil)

	summary, err := stats.Report(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, 0.0, summary.TotalRevenue, "revenue defaults to zero, never null")
	assert.Equal(t, int64(0), summary.TotalUsers)
}

func TestReportAnyFailureAbortsTheWhole(t *testing.T) {
	src := new(MockSource)
	queryErr := errors.New("store unavailable")
	src.On("CountProducts", mock.Anything).Return(int64(5), nil).Maybe()
	src.On("CountOrders", mock.Anything).Return(int64(0), queryErr)
	src.On("SumOrderTotals", mock.Anything).Return(0.0, nil).Maybe()
	src.On("CountDistinctCustomers", mock.Anything).Return(int64(0), nil).Maybe()

	summary, err := stats.Report(context.Background(), src)
	assert.ErrorIs(t, err, queryErr)
	assert.Nil(t, summary, "partial results are not returned")
}
