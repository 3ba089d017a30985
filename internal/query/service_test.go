package query

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	coreerrors "github.com/salesboard-lab/salesboard/internal/core/errors"
	"github.com/salesboard-lab/salesboard/internal/core/sales"
)

type slowStore struct{}

func (s *slowStore) Load(ctx context.Context) ([]sales.Record, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", coreerrors.ErrDataUnavailable, ctx.Err())
	case <-time.After(time.Second):
		return nil, nil
	}
}

func TestService_LoadTimeoutSurfacesAsDataUnavailable(t *testing.T) {
	svc := NewService(&slowStore{}, 10*time.Millisecond)

	_, err := svc.Records(context.Background(), sales.Criteria{})
	require.ErrorIs(t, err, coreerrors.ErrDataUnavailable)
}

func TestService_NeverReturnsPartialResults(t *testing.T) {
	svc := NewService(&stubStore{err: fmt.Errorf("%w: disk gone", coreerrors.ErrDataUnavailable)}, 0)

	records, err := svc.Records(context.Background(), sales.Criteria{})
	require.Error(t, err)
	require.Nil(t, records)

	result, err := svc.Analytics(context.Background(), sales.Criteria{}, sales.ModeOverview)
	require.Error(t, err)
	require.Nil(t, result)
}

func TestService_AnalyticsDispatch(t *testing.T) {
	store := &stubStore{records: fixtureRecords()}
	svc := NewService(store, 0)

	for _, mode := range []sales.Mode{
		sales.ModeOverview, sales.ModeRevenueTrend, sales.ModeRegionSales,
		sales.ModeProductPerformance, sales.ModeSalesRepPerformance,
		sales.ModeCategoryAnalysis, sales.ModeCustomerType, sales.ModeMonthlyGrowth,
	} {
		result, err := svc.Analytics(context.Background(), sales.Criteria{}, mode)
		require.NoError(t, err, "mode %s", mode)
		require.NotNil(t, result, "mode %s", mode)
	}
}
