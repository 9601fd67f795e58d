package aggregating

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/accountmapping"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/aggregating/mocks"
)

const testTenantID = "7d52dc8e-91f0-4bc1-8b7e-2d3f55aa0c11"

var testReference = time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)

// stubResolver devolve sempre o mesmo tenant, como um portal saudável faria
type stubResolver struct {
	tenantID string
}

func (r *stubResolver) Resolve(string) string {
	return r.tenantID
}

func newService(t *testing.T, adapter ProviderAdapter) *Service {
	t.Helper()

	service := NewService(&stubResolver{tenantID: testTenantID}, accountmapping.NewService(), adapter)
	service.now = func() time.Time { return testReference }
	return service
}

func newAdapterMock(t *testing.T, provider domain.Provider) *mocks.MockProviderAdapter {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	adapter := mocks.NewMockProviderAdapter(ctrl)
	adapter.EXPECT().Provider().Return(provider).AnyTimes()
	return adapter
}

func TestPanelMetrics_ResolvesTenantRangeAndAccount(t *testing.T) {
	adapter := newAdapterMock(t, domain.ProviderWebAnalytics)

	var gotCfg domain.AccountConfig
	var gotRange domain.ResolvedRange
	adapter.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg domain.AccountConfig, rng domain.ResolvedRange) (*domain.PanelResult, error) {
			gotCfg = cfg
			gotRange = rng
			record := domain.NewNormalizedMetrics(cfg.TenantID, cfg.AccountID, cfg.DisplayName, rng)
			record.Metrics["activeUsers"] = int64(120)
			return &domain.PanelResult{
				Provider: domain.ProviderWebAnalytics,
				TenantID: cfg.TenantID,
				Metrics:  record,
			}, nil
		})

	service := newService(t, adapter)

	rng := domain.DateRange{Start: "7daysAgo", End: "today"}
	result, err := service.PanelMetrics(context.Background(), "tok-abc", domain.ProviderWebAnalytics, rng)
	require.NoError(t, err)

	assert.Equal(t, domain.ResolvedRange{Start: "2024-03-08", End: "2024-03-15"}, gotRange)
	assert.Equal(t, testTenantID, gotCfg.TenantID)
	assert.Equal(t, "401238859", gotCfg.AccountID)

	require.NotNil(t, result.Metrics)
	assert.Equal(t, int64(120), result.Metrics.Metrics["activeUsers"])
	assert.Equal(t, gotRange, result.Metrics.DateRange)
}

func TestPanelMetrics_DefaultsRangeWhenAbsent(t *testing.T) {
	adapter := newAdapterMock(t, domain.ProviderSocial)

	var gotRange domain.ResolvedRange
	adapter.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg domain.AccountConfig, rng domain.ResolvedRange) (*domain.PanelResult, error) {
			gotRange = rng
			return &domain.PanelResult{Provider: domain.ProviderSocial, TenantID: cfg.TenantID}, nil
		})

	service := newService(t, adapter)

	_, err := service.PanelMetrics(context.Background(), "tok-abc", domain.ProviderSocial, domain.DateRange{})
	require.NoError(t, err)

	assert.Equal(t, domain.ResolvedRange{Start: "2024-03-08", End: "2024-03-15"}, gotRange)
}

func TestPanelMetrics_InvalidRangeRejectedBeforeFetch(t *testing.T) {
	// Sem expectativa de Fetch: chegar ao adapter falharia o teste
	adapter := newAdapterMock(t, domain.ProviderAdvertising)
	service := newService(t, adapter)

	rng := domain.DateRange{Start: "today", End: "7daysAgo"}
	result, err := service.PanelMetrics(context.Background(), "tok-abc", domain.ProviderAdvertising, rng)

	require.ErrorIs(t, err, ErrInvalidDateRange)
	assert.Nil(t, result)
}

func TestPanelMetrics_UnknownProvider(t *testing.T) {
	adapter := newAdapterMock(t, domain.ProviderWebAnalytics)
	service := newService(t, adapter)

	_, err := service.PanelMetrics(context.Background(), "tok-abc", domain.ProviderSocial, domain.DateRange{})
	require.ErrorIs(t, err, ErrUnknownProvider)
}

func TestPanelMetrics_AdapterErrorReturnedUnchanged(t *testing.T) {
	adapter := newAdapterMock(t, domain.ProviderWebAnalytics)
	provErr := domain.NewQueryError(domain.ProviderWebAnalytics, "401238859",
		domain.ResolvedRange{Start: "2024-03-08", End: "2024-03-15"}, assert.AnError)
	adapter.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, provErr)

	service := newService(t, adapter)

	_, err := service.PanelMetrics(context.Background(), "tok-abc", domain.ProviderWebAnalytics, domain.DateRange{})

	var gotErr *domain.ProviderError
	require.ErrorAs(t, err, &gotErr)
	assert.Equal(t, domain.ErrKindQuery, gotErr.Kind)
	assert.Equal(t, "401238859", gotErr.AccountID)
}

func TestPanelMetrics_NotConfiguredPassedThrough(t *testing.T) {
	adapter := newAdapterMock(t, domain.ProviderAdvertising)
	adapter.EXPECT().
		Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, cfg domain.AccountConfig, _ domain.ResolvedRange) (*domain.PanelResult, error) {
			return domain.NotConfiguredResult(domain.ProviderAdvertising, cfg.TenantID, "tenant sem conta"), nil
		})

	service := NewService(&stubResolver{tenantID: "c09b5fa4-7722-4f1c-9e60-8aa1b2cd4e02"}, accountmapping.NewService(), adapter)
	service.now = func() time.Time { return testReference }

	result, err := service.PanelMetrics(context.Background(), "tok-abc", domain.ProviderAdvertising, domain.DateRange{})
	require.NoError(t, err)

	assert.True(t, result.NotConfigured)
	assert.Nil(t, result.Metrics)
}
