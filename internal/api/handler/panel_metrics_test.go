package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/aggregating"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/aggregating/mocks"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/apiErrors"
)

func panelRequest(t *testing.T, provider, query string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/v1/metrics/"+provider+query, nil)
	params := httprouter.Params{{Key: "provider", Value: provider}}
	ctx := context.WithValue(req.Context(), httprouter.ParamsKey, params)
	return req.WithContext(ctx)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()

	var apiErr apiErrors.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	return apiErr
}

func newAggregatorMock(t *testing.T) *mocks.MockAggregator {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return mocks.NewMockAggregator(ctrl)
}

func TestPanelMetrics_Success(t *testing.T) {
	aggregator := newAggregatorMock(t)

	rng := domain.ResolvedRange{Start: "2024-03-08", End: "2024-03-15"}
	record := domain.NewNormalizedMetrics("7d52dc8e-91f0-4bc1-8b7e-2d3f55aa0c11", "401238859", "Beleza Urbana", rng)
	record.Metrics["activeUsers"] = int64(120)

	aggregator.EXPECT().
		PanelMetrics(gomock.Any(), gomock.Any(), domain.ProviderWebAnalytics,
			domain.DateRange{Start: "7daysAgo", End: "today"}).
		Return(&domain.PanelResult{
			Provider: domain.ProviderWebAnalytics,
			TenantID: record.TenantID,
			Metrics:  record,
		}, nil)

	rec := httptest.NewRecorder()
	req := panelRequest(t, "web-analytics", "?start=7daysAgo&end=today")
	PanelMetrics(&config.Config{}, aggregator).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.PanelResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.Equal(t, domain.ProviderWebAnalytics, result.Provider)
	assert.False(t, result.NotConfigured)
	require.NotNil(t, result.Metrics)
	assert.EqualValues(t, 120, result.Metrics.Metrics["activeUsers"])
}

func TestPanelMetrics_UnknownProviderInRoute(t *testing.T) {
	aggregator := newAggregatorMock(t)

	rec := httptest.NewRecorder()
	req := panelRequest(t, "email-marketing", "")
	PanelMetrics(&config.Config{}, aggregator).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidProvider, decodeError(t, rec).Code)
}

func TestPanelMetrics_InvalidDateRange(t *testing.T) {
	aggregator := newAggregatorMock(t)
	aggregator.EXPECT().
		PanelMetrics(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, aggregating.ErrInvalidDateRange)

	rec := httptest.NewRecorder()
	req := panelRequest(t, "advertising", "?start=today&end=7daysAgo")
	PanelMetrics(&config.Config{}, aggregator).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, apiErrors.ErrInvalidDateRange, decodeError(t, rec).Code)
}

func TestPanelMetrics_QueryFailureCarriesDiagnostics(t *testing.T) {
	aggregator := newAggregatorMock(t)

	rng := domain.ResolvedRange{Start: "2024-03-08", End: "2024-03-15"}
	provErr := domain.NewQueryError(domain.ProviderWebAnalytics, "401238859", rng, assert.AnError)
	aggregator.EXPECT().
		PanelMetrics(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, provErr)

	rec := httptest.NewRecorder()
	req := panelRequest(t, "web-analytics", "")
	PanelMetrics(&config.Config{}, aggregator).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)

	apiErr := decodeError(t, rec)
	assert.Equal(t, apiErrors.ErrProviderQuery, apiErr.Code)
	assert.Contains(t, apiErr.Details, "401238859")
	assert.Contains(t, apiErr.Details, "2024-03-08")
}

func TestPanelMetrics_ConfigFailureNamesMissingItems(t *testing.T) {
	aggregator := newAggregatorMock(t)
	provErr := domain.NewConfigError(domain.ProviderAdvertising,
		"ADVERTISING_ACCESS_TOKEN", "ADVERTISING_DEVELOPER_TOKEN")
	aggregator.EXPECT().
		PanelMetrics(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, provErr)

	rec := httptest.NewRecorder()
	req := panelRequest(t, "advertising", "")
	PanelMetrics(&config.Config{}, aggregator).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	apiErr := decodeError(t, rec)
	assert.Equal(t, apiErrors.ErrProviderConfig, apiErr.Code)
	assert.Contains(t, apiErr.Details, "ADVERTISING_ACCESS_TOKEN")
}

func TestPanelMetrics_TimeoutMappedToQueryError(t *testing.T) {
	aggregator := newAggregatorMock(t)
	aggregator.EXPECT().
		PanelMetrics(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, context.DeadlineExceeded)

	rec := httptest.NewRecorder()
	req := panelRequest(t, "social", "")
	PanelMetrics(&config.Config{}, aggregator).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, apiErrors.ErrProviderQuery, decodeError(t, rec).Code)
}

func TestPanelMetrics_NotConfiguredIsSuccess(t *testing.T) {
	aggregator := newAggregatorMock(t)
	aggregator.EXPECT().
		PanelMetrics(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(domain.NotConfiguredResult(domain.ProviderAdvertising,
			"c09b5fa4-7722-4f1c-9e60-8aa1b2cd4e02", "tenant sem conta de anúncios configurada"), nil)

	rec := httptest.NewRecorder()
	req := panelRequest(t, "advertising", "")
	PanelMetrics(&config.Config{}, aggregator).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result domain.PanelResult
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&result))
	assert.True(t, result.NotConfigured)
	assert.NotEmpty(t, result.Reason)
	assert.Nil(t, result.Metrics)
}
