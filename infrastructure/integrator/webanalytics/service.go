package webanalytics

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	wadomain "github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/webanalytics/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/webanalytics/waclient"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/daterange"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/utils"
)

const topEntriesLimit = 10

// Índices das sub-consultas do fan-out. A de totais é a primária: a falha
// dela derruba o painel; as demais degradam para coleções vazias
const (
	queryTotals = iota
	queryTimeSeries
	queryTopPages
	queryTrafficSources
	queryDevices
	queryCountries
	queryCount
)

var queryNames = [queryCount]string{
	"totals", "time_series", "top_pages", "traffic_sources", "devices", "countries",
}

type WebAnalyticsIntegrator struct {
	cfg    *config.Config
	Client waclient.Client
}

func New(cfg *config.Config, client waclient.Client) *WebAnalyticsIntegrator {
	return &WebAnalyticsIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *WebAnalyticsIntegrator) Provider() domain.Provider {
	return domain.ProviderWebAnalytics
}

// Fetch emite as seis consultas de relatório em paralelo e compõe o registro
// normalizado. Dados parciais valem mais que dado nenhum: só a consulta de
// totais é obrigatória
func (s *WebAnalyticsIntegrator) Fetch(ctx context.Context, accountCfg domain.AccountConfig, rng domain.ResolvedRange) (*domain.PanelResult, error) {
	requests := s.buildRequests(rng)

	responses := make([]*wadomain.ReportResponse, queryCount)
	queryErrors := make([]error, queryCount)

	wg := sync.WaitGroup{}
	wg.Add(queryCount)

	for i := range requests {
		go func(i int) {
			defer wg.Done()
			responses[i], queryErrors[i] = s.Client.RunReport(ctx, accountCfg.AccountID, requests[i])
		}(i)
	}

	wg.Wait()

	if err := queryErrors[queryTotals]; err != nil {
		logrus.WithFields(logrus.Fields{
			"account_id": accountCfg.AccountID,
			"start_date": rng.Start,
			"end_date":   rng.End,
			"error":      err.Error(),
		}).Error("webanalytics: primary totals query failed")

		return nil, s.classifyError(accountCfg.AccountID, rng, err)
	}

	for i, err := range queryErrors {
		if err != nil && i != queryTotals {
			logrus.WithFields(logrus.Fields{
				"account_id": accountCfg.AccountID,
				"sub_query":  queryNames[i],
				"error":      err.Error(),
			}).Warn("webanalytics: breakdown query failed, degrading to empty collection")
		}
	}

	record := domain.NewNormalizedMetrics(accountCfg.TenantID, accountCfg.AccountID, accountCfg.DisplayName, rng)

	s.composeTotals(record, responses[queryTotals])
	record.TimeSeries = composeTimeSeries(responses[queryTimeSeries])
	record.Breakdowns[domain.BreakdownTopPages] = composeBreakdown(responses[queryTopPages])
	record.Breakdowns[domain.BreakdownTrafficSources] = composeBreakdown(responses[queryTrafficSources])
	record.Breakdowns[domain.BreakdownDevices] = composeBreakdown(responses[queryDevices])
	record.Breakdowns[domain.BreakdownCountries] = composeBreakdown(responses[queryCountries])

	logrus.WithFields(logrus.Fields{
		"account_id": accountCfg.AccountID,
		"tenant_id":  accountCfg.TenantID,
	}).Debug("webanalytics: successfully composed normalized record")

	return &domain.PanelResult{
		Provider: domain.ProviderWebAnalytics,
		TenantID: accountCfg.TenantID,
		Metrics:  record,
	}, nil
}

// buildRequests monta as seis consultas, todas com o mesmo intervalo
func (s *WebAnalyticsIntegrator) buildRequests(rng domain.ResolvedRange) [queryCount]*wadomain.ReportRequest {
	dateRanges := []wadomain.DateRange{{StartDate: rng.Start, EndDate: rng.End}}

	var requests [queryCount]*wadomain.ReportRequest

	requests[queryTotals] = &wadomain.ReportRequest{
		DateRanges: dateRanges,
		Metrics: []wadomain.Metric{
			{Name: "activeUsers"},
			{Name: "sessions"},
			{Name: "screenPageViews"},
			{Name: "newUsers"},
			{Name: "averageSessionDuration"},
			{Name: "bounceRate"},
			{Name: "engagementRate"},
		},
	}

	requests[queryTimeSeries] = &wadomain.ReportRequest{
		DateRanges: dateRanges,
		Dimensions: []wadomain.Dimension{{Name: "date"}},
		Metrics: []wadomain.Metric{
			{Name: "activeUsers"},
			{Name: "sessions"},
			{Name: "screenPageViews"},
		},
	}

	requests[queryTopPages] = &wadomain.ReportRequest{
		DateRanges: dateRanges,
		Dimensions: []wadomain.Dimension{{Name: "pagePath"}},
		Metrics:    []wadomain.Metric{{Name: "screenPageViews"}},
		OrderBys:   []wadomain.OrderBy{{Desc: true, Metric: &wadomain.MetricOrderBy{MetricName: "screenPageViews"}}},
		Limit:      topEntriesLimit,
	}

	requests[queryTrafficSources] = &wadomain.ReportRequest{
		DateRanges: dateRanges,
		Dimensions: []wadomain.Dimension{{Name: "sessionDefaultChannelGroup"}},
		Metrics:    []wadomain.Metric{{Name: "sessions"}},
		OrderBys:   []wadomain.OrderBy{{Desc: true, Metric: &wadomain.MetricOrderBy{MetricName: "sessions"}}},
	}

	requests[queryDevices] = &wadomain.ReportRequest{
		DateRanges: dateRanges,
		Dimensions: []wadomain.Dimension{{Name: "deviceCategory"}},
		Metrics:    []wadomain.Metric{{Name: "activeUsers"}},
	}

	requests[queryCountries] = &wadomain.ReportRequest{
		DateRanges: dateRanges,
		Dimensions: []wadomain.Dimension{{Name: "country"}},
		Metrics:    []wadomain.Metric{{Name: "activeUsers"}},
		OrderBys:   []wadomain.OrderBy{{Desc: true, Metric: &wadomain.MetricOrderBy{MetricName: "activeUsers"}}},
		Limit:      topEntriesLimit,
	}

	return requests
}

// composeTotals preenche as métricas agregadas do período. O provider devolve
// taxas como frações 0–1; reescalamos para pontos percentuais com duas casas
func (s *WebAnalyticsIntegrator) composeTotals(record *domain.NormalizedMetrics, resp *wadomain.ReportResponse) {
	record.Metrics["activeUsers"] = utils.ParseInt(resp.MetricValueAt(0))
	record.Metrics["sessions"] = utils.ParseInt(resp.MetricValueAt(1))
	record.Metrics["pageViews"] = utils.ParseInt(resp.MetricValueAt(2))
	record.Metrics["newUsers"] = utils.ParseInt(resp.MetricValueAt(3))
	record.Metrics["averageSessionDuration"] = utils.RoundWithTwoDecimalPlace(utils.ParseFloat(resp.MetricValueAt(4)))
	record.Metrics["bounceRate"] = utils.FormatPercent(utils.ParseFloat(resp.MetricValueAt(5)))
	record.Metrics["engagementRate"] = utils.FormatPercent(utils.ParseFloat(resp.MetricValueAt(6)))
}

// composeTimeSeries converte as linhas diárias, ordenadas por data. O
// provider serializa a dimensão de data no layout compacto
func composeTimeSeries(resp *wadomain.ReportResponse) []domain.TimeSeriesPoint {
	series := make([]domain.TimeSeriesPoint, 0)
	if resp == nil {
		return series
	}

	for _, row := range resp.Rows {
		if len(row.DimensionValues) == 0 || len(row.MetricValues) < 3 {
			continue
		}

		series = append(series, domain.TimeSeriesPoint{
			Date:        hyphenate(row.DimensionValues[0].Value),
			ActiveUsers: utils.ParseInt(row.MetricValues[0].Value),
			Sessions:    utils.ParseInt(row.MetricValues[1].Value),
			PageViews:   utils.ParseInt(row.MetricValues[2].Value),
		})
	}

	sort.Slice(series, func(i, j int) bool {
		return series[i].Date < series[j].Date
	})

	return series
}

// composeBreakdown converte linhas dimensão×métrica em uma coleção de
// breakdown. Resposta nula (sub-consulta falhou) vira coleção vazia
func composeBreakdown(resp *wadomain.ReportResponse) domain.Breakdown {
	breakdown := make(domain.Breakdown, 0)
	if resp == nil {
		return breakdown
	}

	for _, row := range resp.Rows {
		if len(row.DimensionValues) == 0 || len(row.MetricValues) == 0 {
			continue
		}

		breakdown = append(breakdown, domain.BreakdownRow{
			Dimension: row.DimensionValues[0].Value,
			Value:     utils.ParseFloat(row.MetricValues[0].Value),
		})
	}

	return breakdown
}

func hyphenate(compact string) string {
	parsed, err := time.Parse(daterange.LayoutCompact, compact)
	if err != nil {
		return compact
	}
	return parsed.Format(daterange.LayoutHyphenated)
}

// classifyError traduz a falha da consulta primária para a taxonomia de
// erros de provider, com o contexto de diagnóstico da tentativa
func (s *WebAnalyticsIntegrator) classifyError(accountID string, rng domain.ResolvedRange, err error) *domain.ProviderError {
	if errors.Is(err, waclient.ErrMissingCredentials) {
		return domain.NewConfigError(domain.ProviderWebAnalytics, "WEB_ANALYTICS_ACCESS_TOKEN")
	}

	var reqErr *waclient.RequestError
	if errors.As(err, &reqErr) && reqErr.IsAuthStatus() {
		return domain.NewAuthError(domain.ProviderWebAnalytics, accountID, rng, err)
	}

	return domain.NewQueryError(domain.ProviderWebAnalytics, accountID, rng, err)
}
