package adplatform

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/adplatform/adsclient"
	adsdomain "github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/adplatform/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/utils"
)

const topCampaignsLimit = 10

type AdPlatformIntegrator struct {
	cfg    *config.Config
	Client adsclient.Client
}

func New(cfg *config.Config, client adsclient.Client) *AdPlatformIntegrator {
	return &AdPlatformIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *AdPlatformIntegrator) Provider() domain.Provider {
	return domain.ProviderAdvertising
}

// Fetch emite as duas consultas (linhas de campanha e totais da conta) em
// paralelo. Tenant sem conta de anúncios curto-circuita para o estado
// informacional sem emitir consulta nenhuma
func (s *AdPlatformIntegrator) Fetch(ctx context.Context, accountCfg domain.AccountConfig, rng domain.ResolvedRange) (*domain.PanelResult, error) {
	if !accountCfg.HasAccount {
		logrus.WithField("tenant_id", accountCfg.TenantID).
			Info("adplatform: tenant has no advertising account, skipping queries")

		return domain.NotConfiguredResult(
			domain.ProviderAdvertising,
			accountCfg.TenantID,
			"tenant sem conta de anúncios configurada",
		), nil
	}

	var (
		campaignResults []adsdomain.Result
		totalsResults   []adsdomain.Result
		campaignErr     error
		totalsErr       error
	)

	wg := sync.WaitGroup{}
	wg.Add(2)

	go func() {
		defer wg.Done()
		campaignResults, campaignErr = s.Client.Search(ctx, accountCfg.AccountID, buildCampaignQuery(rng))
	}()

	go func() {
		defer wg.Done()
		totalsResults, totalsErr = s.Client.Search(ctx, accountCfg.AccountID, buildTotalsQuery(rng))
	}()

	wg.Wait()

	// Diferente dos breakdowns de web analytics, as duas consultas deste
	// provider são obrigatórias: a falha de qualquer uma derruba o painel
	// com o diagnóstico da tentativa
	if err := firstError(totalsErr, campaignErr); err != nil {
		logrus.WithFields(logrus.Fields{
			"customer_id": accountCfg.AccountID,
			"start_date":  rng.Start,
			"end_date":    rng.End,
			"error":       err.Error(),
		}).Error("adplatform: search query failed")

		return nil, s.classifyError(accountCfg.AccountID, rng, err)
	}

	record := domain.NewNormalizedMetrics(accountCfg.TenantID, accountCfg.AccountID, accountCfg.DisplayName, rng)

	composeTotals(record, totalsResults)
	record.Campaigns = composeCampaigns(campaignResults)

	logrus.WithFields(logrus.Fields{
		"customer_id":     accountCfg.AccountID,
		"tenant_id":       accountCfg.TenantID,
		"total_campaigns": len(record.Campaigns),
	}).Debug("adplatform: successfully composed normalized record")

	return &domain.PanelResult{
		Provider: domain.ProviderAdvertising,
		TenantID: accountCfg.TenantID,
		Metrics:  record,
	}, nil
}

// buildCampaignQuery monta a consulta de linhas de campanha: top 10 por
// impressões, campanhas removidas excluídas
func buildCampaignQuery(rng domain.ResolvedRange) string {
	return fmt.Sprintf(`SELECT campaign.id, campaign.name, campaign.status, `+
		`metrics.impressions, metrics.clicks, metrics.ctr, metrics.cost_micros, `+
		`metrics.conversions, metrics.conversions_value `+
		`FROM campaign `+
		`WHERE segments.date BETWEEN '%s' AND '%s' AND campaign.status != 'REMOVED' `+
		`ORDER BY metrics.impressions DESC `+
		`LIMIT %d`, rng.Start, rng.End, topCampaignsLimit)
}

// buildTotalsQuery monta a consulta de totais no nível da conta
func buildTotalsQuery(rng domain.ResolvedRange) string {
	return fmt.Sprintf(`SELECT metrics.impressions, metrics.clicks, metrics.ctr, `+
		`metrics.cost_micros, metrics.conversions, metrics.conversions_value, `+
		`metrics.average_cpc `+
		`FROM customer `+
		`WHERE segments.date BETWEEN '%s' AND '%s'`, rng.Start, rng.End)
}

// composeTotals preenche as métricas agregadas. Micros viram unidades de
// moeda e a fração de CTR vira pontos percentuais com duas casas
func composeTotals(record *domain.NormalizedMetrics, results []adsdomain.Result) {
	metrics := &adsdomain.Metrics{}
	if len(results) > 0 && results[0].Metrics != nil {
		metrics = results[0].Metrics
	}

	record.Metrics["impressions"] = metrics.Impressions
	record.Metrics["clicks"] = metrics.Clicks
	record.Metrics["ctr"] = utils.FormatPercent(metrics.Ctr)
	record.Metrics["cost"] = utils.MicrosToCurrency(metrics.CostMicros)
	record.Metrics["conversions"] = utils.RoundWithTwoDecimalPlace(metrics.Conversions)
	record.Metrics["conversionValue"] = utils.RoundWithTwoDecimalPlace(metrics.ConversionsValue)
	record.Metrics["averageCpc"] = utils.MicrosToCurrency(int64(metrics.AverageCpc))
}

func composeCampaigns(results []adsdomain.Result) []domain.CampaignMetrics {
	campaigns := make([]domain.CampaignMetrics, 0, len(results))

	for _, result := range results {
		if result.Campaign == nil || result.Metrics == nil {
			continue
		}
		if len(campaigns) == topCampaignsLimit {
			break
		}

		campaigns = append(campaigns, domain.CampaignMetrics{
			ID:              strconv.FormatInt(result.Campaign.ID, 10),
			Name:            result.Campaign.Name,
			Status:          result.Campaign.Status,
			Impressions:     result.Metrics.Impressions,
			Clicks:          result.Metrics.Clicks,
			CTR:             utils.FormatPercent(result.Metrics.Ctr),
			Cost:            utils.MicrosToCurrency(result.Metrics.CostMicros),
			Conversions:     utils.RoundWithTwoDecimalPlace(result.Metrics.Conversions),
			ConversionValue: utils.RoundWithTwoDecimalPlace(result.Metrics.ConversionsValue),
		})
	}

	return campaigns
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *AdPlatformIntegrator) classifyError(accountID string, rng domain.ResolvedRange, err error) *domain.ProviderError {
	if errors.Is(err, adsclient.ErrMissingCredentials) {
		return domain.NewConfigError(domain.ProviderAdvertising,
			"ADVERTISING_ACCESS_TOKEN", "ADVERTISING_DEVELOPER_TOKEN")
	}

	var reqErr *adsclient.RequestError
	if errors.As(err, &reqErr) && reqErr.IsAuthStatus() {
		return domain.NewAuthError(domain.ProviderAdvertising, accountID, rng, err)
	}

	return domain.NewQueryError(domain.ProviderAdvertising, accountID, rng, err)
}
