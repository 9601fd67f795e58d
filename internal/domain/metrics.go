package domain

// Chaves das coleções de breakdown do provider de web analytics
const (
	BreakdownTopPages       = "topPages"
	BreakdownTrafficSources = "trafficSources"
	BreakdownDevices        = "devices"
	BreakdownCountries      = "countries"
)

// BreakdownRow é um par dimensão/métrica de uma coleção de breakdown
type BreakdownRow struct {
	Dimension string  `json:"dimension"`
	Value     float64 `json:"value"`
}

// Breakdown é uma coleção ordenada de linhas de breakdown.
// Uma coleção vazia é válida e renderiza como seção ausente no painel
type Breakdown []BreakdownRow

// TimeSeriesPoint é um ponto da série diária das métricas de volume
type TimeSeriesPoint struct {
	Date        string `json:"date"`
	ActiveUsers int64  `json:"activeUsers"`
	Sessions    int64  `json:"sessions"`
	PageViews   int64  `json:"pageViews"`
}

// CampaignMetrics é uma linha de campanha do provider de anúncios,
// já com unidades normalizadas (micros convertidos, CTR em pontos percentuais)
type CampaignMetrics struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Status          string  `json:"status"`
	Impressions     int64   `json:"impressions"`
	Clicks          int64   `json:"clicks"`
	CTR             string  `json:"ctr"`
	Cost            float64 `json:"cost"`
	Conversions     float64 `json:"conversions"`
	ConversionValue float64 `json:"conversionValue"`
}

// NormalizedMetrics é o registro unificado produzido por um adapter.
// Todas as coleções são sempre inicializadas: um painel sem dados recebe
// coleções vazias, nunca nulas
type NormalizedMetrics struct {
	TenantID    string               `json:"tenantId"`
	AccountID   string               `json:"accountId"`
	AccountName string               `json:"accountName"`
	DateRange   ResolvedRange        `json:"dateRange"`
	Metrics     map[string]any       `json:"metrics"`
	Breakdowns  map[string]Breakdown `json:"breakdowns"`
	TimeSeries  []TimeSeriesPoint    `json:"timeSeries"`
	Campaigns   []CampaignMetrics    `json:"campaigns"`
}

// NewNormalizedMetrics cria o registro com todas as coleções inicializadas
func NewNormalizedMetrics(tenantID, accountID, accountName string, rng ResolvedRange) *NormalizedMetrics {
	return &NormalizedMetrics{
		TenantID:    tenantID,
		AccountID:   accountID,
		AccountName: accountName,
		DateRange:   rng,
		Metrics:     make(map[string]any),
		Breakdowns:  make(map[string]Breakdown),
		TimeSeries:  make([]TimeSeriesPoint, 0),
		Campaigns:   make([]CampaignMetrics, 0),
	}
}

// SocialSnapshot é a saída do adapter de social media. A integração ainda é
// a menos madura das três: Profile e Stats são repassados como payload opaco
// e podem ficar nulos quando a chamada correspondente falha. Posts nunca é
// nulo, apenas vazio
type SocialSnapshot struct {
	TenantID  string           `json:"tenantId"`
	AccountID string           `json:"accountId"`
	DateRange ResolvedRange    `json:"dateRange"`
	Profile   map[string]any   `json:"profile"`
	Stats     map[string]any   `json:"stats"`
	Posts     []map[string]any `json:"posts"`
}
