package aggregating

import (
	"context"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
)

// ProviderAdapter encapsula o protocolo nativo de um provider: monta as
// consultas, executa o fan-out interno e devolve o resultado do painel já
// normalizado. As três implementações vivem em infrastructure/integrator
type ProviderAdapter interface {
	Provider() domain.Provider
	Fetch(ctx context.Context, accountCfg domain.AccountConfig, rng domain.ResolvedRange) (*domain.PanelResult, error)
}

// Aggregator é o ponto de orquestração chamado uma vez por painel de
// provider. Cada chamada resolve tenant e conta de forma independente, então
// a falha de um provider nunca bloqueia o painel de outro
type Aggregator interface {
	PanelMetrics(ctx context.Context, token string, provider domain.Provider, rng domain.DateRange) (*domain.PanelResult, error)
}
