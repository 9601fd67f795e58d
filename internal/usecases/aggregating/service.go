package aggregating

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/daterange"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/accountmapping"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/tenanting"
)

// Intervalo aplicado quando o chamador não envia nenhum limite
const (
	defaultStartToken = "7daysAgo"
	defaultEndToken   = "today"
)

type Service struct {
	resolver tenanting.Resolver
	mapper   accountmapping.Mapper
	adapters map[domain.Provider]ProviderAdapter

	// Instante de referência injetado para manter a normalização de datas
	// determinística nos testes
	now func() time.Time
}

func NewService(resolver tenanting.Resolver, mapper accountmapping.Mapper, adapters ...ProviderAdapter) *Service {
	registry := make(map[domain.Provider]ProviderAdapter, len(adapters))
	for _, adapter := range adapters {
		registry[adapter.Provider()] = adapter
	}

	return &Service{
		resolver: resolver,
		mapper:   mapper,
		adapters: registry,
		now:      time.Now,
	}
}

// PanelMetrics executa o fluxo completo de um painel: normaliza o intervalo,
// resolve o tenant, mapeia a conta do provider e delega ao adapter. Resolução
// de tenant e mapeamento de conta nunca falham; o resultado do adapter é
// devolvido sem tradução
func (s *Service) PanelMetrics(ctx context.Context, token string, provider domain.Provider, rng domain.DateRange) (*domain.PanelResult, error) {
	adapter, ok := s.adapters[provider]
	if !ok {
		return nil, ErrUnknownProvider
	}

	if rng.Start == "" && rng.End == "" {
		rng = domain.DateRange{Start: defaultStartToken, End: defaultEndToken}
	}

	resolved := daterange.NormalizeRange(rng, s.now())
	if !daterange.Validate(resolved) {
		return nil, ErrInvalidDateRange
	}

	tenantID := s.resolver.Resolve(token)
	accountCfg := s.mapper.MapAccount(tenantID, provider)

	logrus.WithFields(logrus.Fields{
		"provider":   provider,
		"tenant_id":  tenantID,
		"account_id": accountCfg.AccountID,
		"start_date": resolved.Start,
		"end_date":   resolved.End,
	}).Info("aggregating: dispatching panel fetch")

	return adapter.Fetch(ctx, accountCfg, resolved)
}
