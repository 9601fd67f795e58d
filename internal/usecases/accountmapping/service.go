package accountmapping

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
)

// Mapper resolve a configuração de conta externa de um par (tenant, provider).
// Nunca falha: tenant sem entrada explícita herda a configuração do tenant
// "default" do provider, e na ausência desta vale a configuração fixa de
// contingência
type Mapper interface {
	MapAccount(tenantID string, provider domain.Provider) domain.AccountConfig
	Snapshot() []domain.AccountConfig
	Replace(mappings []domain.AccountConfig)
}

type mappingKey struct {
	tenantID string
	provider domain.Provider
}

type Service struct {
	mu    sync.RWMutex
	table map[mappingKey]domain.AccountConfig
}

// Tabela semente embutida. Toda instalação carrega pelo menos as entradas
// "default" de cada provider; o banco, quando habilitado, sobrepõe o resto
var seedTable = []domain.AccountConfig{
	{TenantID: domain.DefaultTenantID, Provider: domain.ProviderWebAnalytics, AccountID: "386725133", DisplayName: "Portal Demo", HasAccount: true},
	{TenantID: domain.DefaultTenantID, Provider: domain.ProviderAdvertising, AccountID: "9815430027", DisplayName: "Portal Demo", HasAccount: true},
	{TenantID: domain.DefaultTenantID, Provider: domain.ProviderSocial, AccountID: "2748179", DisplayName: "Portal Demo", HasAccount: true},

	{TenantID: "7d52dc8e-91f0-4bc1-8b7e-2d3f55aa0c11", Provider: domain.ProviderWebAnalytics, AccountID: "401238859", DisplayName: "Beleza Urbana", HasAccount: true},
	{TenantID: "7d52dc8e-91f0-4bc1-8b7e-2d3f55aa0c11", Provider: domain.ProviderAdvertising, AccountID: "4417230098", DisplayName: "Beleza Urbana", HasAccount: true},
	{TenantID: "7d52dc8e-91f0-4bc1-8b7e-2d3f55aa0c11", Provider: domain.ProviderSocial, AccountID: "3104522", DisplayName: "Beleza Urbana", HasAccount: true},

	// Tenant sem presença de anúncios: estado informacional, não erro
	{TenantID: "c09b5fa4-7722-4f1c-9e60-8aa1b2cd4e02", Provider: domain.ProviderWebAnalytics, AccountID: "395114207", DisplayName: "Café do Porto", HasAccount: true},
	{TenantID: "c09b5fa4-7722-4f1c-9e60-8aa1b2cd4e02", Provider: domain.ProviderAdvertising, AccountID: "", DisplayName: "Café do Porto", HasAccount: false},
	{TenantID: "c09b5fa4-7722-4f1c-9e60-8aa1b2cd4e02", Provider: domain.ProviderSocial, AccountID: "2991645", DisplayName: "Café do Porto", HasAccount: true},
}

// fallbackConfig é a contingência para o caso (impossível por invariante,
// mas defendido mesmo assim) de uma tabela sem entrada default
func fallbackConfig(tenantID string, provider domain.Provider) domain.AccountConfig {
	return domain.AccountConfig{
		TenantID:    tenantID,
		Provider:    provider,
		AccountID:   "",
		DisplayName: "Conta não mapeada",
		HasAccount:  false,
	}
}

func NewService() *Service {
	s := &Service{
		table: make(map[mappingKey]domain.AccountConfig, len(seedTable)),
	}

	for _, m := range seedTable {
		s.table[mappingKey{tenantID: m.TenantID, provider: m.Provider}] = m
	}

	return s
}

// MapAccount resolve (tenant, provider) com fallback para o default do provider
func (s *Service) MapAccount(tenantID string, provider domain.Provider) domain.AccountConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if cfg, ok := s.table[mappingKey{tenantID: tenantID, provider: provider}]; ok {
		return cfg
	}

	if cfg, ok := s.table[mappingKey{tenantID: domain.DefaultTenantID, provider: provider}]; ok {
		logrus.WithFields(logrus.Fields{
			"tenant_id": tenantID,
			"provider":  provider,
		}).Debug("mapping: tenant sem entrada explícita, usando default")
		return cfg
	}

	logrus.WithFields(logrus.Fields{
		"tenant_id": tenantID,
		"provider":  provider,
	}).Warn("mapping: tabela sem entrada default para o provider")

	return fallbackConfig(tenantID, provider)
}

// Snapshot retorna uma cópia ordenada da tabela corrente
func (s *Service) Snapshot() []domain.AccountConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mappings := make([]domain.AccountConfig, 0, len(s.table))
	for _, m := range s.table {
		mappings = append(mappings, m)
	}

	sort.Slice(mappings, func(i, j int) bool {
		if mappings[i].TenantID != mappings[j].TenantID {
			return mappings[i].TenantID < mappings[j].TenantID
		}
		return mappings[i].Provider < mappings[j].Provider
	})

	return mappings
}

// Replace troca a tabela pelos mapeamentos vindos do banco. As entradas
// default da semente são preservadas quando a carga não traz as suas:
// a invariante "todo provider tem entrada default" vale sempre
func (s *Service) Replace(mappings []domain.AccountConfig) {
	table := make(map[mappingKey]domain.AccountConfig, len(mappings))

	for _, m := range mappings {
		table[mappingKey{tenantID: m.TenantID, provider: m.Provider}] = m
	}

	for _, m := range seedTable {
		if m.TenantID != domain.DefaultTenantID {
			continue
		}
		key := mappingKey{tenantID: m.TenantID, provider: m.Provider}
		if _, ok := table[key]; !ok {
			table[key] = m
		}
	}

	s.mu.Lock()
	s.table = table
	s.mu.Unlock()

	logrus.WithField("total_mappings", len(table)).Info("mapping: tabela de mapeamento recarregada")
}
