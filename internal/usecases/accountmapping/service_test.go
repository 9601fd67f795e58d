package accountmapping

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
)

func TestMapAccount_KnownTenant(t *testing.T) {
	service := NewService()

	cfg := service.MapAccount("7d52dc8e-91f0-4bc1-8b7e-2d3f55aa0c11", domain.ProviderWebAnalytics)

	assert.Equal(t, "401238859", cfg.AccountID)
	assert.Equal(t, "Beleza Urbana", cfg.DisplayName)
	assert.True(t, cfg.HasAccount)
}

func TestMapAccount_AbsentTenantFallsBackToDefault(t *testing.T) {
	service := NewService()

	// Todo tenant ausente da tabela recebe exatamente a configuração do
	// tenant "default" daquele provider
	for _, provider := range []domain.Provider{
		domain.ProviderWebAnalytics,
		domain.ProviderAdvertising,
		domain.ProviderSocial,
	} {
		expected := service.MapAccount(domain.DefaultTenantID, provider)
		got := service.MapAccount("tenant-inexistente", provider)
		assert.Equal(t, expected, got, "provider %s", provider)
	}
}

func TestMapAccount_AdvertisingCapabilityFlag(t *testing.T) {
	service := NewService()

	cfg := service.MapAccount("c09b5fa4-7722-4f1c-9e60-8aa1b2cd4e02", domain.ProviderAdvertising)

	// Configurado porém sem conta de anúncios: distinto de falha transitória
	assert.False(t, cfg.HasAccount)
	assert.Empty(t, cfg.AccountID)
}

func TestReplace_OverridesTable(t *testing.T) {
	service := NewService()

	service.Replace([]domain.AccountConfig{
		{TenantID: "novo-tenant", Provider: domain.ProviderWebAnalytics, AccountID: "999", DisplayName: "Novo", HasAccount: true},
	})

	cfg := service.MapAccount("novo-tenant", domain.ProviderWebAnalytics)
	assert.Equal(t, "999", cfg.AccountID)

	// Tenants da semente que não vieram na carga perdem a entrada explícita
	// e passam a herdar o default
	cfg = service.MapAccount("7d52dc8e-91f0-4bc1-8b7e-2d3f55aa0c11", domain.ProviderWebAnalytics)
	assert.Equal(t, service.MapAccount(domain.DefaultTenantID, domain.ProviderWebAnalytics), cfg)
}

func TestReplace_PreservesDefaultEntries(t *testing.T) {
	service := NewService()

	// Carga sem nenhuma entrada default não pode quebrar a invariante
	service.Replace([]domain.AccountConfig{
		{TenantID: "novo-tenant", Provider: domain.ProviderSocial, AccountID: "123", DisplayName: "Novo", HasAccount: true},
	})

	cfg := service.MapAccount("qualquer-tenant", domain.ProviderAdvertising)
	assert.Equal(t, domain.DefaultTenantID, cfg.TenantID)
	assert.NotEmpty(t, cfg.AccountID)
}

func TestSnapshot_Sorted(t *testing.T) {
	service := NewService()

	snapshot := service.Snapshot()
	assert.NotEmpty(t, snapshot)

	for i := 1; i < len(snapshot); i++ {
		prev, curr := snapshot[i-1], snapshot[i]
		if prev.TenantID == curr.TenantID {
			assert.LessOrEqual(t, string(prev.Provider), string(curr.Provider))
		} else {
			assert.Less(t, prev.TenantID, curr.TenantID)
		}
	}
}
