package domain

// AccountConfig é a configuração de conta externa de um par (tenant, provider).
// HasAccount distingue "configurado mas sem conta ativa" de "configurado":
// alguns tenants legitimamente não têm presença de anúncios
type AccountConfig struct {
	TenantID    string   `json:"tenantId"`
	Provider    Provider `json:"provider"`
	AccountID   string   `json:"accountId"`
	DisplayName string   `json:"displayName"`
	HasAccount  bool     `json:"hasAccount"`
}
