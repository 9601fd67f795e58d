package domain

// PanelResult é o envelope retornado pela fachada de agregação para um
// painel de provider. Exatamente uma das variantes está preenchida:
// Metrics (web analytics e anúncios), Social (social media) ou o estado
// informacional NotConfigured (apenas anúncios)
type PanelResult struct {
	Provider      Provider           `json:"provider"`
	TenantID      string             `json:"tenantId"`
	NotConfigured bool               `json:"notConfigured,omitempty"`
	Reason        string             `json:"reason,omitempty"`
	Metrics       *NormalizedMetrics `json:"metrics,omitempty"`
	Social        *SocialSnapshot    `json:"social,omitempty"`
}

// NotConfiguredResult cria o estado informacional de conta inexistente
func NotConfiguredResult(provider Provider, tenantID, reason string) *PanelResult {
	return &PanelResult{
		Provider:      provider,
		TenantID:      tenantID,
		NotConfigured: true,
		Reason:        reason,
	}
}
