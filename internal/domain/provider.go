package domain

import "fmt"

// Provider identifica uma fonte externa de métricas
type Provider string

const (
	ProviderWebAnalytics Provider = "web-analytics"
	ProviderAdvertising  Provider = "advertising"
	ProviderSocial       Provider = "social"
)

// DefaultTenantID é o tenant usado quando a resolução de sessão falha
// ou quando não há mapeamento explícito para a empresa autenticada
const DefaultTenantID = "default"

// ParseProvider valida o identificador de provider recebido na rota
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderWebAnalytics, ProviderAdvertising, ProviderSocial:
		return Provider(s), nil
	}
	return "", fmt.Errorf("provider desconhecido: %s", s)
}
