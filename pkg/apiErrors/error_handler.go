package apiErrors

import (
	"encoding/json"
	"net/http"
)

// Códigos de erro retornados pela API
const (
	// Erros de autenticação (sessão do portal)
	ErrMissingToken = "AUTH_001" // Token de sessão ausente
	ErrInvalidToken = "AUTH_002" // Token de sessão inválido

	// Erros de validação
	ErrInvalidRequest   = "VAL_001" // Requisição inválida
	ErrInvalidProvider  = "VAL_002" // Provider desconhecido na rota
	ErrInvalidDateRange = "VAL_003" // Intervalo de datas inválido

	// Erros de provider
	ErrProviderConfig = "PRV_001" // Configuração do provider ausente no servidor
	ErrProviderQuery  = "PRV_002" // O provider rejeitou ou falhou a consulta
	ErrProviderAuth   = "PRV_003" // Credencial rejeitada pelo provider

	// Erros do servidor
	ErrInternalServer = "SRV_001" // Erro interno do servidor
)

// Mapeamento de códigos de erro para status HTTP
var httpStatusMap = map[string]int{
	ErrMissingToken:     http.StatusUnauthorized,
	ErrInvalidToken:     http.StatusUnauthorized,
	ErrInvalidRequest:   http.StatusBadRequest,
	ErrInvalidProvider:  http.StatusNotFound,
	ErrInvalidDateRange: http.StatusBadRequest,
	ErrProviderConfig:   http.StatusInternalServerError,
	ErrProviderQuery:    http.StatusBadGateway,
	ErrProviderAuth:     http.StatusBadGateway,
	ErrInternalServer:   http.StatusInternalServerError,
}

// APIError representa um erro de API padronizado
type APIError struct {
	Code    string `json:"code"`              // Código de erro para o cliente
	Error   string `json:"error"`             // Mensagem curta para exibição
	Details string `json:"details,omitempty"` // Contexto de diagnóstico para suporte
}

// WriteError escreve o erro padronizado para a resposta HTTP
func WriteError(w http.ResponseWriter, code string, message string, details string) {
	status, exists := httpStatusMap[code]
	if !exists {
		status = http.StatusInternalServerError
	}

	apiErr := APIError{
		Code:    code,
		Error:   message,
		Details: details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(apiErr)
}
