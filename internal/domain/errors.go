package domain

import "fmt"

// ErrorKind classifica as falhas de adapter de provider
type ErrorKind string

const (
	// ErrKindAuth indica credencial ausente ou rejeitada pelo provider
	ErrKindAuth ErrorKind = "auth"
	// ErrKindConfig indica configuração obrigatória ausente no servidor
	ErrKindConfig ErrorKind = "config"
	// ErrKindQuery indica que o provider rejeitou ou falhou a consulta
	ErrKindQuery ErrorKind = "query"
)

// ProviderError carrega o contexto de diagnóstico de uma falha de provider:
// conta tentada, intervalo de datas e a causa subjacente. Nunca é repetido
// automaticamente pelo núcleo
type ProviderError struct {
	Kind      ErrorKind
	Provider  Provider
	AccountID string
	DateRange ResolvedRange
	Message   string
	Err       error
}

func (e *ProviderError) Error() string {
	msg := e.Message
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.AccountID != "" {
		return fmt.Sprintf("%s [%s] conta %s (%s a %s): %s",
			e.Provider, e.Kind, e.AccountID, e.DateRange.Start, e.DateRange.End, msg)
	}
	return fmt.Sprintf("%s [%s]: %s", e.Provider, e.Kind, msg)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewAuthError cria uma falha de autenticação junto ao provider
func NewAuthError(provider Provider, accountID string, rng ResolvedRange, err error) *ProviderError {
	return &ProviderError{
		Kind:      ErrKindAuth,
		Provider:  provider,
		AccountID: accountID,
		DateRange: rng,
		Err:       err,
	}
}

// NewConfigError cria uma falha de configuração nomeando os itens ausentes
func NewConfigError(provider Provider, missing ...string) *ProviderError {
	return &ProviderError{
		Kind:     ErrKindConfig,
		Provider: provider,
		Message:  fmt.Sprintf("configuração ausente: %v", missing),
	}
}

// NewQueryError cria uma falha de consulta com o contexto tentado
func NewQueryError(provider Provider, accountID string, rng ResolvedRange, err error) *ProviderError {
	return &ProviderError{
		Kind:      ErrKindQuery,
		Provider:  provider,
		AccountID: accountID,
		DateRange: rng,
		Err:       err,
	}
}
