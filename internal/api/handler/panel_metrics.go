package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/aggregating"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/apiErrors"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/log"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/middleware"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const defaultPanelTimeout = 30 * time.Second

// PanelMetrics atende um painel de provider. O timeout é imposto aqui, no
// chamador: o núcleo de agregação não retenta nem cancela sozinho
func PanelMetrics(cfg *config.Config, service aggregating.Aggregator) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		providerParam := httprouter.ParamsFromContext(r.Context()).ByName("provider")
		provider, err := domain.ParseProvider(providerParam)
		if err != nil {
			logger.WithField("provider", providerParam).Warn("metrics: unknown provider in route")

			apiErrors.WriteError(w, apiErrors.ErrInvalidProvider, "Provider desconhecido", providerParam)
			return
		}

		token := middleware.SessionTokenFromContext(r.Context())
		rng := domain.DateRange{
			Start: r.URL.Query().Get("start"),
			End:   r.URL.Query().Get("end"),
		}

		logger.WithFields(log.Fields{
			"provider": provider,
			"start":    rng.Start,
			"end":      rng.End,
		}).Info("metrics: fetching panel")

		ctx, cancel := context.WithTimeout(r.Context(), panelTimeout(cfg))
		defer cancel()

		result, err := service.PanelMetrics(ctx, token, provider, rng)
		if err != nil {
			writePanelError(w, logger, provider, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(result); err != nil {
			logger.WithFields(log.Fields{
				"provider": provider,
				"error":    err.Error(),
			}).Error("metrics: failed to encode panel response")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao serializar a resposta", "")
		}
	})
}

func panelTimeout(cfg *config.Config) time.Duration {
	if cfg.Panel.TimeoutSeconds > 0 {
		return time.Duration(cfg.Panel.TimeoutSeconds) * time.Second
	}
	return defaultPanelTimeout
}

// writePanelError traduz a taxonomia de falhas do núcleo para o envelope da
// API. O estouro do timeout imposto aqui conta como falha de consulta
func writePanelError(w http.ResponseWriter, logger log.Logger, provider domain.Provider, err error) {
	if errors.Is(err, aggregating.ErrInvalidDateRange) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidDateRange, "Intervalo de datas inválido", err.Error())
		return
	}

	if errors.Is(err, aggregating.ErrUnknownProvider) {
		apiErrors.WriteError(w, apiErrors.ErrInvalidProvider, "Provider desconhecido", string(provider))
		return
	}

	logger.WithFields(log.Fields{
		"provider": provider,
		"error":    err.Error(),
	}).Error("metrics: panel fetch failed")

	var provErr *domain.ProviderError
	if errors.As(err, &provErr) {
		switch provErr.Kind {
		case domain.ErrKindConfig:
			apiErrors.WriteError(w, apiErrors.ErrProviderConfig, "Configuração do provider ausente", provErr.Error())
		case domain.ErrKindAuth:
			apiErrors.WriteError(w, apiErrors.ErrProviderAuth, "Credencial rejeitada pelo provider", provErr.Error())
		default:
			apiErrors.WriteError(w, apiErrors.ErrProviderQuery, "Falha ao consultar o provider", provErr.Error())
		}
		return
	}

	if errors.Is(err, context.DeadlineExceeded) {
		apiErrors.WriteError(w, apiErrors.ErrProviderQuery, "Tempo limite excedido ao consultar o provider", err.Error())
		return
	}

	apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro interno do servidor", err.Error())
}
