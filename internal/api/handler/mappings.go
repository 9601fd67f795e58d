package handler

import (
	"net/http"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/accountmapping"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/apiErrors"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/log"
)

// ListMappings expõe a tabela de mapeamento em memória para diagnóstico de
// operação
func ListMappings(mapper accountmapping.Mapper) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		mappings := mapper.Snapshot()
		logger.WithField("total", len(mappings)).Info("mappings: listing account mapping table")

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(mappings); err != nil {
			logger.WithField("error", err.Error()).Error("mappings: failed to encode response")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao serializar a resposta", "")
		}
	})
}
