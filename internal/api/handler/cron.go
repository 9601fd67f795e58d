package handler

import (
	"net/http"

	"github.com/julienschmidt/httprouter"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/scheduler"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/apiErrors"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/log"
)

// CronJobType define o tipo de cron job que pode ser executada manualmente
const (
	CronJobTypeMappingSync = "mapping-sync"
)

// CronJobServices contém os serviços de cron disponíveis para execução manual
type CronJobServices struct {
	MappingSyncService *scheduler.MappingSyncService
}

// RunCronJob executa manualmente uma cron job específica
func RunCronJob(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		cronType := httprouter.ParamsFromContext(r.Context()).ByName("type")
		if cronType == "" {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job não especificado", "")
			return
		}

		logger.WithField("cron_type", cronType).Info("cron: manual run requested")

		switch cronType {
		case CronJobTypeMappingSync:
			if services.MappingSyncService == nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Serviço de sincronização de mapeamentos não disponível", "")
				return
			}
			if err := services.MappingSyncService.RunNow(r.Context()); err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Falha na sincronização de mapeamentos", err.Error())
				return
			}
		default:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Tipo de cron job inválido. Valores aceitos: mapping-sync", cronType)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusAccepted)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"status": "executed",
			"job":    cronType,
		})
	})
}

// GetCronStatus devolve o estado atual dos agendadores
func GetCronStatus(services CronJobServices) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		status := map[string]scheduler.SyncStatus{}
		if services.MappingSyncService != nil {
			status[CronJobTypeMappingSync] = services.MappingSyncService.Status()
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(status); err != nil {
			logger.WithField("error", err.Error()).Error("cron: failed to encode status response")

			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao serializar a resposta", "")
		}
	})
}
