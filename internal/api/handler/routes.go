package handler

import (
	"net/http"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/api/handler/router"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/accountmapping"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/aggregating"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

// Metrics registra a rota única de painel; o provider vem como parâmetro de
// rota e cada painel é uma chamada independente
func Metrics(cfg *config.Config, service aggregating.Aggregator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/metrics/:provider",
			Method:  http.MethodGet,
			Handler: PanelMetrics(cfg, service),
		},
	}
}

func Mappings(mapper accountmapping.Mapper) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/mappings",
			Method:  http.MethodGet,
			Handler: ListMappings(mapper),
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/cron/:type/run",
			Method:  http.MethodPost,
			Handler: RunCronJob(services),
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
