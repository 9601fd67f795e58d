package main

import (
	"context"
	"os"
	"path"
	"runtime"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/database/postgres"
	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/adplatform"
	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/adplatform/adsclient"
	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/portal/portalclient"
	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/social"
	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/social/socialclient"
	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/webanalytics"
	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/webanalytics/waclient"
	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/repository"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/api"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/scheduler"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/accountmapping"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/aggregating"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/tenanting"
)

func main() {
	configureLogger()

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	logLevel, err := logrus.ParseLevel(cfg.App.LogLevel)
	if err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	portalClient := portalclient.NewClient(cfg)
	resolver := tenanting.NewService(cfg, portalClient)

	mapper := accountmapping.NewService()

	waIntegrator := webanalytics.New(cfg, waclient.NewClient(cfg))
	adsIntegrator := adplatform.New(cfg, adsclient.NewClient(cfg))
	socialIntegrator := social.New(cfg, socialclient.NewClient(cfg))

	aggregator := aggregating.NewService(resolver, mapper,
		waIntegrator, adsIntegrator, socialIntegrator)

	// A tabela de mapeamento embutida atende instalações sem banco; quando o
	// banco está habilitado, o agendador recarrega a tabela periodicamente
	var mappingSyncService *scheduler.MappingSyncService
	if cfg.Database.Enabled {
		pgConn := pgconn(ctx, cfg.Database)
		defer pgConn.Close()

		mappingRepo := repository.NewAccountMappingRepository(pgConn)
		mappingSyncService = scheduler.NewMappingSyncService(mappingRepo, mapper, cfg)

		if err := mappingSyncService.Start(ctx); err != nil {
			logrus.WithError(err).Error("Erro ao iniciar o agendador de sincronização de mapeamentos")
		} else {
			logrus.Info("Agendador de sincronização de mapeamentos iniciado com sucesso")
		}
	} else {
		logrus.Info("Banco de dados desabilitado, usando a tabela de mapeamento embutida")
	}

	server, err := api.New(cfg, aggregator, mapper, mappingSyncService)
	if err != nil {
		logrus.Fatal(err)
	}

	if err := server.Run(ctx); err != nil {
		logrus.Error(err)
	}
}

// configureLogger configura o formato e comportamento dos logs
func configureLogger() {
	_, file, _, _ := runtime.Caller(0)
	dir := path.Dir(file)
	os.Chdir(dir)

	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: time.RFC3339,
	})
}

// pgconn cria uma conexão com o banco de dados
func pgconn(ctx context.Context, dbConfig config.Database) *postgres.Connection {
	conn, err := postgres.NewConnection(ctx, dbConfig)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao conectar ao PostgreSQL")
	}

	err = conn.Ping(ctx)
	if err != nil {
		logrus.WithError(err).Fatal("Erro ao testar conexão com PostgreSQL")
	}

	logrus.Info("Conexão com PostgreSQL estabelecida com sucesso")
	return conn
}
