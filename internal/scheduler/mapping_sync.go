package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/sirupsen/logrus"

	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/repository"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/accountmapping"
)

// MappingSyncConfig representa a configuração do agendador de sincronização
// da tabela de mapeamento de contas
type MappingSyncConfig struct {
	CronSchedule string
	SyncEnabled  bool
}

// SyncStatus é o retrato do agendador exposto pelo endpoint de operação
type SyncStatus struct {
	Enabled         bool       `json:"enabled"`
	Running         bool       `json:"running"`
	CronSchedule    string     `json:"cronSchedule"`
	LastStartedAt   *time.Time `json:"lastStartedAt,omitempty"`
	LastCompletedAt *time.Time `json:"lastCompletedAt,omitempty"`
	LastError       string     `json:"lastError,omitempty"`
	MappingCount    int        `json:"mappingCount"`
}

// MappingSyncService recarrega periodicamente a tabela de mapeamento
// (tenant, provider) a partir do banco para dentro do mapper em memória.
// Quando o banco está desabilitado, a tabela semente embutida permanece
type MappingSyncService struct {
	scheduler *gocron.Scheduler
	config    MappingSyncConfig
	repo      repository.AccountMappingRepository
	mapper    accountmapping.Mapper

	syncRunning         bool
	syncMutex           sync.Mutex
	lastSyncStartedAt   time.Time
	lastSyncCompletedAt time.Time
	lastSyncError       error
	lastMappingCount    int
}

// NewMappingSyncService cria uma nova instância do serviço de sincronização
func NewMappingSyncService(
	repo repository.AccountMappingRepository,
	mapper accountmapping.Mapper,
	appConfig *config.Config,
) *MappingSyncService {
	syncConfig := MappingSyncConfig{
		CronSchedule: appConfig.MappingSync.CronSchedule,
		SyncEnabled:  appConfig.MappingSync.Enabled,
	}

	logrus.WithFields(logrus.Fields{
		"cron_schedule": syncConfig.CronSchedule,
		"sync_enabled":  syncConfig.SyncEnabled,
	}).Info("Configuração do agendador de sincronização de mapeamentos carregada")

	return &MappingSyncService{
		scheduler: gocron.NewScheduler(time.Local),
		config:    syncConfig,
		repo:      repo,
		mapper:    mapper,
	}
}

// Start inicia o agendador
func (s *MappingSyncService) Start(ctx context.Context) error {
	if !s.config.SyncEnabled {
		logrus.Info("Sincronização de mapeamentos desabilitada por configuração")
		return nil
	}

	logrus.WithField("cron", s.config.CronSchedule).Info("Iniciando agendador de sincronização de mapeamentos")

	_, err := s.scheduler.Cron(s.config.CronSchedule).Do(func() {
		s.syncMappings(context.Background())
	})
	if err != nil {
		return fmt.Errorf("erro ao agendar sincronização de mapeamentos: %w", err)
	}

	s.scheduler.StartAsync()

	go func() {
		<-ctx.Done()
		logrus.Info("Parando agendador de sincronização de mapeamentos")
		s.scheduler.Stop()
	}()

	return nil
}

// RunNow dispara uma sincronização fora do agendamento
func (s *MappingSyncService) RunNow(ctx context.Context) error {
	return s.syncMappings(ctx)
}

// Status devolve o retrato atual do agendador
func (s *MappingSyncService) Status() SyncStatus {
	s.syncMutex.Lock()
	defer s.syncMutex.Unlock()

	status := SyncStatus{
		Enabled:      s.config.SyncEnabled,
		Running:      s.syncRunning,
		CronSchedule: s.config.CronSchedule,
		MappingCount: s.lastMappingCount,
	}
	if !s.lastSyncStartedAt.IsZero() {
		startedAt := s.lastSyncStartedAt
		status.LastStartedAt = &startedAt
	}
	if !s.lastSyncCompletedAt.IsZero() {
		completedAt := s.lastSyncCompletedAt
		status.LastCompletedAt = &completedAt
	}
	if s.lastSyncError != nil {
		status.LastError = s.lastSyncError.Error()
	}
	return status
}

// syncMappings recarrega a tabela de mapeamento do banco para o mapper
func (s *MappingSyncService) syncMappings(ctx context.Context) error {
	s.syncMutex.Lock()
	if s.syncRunning {
		s.syncMutex.Unlock()
		logrus.Info("Sincronização de mapeamentos já em andamento, ignorando")
		return nil
	}
	s.syncRunning = true
	s.lastSyncStartedAt = time.Now()
	s.syncMutex.Unlock()

	defer func() {
		s.syncMutex.Lock()
		s.syncRunning = false
		s.syncMutex.Unlock()
	}()

	logrus.Info("Iniciando sincronização da tabela de mapeamento de contas")

	mappings, err := s.repo.ListMappings(ctx)
	if err != nil {
		logrus.WithError(err).Error("Erro ao carregar mapeamentos do banco")

		s.syncMutex.Lock()
		s.lastSyncError = err
		s.syncMutex.Unlock()
		return err
	}

	if len(mappings) == 0 {
		logrus.Info("Nenhum mapeamento encontrado no banco, tabela atual mantida")

		s.syncMutex.Lock()
		s.lastSyncError = nil
		s.lastSyncCompletedAt = time.Now()
		s.syncMutex.Unlock()
		return nil
	}

	s.mapper.Replace(mappings)

	s.syncMutex.Lock()
	s.lastSyncError = nil
	s.lastMappingCount = len(mappings)
	s.lastSyncCompletedAt = time.Now()
	s.syncMutex.Unlock()

	logrus.WithField("mappings", len(mappings)).Info("Sincronização de mapeamentos concluída")
	return nil
}
