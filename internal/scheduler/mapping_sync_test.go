package scheduler

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/repository/mocks"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/usecases/accountmapping"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.MappingSync.CronSchedule = "*/15 * * * *"
	cfg.MappingSync.Enabled = true
	return cfg
}

func newSyncService(t *testing.T) (*MappingSyncService, *mocks.MockAccountMappingRepository, accountmapping.Mapper) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mocks.NewMockAccountMappingRepository(ctrl)
	mapper := accountmapping.NewService()
	return NewMappingSyncService(repo, mapper, testConfig()), repo, mapper
}

func TestRunNow_ReplacesMappingTable(t *testing.T) {
	service, repo, mapper := newSyncService(t)

	fresh := []domain.AccountConfig{
		{TenantID: "t-nova", Provider: domain.ProviderWebAnalytics, AccountID: "999000111", DisplayName: "Tenant Nova", HasAccount: true},
	}
	repo.EXPECT().ListMappings(gomock.Any()).Return(fresh, nil)

	require.NoError(t, service.RunNow(context.Background()))

	cfg := mapper.MapAccount("t-nova", domain.ProviderWebAnalytics)
	assert.Equal(t, "999000111", cfg.AccountID)

	status := service.Status()
	assert.False(t, status.Running)
	assert.Equal(t, 1, status.MappingCount)
	assert.Empty(t, status.LastError)
	assert.NotNil(t, status.LastCompletedAt)
}

func TestRunNow_EmptyTableKeepsCurrentMappings(t *testing.T) {
	service, repo, mapper := newSyncService(t)
	repo.EXPECT().ListMappings(gomock.Any()).Return([]domain.AccountConfig{}, nil)

	require.NoError(t, service.RunNow(context.Background()))

	// A tabela semente continua respondendo
	cfg := mapper.MapAccount("7d52dc8e-91f0-4bc1-8b7e-2d3f55aa0c11", domain.ProviderWebAnalytics)
	assert.Equal(t, "401238859", cfg.AccountID)
}

func TestRunNow_RepositoryFailureRecordedInStatus(t *testing.T) {
	service, repo, _ := newSyncService(t)
	repo.EXPECT().ListMappings(gomock.Any()).Return(nil, errors.New("conexão recusada"))

	err := service.RunNow(context.Background())
	require.Error(t, err)

	status := service.Status()
	assert.Contains(t, status.LastError, "conexão recusada")
	assert.False(t, status.Running)
}

func TestStart_DisabledIsNoop(t *testing.T) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	cfg := testConfig()
	cfg.MappingSync.Enabled = false

	// Nenhuma expectativa: o agendador desabilitado não toca o repositório
	repo := mocks.NewMockAccountMappingRepository(ctrl)
	service := NewMappingSyncService(repo, accountmapping.NewService(), cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	require.NoError(t, service.Start(ctx))
	assert.False(t, service.Status().Enabled)
}
