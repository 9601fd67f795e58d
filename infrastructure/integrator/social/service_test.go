package social

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/social/socialclient"
	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/social/socialclient/mocks"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
)

var testRange = domain.ResolvedRange{Start: "2024-03-08", End: "2024-03-15"}

var testAccount = domain.AccountConfig{
	TenantID:    "7d52dc8e-91f0-4bc1-8b7e-2d3f55aa0c11",
	Provider:    domain.ProviderSocial,
	AccountID:   "2841903",
	DisplayName: "Beleza Urbana",
	HasAccount:  true,
}

func testProfile() map[string]any {
	return map[string]any{"label": "Beleza Urbana", "network": "instagram"}
}

func testStats() map[string]any {
	return map[string]any{"followers": float64(10482), "interactions": float64(391)}
}

func testPosts() []map[string]any {
	return []map[string]any{
		{"id": "pst-01", "likes": float64(88)},
		{"id": "pst-02", "likes": float64(54)},
	}
}

func newMockClient(t *testing.T) *mocks.MockClient {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	return mocks.NewMockClient(ctrl)
}

func TestFetch_ComposesSnapshot(t *testing.T) {
	mockClient := newMockClient(t)
	mockClient.EXPECT().GetProfile(gomock.Any(), "2841903").Return(testProfile(), nil)
	mockClient.EXPECT().GetStats(gomock.Any(), "2841903", "20240308", "20240315").Return(testStats(), nil)
	mockClient.EXPECT().GetPosts(gomock.Any(), "2841903", "20240308", "20240315").Return(testPosts(), nil)

	service := New(&config.Config{}, mockClient)

	result, err := service.Fetch(context.Background(), testAccount, testRange)
	require.NoError(t, err)
	require.NotNil(t, result.Social)

	snapshot := result.Social
	assert.Equal(t, testAccount.TenantID, snapshot.TenantID)
	assert.Equal(t, "2841903", snapshot.AccountID)
	assert.Equal(t, testRange, snapshot.DateRange)
	assert.Equal(t, "Beleza Urbana", snapshot.Profile["label"])
	assert.Equal(t, float64(10482), snapshot.Stats["followers"])
	assert.Len(t, snapshot.Posts, 2)
}

func TestFetch_PostsFailureDegradesOnlyPosts(t *testing.T) {
	mockClient := newMockClient(t)
	mockClient.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(testProfile(), nil)
	mockClient.EXPECT().GetStats(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(testStats(), nil)
	mockClient.EXPECT().GetPosts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, &socialclient.RequestError{StatusCode: 500, Body: "internal"})

	service := New(&config.Config{}, mockClient)

	result, err := service.Fetch(context.Background(), testAccount, testRange)
	require.NoError(t, err)

	snapshot := result.Social
	assert.NotNil(t, snapshot.Profile)
	assert.NotNil(t, snapshot.Stats)
	assert.NotNil(t, snapshot.Posts)
	assert.Empty(t, snapshot.Posts)
}

func TestFetch_AllSectionsFailingStillYieldsSnapshot(t *testing.T) {
	mockClient := newMockClient(t)
	failure := errors.New("conexão recusada")
	mockClient.EXPECT().GetProfile(gomock.Any(), gomock.Any()).Return(nil, failure)
	mockClient.EXPECT().GetStats(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, failure)
	mockClient.EXPECT().GetPosts(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, failure)

	service := New(&config.Config{}, mockClient)

	result, err := service.Fetch(context.Background(), testAccount, testRange)
	require.NoError(t, err)

	snapshot := result.Social
	assert.Nil(t, snapshot.Profile)
	assert.Nil(t, snapshot.Stats)
	assert.NotNil(t, snapshot.Posts)
	assert.Empty(t, snapshot.Posts)
}

func TestFetch_PassesCompactDatesToProvider(t *testing.T) {
	mockClient := newMockClient(t)
	mockClient.EXPECT().GetProfile(gomock.Any(), "2841903").Return(testProfile(), nil)
	mockClient.EXPECT().GetStats(gomock.Any(), "2841903", "20241201", "20241231").Return(testStats(), nil)
	mockClient.EXPECT().GetPosts(gomock.Any(), "2841903", "20241201", "20241231").Return(testPosts(), nil)

	service := New(&config.Config{}, mockClient)

	rng := domain.ResolvedRange{Start: "2024-12-01", End: "2024-12-31"}
	result, err := service.Fetch(context.Background(), testAccount, rng)
	require.NoError(t, err)

	// O intervalo ecoado no snapshot mantém o layout hifenizado de entrada
	assert.Equal(t, rng, result.Social.DateRange)
}
