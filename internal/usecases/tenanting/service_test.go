package tenanting

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/portal/portalclient"
	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/portal/portalclient/mocks"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
)

func TestResolve_PortalSession(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().
		ResolveSession("token-abc").
		Return(&portalclient.Session{CompanyID: "7d52dc8e-91f0-4bc1-8b7e-2d3f55aa0c11"}, nil)

	cfg := &config.Config{}
	cfg.Portal.URL = "https://api.portal.test"

	service := NewService(cfg, mockClient)

	assert.Equal(t, "7d52dc8e-91f0-4bc1-8b7e-2d3f55aa0c11", service.Resolve("token-abc"))
}

func TestResolve_PortalFailureDegradesToDefault(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockClient := mocks.NewMockClient(ctrl)
	mockClient.EXPECT().
		ResolveSession("token-abc").
		Return(nil, errors.New("portal indisponível"))

	cfg := &config.Config{}
	cfg.Portal.URL = "https://api.portal.test"

	service := NewService(cfg, mockClient)

	// Falha do serviço de identidade nunca propaga: degrada para o default
	assert.Equal(t, domain.DefaultTenantID, service.Resolve("token-abc"))
}

func TestResolve_EmptyTokenIsDefault(t *testing.T) {
	service := NewService(&config.Config{}, nil)
	assert.Equal(t, domain.DefaultTenantID, service.Resolve(""))
}

func TestResolve_JWTFallback(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.Secret = "segredo-compartilhado"

	claims := &SessionClaims{
		CompanyID: "empresa-42",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(cfg.Auth.Secret))
	require.NoError(t, err)

	service := NewService(cfg, nil)

	assert.Equal(t, "empresa-42", service.Resolve(signed))
}

func TestResolve_MalformedTokenIsDefault(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.Secret = "segredo-compartilhado"

	service := NewService(cfg, nil)

	assert.Equal(t, domain.DefaultTenantID, service.Resolve("nao-e-um-jwt"))
}

func TestResolve_WrongSignatureIsDefault(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth.Secret = "segredo-compartilhado"

	claims := &SessionClaims{CompanyID: "empresa-42"}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("outro-segredo"))
	require.NoError(t, err)

	service := NewService(cfg, nil)

	assert.Equal(t, domain.DefaultTenantID, service.Resolve(signed))
}
