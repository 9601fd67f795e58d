package tenanting

import (
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"

	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/portal/portalclient"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
)

// Resolver mapeia o token de sessão para o tenant (empresa). Nunca falha:
// qualquer problema de resolução degrada para o tenant default, que é um
// tenant legítimo de demonstração e não um estado de erro. A ausência total
// de token é rejeitada antes, no middleware, porque "sem token" é falha de
// autenticação e "token presente mas irresolúvel" é degradação
type Resolver interface {
	Resolve(token string) string
}

// SessionClaims é o payload dos tokens JWT emitidos pelo portal, usado no
// fallback quando o serviço de identidade não está configurado
type SessionClaims struct {
	CompanyID string `json:"companyId"`
	ClientID  string `json:"clientId"`
	jwt.RegisteredClaims
}

type Service struct {
	cfg    *config.Config
	client portalclient.Client
}

func NewService(cfg *config.Config, client portalclient.Client) Resolver {
	return &Service{
		cfg:    cfg,
		client: client,
	}
}

func (s *Service) Resolve(token string) string {
	if token == "" {
		return domain.DefaultTenantID
	}

	if s.cfg.Portal.URL != "" && s.client != nil {
		session, err := s.client.ResolveSession(token)
		if err == nil {
			logrus.WithField("tenant_id", session.CompanyID).
				Debug("tenanting: session resolved by portal")
			return session.CompanyID
		}

		logrus.WithError(err).
			Warn("tenanting: portal resolution failed, falling back")
	}

	if tenantID := s.resolveFromJWT(token); tenantID != "" {
		return tenantID
	}

	logrus.Info("tenanting: unresolvable session token, using default tenant")
	return domain.DefaultTenantID
}

// resolveFromJWT tenta interpretar o token como um JWT do portal assinado
// com o segredo compartilhado
func (s *Service) resolveFromJWT(tokenString string) string {
	if s.cfg.Auth.Secret == "" {
		return ""
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(s.cfg.Auth.Secret), nil
	})
	if err != nil || !token.Valid {
		return ""
	}

	return claims.CompanyID
}
