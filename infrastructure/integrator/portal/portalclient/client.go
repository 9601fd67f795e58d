package portalclient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/log"
)

// Client fala com o serviço de identidade do portal do cliente
type Client interface {
	ResolveSession(token string) (*Session, error)
}

// Session é o payload de sessão devolvido pelo portal
type Session struct {
	CompanyID string `json:"companyId"`
	ClientID  string `json:"clientId"`
}

type PortalClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &PortalClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		config: cfg,
	}
}

// ResolveSession troca o token de sessão opaco pela sessão do portal.
// Qualquer falha aqui é do serviço de identidade: quem decide degradar para
// o tenant default é o chamador
func (c *PortalClient) ResolveSession(token string) (*Session, error) {
	url := fmt.Sprintf("%s/v1/sessions/current", c.config.Portal.URL)

	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição de sessão")
	}

	req.Header.Set("X-API-KEY", c.config.Portal.APIKey)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar o serviço de identidade do portal")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta do portal")
	}

	if resp.StatusCode != http.StatusOK {
		log.L.WithFields(log.Fields{
			"status_code": resp.StatusCode,
		}).Warn("portal: session resolution rejected")
		return nil, errors.Errorf("portal respondeu %d", resp.StatusCode)
	}

	var session Session
	if err := json.Unmarshal(body, &session); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a sessão do portal")
	}

	if session.CompanyID == "" {
		return nil, errors.New("sessão sem companyId")
	}

	return &session, nil
}
