package adsclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	adsdomain "github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/adplatform/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
)

// ErrMissingCredentials indica credencial do provider ausente na configuração
var ErrMissingCredentials = errors.New("credencial do provider de anúncios ausente")

// RequestError é uma resposta não-2xx do provider
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("provider de anúncios respondeu %d: %s", e.StatusCode, e.Body)
}

func (e *RequestError) IsAuthStatus() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

type Client interface {
	Search(ctx context.Context, customerID, query string) ([]adsdomain.Result, error)
}

type AdsClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &AdsClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}

// Search executa uma consulta na linguagem do provider e achata os chunks
// da resposta em uma lista única de resultados
func (c *AdsClient) Search(ctx context.Context, customerID, query string) ([]adsdomain.Result, error) {
	missing := c.missingCredentials()
	if len(missing) > 0 {
		return nil, ErrMissingCredentials
	}

	url := fmt.Sprintf("%s/customers/%s/googleAds:searchStream", c.config.Advertising.URL, customerID)

	payload, err := json.Marshal(map[string]string{"query": query})
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar a consulta")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição de consulta")
	}

	req.Header.Set("Authorization", "Bearer "+c.config.Advertising.AccessToken)
	req.Header.Set("developer-token", c.config.Advertising.DeveloperToken)
	if c.config.Advertising.LoginCustomerID != "" {
		req.Header.Set("login-customer-id", c.config.Advertising.LoginCustomerID)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar o provider de anúncios")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta do provider")
	}

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"customer_id": customerID,
			"status_code": resp.StatusCode,
		}).Error("adplatform: search query rejected by provider")

		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var chunks []adsdomain.SearchChunk
	if err := json.Unmarshal(body, &chunks); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta de consulta")
	}

	results := make([]adsdomain.Result, 0)
	for _, chunk := range chunks {
		results = append(results, chunk.Results...)
	}

	return results, nil
}

// missingCredentials lista as variáveis de configuração ausentes
func (c *AdsClient) missingCredentials() []string {
	missing := make([]string, 0, 2)
	if c.config.Advertising.AccessToken == "" {
		missing = append(missing, "ADVERTISING_ACCESS_TOKEN")
	}
	if c.config.Advertising.DeveloperToken == "" {
		missing = append(missing, "ADVERTISING_DEVELOPER_TOKEN")
	}
	return missing
}
