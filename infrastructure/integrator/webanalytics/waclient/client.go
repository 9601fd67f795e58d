package waclient

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

	wadomain "github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/webanalytics/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
)

// ErrMissingCredentials indica credencial do provider ausente na configuração
var ErrMissingCredentials = errors.New("credencial do provider de web analytics ausente")

// RequestError é uma resposta não-2xx do provider
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("provider de web analytics respondeu %d: %s", e.StatusCode, e.Body)
}

// IsAuthStatus indica se a resposta foi uma rejeição de credencial
func (e *RequestError) IsAuthStatus() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

type Client interface {
	RunReport(ctx context.Context, propertyID string, req *wadomain.ReportRequest) (*wadomain.ReportResponse, error)
}

type WAClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &WAClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}

// RunReport executa uma consulta de relatório contra uma property
func (c *WAClient) RunReport(ctx context.Context, propertyID string, reportReq *wadomain.ReportRequest) (*wadomain.ReportResponse, error) {
	if c.config.WebAnalytics.AccessToken == "" {
		return nil, ErrMissingCredentials
	}

	url := fmt.Sprintf("%s/properties/%s:runReport", c.config.WebAnalytics.URL, propertyID)

	payload, err := json.Marshal(reportReq)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao serializar a consulta de relatório")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, errors.Wrap(err, "erro ao criar a requisição de relatório")
	}

	req.Header.Set("Authorization", "Bearer "+c.config.WebAnalytics.AccessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao consultar o provider de web analytics")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao ler a resposta do provider")
	}

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"property_id": propertyID,
			"status_code": resp.StatusCode,
		}).Error("webanalytics: report query rejected by provider")

		return nil, &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var response wadomain.ReportResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return nil, errors.Wrap(err, "erro ao decodificar a resposta de relatório")
	}

	return &response, nil
}
