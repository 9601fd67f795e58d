package socialclient

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
)

// ErrMissingCredentials indica credencial do provider ausente na configuração
var ErrMissingCredentials = errors.New("credencial do provider de social media ausente")

// RequestError é uma resposta não-2xx do provider
type RequestError struct {
	StatusCode int
	Body       string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("provider de social media respondeu %d: %s", e.StatusCode, e.Body)
}

func (e *RequestError) IsAuthStatus() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// Client cobre as três chamadas independentes do provider de social media.
// O esquema de resposta deste provider ainda não é estável, então os payloads
// são repassados sem tipagem
type Client interface {
	GetProfile(ctx context.Context, blogID string) (map[string]any, error)
	GetStats(ctx context.Context, blogID, start, end string) (map[string]any, error)
	GetPosts(ctx context.Context, blogID, start, end string) ([]map[string]any, error)
}

type SocialClient struct {
	httpClient *http.Client
	config     *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &SocialClient{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		config: cfg,
	}
}

// GetProfile busca os metadados da conta/perfil
func (c *SocialClient) GetProfile(ctx context.Context, blogID string) (map[string]any, error) {
	var profile map[string]any
	err := c.get(ctx, "/admin/simpleProfiles", url.Values{"blogId": {blogID}}, &profile)
	if err != nil {
		return nil, err
	}
	return profile, nil
}

// GetStats busca as estatísticas agregadas do período. As datas chegam já no
// formato compacto exigido pelo provider
func (c *SocialClient) GetStats(ctx context.Context, blogID, start, end string) (map[string]any, error) {
	query := url.Values{
		"blogId": {blogID},
		"start":  {start},
		"end":    {end},
	}

	var stats map[string]any
	if err := c.get(ctx, "/stats/summary", query, &stats); err != nil {
		return nil, err
	}
	return stats, nil
}

// GetPosts busca a lista de publicações recentes do período, limitada pela
// configuração SOCIAL_POST_LIMIT
func (c *SocialClient) GetPosts(ctx context.Context, blogID, start, end string) ([]map[string]any, error) {
	query := url.Values{
		"blogId": {blogID},
		"start":  {start},
		"end":    {end},
		"limit":  {strconv.Itoa(c.config.Social.PostLimit)},
	}

	var posts []map[string]any
	if err := c.get(ctx, "/stats/posts", query, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

func (c *SocialClient) get(ctx context.Context, path string, query url.Values, out any) error {
	if c.config.Social.UserID == "" || c.config.Social.UserToken == "" {
		return ErrMissingCredentials
	}

	query.Set("userId", c.config.Social.UserID)
	query.Set("userToken", c.config.Social.UserToken)

	endpoint := fmt.Sprintf("%s%s?%s", c.config.Social.URL, path, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return errors.Wrap(err, "erro ao criar a requisição de social media")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "erro ao consultar o provider de social media")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "erro ao ler a resposta do provider")
	}

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"path":        path,
			"status_code": resp.StatusCode,
		}).Error("social: request rejected by provider")

		return &RequestError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "erro ao decodificar a resposta de social media")
	}

	return nil
}
