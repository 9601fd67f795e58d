package social

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/AU-Client-Portal/analytics-dashboard-api/infrastructure/integrator/social/socialclient"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/config"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/daterange"
	"github.com/AU-Client-Portal/analytics-dashboard-api/internal/domain"
	"github.com/AU-Client-Portal/analytics-dashboard-api/pkg/utils"
)

type SocialIntegrator struct {
	cfg    *config.Config
	Client socialclient.Client
}

func New(cfg *config.Config, client socialclient.Client) *SocialIntegrator {
	return &SocialIntegrator{
		cfg:    cfg,
		Client: client,
	}
}

func (s *SocialIntegrator) Provider() domain.Provider {
	return domain.ProviderSocial
}

// Fetch emite as três chamadas do provider em paralelo: perfil, estatísticas
// do período e publicações recentes. Cada seção degrada de forma independente:
// a falha de uma chamada zera apenas a seção correspondente e nunca derruba o
// painel inteiro. Este provider é a integração menos madura das três e o
// payload é repassado sem normalização
func (s *SocialIntegrator) Fetch(ctx context.Context, accountCfg domain.AccountConfig, rng domain.ResolvedRange) (*domain.PanelResult, error) {
	compact := daterange.CompactRange(rng)

	var (
		profile    map[string]any
		stats      map[string]any
		posts      []map[string]any
		profileErr error
		statsErr   error
		postsErr   error
	)

	wg := sync.WaitGroup{}
	wg.Add(3)

	go func() {
		defer wg.Done()
		profile, profileErr = s.Client.GetProfile(ctx, accountCfg.AccountID)
	}()

	go func() {
		defer wg.Done()
		stats, statsErr = s.Client.GetStats(ctx, accountCfg.AccountID, compact.Start, compact.End)
	}()

	go func() {
		defer wg.Done()
		posts, postsErr = s.Client.GetPosts(ctx, accountCfg.AccountID, compact.Start, compact.End)
	}()

	wg.Wait()

	for section, err := range map[string]error{
		"profile": profileErr,
		"stats":   statsErr,
		"posts":   postsErr,
	} {
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"blog_id":    accountCfg.AccountID,
				"section":    section,
				"start_date": compact.Start,
				"end_date":   compact.End,
				"error":      err.Error(),
			}).Warn("social: section call failed, degrading to empty")
		}
	}

	if profile != nil && logrus.IsLevelEnabled(logrus.DebugLevel) {
		logrus.WithField("blog_id", accountCfg.AccountID).
			Debug("social: raw profile payload\n", utils.PrettyJson(profile))
	}

	snapshot := &domain.SocialSnapshot{
		TenantID:  accountCfg.TenantID,
		AccountID: accountCfg.AccountID,
		DateRange: rng,
		Profile:   profile,
		Stats:     stats,
		Posts:     posts,
	}
	if snapshot.Posts == nil {
		snapshot.Posts = make([]map[string]any, 0)
	}

	return &domain.PanelResult{
		Provider: domain.ProviderSocial,
		TenantID: accountCfg.TenantID,
		Social:   snapshot,
	}, nil
}
