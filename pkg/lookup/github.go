package lookup

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubConfig configures the GitHub identity provider.
type GitHubConfig struct {
	Token   string // GitHub API token; anonymous access works but is tightly rate-limited
	BaseURL string // Optional, for GitHub Enterprise instances
}

// GitHub resolves owner identities against the GitHub API. A 404 means the
// identity is absent; a 401 or 403 means the token cannot see it, which for
// teams is reported as unauthorized rather than missing.
type GitHub struct {
	client *github.Client
}

// NewGitHub creates an authenticated GitHub lookup.
func NewGitHub(cfg GitHubConfig) (*GitHub, error) {
	var tc *http.Client
	if cfg.Token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		tc = oauth2.NewClient(context.Background(), ts)
	}
	client := github.NewClient(tc)

	if cfg.BaseURL != "" {
		var err error
		client, err = client.WithEnterpriseURLs(cfg.BaseURL, cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("configuring GitHub base URL: %w", err)
		}
	}

	return &GitHub{client: client}, nil
}

func (g *GitHub) UserExists(ctx context.Context, name string) (bool, error) {
	_, resp, err := g.client.Users.Get(ctx, name)
	if err == nil {
		return true, nil
	}
	if resp != nil && resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	return false, fmt.Errorf("getting user %s: %w", name, err)
}

func (g *GitHub) TeamExists(ctx context.Context, org, team string) (TeamStatus, error) {
	_, resp, err := g.client.Teams.GetTeamBySlug(ctx, org, team)
	if err == nil {
		return TeamStatusExists, nil
	}
	if resp != nil {
		switch resp.StatusCode {
		case http.StatusNotFound:
			return TeamStatusNotFound, nil
		case http.StatusUnauthorized, http.StatusForbidden:
			return TeamStatusUnauthorized, nil
		}
	}
	return "", fmt.Errorf("getting team %s/%s: %w", org, team, err)
}
