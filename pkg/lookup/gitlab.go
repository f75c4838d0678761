package lookup

import (
	"context"
	"fmt"
	"net/http"

	"gitlab.com/gitlab-org/api/client-go"
)

// GitLabConfig configures the GitLab identity provider.
type GitLabConfig struct {
	Token   string
	BaseURL string // Optional, defaults to gitlab.com
}

// GitLab resolves owner identities against the GitLab API. Users map to
// GitLab users and teams map to groups, matching how GitLab's own
// CODEOWNERS syntax reads @user and @group/subgroup entries.
type GitLab struct {
	client *gitlab.Client
}

// NewGitLab creates a GitLab lookup.
func NewGitLab(cfg GitLabConfig) (*GitLab, error) {
	var client *gitlab.Client
	var err error

	if cfg.BaseURL != "" {
		client, err = gitlab.NewClient(cfg.Token, gitlab.WithBaseURL(cfg.BaseURL))
	} else {
		client, err = gitlab.NewClient(cfg.Token)
	}
	if err != nil {
		return nil, fmt.Errorf("creating GitLab client: %w", err)
	}

	return &GitLab{client: client}, nil
}

func (g *GitLab) UserExists(ctx context.Context, name string) (bool, error) {
	users, _, err := g.client.Users.ListUsers(
		&gitlab.ListUsersOptions{Username: gitlab.Ptr(name)},
		gitlab.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("listing users for %s: %w", name, err)
	}
	return len(users) > 0, nil
}

func (g *GitLab) TeamExists(ctx context.Context, org, team string) (TeamStatus, error) {
	path := org + "/" + team
	_, resp, err := g.client.Groups.GetGroup(path, nil, gitlab.WithContext(ctx))
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
	return "", fmt.Errorf("getting group %s: %w", path, err)
}
