// internal/collector/repos.go
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	gogithub "github.com/google/go-github/v62/github"

	apperrors "github-org-board/internal/errors"
	"github-org-board/internal/model"
)

// Repositories lists every repository in the organisation, in API listing
// order (not name-sorted). When publicOnly is set the filtering happens
// server-side via the type=public query parameter, so private repository
// metadata is never materialized when a least-privilege token is in use.
func (c *Collector) Repositories(ctx context.Context, publicOnly bool) ([]model.Repository, error) {
	params := url.Values{}
	if publicOnly {
		params.Set("type", "public")
	}

	pages, err := c.client.PaginatedGet(ctx, c.endpoint("orgs", c.org, "repos"), params)
	if err != nil {
		return nil, fmt.Errorf("failed to list repositories for %s: %w", c.org, err)
	}

	var records []model.Repository
	for _, page := range pages {
		var repos []*gogithub.Repository
		if err := json.Unmarshal(page, &repos); err != nil {
			return nil, fmt.Errorf("failed to decode repository page: %w", err)
		}
		for _, r := range repos {
			records = append(records, toRepository(r))
		}
	}

	c.logger.Info("Collected repositories", "org", c.org, "count", len(records))
	return records, nil
}

// toRepository translates a go-github repository object into our flat record.
func toRepository(r *gogithub.Repository) model.Repository {
	return model.Repository{
		HTMLURL:     r.GetHTMLURL(),
		APIURL:      r.GetURL(),
		IsPrivate:   r.GetPrivate(),
		IsArchived:  r.GetArchived(),
		Name:        r.GetName(),
		Description: r.Description,
		Language:    r.Language,
	}
}

// VerifyPublicOnly is the caller-side failsafe for public-only runs: a
// private repository in the listing means the API contract or the token's
// scope changed underneath us, and the run must halt before anything private
// can reach a public-facing snapshot.
func VerifyPublicOnly(repos []model.Repository) error {
	for _, r := range repos {
		if r.IsPrivate {
			return &apperrors.PrivateRepoError{Repo: r.Name}
		}
	}
	return nil
}

// RepoNames returns the repository names in listing order, the seed for the
// per-repository issue and pull collection passes.
func RepoNames(repos []model.Repository) []string {
	names := make([]string, len(repos))
	for i, r := range repos {
		names[i] = r.Name
	}
	return names
}
