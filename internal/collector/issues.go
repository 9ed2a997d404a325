// internal/collector/issues.go
package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	gogithub "github.com/google/go-github/v62/github"

	"github-org-board/internal/model"
)

// IssuesOrPulls lists every issue (or pull request, depending on issueType)
// across the given repositories, one repository at a time, and returns the
// concatenated records sorted by creation time ascending. The sort is a
// contract: the reconciler depends on it for deterministic output.
//
// Repositories with an empty collection contribute zero rows; that is normal,
// not an error.
func (c *Collector) IssuesOrPulls(ctx context.Context, repoNames []string, issueType string) ([]model.IssueOrPull, error) {
	endpoint, err := parseIssueType(issueType)
	if err != nil {
		return nil, err
	}

	var records []model.IssueOrPull
	total := len(repoNames)
	for i, name := range repoNames {
		c.logger.Info("Collecting "+endpoint, "repo", name, "progress", fmt.Sprintf("%d/%d", i+1, total))

		pages, err := c.client.PaginatedGet(ctx, c.endpoint("repos", c.org, name, endpoint), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to list %s for %s/%s: %w", endpoint, c.org, name, err)
		}

		for _, page := range pages {
			flattened, err := flattenPage(page, endpoint)
			if err != nil {
				return nil, fmt.Errorf("failed to decode %s page for %s/%s: %w", endpoint, c.org, name, err)
			}
			records = append(records, flattened...)
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].CreatedAt.Before(records[j].CreatedAt)
	})

	return records, nil
}

func flattenPage(page json.RawMessage, endpoint string) ([]model.IssueOrPull, error) {
	if endpoint == "pulls" {
		var pulls []*gogithub.PullRequest
		if err := json.Unmarshal(page, &pulls); err != nil {
			return nil, err
		}
		records := make([]model.IssueOrPull, 0, len(pulls))
		for _, p := range pulls {
			records = append(records, toPullRecord(p))
		}
		return records, nil
	}

	var issues []*gogithub.Issue
	if err := json.Unmarshal(page, &issues); err != nil {
		return nil, err
	}
	records := make([]model.IssueOrPull, 0, len(issues))
	for _, is := range issues {
		records = append(records, toIssueRecord(is))
	}
	return records, nil
}

// toIssueRecord flattens one issue. The issues endpoint carries the
// repository-level URL directly in repository_url.
func toIssueRecord(is *gogithub.Issue) model.IssueOrPull {
	logins, avatars := flattenAssignees(is.Assignees)
	return model.IssueOrPull{
		RepoAPIURL:         is.GetRepositoryURL(),
		GlobalID:           is.GetID(),
		NodeID:             is.GetNodeID(),
		Title:              is.GetTitle(),
		Body:               is.Body,
		Number:             is.GetNumber(),
		Labels:             joinLabels(is.Labels),
		AssigneeLogins:     logins,
		AssigneeAvatarURLs: avatars,
		CreatedAt:          is.GetCreatedAt().Time,
		AuthorLogin:        is.GetUser().GetLogin(),
		AuthorAvatarURL:    is.GetUser().GetAvatarURL(),
	}
}

// toPullRecord flattens one pull request. The pulls endpoint has no
// repository_url field; the resource URL (which embeds /pulls/<number>) is
// recorded as-is and normalized to the repository-level shape by the
// reconciler.
func toPullRecord(p *gogithub.PullRequest) model.IssueOrPull {
	logins, avatars := flattenAssignees(p.Assignees)
	return model.IssueOrPull{
		RepoAPIURL:         p.GetURL(),
		GlobalID:           p.GetID(),
		NodeID:             p.GetNodeID(),
		Title:              p.GetTitle(),
		Body:               p.Body,
		Number:             p.GetNumber(),
		Labels:             joinLabels(p.Labels),
		AssigneeLogins:     logins,
		AssigneeAvatarURLs: avatars,
		CreatedAt:          p.GetCreatedAt().Time,
		AuthorLogin:        p.GetUser().GetLogin(),
		AuthorAvatarURL:    p.GetUser().GetAvatarURL(),
	}
}

// flattenAssignees prefers the plural assignees array over the singular
// assignee field: both may be populated but the plural is authoritative and
// can hold zero, one or many users. An empty array yields nil slices so that
// "no assignees" is distinguishable from an empty value.
func flattenAssignees(assignees []*gogithub.User) (logins, avatars []string) {
	if len(assignees) == 0 {
		return nil, nil
	}
	logins = make([]string, 0, len(assignees))
	avatars = make([]string, 0, len(assignees))
	for _, u := range assignees {
		logins = append(logins, u.GetLogin())
		avatars = append(avatars, u.GetAvatarURL())
	}
	return logins, avatars
}

func joinLabels(labels []*gogithub.Label) string {
	names := make([]string, 0, len(labels))
	for _, lb := range labels {
		names = append(names, lb.GetName())
	}
	return strings.Join(names, ", ")
}
