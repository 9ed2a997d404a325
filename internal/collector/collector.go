// internal/collector/collector.go
package collector

import (
	"log/slog"
	"strings"

	apperrors "github-org-board/internal/errors"
	"github-org-board/internal/github"
)

// Collector gathers repository and issue/PR listings for one organisation.
// It issues one blocking request at a time; the sequencing plus the fetcher's
// backoff is what keeps the run inside the per-credential rate limit.
type Collector struct {
	client  *github.Client
	logger  *slog.Logger
	baseURL string
	org     string
}

// New creates a Collector for the given organisation. baseURL is the API
// root without a trailing slash, e.g. "https://api.github.com".
func New(client *github.Client, logger *slog.Logger, baseURL, org string) *Collector {
	return &Collector{
		client:  client,
		logger:  logger,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		org:     org,
	}
}

func (c *Collector) endpoint(parts ...string) string {
	return c.baseURL + "/" + strings.Join(parts, "/")
}

// parseIssueType validates the issue/PR mode selector. The match is
// case-insensitive and substring-tolerant: "Issues", "issue", "pulls" and
// "pull requests" all resolve. Anything else fails before any network call.
func parseIssueType(issueType string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(issueType))
	switch {
	case strings.Contains(normalized, "issue"):
		return "issues", nil
	case strings.Contains(normalized, "pull"):
		return "pulls", nil
	default:
		return "", &apperrors.InvalidIssueTypeError{Mode: issueType}
	}
}
