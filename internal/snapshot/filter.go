// internal/snapshot/filter.go
package snapshot

import (
	"strings"

	"github-org-board/internal/model"
)

// TypeAll selects both issues and pull requests.
const TypeAll = "all"

// ParseTypeFilter resolves a type-filter string to one of TypeAll,
// model.TypeIssue or model.TypePR. The match is case-insensitive and
// substring-tolerant ("issues", "pull requests" and "pr" all resolve); an
// empty string means TypeAll. The second return value reports whether the
// input was recognised.
func ParseTypeFilter(s string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(s))
	switch {
	case normalized == "" || normalized == TypeAll:
		return TypeAll, true
	case strings.Contains(normalized, "issue"):
		return model.TypeIssue, true
	case strings.Contains(normalized, "pull"), normalized == "pr", normalized == "prs":
		return model.TypePR, true
	default:
		return TypeAll, false
	}
}

// Filter returns the rows matching the given repository and type predicates:
// an empty repoNames slice matches every repository, TypeAll matches every
// record type, and when both filters are set they combine with logical AND.
func Filter(rows []model.Row, repoNames []string, recordType string) []model.Row {
	wantRepo := make(map[string]struct{}, len(repoNames))
	for _, name := range repoNames {
		wantRepo[name] = struct{}{}
	}

	out := make([]model.Row, 0, len(rows))
	for _, row := range rows {
		if len(wantRepo) > 0 {
			if row.RepoName == nil {
				continue
			}
			if _, found := wantRepo[*row.RepoName]; !found {
				continue
			}
		}
		if recordType != TypeAll && recordType != "" && row.Type != recordType {
			continue
		}
		out = append(out, row)
	}
	return out
}
