// internal/reconcile/reconcile.go

// Package reconcile combines the repository, issue and pull-request listings
// into the single flat table the snapshot persists. The issues endpoint lists
// every pull request as an issue (but not vice versa), so true issues are
// recovered by an anti-join against the pulls listing on node_id.
package reconcile

import (
	"strings"

	"github-org-board/internal/model"
)

// NormalizePullURL truncates a pull-request resource URL
// (.../repos/{org}/{repo}/pulls/{number}) to the repository-level URL shape
// used by the repos and issues endpoints. Applying it to an already
// repository-shaped URL is a no-op, so normalization never double-strips.
func NormalizePullURL(u string) string {
	if idx := strings.Index(u, "/pulls/"); idx >= 0 {
		return u[:idx]
	}
	return u
}

// Combine builds the reconciled table from the three listings:
//
//  1. Pull URLs are normalized to the repository-URL shape and pull rows are
//     tagged as PRs.
//  2. Issues whose node_id also appears in the pulls listing are discarded
//     (they are pull requests wearing their issue representation); the
//     survivors are tagged as issues.
//  3. Filtered issues and pulls are concatenated and left-joined against the
//     repository listing on the normalized URL. The join never drops a row:
//     a missing repository leaves the repository fields nil.
//
// An organisation with no repositories (or no issues and no pulls) yields an
// empty, correctly shaped table.
func Combine(repos []model.Repository, issues, pulls []model.IssueOrPull) []model.Row {
	pullNodeIDs := make(map[string]struct{}, len(pulls))
	for _, p := range pulls {
		pullNodeIDs[p.NodeID] = struct{}{}
	}

	combined := make([]model.IssueOrPull, 0, len(issues)+len(pulls))
	for _, is := range issues {
		if _, isPull := pullNodeIDs[is.NodeID]; isPull {
			continue
		}
		is.Type = model.TypeIssue
		combined = append(combined, is)
	}
	for _, p := range pulls {
		p.RepoAPIURL = NormalizePullURL(p.RepoAPIURL)
		p.Type = model.TypePR
		combined = append(combined, p)
	}

	repoByURL := make(map[string]model.Repository, len(repos))
	for _, r := range repos {
		repoByURL[r.APIURL] = r
	}

	rows := make([]model.Row, 0, len(combined))
	for _, rec := range combined {
		row := model.Row{
			RepoAPIURL:         rec.RepoAPIURL,
			GlobalID:           rec.GlobalID,
			NodeID:             rec.NodeID,
			Title:              rec.Title,
			Body:               rec.Body,
			Number:             int32(rec.Number),
			Labels:             rec.Labels,
			AssigneeLogins:     rec.AssigneeLogins,
			AssigneeAvatarURLs: rec.AssigneeAvatarURLs,
			CreatedAt:          rec.CreatedAt,
			AuthorLogin:        rec.AuthorLogin,
			AuthorAvatarURL:    rec.AuthorAvatarURL,
			Type:               rec.Type,
		}
		if r, found := repoByURL[rec.RepoAPIURL]; found {
			row.RepoHTMLURL = &r.HTMLURL
			row.RepoIsPrivate = &r.IsPrivate
			row.RepoIsArchived = &r.IsArchived
			row.RepoName = &r.Name
			row.RepoDescription = r.Description
			row.RepoLanguage = r.Language
		}
		rows = append(rows, row)
	}

	return rows
}
