// internal/snapshot/csv.go
package snapshot

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github-org-board/internal/model"
)

var csvHeader = []string{
	"repo_api_url", "global_id", "node_id", "title", "body", "number",
	"labels", "assignee_logins", "assignee_avatar_urls", "created_at",
	"author_login", "author_avatar_url", "type", "repo_html_url",
	"repo_is_private", "repo_is_archived", "repo_name", "repo_description",
	"repo_language",
}

// WriteCSV renders rows (typically an already filtered view) as CSV.
// Nullable fields render as empty cells and the assignee lists as
// comma-joined values, matching how the table view presents them.
func WriteCSV(w io.Writer, rows []model.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.RepoAPIURL,
			strconv.FormatInt(row.GlobalID, 10),
			row.NodeID,
			row.Title,
			strOrEmpty(row.Body),
			strconv.FormatInt(int64(row.Number), 10),
			row.Labels,
			strings.Join(row.AssigneeLogins, ", "),
			strings.Join(row.AssigneeAvatarURLs, ", "),
			row.CreatedAt.UTC().Format(time.RFC3339),
			row.AuthorLogin,
			row.AuthorAvatarURL,
			row.Type,
			strOrEmpty(row.RepoHTMLURL),
			boolOrEmpty(row.RepoIsPrivate),
			boolOrEmpty(row.RepoIsArchived),
			strOrEmpty(row.RepoName),
			strOrEmpty(row.RepoDescription),
			strOrEmpty(row.RepoLanguage),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func boolOrEmpty(b *bool) string {
	if b == nil {
		return ""
	}
	return strconv.FormatBool(*b)
}
