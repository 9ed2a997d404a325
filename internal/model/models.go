// internal/model/models.go
package model

import "time"

// Record type discriminators. The GitHub issues endpoint lists pull requests
// too; TypePR marks rows cross-referenced against the pulls listing.
const (
	TypeIssue = "issue"
	TypePR    = "pr"
)

// Repository represents the metadata of one repository in the organisation
// listing. APIURL is the identity and the join key for the reconciled table.
type Repository struct {
	HTMLURL     string
	APIURL      string
	IsPrivate   bool
	IsArchived  bool
	Name        string
	Description *string
	Language    *string
}

// IssueOrPull is one flattened issue or pull request as returned by a
// collection run, before reconciliation.
//
// AssigneeLogins and AssigneeAvatarURLs are parallel slices with identical
// cardinality. Both are nil (not empty) when the item has no assignees, so
// "no assignees" stays distinguishable from "not populated".
type IssueOrPull struct {
	RepoAPIURL         string
	GlobalID           int64
	NodeID             string
	Title              string
	Body               *string
	Number             int
	Labels             string
	AssigneeLogins     []string
	AssigneeAvatarURLs []string
	CreatedAt          time.Time
	AuthorLogin        string
	AuthorAvatarURL    string
	Type               string
}

// Row is one reconciled snapshot row: an issue or pull request joined with
// its repository metadata. Repository fields are pointers because the join is
// a left join; a row whose repository is missing from the listing keeps nil
// repository fields rather than being dropped.
type Row struct {
	RepoAPIURL         string    `json:"repo_api_url" parquet:"repo_api_url"`
	GlobalID           int64     `json:"global_id" parquet:"global_id"`
	NodeID             string    `json:"node_id" parquet:"node_id"`
	Title              string    `json:"title" parquet:"title"`
	Body               *string   `json:"body" parquet:"body,optional"`
	Number             int32     `json:"number" parquet:"number"`
	Labels             string    `json:"labels" parquet:"labels"`
	AssigneeLogins     []string  `json:"assignee_logins" parquet:"assignee_logins,list"`
	AssigneeAvatarURLs []string  `json:"assignee_avatar_urls" parquet:"assignee_avatar_urls,list"`
	CreatedAt          time.Time `json:"created_at" parquet:"created_at,timestamp"`
	AuthorLogin        string    `json:"author_login" parquet:"author_login"`
	AuthorAvatarURL    string    `json:"author_avatar_url" parquet:"author_avatar_url"`
	Type               string    `json:"type" parquet:"type"`
	RepoHTMLURL        *string   `json:"repo_html_url" parquet:"repo_html_url,optional"`
	RepoIsPrivate      *bool     `json:"repo_is_private" parquet:"repo_is_private,optional"`
	RepoIsArchived     *bool     `json:"repo_is_archived" parquet:"repo_is_archived,optional"`
	RepoName           *string   `json:"repo_name" parquet:"repo_name,optional"`
	RepoDescription    *string   `json:"repo_description" parquet:"repo_description,optional"`
	RepoLanguage       *string   `json:"repo_language" parquet:"repo_language,optional"`
}

// Snapshot is the durable artifact of one pipeline run: the reconciled table
// plus the run metadata the presentation layer displays alongside it.
// IngestedAt is captured in UTC at second precision.
type Snapshot struct {
	Rows       []Row
	IngestedAt time.Time
	OrgName    string
}
