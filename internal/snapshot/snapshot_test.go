// internal/snapshot/snapshot_test.go
package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-org-board/internal/model"
)

func str(s string) *string { return &s }
func boolPtr(b bool) *bool { return &b }

func sampleRows() []model.Row {
	return []model.Row{
		{
			RepoAPIURL:         "https://api.github.com/repos/test-org/alpha",
			GlobalID:           101,
			NodeID:             "I_1",
			Title:              "An issue",
			Body:               str("Details"),
			Number:             2,
			Labels:             "bug, help wanted",
			AssigneeLogins:     []string{"alice", "bob"},
			AssigneeAvatarURLs: []string{"https://avatars.test/alice", "https://avatars.test/bob"},
			CreatedAt:          time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC),
			AuthorLogin:        "carol",
			AuthorAvatarURL:    "https://avatars.test/carol",
			Type:               model.TypeIssue,
			RepoHTMLURL:        str("https://github.com/test-org/alpha"),
			RepoIsPrivate:      boolPtr(false),
			RepoIsArchived:     boolPtr(false),
			RepoName:           str("alpha"),
			RepoDescription:    str("The alpha repo"),
			RepoLanguage:       str("Go"),
		},
		{
			RepoAPIURL:      "https://api.github.com/repos/test-org/beta",
			GlobalID:        201,
			NodeID:          "PR_1",
			Title:           "A pull request",
			Number:          7,
			CreatedAt:       time.Date(2024, 3, 2, 10, 30, 0, 0, time.UTC),
			AuthorLogin:     "dave",
			AuthorAvatarURL: "https://avatars.test/dave",
			Type:            model.TypePR,
			RepoHTMLURL:     str("https://github.com/test-org/beta"),
			RepoIsPrivate:   boolPtr(false),
			RepoIsArchived:  boolPtr(true),
			RepoName:        str("beta"),
		},
	}
}

func TestWriteRead_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	snap := model.Snapshot{
		Rows:       sampleRows(),
		IngestedAt: time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
		OrgName:    "test-org",
	}

	require.NoError(t, Write(dir, snap))

	got, err := Read(dir)
	require.NoError(t, err)

	assert.Equal(t, "test-org", got.OrgName)
	assert.True(t, snap.IngestedAt.Equal(got.IngestedAt), "want %v got %v", snap.IngestedAt, got.IngestedAt)

	require.Len(t, got.Rows, 2)
	first := got.Rows[0]
	assert.Equal(t, int64(101), first.GlobalID)
	assert.Equal(t, "I_1", first.NodeID)
	require.NotNil(t, first.Body)
	assert.Equal(t, "Details", *first.Body)
	assert.Equal(t, []string{"alice", "bob"}, first.AssigneeLogins)
	assert.Equal(t, []string{"https://avatars.test/alice", "https://avatars.test/bob"}, first.AssigneeAvatarURLs)
	assert.True(t, first.CreatedAt.Equal(snap.Rows[0].CreatedAt))
	require.NotNil(t, first.RepoIsArchived)
	assert.False(t, *first.RepoIsArchived)

	second := got.Rows[1]
	assert.Nil(t, second.Body)
	assert.Nil(t, second.AssigneeLogins, "empty assignee lists read back as nil")
	assert.Nil(t, second.AssigneeAvatarURLs)
	assert.Nil(t, second.RepoDescription)
	require.NotNil(t, second.RepoIsArchived)
	assert.True(t, *second.RepoIsArchived)
}

func TestWrite_EmptyTableKeepsSchema(t *testing.T) {
	dir := t.TempDir()
	snap := model.Snapshot{
		Rows:       []model.Row{},
		IngestedAt: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		OrgName:    "empty-org",
	}

	require.NoError(t, Write(dir, snap))

	got, err := Read(dir)
	require.NoError(t, err)
	assert.Empty(t, got.Rows)
	assert.Equal(t, "empty-org", got.OrgName)
}

func TestWrite_MetadataArtifacts(t *testing.T) {
	dir := t.TempDir()
	snap := model.Snapshot{
		IngestedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		OrgName:    "test-org",
	}
	require.NoError(t, Write(dir, snap))

	stamp, err := os.ReadFile(filepath.Join(dir, DateFile))
	require.NoError(t, err)
	assert.Equal(t, "Date of Ingest: 2024-01-01 12:00:00\n", string(stamp))

	org, err := os.ReadFile(filepath.Join(dir, OrgFile))
	require.NoError(t, err)
	assert.Equal(t, "test-org\n", string(org))
}

func TestWrite_DoesNotLeaveTempFiles(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, Write(dir, model.Snapshot{IngestedAt: time.Now(), OrgName: "x"}))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{TableFile, DateFile, OrgFile}, names)
}

func TestDisplayDate(t *testing.T) {
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, "Date of Ingest: 2024-01-01 12:00:00", DisplayDate(ts))
}
