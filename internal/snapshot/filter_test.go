// internal/snapshot/filter_test.go
package snapshot

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github-org-board/internal/model"
)

func filterRows() []model.Row {
	return []model.Row{
		{NodeID: "I_1", Type: model.TypeIssue, RepoName: str("repo-x")},
		{NodeID: "PR_1", Type: model.TypePR, RepoName: str("repo-x")},
		{NodeID: "I_2", Type: model.TypeIssue, RepoName: str("repo-y")},
		{NodeID: "PR_2", Type: model.TypePR, RepoName: str("repo-y")},
		{NodeID: "I_orphan", Type: model.TypeIssue}, // repo join missed
	}
}

func TestParseTypeFilter(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"", TypeAll, true},
		{"all", TypeAll, true},
		{"ALL", TypeAll, true},
		{"issues", model.TypeIssue, true},
		{"Issue", model.TypeIssue, true},
		{"pull requests", model.TypePR, true},
		{"pr", model.TypePR, true},
		{"prs", model.TypePR, true},
		{"bogus", TypeAll, false},
	}
	for _, tc := range cases {
		got, ok := ParseTypeFilter(tc.in)
		assert.Equal(t, tc.want, got, tc.in)
		assert.Equal(t, tc.wantOK, ok, tc.in)
	}
}

func TestFilter(t *testing.T) {
	rows := filterRows()

	t.Run("no filters returns the full table", func(t *testing.T) {
		assert.Len(t, Filter(rows, nil, TypeAll), len(rows))
	})

	t.Run("type filter alone", func(t *testing.T) {
		issues := Filter(rows, nil, model.TypeIssue)
		assert.Len(t, issues, 3)
		for _, row := range issues {
			assert.Equal(t, model.TypeIssue, row.Type)
		}
	})

	t.Run("repository filter alone matches any selected repo", func(t *testing.T) {
		got := Filter(rows, []string{"repo-x", "repo-y"}, TypeAll)
		assert.Len(t, got, 4)
	})

	t.Run("both filters combine with logical AND", func(t *testing.T) {
		got := Filter(rows, []string{"repo-x"}, model.TypeIssue)
		require.Len(t, got, 1)
		assert.Equal(t, "I_1", got[0].NodeID)
		assert.Equal(t, "repo-x", *got[0].RepoName)
		assert.Equal(t, model.TypeIssue, got[0].Type)
	})

	t.Run("rows without repository metadata never match a repo filter", func(t *testing.T) {
		got := Filter(rows, []string{"repo-x"}, TypeAll)
		for _, row := range got {
			require.NotNil(t, row.RepoName)
		}
	})

	t.Run("unknown repository matches nothing", func(t *testing.T) {
		assert.Empty(t, Filter(rows, []string{"repo-z"}, TypeAll))
	})
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleRows()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus two rows")

	header := records[0]
	assert.Equal(t, csvHeader, header)

	first := records[1]
	require.Len(t, first, len(header))
	assert.Equal(t, "101", first[1])
	assert.Equal(t, "I_1", first[2])
	assert.Equal(t, "alice, bob", first[7])
	assert.Equal(t, "2024-03-01T09:00:00Z", first[9])
	assert.Equal(t, "false", first[14])

	second := records[2]
	assert.Equal(t, "", second[4], "nil body renders as an empty cell")
	assert.Equal(t, "", second[7], "nil assignee list renders as an empty cell")
	assert.Equal(t, "true", second[15])
	assert.Equal(t, "", second[17], "nil repo description renders empty")
}
