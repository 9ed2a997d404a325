// internal/snapshot/snapshot.go

// Package snapshot persists and serves the reconciled table. One pipeline run
// produces three durable artifacts in the data directory: the table itself in
// parquet (columnar, lossless for strings, booleans, integers and
// timestamps), a human-readable ingest-date record and the organisation name.
// The presentation layer reads the three independently at its own startup.
package snapshot

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github-org-board/internal/model"
)

const (
	// TableFile is the parquet artifact holding the reconciled table.
	TableFile = "snapshot.parquet"
	// DateFile holds the ingest timestamp, prefixed for direct display.
	DateFile = "ingest-date.txt"
	// OrgFile holds the organisation name.
	OrgFile = "org-name.txt"

	datePrefix = "Date of Ingest: "
	// dateLayout is second precision; timestamps are always UTC.
	dateLayout = "2006-01-02 15:04:05"
)

// Write persists a snapshot into dir, creating it if needed. The table is
// written to a temporary file and renamed into place so a failed run never
// clobbers the previous good snapshot.
func Write(dir string, snap model.Snapshot) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, TableFile+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary table file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := parquet.Write(tmp, snap.Rows); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temporary table file: %w", err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(dir, TableFile)); err != nil {
		return fmt.Errorf("failed to move table into place: %w", err)
	}

	stamp := datePrefix + snap.IngestedAt.UTC().Format(dateLayout) + "\n"
	if err := os.WriteFile(filepath.Join(dir, DateFile), []byte(stamp), 0o644); err != nil {
		return fmt.Errorf("failed to write ingest date: %w", err)
	}
	if err := os.WriteFile(filepath.Join(dir, OrgFile), []byte(snap.OrgName+"\n"), 0o644); err != nil {
		return fmt.Errorf("failed to write organisation name: %w", err)
	}

	return nil
}

// Read loads a previously written snapshot from dir.
func Read(dir string) (model.Snapshot, error) {
	rows, err := parquet.ReadFile[model.Row](filepath.Join(dir, TableFile))
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to read table: %w", err)
	}
	// Parquet cannot tell a null list from an empty one; restore the
	// "no assignees means nil" convention after the round trip.
	for i := range rows {
		if len(rows[i].AssigneeLogins) == 0 {
			rows[i].AssigneeLogins = nil
		}
		if len(rows[i].AssigneeAvatarURLs) == 0 {
			rows[i].AssigneeAvatarURLs = nil
		}
	}

	stamp, err := os.ReadFile(filepath.Join(dir, DateFile))
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to read ingest date: %w", err)
	}
	raw := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(string(stamp)), datePrefix))
	ingested, err := time.ParseInLocation(dateLayout, raw, time.UTC)
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to parse ingest date %q: %w", raw, err)
	}

	org, err := os.ReadFile(filepath.Join(dir, OrgFile))
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("failed to read organisation name: %w", err)
	}

	return model.Snapshot{
		Rows:       rows,
		IngestedAt: ingested,
		OrgName:    strings.TrimSpace(string(org)),
	}, nil
}

// DisplayDate renders the ingest timestamp the way the date artifact stores
// it, e.g. "Date of Ingest: 2024-01-01 12:00:00".
func DisplayDate(t time.Time) string {
	return datePrefix + t.UTC().Format(dateLayout)
}
