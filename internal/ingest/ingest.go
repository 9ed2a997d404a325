// internal/ingest/ingest.go
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github-org-board/internal/collector"
	"github-org-board/internal/model"
	"github-org-board/internal/reconcile"
	"github-org-board/internal/snapshot"
)

// Pipeline orchestrates one ingestion run: list the organisation's
// repositories, collect their issues and pull requests, reconcile the three
// listings into one table and persist it as the snapshot.
//
// Execution is sequential and single-threaded on purpose: the API enforces a
// global per-credential rate limit, and one blocking request at a time plus
// the fetcher's backoff keeps the run inside it without any budget
// coordination.
type Pipeline struct {
	collector  *collector.Collector
	logger     *slog.Logger
	org        string
	dataDir    string
	publicOnly bool

	// now is the wall clock, replaceable in tests.
	now func() time.Time
}

// New creates a Pipeline writing its snapshot into dataDir.
func New(c *collector.Collector, logger *slog.Logger, org, dataDir string, publicOnly bool) *Pipeline {
	return &Pipeline{
		collector:  c,
		logger:     logger,
		org:        org,
		dataDir:    dataDir,
		publicOnly: publicOnly,
		now:        time.Now,
	}
}

// Run executes one full ingestion. Fatal errors (credential rejection, a
// private repository in a public-only listing) return before any artifact is
// touched, so a failed run never overwrites the previous good snapshot.
func (p *Pipeline) Run(ctx context.Context) error {
	started := p.now()
	p.logger.Info("Starting ingestion run", "org", p.org, "public_only", p.publicOnly)

	repos, err := p.collector.Repositories(ctx, p.publicOnly)
	if err != nil {
		return err
	}
	if p.publicOnly {
		// Failsafe in case the API's type=public contract changes.
		if err := collector.VerifyPublicOnly(repos); err != nil {
			return err
		}
	}

	names := collector.RepoNames(repos)

	issues, err := p.collector.IssuesOrPulls(ctx, names, "issues")
	if err != nil {
		return err
	}
	pulls, err := p.collector.IssuesOrPulls(ctx, names, "pulls")
	if err != nil {
		return err
	}

	rows := reconcile.Combine(repos, issues, pulls)

	snap := model.Snapshot{
		Rows:       rows,
		IngestedAt: p.now().UTC().Truncate(time.Second),
		OrgName:    p.org,
	}
	if err := snapshot.Write(p.dataDir, snap); err != nil {
		return fmt.Errorf("failed to persist snapshot: %w", err)
	}

	p.logger.Info("Ingestion run complete",
		"repos", len(repos),
		"issues", len(issues),
		"pulls", len(pulls),
		"rows", len(rows),
		"duration", p.now().Sub(started).String())
	return nil
}
