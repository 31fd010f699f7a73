// Package datasync copies a learner's data between storage backends.
package datasync

import (
	"context"
	"fmt"
	"io"

	"github.com/at-ishikawa/vocly/internal/learning"
)

// Result tracks what a sync copied, or would copy in a dry run.
type Result struct {
	Items      int
	Progress   int
	DailyStats int
	// Orphans are progress records whose item is not in the catalog.
	Orphans int
}

// Options controls sync behavior.
type Options struct {
	DryRun bool
}

// Syncer reads everything stored for a learner in one repository and writes it to another.
type Syncer struct {
	writer io.Writer
}

func NewSyncer(writer io.Writer) *Syncer {
	return &Syncer{writer: writer}
}

// Sync replaces the contents of dst with the contents of src.
// With DryRun, src is read and counted but dst is not touched.
func (s *Syncer) Sync(ctx context.Context, src, dst learning.Repository, opts Options) (*Result, error) {
	snapshot, err := src.FindSnapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("src.FindSnapshot() > %w", err)
	}

	result := Result{
		Items:      len(snapshot.Items),
		Progress:   len(snapshot.Progress),
		DailyStats: len(snapshot.DailyStats),
	}
	known := make(map[string]struct{}, len(snapshot.Items))
	for _, item := range snapshot.Items {
		known[item.Key().String()] = struct{}{}
	}
	for key := range snapshot.Progress {
		if _, ok := known[key.String()]; ok {
			continue
		}
		result.Orphans++
		fmt.Fprintf(s.writer, "  [WARN]  progress for %s has no item in the catalog\n", key)
	}

	if opts.DryRun {
		fmt.Fprintf(s.writer, "  [DRY RUN]  %d items, %d progress records, %d daily stats\n",
			result.Items, result.Progress, result.DailyStats)
		return &result, nil
	}

	if err := dst.Restore(ctx, snapshot); err != nil {
		return nil, fmt.Errorf("dst.Restore() > %w", err)
	}
	fmt.Fprintf(s.writer, "  [COPY]  %d items, %d progress records, %d daily stats\n",
		result.Items, result.Progress, result.DailyStats)
	return &result, nil
}
