package core

import (
	"context"
	"runtime"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"
)

// BulkSyncer verifies and updates many files on a bounded worker pool.
type BulkSyncer struct {
	Downloader *Downloader
	Workers    int
	Logger     *log.Logger
}

// SyncResult lists the files that were (re)downloaded, in input order.
type SyncResult struct {
	Changed []*ManagedFile
}

func (r SyncResult) IsChanged(f *ManagedFile) bool {
	for _, c := range r.Changed {
		if c == f {
			return true
		}
	}
	return false
}

func DefaultWorkers() int {
	return runtime.NumCPU() * 2
}

// SyncAll runs VerifyAndUpdate for every file and waits for all of them.
// Siblings are not cancelled when one fails; the first error is returned
// once every started task has finished. Each completed file credits
// weight/len(files) to progress.
func (s *BulkSyncer) SyncAll(ctx context.Context, label string, files []*ManagedFile, weight float64, progress *Progress) (SyncResult, error) {
	progress.Start(label, weight)
	defer progress.End()

	if len(files) == 0 {
		return SyncResult{}, nil
	}

	var g errgroup.Group
	g.SetLimit(s.workers())

	step := 100 / float64(len(files))
	changed := make([]bool, len(files))
	for i, f := range files {
		i, f := i, f
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			c, err := f.VerifyAndUpdate(ctx, s.Downloader)
			changed[i] = c
			progress.AddWithText(step, f.Path)
			return err
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	var result SyncResult
	for i, c := range changed {
		if c {
			result.Changed = append(result.Changed, files[i])
		}
	}
	s.logger().Debug("synced files", "section", label, "total", len(files), "updated", len(result.Changed))
	return result, err
}

func (s *BulkSyncer) workers() int {
	if s.Workers > 0 {
		return s.Workers
	}
	return DefaultWorkers()
}

func (s *BulkSyncer) logger() *log.Logger {
	if s.Logger == nil {
		return log.Default()
	}
	return s.Logger
}
