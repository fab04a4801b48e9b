package media

import (
	"context"
	"fmt"
	"log/slog"
)

// ReferenceLister returns every file path still referenced by image rows.
type ReferenceLister interface {
	ListImagePaths(ctx context.Context) ([]string, error)
}

type SweepResult struct {
	Scanned  int      `json:"scanned"`
	Orphans  []string `json:"orphans"`
	Released int      `json:"released"`
	Failed   int      `json:"failed"`
}

// Sweep removes files under the store root that no image row references.
// It catches files whose best-effort release after a delete did not happen.
func Sweep(ctx context.Context, store *LocalStore, refs ReferenceLister, dryRun bool, logger *slog.Logger) (*SweepResult, error) {
	referenced, err := refs.ListImagePaths(ctx)
	if err != nil {
		return nil, fmt.Errorf("list referenced media: %w", err)
	}

	keep := make(map[string]struct{}, len(referenced))
	for _, p := range referenced {
		clean, err := CleanPath(p)
		if err != nil {
			logger.Warn("skipping malformed media reference", "file_path", p, "error", err)
			continue
		}
		keep[clean] = struct{}{}
	}

	result := &SweepResult{Orphans: []string{}}
	err = store.Walk(func(relPath string) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		result.Scanned++
		if _, ok := keep[relPath]; ok {
			return nil
		}
		result.Orphans = append(result.Orphans, relPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk media root: %w", err)
	}

	if dryRun {
		logger.Info("media sweep dry run", "scanned", result.Scanned, "orphans", len(result.Orphans))
		return result, nil
	}

	for _, p := range result.Orphans {
		if err := store.Remove(p); err != nil {
			result.Failed++
			logger.Error("failed to remove orphaned media file", "file_path", p, "error", err)
			continue
		}
		result.Released++
	}

	logger.Info("media sweep completed",
		"scanned", result.Scanned,
		"released", result.Released,
		"failed", result.Failed)
	return result, nil
}
