package engine

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/passdig/passdig/internal/types"
)

// scanState is the mutable state of one scan. It is owned by the walking
// goroutine; workers only write their own fileResult.
type scanState struct {
	cfg  Config
	plan plan
	log  logrus.FieldLogger

	examined  int
	truncated bool
	findings  []types.Finding
}

type fileResult struct {
	findings []types.Finding
}

// Walk traverses root and calls handle for every regular file the filter
// accepts, with the path as produced by the walk. An error from handle or
// from reading a directory stops the walk and is returned.
func Walk(ctx context.Context, root string, pf PathFilter, defaultExcludes bool, log logrus.FieldLogger, handle func(path string) error) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("walk %s: %w", p, err)
		}
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if d.IsDir() {
			if defaultExcludes && p != root && isDefaultDirExcluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !isRegular(p, d) {
			if log != nil {
				log.WithField("path", p).Debug("skipping non-regular file")
			}
			return nil
		}
		if !pf.Allowed(p) {
			return nil
		}
		return handle(p)
	})
}

func isRegular(p string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}

// admit applies the ceiling and, when the file may be examined, counts it.
// The check happens before the increment with a >= boundary, so exactly
// MaxFiles files are examined.
func (s *scanState) admit() error {
	if s.cfg.MaxFiles > 0 && s.examined >= s.cfg.MaxFiles {
		s.truncated = true
		return errCeiling
	}
	s.examined++
	if s.cfg.Progress != nil {
		s.cfg.Progress()
	}
	return nil
}

func (s *scanState) walk(ctx context.Context, handle func(path string) error) error {
	err := Walk(ctx, s.cfg.Root, s.plan.paths, s.cfg.DefaultExcludes, s.log, func(p string) error {
		if err := s.admit(); err != nil {
			return err
		}
		return handle(p)
	})
	if errors.Is(err, errCeiling) {
		s.log.WithField("max_files", s.cfg.MaxFiles).Debug("file ceiling reached, stopping walk")
		return nil
	}
	return err
}

func (s *scanState) evaluate(path string) ([]types.Finding, error) {
	out, err := evaluateFile(path, s.cfg.MaxLength, s.plan.detectors, s.plan.suppress)
	if errors.Is(err, ErrUnreadable) {
		s.log.WithField("path", path).WithError(err).Debug("stopped at non-text content")
		return out, nil
	}
	return out, err
}

func (s *scanState) runSequential(ctx context.Context) error {
	return s.walk(ctx, func(p string) error {
		found, err := s.evaluate(p)
		s.findings = append(s.findings, found...)
		return err
	})
}

// runParallel keeps the ceiling decision on the walking goroutine and hands
// evaluation to a bounded pool. Each file owns a slot, so the merged output
// follows walk order regardless of completion order.
func (s *scanState) runParallel(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.cfg.Workers)
	var slots []*fileResult
	walkErr := s.walk(gctx, func(p string) error {
		slot := &fileResult{}
		slots = append(slots, slot)
		g.Go(func() error {
			found, err := s.evaluate(p)
			slot.findings = found
			return err
		})
		return nil
	})
	groupErr := g.Wait()
	for _, slot := range slots {
		s.findings = append(s.findings, slot.findings...)
	}
	if groupErr != nil {
		return groupErr
	}
	return walkErr
}
