package analysis

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/pfagrelius/skyfit-go/internal/errors"
	"github.com/pfagrelius/skyfit-go/internal/observability"
	"github.com/pfagrelius/skyfit-go/internal/spectrum"
)

// DirectoryAnalysis scans the input directory for plate flux files and
// processes every plate that has no output yet. With watch mode enabled
// it keeps rescanning until interrupted, serving metrics while it runs.
func (p *Pipeline) DirectoryAnalysis() error {
	watchDir := p.Settings.Input.Path

	// plates that failed this run; retried on the next scan in watch
	// mode but not within the same scan
	processed := make(map[int]bool)

	if err := p.scanDir(watchDir, processed); err != nil {
		return err
	}

	if !p.Settings.Input.Watch {
		return nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT, syscall.SIGHUP)

	quit := make(chan struct{})
	var wg sync.WaitGroup

	if p.Settings.Metrics.Enabled {
		endpoint, err := observability.NewEndpoint(p.Settings, p.Metrics)
		if err != nil {
			return err
		}
		endpoint.Start(&wg, quit)
	}

	go func() {
		sig := <-sigChan
		if p.logger != nil {
			p.logger.Info("received signal, shutting down", "signal", sig.String())
		}
		close(quit)
		cancel()
	}()

	if p.logger != nil {
		p.logger.Info("watching directory for new plates", "path", watchDir)
	}

	for {
		// rescan on a jittered interval so parallel instances pointed
		// at the same directory drift apart
		sleep := time.Duration(30+rand.Intn(15)) * time.Second
		timer := time.NewTimer(sleep)
		select {
		case <-ctx.Done():
			timer.Stop()
			wg.Wait()
			return nil
		case <-timer.C:
			if err := p.scanDir(watchDir, processed); err != nil && p.logger != nil {
				p.logger.Error("directory scan failed", "error", err)
			}
		}
	}
}

// scanDir walks the input directory once and fans the pending plates out
// to a fixed-size worker pool.
func (p *Pipeline) scanDir(dir string, processed map[int]bool) error {
	start := time.Now()

	pending, err := p.collectPending(dir, processed)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		if p.logger != nil {
			p.logger.Debug("directory scan found no new plates", "path", dir)
		}
		return nil
	}

	workers := p.Settings.Fit.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(pending) {
		workers = len(pending)
	}

	jobs := make(chan string)
	var wg sync.WaitGroup
	var mu sync.Mutex
	done := 0

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				plateNo, _ := spectrum.PlateFromFilename(path)
				if err := p.ProcessPlateFile(path); err != nil {
					if p.logger != nil {
						p.logger.Error("plate failed", "plate", plateNo, "error", err)
					}
					continue
				}
				mu.Lock()
				processed[plateNo] = true
				done++
				mu.Unlock()
			}
		}()
	}

	for _, path := range pending {
		jobs <- path
	}
	close(jobs)
	wg.Wait()

	if p.logger != nil {
		p.logger.Info("directory scan completed",
			"path", dir,
			"plates", done,
			"duration_ms", time.Since(start).Milliseconds())
	}
	return nil
}

// collectPending lists the plate flux files that still need processing,
// consulting the store's resume check so completed plates are skipped.
func (p *Pipeline) collectPending(dir string, processed map[int]bool) ([]string, error) {
	var pending []string

	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != dir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.HasSuffix(d.Name(), spectrum.PlateFileSuffix) {
			return nil
		}

		plateNo, perr := spectrum.PlateFromFilename(path)
		if perr != nil {
			if p.logger != nil {
				p.logger.Warn("ignoring file with malformed plate name", "file", d.Name())
			}
			return nil
		}
		if processed[plateNo] {
			return nil
		}

		has, herr := p.Store.HasPlate(plateNo)
		if herr != nil {
			return herr
		}
		if has {
			processed[plateNo] = true
			if p.Metrics != nil {
				p.Metrics.Datastore.IncrementPlatesSkipped()
			}
			return nil
		}

		pending = append(pending, path)
		return nil
	})
	if err != nil {
		return nil, errors.New(err).
			Component("analysis").
			Category(errors.CategoryFileIO).
			Context("path", dir).
			Build()
	}
	return pending, nil
}
