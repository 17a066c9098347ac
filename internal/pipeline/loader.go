package pipeline

import (
	"fmt"
	"os"
	"runtime"
	"sync"
	"sync/atomic"

	"agentstat/internal/model"
	"agentstat/internal/source"
	"agentstat/internal/store"
)

// LoadOptions configures the discovery and parse pipeline.
type LoadOptions struct {
	SessionsDir string
	CacheDir    string
	NoCache     bool
	Home        string
}

// LoadResult holds the output of the full data loading pipeline.
type LoadResult struct {
	Sessions        []model.SessionStats
	TotalFiles      int
	ParsedFiles     int
	CacheHits       int
	SkippedLines    int
	FileErrors      int
	HeaderlessFiles int
	ProjectCount    int
}

// ProgressFunc is called during loading to report progress.
type ProgressFunc func(current, total int)

// Load discovers all session files, parses changed ones, and serves
// unchanged ones from the mtime-keyed cache. Files are processed by a
// bounded worker pool and merged only after all of them complete; the
// aggregator's merge is commutative so ordering never matters.
func Load(opts LoadOptions, progressFn ProgressFunc) (*LoadResult, error) {
	files, err := source.ScanDir(opts.SessionsDir, opts.Home)
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", opts.SessionsDir, err)
	}

	result := &LoadResult{
		TotalFiles:   len(files),
		ProjectCount: source.CountProjects(files),
	}
	if len(files) == 0 {
		return result, nil
	}

	// A cache that fails to open just means a full parse.
	var cache *store.Cache
	if !opts.NoCache && opts.CacheDir != "" {
		cache, _ = store.Open(opts.CacheDir)
	}

	numWorkers := runtime.GOMAXPROCS(0)
	if numWorkers < 1 {
		numWorkers = 4
	}
	if numWorkers > len(files) {
		numWorkers = len(files)
	}

	work := make(chan int, len(files))
	slots := make([]parseSlot, len(files))
	var wg sync.WaitGroup
	var processed atomic.Int64

	for i := range files {
		work <- i
	}
	close(work)

	wg.Add(numWorkers)
	for w := 0; w < numWorkers; w++ {
		go func() {
			defer wg.Done()
			for idx := range work {
				slots[idx] = loadOne(files[idx], cache, opts.Home)
				n := processed.Add(1)
				if progressFn != nil {
					progressFn(int(n), len(files))
				}
			}
		}()
	}
	wg.Wait()

	for _, sl := range slots {
		switch {
		case sl.err != nil:
			result.FileErrors++
		case sl.stats == nil:
			result.HeaderlessFiles++
		default:
			result.ParsedFiles++
			result.SkippedLines += sl.skipped
			if sl.cacheHit {
				result.CacheHits++
			}
			result.Sessions = append(result.Sessions, *sl.stats)
		}
	}

	return result, nil
}

type parseSlot struct {
	stats    *model.SessionStats
	skipped  int
	cacheHit bool
	err      error
}

func loadOne(df source.DiscoveredFile, cache *store.Cache, home string) (sl parseSlot) {
	info, err := os.Stat(df.Path)
	if err != nil {
		sl.err = err
		return sl
	}

	if cache != nil {
		if stats := cache.Get(df.Path, info.ModTime()); stats != nil {
			sl.stats = stats
			sl.cacheHit = true
			return sl
		}
	}

	pr := source.ParseFile(df, home)
	if pr.Err != nil {
		sl.err = pr.Err
		return sl
	}
	sl.stats = pr.Stats
	sl.skipped = pr.SkippedLines

	if cache != nil && pr.Stats != nil {
		// Write failures are non-fatal; the fresh value is used regardless.
		_ = cache.Put(df.Path, info.ModTime(), pr.Stats)
	}
	return sl
}
