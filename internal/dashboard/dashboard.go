package dashboard

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/allegro/bigcache/v3"
	"github.com/golang-cafe/candidate-portal/internal/candidate"
	"github.com/golang-cafe/candidate-portal/internal/notification"
	"github.com/pkg/errors"
)

type Fetcher interface {
	FetchRecords(ctx context.Context) ([]candidate.RawRecord, error)
}

// EventLogger receives the events worth shipping to the remote log.
// Implementations must not block.
type EventLogger interface {
	Info(msg string, data interface{})
	Warn(msg string, data interface{})
	Error(msg string, data interface{})
}

type Snapshot struct {
	Candidates []candidate.Candidate
	Version    uint64
	Loading    bool
	Err        error
	FetchedAt  time.Time
}

// Dashboard owns the process-wide candidate list. The list is only ever
// replaced as a whole, each replacement bumping Version.
type Dashboard struct {
	fetcher Fetcher
	events  EventLogger
	cache   *bigcache.BigCache

	mu         sync.RWMutex
	candidates []candidate.Candidate
	version    uint64
	pending    int
	lastErr    error
	fetchedAt  time.Time
}

func New(fetcher Fetcher, events EventLogger, cacheTTL time.Duration) (*Dashboard, error) {
	cfg := bigcache.DefaultConfig(cacheTTL)
	cfg.Verbose = false
	cache, err := bigcache.New(context.Background(), cfg)
	if err != nil {
		return nil, errors.Wrap(err, "unable to initialise filter cache")
	}
	return &Dashboard{
		fetcher:    fetcher,
		events:     events,
		cache:      cache,
		candidates: []candidate.Candidate{},
	}, nil
}

// Load fetches the feed once and, on success, replaces the candidate list.
// On failure the current list is kept and notifier receives exactly one
// notification. Overlapping loads are not coalesced: whichever finishes last
// wins.
func (d *Dashboard) Load(ctx context.Context, notifier notification.Notifier) error {
	d.mu.Lock()
	d.pending++
	d.mu.Unlock()

	records, err := d.fetcher.FetchRecords(ctx)
	if err != nil {
		d.mu.Lock()
		d.pending--
		d.lastErr = err
		d.mu.Unlock()
		d.events.Error("failed to fetch candidates", map[string]interface{}{"error": err.Error()})
		notifier.Notify(notification.FetchFailed())
		return err
	}

	candidates, mappingErrs := candidate.MapRecords(records)
	for _, mErr := range mappingErrs {
		d.events.Warn("candidate record skipped", map[string]interface{}{"error": mErr.Error()})
	}

	d.mu.Lock()
	d.pending--
	d.candidates = candidates
	d.version++
	d.lastErr = nil
	d.fetchedAt = time.Now()
	d.mu.Unlock()

	d.events.Info("candidates fetched", map[string]interface{}{
		"count":   len(candidates),
		"skipped": len(mappingErrs),
	})
	return nil
}

func (d *Dashboard) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Snapshot{
		Candidates: d.candidates,
		Version:    d.version,
		Loading:    d.pending > 0,
		Err:        d.lastErr,
		FetchedAt:  d.fetchedAt,
	}
}

// Filtered applies the filter engine to the current list. Results are
// memoized per list version, filter state and search term.
func (d *Dashboard) Filtered(f candidate.FilterState, searchTerm string) []candidate.Candidate {
	snap := d.Snapshot()
	key := cacheKey(snap.Version, f, searchTerm)
	if cached, err := d.cache.Get(key); err == nil {
		var out []candidate.Candidate
		if err := gob.NewDecoder(bytes.NewReader(cached)).Decode(&out); err == nil {
			if out == nil {
				out = []candidate.Candidate{}
			}
			return out
		}
	}
	out := candidate.Filter(snap.Candidates, f, searchTerm)
	buf := &bytes.Buffer{}
	if err := gob.NewEncoder(buf).Encode(out); err == nil {
		// a full cache only costs a recomputation next time
		_ = d.cache.Set(key, buf.Bytes())
	}
	return out
}

func (d *Dashboard) Candidate(id string) (candidate.Candidate, bool) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, c := range d.candidates {
		if c.ID == id {
			return c, true
		}
	}
	return candidate.Candidate{}, false
}

func (d *Dashboard) Close() error {
	return d.cache.Close()
}

func cacheKey(version uint64, f candidate.FilterState, searchTerm string) string {
	return fmt.Sprintf("v%d|%s|%s", version, f.Values().Encode(), strings.ToLower(strings.TrimSpace(searchTerm)))
}
