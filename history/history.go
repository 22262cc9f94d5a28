// Package history records successful extractions on disk.
package history

import (
	"sync"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/natty-misc/ymd3/filesystem"
	"github.com/natty-misc/ymd3/media"
	"github.com/natty-misc/ymd3/where"
	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

var (
	// mu serializes read-modify-write cycles of concurrent extractions.
	mu sync.Mutex

	cacher = sync.OnceValue(func() *gache.Cache[map[string]*Record] {
		return gache.New[map[string]*Record](
			&gache.Options{
				Path:       where.History(),
				FileSystem: &filesystem.GacheFs{},
			},
		)
	})
)

// Get returns every stored record keyed by identifier and program.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher().Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// List returns the stored records, most recent first.
func List() ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := lo.Values(saved)
	slices.SortFunc(records, func(a, b *Record) int {
		return b.ExtractedAt.Compare(a.ExtractedAt)
	})

	return records, nil
}

// Search returns the records whose identifier, program or video name
// fuzzily contain query, most recent first. An empty query matches everything.
func Search(query string) ([]*Record, error) {
	records, err := List()
	if err != nil || query == "" {
		return records, err
	}

	return lo.Filter(records, func(r *Record, _ int) bool {
		return fuzzy.MatchNormalizedFold(query, r.ID) ||
			fuzzy.MatchNormalizedFold(query, r.Program) ||
			fuzzy.MatchNormalizedFold(query, r.Result.VideoName)
	}), nil
}

// Save stores the result extracted for id by program, replacing an earlier record of the same pair.
func Save(id, program string, result *media.Result) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := Get()
	if err != nil {
		return err
	}

	record := &Record{
		ID:          id,
		Program:     program,
		Result:      result,
		ExtractedAt: time.Now(),
	}
	saved[record.encode()] = record

	return cacher().Set(saved)
}

// Remove deletes a single record.
func Remove(record *Record) error {
	mu.Lock()
	defer mu.Unlock()

	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher().Set(saved)
}

// Clear deletes every record.
func Clear() error {
	mu.Lock()
	defer mu.Unlock()

	return cacher().Set(make(map[string]*Record))
}
