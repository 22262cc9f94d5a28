// Package retriever is the entry point for callers: it turns raw URLs into
// canonical identifiers and runs extraction programs against them.
package retriever

import (
	"context"

	"github.com/google/uuid"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/natty-misc/ymd3/engine"
	"github.com/natty-misc/ymd3/history"
	"github.com/natty-misc/ymd3/identifier"
	"github.com/natty-misc/ymd3/key"
	"github.com/natty-misc/ymd3/log"
	"github.com/natty-misc/ymd3/media"
	"github.com/natty-misc/ymd3/script"
	"github.com/natty-misc/ymd3/util"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"
)

// Retriever runs programs on behalf of callers. It is safe for concurrent use;
// every extraction gets its own Script and context.
type Retriever struct {
	runtime engine.Runtime
	options script.Options

	// identifiers remembers URLs already normalized.
	identifiers *lru.Cache[string, string]
}

// New returns a Retriever creating contexts from runtime.
func New(runtime engine.Runtime, options script.Options) *Retriever {
	return &Retriever{
		runtime:     runtime,
		options:     options,
		identifiers: lo.Must(lru.New[string, string](1024)),
	}
}

// Normalize returns the canonical identifier found in url.
func Normalize(url string) (string, error) {
	return identifier.Normalize(url)
}

func (r *Retriever) normalize(url string) (string, error) {
	if id, ok := r.identifiers.Get(url); ok {
		return id, nil
	}

	id, err := Normalize(url)
	if err != nil {
		return "", err
	}

	r.identifiers.Add(url, id)
	return id, nil
}

// script builds program with a logger tagged by a fresh run id unless the caller supplied one.
func (r *Retriever) script(program string) (*script.Script, error) {
	options := r.options
	if options.Logger == nil {
		options.Logger = log.Program(program).WithField("run", uuid.NewString())
	}

	return script.New(r.runtime, program, options)
}

// Run loads program and runs it against id. Any failure is logged and yields mo.None.
func (r *Retriever) Run(ctx context.Context, id, program string) mo.Option[*media.Result] {
	s, err := r.script(program)
	if err != nil {
		log.Program(program).WithField("id", id).Error(err)
		return mo.None[*media.Result]()
	}

	result := s.Run(ctx, id)
	if value, ok := result.Get(); ok {
		remember(id, program, value)
	}

	return result
}

// Retrieve normalizes url and extracts it with program, returning the first failure.
func (r *Retriever) Retrieve(ctx context.Context, url, program string) (*media.Result, error) {
	id, err := r.normalize(url)
	if err != nil {
		return nil, err
	}

	s, err := r.script(program)
	if err != nil {
		return nil, err
	}

	result, err := s.Extract(ctx, id)
	if err != nil {
		return nil, err
	}

	remember(id, program, result)
	return result, nil
}

// Outcome is the result of one URL of a batch.
type Outcome struct {
	URL    string
	Result *media.Result
	Err    error
}

// Batch extracts every url with program, at most extract.workers at a time.
// Outcomes are returned in input order; a failing URL does not stop the others.
func (r *Retriever) Batch(ctx context.Context, urls []string, program string) []Outcome {
	outcomes := make([]Outcome, len(urls))

	var g errgroup.Group
	if workers := viper.GetInt(key.ExtractWorkers); workers > 0 {
		g.SetLimit(util.Max(1, util.Min(workers, len(urls))))
	}

	for i, url := range urls {
		g.Go(func() error {
			result, err := r.Retrieve(ctx, url, program)
			outcomes[i] = Outcome{URL: url, Result: result, Err: err}
			return nil
		})
	}

	_ = g.Wait()
	return outcomes
}

func remember(id, program string, result *media.Result) {
	if !viper.GetBool(key.HistorySave) {
		return
	}

	if err := history.Save(id, program, result); err != nil {
		log.Warnf("failed to save history: %s", err)
	}
}
