package script

import (
	"context"
	"fmt"

	"github.com/natty-misc/ymd3/constant"
	"github.com/natty-misc/ymd3/engine"
	"github.com/natty-misc/ymd3/fetch"
	"github.com/natty-misc/ymd3/key"
	"github.com/natty-misc/ymd3/log"
	"github.com/natty-misc/ymd3/media"
	"github.com/natty-misc/ymd3/where"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// Options customize a Script. Zero values fall back to configuration.
type Options struct {
	// Root is the script root. Defaults to where.Scripts().
	Root string
	// Bootstrap names the program run before every extraction. Defaults to scripts.bootstrap.
	Bootstrap string
	// Fetcher serves the retrieve binding. Defaults to fetch.FromConfig().
	Fetcher fetch.Fetcher
	// Logger receives log binding output and diagnostics. Defaults to log.Program(name).
	Logger logrus.FieldLogger
}

// Script is a loaded extraction program together with its bootstrap.
// Sources are read once, at construction.
type Script struct {
	runtime   engine.Runtime
	program   *Program
	bootstrap *Program
	fetcher   fetch.Fetcher
	logger    logrus.FieldLogger
}

// New loads the program called name. Invalid names fail with ErrInvalidName
// before any file is read; missing files fail with ErrNotFound.
func New(runtime engine.Runtime, name string, options Options) (*Script, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}

	if options.Root == "" {
		options.Root = where.Scripts()
	}

	if options.Bootstrap == "" {
		options.Bootstrap = viper.GetString(key.ScriptsBootstrap)
	}
	if options.Bootstrap == "" {
		options.Bootstrap = constant.BootstrapScript
	}

	if options.Fetcher == nil {
		options.Fetcher = fetch.FromConfig()
	}

	if options.Logger == nil {
		options.Logger = log.Program(name)
	}

	program, err := Load(options.Root, name)
	if err != nil {
		return nil, err
	}

	bootstrap, err := Load(options.Root, options.Bootstrap)
	if err != nil {
		return nil, err
	}

	return &Script{
		runtime:   runtime,
		program:   program,
		bootstrap: bootstrap,
		fetcher:   options.Fetcher,
		logger:    options.Logger,
	}, nil
}

// Name returns the program name.
func (s *Script) Name() string {
	return s.program.Name
}

// Extract runs the bootstrap and the program against the canonical identifier id
// in a fresh context and reads the result back. Compile and runtime failures are
// returned as *engine.Diagnostic.
func (s *Script) Extract(ctx context.Context, id string) (*media.Result, error) {
	sandbox, err := s.runtime.NewContext(ctx)
	if err != nil {
		return nil, err
	}
	defer sandbox.Close()

	if err := sandbox.Install(constant.Namespace, hostBindings(ctx, id, s.fetcher, s.logger)); err != nil {
		return nil, err
	}

	for _, p := range []*Program{s.bootstrap, s.program} {
		if err := sandbox.CompileAndRun(p.Name, p.Source); err != nil {
			return nil, err
		}
	}

	return readBack(sandbox)
}

// Run is Extract with every failure logged and turned into mo.None.
func (s *Script) Run(ctx context.Context, id string) mo.Option[*media.Result] {
	result, err := s.Extract(ctx, id)
	if err != nil {
		s.logger.WithField("id", id).Error(err)
		return mo.None[*media.Result]()
	}

	return mo.Some(result)
}
