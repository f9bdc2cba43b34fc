// Package session keeps the current palette of a long-running duotint
// process. Each submitted image starts a new extraction and supersedes the
// ones still in flight; only the most recently submitted run may publish.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/duotint/internal/colour"
	"github.com/jmylchreest/duotint/internal/image"
)

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("session closed")

// Result is the outcome of one published run.
type Result struct {
	Generation uint64
	Source     string
	Palette    colour.Palette
	Err        error
}

// Session runs extractions and holds the latest palette.
type Session struct {
	loader    image.Loader
	extractor *colour.Extractor
	logger    hclog.Logger

	current    atomic.Pointer[colour.Palette]
	generation atomic.Uint64

	mu      sync.Mutex
	cancel  context.CancelFunc
	closed  bool
	results chan Result
	wg      sync.WaitGroup
}

// New creates a session that loads sources with loader and extracts with cfg.
func New(loader image.Loader, cfg colour.ExtractorConfig, logger hclog.Logger) (*Session, error) {
	extractor, err := colour.NewExtractor(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &Session{
		loader:    loader,
		extractor: extractor,
		logger:    logger,
		results:   make(chan Result, 1),
	}, nil
}

// Submit starts extracting source and returns its generation. The previous
// run, if any, is cancelled and will not publish.
func (s *Session) Submit(ctx context.Context, source string) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return 0, ErrClosed
	}
	if s.cancel != nil {
		s.cancel()
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	gen := s.generation.Add(1)

	s.logger.Debug("submitted", "generation", gen, "source", source)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer cancel()
		s.run(runCtx, gen, source)
	}()

	return gen, nil
}

// Current returns the latest published palette. Before the first successful
// run it returns the initial palette and false.
func (s *Session) Current() (colour.Palette, bool) {
	if p := s.current.Load(); p != nil {
		return *p, true
	}
	return colour.InitialPalette(), false
}

// Generation returns the generation of the most recent submission.
func (s *Session) Generation() uint64 {
	return s.generation.Load()
}

// Results delivers published results. Only the newest unread result is kept:
// a result nobody has received yet is replaced by the next one.
func (s *Session) Results() <-chan Result {
	return s.results
}

// Wait blocks until every submitted run has finished.
func (s *Session) Wait() {
	s.wg.Wait()
}

// Close cancels the run in flight, waits for it and closes Results.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.cancel != nil {
		s.cancel()
	}
	s.mu.Unlock()

	s.wg.Wait()
	close(s.results)
}

func (s *Session) run(ctx context.Context, gen uint64, source string) {
	palette, err := s.extract(ctx, source)
	if ctx.Err() != nil {
		s.logger.Debug("dropped superseded run", "generation", gen, "source", source)
		return
	}
	s.publish(Result{Generation: gen, Source: source, Palette: palette, Err: err})
}

func (s *Session) extract(ctx context.Context, source string) (colour.Palette, error) {
	img, err := s.loader.Load(ctx, source)
	if err != nil {
		return colour.Palette{}, fmt.Errorf("failed to load %s: %w", source, err)
	}
	if err := ctx.Err(); err != nil {
		return colour.Palette{}, err
	}
	return s.extractor.Extract(img)
}

// publish stores r if its generation is still the latest.
func (s *Session) publish(r Result) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.Generation != s.generation.Load() || s.closed {
		s.logger.Debug("dropped superseded run", "generation", r.Generation, "source", r.Source)
		return
	}

	if r.Err != nil {
		s.logger.Error("extraction failed", "generation", r.Generation, "source", r.Source, "error", r.Err)
	} else {
		palette := r.Palette
		s.current.Store(&palette)
		s.logger.Info("palette updated", "generation", r.Generation, "source", r.Source,
			"strong", palette.Strong.Hex, "soft", palette.Soft.Hex)
	}

	// Senders hold mu, so after draining the buffer the send cannot block.
	select {
	case <-s.results:
	default:
	}
	s.results <- r
}
