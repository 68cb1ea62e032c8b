package sweep

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime"
	"sync"

	"github.com/AnyUserName/qoiscope/internal/encoder"
	"github.com/AnyUserName/qoiscope/internal/frame"
	"github.com/AnyUserName/qoiscope/internal/manifest"
	"github.com/AnyUserName/qoiscope/internal/profile"
)

// ErrAllFailed is returned when no pass of a sweep succeeded.
var ErrAllFailed = errors.New("every pass failed")

// Config holds all parameters for a sweep run.
type Config struct {
	Source    string // name recorded in the manifest
	Data      []byte // raw stream, scanned once per pass
	From      int    // first discard offset
	Profile   profile.Profile
	Width     int
	OutputDir string
	Workers   int
	Opaque    bool
	Verbose   bool
}

// Pipeline runs independent reconstruction passes over one stream.
type Pipeline struct {
	cfg      Config
	registry *encoder.Registry
}

// New creates a configured pipeline.
func New(cfg Config) *Pipeline {
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Profile.Format == "" {
		cfg.Profile.Format = "png"
	}
	return &Pipeline{
		cfg:      cfg,
		registry: encoder.NewRegistry(),
	}
}

// Run executes every pass and returns the manifest. Cancelling ctx stops
// new passes from starting; passes already running finish.
func (p *Pipeline) Run(ctx context.Context) (*manifest.Manifest, error) {
	if p.cfg.Width <= 0 {
		return nil, fmt.Errorf("%w: %d", frame.ErrBadWidth, p.cfg.Width)
	}
	enc, err := p.registry.Get(p.cfg.Profile.Format)
	if err != nil {
		return nil, err
	}
	offsets := p.cfg.Profile.Offsets(p.cfg.From)
	if len(offsets) == 0 {
		return nil, fmt.Errorf("profile %q yields no passes", p.cfg.Profile.Name)
	}
	p.logf("%d passes from skip %d, step %d, format %s", len(offsets), offsets[0], p.cfg.Profile.Step, enc.Format())

	results := make([]passResult, len(offsets))
	started := make([]bool, len(offsets))
	var wg sync.WaitGroup
	sem := make(chan struct{}, p.cfg.Workers)

schedule:
	for i, k := range offsets {
		if ctx.Err() != nil {
			break
		}
		select {
		case <-ctx.Done():
			break schedule
		case sem <- struct{}{}: // acquire
		}
		started[i] = true
		wg.Add(1)
		go func(idx, skip int) {
			defer wg.Done()
			defer func() { <-sem }() // release

			results[idx] = processPass(skip, p.cfg, enc)

			if r := results[idx]; r.err == nil {
				p.logf("skip %d: %d pixels, digest %s", skip, r.pass.Pixels, r.pass.Digest)
			}
		}(i, k)
	}
	wg.Wait()

	m := manifest.New(p.cfg.Source, p.cfg.Profile.Name, p.cfg.Width)
	m.BuildInfo = &manifest.BuildInfo{
		Workers: p.cfg.Workers,
		Format:  enc.Format(),
		Scale:   p.cfg.Profile.Scale,
		Opaque:  p.cfg.Opaque,
	}

	var failed int
	for i, r := range results {
		if !started[i] {
			continue
		}
		if r.err != nil {
			failed++
			fmt.Fprintf(os.Stderr, "[qoiscope] error: skip %d: %v\n", r.pass.Skip, r.err)
			r.pass.Error = r.err.Error()
		}
		m.Passes = append(m.Passes, r.pass)
	}
	m.ComputeStats()

	if len(m.Passes) < len(offsets) {
		return m, fmt.Errorf("sweep interrupted after %d of %d passes: %w", len(m.Passes), len(offsets), ctx.Err())
	}
	if failed > 0 && failed == len(m.Passes) {
		return m, fmt.Errorf("%w (%d passes)", ErrAllFailed, failed)
	}
	if failed > 0 {
		fmt.Fprintf(os.Stderr, "[qoiscope] warning: %d of %d passes had errors\n", failed, len(m.Passes))
	}
	return m, nil
}

func (p *Pipeline) logf(format string, args ...any) {
	if p.cfg.Verbose {
		fmt.Fprintf(os.Stderr, "[qoiscope] "+format+"\n", args...)
	}
}
