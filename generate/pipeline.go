// Package generate produces rendered test suites from free-text descriptions,
// either through an AI provider or through the deterministic fallback path.
package generate

import (
	"context"
	"fmt"

	"github.com/hairizuan-noorazman/suitegen/broadcast"
	"github.com/hairizuan-noorazman/suitegen/extract"
	"github.com/hairizuan-noorazman/suitegen/logger"
	"github.com/hairizuan-noorazman/suitegen/provider"
	"github.com/hairizuan-noorazman/suitegen/render"
)

// GeneratorFactory constructs a provider for one call. Injected so tests can
// substitute stub backends.
type GeneratorFactory func(cfg provider.Config) (provider.Generator, error)

// Request carries the caller-supplied inputs for one suite generation.
type Request struct {
	Description  string
	ProjectLabel string
	BaseURL      string
}

// Pipeline orchestrates provider call, extraction, and rendering, with the
// fallback generator as the unconditional safety net. Exactly one provider is
// attempted per call; any failure at any stage degrades to fallback, never to
// a request failure.
type Pipeline struct {
	factory GeneratorFactory
	sink    broadcast.Sink
	logger  logger.Logger
}

// NewPipeline creates a suite-generation pipeline.
func NewPipeline(factory GeneratorFactory, sink broadcast.Sink, log logger.Logger) *Pipeline {
	return &Pipeline{
		factory: factory,
		sink:    sink,
		logger:  log,
	}
}

// GenerateSuite returns an ordered, non-empty sequence of rendered tests.
func (p *Pipeline) GenerateSuite(ctx context.Context, req Request, cfg provider.Config) []render.RenderedTest {
	gen, err := p.factory(cfg)
	if err != nil {
		// Missing credential or unrecognized kind; no network call is made.
		p.logger.Warn(ctx, "provider unavailable, using fallback generation", map[string]interface{}{
			"kind":  string(cfg.Kind),
			"error": err.Error(),
		})
		p.sink.Notify(broadcast.Event{
			Kind:    broadcast.KindStatus,
			Message: "AI provider not configured, generating template suite",
		})
		return Fallback(req.Description, req.ProjectLabel, req.BaseURL)
	}

	raw, err := gen.SendPrompt(ctx, BuildPrompt(req.Description, req.BaseURL))
	if err != nil {
		p.logger.Warn(ctx, "provider call failed, using fallback generation", map[string]interface{}{
			"provider": gen.Name(),
			"error":    err.Error(),
		})
		p.sink.Notify(broadcast.Event{
			Kind:    broadcast.KindError,
			Message: fmt.Sprintf("%s call failed, generating template suite", gen.Name()),
		})
		return Fallback(req.Description, req.ProjectLabel, req.BaseURL)
	}
	p.sink.Notify(broadcast.Event{
		Kind:    broadcast.KindStatus,
		Message: fmt.Sprintf("%s responded, parsing test suite", gen.Name()),
	})

	specs, err := extract.Suites(raw)
	if err != nil {
		// Covers both unparseable output and an empty suite; an empty array
		// would be a useless result, so it degrades to fallback too.
		p.logger.Warn(ctx, "extraction failed, using fallback generation", map[string]interface{}{
			"provider": gen.Name(),
			"error":    err.Error(),
		})
		p.sink.Notify(broadcast.Event{
			Kind:    broadcast.KindStatus,
			Message: "AI response was not a usable test suite, generating template suite",
		})
		return Fallback(req.Description, req.ProjectLabel, req.BaseURL)
	}

	rendered := make([]render.RenderedTest, 0, len(specs))
	for i, spec := range specs {
		rendered = append(rendered, render.Test(i, spec, req.BaseURL))
	}

	p.logger.Info(ctx, "suite generated from provider response", map[string]interface{}{
		"provider": gen.Name(),
		"tests":    len(rendered),
	})
	return rendered
}
