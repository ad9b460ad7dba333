package engine

import (
	"context"
	"log/slog"
	"time"

	"atsmatch/internal/errors"
	"atsmatch/internal/types"
)

const defaultEnhancerTimeout = 15 * time.Second

// TextEnhancer is the optional text-generation capability the engine may
// use to enrich keyword discovery and prose rewriting. Any error or
// unusable output simply routes the engine back to its deterministic path,
// so implementations never need to retry on the engine's behalf.
type TextEnhancer interface {
	Generate(ctx context.Context, prompt string, maxTokens int32) (string, error)
}

// NoopEnhancer is the first-class "no AI" implementation.
type NoopEnhancer struct{}

func (NoopEnhancer) Generate(context.Context, string, int32) (string, error) {
	return "", nil
}

// Options configures an Engine. The zero value is valid: no enhancer, the
// default per-call timeout and a default logger.
type Options struct {
	Enhancer        TextEnhancer
	EnhancerTimeout time.Duration
	Logger          *errors.Logger
}

// Engine runs the extraction, scoring and optimization pipeline. It holds
// no mutable state, so a single Engine is safe for concurrent use.
type Engine struct {
	enhancer TextEnhancer
	timeout  time.Duration
	logger   *errors.Logger
}

func New(opts Options) *Engine {
	if opts.EnhancerTimeout <= 0 {
		opts.EnhancerTimeout = defaultEnhancerTimeout
	}
	if opts.Logger == nil {
		opts.Logger = errors.NewLogger(slog.LevelInfo)
	}
	return &Engine{
		enhancer: opts.Enhancer,
		timeout:  opts.EnhancerTimeout,
		logger:   opts.Logger,
	}
}

// ExtractJob parses a job posting, then lets the enhancer contribute
// additional keywords when one is configured.
func (e *Engine) ExtractJob(ctx context.Context, raw string, hints types.JobPostingHints) types.JobRequirements {
	req := ExtractJobRequirements(raw, hints)
	e.enhanceJobKeywords(ctx, raw, &req)
	return req
}

// ExtractResume parses resume text. Fully deterministic.
func (e *Engine) ExtractResume(raw string) types.ResumeContent {
	return ExtractResumeContent(raw)
}

// Match scores a resume against a job posting.
func (e *Engine) Match(resume types.ResumeContent, job types.JobRequirements) types.MatchScore {
	return Score(resume, job)
}

// generate runs one enhancer call under the per-call timeout. The second
// return value reports whether the output is usable; every failure mode
// (no enhancer, error, empty output) collapses into "use the deterministic
// path".
func (e *Engine) generate(ctx context.Context, prompt string, maxTokens int32) (string, bool) {
	if e.enhancer == nil {
		return "", false
	}

	callCtx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	output, err := e.enhancer.Generate(callCtx, prompt, maxTokens)
	if err != nil {
		e.logger.Debug("enhancer call failed, using deterministic path", "error", err.Error())
		return "", false
	}
	output = trimGeneratedText(output)
	if output == "" {
		return "", false
	}
	return output, true
}
