package llm

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/hayato-coosy/kouseian/internal/brief"
	"github.com/hayato-coosy/kouseian/internal/prompt"
)

// Generator sends one prompt to a generation service in structured-output
// mode and returns the raw response text. Implementations never retry.
type Generator interface {
	Generate(ctx context.Context, prompt, systemInstruction string) (string, error)
}

// Pipeline turns a brief request into a normalized result: validate,
// compile, generate, parse.
type Pipeline struct {
	compiler  *prompt.Compiler
	generator Generator
}

// NewPipeline wires a compiler to a generator.
func NewPipeline(compiler *prompt.Compiler, generator Generator) (*Pipeline, error) {
	if compiler == nil {
		return nil, ErrCompilerNil
	}
	if generator == nil {
		return nil, ErrGeneratorNil
	}
	return &Pipeline{compiler: compiler, generator: generator}, nil
}

// GenerateBrief validates req and, if it is complete, makes exactly one
// generation call. Validation failures are returned as *brief.ValidationError
// without calling the generator.
func (p *Pipeline) GenerateBrief(ctx context.Context, req brief.Request) (brief.Result, error) {
	if err := req.Validate(); err != nil {
		return brief.Result{}, err
	}

	text, err := p.compiler.Compile(req)
	if err != nil {
		return brief.Result{}, err
	}

	raw, err := p.generator.Generate(ctx, text, p.compiler.SystemInstruction())
	if err != nil {
		return brief.Result{}, err
	}

	result, err := ParseBriefResult(raw)
	if err != nil {
		return brief.Result{}, err
	}
	log.Debug().Int("action_groups", len(result.Actions)).Msg("Brief generated and parsed")
	return result, nil
}

// callInfo is the metadata recorded for one generation call.
type callInfo struct {
	provider string
	endpoint string
	model    string
	status   int
	started  time.Time
	failed   bool
}

// logCall emits the single log line for a generation call. Only metadata is
// recorded; prompt and response text never reach the log.
func logCall(c callInfo) {
	ev := log.Info()
	if c.failed {
		ev = log.Warn()
	}
	ev.Str("provider", c.provider).
		Str("endpoint", c.endpoint).
		Int("status", c.status).
		Int64("duration_ms", time.Since(c.started).Milliseconds()).
		Str("model", c.model).
		Msg("generation call")
}

func upstreamError(provider string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrUpstreamUnavailable, provider, err)
}
