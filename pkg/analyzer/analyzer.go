// Package analyzer turns raw news items into scored topics. Two strategies implement
// the same Analyzer contract: a deterministic keyword heuristic and an LLM-backed scorer
// which falls back to the heuristic on any failure.
package analyzer

import (
	"context"
	"errors"
	"fmt"

	"github.com/umputun/ainews/pkg/config"
	"github.com/umputun/ainews/pkg/domain"
)

// errors of the llm path, never returned from Analyze
var (
	ErrTimeout       = errors.New("llm request timeout")
	ErrParse         = errors.New("malformed llm response")
	ErrEmptyResponse = errors.New("empty llm response")
)

// Analyzer scores a single news item. Implementations never fail, the worst case is
// a heuristic score.
type Analyzer interface {
	Analyze(ctx context.Context, item domain.RawNewsItem) domain.ScoredTopic
}

// Completer sends a system instruction and a user prompt to a text generation service
// and returns the raw completion text
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// New makes the analyzer selected by llm.provider. Heuristic scoring with the given
// keywords is used directly for the heuristic provider and as fallback otherwise.
func New(ctx context.Context, cfg config.LLMConfig, kw Keywords) (Analyzer, error) {
	heuristic := NewHeuristic(kw)

	switch cfg.Provider {
	case config.ProviderHeuristic:
		return heuristic, nil
	case config.ProviderOpenAI, config.ProviderZhipu:
		return NewLLM(NewOpenAICompleter(cfg), heuristic, cfg), nil
	case config.ProviderGemini:
		completer, err := NewGeminiCompleter(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return NewLLM(completer, heuristic, cfg), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", cfg.Provider)
	}
}
