package review

import (
	"context"
	"log"
)

// DefaultMaxRetries is how many provider attempts are made before the
// orchestrator gives up and serves a curated fallback.
const DefaultMaxRetries = 5

// Generator produces raw review text from a prompt. It is the capability
// boundary to the generation provider; implementations report transport and
// credential failures as llm.ErrProviderUnavailable.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Service orchestrates the pipeline: build prompt, call the provider until a
// fresh (non-duplicate) result arrives or attempts run out, fall back to a
// curated review otherwise. Generate never fails; the fallback pool is the
// guaranteed terminal branch.
type Service struct {
	generator  Generator // nil means no credentials configured
	store      *SeenStore
	rng        *Rand
	maxRetries int
}

// Option configures a Service.
type Option func(*Service)

// WithMaxRetries overrides the attempt budget.
func WithMaxRetries(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxRetries = n
		}
	}
}

// WithRand injects a randomness source (tests pass a seeded one).
func WithRand(r *Rand) Option {
	return func(s *Service) { s.rng = r }
}

// NewService creates a pipeline service. A nil generator is valid and routes
// every request straight to the fallback synthesizer.
func NewService(generator Generator, store *SeenStore, opts ...Option) *Service {
	s := &Service{
		generator:  generator,
		store:      store,
		maxRetries: DefaultMaxRetries,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.store == nil {
		s.store = NewSeenStore()
	}
	if s.rng == nil {
		s.rng = NewTimeRand()
	}
	return s
}

// Rand exposes the service's randomness source so callers can reuse it for
// mistake injection.
func (s *Service) Rand() *Rand {
	return s.rng
}

// Generate runs the pipeline for one request. The returned result always
// carries non-empty text; provider failures and retry exhaustion both resolve
// to the curated fallback, never to an error the caller has to surface.
func (s *Service) Generate(ctx context.Context, req Request) Result {
	rating := clampRating(req.StarRating)
	language := resolveLanguage(req.Language)

	if s.generator != nil {
		prompt := BuildPrompt(req)
		for attempt := 1; attempt <= s.maxRetries; attempt++ {
			text, err := s.generator.Generate(ctx, prompt)
			if err != nil {
				// Missing credentials or a dead provider will not heal between
				// attempts; go straight to the fallback pool.
				log.Printf("[review] provider unavailable on attempt %d: %v", attempt, err)
				break
			}
			hash := Fingerprint(text)
			if s.store.CheckAndAdd(hash) {
				// Formatting slips are logged but still served; the prompt is
				// the enforcement mechanism, not a post-hoc reject.
				if violations := CheckConstraints(text); len(violations) > 0 {
					log.Printf("[review] accepted result with formatting issues (hash %s): %v", hash, violations)
				}
				return Result{Text: text, Hash: hash, Language: language, Rating: rating}
			}
			log.Printf("[review] duplicate result on attempt %d/%d (hash %s)", attempt, s.maxRetries, hash)
		}
	}

	text := Fallback(rating, req.BusinessName, language, s.rng)
	hash := Fingerprint(text)
	// Register fallback texts too, so the same wording is not later served as
	// a "fresh" provider result. Repeats across fallback calls are fine.
	s.store.Add(hash)
	return Result{Text: text, Hash: hash, Language: language, Rating: rating, Fallback: true}
}
