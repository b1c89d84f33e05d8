package outfit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/getsentry/sentry-go"
)

// BaseGenerator is the opaque base-outfit generation collaborator. It may be
// an LLM or a rule engine and may be non-deterministic; the orchestrator only
// sees the candidate items it returns, already classified.
type BaseGenerator interface {
	Generate(ctx context.Context, genCtx Context) ([]Item, GenerationUsage, error)
}

// SemanticValidator is an optional extra gate after the engine's own checks.
type SemanticValidator interface {
	Validate(ctx context.Context, outfit *GeneratedOutfit, genCtx Context) (valid bool, problems []string, err error)
}

// Persister durably stores a finalized outfit. Failures are logged, never
// surfaced: the response was already computed.
type Persister interface {
	Persist(ctx context.Context, genCtx Context, outfit *GeneratedOutfit, trace *Trace) error
}

// MetricsSink receives strategy, timing and failed-rule data. Fire and
// forget; a broken sink must never break a request.
type MetricsSink interface {
	Record(strategy string, duration time.Duration, cacheHit bool, failedRules []string)
}

const (
	DefaultMaxAttempts = 3
	DefaultRetryDelay  = 500 * time.Millisecond

	// measured for observability only, never used to abort work
	slowRequestThreshold = 10 * time.Second
)

// Orchestrator sequences the generation pipeline: cache check, up to
// MaxAttempts sequential generation attempts, cache write, persistence and
// metrics. It is the only component that decides retry vs fail.
type Orchestrator struct {
	Generator BaseGenerator
	Semantic  SemanticValidator
	Cache     *CacheService
	Persister Persister
	Metrics   MetricsSink

	MaxAttempts int
	RetryDelay  time.Duration
}

func NewOrchestrator(generator BaseGenerator, cacheService *CacheService) *Orchestrator {
	return &Orchestrator{
		Generator:   generator,
		Cache:       cacheService,
		MaxAttempts: DefaultMaxAttempts,
		RetryDelay:  DefaultRetryDelay,
	}
}

// Generate runs the full pipeline for one request. Input-shape problems fail
// immediately with *InputValidationError without consuming an attempt.
func (o *Orchestrator) Generate(ctx context.Context, genCtx Context) (*GeneratedOutfit, *Trace, error) {
	trace := &Trace{}
	if err := validateInput(genCtx); err != nil {
		return nil, trace, err
	}

	start := time.Now()
	fingerprint := genCtx.Fingerprint()
	shortFP := fingerprint[:12]

	if o.Cache != nil {
		if cached, ok := o.Cache.Get(ctx, fingerprint); ok {
			if o.Cache.Revalidate(cached, genCtx.Wardrobe) {
				fmt.Printf("[Outfit %s] Cache hit, reusing composed outfit\n", shortFP)
				trace.Strategy = cached.Meta.Strategy
				trace.Add("cache", "hit")
				hit := *cached
				hit.Meta.CacheHit = true
				hit.Meta.Duration = time.Since(start)
				o.report(trace, hit.Meta.Duration, true)
				return &hit, trace, nil
			}
			fmt.Printf("[Outfit %s] Cache entry references removed items, evicting\n", shortFP)
			trace.Add("cache", "stale entry evicted")
			o.Cache.Evict(ctx, fingerprint)
		} else {
			trace.Add("cache", "miss")
		}
	}

	maxAttempts := o.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	retryDelay := o.RetryDelay
	if retryDelay <= 0 {
		retryDelay = DefaultRetryDelay
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		outcome := o.attempt(ctx, genCtx, trace)
		if outcome.Kind == OutcomeSuccess {
			outfit := outcome.Outfit
			outfit.ID = fingerprint
			outfit.Meta.Attempts = attempt
			outfit.Meta.Duration = time.Since(start)

			if o.Cache != nil {
				o.Cache.Set(ctx, fingerprint, outfit)
				trace.Add("cache", "stored")
			}
			if o.Persister != nil {
				if err := o.Persister.Persist(ctx, genCtx, outfit, trace); err != nil {
					fmt.Printf("[Outfit %s] Persist failed (response already computed): %v\n", shortFP, err)
					sentry.CaptureException(fmt.Errorf("[Outfit %s] persist failed: %w", shortFP, err))
				}
			}
			if outfit.Meta.Duration > slowRequestThreshold {
				fmt.Printf("[Outfit %s] Slow generation: %.2fs over %d attempts\n", shortFP, outfit.Meta.Duration.Seconds(), attempt)
			}
			o.report(trace, outfit.Meta.Duration, false)
			return outfit, trace, nil
		}

		lastErr = outcome.failure()
		trace.Add("attempt", fmt.Sprintf("%d/%d %s: %v", attempt, maxAttempts, outcome.Kind, lastErr))
		fmt.Printf("[Outfit %s] Attempt %d/%d failed (%s): %v\n", shortFP, attempt, maxAttempts, outcome.Kind, lastErr)

		if attempt < maxAttempts {
			select {
			case <-ctx.Done():
				return nil, trace, ctx.Err()
			case <-time.After(retryDelay):
			}
		}
	}

	o.report(trace, time.Since(start), false)
	return nil, trace, fmt.Errorf("outfit generation failed after %d attempts: %w", maxAttempts, lastErr)
}

// attempt runs one pass of the composition pipeline and reports the outcome
// as a value; it never decides whether to retry.
func (o *Orchestrator) attempt(ctx context.Context, genCtx Context, trace *Trace) AttemptOutcome {
	raw, usage, err := o.Generator.Generate(ctx, genCtx)
	if err != nil {
		return AttemptOutcome{Kind: OutcomeGenerationError, Err: fmt.Errorf("base generation: %w", err)}
	}
	trace.Strategy = usage.Strategy
	trace.Add("generate", fmt.Sprintf("%d candidates from %s", len(raw), usage.Strategy))

	kept := Enforce(raw, genCtx.Occasion)
	trace.Add("enforce", fmt.Sprintf("kept %d of %d candidates", len(kept), len(raw)))
	if belowMin := MissingMinimums(kept, genCtx.Occasion); len(belowMin) > 0 {
		trace.Add("enforce", "below occasion minimums: "+strings.Join(belowMin, ", "))
	}

	relaxed := false
	missing, violations := CheckRequirements(kept, genCtx.Occasion)
	if len(missing) > 0 {
		trace.Add("requirements", "missing "+strings.Join(missing, ", ")+", retrying with widened aliases")
		kept = ResolveRelaxed(kept, raw, missing, genCtx.Occasion)
		relaxed = true
		missing, violations = CheckRequirementsRelaxed(kept, genCtx.Occasion)
	}
	if len(missing) > 0 {
		for _, m := range missing {
			trace.Fail("required:" + m)
		}
		return AttemptOutcome{Kind: OutcomeRequirementsUnmet, Missing: missing}
	}
	if len(violations) > 0 {
		for _, v := range violations {
			trace.Fail("forbidden:" + v)
		}
		return AttemptOutcome{Kind: OutcomeValidationFailed, Errors: violations}
	}

	layering := ValidateLayering(kept, genCtx.Weather.TemperatureF)
	for _, warning := range layering.Warnings {
		trace.Add("layering", "warning: "+warning)
	}
	if !layering.IsValid {
		for _, layeringErr := range layering.Errors {
			trace.Fail("layering:" + layeringErr)
		}
		for _, suggestion := range Suggestions(kept, genCtx.Weather.TemperatureF) {
			trace.Add("layering", "suggestion: "+suggestion)
		}
		return AttemptOutcome{Kind: OutcomeValidationFailed, Errors: layering.Errors}
	}

	validationPassed := !relaxed
	outfit := &GeneratedOutfit{
		Items:            kept,
		Confidence:       Score(kept, validationPassed, genCtx.Occasion),
		ValidationPassed: validationPassed,
		Meta: GenerationMeta{
			Strategy:         usage.Strategy,
			Model:            usage.Model,
			RelaxedRetry:     relaxed,
			InputTokenCount:  usage.InputTokenCount,
			OutputTokenCount: usage.OutputTokenCount,
			TotalTokenCount:  usage.TotalTokenCount,
		},
	}
	trace.Add("score", fmt.Sprintf("confidence %.2f", outfit.Confidence))

	if o.Semantic != nil {
		valid, problems, err := o.Semantic.Validate(ctx, outfit, genCtx)
		if err != nil {
			return AttemptOutcome{Kind: OutcomeValidationFailed, Errors: []string{fmt.Sprintf("semantic validation error: %v", err)}}
		}
		if !valid {
			for _, problem := range problems {
				trace.Fail("semantic:" + problem)
			}
			return AttemptOutcome{Kind: OutcomeValidationFailed, Errors: problems}
		}
		trace.Add("semantic", "passed")
	}

	return AttemptOutcome{Kind: OutcomeSuccess, Outfit: outfit}
}

func (o *Orchestrator) report(trace *Trace, duration time.Duration, cacheHit bool) {
	if o.Metrics == nil {
		return
	}
	defer func() {
		if r := recover(); r != nil {
			fmt.Printf("[Metrics] Sink panic swallowed: %v\n", r)
		}
	}()
	o.Metrics.Record(trace.Strategy, duration, cacheHit, trace.FailedRules)
}

func validateInput(genCtx Context) error {
	switch {
	case strings.TrimSpace(genCtx.Occasion) == "":
		return &InputValidationError{Reason: "occasion is required"}
	case strings.TrimSpace(genCtx.Style) == "":
		return &InputValidationError{Reason: "style is required"}
	case strings.TrimSpace(genCtx.Mood) == "":
		return &InputValidationError{Reason: "mood is required"}
	case len(genCtx.Wardrobe) == 0:
		return &InputValidationError{Reason: "wardrobe snapshot is empty"}
	}
	return nil
}
