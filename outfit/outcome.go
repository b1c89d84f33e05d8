package outfit

import (
	"fmt"
	"strings"
	"time"
)

// GenerationUsage is what the base-generation collaborator reports about one
// attempt: which strategy produced the candidates and what it cost.
type GenerationUsage struct {
	Strategy         string
	Model            string
	InputTokenCount  int32
	OutputTokenCount int32
	TotalTokenCount  int32
}

// GenerationMeta travels with a finished outfit: how it was produced.
type GenerationMeta struct {
	Strategy     string
	Model        string
	CacheHit     bool
	Attempts     int
	RelaxedRetry bool
	Duration     time.Duration

	InputTokenCount  int32
	OutputTokenCount int32
	TotalTokenCount  int32
}

// GeneratedOutfit is the immutable result of a successful composition. The
// engine never mutates it after scoring.
type GeneratedOutfit struct {
	ID               string
	Items            []Item
	Confidence       float64
	ValidationPassed bool
	Meta             GenerationMeta
}

// ItemIDs returns the composed item ids in outfit order.
func (o *GeneratedOutfit) ItemIDs() []uint {
	ids := make([]uint, 0, len(o.Items))
	for _, item := range o.Items {
		ids = append(ids, item.ID)
	}
	return ids
}

// OutcomeKind tags the result of a single generation attempt.
type OutcomeKind int

const (
	OutcomeSuccess OutcomeKind = iota
	OutcomeRequirementsUnmet
	OutcomeValidationFailed
	OutcomeGenerationError
)

func (k OutcomeKind) String() string {
	switch k {
	case OutcomeSuccess:
		return "success"
	case OutcomeRequirementsUnmet:
		return "requirements_unmet"
	case OutcomeValidationFailed:
		return "validation_failed"
	case OutcomeGenerationError:
		return "generation_error"
	}
	return "unknown"
}

// AttemptOutcome is the tagged variant lower components hand to the
// orchestrator instead of throwing; only the orchestrator decides retry vs
// fail.
type AttemptOutcome struct {
	Kind    OutcomeKind
	Outfit  *GeneratedOutfit
	Missing []string
	Errors  []string
	Err     error
}

// failure renders a retryable outcome as one error for bookkeeping.
func (o AttemptOutcome) failure() error {
	switch o.Kind {
	case OutcomeRequirementsUnmet:
		return fmt.Errorf("requirements unmet: missing %s", strings.Join(o.Missing, ", "))
	case OutcomeValidationFailed:
		return fmt.Errorf("validation failed: %s", strings.Join(o.Errors, "; "))
	case OutcomeGenerationError:
		return o.Err
	}
	return nil
}

// InputValidationError marks a malformed request: fails immediately, never
// consumes an attempt.
type InputValidationError struct {
	Reason string
}

func (e *InputValidationError) Error() string {
	return "invalid generation input: " + e.Reason
}
