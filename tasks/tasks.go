package tasks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"outfitapi/models"
	"outfitapi/outfit"
	"outfitapi/services"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	TypeOutfitGeneration = "generate:outfit"
	TypeGenerationStats  = "stats:generation"
)

type OutfitGenerationPayload struct {
	GenerationID uint `json:"generation_id"`
}

// Client initializes an asynq client for enqueuing tasks
func NewClient() (*asynq.Client, error) {
	return asynq.NewClient(asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")}), nil
}

// NewOutfitGenerationTask enqueues one pending generation row for composing.
func NewOutfitGenerationTask(generationID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(OutfitGenerationPayload{GenerationID: generationID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeOutfitGeneration, payload), nil

}

func NewGenerationStatsTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeGenerationStats, nil), nil
}

// OutfitWorkerDeps is the shared worker wiring: one generator, semantic gate,
// cache and metrics sink across all tasks. Per-task state (the generation row
// persister) is built inside the handler.
type OutfitWorkerDeps struct {
	Generator outfit.BaseGenerator
	Semantic  outfit.SemanticValidator
	Cache     *outfit.CacheService
	Metrics   *services.GenerationMetricsSink
	FbApp     *firebase.App
}

// HandleOutfitGenerationTask loads the pending generation row, snapshots the
// user's closet, runs the composition pipeline and saves the result. A
// malformed request fails the row permanently; transient failures ride the
// asynq retry.
func HandleOutfitGenerationTask(ctx context.Context, t *asynq.Task, db *gorm.DB, deps OutfitWorkerDeps) error {
	var payload OutfitGenerationPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	fmt.Printf("[Generation: %v] Start Processing\n", payload.GenerationID)

	var generation models.OutfitGeneration
	res := db.First(&generation, payload.GenerationID)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[QUEUE] Error on retrieving generation for processing %v", payload.GenerationID))
		return res.Error
	}
	if generation.Status == "completed" {
		fmt.Printf("[Generation: %v] Already completed, skipping\n", payload.GenerationID)
		return nil
	}

	var clothes []models.ClothingItem
	res = db.Where("owner_id = ? AND status = ?", generation.UserAccountID, "in_closet").
		Order("id asc").Find(&clothes)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Generation: %v] Error on loading wardrobe: %v", payload.GenerationID, res.Error))
		return res.Error
	}
	fmt.Printf("[Generation: %v] Wardrobe snapshot: %d items\n", payload.GenerationID, len(clothes))

	genCtx := outfit.Context{
		UserID:   generation.UserAccountID,
		Occasion: generation.Occasion,
		Style:    generation.Style,
		Mood:     generation.Mood,
		Weather: outfit.Weather{
			TemperatureF: generation.TemperatureF,
			Condition:    generation.WeatherCondition,
		},
		BaseItemID: generation.BaseItemID,
		Wardrobe:   outfit.NewItems(clothes),
	}

	orchestrator := outfit.NewOrchestrator(deps.Generator, deps.Cache)
	orchestrator.Semantic = deps.Semantic
	orchestrator.Metrics = deps.Metrics
	orchestrator.Persister = &generationPersister{db: db, generation: &generation}

	composed, trace, err := orchestrator.Generate(ctx, genCtx)
	if err != nil {
		var inputErr *outfit.InputValidationError
		if errors.As(err, &inputErr) {
			fmt.Printf("[Generation: %v] Invalid input: %v\n", payload.GenerationID, inputErr)
			saveOutfitGenerationFail(db, generation, inputErr.Reason, false)
			return nil
		}
		fmt.Printf("[Generation: %v] Generation failed: %v\n", payload.GenerationID, err)
		sentry.CaptureException(fmt.Errorf("[Generation: %v] Generation failed: %w", payload.GenerationID, err))
		saveOutfitGenerationFail(db, generation, "Could not compose an outfit from your closet, please try different filters", true)
		return err
	}

	// a cache hit returns before the persister runs, save here in that case
	if generation.Status != "completed" {
		applyResult(&generation, composed, trace)
		if saveErr := db.Save(&generation).Error; saveErr != nil {
			sentry.CaptureException(fmt.Errorf("[Generation: %v] Error on saving result: %w", payload.GenerationID, saveErr))
			return saveErr
		}
	}

	fmt.Printf("[Generation: %v] Finished successfully, confidence %.2f\n", payload.GenerationID, composed.Confidence)

	var user models.UserAccount
	if db.First(&user, generation.UserAccountID).Error == nil && user.ReceiveNotifications && deps.FbApp != nil {
		fmt.Printf("[Generation: %v] Sending notification to user %v\n", payload.GenerationID, user.ID)
		services.SendNotification(deps.FbApp, db, user.ID, "Outfit Ready",
			fmt.Sprintf("Your %s outfit is ready to wear", generation.Occasion),
			map[string]string{"generation_id": fmt.Sprintf("%d", generation.ID), "type": "outfit_generated"})
	}
	return nil
}

// generationPersister writes the composed outfit back onto its generation row.
// The orchestrator calls it once per successful generation; failures there are
// logged, not surfaced.
type generationPersister struct {
	db         *gorm.DB
	generation *models.OutfitGeneration
}

func (p *generationPersister) Persist(_ context.Context, _ outfit.Context, composed *outfit.GeneratedOutfit, trace *outfit.Trace) error {
	applyResult(p.generation, composed, trace)
	return p.db.Save(p.generation).Error
}

func applyResult(generation *models.OutfitGeneration, composed *outfit.GeneratedOutfit, trace *outfit.Trace) {
	itemIDs := make(pq.Int64Array, 0, len(composed.Items))
	for _, id := range composed.ItemIDs() {
		itemIDs = append(itemIDs, int64(id))
	}
	durationSeconds := composed.Meta.Duration.Seconds()
	confidence := composed.Confidence

	generation.ItemIDs = itemIDs
	generation.Status = "completed"
	generation.Confidence = &confidence
	generation.ValidationPassed = composed.ValidationPassed
	generation.RelaxedRetry = composed.Meta.RelaxedRetry
	generation.CacheHit = composed.Meta.CacheHit
	generation.AttemptsUsed = composed.Meta.Attempts
	generation.Duration = &durationSeconds
	generation.GenerationErrorMessage = nil
	if trace != nil && trace.Strategy != "" {
		generation.Strategy = services.StrPointer(trace.Strategy)
	} else {
		generation.Strategy = services.StrPointer(composed.Meta.Strategy)
	}
	if composed.Meta.Model != "" {
		generation.LLMModel = services.StrPointer(composed.Meta.Model)
		generation.LLMInputTokenCount = &composed.Meta.InputTokenCount
		generation.LLMOutputTokenCount = &composed.Meta.OutputTokenCount
		generation.LLMTotalTokenCount = &composed.Meta.TotalTokenCount
	}
}

func saveOutfitGenerationFail(db *gorm.DB, generation models.OutfitGeneration, msg string, shouldRetry bool) error {
	generation.GenerationRetryTimes = generation.GenerationRetryTimes + 1
	generation.GenerationErrorMessage = &msg
	if !shouldRetry || generation.GenerationRetryTimes >= 3 {

		generation.Status = "failed"
	}
	tx := db.Save(&generation)
	if tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Fail Generation %v] Error on saving generation for failed status", generation.ID))
		return tx.Error
	}
	return nil
}

// HandleGenerationStatsTask runs on the scheduler and logs a periodic summary
// of the in-process metrics plus DB-level counts for the last day.
func HandleGenerationStatsTask(ctx context.Context, t *asynq.Task, db *gorm.DB, metrics *services.GenerationMetricsSink) error {
	fmt.Printf("[Stats] Generation stats summary\n")
	if metrics != nil {
		metrics.LogStats()
	}

	since := time.Now().Add(-24 * time.Hour)
	type statusCount struct {
		Status string
		Count  int64
	}
	var counts []statusCount
	res := db.Model(&models.OutfitGeneration{}).
		Select("status, count(*) as count").
		Where("created_at > ?", since).
		Group("status").
		Scan(&counts)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Stats] Error counting generations: %v", res.Error))
		return res.Error
	}
	for _, c := range counts {
		fmt.Printf("[Stats] Last 24h %s: %d\n", c.Status, c.Count)
	}
	return nil
}
