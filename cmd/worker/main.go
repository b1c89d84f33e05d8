package main

import (
	"context"
	"log"
	"os"

	"outfitapi/dbhelper"
	"outfitapi/outfit"
	"outfitapi/services"
	"outfitapi/tasks"

	firebase "firebase.google.com/go/v4"
	"github.com/hibiken/asynq"
)

func runScheduler() {

	scheduler := asynq.NewScheduler(asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")}, &asynq.SchedulerOpts{
		LogLevel: asynq.InfoLevel,
	})

	scheduled := []struct {
		cron string
		task *asynq.Task
		desc string
	}{
		{
			cron: "0 * * * *", // hourly
			task: asynq.NewTask(tasks.TypeGenerationStats, nil),
			desc: "Generation stats summary",
		},
	}

	for _, t := range scheduled {
		entryID, err := scheduler.Register(t.cron, t.task)
		if err != nil {
			log.Fatalf("Failed to register task '%s': %v", t.desc, err)
		}
		log.Printf("Registered task '%s' with ID: %s, cron: %s", t.desc, entryID, t.cron)
	}

	log.Println("Starting scheduler...")
	if err := scheduler.Run(); err != nil {
		log.Fatalf("Scheduler failed: %v", err)
	}
}

func main() {
	srv := asynq.NewServer(
		asynq.RedisClientOpt{Addr: os.Getenv("ASYNC_BROKER_ADDRESS")},
		asynq.Config{Concurrency: 10, Queues: map[string]int{
			"generate": 7,
			"default":  3,
		}},
	)
	app, err := firebase.NewApp(context.Background(), nil)
	if err != nil {
		log.Fatalf("error initializing firebase app: %v\n", err)
		return
	}

	cacheService, err := outfit.NewCacheService(outfit.DefaultCacheTTL)
	if err != nil {
		log.Fatalf("error initializing outfit cache: %v\n", err)
	}
	llmProvider := services.GoogleLLMOutfitComposer{}
	deps := tasks.OutfitWorkerDeps{
		Generator: &services.FallbackOutfitGenerator{
			Primary:  &services.LLMOutfitGenerator{Provider: llmProvider, Model: services.Flash25},
			Fallback: services.RuleBasedOutfitGenerator{},
		},
		Semantic: &services.LLMSemanticValidator{Provider: llmProvider, Model: services.FlashLite25},
		Cache:    cacheService,
		Metrics:  services.NewGenerationMetricsSink(),
		FbApp:    app,
	}

	mux := asynq.NewServeMux()
	db := dbhelper.SetupDB()
	mux.HandleFunc(tasks.TypeOutfitGeneration, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleOutfitGenerationTask(ctx, t, db, deps)
	})
	mux.HandleFunc(tasks.TypeGenerationStats, func(ctx context.Context, t *asynq.Task) error {
		return tasks.HandleGenerationStatsTask(ctx, t, db, deps.Metrics)
	})

	go runScheduler()
	if err := srv.Run(mux); err != nil {
		log.Fatal(err)
	}
}
