package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"

	"github.com/artem13815/cvdesk/pkg/config"
	"github.com/artem13815/cvdesk/pkg/cv"
	"github.com/artem13815/cvdesk/pkg/events"
	"github.com/artem13815/cvdesk/pkg/llm"
	"github.com/artem13815/cvdesk/pkg/llm/openrouter"
	"github.com/artem13815/cvdesk/pkg/nlp"
	"github.com/artem13815/cvdesk/pkg/profile"
	pgrepo "github.com/artem13815/cvdesk/pkg/repository/postgres"
	"github.com/artem13815/cvdesk/pkg/storage/objectstore"
	"github.com/artem13815/cvdesk/pkg/storage/postgres"
	"github.com/artem13815/cvdesk/pkg/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL не задан")
	}

	pool, err := postgres.Connect(ctx, cfg.DatabaseURL, int32(cfg.DBMaxConns))
	if err != nil {
		log.Fatalf("connect database: %v", err)
	}
	defer pool.Close()
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, "up"); err != nil {
			log.Fatalf("migrate: %v", err)
		}
	}
	repo := pgrepo.NewCVRepository(pool)

	store, err := objectstore.New(ctx, cfg.Storage)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}
	if err := store.EnsureBucket(ctx); err != nil {
		log.Fatalf("ensure bucket: %v", err)
	}

	var notifier cv.StatusNotifier = events.LogNotifier{}
	if cfg.AMQPURL != "" {
		pub, err := events.Dial(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			log.Fatalf("init events: %v", err)
		}
		defer pub.Close()
		notifier = pub
	}

	// Profiles are built heuristically unless an LLM is configured.
	var model llm.ChatModel
	if cfg.OpenRouterAPIKey != "" {
		model = openrouter.New(cfg.OpenRouterAPIKey,
			openrouter.WithBaseURL(cfg.OpenRouterBaseURL),
			openrouter.WithModel(cfg.OpenRouterModel),
		)
	}
	builder := profile.NewBuilder(model, nlp.DefaultCatalog)

	server := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}, asynq.Config{
		Concurrency: cfg.WorkerConcurrency,
	})
	processor := worker.NewProcessor(repo, store, builder, notifier)

	if err := server.Start(processor.Handler()); err != nil {
		log.Printf("worker start: %v", err)
		os.Exit(1)
	}
	log.Printf("worker started (concurrency %d)", cfg.WorkerConcurrency)

	<-ctx.Done()
	log.Println("worker shutting down")
	server.Shutdown()
}
