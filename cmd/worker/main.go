package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/hibiken/asynq"

	"kalaconnect-backend/config"
	"kalaconnect-backend/database"
	"kalaconnect-backend/internal/domain/crafts"
	"kalaconnect-backend/internal/infra/ai"
	"kalaconnect-backend/internal/infra/events"
	"kalaconnect-backend/internal/pipeline"
	"kalaconnect-backend/internal/worker"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	config.LoadEnv()
	database.InitDB()

	suite, err := ai.FromConfig()
	if err != nil {
		log.Fatalf("ai provider setup failed: %v", err)
	}

	store := crafts.NewGormStore(database.DB)
	pub := events.FromConfig()
	pipe := pipeline.New(store, suite, pub, config.TARGET_LANGUAGE)

	concurrency, err := strconv.Atoi(config.WORKER_POOL)
	if err != nil || concurrency < 1 {
		concurrency = 4
	}

	server := asynq.NewServer(asynq.RedisClientOpt{
		Addr:     config.REDIS_ADDR,
		Password: config.REDIS_PASSWORD,
	}, asynq.Config{
		Concurrency: concurrency,
	})
	processor := worker.NewProcessor(pipe)
	mux := processor.Handler()

	go func() {
		<-ctx.Done()
		server.Shutdown()
	}()

	if err := server.Run(mux); err != nil {
		log.Printf("worker stopped: %v", err)
		os.Exit(1)
	}
}
