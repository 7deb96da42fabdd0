package queue

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"

	"kalaconnect-backend/config"
)

const (
	// ProcessCraftTask is scheduled once per craft after its upload completes.
	ProcessCraftTask = "craft:process"
)

// ProcessPayload tells the worker which craft to run the pipeline for.
type ProcessPayload struct {
	CraftID string `json:"craft_id"`
}

var Client *asynq.Client

// Init creates the shared enqueue client used by the API process.
func Init() {
	Client = asynq.NewClient(asynq.RedisClientOpt{
		Addr:     config.REDIS_ADDR,
		Password: config.REDIS_PASSWORD,
	})
	fmt.Println("✅ Task queue client ready:", config.REDIS_ADDR)
}

// EnqueueProcess schedules a pipeline run. Retries are disabled: a failed
// craft is recovered by manual re-upload, not by the queue.
func EnqueueProcess(ctx context.Context, client *asynq.Client, craftID string) error {
	data, err := json.Marshal(ProcessPayload{CraftID: craftID})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	task := asynq.NewTask(ProcessCraftTask, data)
	if _, err := client.EnqueueContext(ctx, task, asynq.MaxRetry(0)); err != nil {
		return fmt.Errorf("enqueue process task: %w", err)
	}
	return nil
}
