package worker

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/hibiken/asynq"

	"kalaconnect-backend/internal/domain/crafts"
	"kalaconnect-backend/internal/pipeline"
	"kalaconnect-backend/internal/queue"
)

// Processor plugs the craft pipeline into the asynq worker loop.
type Processor struct {
	pipe *pipeline.Pipeline
}

func NewProcessor(pipe *pipeline.Pipeline) *Processor {
	return &Processor{pipe: pipe}
}

// Handler registers the craft processing task handler.
func (p *Processor) Handler() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.ProcessCraftTask, p.handleProcess)
	return mux
}

func (p *Processor) handleProcess(ctx context.Context, task *asynq.Task) error {
	var payload queue.ProcessPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return fmt.Errorf("decode payload: %w", err)
	}

	err := p.pipe.Run(ctx, payload.CraftID)
	switch {
	case err == nil:
		log.Printf("craft %s processed", payload.CraftID)
		return nil
	case errors.Is(err, crafts.ErrConflict):
		// Another run already holds the lease for this craft.
		log.Printf("craft %s already picked up, skipping", payload.CraftID)
		return nil
	default:
		log.Printf("processing failed for craft %s: %v", payload.CraftID, err)
		return err
	}
}
