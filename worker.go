package checkout

import (
	"context"

	"go.uber.org/zap"

	"coopmarket.io/checkout/models"
)

type EventProcessor interface {
	ProcessEvent(ctx context.Context, event *models.Event) error
}

// WorkerPool processes subscribed checkout events off the network callback so
// slow handlers never back-pressure NATS delivery.
type WorkerPool struct {
	workers   chan struct{}
	tasks     chan func()
	logger    *zap.Logger
	processor EventProcessor
}

func NewWorkerPool(size int, processor EventProcessor, logger *zap.Logger) *WorkerPool {
	wp := &WorkerPool{
		workers:   make(chan struct{}, size),
		tasks:     make(chan func(), 256),
		logger:    logger,
		processor: processor,
	}

	for i := 0; i < size; i++ {
		go wp.worker()
	}

	return wp
}

func (wp *WorkerPool) worker() {
	for task := range wp.tasks {
		wp.workers <- struct{}{}
		task()
		<-wp.workers
	}
}

func (wp *WorkerPool) Submit(ctx context.Context, event *models.Event) {
	wp.tasks <- func() {
		if err := wp.processor.ProcessEvent(ctx, event); err != nil {
			wp.logger.Error("Failed to process event",
				zap.Error(err),
				zap.String("event_type", string(event.Type)),
				zap.String("event_id", event.ID))
		}
	}
}

func (wp *WorkerPool) Shutdown() {
	close(wp.tasks)
}
