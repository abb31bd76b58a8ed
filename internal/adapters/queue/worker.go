package queue

import (
	"context"
	"errors"
	"log/slog"

	"github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/domain"
	portssvc "github.com/dimitrizarkua/SaaS-Backend-Laravel-sub004/internal/core/ports/services"
	"github.com/hibiken/asynq"
)

// Worker wraps the asynq server that consumes ledger events.
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger *slog.Logger
}

// WorkerConfig collects dependencies required to bootstrap the worker.
type WorkerConfig struct {
	RedisOpts   asynq.RedisClientOpt
	Logger      *slog.Logger
	Concurrency int
	Indexer     portssvc.TransactionIndexer
}

// NewWorker constructs a Worker with every ledger handler registered.
func NewWorker(cfg WorkerConfig) *Worker {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = 5
	}
	if cfg.Indexer == nil {
		cfg.Indexer = NewLogIndexer(cfg.Logger)
	}
	srv := asynq.NewServer(cfg.RedisOpts, asynq.Config{
		Concurrency: cfg.Concurrency,
		Queues: map[string]int{
			QueueLedger: 1,
		},
		Logger: newAsynqLogger(cfg.Logger),
	})
	return &Worker{server: srv, mux: NewServeMux(cfg.Indexer), logger: cfg.Logger}
}

// NewServeMux routes every ledger event type to its handler.
func NewServeMux(indexer portssvc.TransactionIndexer) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(domain.EventTransactionCommitted, HandleTransactionCommitted(indexer))
	return mux
}

// Run processes tasks until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	if w == nil {
		return errors.New("worker: not configured")
	}
	errCh := make(chan error, 1)
	go func() {
		errCh <- w.server.Run(w.mux)
	}()
	select {
	case <-ctx.Done():
		w.server.Shutdown()
		w.logger.Info("Queue worker stopped")
		return nil
	case err := <-errCh:
		return err
	}
}
