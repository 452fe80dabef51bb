package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

const defaultQueueSize = 64

type resultRepo interface {
	Save(ctx context.Context, result entity.GameResult) error
	ListByRoomID(ctx context.Context, roomID string) ([]entity.GameResult, error)
}

// HistoryService records finished games in the background. With no repository it is a no-op.
type HistoryService struct {
	logger *slog.Logger
	repo   resultRepo
	queue  chan entity.GameResult
}

func NewHistoryService(logger *slog.Logger, repo resultRepo, queueSize int) *HistoryService {
	if queueSize <= 0 {
		queueSize = defaultQueueSize
	}

	return &HistoryService{
		logger: logger.With("component", "history"),
		repo:   repo,
		queue:  make(chan entity.GameResult, queueSize),
	}
}

func (that *HistoryService) Enabled() bool {
	return that.repo != nil
}

// Record queues a result without blocking. When the queue is full the result is dropped.
func (that *HistoryService) Record(result entity.GameResult) {
	if !that.Enabled() {
		return
	}

	select {
	case that.queue <- result:
	default:
		that.logger.Warn("history queue is full, result dropped", "roomID", result.RoomID)
	}
}

// Run saves queued results until ctx is done. Results still queued at that point are flushed
// with a fresh context.
func (that *HistoryService) Run(ctx context.Context) {
	log := that.logger.With("method", "Run")

	if !that.Enabled() {
		return
	}

	for {
		select {
		case result := <-that.queue:
			that.save(ctx, result)
		case <-ctx.Done():
			that.flush()
			log.Info("history worker stopped")
			return
		}
	}
}

func (that *HistoryService) ListByRoomID(ctx context.Context, roomID string) ([]entity.GameResult, error) {
	if !that.Enabled() {
		return []entity.GameResult{}, nil
	}

	results, err := that.repo.ListByRoomID(ctx, roomID)
	if err != nil {
		return nil, fmt.Errorf("failed to list results: %w", err)
	}

	return results, nil
}

func (that *HistoryService) flush() {
	for {
		select {
		case result := <-that.queue:
			that.save(context.Background(), result)
		default:
			return
		}
	}
}

func (that *HistoryService) save(ctx context.Context, result entity.GameResult) {
	if err := that.repo.Save(ctx, result); err != nil {
		that.logger.Error("failed to save result", "roomID", result.RoomID, "error", err)
	}
}
