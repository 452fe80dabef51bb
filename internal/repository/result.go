package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rooms/internal/entity"
)

// ResultRepository keeps the most recent finished games of every room, newest first.
type ResultRepository interface {
	Save(ctx context.Context, result entity.GameResult) error
	ListByRoomID(ctx context.Context, roomID string) ([]entity.GameResult, error)
}

type dbResult struct {
	client      *redis.Client
	historySize int64
}

func NewResultRepository(client *redis.Client, historySize int64) ResultRepository {
	return &dbResult{
		client:      client,
		historySize: historySize,
	}
}

func (that *dbResult) Save(ctx context.Context, result entity.GameResult) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	resultKey := "results:" + result.RoomID
	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.LPush(ctx, resultKey, resultJSON)
		pipe.LTrim(ctx, resultKey, 0, that.historySize-1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save result: %w", err)
	}

	return nil
}

func (that *dbResult) ListByRoomID(ctx context.Context, roomID string) ([]entity.GameResult, error) {
	resultKey := "results:" + roomID

	response, err := that.client.LRange(ctx, resultKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get results by room ID: %w", err)
	}

	results := make([]entity.GameResult, 0, len(response))
	for _, item := range response {
		var result entity.GameResult
		if err = json.Unmarshal([]byte(item), &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}

		results = append(results, result)
	}

	return results, nil
}
