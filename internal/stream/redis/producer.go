package redis

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/redis/go-redis/v9"
)

type Producer struct {
	client *redis.Client
	stream string
}

func NewProducer(client *redis.Client, stream string) *Producer {
	return &Producer{client: client, stream: stream}
}

// Publish appends a solve job and returns its stream entry ID.
func (p *Producer) Publish(ctx context.Context, req models.SolveRequest) (string, error) {
	data, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("failed to encode job: %w", err)
	}

	id, err := p.client.XAdd(ctx, &redis.XAddArgs{
		Stream: p.stream,
		Values: map[string]any{payloadField: string(data)},
	}).Result()
	if err != nil {
		return "", fmt.Errorf("failed to publish to %s: %w", p.stream, err)
	}
	return id, nil
}
