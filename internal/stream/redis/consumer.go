package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/povarna/generative-ai-agents/circuit-eval/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const (
	payloadField = "payload"
	statusOK     = "ok"
	statusError  = "error"
)

type Solver interface {
	Solve(ctx context.Context, req models.SolveRequest) (models.SolveResult, error)
}

// Consumer reads solve jobs from a stream through a consumer group and
// appends one entry per job to the result stream.
type Consumer struct {
	client       *redis.Client
	jobStream    string
	resultStream string
	groupID      string
	consumerName string
	solver       Solver
	logger       *zerolog.Logger
}

func NewConsumer(client *redis.Client, cfg *RedisStreamConfig, solver Solver, logger *zerolog.Logger) *Consumer {
	return &Consumer{
		client:       client,
		jobStream:    cfg.JobStream,
		resultStream: cfg.ResultStream,
		groupID:      cfg.Group,
		consumerName: cfg.ConsumerName,
		solver:       solver,
		logger:       logger,
	}
}

func (c *Consumer) Setup(ctx context.Context) error {
	err := c.client.XGroupCreateMkStream(ctx, c.jobStream, c.groupID, "0").Err()
	if err != nil && !strings.HasPrefix(err.Error(), "BUSYGROUP") {
		return err
	}
	return nil
}

func (c *Consumer) Start(ctx context.Context) error {
	c.logger.Info().
		Str("stream", c.jobStream).
		Str("group", c.groupID).
		Str("consumer", c.consumerName).
		Msg("Consumer started")

	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		msgs, err := c.client.XReadGroup(ctx, &redis.XReadGroupArgs{
			Group:    c.groupID,
			Consumer: c.consumerName,
			Streams:  []string{c.jobStream, ">"},
			Count:    1,
			Block:    2 * time.Second,
		}).Result()

		if err != nil {
			if errors.Is(err, redis.Nil) {
				// timeout, no message -> loop again
				continue
			}

			if ctx.Err() != nil {
				return ctx.Err() // context cancelled during block
			}

			c.logger.Error().Err(err).Msg("Failed to read from stream")
			continue
		}

		for _, stream := range msgs {
			for _, msg := range stream.Messages {
				c.process(ctx, msg)
			}
		}
	}
}

func (c *Consumer) Stop() error {
	return c.client.Close()
}

func (c *Consumer) process(ctx context.Context, msg redis.XMessage) {
	c.logger.Info().Str("id", msg.ID).Msg("Message received")

	payload, ok := msg.Values[payloadField].(string)
	if !ok {
		c.logger.Error().Str("id", msg.ID).Msg("Missing payload field")
		c.ack(ctx, msg.ID)
		return
	}

	var req models.SolveRequest
	if err := json.Unmarshal([]byte(payload), &req); err != nil {
		c.logger.Error().Err(err).Str("id", msg.ID).Msg("Failed to decode message")
		c.ack(ctx, msg.ID) // bad message, ACK to skip it
		return
	}
	if req.ID == "" {
		req.ID = msg.ID
	}

	result, err := c.solver.Solve(ctx, req)
	if err != nil {
		c.logger.Warn().Err(err).Str("id", req.ID).Msg("Solve failed")
		c.publish(ctx, req.ID, statusError, map[string]string{"error": err.Error()})
	} else {
		c.logger.Info().
			Str("id", req.ID).
			Uint16("part1", result.Part1).
			Bool("cached", result.Cached).
			Msg("Solve complete")
		c.publish(ctx, req.ID, statusOK, result)
	}

	c.ack(ctx, msg.ID)
}

func (c *Consumer) publish(ctx context.Context, id, status string, body any) {
	data, err := json.Marshal(body)
	if err != nil {
		c.logger.Error().Err(err).Str("id", id).Msg("Failed to encode result")
		return
	}

	err = c.client.XAdd(ctx, &redis.XAddArgs{
		Stream: c.resultStream,
		Values: map[string]any{
			"id":         id,
			"status":     status,
			payloadField: string(data),
		},
	}).Err()
	if err != nil {
		c.logger.Error().Err(err).Str("id", id).Msg("Failed to publish result")
	}
}

func (c *Consumer) ack(ctx context.Context, msgID string) {
	if err := c.client.XAck(ctx, c.jobStream, c.groupID, msgID).Err(); err != nil {
		c.logger.Error().Err(err).Str("id", msgID).Msg("Failed to ACK message")
	}
}
