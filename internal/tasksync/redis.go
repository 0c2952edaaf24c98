package tasksync

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const DefaultRedisChannel = "labelguild:tasks"

type redisMessage struct {
	Origin string `json:"origin"`
}

// RedisChannel publishes one message per local write on a pub/sub channel
// and forwards messages from other origins.
type RedisChannel struct {
	client     *redis.Client
	channel    string
	retryDelay time.Duration
}

func NewRedisChannel(client *redis.Client, channel string) *RedisChannel {
	if channel == "" {
		channel = DefaultRedisChannel
	}
	return &RedisChannel{
		client:     client,
		channel:    channel,
		retryDelay: time.Second,
	}
}

func (c *RedisChannel) Emit(ctx context.Context, origin string) error {
	payload, err := json.Marshal(redisMessage{Origin: origin})
	if err != nil {
		return err
	}
	return c.client.Publish(ctx, c.channel, payload).Err()
}

func (c *RedisChannel) Listen(ctx context.Context, out chan<- Signal) error {
	for {
		err := c.listen(ctx, out)
		if ctx.Err() != nil {
			return nil
		}
		slog.Warn("task sync: redis subscription lost, retrying", "channel", c.channel, "error", err)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(c.retryDelay):
		}
	}
}

func (c *RedisChannel) listen(ctx context.Context, out chan<- Signal) error {
	sub := c.client.Subscribe(ctx, c.channel)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		return err
	}

	msgs := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-msgs:
			if !ok {
				return errors.New("subscription closed")
			}
			var m redisMessage
			if err := json.Unmarshal([]byte(msg.Payload), &m); err != nil {
				slog.Warn("task sync: ignoring malformed redis message", "payload", msg.Payload, "error", err)
				continue
			}
			send(ctx, out, Signal{Origin: m.Origin})
		}
	}
}
