package session

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/storefront-gateway/internal/config"
)

// redisStorage persists session entries in Redis and relays mutations over a
// pub/sub channel so every gateway replica observes foreign changes. Messages
// carry the writer's origin ID; a replica never receives its own writes back.
type redisStorage struct {
	client  *redis.Client
	prefix  string
	channel string
	origin  string
	logger  *zap.Logger
}

// NewRedisStorage connects to Redis using the provided configuration.
func NewRedisStorage(redisCfg config.RedisConfig, sessionCfg config.SessionConfig, logger *zap.Logger) Storage {
	client := redis.NewClient(&redis.Options{
		Addr:     redisCfg.Addr,
		Password: redisCfg.Password,
		DB:       redisCfg.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("unable to reach redis", zap.Error(err))
	} else {
		logger.Info("connected to redis")
	}

	return &redisStorage{
		client:  client,
		prefix:  sessionCfg.KeyPrefix,
		channel: sessionCfg.ChangeChannel,
		origin:  uuid.NewString(),
		logger:  logger,
	}
}

func (r *redisStorage) Origin() string { return r.origin }

func (r *redisStorage) Get(ctx context.Context, key string) (string, bool, error) {
	value, err := r.client.Get(ctx, r.prefix+key).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

func (r *redisStorage) Set(ctx context.Context, key, value string) error {
	previous, err := r.client.GetSet(ctx, r.prefix+key, value).Result()
	if err != nil && err != redis.Nil {
		return err
	}

	// Storage change events only fire when the value actually changed,
	// matching browser semantics and terminating replica relay chains.
	if err == nil && previous == value {
		return nil
	}
	r.publish(ctx, Change{Key: key, Value: value, Present: true, Origin: r.origin})
	return nil
}

func (r *redisStorage) Delete(ctx context.Context, key string) error {
	removed, err := r.client.Del(ctx, r.prefix+key).Result()
	if err != nil {
		return err
	}
	if removed == 0 {
		return nil
	}
	r.publish(ctx, Change{Key: key, Present: false, Origin: r.origin})
	return nil
}

// Watch subscribes to the change channel. Canceling ctx closes the
// subscription, which ends the relay goroutine and closes the stream.
func (r *redisStorage) Watch(ctx context.Context) (<-chan Change, error) {
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		return nil, err
	}

	go func() {
		<-ctx.Done()
		if err := sub.Close(); err != nil {
			r.logger.Warn("failed to close session change subscription", zap.Error(err))
		}
	}()

	changes := make(chan Change, 16)
	go func() {
		defer close(changes)
		for msg := range sub.Channel() {
			var change Change
			if err := json.Unmarshal([]byte(msg.Payload), &change); err != nil {
				r.logger.Warn("malformed session change message", zap.Error(err))
				continue
			}
			if change.Origin == r.origin {
				continue
			}
			changes <- change
		}
	}()
	return changes, nil
}

func (r *redisStorage) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisStorage) Close() error {
	return r.client.Close()
}

func (r *redisStorage) publish(ctx context.Context, change Change) {
	payload, err := json.Marshal(change)
	if err != nil {
		return
	}
	if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
		r.logger.Warn("failed to publish session change", zap.Error(err))
	}
}
