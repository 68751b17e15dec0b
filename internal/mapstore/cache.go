package mapstore

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/thesrcielos/guildmaster/internal/apperrors"
	"github.com/thesrcielos/guildmaster/internal/tilemap"
	"go.uber.org/zap"
)

const (
	templatesKey = "map_templates"

	// DeployChannel carries one DeployEvent per finished deploy.
	DeployChannel = "maps:deployed"
)

type DeployEvent struct {
	BatchID    string    `json:"batchId"`
	Templates  []string  `json:"templates"`
	DeployedAt time.Time `json:"deployedAt"`
}

// Cache keeps the latest deployed templates in Redis and fans deploy
// notifications out to map servers.
type Cache interface {
	StoreAll(ctx context.Context, templates []tilemap.Template) error
	Get(ctx context.Context, name string) (*tilemap.Template, error)
	Set(ctx context.Context, t *tilemap.Template) error
	Names(ctx context.Context) ([]string, error)
	PublishDeployed(ctx context.Context, event DeployEvent) error
	SubscribeDeployed(ctx context.Context, fn func(DeployEvent)) error
}

type RedisCache struct {
	db     *redis.Client
	logger *zap.Logger
}

func NewRedisCache(db *redis.Client, logger *zap.Logger) *RedisCache {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RedisCache{db: db, logger: logger}
}

func (c *RedisCache) StoreAll(ctx context.Context, templates []tilemap.Template) error {
	fields := make(map[string]interface{}, len(templates))
	for _, t := range templates {
		data, err := json.Marshal(t)
		if err != nil {
			return apperrors.NewAppError(500, "Error serializing template", err)
		}
		fields[t.Name] = data
	}

	_, err := c.db.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, templatesKey)
		if len(fields) > 0 {
			pipe.HSet(ctx, templatesKey, fields)
		}
		return nil
	})
	if err != nil {
		return apperrors.NewAppError(500, "Error caching templates", err)
	}
	return nil
}

// Get returns nil, nil on a cache miss.
func (c *RedisCache) Get(ctx context.Context, name string) (*tilemap.Template, error) {
	val, err := c.db.HGet(ctx, templatesKey, name).Result()
	if err == redis.Nil {
		return nil, nil
	} else if err != nil {
		return nil, apperrors.NewAppError(500, "Error reading cached template", err)
	}

	var t tilemap.Template
	if err := json.Unmarshal([]byte(val), &t); err != nil {
		return nil, apperrors.NewAppError(500, "Error unmarshalling cached template", err)
	}
	return &t, nil
}

func (c *RedisCache) Set(ctx context.Context, t *tilemap.Template) error {
	data, err := json.Marshal(t)
	if err != nil {
		return apperrors.NewAppError(500, "Error serializing template", err)
	}
	if err := c.db.HSet(ctx, templatesKey, t.Name, data).Err(); err != nil {
		return apperrors.NewAppError(500, "Error caching template", err)
	}
	return nil
}

func (c *RedisCache) Names(ctx context.Context) ([]string, error) {
	names, err := c.db.HKeys(ctx, templatesKey).Result()
	if err != nil {
		return nil, apperrors.NewAppError(500, "Error listing cached templates", err)
	}
	sort.Strings(names)
	return names, nil
}

func (c *RedisCache) PublishDeployed(ctx context.Context, event DeployEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return apperrors.NewAppError(500, "Error serializing deploy event", err)
	}
	if err := c.db.Publish(ctx, DeployChannel, data).Err(); err != nil {
		return apperrors.NewAppError(500, "Error publishing deploy event", err)
	}
	return nil
}

// SubscribeDeployed calls fn for every deploy event until ctx is done.
func (c *RedisCache) SubscribeDeployed(ctx context.Context, fn func(DeployEvent)) error {
	sub := c.db.Subscribe(ctx, DeployChannel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return fmt.Errorf("subscribe %s: %w", DeployChannel, err)
	}

	c.logger.Info("subscribed to deploy channel", zap.String("channel", DeployChannel))
	ch := sub.Channel()
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				var event DeployEvent
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					c.logger.Warn("dropping malformed deploy event", zap.Error(err))
					continue
				}
				fn(event)
			}
		}
	}()
	return nil
}
