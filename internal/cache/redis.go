package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/skigrip-bot/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "skigrip"

// conn 封装客户端与键前缀，未启用时保持 nil
type conn struct {
	rdb    *redis.Client
	prefix string
}

var active *conn

// InitRedis 按配置建立 Redis 连接，未启用时保持降级模式
func InitRedis(cfg *config.RedisConfig) error {
	if cfg == nil || !cfg.Enabled {
		active = nil
		return nil
	}

	host := strings.TrimSpace(cfg.Host)
	if host == "" {
		host = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}

	active = &conn{
		rdb: redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", host, port),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: prefix,
	}
	return nil
}

// Enabled 缓存是否可用
func Enabled() bool {
	return active != nil && active.rdb != nil
}

// Client 返回底层客户端，未启用时为 nil
func Client() *redis.Client {
	if !Enabled() {
		return nil
	}
	return active.rdb
}

func (c *conn) key(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return c.prefix
	}
	return c.prefix + ":" + raw
}

// GetJSON 读取并反序列化缓存值，未命中返回 false
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !Enabled() {
		return false, nil
	}
	raw, err := active.rdb.Get(ctx, active.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 序列化并写入缓存值
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return active.rdb.Set(ctx, active.key(key), payload, ttl).Err()
}

// Del 删除缓存键
func Del(ctx context.Context, key string) error {
	if !Enabled() {
		return nil
	}
	return active.rdb.Del(ctx, active.key(key)).Err()
}
