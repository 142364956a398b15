package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/skigrip-bot/internal/cache"
)

// State 一个用户的会话状态
type State struct {
	UserID    int64     `json:"user_id"`
	Current   string    `json:"current"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Store 会话状态存储
type Store interface {
	Get(ctx context.Context, userID int64) (*State, error)
	Set(ctx context.Context, state *State, ttl time.Duration) error
	Delete(ctx context.Context, userID int64) error
}

// RedisStore 基于 Redis 的会话存储，进程重启后状态保留
type RedisStore struct{}

// NewRedisStore 创建 Redis 会话存储
func NewRedisStore() *RedisStore {
	return &RedisStore{}
}

func sessionKey(userID int64) string {
	return fmt.Sprintf("session:%d", userID)
}

// Get 读取会话状态，不存在返回 nil
func (s *RedisStore) Get(ctx context.Context, userID int64) (*State, error) {
	var state State
	found, err := cache.GetJSON(ctx, sessionKey(userID), &state)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &state, nil
}

// Set 写入会话状态
func (s *RedisStore) Set(ctx context.Context, state *State, ttl time.Duration) error {
	return cache.SetJSON(ctx, sessionKey(state.UserID), state, ttl)
}

// Delete 删除会话状态
func (s *RedisStore) Delete(ctx context.Context, userID int64) error {
	return cache.Del(ctx, sessionKey(userID))
}

// MemoryStore 进程内会话存储，Redis 未启用时的降级方案
type MemoryStore struct {
	mu      sync.RWMutex
	states  map[int64]*State
	expires map[int64]time.Time
}

// NewMemoryStore 创建内存会话存储
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states:  make(map[int64]*State),
		expires: make(map[int64]time.Time),
	}
}

// Get 读取会话状态，过期视同不存在
func (s *MemoryStore) Get(ctx context.Context, userID int64) (*State, error) {
	s.mu.RLock()
	state, ok := s.states[userID]
	expiry, hasExpiry := s.expires[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if hasExpiry && time.Now().After(expiry) {
		_ = s.Delete(ctx, userID)
		return nil, nil
	}
	copied := *state
	return &copied, nil
}

// Set 写入会话状态
func (s *MemoryStore) Set(ctx context.Context, state *State, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	copied := *state
	s.states[state.UserID] = &copied
	if ttl > 0 {
		s.expires[state.UserID] = time.Now().Add(ttl)
	} else {
		delete(s.expires, state.UserID)
	}
	return nil
}

// Delete 删除会话状态
func (s *MemoryStore) Delete(ctx context.Context, userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.states, userID)
	delete(s.expires, userID)
	return nil
}
