package session

import (
	"context"
	"time"
)

// Manager 会话管理器，封装状态读取与受控流转
type Manager struct {
	store Store
	ttl   time.Duration
}

// NewManager 创建会话管理器
func NewManager(store Store, ttl time.Duration) *Manager {
	return &Manager{
		store: store,
		ttl:   ttl,
	}
}

// Current 返回用户当前状态，无会话或状态非法时回到初始状态
func (m *Manager) Current(ctx context.Context, userID int64) (string, error) {
	state, err := m.store.Get(ctx, userID)
	if err != nil {
		return "", err
	}
	if state == nil || !IsKnownState(state.Current) {
		return InitialState, nil
	}
	return state.Current, nil
}

// Transition 将用户流转到目标状态，非法流转返回 ErrTransitionNotAllowed
func (m *Manager) Transition(ctx context.Context, userID int64, to string) (*State, error) {
	current, err := m.Current(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := Validate(current, to); err != nil {
		return nil, err
	}
	state := &State{
		UserID:    userID,
		Current:   to,
		UpdatedAt: time.Now(),
	}
	if err := m.store.Set(ctx, state, m.ttl); err != nil {
		return nil, err
	}
	return state, nil
}

// Reset 清除用户会话，下次读取回到初始状态
func (m *Manager) Reset(ctx context.Context, userID int64) error {
	return m.store.Delete(ctx, userID)
}
