package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/skigrip-bot/internal/constants"
)

func TestAllowedTransitions(t *testing.T) {
	cases := []struct {
		from, to string
		want     bool
	}{
		{constants.SessionStateMainMenu, constants.SessionStateViewingCatalog, true},
		{constants.SessionStateViewingCart, constants.SessionStateOrderComment, true},
		{constants.SessionStateAdminAuth, constants.SessionStateAdminPanel, true},
		{constants.SessionStateAdminPanel, constants.SessionStateAddingProductName, true},
		{constants.SessionStateAddingProductName, constants.SessionStateAddingProductQuantity, true},
		// 任意状态允许回到主菜单
		{constants.SessionStateOrderComment, constants.SessionStateMainMenu, true},
		{constants.SessionStateDeletingProduct, constants.SessionStateMainMenu, true},
		// 跳过中间步骤不允许
		{constants.SessionStateViewingCatalog, constants.SessionStateOrderComment, false},
		{constants.SessionStateMainMenu, constants.SessionStateAdminPanel, false},
		{constants.SessionStateAddingProductName, constants.SessionStateAddingProductPrice, false},
		// 未知状态
		{"made_up", constants.SessionStateMainMenu, false},
		{constants.SessionStateMainMenu, "made_up", false},
	}
	for _, c := range cases {
		if got := Allowed(c.from, c.to); got != c.want {
			t.Fatalf("Allowed(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestManagerTransition(t *testing.T) {
	mgr := NewManager(NewMemoryStore(), time.Minute)
	ctx := context.Background()
	userID := int64(100500)

	current, err := mgr.Current(ctx, userID)
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if current != InitialState {
		t.Fatalf("expected initial state, got %s", current)
	}

	if _, err := mgr.Transition(ctx, userID, constants.SessionStateViewingCart); err != nil {
		t.Fatalf("transition to cart failed: %v", err)
	}
	if _, err := mgr.Transition(ctx, userID, constants.SessionStateOrderComment); err != nil {
		t.Fatalf("transition to comment failed: %v", err)
	}

	_, err = mgr.Transition(ctx, userID, constants.SessionStateAdminPanel)
	if !errors.Is(err, ErrTransitionNotAllowed) {
		t.Fatalf("expected ErrTransitionNotAllowed, got: %v", err)
	}

	if err := mgr.Reset(ctx, userID); err != nil {
		t.Fatalf("reset failed: %v", err)
	}
	current, err = mgr.Current(ctx, userID)
	if err != nil {
		t.Fatalf("current failed: %v", err)
	}
	if current != InitialState {
		t.Fatalf("expected initial state after reset, got %s", current)
	}
}

func TestMemoryStoreTTL(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	state := &State{UserID: 1, Current: constants.SessionStateViewingCart, UpdatedAt: time.Now()}
	if err := store.Set(ctx, state, time.Millisecond); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	loaded, err := store.Get(ctx, 1)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if loaded != nil {
		t.Fatalf("expected expired session, got: %+v", loaded)
	}
}
