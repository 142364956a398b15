// Package session 维护每个用户的对话状态机。
// 状态只约束界面流转，业务数据始终落库，会话丢失可安全回到主菜单。
package session

import (
	"errors"
	"fmt"

	"github.com/skigrip-bot/internal/constants"
)

// ErrTransitionNotAllowed 非法状态流转
var ErrTransitionNotAllowed = errors.New("当前状态不允许该操作")

// InitialState 会话初始状态
const InitialState = constants.SessionStateMainMenu

// transitions 允许的状态流转表。
// 任意状态都可以回到主菜单，这里只列出前向流转。
var transitions = map[string][]string{
	constants.SessionStateMainMenu: {
		constants.SessionStateViewingCatalog,
		constants.SessionStateViewingCart,
		constants.SessionStateAdminAuth,
	},
	constants.SessionStateViewingCatalog: {
		constants.SessionStateViewingCart,
	},
	constants.SessionStateViewingCart: {
		constants.SessionStateViewingCatalog,
		constants.SessionStateOrderComment,
	},
	constants.SessionStateOrderComment: {
		constants.SessionStateViewingCart,
	},
	constants.SessionStateAdminAuth: {
		constants.SessionStateAdminPanel,
	},
	constants.SessionStateAdminPanel: {
		constants.SessionStateAddingProductName,
		constants.SessionStateEditingProductID,
		constants.SessionStateEditingPriceID,
		constants.SessionStateEditingPhotoID,
		constants.SessionStateDeletingProduct,
	},
	constants.SessionStateAddingProductName: {
		constants.SessionStateAddingProductQuantity,
	},
	constants.SessionStateAddingProductQuantity: {
		constants.SessionStateAddingProductPrice,
	},
	constants.SessionStateAddingProductPrice: {
		constants.SessionStateAddingProductPhoto,
	},
	constants.SessionStateAddingProductPhoto: {
		constants.SessionStateAdminPanel,
	},
	constants.SessionStateEditingProductID: {
		constants.SessionStateEditingProductQuantity,
	},
	constants.SessionStateEditingProductQuantity: {
		constants.SessionStateAdminPanel,
	},
	constants.SessionStateEditingPriceID: {
		constants.SessionStateEditingProductPrice,
	},
	constants.SessionStateEditingProductPrice: {
		constants.SessionStateAdminPanel,
	},
	constants.SessionStateEditingPhotoID: {
		constants.SessionStateEditingPhoto,
	},
	constants.SessionStateEditingPhoto: {
		constants.SessionStateAdminPanel,
	},
	constants.SessionStateDeletingProduct: {
		constants.SessionStateAdminPanel,
	},
}

// knownStates 全部合法状态
var knownStates = func() map[string]struct{} {
	set := map[string]struct{}{InitialState: {}}
	for from, tos := range transitions {
		set[from] = struct{}{}
		for _, to := range tos {
			set[to] = struct{}{}
		}
	}
	return set
}()

// IsKnownState 判断状态名是否合法
func IsKnownState(state string) bool {
	_, ok := knownStates[state]
	return ok
}

// Allowed 判断 from 到 to 的流转是否允许
func Allowed(from, to string) bool {
	if !IsKnownState(from) || !IsKnownState(to) {
		return false
	}
	// 回到主菜单总是允许，作为所有流程的逃生口
	if to == InitialState {
		return true
	}
	if from == to {
		return true
	}
	for _, candidate := range transitions[from] {
		if candidate == to {
			return true
		}
	}
	return false
}

// Validate 返回非法流转的错误描述
func Validate(from, to string) error {
	if Allowed(from, to) {
		return nil
	}
	return fmt.Errorf("%w: %s -> %s", ErrTransitionNotAllowed, from, to)
}
