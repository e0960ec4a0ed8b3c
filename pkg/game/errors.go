package game

import "errors"

// 规则拒绝类错误，调用方用 errors.Is 判断
var (
	// ErrInsufficientGold 金币不足
	ErrInsufficientGold = errors.New("insufficient gold")
	// ErrNotActive 当前不在进行中状态
	ErrNotActive = errors.New("game is not active")
	// ErrSlotUnavailable 建塔位不存在或已被占用
	ErrSlotUnavailable = errors.New("tower slot unavailable")
	// ErrUnknownTowerType 未配置的防御塔类型
	ErrUnknownTowerType = errors.New("unknown tower type")
	// ErrUnknownEnemyType 未配置的敌人类型
	ErrUnknownEnemyType = errors.New("unknown enemy type")
)
