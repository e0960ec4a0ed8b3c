package game

// GameState 对局经济状态（生命与金币）
type GameState struct {
	Lives int
	Gold  int

	initialLives int
	initialGold  int
}

// NewGameState 创建经济状态
func NewGameState(lives, gold int) *GameState {
	return &GameState{
		Lives:        lives,
		Gold:         gold,
		initialLives: lives,
		initialGold:  gold,
	}
}

// SpendGold 扣除金币，余额不足时不扣除并返回 false
func (gs *GameState) SpendGold(amount int) bool {
	if amount < 0 || gs.Gold < amount {
		return false
	}
	gs.Gold -= amount
	return true
}

// AddGold 增加金币
func (gs *GameState) AddGold(amount int) {
	gs.Gold += amount
}

// LoseLives 扣除生命，返回剩余生命（可能为负）
func (gs *GameState) LoseLives(amount int) int {
	gs.Lives -= amount
	return gs.Lives
}

// IsDefeated 生命是否耗尽
func (gs *GameState) IsDefeated() bool {
	return gs.Lives <= 0
}

// Reset 恢复初始生命与金币
func (gs *GameState) Reset() {
	gs.Lives = gs.initialLives
	gs.Gold = gs.initialGold
}
