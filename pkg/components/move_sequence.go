package components

import "github.com/gonewx/towerdefense/pkg/utils"

// MoveActionKey 移动动作链的键，重新分配路径时取消并替换同键动作
const MoveActionKey = "move"

// MoveSegment 一段匀速直线移动
type MoveSegment struct {
	From     utils.Point
	To       utils.Point
	Duration float64 // 长度 / 速度
}

// MoveSequence 顺序播放的移动段
type MoveSequence struct {
	Segments []MoveSegment
	Index    int     // 当前段
	Elapsed  float64 // 当前段已用时间
}

// Finished 是否已播放完
func (m *MoveSequence) Finished() bool {
	return m.Index >= len(m.Segments)
}

// ActionComponent 按键管理的定时动作
type ActionComponent struct {
	Actions map[string]*MoveSequence
	// Speed 动作播放速度倍率（减速时小于 1）
	Speed float64
}

// NewActionComponent 创建空动作组件
func NewActionComponent() *ActionComponent {
	return &ActionComponent{
		Actions: make(map[string]*MoveSequence),
		Speed:   1,
	}
}

// Run 以 key 运行动作，已有同键动作会被取消
func (a *ActionComponent) Run(key string, seq *MoveSequence) {
	a.Actions[key] = seq
}

// Remove 取消指定键的动作
func (a *ActionComponent) Remove(key string) {
	delete(a.Actions, key)
}

// Get 获取指定键的动作
func (a *ActionComponent) Get(key string) (*MoveSequence, bool) {
	seq, ok := a.Actions[key]
	return seq, ok
}
