package components

import (
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/types"
)

// EnemyComponent 敌人标记与属性
type EnemyComponent struct {
	Type       types.EnemyType
	Speed      float64
	BaseDamage int
	GoldReward int
	Movement   config.MovementStyle

	// HasBeenSlowed 是否已被减速（减速型武器优先选择未减速的目标）
	HasBeenSlowed bool
	// SpeedFactor 当前速度倍率，未减速时为 1
	SpeedFactor float64
}

// CurrentSpeed 考虑减速后的速度
func (e *EnemyComponent) CurrentSpeed() float64 {
	return e.Speed * e.SpeedFactor
}

// CorpseComponent 已被击杀、正在播放死亡动画的敌人
// 尸体不再参与目标选择与结算，到期后由定时器移出场景
type CorpseComponent struct{}
