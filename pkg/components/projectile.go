package components

import (
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// ProjectileComponent 飞行中的投射物
type ProjectileComponent struct {
	Source ecs.EntityID
	Target ecs.EntityID
	// LastTargetPosition 目标最后已知位置，目标消失后飞向该点
	LastTargetPosition utils.Point

	Speed            float64
	Damage           int
	HasSlowingEffect bool
	SlowFactor       float64
}
