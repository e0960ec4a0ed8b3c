package components

import "github.com/gonewx/towerdefense/pkg/ecs"

// FiringComponent 防御塔的武器状态
type FiringComponent struct {
	// Target 当前目标（弱引用，0 表示无目标；实体销毁后通过注册表读作无目标）
	Target ecs.EntityID
	// Cooldown 距离下一次开火的剩余时间（秒）
	Cooldown float64

	FireRate         float64 // 开火间隔（秒）
	Range            float64
	Damage           int
	HasSlowingEffect bool
	SlowFactor       float64
	ProjectileSpeed  float64
}
