package entities

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/steering"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// NewEnemyEntity 创建敌人实体
//
// 离散移动的敌人带 ActionComponent，转向移动的敌人带 AgentComponent
// （最大加速度、质量取自属性表，半径为宽度的一半）。
// 实体创建后需交给 EntityRegistry.Add 才会参与更新。
func NewEnemyEntity(em *ecs.EntityManager, enemyType types.EnemyType, stats config.EnemyStats, pos utils.Point) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.SpriteComponent{
		X:      pos.X,
		Y:      pos.Y,
		Width:  stats.Width,
		Height: stats.Height,
		Label:  enemyType.String(),
	})
	ecs.AddComponent(em, id, &components.ShadowComponent{
		Width:   stats.Width * 0.8,
		Height:  stats.Height * 0.3,
		OffsetY: -stats.Height * 0.4,
	})
	ecs.AddComponent(em, id, &components.HealthComponent{
		CurrentHealth: stats.Health,
		MaxHealth:     stats.Health,
	})
	ecs.AddComponent(em, id, &components.EnemyComponent{
		Type:        enemyType,
		Speed:       stats.Speed,
		BaseDamage:  stats.BaseDamage,
		GoldReward:  stats.GoldReward,
		Movement:    stats.Movement,
		SpeedFactor: 1,
	})

	anim := components.NewAnimationComponent(enemyClips(enemyType.String()))
	anim.Request(components.AnimationWalk)
	ecs.AddComponent(em, id, anim)

	switch stats.Movement {
	case config.MovementSteering:
		agent := steering.NewAgent(pos, stats.Speed, stats.MaxAcceleration, stats.Mass, stats.Width*0.5)
		ecs.AddComponent(em, id, &components.AgentComponent{Agent: agent})
	default:
		ecs.AddComponent(em, id, components.NewActionComponent())
	}

	return id
}
