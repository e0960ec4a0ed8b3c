package entities

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// NewTowerEntity 创建防御塔实体，slot 为占用的建塔位索引（-1 表示任意位置）
func NewTowerEntity(em *ecs.EntityManager, towerType types.TowerType, stats config.TowerStats, pos utils.Point, slot int) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.SpriteComponent{
		X:      pos.X,
		Y:      pos.Y,
		Width:  stats.Width,
		Height: stats.Height,
		Label:  towerType.String(),
	})
	// 阴影贴在塔底，同时作为障碍物多边形
	ecs.AddComponent(em, id, &components.ShadowComponent{
		Width:   stats.Width,
		Height:  stats.Height * 0.3,
		OffsetY: -stats.Height * 0.35,
	})
	ecs.AddComponent(em, id, &components.TowerComponent{Type: towerType, Slot: slot})
	ecs.AddComponent(em, id, &components.FiringComponent{
		FireRate:         stats.FireRate,
		Range:            stats.Range,
		Damage:           stats.Damage,
		HasSlowingEffect: stats.HasSlowingEffect,
		SlowFactor:       stats.SlowFactor,
		ProjectileSpeed:  stats.ProjectileSpeed,
	})
	ecs.AddComponent(em, id, &components.ObstacleComponent{
		Name:      towerType.String(),
		Footprint: stats.TowerFootprint(pos),
	})

	anim := components.NewAnimationComponent(towerClips(towerType.String()))
	anim.Request(components.AnimationIdle)
	ecs.AddComponent(em, id, anim)

	return id
}
