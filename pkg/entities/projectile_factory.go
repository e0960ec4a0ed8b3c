package entities

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/utils"
)

const projectileSize = 16

// NewProjectileEntity 创建从 from 飞向目标的投射物，武器参数取自开火组件
func NewProjectileEntity(em *ecs.EntityManager, source, target ecs.EntityID, from, targetPos utils.Point, firing *components.FiringComponent) ecs.EntityID {
	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.SpriteComponent{
		X:      from.X,
		Y:      from.Y,
		Width:  projectileSize,
		Height: projectileSize,
		Label:  "Projectile",
	})
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		Source:             source,
		Target:             target,
		LastTargetPosition: targetPos,
		Speed:              firing.ProjectileSpeed,
		Damage:             firing.Damage,
		HasSlowingEffect:   firing.HasSlowingEffect,
		SlowFactor:         firing.SlowFactor,
	})

	return id
}
