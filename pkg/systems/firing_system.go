package systems

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
)

// ProjectileSpawner 开火时生成投射物
type ProjectileSpawner func(tower, target ecs.EntityID, firing *components.FiringComponent)

// FiringSystem 防御塔开火冷却
type FiringSystem struct {
	*ecs.ComponentSystem[*components.FiringComponent]
	entityManager *ecs.EntityManager
	registry      *EntityRegistry
	spawn         ProjectileSpawner
}

// NewFiringSystem 创建开火系统
func NewFiringSystem(em *ecs.EntityManager, registry *EntityRegistry, spawn ProjectileSpawner) *FiringSystem {
	s := &FiringSystem{
		entityManager: em,
		registry:      registry,
		spawn:         spawn,
	}
	s.ComponentSystem = ecs.NewComponentSystem(em, s.updateFiring)
	return s
}

func (s *FiringSystem) updateFiring(id ecs.EntityID, firing *components.FiringComponent, deltaTime float64) {
	// 目标已离场或只剩尸体时读作无目标
	if firing.Target != 0 && (!s.registry.Contains(firing.Target) || IsCorpse(s.entityManager, firing.Target)) {
		firing.Target = 0
	}
	if firing.Target == 0 {
		return
	}

	firing.Cooldown -= deltaTime
	if firing.Cooldown > 0 {
		return
	}
	firing.Cooldown = firing.FireRate

	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, id); ok {
		anim.Request(components.AnimationAttacking)
	}
	if s.spawn != nil {
		s.spawn(id, firing.Target, firing)
	}
}
