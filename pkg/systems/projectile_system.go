package systems

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/game"
)

// ProjectileSystem 投射物飞行与命中
//
// 目标仍在场时追踪其当前位置，否则飞向最后已知位置；
// 到达时若目标仍在场则造成伤害，然后移除投射物。
type ProjectileSystem struct {
	*ecs.ComponentSystem[*components.ProjectileComponent]
	entityManager *ecs.EntityManager
	registry      *EntityRegistry
	paths         *PathAssignment
	bus           *game.EventBus
}

// NewProjectileSystem 创建投射物系统
func NewProjectileSystem(em *ecs.EntityManager, registry *EntityRegistry, paths *PathAssignment, bus *game.EventBus) *ProjectileSystem {
	s := &ProjectileSystem{
		entityManager: em,
		registry:      registry,
		paths:         paths,
		bus:           bus,
	}
	s.ComponentSystem = ecs.NewComponentSystem(em, s.updateProjectile)
	return s
}

func (s *ProjectileSystem) updateProjectile(id ecs.EntityID, proj *components.ProjectileComponent, deltaTime float64) {
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	if !ok {
		s.registry.Remove(id)
		return
	}

	targetAlive := s.registry.Contains(proj.Target)
	if targetAlive {
		if ts, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, proj.Target); ok {
			proj.LastTargetPosition = ts.Position()
		}
	}

	pos := sprite.Position()
	toTarget := proj.LastTargetPosition.Sub(pos)
	step := proj.Speed * deltaTime
	if toTarget.Length() > step {
		sprite.SetPosition(pos.Add(toTarget.Normalize().Scale(step)))
		return
	}

	sprite.SetPosition(proj.LastTargetPosition)
	if targetAlive {
		s.hit(proj)
	}
	s.registry.Remove(id)
}

func (s *ProjectileSystem) hit(proj *components.ProjectileComponent) {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, proj.Target)
	if !ok || health.IsDepleted() {
		return
	}
	health.CurrentHealth -= proj.Damage

	enemy, isEnemy := ecs.GetComponent[*components.EnemyComponent](s.entityManager, proj.Target)
	if proj.HasSlowingEffect && isEnemy && !enemy.HasBeenSlowed && s.paths != nil {
		s.paths.Slow(proj.Target, proj.SlowFactor)
	}
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.entityManager, proj.Target); ok {
		anim.Request(components.AnimationHit)
	}

	if s.bus != nil {
		event := game.Event{
			Type:     game.EventDamaged,
			Entity:   proj.Target,
			Position: proj.LastTargetPosition,
			Amount:   proj.Damage,
		}
		if isEnemy {
			event.EnemyType = enemy.Type
		}
		s.bus.Publish(event)
	}
}
