package systems

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// TargetCandidate 目标选择的候选敌人
type TargetCandidate struct {
	ID       ecs.EntityID
	Position utils.Point
	Slowed   bool
}

// SelectTarget 在候选中为一座塔选择目标，无候选时返回 0
//
// 候选需严格位于射程内，按给定顺序扫描：
// 减速武器优先未被减速的敌人，其次 X 更大者；
// 普通武器只在 X 严格更大时替换当前选择。
func SelectTarget(towerPos utils.Point, rangeRadius float64, slows bool, candidates []TargetCandidate) ecs.EntityID {
	var best *TargetCandidate
	for i := range candidates {
		c := &candidates[i]
		if towerPos.DistanceTo(c.Position) >= rangeRadius {
			continue
		}
		if best == nil {
			best = c
			continue
		}
		if slows {
			switch {
			case !c.Slowed && best.Slowed:
				best = c
			case c.Slowed == best.Slowed && c.Position.X > best.Position.X:
				best = c
			}
			continue
		}
		if c.Position.X > best.Position.X {
			best = c
		}
	}
	if best == nil {
		return 0
	}
	return best.ID
}

// TargetingSystem 每帧为所有防御塔选择目标
type TargetingSystem struct {
	entityManager *ecs.EntityManager
}

// NewTargetingSystem 创建目标选择系统
func NewTargetingSystem(em *ecs.EntityManager) *TargetingSystem {
	return &TargetingSystem{entityManager: em}
}

// Update 为每座塔写入 FiringComponent.Target
func (s *TargetingSystem) Update(enemies, towers []ecs.EntityID) {
	candidates := make([]TargetCandidate, 0, len(enemies))
	for _, id := range enemies {
		health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, id)
		if !ok || health.IsDepleted() {
			continue
		}
		sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if !ok {
			continue
		}
		slowed := false
		if enemy, ok := ecs.GetComponent[*components.EnemyComponent](s.entityManager, id); ok {
			slowed = enemy.HasBeenSlowed
		}
		candidates = append(candidates, TargetCandidate{ID: id, Position: sprite.Position(), Slowed: slowed})
	}

	for _, id := range towers {
		firing, ok := ecs.GetComponent[*components.FiringComponent](s.entityManager, id)
		if !ok {
			continue
		}
		sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if !ok {
			continue
		}
		firing.Target = SelectTarget(sprite.Position(), firing.Range, firing.HasSlowingEffect, candidates)
	}
}
