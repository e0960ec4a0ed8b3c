package systems

import (
	"cmp"
	"slices"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
)

// ZOrderSystem 按纵向位置重新计算精灵层的 Z 值
// Y 越大越靠后（Z 越小），Z 依次为 10, 20, 30...；阴影跟随所属精灵
type ZOrderSystem struct {
	entityManager *ecs.EntityManager
	registry      *EntityRegistry
}

// NewZOrderSystem 创建 Z 序系统
func NewZOrderSystem(em *ecs.EntityManager, registry *EntityRegistry) *ZOrderSystem {
	return &ZOrderSystem{entityManager: em, registry: registry}
}

type zEntry struct {
	id     ecs.EntityID
	sprite *components.SpriteComponent
}

// Update 重新分配 Z 值
func (s *ZOrderSystem) Update() {
	entries := make([]zEntry, 0, s.registry.Len())
	for _, id := range s.registry.Entities() {
		sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
		if !ok || !sprite.Attached || sprite.Layer != components.LayerSprites {
			continue
		}
		entries = append(entries, zEntry{id: id, sprite: sprite})
	}

	// Y 降序，Y 相同时按 ID 升序保证结果稳定
	slices.SortFunc(entries, func(a, b zEntry) int {
		if c := cmp.Compare(b.sprite.Y, a.sprite.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.id, b.id)
	})

	z := float64(components.ZDeltaForSprites)
	for _, e := range entries {
		e.sprite.Z = z
		z += components.ZDeltaForSprites
		if shadow, ok := ecs.GetComponent[*components.ShadowComponent](s.entityManager, e.id); ok {
			shadow.Follow(e.sprite)
		}
	}
}
