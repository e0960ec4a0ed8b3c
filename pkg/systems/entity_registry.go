package systems

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
)

// EntityRegistry 场景中存活实体的集合
//
// 负责把实体分发到各个组件系统，并把精灵/阴影挂接到对应渲染层。
// 系统只持有实体 ID，组件实例归 EntityManager 所有。
type EntityRegistry struct {
	entityManager *ecs.EntityManager
	entities      []ecs.EntityID // 升序
	systems       []ecs.Registrar
}

// NewEntityRegistry 创建实体注册表
func NewEntityRegistry(em *ecs.EntityManager) *EntityRegistry {
	return &EntityRegistry{entityManager: em}
}

// EntityManager 返回底层实体管理器
func (r *EntityRegistry) EntityManager() *ecs.EntityManager {
	return r.entityManager
}

// RegisterSystem 注册组件系统，之后加入的实体会被分发给它
func (r *EntityRegistry) RegisterSystem(system ecs.Registrar) {
	r.systems = append(r.systems, system)
	for _, id := range r.entities {
		system.AddComponentFoundIn(id)
	}
}

// Add 加入实体：记录、分发到组件系统、挂接精灵与阴影
func (r *EntityRegistry) Add(id ecs.EntityID) {
	idx, found := slices.BinarySearch(r.entities, id)
	if found {
		return
	}
	r.entities = slices.Insert(r.entities, idx, id)

	for _, system := range r.systems {
		system.AddComponentFoundIn(id)
	}

	sprite, hasSprite := ecs.GetComponent[*components.SpriteComponent](r.entityManager, id)
	if hasSprite {
		sprite.Layer = components.LayerSprites
		sprite.Attached = true
	}
	if shadow, ok := ecs.GetComponent[*components.ShadowComponent](r.entityManager, id); ok {
		shadow.Layer = components.LayerShadows
		shadow.Attached = true
		if hasSprite {
			shadow.Follow(sprite)
		}
	}
}

// Remove 移除实体：退出所有组件系统与实体集合，并标记延迟销毁
func (r *EntityRegistry) Remove(id ecs.EntityID) {
	idx, found := slices.BinarySearch(r.entities, id)
	if !found {
		log.Debugf("[EntityRegistry] 实体 %d 不在注册表中", id)
		return
	}
	for _, system := range r.systems {
		system.RemoveComponentFoundIn(id)
	}
	r.entities = slices.Delete(r.entities, idx, idx+1)

	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](r.entityManager, id); ok {
		sprite.Attached = false
	}
	if shadow, ok := ecs.GetComponent[*components.ShadowComponent](r.entityManager, id); ok {
		shadow.Attached = false
	}
	r.entityManager.DestroyEntity(id)
}

// Contains 实体是否仍在场景中
func (r *EntityRegistry) Contains(id ecs.EntityID) bool {
	if id == 0 {
		return false
	}
	_, found := slices.BinarySearch(r.entities, id)
	return found
}

// Entities 返回存活实体快照（ID 升序）
func (r *EntityRegistry) Entities() []ecs.EntityID {
	return slices.Clone(r.entities)
}

// Len 存活实体数量
func (r *EntityRegistry) Len() int {
	return len(r.entities)
}

// Clear 移除全部实体
func (r *EntityRegistry) Clear() {
	for _, id := range r.Entities() {
		r.Remove(id)
	}
}
