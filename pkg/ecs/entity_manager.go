package ecs

import (
	"reflect"
)

// EntityID 是实体的唯一标识符
// 0 保留为无效ID，组件之间的弱引用统一使用 EntityID 表示
type EntityID uint64

// EntityManager 持有全部实体与组件
//
// 实体只是一个ID，能力由挂载的组件决定。组件按其具体类型存放，
// 同一实体每种类型至多一个；访问统一走本文件末尾的泛型函数。
type EntityManager struct {
	nextID     EntityID
	components map[EntityID]map[reflect.Type]any
	// marked 已标记、等待 RemoveMarkedEntities 清理的实体
	marked map[EntityID]struct{}
}

// NewEntityManager 创建实体管理器，第一个实体的ID为 1
func NewEntityManager() *EntityManager {
	return &EntityManager{
		nextID:     1,
		components: make(map[EntityID]map[reflect.Type]any),
		marked:     make(map[EntityID]struct{}),
	}
}

// CreateEntity 创建没有组件的新实体
func (em *EntityManager) CreateEntity() EntityID {
	id := em.nextID
	em.nextID++
	em.components[id] = make(map[reflect.Type]any)
	return id
}

// DestroyEntity 标记实体待删除
// 遍历中可以安全调用，重复标记无副作用；真正的删除发生在 RemoveMarkedEntities
func (em *EntityManager) DestroyEntity(id EntityID) {
	if _, ok := em.components[id]; ok {
		em.marked[id] = struct{}{}
	}
}

// IsMarkedForDestroy 实体是否已被标记删除
func (em *EntityManager) IsMarkedForDestroy(id EntityID) bool {
	_, ok := em.marked[id]
	return ok
}

// EntityExists 实体是否存在（已标记但尚未清理的仍视为存在）
func (em *EntityManager) EntityExists(id EntityID) bool {
	_, ok := em.components[id]
	return ok
}

// RemoveMarkedEntities 删除所有已标记的实体及其组件
func (em *EntityManager) RemoveMarkedEntities() {
	for id := range em.marked {
		delete(em.components, id)
	}
	clear(em.marked)
}

// EntityCount 当前实体数（含待清理）
func (em *EntityManager) EntityCount() int {
	return len(em.components)
}

// ComponentCount 实体挂载的组件数，实体不存在时为 0
func (em *EntityManager) ComponentCount(id EntityID) int {
	return len(em.components[id])
}

func typeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}

// AddComponent 为实体挂载组件，同类型组件会被替换；实体不存在时忽略
func AddComponent[T any](em *EntityManager, id EntityID, component T) {
	if compMap, ok := em.components[id]; ok {
		compMap[typeOf[T]()] = component
	}
}

// GetComponent 读取实体的 T 组件
func GetComponent[T any](em *EntityManager, id EntityID) (T, bool) {
	comp, ok := em.components[id][typeOf[T]()]
	if !ok {
		var zero T
		return zero, false
	}
	return comp.(T), true
}

// HasComponent 实体是否挂载了 T 组件
func HasComponent[T any](em *EntityManager, id EntityID) bool {
	_, ok := em.components[id][typeOf[T]()]
	return ok
}

// RemoveComponent 卸下实体的 T 组件
func RemoveComponent[T any](em *EntityManager, id EntityID) {
	delete(em.components[id], typeOf[T]())
}
