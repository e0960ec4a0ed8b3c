package ecs

import (
	"reflect"
	"slices"
)

// Registrar 是按组件类型维护成员关系的系统
// EntityRegistry 在实体加入/移除时通知所有 Registrar
type Registrar interface {
	// ComponentType 返回该系统关心的组件类型
	ComponentType() reflect.Type
	// AddComponentFoundIn 如果实体拥有该类型组件，则加入成员集合
	AddComponentFoundIn(id EntityID) bool
	// RemoveComponentFoundIn 将实体从成员集合移除（不存在时忽略）
	RemoveComponentFoundIn(id EntityID)
	// Update 批量更新所有成员
	Update(deltaTime float64)
}

// UpdateFunc 单个组件的更新函数
type UpdateFunc[T any] func(id EntityID, component T, deltaTime float64)

// ComponentSystem 同类型组件的批量更新系统
//
// 只保存实体ID（非拥有引用），组件实例始终由 EntityManager 持有。
// 更新时按ID升序遍历；成员的组件在遍历中被移除时跳过该成员，不会崩溃。
type ComponentSystem[T any] struct {
	entityManager *EntityManager
	members       []EntityID
	update        UpdateFunc[T]
}

// NewComponentSystem 创建组件系统
func NewComponentSystem[T any](em *EntityManager, update UpdateFunc[T]) *ComponentSystem[T] {
	return &ComponentSystem[T]{
		entityManager: em,
		members:       make([]EntityID, 0),
		update:        update,
	}
}

// ComponentType 返回系统处理的组件类型
func (s *ComponentSystem[T]) ComponentType() reflect.Type {
	return typeOf[T]()
}

// AddComponentFoundIn 实体拥有 T 组件时加入系统
func (s *ComponentSystem[T]) AddComponentFoundIn(id EntityID) bool {
	if !HasComponent[T](s.entityManager, id) {
		return false
	}
	idx, found := slices.BinarySearch(s.members, id)
	if found {
		return true
	}
	s.members = slices.Insert(s.members, idx, id)
	return true
}

// RemoveComponentFoundIn 将实体移出系统
func (s *ComponentSystem[T]) RemoveComponentFoundIn(id EntityID) {
	idx, found := slices.BinarySearch(s.members, id)
	if found {
		s.members = slices.Delete(s.members, idx, idx+1)
	}
}

// Members 返回成员ID快照
func (s *ComponentSystem[T]) Members() []EntityID {
	return slices.Clone(s.members)
}

// Len 返回成员数量
func (s *ComponentSystem[T]) Len() int {
	return len(s.members)
}

// Update 按ID升序更新所有成员组件
func (s *ComponentSystem[T]) Update(deltaTime float64) {
	if s.update == nil {
		return
	}
	// 遍历快照：更新回调中增删成员不影响本轮遍历
	for _, id := range slices.Clone(s.members) {
		comp, ok := GetComponent[T](s.entityManager, id)
		if !ok {
			continue
		}
		s.update(id, comp, deltaTime)
	}
}
