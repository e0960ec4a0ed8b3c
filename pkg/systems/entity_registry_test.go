package systems

import (
	"slices"
	"testing"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/types"
	"github.com/gonewx/towerdefense/pkg/utils"
)

func TestEntityRegistry_AddAttachesAndDistributes(t *testing.T) {
	w := newTestWorld(nil)
	anim := NewAnimationSystem(w.em)
	w.registry.RegisterSystem(anim)

	id := w.addEnemy(types.EnemyLight, utils.Pt(100, 300))

	sprite := w.sprite(id)
	if !sprite.Attached || sprite.Layer != components.LayerSprites {
		t.Errorf("sprite attached=%v layer=%v", sprite.Attached, sprite.Layer)
	}
	shadow, _ := ecs.GetComponent[*components.ShadowComponent](w.em, id)
	if !shadow.Attached || shadow.Layer != components.LayerShadows {
		t.Errorf("shadow attached=%v layer=%v", shadow.Attached, shadow.Layer)
	}
	if shadow.X != sprite.X || shadow.Y != sprite.Y+shadow.OffsetY {
		t.Errorf("shadow at (%v, %v), should follow sprite", shadow.X, shadow.Y)
	}
	if !slices.Contains(anim.Members(), id) {
		t.Error("animated entity should be distributed to the animation system")
	}
}

func TestEntityRegistry_RegisterSystemOffersExisting(t *testing.T) {
	w := newTestWorld(nil)
	id := w.addEnemy(types.EnemyLight, utils.Pt(100, 300))

	movement := NewMovementSystem(w.em)
	w.registry.RegisterSystem(movement)
	if !slices.Equal(movement.Members(), []ecs.EntityID{id}) {
		t.Errorf("members = %v, want [%d]", movement.Members(), id)
	}
}

func TestEntityRegistry_RemoveDefersDestroy(t *testing.T) {
	w := newTestWorld(nil)
	anim := NewAnimationSystem(w.em)
	w.registry.RegisterSystem(anim)
	id := w.addEnemy(types.EnemyLight, utils.Pt(100, 300))

	w.registry.Remove(id)

	if w.registry.Contains(id) || anim.Len() != 0 {
		t.Error("removed entity should leave registry and systems")
	}
	if w.sprite(id).Attached {
		t.Error("sprite should be detached")
	}
	if !w.em.IsMarkedForDestroy(id) {
		t.Error("entity should be marked for destruction")
	}
	// 组件在清理前仍可读
	if w.health(id) == nil {
		t.Error("components should survive until RemoveMarkedEntities")
	}
	w.em.RemoveMarkedEntities()
	if w.em.EntityExists(id) {
		t.Error("entity should be gone after RemoveMarkedEntities")
	}

	// 重复移除被忽略
	w.registry.Remove(id)
}

func TestEntityRegistry_ContainsZero(t *testing.T) {
	w := newTestWorld(nil)
	if w.registry.Contains(0) {
		t.Error("Contains(0) should be false")
	}
}

func TestEntityRegistry_Clear(t *testing.T) {
	w := newTestWorld(nil)
	for i := 0; i < 3; i++ {
		w.addEnemy(types.EnemyLight, utils.Pt(float64(i*100), 300))
	}
	w.registry.Clear()
	if w.registry.Len() != 0 {
		t.Errorf("Len() = %d after Clear", w.registry.Len())
	}
}

func TestZOrderSystem_SortsByY(t *testing.T) {
	w := newTestWorld(nil)
	low := w.addEnemy(types.EnemyLight, utils.Pt(0, 100))
	high := w.addEnemy(types.EnemyLight, utils.Pt(0, 500))
	tieA := w.addEnemy(types.EnemyLight, utils.Pt(50, 300))
	tieB := w.addEnemy(types.EnemyLight, utils.Pt(10, 300))

	// 未挂接的精灵不参与排序
	detached := w.em.CreateEntity()
	ecs.AddComponent(w.em, detached, &components.SpriteComponent{Y: 0, Z: -1})

	NewZOrderSystem(w.em, w.registry).Update()

	want := map[ecs.EntityID]float64{high: 10, tieA: 20, tieB: 30, low: 40}
	for id, z := range want {
		if got := w.sprite(id).Z; got != z {
			t.Errorf("entity %d Z = %v, want %v", id, got, z)
		}
	}
	shadow, _ := ecs.GetComponent[*components.ShadowComponent](w.em, low)
	if shadow.Z != 40 {
		t.Errorf("shadow Z = %v, want 40", shadow.Z)
	}
	if s, _ := ecs.GetComponent[*components.SpriteComponent](w.em, detached); s.Z != -1 {
		t.Errorf("detached sprite Z changed to %v", s.Z)
	}
}
