package systems

import (
	"testing"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
)

func newAnimatedEntity(em *ecs.EntityManager) (ecs.EntityID, *components.AnimationComponent) {
	id := em.CreateEntity()
	anim := components.NewAnimationComponent(map[components.AnimationState]components.AnimationClip{
		components.AnimationWalk: {Name: "Light_Walk", FrameCount: 4, Looping: true},
		components.AnimationHit:  {Name: "Light_Hit", FrameCount: 2},
	})
	ecs.AddComponent(em, id, anim)
	return id, anim
}

func TestAnimationSystem_AppliesRequestOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewAnimationSystem(em)
	id, anim := newAnimatedEntity(em)
	sys.AddComponentFoundIn(id)

	anim.Request(components.AnimationWalk)
	sys.Update(0)
	if !anim.HasCurrent || anim.CurrentState != components.AnimationWalk {
		t.Fatalf("state = %v, want Walk", anim.CurrentState)
	}
	if _, pending := anim.Requested(); pending {
		t.Error("request should be cleared after being applied")
	}
}

func TestAnimationSystem_SameStateIsNoop(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewAnimationSystem(em)
	id, anim := newAnimatedEntity(em)
	sys.AddComponentFoundIn(id)

	anim.Request(components.AnimationWalk)
	sys.Update(0)
	sys.Update(components.DefaultFrameSpeed * 2.5)
	frame := anim.CurrentFrame
	if frame != 2 {
		t.Fatalf("CurrentFrame = %d, want 2", frame)
	}

	anim.Request(components.AnimationWalk)
	sys.Update(0)
	if anim.CurrentFrame != frame {
		t.Errorf("re-requesting Walk restarted the animation: frame %d -> %d", frame, anim.CurrentFrame)
	}
}

func TestAnimationSystem_MissingClipIgnored(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewAnimationSystem(em)
	id, anim := newAnimatedEntity(em)
	sys.AddComponentFoundIn(id)

	anim.Request(components.AnimationWalk)
	sys.Update(0)
	anim.Request(components.AnimationDead)
	sys.Update(0)

	if anim.CurrentState != components.AnimationWalk {
		t.Errorf("state = %v, want Walk (missing clip ignored)", anim.CurrentState)
	}
	if _, pending := anim.Requested(); pending {
		t.Error("ignored request should still be cleared")
	}
}

func TestAnimationSystem_LoopingAndOneShot(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewAnimationSystem(em)
	id, anim := newAnimatedEntity(em)
	sys.AddComponentFoundIn(id)

	anim.Request(components.AnimationWalk)
	sys.Update(0)
	sys.Update(components.DefaultFrameSpeed * 4.5)
	if anim.CurrentFrame != 0 || anim.IsFinished {
		t.Errorf("looping clip: frame = %d finished = %v, want 0/false", anim.CurrentFrame, anim.IsFinished)
	}

	anim.Request(components.AnimationHit)
	sys.Update(0)
	sys.Update(components.DefaultFrameSpeed * 5)
	if anim.CurrentFrame != 1 || !anim.IsFinished {
		t.Errorf("one-shot clip: frame = %d finished = %v, want 1/true", anim.CurrentFrame, anim.IsFinished)
	}
}

func TestAnimationSystem_SkipsRemovedComponent(t *testing.T) {
	em := ecs.NewEntityManager()
	sys := NewAnimationSystem(em)
	id, _ := newAnimatedEntity(em)
	sys.AddComponentFoundIn(id)

	ecs.RemoveComponent[*components.AnimationComponent](em, id)
	sys.Update(1) // 不应崩溃
	if sys.Len() != 1 {
		t.Errorf("membership changes only through the registry, Len = %d", sys.Len())
	}
}
