package components

import "testing"

func TestAnimationComponent_Request(t *testing.T) {
	anim := NewAnimationComponent(map[AnimationState]AnimationClip{
		AnimationIdle: {Name: "Wood_Idle", FrameCount: 4, Looping: true},
	})

	if _, ok := anim.Requested(); ok {
		t.Fatal("new component should have no pending request")
	}
	anim.Request(AnimationHit)
	anim.Request(AnimationDead)
	if state, ok := anim.Requested(); !ok || state != AnimationDead {
		t.Errorf("Requested() = %v, %v; want Dead, true", state, ok)
	}
	anim.ClearRequest()
	if _, ok := anim.Requested(); ok {
		t.Error("request should be cleared")
	}
	if anim.FrameSpeed != DefaultFrameSpeed {
		t.Errorf("FrameSpeed = %v, want %v", anim.FrameSpeed, DefaultFrameSpeed)
	}
}

func TestActionComponent_RunReplaces(t *testing.T) {
	ac := NewActionComponent()
	first := &MoveSequence{Segments: []MoveSegment{{Duration: 1}}}
	second := &MoveSequence{}
	ac.Run(MoveActionKey, first)
	ac.Run(MoveActionKey, second)

	got, ok := ac.Get(MoveActionKey)
	if !ok || got != second {
		t.Error("Run should replace the action under the same key")
	}
	if !second.Finished() || first.Finished() {
		t.Error("Finished() mismatch")
	}
	ac.Remove(MoveActionKey)
	if _, ok := ac.Get(MoveActionKey); ok {
		t.Error("Remove should cancel the action")
	}
}

func TestShadowFollow(t *testing.T) {
	sprite := &SpriteComponent{X: 100, Y: 200, Z: 30}
	shadow := &ShadowComponent{OffsetY: -40}
	shadow.Follow(sprite)
	if shadow.X != 100 || shadow.Y != 160 || shadow.Z != 30 {
		t.Errorf("shadow = (%v,%v,%v), want (100,160,30)", shadow.X, shadow.Y, shadow.Z)
	}
}
