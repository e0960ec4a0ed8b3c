package systems

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
)

// AnimationSystem 应用动画状态请求并推进帧
//
// 每帧最多应用一次请求，应用后立即清空；
// 请求当前正在播放的状态不会重新开始；
// 请求未配置的状态时记录日志并忽略，当前状态不变。
type AnimationSystem struct {
	*ecs.ComponentSystem[*components.AnimationComponent]
}

// NewAnimationSystem 创建动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	s := &AnimationSystem{}
	s.ComponentSystem = ecs.NewComponentSystem(em, s.updateAnimation)
	return s
}

func (s *AnimationSystem) updateAnimation(id ecs.EntityID, anim *components.AnimationComponent, deltaTime float64) {
	if state, ok := anim.Requested(); ok {
		anim.ClearRequest()
		s.applyState(id, anim, state)
	}

	if !anim.HasCurrent || anim.IsFinished {
		return
	}
	clip := anim.Clips[anim.CurrentState]
	if clip.FrameCount <= 1 || anim.FrameSpeed <= 0 {
		return
	}

	anim.FrameCounter += deltaTime
	for anim.FrameCounter >= anim.FrameSpeed {
		anim.FrameCounter -= anim.FrameSpeed
		if anim.CurrentFrame+1 < clip.FrameCount {
			anim.CurrentFrame++
			continue
		}
		if clip.Looping {
			anim.CurrentFrame = 0
			continue
		}
		anim.IsFinished = true
		anim.FrameCounter = 0
		break
	}
}

func (s *AnimationSystem) applyState(id ecs.EntityID, anim *components.AnimationComponent, state components.AnimationState) {
	if anim.HasCurrent && anim.CurrentState == state {
		return
	}
	if _, exists := anim.Clips[state]; !exists {
		log.Warnf("[AnimationSystem] 实体 %d 未配置动画 %s，忽略", id, state)
		return
	}
	anim.CurrentState = state
	anim.HasCurrent = true
	anim.CurrentFrame = 0
	anim.FrameCounter = 0
	anim.IsFinished = false
}
