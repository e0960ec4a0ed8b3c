package entities

import "github.com/gonewx/towerdefense/pkg/components"

// 各类实体的动画帧数
const (
	walkFrames      = 8
	hitFrames       = 4
	deadFrames      = 6
	idleFrames      = 1
	attackingFrames = 6
)

// enemyClips 敌人的动画表：行走循环，受击与死亡播放一次
func enemyClips(label string) map[components.AnimationState]components.AnimationClip {
	return map[components.AnimationState]components.AnimationClip{
		components.AnimationWalk: {Name: label + "_Walk", FrameCount: walkFrames, Looping: true},
		components.AnimationHit:  {Name: label + "_Hit", FrameCount: hitFrames},
		components.AnimationDead: {Name: label + "_Dead", FrameCount: deadFrames},
	}
}

// towerClips 防御塔的动画表
func towerClips(label string) map[components.AnimationState]components.AnimationClip {
	return map[components.AnimationState]components.AnimationClip{
		components.AnimationIdle:      {Name: label + "_Idle", FrameCount: idleFrames, Looping: true},
		components.AnimationAttacking: {Name: label + "_Attacking", FrameCount: attackingFrames},
	}
}
