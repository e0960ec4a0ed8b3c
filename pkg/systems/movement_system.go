package systems

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// MovementSystem 播放按键管理的定时移动动作
type MovementSystem struct {
	*ecs.ComponentSystem[*components.ActionComponent]
	entityManager *ecs.EntityManager
}

// NewMovementSystem 创建移动系统
func NewMovementSystem(em *ecs.EntityManager) *MovementSystem {
	s := &MovementSystem{entityManager: em}
	s.ComponentSystem = ecs.NewComponentSystem(em, s.updateActions)
	return s
}

func (s *MovementSystem) updateActions(id ecs.EntityID, actions *components.ActionComponent, deltaTime float64) {
	seq, ok := actions.Get(components.MoveActionKey)
	if !ok {
		return
	}
	if len(seq.Segments) == 0 {
		actions.Remove(components.MoveActionKey)
		return
	}
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id)
	if !ok {
		return
	}

	pos, done := advanceSequence(seq, deltaTime*actions.Speed)
	sprite.SetPosition(pos)
	if done {
		actions.Remove(components.MoveActionKey)
	}
}

// advanceSequence 推进非空移动链，返回新位置以及是否已播放完
func advanceSequence(seq *components.MoveSequence, remaining float64) (utils.Point, bool) {
	if seq.Finished() {
		return seq.Segments[len(seq.Segments)-1].To, true
	}
	pos := seq.Segments[seq.Index].From
	for !seq.Finished() {
		seg := seq.Segments[seq.Index]
		left := seg.Duration - seq.Elapsed
		if remaining >= left {
			remaining -= left
			pos = seg.To
			seq.Index++
			seq.Elapsed = 0
			continue
		}
		seq.Elapsed += remaining
		return utils.Lerp(seg.From, seg.To, seq.Elapsed/seg.Duration), false
	}
	return pos, true
}
