package systems

import (
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
)

// AgentSystem 推进转向代理并同步精灵位置
type AgentSystem struct {
	*ecs.ComponentSystem[*components.AgentComponent]
	entityManager *ecs.EntityManager
}

// NewAgentSystem 创建代理系统
func NewAgentSystem(em *ecs.EntityManager) *AgentSystem {
	s := &AgentSystem{entityManager: em}
	s.ComponentSystem = ecs.NewComponentSystem(em, s.updateAgent)
	return s
}

func (s *AgentSystem) updateAgent(id ecs.EntityID, comp *components.AgentComponent, deltaTime float64) {
	if comp.Agent == nil {
		return
	}
	comp.Agent.Update(deltaTime)
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
		sprite.SetPosition(comp.Agent.Position)
	}
}
