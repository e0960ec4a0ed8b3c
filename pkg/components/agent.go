package components

import "github.com/gonewx/towerdefense/pkg/steering"

// AgentComponent 连续转向移动的代理
type AgentComponent struct {
	Agent *steering.Agent
}
