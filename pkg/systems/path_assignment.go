package systems

import (
	"github.com/charmbracelet/log"
	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/config"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/navigation"
	"github.com/gonewx/towerdefense/pkg/steering"
	"github.com/gonewx/towerdefense/pkg/utils"
)

// 转向行为参数
const (
	PathRadius           = 32.0
	PredictionTime       = 0.5
	StoppedMaxSpeed      = 0.1
	weightReachSpeed     = 0.5
	weightAvoidObstacles = 1.0
	weightFollowPath     = 1.0
	weightStayOnPath     = 1.0
)

// PathAssignment 把寻路结果转换为敌人的移动
//
// 离散移动的敌人得到一条按 "move" 键运行的定时移动链；
// 转向移动的敌人得到一组加权转向目标。
type PathAssignment struct {
	entityManager *ecs.EntityManager
	registry      *EntityRegistry
	graph         *navigation.ObstacleGraph
	endPoint      utils.Point
}

// NewPathAssignment 创建路径分配器
func NewPathAssignment(em *ecs.EntityManager, registry *EntityRegistry, graph *navigation.ObstacleGraph, endPoint utils.Point) *PathAssignment {
	return &PathAssignment{
		entityManager: em,
		registry:      registry,
		graph:         graph,
		endPoint:      endPoint,
	}
}

// AssignPath 从敌人当前位置寻路到终点并设置移动
func (p *PathAssignment) AssignPath(id ecs.EntityID) {
	sprite, ok := ecs.GetComponent[*components.SpriteComponent](p.entityManager, id)
	if !ok {
		return
	}
	path := p.graph.FindPath(sprite.Position(), p.endPoint)
	if len(path) == 0 {
		log.Debugf("[PathAssignment] 敌人 %d 无可达路径，原地等待", id)
	}
	p.SetEnemyOnPath(id, path)
}

// SetEnemyOnPath 按敌人的移动方式安装路径
func (p *PathAssignment) SetEnemyOnPath(id ecs.EntityID, path []utils.Point) {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](p.entityManager, id)
	if !ok {
		return
	}

	switch enemy.Movement {
	case config.MovementSteering:
		agentComp, ok := ecs.GetComponent[*components.AgentComponent](p.entityManager, id)
		if !ok || agentComp.Agent == nil {
			return
		}
		p.installBehavior(agentComp.Agent, path)
	default:
		actions, ok := ecs.GetComponent[*components.ActionComponent](p.entityManager, id)
		if !ok {
			return
		}
		if len(path) < 2 {
			actions.Remove(components.MoveActionKey)
			return
		}
		actions.Run(components.MoveActionKey, buildMoveSequence(path, enemy.Speed))
	}
}

// buildMoveSequence 把路点转换为定时直线段，duration = length / speed
func buildMoveSequence(path []utils.Point, speed float64) *components.MoveSequence {
	seq := &components.MoveSequence{Segments: make([]components.MoveSegment, 0, len(path)-1)}
	for i := 1; i < len(path); i++ {
		from, to := path[i-1], path[i]
		seq.Segments = append(seq.Segments, components.MoveSegment{
			From:     from,
			To:       to,
			Duration: from.DistanceTo(to) / speed,
		})
	}
	return seq
}

func (p *PathAssignment) installBehavior(agent *steering.Agent, points []utils.Point) {
	// 少于两个路点（不可达或已在终点）时清空旧行为原地等待
	path := steering.NewPath(points, PathRadius)
	if path == nil {
		agent.Behavior = nil
		agent.Velocity = utils.Point{}
		return
	}

	behavior := steering.NewBehavior()
	behavior.AddGoal(steering.ReachTargetSpeed(agent.MaxSpeed), weightReachSpeed)
	behavior.AddGoal(steering.AvoidObstacles(p.graph.Obstacles(), PredictionTime), weightAvoidObstacles)
	behavior.AddGoal(steering.FollowPath(path, PredictionTime, true), weightFollowPath)
	behavior.AddGoal(steering.StayOnPath(path, PredictionTime), weightStayOnPath)
	agent.Behavior = behavior
}

// RecalculateEnemyPaths 拓扑变化后为所有存活敌人重新寻路
func (p *PathAssignment) RecalculateEnemyPaths() {
	count := 0
	for _, id := range p.registry.Entities() {
		if !ecs.HasComponent[*components.EnemyComponent](p.entityManager, id) {
			continue
		}
		if health, ok := ecs.GetComponent[*components.HealthComponent](p.entityManager, id); ok && health.IsDepleted() {
			continue
		}
		p.AssignPath(id)
		count++
	}
	log.Debugf("[PathAssignment] 重新寻路 %d 个敌人", count)
}

// StopEnemyMoving 停止敌人移动
func (p *PathAssignment) StopEnemyMoving(id ecs.EntityID) {
	if actions, ok := ecs.GetComponent[*components.ActionComponent](p.entityManager, id); ok {
		actions.Remove(components.MoveActionKey)
	}
	if agentComp, ok := ecs.GetComponent[*components.AgentComponent](p.entityManager, id); ok && agentComp.Agent != nil {
		agentComp.Agent.MaxSpeed = StoppedMaxSpeed
	}
}

// Slow 对敌人施加减速，已减速的敌人重新施加时覆盖倍率
func (p *PathAssignment) Slow(id ecs.EntityID, factor float64) {
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](p.entityManager, id)
	if !ok {
		return
	}
	enemy.HasBeenSlowed = true
	enemy.SpeedFactor = factor

	if actions, ok := ecs.GetComponent[*components.ActionComponent](p.entityManager, id); ok {
		actions.Speed = factor
	}
	if agentComp, ok := ecs.GetComponent[*components.AgentComponent](p.entityManager, id); ok && agentComp.Agent != nil {
		agentComp.Agent.MaxSpeed = enemy.Speed * factor
	}
}
