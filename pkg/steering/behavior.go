package steering

import (
	"math"

	"github.com/gonewx/towerdefense/pkg/utils"
)

// Goal 转向目标，返回期望的转向力
type Goal interface {
	Force(agent *Agent, deltaTime float64) utils.Point
}

type weightedGoal struct {
	goal   Goal
	weight float64
}

// Behavior 加权目标集合
type Behavior struct {
	goals []weightedGoal
}

// NewBehavior 创建空行为
func NewBehavior() *Behavior {
	return &Behavior{}
}

// AddGoal 添加目标；权重为 0 的目标不参与计算
func (b *Behavior) AddGoal(goal Goal, weight float64) {
	b.goals = append(b.goals, weightedGoal{goal: goal, weight: weight})
}

// GoalCount 目标数量
func (b *Behavior) GoalCount() int {
	return len(b.goals)
}

// Weight 返回第 i 个目标的权重
func (b *Behavior) Weight(i int) float64 {
	return b.goals[i].weight
}

// Goal 返回第 i 个目标
func (b *Behavior) Goal(i int) Goal {
	return b.goals[i].goal
}

// Force 汇总加权转向力
func (b *Behavior) Force(agent *Agent, deltaTime float64) utils.Point {
	total := utils.Point{}
	for _, wg := range b.goals {
		if wg.weight == 0 {
			continue
		}
		total = total.Add(wg.goal.Force(agent, deltaTime).Scale(wg.weight))
	}
	return total.ClampLength(agent.MaxAcceleration)
}

// ========== 目标 ==========

// ReachTargetSpeedGoal 沿当前朝向加速/减速到目标速率
type ReachTargetSpeedGoal struct {
	Speed float64
}

// ReachTargetSpeed 创建目标速率目标
func ReachTargetSpeed(speed float64) *ReachTargetSpeedGoal {
	return &ReachTargetSpeedGoal{Speed: speed}
}

// Force 实现 Goal
func (g *ReachTargetSpeedGoal) Force(agent *Agent, deltaTime float64) utils.Point {
	target := math.Min(g.Speed, agent.MaxSpeed)
	diff := target - agent.Speed()
	if math.Abs(diff) < utils.Epsilon {
		return utils.Point{}
	}
	mag := math.Min(math.Abs(diff)/deltaTime, agent.MaxAcceleration)
	if diff < 0 {
		mag = -mag
	}
	return agent.Heading.Scale(mag)
}

// AvoidObstaclesGoal 在预测时间内即将碰撞时转向远离障碍物
type AvoidObstaclesGoal struct {
	Obstacles      []utils.Polygon
	PredictionTime float64
}

// AvoidObstacles 创建避障目标
func AvoidObstacles(obstacles []utils.Polygon, predictionTime float64) *AvoidObstaclesGoal {
	return &AvoidObstaclesGoal{Obstacles: obstacles, PredictionTime: predictionTime}
}

// Force 实现 Goal
func (g *AvoidObstaclesGoal) Force(agent *Agent, deltaTime float64) utils.Point {
	ahead := agent.futurePosition(g.PredictionTime)
	force := utils.Point{}
	for _, poly := range g.Obstacles {
		if !poly.SegmentBlocked(agent.Position, ahead) && !poly.Contains(ahead) {
			continue
		}
		// 沿速度的法向避开障碍物中心
		away := ahead.Sub(poly.Centroid())
		lateral := utils.Pt(-agent.Heading.Y, agent.Heading.X)
		if away.Dot(lateral) < 0 {
			lateral = lateral.Scale(-1)
		}
		force = force.Add(lateral)
	}
	return force.Normalize().Scale(agent.MaxAcceleration)
}

// FollowPathGoal 沿路径前进（或后退）
type FollowPathGoal struct {
	Path           *Path
	PredictionTime float64
	Forward        bool
}

// FollowPath 创建路径跟随目标
func FollowPath(path *Path, predictionTime float64, forward bool) *FollowPathGoal {
	return &FollowPathGoal{Path: path, PredictionTime: predictionTime, Forward: forward}
}

// Force 实现 Goal
func (g *FollowPathGoal) Force(agent *Agent, deltaTime float64) utils.Point {
	if g.Path == nil {
		return utils.Point{}
	}
	_, along := g.Path.Closest(agent.futurePosition(g.PredictionTime))
	lookahead := math.Max(agent.MaxSpeed*g.PredictionTime, g.Path.Radius)
	if !g.Forward {
		lookahead = -lookahead
	}
	return agent.seek(g.Path.PointAt(along + lookahead))
}

// StayOnPathGoal 预测位置偏离路径宽度时拉回路径
type StayOnPathGoal struct {
	Path           *Path
	PredictionTime float64
}

// StayOnPath 创建保持在路径内的目标
func StayOnPath(path *Path, predictionTime float64) *StayOnPathGoal {
	return &StayOnPathGoal{Path: path, PredictionTime: predictionTime}
}

// Force 实现 Goal
func (g *StayOnPathGoal) Force(agent *Agent, deltaTime float64) utils.Point {
	if g.Path == nil {
		return utils.Point{}
	}
	future := agent.futurePosition(g.PredictionTime)
	closest, _ := g.Path.Closest(future)
	if closest.DistanceTo(future) <= g.Path.Radius {
		return utils.Point{}
	}
	return agent.seek(closest)
}
