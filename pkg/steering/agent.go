// Package steering 实现连续转向移动的代理与行为
//
// 每帧由 Behavior 汇总各目标（Goal）的加权期望加速度，
// Agent 再按质量与最大加速度/速度积分出新的速度和位置。
package steering

import (
	"github.com/gonewx/towerdefense/pkg/utils"
)

// Agent 转向代理
type Agent struct {
	Position utils.Point
	Velocity utils.Point
	// Heading 当前朝向（单位向量），速度为零时保持上一次的朝向
	Heading utils.Point

	MaxSpeed        float64
	MaxAcceleration float64
	Mass            float64
	Radius          float64

	Behavior *Behavior
}

// NewAgent 创建朝向 +X 方向的代理
func NewAgent(pos utils.Point, maxSpeed, maxAcceleration, mass, radius float64) *Agent {
	return &Agent{
		Position:        pos,
		Heading:         utils.Pt(1, 0),
		MaxSpeed:        maxSpeed,
		MaxAcceleration: maxAcceleration,
		Mass:            mass,
		Radius:          radius,
	}
}

// Speed 当前速率
func (a *Agent) Speed() float64 {
	return a.Velocity.Length()
}

// Update 推进代理 deltaTime 秒
func (a *Agent) Update(deltaTime float64) {
	if deltaTime <= 0 {
		return
	}

	force := utils.Point{}
	if a.Behavior != nil {
		force = a.Behavior.Force(a, deltaTime)
	}

	mass := a.Mass
	if mass <= 0 {
		mass = 1
	}
	accel := force.ClampLength(a.MaxAcceleration).Scale(1 / mass)

	a.Velocity = a.Velocity.Add(accel.Scale(deltaTime)).ClampLength(a.MaxSpeed)
	a.Position = a.Position.Add(a.Velocity.Scale(deltaTime))

	if a.Velocity.LengthSq() > utils.Epsilon {
		a.Heading = a.Velocity.Normalize()
	}
}

// seek 返回朝目标点以最大速度前进所需的转向力
func (a *Agent) seek(target utils.Point) utils.Point {
	desired := target.Sub(a.Position).Normalize().Scale(a.MaxSpeed)
	return desired.Sub(a.Velocity).Normalize().Scale(a.MaxAcceleration)
}

// futurePosition 预测 t 秒后的位置
func (a *Agent) futurePosition(t float64) utils.Point {
	return a.Position.Add(a.Velocity.Scale(t))
}
