package steering

import (
	"math"

	"github.com/gonewx/towerdefense/pkg/utils"
)

// Path 带宽度的折线路径
type Path struct {
	Points []utils.Point
	Radius float64
}

// NewPath 创建路径，points 少于 2 个时返回 nil
func NewPath(points []utils.Point, radius float64) *Path {
	if len(points) < 2 {
		return nil
	}
	pts := make([]utils.Point, len(points))
	copy(pts, points)
	return &Path{Points: pts, Radius: radius}
}

// Length 路径总长
func (p *Path) Length() float64 {
	return utils.PolylineLength(p.Points)
}

// Closest 返回路径上离 pos 最近的点及其沿路径的距离
func (p *Path) Closest(pos utils.Point) (utils.Point, float64) {
	best := p.Points[0]
	bestDistSq := math.Inf(1)
	bestAlong := 0.0
	along := 0.0
	for i := 1; i < len(p.Points); i++ {
		a, b := p.Points[i-1], p.Points[i]
		q, t := utils.ClosestPointOnSegment(pos, a, b)
		segLen := a.DistanceTo(b)
		if d := q.Sub(pos).LengthSq(); d < bestDistSq {
			best, bestDistSq = q, d
			bestAlong = along + segLen*t
		}
		along += segLen
	}
	return best, bestAlong
}

// PointAt 返回沿路径距离 distance 处的点（超出两端时截断）
func (p *Path) PointAt(distance float64) utils.Point {
	if distance <= 0 {
		return p.Points[0]
	}
	for i := 1; i < len(p.Points); i++ {
		a, b := p.Points[i-1], p.Points[i]
		segLen := a.DistanceTo(b)
		if distance <= segLen {
			if segLen < utils.Epsilon {
				return b
			}
			return utils.Lerp(a, b, distance/segLen)
		}
		distance -= segLen
	}
	return p.Points[len(p.Points)-1]
}

// End 路径终点
func (p *Path) End() utils.Point {
	return p.Points[len(p.Points)-1]
}
