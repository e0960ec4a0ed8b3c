// Package utils 提供几何与缓动工具
package utils

import "math"

// Epsilon 几何比较使用的容差
const Epsilon = 1e-9

// Point 二维世界坐标点（Y 轴向上，X 轴为前进方向）
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Pt 创建坐标点
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add 向量加法
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub 向量减法
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Scale 向量数乘
func (p Point) Scale(f float64) Point {
	return Point{X: p.X * f, Y: p.Y * f}
}

// Dot 点积
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross 二维叉积（z 分量）
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length 向量长度
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// LengthSq 向量长度的平方
func (p Point) LengthSq() float64 {
	return p.X*p.X + p.Y*p.Y
}

// Normalize 返回单位向量，零向量返回零向量
func (p Point) Normalize() Point {
	l := p.Length()
	if l < Epsilon {
		return Point{}
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// ClampLength 将向量长度限制在 max 以内，方向不变
func (p Point) ClampLength(max float64) Point {
	l := p.Length()
	if l <= max || l < Epsilon {
		return p
	}
	return p.Scale(max / l)
}

// DistanceTo 到另一点的欧氏距离
func (p Point) DistanceTo(q Point) float64 {
	return q.Sub(p).Length()
}

// Equal 在容差范围内比较两点
func (p Point) Equal(q Point) bool {
	return math.Abs(p.X-q.X) < 1e-6 && math.Abs(p.Y-q.Y) < 1e-6
}

// Lerp 线性插值，t=0 返回 p，t=1 返回 q
func Lerp(p, q Point, t float64) Point {
	return Point{X: p.X + (q.X-p.X)*t, Y: p.Y + (q.Y-p.Y)*t}
}

// Distance 两点间欧氏距离
func Distance(ax, ay, bx, by float64) float64 {
	return math.Hypot(bx-ax, by-ay)
}

// ClosestPointOnSegment 返回线段 ab 上离 p 最近的点以及对应参数 t∈[0,1]
func ClosestPointOnSegment(p, a, b Point) (Point, float64) {
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq < Epsilon {
		return a, 0
	}
	t := p.Sub(a).Dot(ab) / lenSq
	t = math.Max(0, math.Min(1, t))
	return a.Add(ab.Scale(t)), t
}

// PolylineLength 折线总长度
func PolylineLength(points []Point) float64 {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += points[i-1].DistanceTo(points[i])
	}
	return total
}
