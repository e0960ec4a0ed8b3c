package utils

import (
	"math"
	"slices"
)

// Polygon 简单多边形（顶点按顺序排列，首尾自动闭合）
type Polygon []Point

// Rect 创建以 (cx, cy) 为中心、宽 w 高 h 的矩形多边形（逆时针）
func Rect(cx, cy, w, h float64) Polygon {
	hw, hh := w/2, h/2
	return Polygon{
		{X: cx - hw, Y: cy - hh},
		{X: cx + hw, Y: cy - hh},
		{X: cx + hw, Y: cy + hh},
		{X: cx - hw, Y: cy + hh},
	}
}

// SignedArea 有向面积，逆时针为正
func (poly Polygon) SignedArea() float64 {
	area := 0.0
	n := len(poly)
	for i := 0; i < n; i++ {
		area += poly[i].Cross(poly[(i+1)%n])
	}
	return area / 2
}

// CounterClockwise 返回逆时针顺序的副本
func (poly Polygon) CounterClockwise() Polygon {
	out := make(Polygon, len(poly))
	copy(out, poly)
	if out.SignedArea() < 0 {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out
}

// Centroid 顶点平均值
func (poly Polygon) Centroid() Point {
	if len(poly) == 0 {
		return Point{}
	}
	c := Point{}
	for _, p := range poly {
		c = c.Add(p)
	}
	return c.Scale(1 / float64(len(poly)))
}

// Contains 判断点是否严格位于多边形内部（边界上的点返回 false）
func (poly Polygon) Contains(p Point) bool {
	n := len(poly)
	if n < 3 {
		return false
	}
	for i := 0; i < n; i++ {
		if onSegment(p, poly[i], poly[(i+1)%n]) {
			return false
		}
	}
	inside := false
	for i, j := 0, n-1; i < n; j, i = i, i+1 {
		a, b := poly[i], poly[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
	}
	return inside
}

// Inflate 将多边形向外扩张 radius（每个顶点沿相邻两条边外法线的角平分方向移动）
func (poly Polygon) Inflate(radius float64) Polygon {
	ccw := poly.CounterClockwise()
	n := len(ccw)
	if n < 3 || radius <= 0 {
		return ccw
	}
	out := make(Polygon, n)
	for i := 0; i < n; i++ {
		prev := ccw[(i-1+n)%n]
		cur := ccw[i]
		next := ccw[(i+1)%n]
		n1 := outwardNormal(prev, cur)
		n2 := outwardNormal(cur, next)
		denom := 1 + n1.Dot(n2)
		if denom < 1e-3 {
			// 接近 180° 折返的尖角，退化为沿单条法线偏移
			out[i] = cur.Add(n1.Scale(radius))
			continue
		}
		out[i] = cur.Add(n1.Add(n2).Scale(radius / denom))
	}
	return out
}

// Edges 遍历所有边
func (poly Polygon) Edges(fn func(a, b Point)) {
	n := len(poly)
	for i := 0; i < n; i++ {
		fn(poly[i], poly[(i+1)%n])
	}
}

// SegmentBlocked 判断线段 ab 是否穿过多边形内部
// 收集 ab 与边界的全部接触参数（含落在 ab 上的顶点），按参数切分后
// 检查每个子区间的中点；仅在端点或沿边接触不算阻挡（用于可见性图中沿障碍物边缘行走）
func (poly Polygon) SegmentBlocked(a, b Point) bool {
	if len(poly) < 3 {
		return false
	}
	ab := b.Sub(a)
	lenSq := ab.LengthSq()
	if lenSq == 0 {
		return poly.Contains(a)
	}

	ts := []float64{0, 1}
	for _, v := range poly {
		if onSegment(v, a, b) {
			ts = append(ts, v.Sub(a).Dot(ab)/lenSq)
		}
	}
	poly.Edges(func(c, d Point) {
		if t, ok := segmentParam(a, b, c, d); ok {
			ts = append(ts, t)
		}
	})
	slices.Sort(ts)

	for i := 1; i < len(ts); i++ {
		lo, hi := math.Max(ts[i-1], 0), math.Min(ts[i], 1)
		if hi-lo < 1e-9 {
			continue
		}
		if poly.Contains(Lerp(a, b, (lo+hi)/2)) {
			return true
		}
	}
	return false
}

// segmentParam 返回线段 ab 与 cd 交点在 ab 上的参数 t；平行或不相交时 ok 为 false
func segmentParam(a, b, c, d Point) (float64, bool) {
	r := b.Sub(a)
	s := d.Sub(c)
	denom := r.Cross(s)
	if math.Abs(denom) < 1e-12 {
		return 0, false
	}
	ac := c.Sub(a)
	t := ac.Cross(s) / denom
	u := ac.Cross(r) / denom
	const eps = 1e-9
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return 0, false
	}
	return t, true
}

// orientation 返回 -1/0/1，表示 r 在有向线段 pq 的右侧/共线/左侧
func orientation(p, q, r Point) int {
	v := q.Sub(p).Cross(r.Sub(p))
	scale := math.Max(1, q.Sub(p).Length()*r.Sub(p).Length())
	if math.Abs(v) <= 1e-9*scale {
		return 0
	}
	if v > 0 {
		return 1
	}
	return -1
}

// onSegment 判断点 p 是否位于线段 ab 上
func onSegment(p, a, b Point) bool {
	if orientation(a, b, p) != 0 {
		return false
	}
	return p.X >= math.Min(a.X, b.X)-1e-9 && p.X <= math.Max(a.X, b.X)+1e-9 &&
		p.Y >= math.Min(a.Y, b.Y)-1e-9 && p.Y <= math.Max(a.Y, b.Y)+1e-9
}

// outwardNormal 逆时针多边形边 ab 的外法线（单位向量）
func outwardNormal(a, b Point) Point {
	e := b.Sub(a)
	return Point{X: e.Y, Y: -e.X}.Normalize()
}
