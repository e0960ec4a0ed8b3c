package components

import "github.com/gonewx/towerdefense/pkg/utils"

// SpriteComponent 实体在世界中的位置与可视尺寸
// 核心逻辑只读写 X/Y/Z，具体绘制由宿主适配层完成
type SpriteComponent struct {
	X, Y   float64 // 中心位置（世界坐标，Y 轴向上）
	Z      float64 // 层内排序值
	Width  float64
	Height float64
	Layer  Layer
	// Attached 是否已挂接到渲染层（由 EntityRegistry 设置）
	Attached bool
	// Label 调试/宿主绘制使用的名称，如 "Light"、"Wood"
	Label string
}

// Position 返回中心位置
func (s *SpriteComponent) Position() utils.Point {
	return utils.Pt(s.X, s.Y)
}

// SetPosition 设置中心位置
func (s *SpriteComponent) SetPosition(p utils.Point) {
	s.X, s.Y = p.X, p.Y
}
