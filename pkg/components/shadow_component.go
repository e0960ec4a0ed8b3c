package components

// ShadowComponent 阴影组件
// 阴影锁定在精灵位置加偏移处，障碍物与防御塔的碰撞多边形取自阴影范围
type ShadowComponent struct {
	Width  float64
	Height float64

	// OffsetX/OffsetY 相对精灵中心的偏移
	OffsetX float64
	OffsetY float64

	X, Y     float64
	Z        float64
	Layer    Layer
	Attached bool
}

// Follow 将阴影锁定到精灵位置
func (s *ShadowComponent) Follow(sprite *SpriteComponent) {
	s.X = sprite.X + s.OffsetX
	s.Y = sprite.Y + s.OffsetY
	s.Z = sprite.Z
}
