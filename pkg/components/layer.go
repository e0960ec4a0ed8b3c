package components

// Layer 渲染层级
// 同一层内的先后顺序由 Z 决定，层与层之间按 Layer 值从小到大绘制
type Layer int

const (
	LayerBackground Layer = -100
	LayerShadows    Layer = -50
	LayerSprites    Layer = 0
	LayerHud        Layer = 1000
	LayerOverlay    Layer = 1100
)

// ZDeltaForSprites 精灵层内相邻两个实体的 Z 间隔
const ZDeltaForSprites = 10
