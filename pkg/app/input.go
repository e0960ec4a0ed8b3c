package app

import (
	"github.com/gonewx/towerdefense/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// pointerState 当前帧的指针输入，鼠标与触摸统一处理
type pointerState struct {
	// pressed 本帧新按下的位置（世界坐标），触摸在前
	pressed []utils.Point
	// hover 悬停位置；有活动触摸时取第一个触摸点
	hover    utils.Point
	hasHover bool

	touchIDs []ebiten.TouchID
}

// read 读取本帧输入，复用上一帧的切片
func (p pointerState) read() pointerState {
	next := pointerState{
		pressed:  p.pressed[:0],
		touchIDs: inpututil.AppendJustPressedTouchIDs(p.touchIDs[:0]),
	}
	for _, id := range next.touchIDs {
		next.pressed = append(next.pressed, screenToWorld(ebiten.TouchPosition(id)))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		next.pressed = append(next.pressed, screenToWorld(ebiten.CursorPosition()))
	}

	if active := ebiten.AppendTouchIDs(nil); len(active) > 0 {
		next.hover, next.hasHover = screenToWorld(ebiten.TouchPosition(active[0])), true
	} else {
		x, y := ebiten.CursorPosition()
		next.hover, next.hasHover = screenToWorld(x, y), x >= 0 && y >= 0 && x < ScreenWidth && y < ScreenHeight
	}
	return next
}

func screenToWorld(x, y int) utils.Point {
	return utils.Pt(float64(x), float64(ScreenHeight-y))
}
