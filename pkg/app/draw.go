package app

import (
	"cmp"
	"fmt"
	"image/color"
	"slices"

	"github.com/gonewx/towerdefense/pkg/components"
	"github.com/gonewx/towerdefense/pkg/ecs"
	"github.com/gonewx/towerdefense/pkg/game"
	"github.com/gonewx/towerdefense/pkg/scenes"
	"github.com/gonewx/towerdefense/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 逻辑屏幕尺寸
const (
	ScreenWidth  = 1024
	ScreenHeight = 768
)

var (
	colorGround     = color.RGBA{R: 120, G: 170, B: 90, A: 255}
	colorShadow     = color.RGBA{A: 80}
	colorObstacle   = color.RGBA{R: 130, G: 110, B: 90, A: 255}
	colorFootprint  = color.RGBA{R: 200, G: 60, B: 60, A: 160}
	colorSlot       = color.RGBA{R: 255, G: 255, B: 255, A: 120}
	colorProjectile = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	colorHealthBack = color.RGBA{R: 60, G: 0, B: 0, A: 200}
	colorHealth     = color.RGBA{R: 220, G: 40, B: 40, A: 255}
	colorOverlay    = color.RGBA{A: 140}
	colorGoal       = color.RGBA{R: 255, G: 220, B: 0, A: 200}
)

// 各类实体的填充色，按精灵 Label 查找
var labelColors = map[string]color.RGBA{
	"Light":  {R: 230, G: 200, B: 60, A: 255},
	"Medium": {R: 70, G: 160, B: 230, A: 255},
	"Heavy":  {R: 150, G: 60, B: 160, A: 255},
	"Wood":   {R: 150, G: 100, B: 50, A: 255},
	"Rock":   {R: 120, G: 120, B: 130, A: 255},
}

// toScreen 世界坐标（Y 轴向上）转屏幕坐标
func toScreen(p utils.Point) (float32, float32) {
	return float32(p.X), float32(ScreenHeight - p.Y)
}

// drawScene 按层级与 Z 序绘制场景：阴影、精灵、调试多边形、HUD 与覆盖层
func (a *App) drawScene(screen *ebiten.Image) {
	screen.Fill(colorGround)
	em := a.scene.EntityManager()
	entities := a.scene.Entities()

	for _, id := range entities {
		shadow, ok := ecs.GetComponent[*components.ShadowComponent](em, id)
		if !ok || !shadow.Attached {
			continue
		}
		x, y := toScreen(utils.Pt(shadow.X, shadow.Y))
		vector.DrawFilledRect(screen, x-float32(shadow.Width/2), y-float32(shadow.Height/2),
			float32(shadow.Width), float32(shadow.Height), colorShadow, false)
	}

	for _, slot := range a.scene.FreeSlots() {
		x, y := toScreen(slot)
		vector.StrokeCircle(screen, x, y, float32(scenes.SlotSnapRadius), 2, colorSlot, true)
	}
	a.drawPlacementPreview(screen)

	sprites := make([]spriteRef, 0, len(entities))
	for _, id := range entities {
		sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id)
		if !ok || !sprite.Attached {
			continue
		}
		sprites = append(sprites, spriteRef{id: id, sprite: sprite})
	}
	slices.SortStableFunc(sprites, func(a, b spriteRef) int {
		if c := cmp.Compare(a.sprite.Layer, b.sprite.Layer); c != 0 {
			return c
		}
		return cmp.Compare(a.sprite.Z, b.sprite.Z)
	})
	for _, ref := range sprites {
		a.drawSprite(screen, em, ref)
	}

	if a.showFootprints {
		for _, poly := range a.scene.Obstacles() {
			drawPolygon(screen, poly, colorFootprint)
		}
	}

	level := a.scene.Level()
	gx, _ := toScreen(utils.Pt(level.GoalThreshold, 0))
	vector.StrokeLine(screen, gx, 0, gx, ScreenHeight, 2, colorGoal, false)

	a.drawHUD(screen)
	a.drawOverlay(screen)
}

// drawPlacementPreview 悬停在空闲建塔位上时显示所选防御塔的射程
func (a *App) drawPlacementPreview(screen *ebiten.Image) {
	if !a.pointer.hasHover || a.scene.State() != game.StateActive {
		return
	}
	slot, ok := a.scene.FreeSlotAt(a.pointer.hover)
	if !ok {
		return
	}
	stats, ok := a.scene.TowerStats().Get(a.selectedTower)
	if !ok {
		return
	}
	clr := colorSlot
	if stats.Cost > a.presenter.HUD().Gold {
		clr = colorFootprint
	}
	x, y := toScreen(a.scene.Level().TowerSlots[slot])
	vector.StrokeCircle(screen, x, y, float32(stats.Range), 1, clr, true)
}

type spriteRef struct {
	id     ecs.EntityID
	sprite *components.SpriteComponent
}

func (a *App) drawSprite(screen *ebiten.Image, em *ecs.EntityManager, ref spriteRef) {
	sprite := ref.sprite
	x, y := toScreen(sprite.Position())
	w, h := float32(sprite.Width), float32(sprite.Height)

	if ecs.HasComponent[*components.ProjectileComponent](em, ref.id) {
		vector.DrawFilledCircle(screen, x, y, w/2, colorProjectile, true)
		return
	}

	fill, ok := labelColors[sprite.Label]
	if !ok {
		fill = colorObstacle
	}
	left, top := x-w/2, y-h/2
	vector.DrawFilledRect(screen, left, top, w, h, fill, false)
	vector.StrokeRect(screen, left, top, w, h, 1, color.Black, false)

	if anim, ok := ecs.GetComponent[*components.AnimationComponent](em, ref.id); ok {
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %d", anim.CurrentState, anim.CurrentFrame), int(left)+2, int(top)+2)
	} else if sprite.Label != "" {
		ebitenutil.DebugPrintAt(screen, sprite.Label, int(left)+2, int(top)+2)
	}

	if health, ok := ecs.GetComponent[*components.HealthComponent](em, ref.id); ok && health.MaxHealth > 0 {
		ratio := float32(max(0, health.CurrentHealth)) / float32(health.MaxHealth)
		vector.DrawFilledRect(screen, left, top-8, w, 4, colorHealthBack, false)
		vector.DrawFilledRect(screen, left, top-8, w*ratio, 4, colorHealth, false)
	}
}

func drawPolygon(screen *ebiten.Image, poly utils.Polygon, clr color.Color) {
	poly.Edges(func(p, q utils.Point) {
		x0, y0 := toScreen(p)
		x1, y1 := toScreen(q)
		vector.StrokeLine(screen, x0, y0, x1, y1, 1, clr, true)
	})
}

func (a *App) drawHUD(screen *ebiten.Image) {
	hud := a.presenter.HUD()
	drawText(screen, fmt.Sprintf("Lives %d    Gold %d    %s", hud.Lives, hud.Gold, hud.WaveText()),
		a.fonts.hud, 8, 6, color.White, false)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("[1] Wood  [2] Rock  selected: %s   [M] music  [N] sound  [F] footprints  [R] reset  [F11] fullscreen",
		a.selectedTower), 8, 28)
	if a.message != "" {
		drawText(screen, a.message, a.fonts.hud, 8, 44, colorHealth, false)
	}
	for i, line := range a.eventLog {
		ebitenutil.DebugPrintAt(screen, line, 8, ScreenHeight-16*(len(a.eventLog)-i)-4)
	}
}

// overlayFadeTime 覆盖层淡入时长（秒）
const overlayFadeTime = 0.4

var overlayTitles = map[game.OverlayKind]string{
	game.OverlayReady: "READY - click to start",
	game.OverlayWin:   "YOU WIN - click to play again",
	game.OverlayLose:  "YOU LOSE - click to try again",
}

// visibleOverlay 当前显示的覆盖层，胜负优先于 Ready
func (a *App) visibleOverlay() (game.OverlayKind, bool) {
	for _, kind := range []game.OverlayKind{game.OverlayWin, game.OverlayLose, game.OverlayReady} {
		if a.presenter.OverlayVisible(kind) {
			return kind, true
		}
	}
	return 0, false
}

func (a *App) drawOverlay(screen *ebiten.Image) {
	kind, ok := a.visibleOverlay()
	if !ok {
		return
	}
	fade := utils.EaseOutCubic(a.overlayAge / overlayFadeTime)
	bg := colorOverlay
	bg.A = uint8(utils.LerpFloat(0, float64(colorOverlay.A), fade))
	vector.DrawFilledRect(screen, 0, ScreenHeight/2-40, ScreenWidth, 80, bg, false)
	if fade < 0.5 {
		return
	}
	drawText(screen, overlayTitles[kind], a.fonts.title, ScreenWidth/2, ScreenHeight/2, color.White, true)
}
