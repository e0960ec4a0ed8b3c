package app

import (
	"bytes"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// fonts HUD 与覆盖层使用的字体
type fonts struct {
	hud   *text.GoTextFace
	title *text.GoTextFace
}

func newFaceSource(ttf []byte, name string) (*text.GoTextFaceSource, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttf))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source %s: %w", name, err)
	}
	return source, nil
}

// loadFonts 使用 Go 字体创建字形
func loadFonts() (*fonts, error) {
	regular, err := newFaceSource(goregular.TTF, "goregular")
	if err != nil {
		return nil, err
	}
	bold, err := newFaceSource(gobold.TTF, "gobold")
	if err != nil {
		return nil, err
	}
	return &fonts{
		hud:   &text.GoTextFace{Source: regular, Size: 16, Direction: text.DirectionLeftToRight},
		title: &text.GoTextFace{Source: bold, Size: 36, Direction: text.DirectionLeftToRight},
	}, nil
}

// drawText 在 (x, y) 处绘制文字，centered 时以该点为中心
func drawText(screen *ebiten.Image, s string, face text.Face, x, y float64, clr color.Color, centered bool) {
	// 阴影
	shadow := &text.DrawOptions{}
	op := &text.DrawOptions{}
	if centered {
		for _, o := range []*text.DrawOptions{shadow, op} {
			o.LayoutOptions.PrimaryAlign = text.AlignCenter
			o.LayoutOptions.SecondaryAlign = text.AlignCenter
		}
	}
	shadow.GeoM.Translate(x+1, y+1)
	shadow.ColorScale.ScaleWithColor(color.RGBA{A: 180})
	text.Draw(screen, s, face, shadow)

	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, face, op)
}
