package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

var (
	panelColor   = color.RGBA{40, 40, 40, 255}
	dialogColor  = color.RGBA{220, 220, 220, 255}
	overlayColor = color.RGBA{0, 0, 0, 160}
	paddingColor = color.RGBA{70, 70, 70, 255}
	labelColor   = &widget.LabelColor{Idle: color.White, Disabled: color.Gray{Y: 140}}
	darkLabel    = &widget.LabelColor{Idle: color.Black, Disabled: color.Gray{Y: 140}}
)

// solidNineSlice returns a solid color *image.NineSlice for widget backgrounds.
func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		PanelTheme: &widget.PanelParams{
			BackgroundImage: solidNineSlice(panelColor),
		},
		ButtonTheme: &widget.ButtonParams{
			Image: &widget.ButtonImage{
				Idle:     solidNineSlice(color.RGBA{180, 180, 180, 255}),
				Hover:    solidNineSlice(color.RGBA{200, 200, 200, 255}),
				Pressed:  solidNineSlice(color.RGBA{160, 160, 160, 255}),
				Disabled: solidNineSlice(color.RGBA{110, 110, 110, 255}),
			},
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle:     color.Black,
				Hover:    color.Black,
				Pressed:  color.RGBA{0, 0, 200, 255},
				Disabled: color.Gray{Y: 60},
			},
		},
	}
}

// tintedButtonImage builds a button image in c with lighter hover and darker
// pressed states.
func tintedButtonImage(c color.Color) *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     solidNineSlice(c),
		Hover:    solidNineSlice(shade(c, 1.2)),
		Pressed:  solidNineSlice(shade(c, 0.7)),
		Disabled: solidNineSlice(shade(c, 0.4)),
	}
}

func shade(c color.Color, f float64) color.RGBA {
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint8 {
		s := float64(v>>8) * f
		if s > 255 {
			s = 255
		}
		return uint8(s)
	}
	return color.RGBA{scale(r), scale(g), scale(b), uint8(a >> 8)}
}

// contrastText picks black or white text for a background of color c.
func contrastText(c color.Color) color.Color {
	r, g, b, _ := c.RGBA()
	lum := 0.299*float64(r>>8) + 0.587*float64(g>>8) + 0.114*float64(b>>8)
	if lum > 140 {
		return color.Black
	}
	return color.White
}

func buttonTextColor(bg color.Color) *widget.ButtonTextColor {
	fg := contrastText(bg)
	return &widget.ButtonTextColor{Idle: fg, Hover: fg, Pressed: fg, Disabled: color.Gray{Y: 128}}
}
