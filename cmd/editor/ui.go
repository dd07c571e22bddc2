package main

import (
	"bytes"
	"image/color"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func loadFontFace() text.Face {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("Failed to load font: " + err.Error())
	}
	return &text.GoTextFace{Source: s, Size: 14}
}

// rebuildUI recreates the widget tree from the document. Handlers only mark
// the editor dirty, so the tree is never replaced during its own update.
func (g *Editor) rebuildUI() {
	g.dirty = false
	if g.fontFace == nil {
		g.fontFace = loadFontFace()
	}
	if g.ui == nil {
		g.ui = &ebitenui.UI{}
		g.ui.PrimaryTheme = newEditorTheme(&g.fontFace)
	}
	theme := g.ui.PrimaryTheme

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))

	mainPanel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(solidNineSlice(panelColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(10),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 10, Bottom: 10, Left: 10, Right: 10}),
			),
		),
	)
	mainPanel.GetWidget().LayoutData = widget.AnchorLayoutData{
		HorizontalPosition: widget.AnchorLayoutPositionStart,
		VerticalPosition:   widget.AnchorLayoutPositionStart,
		StretchHorizontal:  true,
		StretchVertical:    true,
	}

	mainPanel.AddChild(g.buildToolbar(theme))
	mainPanel.AddChild(g.buildLevelSection(theme))
	mainPanel.AddChild(g.buildGridPanel(theme))
	mainPanel.AddChild(widget.NewText(
		widget.TextOpts.Text(g.status, &g.fontFace, color.RGBA{230, 230, 160, 255}),
	))
	root.AddChild(mainPanel)

	if s := g.doc.ActiveSession(); s != nil {
		root.AddChild(g.buildSelectionDialog(theme, s))
	}
	g.ui.Container = root
}
