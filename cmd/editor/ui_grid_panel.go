package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui/widget"
)

// buildGridPanel lays out one page of the cell grid. Positions past the
// logical count are padding and cannot be edited.
func (g *Editor) buildGridPanel(theme *widget.Theme) *widget.Container {
	panel := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(6),
			),
		),
	)

	pages := pageCount(g.doc.Rows())
	nav := g.newRow(8)
	nav.AddChild(g.newButton(theme, "<", 30, func() { g.setPage(g.page - 1) }))
	nav.AddChild(widget.NewLabel(widget.LabelOpts.Text(
		fmt.Sprintf("Page %d/%d  (%d waves, %d rows)", g.page+1, pages, g.doc.Count(), g.doc.Rows()),
		&g.fontFace, labelColor,
	)))
	nav.AddChild(g.newButton(theme, ">", 30, func() { g.setPage(g.page + 1) }))
	panel.AddChild(nav)

	grid := widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewGridLayout(
				widget.GridLayoutOpts.Columns(g.doc.Columns()),
				widget.GridLayoutOpts.Spacing(2, 2),
			),
		),
	)
	cells := g.doc.Cells()
	start, end := pageSlots(g.page, g.doc.Columns(), g.doc.Rows())
	for slot := start; slot < end; slot++ {
		if slot >= len(cells) {
			pad := widget.NewButton(
				widget.ButtonOpts.Image(tintedButtonImage(paddingColor)),
				widget.ButtonOpts.Text("", &g.fontFace, buttonTextColor(paddingColor)),
				widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(84, 36)),
			)
			pad.GetWidget().Disabled = true
			grid.AddChild(pad)
			continue
		}

		c := cells[slot]
		label := cellLabel(c)
		if slot == g.cursor {
			label = "[" + label + "]"
		}
		bg := g.doc.Catalog().ElementColor(c.First())
		grid.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(g.cellButtonImage(c.First())),
			widget.ButtonOpts.Text(label, &g.fontFace, buttonTextColor(bg)),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(84, 36)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				g.OpenCell(slot)
			}),
		))
	}
	panel.AddChild(grid)
	return panel
}
