package main

import (
	"fmt"
	"image/color"
	"slices"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/waveconfigurator/session"
	"github.com/milk9111/waveconfigurator/wave"
)

// buildSelectionDialog renders the modal editor for the active session. Every
// control edits the session's working copy; only Apply touches the grid.
func (g *Editor) buildSelectionDialog(theme *widget.Theme, s *session.Session) *widget.Container {
	overlay := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
				StretchHorizontal:  true,
				StretchVertical:    true,
			}),
			widget.WidgetOpts.MinSize(1, 1),
		),
		widget.ContainerOpts.Layout(widget.NewAnchorLayout()),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(overlayColor)),
	)

	dialog := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(560, 280),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{
				HorizontalPosition: widget.AnchorLayoutPositionCenter,
				VerticalPosition:   widget.AnchorLayoutPositionCenter,
			}),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(dialogColor)),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionVertical),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 12, Bottom: 12, Left: 12, Right: 12}),
			),
		),
	)

	edit := func(err error) {
		if err != nil {
			g.setStatus("%v", err)
		}
		g.dirty = true
	}

	title := fmt.Sprintf("Wave %d (row %d, column %d)", s.Row()*g.doc.Columns()+s.Col(), s.Row(), s.Col())
	dialog.AddChild(widget.NewLabel(widget.LabelOpts.Text(title, &g.fontFace, darkLabel)))

	modeLabel := "Boss: Off"
	if s.IsMultiple() {
		modeLabel = "Boss: On"
	}
	dialog.AddChild(g.newButton(theme, modeLabel, 100, func() { edit(s.SetMultiple(!s.IsMultiple())) }))

	// elements
	dialog.AddChild(widget.NewLabel(widget.LabelOpts.Text("Element", &g.fontFace, darkLabel)))
	elementRow := g.newRow(4)
	chosen := s.Elements()
	for _, e := range s.ElementChoices() {
		label := string(e)
		switch {
		case s.IsMultiple() && slices.Contains(chosen, e):
			label = fmt.Sprintf("%d:%s", slices.Index(chosen, e)+1, e)
		case !s.IsMultiple() && s.Element() == e:
			label = "[" + label + "]"
		}
		bg := g.doc.Catalog().ElementColor(e)
		elementRow.AddChild(widget.NewButton(
			widget.ButtonOpts.Image(g.cellButtonImage(e)),
			widget.ButtonOpts.Text(label, &g.fontFace, buttonTextColor(bg)),
			widget.ButtonOpts.WidgetOpts(widget.WidgetOpts.MinSize(70, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if s.IsMultiple() {
					edit(s.ToggleElement(e))
				} else {
					edit(s.PickElement(e))
				}
			}),
		))
	}
	dialog.AddChild(elementRow)

	// enemy types for the current mode
	dialog.AddChild(widget.NewLabel(widget.LabelOpts.Text("Enemy", &g.fontFace, darkLabel)))
	enemyRow := g.newRow(4)
	for _, t := range s.EnemyChoices() {
		label := string(t)
		if s.HasType() && s.Enemy() == t {
			label = "[" + label + "]"
		}
		enemyRow.AddChild(g.newButton(theme, label, 80, func() { edit(s.PickEnemy(t)) }))
	}
	dialog.AddChild(enemyRow)

	if s.IsMultiple() {
		dialog.AddChild(g.stepperRow(theme, "Health", s.Health(), func(n int) { edit(s.SetHealth(n)) }))
	} else {
		dialog.AddChild(g.stepperRow(theme, "Count", s.Count(), func(n int) { edit(s.SetCount(n)) }))
	}

	dialog.AddChild(widget.NewLabel(widget.LabelOpts.Text(previewText(s), &g.fontFace, darkLabel)))
	if reason := s.Reason(); reason != "" {
		dialog.AddChild(widget.NewText(
			widget.TextOpts.Text(reason, &g.fontFace, color.RGBA{180, 0, 0, 255}),
		))
	}

	buttons := g.newRow(8)
	apply := g.newButton(theme, "Apply", 80, g.ApplySession)
	apply.GetWidget().Disabled = !s.CanApply()
	buttons.AddChild(apply)
	buttons.AddChild(g.newButton(theme, "Cancel", 80, func() {
		s.Cancel()
		g.dirty = true
	}))
	dialog.AddChild(buttons)

	overlay.AddChild(dialog)
	return overlay
}

// stepperRow is a "- value +" control; the session clamps the result.
func (g *Editor) stepperRow(theme *widget.Theme, label string, value int, set func(int)) *widget.Container {
	row := g.newRow(6)
	row.AddChild(widget.NewLabel(widget.LabelOpts.Text(label, &g.fontFace, darkLabel)))
	row.AddChild(g.newButton(theme, "-", 30, func() { set(value - 1) }))
	row.AddChild(widget.NewLabel(widget.LabelOpts.Text(fmt.Sprintf("%d", value), &g.fontFace, darkLabel)))
	row.AddChild(g.newButton(theme, "+", 30, func() { set(value + 1) }))
	return row
}

func previewText(s *session.Session) string {
	c := s.Preview()
	if c.IsMultiple {
		return fmt.Sprintf("Boss %s, health %d, elements %s", c.EnemyType, c.Health, joinElements(c.Elements))
	}
	enemy := c.EnemyType
	if !s.HasType() {
		enemy = wave.EnemyType("?")
	}
	return fmt.Sprintf("%d x %s, element %s", c.Count, enemy, c.First())
}
