package main

import (
	"fmt"
	"strconv"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/milk9111/waveconfigurator/wave"
)

func (g *Editor) newRow(spacing int) *widget.Container {
	return widget.NewContainer(
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(spacing),
			),
		),
	)
}

func (g *Editor) newButton(theme *widget.Theme, label string, minW int, onClick func()) *widget.Button {
	return widget.NewButton(
		widget.ButtonOpts.Image(theme.ButtonTheme.Image),
		widget.ButtonOpts.Text(label, &g.fontFace, theme.ButtonTheme.TextColor),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(minW, 28),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			onClick()
		}),
	)
}

// buildToolbar holds file actions and the script runner.
func (g *Editor) buildToolbar(theme *widget.Theme) *widget.Container {
	bar := g.newRow(8)
	g.addFileNameSection(bar)
	bar.AddChild(g.newButton(theme, "Save", 60, g.Save))
	bar.AddChild(g.newButton(theme, "Load", 60, g.Load))
	bar.AddChild(g.newButton(theme, "Sample", 70, g.LoadSample))
	bar.AddChild(g.newButton(theme, "Reset", 60, g.Reset))

	addTextInputSection(bar, &g.fontFace, "Script", g.scriptPath, 200,
		func(s string) { g.scriptPath = s },
		func(string) { g.RunScript() },
	)
	bar.AddChild(g.newButton(theme, "Run", 50, g.RunScript))
	return bar
}

// buildLevelSection holds level number, speed, wave count and the default
// enemy radio group.
func (g *Editor) buildLevelSection(theme *widget.Theme) *widget.Container {
	section := g.newRow(8)
	meta := g.doc.Meta()

	addTextInputSection(section, &g.fontFace, "Level", strconv.Itoa(meta.LevelNumber), 60, nil, g.SetLevelNumber)
	addTextInputSection(section, &g.fontFace, "Speed", strconv.FormatFloat(meta.LevelSpeed, 'g', -1, 64), 60, nil, g.SetLevelSpeed)

	section.AddChild(widget.NewLabel(widget.LabelOpts.Text("Waves", &g.fontFace, labelColor)))
	for _, step := range []int{-g.doc.Columns(), -1} {
		section.AddChild(g.newButton(theme, fmt.Sprintf("%+d", step), 40, func() { g.SetCount(g.doc.Count() + step) }))
	}
	addTextInputSection(section, &g.fontFace, "", strconv.Itoa(g.doc.Count()), 50, nil, func(s string) {
		n, err := strconv.Atoi(s)
		if err != nil {
			g.setStatus("Wave count must be an integer")
			return
		}
		g.SetCount(n)
	})
	for _, step := range []int{1, g.doc.Columns()} {
		section.AddChild(g.newButton(theme, fmt.Sprintf("%+d", step), 40, func() { g.SetCount(g.doc.Count() + step) }))
	}

	section.AddChild(widget.NewLabel(widget.LabelOpts.Text("Default enemy", &g.fontFace, labelColor)))
	section.AddChild(g.buildDefaultEnemyGroup(theme))
	return section
}

func (g *Editor) buildDefaultEnemyGroup(theme *widget.Theme) *widget.Container {
	row := g.newRow(4)
	normal := g.doc.Catalog().NormalTypes()

	var buttons []*widget.Button
	for _, t := range normal {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(string(t), &g.fontFace, theme.ButtonTheme.TextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(70, 28),
			),
		)
		buttons = append(buttons, btn)
		row.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(buttons))
	for _, b := range buttons {
		elements = append(elements, b)
	}
	group := widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			for idx, b := range buttons {
				if args.Active == b {
					g.SetDefaultEnemy(normal[idx])
					return
				}
			}
		}),
	)
	for idx, t := range normal {
		if t == g.doc.DefaultEnemy() {
			group.SetActive(buttons[idx])
		}
	}
	return row
}

func (g *Editor) cellButtonImage(e wave.ElementType) *widget.ButtonImage {
	if img, ok := g.cellImages[e]; ok {
		return img
	}
	img := tintedButtonImage(g.doc.Catalog().ElementColor(e))
	g.cellImages[e] = img
	return img
}
