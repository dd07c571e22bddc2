package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// addTextInputSection adds a label and a text input to parent. onChanged sees
// every edit; onSubmit fires on Enter.
func addTextInputSection(parent *widget.Container, fontFace *text.Face, label, value string, width int, onChanged, onSubmit func(string)) *widget.TextInput {
	fieldLabel := widget.NewLabel(
		widget.LabelOpts.Text(label, fontFace, labelColor),
	)
	opts := []widget.TextInputOpt{
		widget.TextInputOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(width, 28),
		),
		widget.TextInputOpts.Image(&widget.TextInputImage{
			Idle:     solidNineSlice(color.RGBA{245, 245, 245, 255}),
			Disabled: solidNineSlice(color.RGBA{200, 200, 200, 255}),
		}),
		widget.TextInputOpts.Color(&widget.TextInputColor{
			Idle:     color.Black,
			Disabled: color.Gray{Y: 120},
			Caret:    color.Black,
		}),
		widget.TextInputOpts.Face(fontFace),
	}
	if onChanged != nil {
		opts = append(opts, widget.TextInputOpts.ChangedHandler(func(args *widget.TextInputChangedEventArgs) {
			onChanged(args.InputText)
		}))
	}
	if onSubmit != nil {
		opts = append(opts,
			widget.TextInputOpts.SubmitOnEnter(true),
			widget.TextInputOpts.SubmitHandler(func(args *widget.TextInputChangedEventArgs) {
				onSubmit(args.InputText)
			}),
		)
	}
	input := widget.NewTextInput(opts...)
	input.SetText(value)

	parent.AddChild(fieldLabel)
	parent.AddChild(input)
	return input
}

func (g *Editor) addFileNameSection(parent *widget.Container) *widget.TextInput {
	return addTextInputSection(parent, &g.fontFace, "File", g.fileName, 220,
		func(s string) { g.fileName = s },
		func(string) { g.Load() },
	)
}
