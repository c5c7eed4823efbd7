package main

import (
	"errors"
	"image"
	"image/color"

	"gioui.org/font/gofont"
	"gioui.org/layout"
	"gioui.org/text"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"gioui.org/x/explorer"
	"git.sr.ht/~gioverse/skel/stream"
	"github.com/charmbracelet/log"
	"golang.org/x/exp/shiny/materialdesign/icons"

	"git.sr.ht/~whereswaldon/barchart/backend"
	"git.sr.ht/~whereswaldon/barchart/config"
	"git.sr.ht/~whereswaldon/barchart/interaction"
)

type (
	C = layout.Context
	D = layout.Dimensions
)

var pauseIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPause)
	return icon
}()

var playIcon = func() *widget.Icon {
	icon, _ := widget.NewIcon(icons.AVPlayArrow)
	return icon
}()

// UI is responsible for holding the state of and drawing the top-level UI.
type UI struct {
	ws     backend.WindowState
	expl   *explorer.Explorer
	logger *log.Logger

	chart    *BarChart
	openBtn  widget.Clickable
	pauseBtn widget.Clickable

	th           *material.Theme
	statusStream *stream.Stream[backend.Status]
	status       backend.Status
}

func NewUI(ws backend.WindowState, expl *explorer.Explorer, cfg config.Config, logger *log.Logger) *UI {
	th := material.NewTheme()
	th.Shaper = text.NewShaper(text.WithCollection(gofont.Collection()), text.NoSystemFonts())
	ui := &UI{
		ws:           ws,
		th:           th,
		expl:         expl,
		logger:       logger,
		chart:        NewChart(cfg),
		statusStream: stream.New(ws.Controller, ws.Bundle.Datasource.Status),
	}
	ui.chart.OnSelectionChanged = func(sel interaction.Selection) {
		logger.Debug("selection changed", "index", sel.Index, "label", sel.Label, "value", sel.Value)
	}
	return ui
}

// Update the state of the UI from the backend and from user input.
func (ui *UI) Update(gtx C) {
	if status, isNew := ui.statusStream.ReadNew(gtx); isNew {
		if status.Revision != ui.status.Revision {
			ui.chart.SetData(status.Data)
		}
		ui.status = status
	}
	if ui.openBtn.Clicked(gtx) {
		// Choosing a file blocks until the user answers, and the window
		// must keep processing events meanwhile.
		go func() {
			err := ui.ws.Bundle.Datasource.LoadFromFile(ui.expl)
			if err != nil && !errors.Is(err, explorer.ErrUserDecline) {
				ui.logger.Error("failed opening dataset", "err", err)
			}
		}()
	}
	if ui.pauseBtn.Clicked(gtx) {
		ui.ws.Bundle.Datasource.SetPaused(!ui.status.Paused)
	}
}

func (ui *UI) layoutToolbar(gtx C) D {
	return layout.Flex{Alignment: layout.Middle}.Layout(gtx,
		layout.Rigid(material.Button(ui.th, &ui.openBtn, "Open Dataset").Layout),
		layout.Rigid(layout.Spacer{Width: 8}.Layout),
		layout.Rigid(func(gtx C) D {
			icon := pauseIcon
			if ui.status.Paused {
				icon = playIcon
			}
			return material.IconButton(ui.th, &ui.pauseBtn, icon, "Pause updates").Layout(gtx)
		}),
		layout.Rigid(layout.Spacer{Width: 8}.Layout),
		layout.Flexed(1, func(gtx C) D {
			desc := ui.status.Path
			if ui.status.Mode == backend.ModeStream {
				desc = "standard input"
			}
			if ui.status.Pending {
				desc += " (new data held)"
			}
			l := material.Body2(ui.th, desc)
			l.MaxLines = 1
			return l.Layout(gtx)
		}),
	)
}

func (ui *UI) layoutMainArea(gtx C) D {
	return layout.UniformInset(8).Layout(gtx, func(gtx C) D {
		return layout.Flex{
			Axis: layout.Vertical,
		}.Layout(gtx,
			layout.Rigid(ui.layoutToolbar),
			layout.Rigid(func(gtx C) D {
				if ui.status.Err == nil {
					return D{}
				}
				l := material.Body1(ui.th, ui.status.Err.Error())
				l.Color = color.NRGBA{R: 150, A: 255}
				return l.Layout(gtx)
			}),
			layout.Rigid(layout.Spacer{Height: 8}.Layout),
			layout.Rigid(func(gtx C) D {
				return layout.Center.Layout(gtx, func(gtx C) D {
					return ui.chart.Layout(gtx, ui.th)
				})
			}),
			layout.Rigid(layout.Spacer{Height: 8}.Layout),
			layout.Flexed(1, func(gtx C) D {
				return ui.chart.LayoutTable(gtx, ui.th)
			}),
		)
	})
}

func (ui *UI) layoutStartScreen(gtx C) D {
	l := material.Body1(ui.th, "No dataset loaded.")
	return layout.Flex{
		Axis:      layout.Vertical,
		Alignment: layout.Middle,
		Spacing:   layout.SpaceAround,
	}.Layout(gtx,
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return l.Layout(gtx)
		}),
		layout.Rigid(func(gtx C) D {
			gtx.Constraints.Min = image.Point{}
			return material.Button(ui.th, &ui.openBtn, "Open Dataset").Layout(gtx)
		}),
	)
}

// Layout the UI into the provided context.
func (ui *UI) Layout(gtx C) D {
	ui.Update(gtx)
	if ui.status.Mode != backend.ModeNone {
		return ui.layoutMainArea(gtx)
	}
	return ui.layoutStartScreen(gtx)
}
