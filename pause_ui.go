package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui"
	imageui "github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/milk9111/kinematic/ecs/component"
	"golang.org/x/image/font/basicfont"
)

// navThreshold is how far the navigate axis must lean to move the selection.
const navThreshold = 0.5

type menuItem struct {
	label  string
	button *widget.Button
	action func()
}

// pauseMenu is the overlay shown while the simulation is paused. It follows the
// mouse and the menu action map.
type pauseMenu struct {
	ui       *ebitenui.UI
	items    []*menuItem
	selected int

	lastNav    float64
	lastSelect bool
}

func newPauseMenu(g *Game) *pauseMenu {
	m := &pauseMenu{}

	panelImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x00, G: 0x00, B: 0x00, A: 200})
	btnImg := imageui.NewNineSliceColor(color.NRGBA{R: 0x33, G: 0x33, B: 0x33, A: 255})

	var face ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)
	white := color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	btnTextColor := &widget.ButtonTextColor{Idle: white}
	center := widget.WidgetOpts.LayoutData(widget.RowLayoutData{Position: widget.RowLayoutPositionCenter})

	title := widget.NewText(
		widget.TextOpts.Text("Paused", &face, white),
		widget.TextOpts.WidgetOpts(center),
	)

	panel := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(panelImg),
		widget.ContainerOpts.Layout(widget.NewRowLayout(
			widget.RowLayoutOpts.Direction(widget.DirectionVertical),
			widget.RowLayoutOpts.Spacing(10),
			widget.RowLayoutOpts.Padding(&widget.Insets{Top: 20, Bottom: 20, Left: 30, Right: 30}),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(baseWidth/4, baseHeight/3),
			widget.WidgetOpts.LayoutData(widget.AnchorLayoutData{HorizontalPosition: widget.AnchorLayoutPositionCenter, VerticalPosition: widget.AnchorLayoutPositionCenter}),
		),
	)
	panel.AddChild(title)

	m.items = []*menuItem{
		{label: "Resume", action: func() { g.scheduler.SetPaused(false) }},
		{label: "Restart level", action: func() { g.restart = true }},
		{label: "Quit", action: func() { g.quit = true }},
	}
	for i, item := range m.items {
		item.button = widget.NewButton(
			widget.ButtonOpts.Image(&widget.ButtonImage{Idle: btnImg, Pressed: btnImg}),
			widget.ButtonOpts.Text(item.label, &face, btnTextColor),
			widget.ButtonOpts.WidgetOpts(center, widget.WidgetOpts.MinSize(160, 28)),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				m.selected = i
				m.activate()
			}),
		)
		panel.AddChild(item.button)
	}

	root := widget.NewContainer(widget.ContainerOpts.Layout(widget.NewAnchorLayout()))
	root.AddChild(panel)
	m.ui = &ebitenui.UI{Container: root}
	m.refresh()
	return m
}

// Open resets the selection to the first item.
func (m *pauseMenu) Open() {
	m.selected = 0
	m.lastSelect = true
	m.refresh()
}

// Update moves the selection on navigate edges and activates it when select is
// first pressed.
func (m *pauseMenu) Update(in *component.Input) {
	nav := in.Navigate.Y
	switch {
	case nav > navThreshold && m.lastNav <= navThreshold:
		m.move(-1)
	case nav < -navThreshold && m.lastNav >= -navThreshold:
		m.move(1)
	}
	m.lastNav = nav

	if in.Select && !m.lastSelect {
		m.activate()
	}
	m.lastSelect = in.Select
	m.ui.Update()
}

func (m *pauseMenu) Draw(screen *ebiten.Image) {
	m.ui.Draw(screen)
}

func (m *pauseMenu) move(step int) {
	m.selected = (m.selected + step + len(m.items)) % len(m.items)
	m.refresh()
}

func (m *pauseMenu) activate() {
	if m.selected >= 0 && m.selected < len(m.items) {
		m.items[m.selected].action()
	}
}

func (m *pauseMenu) refresh() {
	for i, item := range m.items {
		label := "  " + item.label + "  "
		if i == m.selected {
			label = "> " + item.label + " <"
		}
		if text := item.button.Text(); text != nil {
			text.Label = label
		}
	}
}
