package timer

import (
	"context"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"hourglass/internal/core/model"
	"hourglass/internal/core/timekeeper"
	"hourglass/internal/ui/animation"
	"hourglass/internal/ui/palette"
	"hourglass/resources"
)

const (
	flipFrames = 8
	iconSide   = float32(160)
)

// Callbacks defines window action handlers.
type Callbacks struct {
	OnToggle      func()
	OnRestart     func()
	OnReset       func()
	OnPreferences func()
}

// Window manages the main timer UI.
type Window struct {
	window       fyne.Window
	callbacks    Callbacks
	theme        model.Theme
	image        *canvas.Image
	timerLabel   *canvas.Text
	modeLabel    *canvas.Text
	cadenceDots  []*canvas.Circle
	progress     *widget.ProgressBar
	toggleButton *widget.Button
	background   *canvas.Rectangle
	engine       *animation.Engine
	cancelCtx    context.CancelFunc
	pulseKey     string
	flipping     bool
	snapshot     timekeeper.Snapshot
}

// New creates the timer window. It is not shown until Show is called.
func New(app fyne.App, themeName model.Theme, callbacks Callbacks) *Window {
	window := app.NewWindow("Hourglass")
	if app.Icon() != nil {
		window.SetIcon(app.Icon())
	}

	colors := palette.For(themeName)
	background := canvas.NewRectangle(palette.RGBA(colors.Background))

	image := canvas.NewImageFromResource(resources.AppIcon())
	image.FillMode = canvas.ImageFillContain
	image.SetMinSize(fyne.NewSize(iconSide, iconSide))

	timerLabel := canvas.NewText("--:--", palette.RGBA(colors.Foreground))
	timerLabel.Alignment = fyne.TextAlignCenter
	timerLabel.TextStyle = fyne.TextStyle{Bold: true, Monospace: true}
	timerLabel.TextSize = 48

	modeLabel := canvas.NewText("", palette.RGBA(colors.Subtle))
	modeLabel.Alignment = fyne.TextAlignCenter
	modeLabel.TextSize = 18

	dots := make([]*canvas.Circle, model.LongBreakEvery)
	dotObjects := make([]fyne.CanvasObject, 0, len(dots))
	for i := range dots {
		dots[i] = canvas.NewCircle(color.Transparent)
		dots[i].StrokeWidth = 1.5
		dotObjects = append(dotObjects, container.NewGridWrap(fyne.NewSize(10, 10), dots[i]))
	}
	cadence := container.NewCenter(container.NewHBox(dotObjects...))

	progress := widget.NewProgressBar()
	progress.TextFormatter = func() string { return "" }

	timerWindow := &Window{
		window:      window,
		callbacks:   callbacks,
		theme:       themeName,
		image:       image,
		timerLabel:  timerLabel,
		modeLabel:   modeLabel,
		cadenceDots: dots,
		progress:    progress,
		background:  background,
	}

	timerWindow.toggleButton = widget.NewButtonWithIcon("Start", theme.MediaPlayIcon(), func() {
		if timerWindow.callbacks.OnToggle != nil {
			timerWindow.callbacks.OnToggle()
		}
	})
	timerWindow.toggleButton.Importance = widget.HighImportance
	restartButton := widget.NewButtonWithIcon("Restart", theme.MediaReplayIcon(), func() {
		if timerWindow.callbacks.OnRestart != nil {
			timerWindow.callbacks.OnRestart()
		}
	})
	resetButton := widget.NewButtonWithIcon("Reset", theme.DeleteIcon(), func() {
		if timerWindow.callbacks.OnReset != nil {
			timerWindow.callbacks.OnReset()
		}
	})
	settingsButton := widget.NewButtonWithIcon("", theme.SettingsIcon(), func() {
		if timerWindow.callbacks.OnPreferences != nil {
			timerWindow.callbacks.OnPreferences()
		}
	})
	buttons := container.NewHBox(timerWindow.toggleButton, restartButton, resetButton, settingsButton)

	panel := container.New(&panelLayout{}, image, timerLabel, modeLabel, cadence, progress, container.NewCenter(buttons))
	window.SetContent(container.NewStack(background, panel))
	window.Resize(fyne.NewSize(360, 480))

	timerWindow.engine = animation.New(animation.DefaultConfig(), timerWindow.SetSprite)
	timerWindow.engine.SetOnDone(func() {
		fyne.Do(func() {
			timerWindow.flipping = false
			timerWindow.renderUnsafe(timerWindow.snapshot)
		})
	})

	return timerWindow
}

// Window returns the underlying fyne window.
func (timerWindow *Window) Window() fyne.Window {
	return timerWindow.window
}

// Show displays the window and brings it to the front.
func (timerWindow *Window) Show() {
	timerWindow.window.Show()
	timerWindow.window.RequestFocus()
}

// Hide hides the window and stops animations.
func (timerWindow *Window) Hide() {
	timerWindow.stopEngine()
	timerWindow.window.Hide()
}

// Update renders snapshot from any goroutine.
func (timerWindow *Window) Update(snapshot timekeeper.Snapshot) {
	fyne.Do(func() {
		timerWindow.renderUnsafe(snapshot)
	})
}

// PlayCompletion runs the flip animation into the interval that snapshot describes.
func (timerWindow *Window) PlayCompletion(snapshot timekeeper.Snapshot) {
	fyne.Do(func() {
		timerWindow.playCompletionUnsafe(snapshot)
	})
}

// SetTheme switches window colors.
func (timerWindow *Window) SetTheme(themeName model.Theme) {
	fyne.Do(func() {
		timerWindow.theme = themeName
		timerWindow.renderUnsafe(timerWindow.snapshot)
	})
}

// SetSprite updates the hourglass image.
func (timerWindow *Window) SetSprite(resource fyne.Resource) {
	fyne.Do(func() {
		timerWindow.setSpriteUnsafe(resource)
	})
}

func (timerWindow *Window) setSpriteUnsafe(resource fyne.Resource) {
	timerWindow.image.Resource = resource
	timerWindow.image.Refresh()
}

func (timerWindow *Window) renderUnsafe(snapshot timekeeper.Snapshot) {
	timerWindow.snapshot = snapshot
	colors := palette.For(timerWindow.theme)
	accent := palette.RGBA(palette.Accent(snapshot.Mode, snapshot.LongBreak, snapshot.Urgency))

	timerWindow.window.SetTitle(snapshot.Title())

	timerWindow.background.FillColor = palette.RGBA(colors.Background)
	timerWindow.background.Refresh()

	timerWindow.timerLabel.Text = model.FormatClock(snapshot.Remaining)
	timerWindow.timerLabel.Color = accent
	timerWindow.timerLabel.Refresh()

	timerWindow.modeLabel.Text = snapshot.Label()
	timerWindow.modeLabel.Color = palette.RGBA(colors.Subtle)
	timerWindow.modeLabel.Refresh()

	filled := cadenceFilled(snapshot)
	for i, dot := range timerWindow.cadenceDots {
		dot.StrokeColor = palette.RGBA(colors.Subtle)
		dot.FillColor = color.Transparent
		if i < filled {
			dot.FillColor = palette.RGBA(palette.Accent(model.ModeWork, false, 0))
		}
		dot.Refresh()
	}

	timerWindow.progress.SetValue(1 - snapshot.Fraction)

	if snapshot.Running {
		timerWindow.toggleButton.SetText("Pause")
		timerWindow.toggleButton.SetIcon(theme.MediaPauseIcon())
	} else {
		timerWindow.toggleButton.SetText("Start")
		timerWindow.toggleButton.SetIcon(theme.MediaPlayIcon())
	}

	timerWindow.renderSpriteUnsafe(snapshot)
}

func (timerWindow *Window) renderSpriteUnsafe(snapshot timekeeper.Snapshot) {
	if timerWindow.flipping {
		return
	}

	state := iconState(snapshot)
	if snapshot.Running {
		if timerWindow.pulseKey != "" {
			timerWindow.stopEngine()
		}
		timerWindow.setSpriteUnsafe(resources.MustHourglass(state))
		return
	}

	bright := resources.MustHourglass(state)
	state.Dim = true
	dim := resources.MustHourglass(state)
	if timerWindow.pulseKey == bright.Name() {
		return
	}

	timerWindow.stopEngine()
	timerWindow.pulseKey = bright.Name()
	timerWindow.setSpriteUnsafe(bright)
	ctx, cancel := context.WithCancel(context.Background())
	timerWindow.cancelCtx = cancel
	timerWindow.engine.StartPulse(ctx, animation.PulseSpec{Bright: bright, Dim: dim})
}

func (timerWindow *Window) playCompletionUnsafe(snapshot timekeeper.Snapshot) {
	timerWindow.stopEngine()
	timerWindow.flipping = true
	timerWindow.snapshot = snapshot

	state := iconState(snapshot)
	frames := make([]fyne.Resource, 0, flipFrames+1)
	for i := 0; i <= flipFrames; i++ {
		state.Fraction = float64(i) / flipFrames
		frames = append(frames, resources.MustHourglass(state))
	}

	ctx, cancel := context.WithCancel(context.Background())
	timerWindow.cancelCtx = cancel
	timerWindow.engine.StartFlip(ctx, animation.FlipSpec{
		Frames: frames,
		Final:  resources.MustHourglass(iconState(snapshot)),
	})
}

func (timerWindow *Window) stopEngine() {
	if timerWindow.cancelCtx != nil {
		timerWindow.cancelCtx()
		timerWindow.cancelCtx = nil
	}
	timerWindow.engine.Stop()
	timerWindow.pulseKey = ""
	timerWindow.flipping = false
}

func iconState(snapshot timekeeper.Snapshot) resources.IconState {
	return resources.IconState{
		Mode:      snapshot.Mode,
		LongBreak: snapshot.LongBreak,
		Fraction:  snapshot.Fraction,
		Urgency:   snapshot.Urgency,
	}
}

// cadenceFilled returns how many dots of the current long-break cycle are done.
func cadenceFilled(snapshot timekeeper.Snapshot) int {
	if snapshot.LongBreak {
		return model.LongBreakEvery
	}
	return snapshot.WorkCount % model.LongBreakEvery
}

type panelLayout struct{}

func (layout *panelLayout) Layout(objects []fyne.CanvasObject, size fyne.Size) {
	pad := theme.Padding() * 2
	y := pad
	width := size.Width - pad*2
	if width < 0 {
		width = 0
	}

	for i, object := range objects {
		minSize := object.MinSize()
		height := minSize.Height
		if i == 0 {
			// The hourglass takes whatever height the other rows leave.
			height = size.Height - pad*2 - layout.rowsHeight(objects[1:]) - theme.Padding()*float32(len(objects)-1)
			if height < minSize.Height {
				height = minSize.Height
			}
		}
		object.Move(fyne.NewPos(pad, y))
		object.Resize(fyne.NewSize(width, height))
		y += height + theme.Padding()
	}
}

func (layout *panelLayout) MinSize(objects []fyne.CanvasObject) fyne.Size {
	width := float32(0)
	for _, object := range objects {
		if objectWidth := object.MinSize().Width; objectWidth > width {
			width = objectWidth
		}
	}
	height := layout.rowsHeight(objects) + theme.Padding()*float32(len(objects)-1)
	pad := theme.Padding() * 2
	return fyne.NewSize(width+pad*2, height+pad*2)
}

func (layout *panelLayout) rowsHeight(objects []fyne.CanvasObject) float32 {
	height := float32(0)
	for _, object := range objects {
		height += object.MinSize().Height
	}
	return height
}
