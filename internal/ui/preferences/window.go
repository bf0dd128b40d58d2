package preferences

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"hourglass/internal/core/model"
)

var themeOptions = []string{string(model.ThemeDark), string(model.ThemeLight)}

// Window handles the preferences UI.
type Window struct {
	window     fyne.Window
	settings   model.Settings
	onSave     func(model.Settings)
	workEntry  *widget.Entry
	breakEntry *widget.Entry
	longEntry  *widget.Entry
	themeRadio *widget.RadioGroup
	mutedCheck *widget.Check
	idleCheck  *widget.Check
	errorText  *canvas.Text
}

// New creates a preferences window.
func New(app fyne.App, settings model.Settings, onSave func(model.Settings)) *Window {
	window := app.NewWindow("Hourglass Settings")

	workEntry := widget.NewEntry()
	breakEntry := widget.NewEntry()
	longEntry := widget.NewEntry()
	themeRadio := widget.NewRadioGroup(themeOptions, nil)
	themeRadio.Horizontal = true
	mutedCheck := widget.NewCheck("Mute completion notifications", nil)
	idleCheck := widget.NewCheck("Pause focus when I'm away", nil)

	errorText := canvas.NewText("", theme.Color(theme.ColorNameError))
	errorText.TextSize = 12

	form := container.NewVBox(
		widget.NewLabelWithStyle("Durations", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		container.NewGridWithColumns(3, widget.NewLabel("Focus"), workEntry, widget.NewLabel("min")),
		container.NewGridWithColumns(3, widget.NewLabel("Break"), breakEntry, widget.NewLabel("min")),
		container.NewGridWithColumns(3, widget.NewLabel("Long break"), longEntry, widget.NewLabel("min")),
		widget.NewLabelWithStyle("Appearance", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		themeRadio,
		mutedCheck,
		idleCheck,
		errorText,
	)

	saveButton := widget.NewButton("Save", nil)
	saveButton.Importance = widget.HighImportance
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	content := container.NewBorder(nil, buttons, nil, nil, form)
	window.SetContent(content)
	window.Resize(fyne.NewSize(380, 360))

	prefs := &Window{
		window:     window,
		onSave:     onSave,
		workEntry:  workEntry,
		breakEntry: breakEntry,
		longEntry:  longEntry,
		themeRadio: themeRadio,
		mutedCheck: mutedCheck,
		idleCheck:  idleCheck,
		errorText:  errorText,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}
	window.SetCloseIntercept(func() {
		window.Hide()
	})

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings model.Settings) {
	prefs.settings = settings
	fields := FieldsFrom(settings)
	prefs.workEntry.SetText(fields.Work)
	prefs.breakEntry.SetText(fields.Break)
	prefs.longEntry.SetText(fields.LongBreak)
	prefs.themeRadio.SetSelected(string(fields.Theme))
	prefs.mutedCheck.SetChecked(fields.Muted)
	prefs.idleCheck.SetChecked(fields.PauseWhenIdle)
	prefs.setError("")
}

func (prefs *Window) fields() Fields {
	return Fields{
		Work:          prefs.workEntry.Text,
		Break:         prefs.breakEntry.Text,
		LongBreak:     prefs.longEntry.Text,
		Theme:         model.Theme(prefs.themeRadio.Selected),
		Muted:         prefs.mutedCheck.Checked,
		PauseWhenIdle: prefs.idleCheck.Checked,
	}
}

func (prefs *Window) handleSave() {
	settings, err := prefs.fields().Apply(prefs.settings)
	if err != nil {
		prefs.setError(err.Error())
		return
	}

	prefs.settings = settings
	prefs.setError("")
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}

func (prefs *Window) setError(message string) {
	prefs.errorText.Text = message
	if message == "" {
		prefs.errorText.Color = color.Transparent
	} else {
		prefs.errorText.Color = theme.Color(theme.ColorNameError)
	}
	prefs.errorText.Refresh()
}
