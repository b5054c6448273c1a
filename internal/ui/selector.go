package ui

import (
	"errors"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// ErrUserAbort is returned when the user cancels a prompt (ESC / Ctrl+C).
var ErrUserAbort = errors.New("user abort")

// formTheme returns the huh theme for the active palette, with a wheel picker focus effect.
func formTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Remove the left border for a cleaner look
	t.Focused.Base = lipgloss.NewStyle().PaddingLeft(1)
	t.Focused.Card = t.Focused.Base

	// Title
	t.Focused.Title = lipgloss.NewStyle().Foreground(Primary).Bold(true)

	// Select: wheel picker effect — bright cursor, muted rest
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(Primary).SetString("› ")
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(Muted)
	t.Focused.Option = lipgloss.NewStyle().Foreground(Muted)

	// Scroll indicators
	t.Focused.NextIndicator = lipgloss.NewStyle().Foreground(Secondary).SetString("  ↓")
	t.Focused.PrevIndicator = lipgloss.NewStyle().Foreground(Secondary).SetString("  ↑")

	// Filter input
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(Primary)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(Muted)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(Secondary).SetString("/ ")
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(TextColor)

	// Buttons
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFF")).Background(Primary).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(Muted).Background(lipgloss.Color("#333")).Padding(0, 1)

	// Blurred = same but hidden border
	t.Blurred = t.Focused
	t.Blurred.Base = lipgloss.NewStyle().PaddingLeft(1)
	t.Blurred.Card = t.Blurred.Base
	t.Blurred.NextIndicator = lipgloss.NewStyle()
	t.Blurred.PrevIndicator = lipgloss.NewStyle()

	return t
}

func selectHeight(count int) int {
	h := count + 2
	if h > 15 {
		h = 15
	}
	if h < 5 {
		h = 5
	}
	return h
}

// SelectOption represents a display/value pair for select prompts.
type SelectOption struct {
	Display string
	Value   string
}

// Select displays an interactive selection prompt with type-to-filter.
func Select(label string, options []string) (string, error) {
	var selected string

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt, opt)
	}

	sel := huh.NewSelect[string]().
		Title(label).
		Options(huhOptions...).
		Value(&selected).
		Height(selectHeight(len(options))).
		Filtering(true)

	err := huh.NewForm(huh.NewGroup(sel)).WithTheme(formTheme()).Run()
	if err != nil {
		return "", ErrUserAbort
	}

	return selected, nil
}

// SelectWithOptions displays a selection prompt with separate display/value pairs.
func SelectWithOptions(label string, options []SelectOption) (string, error) {
	var selected string

	huhOptions := make([]huh.Option[string], len(options))
	for i, opt := range options {
		huhOptions[i] = huh.NewOption(opt.Display, opt.Value)
	}

	sel := huh.NewSelect[string]().
		Title(label).
		Options(huhOptions...).
		Value(&selected).
		Height(selectHeight(len(options))).
		Filtering(true)

	err := huh.NewForm(huh.NewGroup(sel)).WithTheme(formTheme()).Run()
	if err != nil {
		return "", ErrUserAbort
	}

	return selected, nil
}

// Confirm displays a yes/no prompt.
func Confirm(label string) (bool, error) {
	var confirmed bool

	c := huh.NewConfirm().
		Title(label).
		Value(&confirmed)

	err := huh.NewForm(huh.NewGroup(c)).WithTheme(formTheme()).Run()
	if err != nil {
		return false, ErrUserAbort
	}

	return confirmed, nil
}

// Input displays a text input prompt.
func Input(label, placeholder string) (string, error) {
	var value string

	i := huh.NewInput().
		Title(label).
		Placeholder(placeholder).
		Value(&value)

	err := huh.NewForm(huh.NewGroup(i)).WithTheme(formTheme()).Run()
	if err != nil {
		return "", ErrUserAbort
	}

	return value, nil
}


// Text displays a multi-line text prompt, used for pasted samples.
func Text(label, placeholder string) (string, error) {
	var value string

	t := huh.NewText().
		Title(label).
		Placeholder(placeholder).
		Lines(4).
		Value(&value)

	err := huh.NewForm(huh.NewGroup(t)).WithTheme(formTheme()).Run()
	if err != nil {
		return "", ErrUserAbort
	}

	return value, nil
}
