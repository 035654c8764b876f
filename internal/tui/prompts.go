package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ErrInteractiveDisabled is returned when interactive prompts are disabled via STASH_AWAY_NO_INTERACTIVE
var ErrInteractiveDisabled = fmt.Errorf("interactive prompts are disabled (STASH_AWAY_NO_INTERACTIVE is set)")

// checkInteractiveAllowed returns an error if interactive mode is disabled for testing
func checkInteractiveAllowed() error {
	if os.Getenv("STASH_AWAY_NO_INTERACTIVE") != "" {
		return ErrInteractiveDisabled
	}
	return nil
}

// confirmModel is a simple yes/no confirmation prompt model
type confirmModel struct {
	prompt string
	choice bool
	done   bool
	err    error
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = fmt.Errorf("canceled")
			m.done = true
			return m, tea.Quit
		case tea.KeyRunes:
			switch strings.ToLower(string(msg.Runes)) {
			case "y", "yes":
				m.choice = true
				m.done = true
				return m, tea.Quit
			case "n", "no":
				m.choice = false
				m.done = true
				return m, tea.Quit
			}
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	styleObj := lipgloss.NewStyle().Margin(1, 0)
	yesNo := "[y/N]"
	if m.choice {
		yesNo = "[Y/n]"
	}
	return styleObj.Render(fmt.Sprintf("%s %s\n\n(Press y/yes or n/no, Enter to confirm, Ctrl+C to cancel)", m.prompt, yesNo))
}

// PromptConfirm prompts the user for yes/no confirmation
func PromptConfirm(prompt string, defaultValue bool) (bool, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return false, err
	}

	m := confirmModel{
		prompt: prompt,
		choice: defaultValue,
	}

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return false, err
	}

	if finalModel, ok := model.(confirmModel); ok {
		if finalModel.err != nil {
			return false, finalModel.err
		}
		return finalModel.choice, nil
	}

	return false, fmt.Errorf("unexpected model type")
}

// textInputModel is a simple text input prompt model
type textInputModel struct {
	textInput textinput.Model
	prompt    string
	done      bool
	err       error
}

func (m textInputModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m textInputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		case tea.KeyCtrlC, tea.KeyEsc:
			m.err = fmt.Errorf("canceled")
			m.done = true
			return m, tea.Quit
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m textInputModel) View() string {
	if m.done {
		return ""
	}
	styleObj := lipgloss.NewStyle().Margin(1, 0)
	return styleObj.Render(fmt.Sprintf("%s\n%s\n\n(Press Enter to submit, Ctrl+C to cancel)", m.prompt, m.textInput.View()))
}

// PromptTextInput prompts the user for a line of text input
func PromptTextInput(prompt, defaultValue string) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	ti := textinput.New()
	ti.Placeholder = ""
	ti.SetValue(defaultValue)
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 80

	m := textInputModel{
		textInput: ti,
		prompt:    prompt,
	}

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	if finalModel, ok := model.(textInputModel); ok {
		if finalModel.err != nil {
			return "", finalModel.err
		}
		return finalModel.textInput.Value(), nil
	}

	return "", fmt.Errorf("unexpected model type")
}

// SelectOption represents an option in a selection prompt
type SelectOption struct {
	Label string // What to show
	Value string // Value to return
}

// SelectModel is a selection prompt model with arrow key navigation
type SelectModel struct {
	Options  []SelectOption
	Cursor   int
	Selected string
	Done     bool
	Err      error
	Title    string
}

// Init initializes the bubbletea model
func (m SelectModel) Init() tea.Cmd {
	return nil
}

// Update handles message updates for the bubbletea model
func (m SelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyEnter:
			if len(m.Options) > 0 && m.Cursor >= 0 && m.Cursor < len(m.Options) {
				m.Selected = m.Options[m.Cursor].Value
				m.Done = true
				return m, tea.Quit
			}
		case tea.KeyCtrlC, tea.KeyEsc:
			m.Err = fmt.Errorf("canceled")
			m.Done = true
			return m, tea.Quit
		case tea.KeyUp, tea.KeyShiftTab:
			if m.Cursor > 0 {
				m.Cursor--
			} else {
				m.Cursor = len(m.Options) - 1
			}
			return m, nil
		case tea.KeyDown, tea.KeyTab:
			if m.Cursor < len(m.Options)-1 {
				m.Cursor++
			} else {
				m.Cursor = 0
			}
			return m, nil
		}
	}
	return m, nil
}

// View renders the TUI
func (m SelectModel) View() string {
	if m.Done {
		return ""
	}

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render(m.Title))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		if i == m.Cursor {
			b.WriteString(fmt.Sprintf("  → %s\n", lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Render(opt.Label)))
		} else {
			b.WriteString(fmt.Sprintf("    %s\n", opt.Label))
		}
	}

	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Render("\n(↑/↓ to select, Enter to confirm, Ctrl+C to cancel)"))

	styleObj := lipgloss.NewStyle().Margin(1, 0)
	return styleObj.Render(b.String())
}

// PromptSelect prompts the user to select from a list of options
func PromptSelect(title string, options []SelectOption, defaultIndex int) (string, error) {
	if err := checkInteractiveAllowed(); err != nil {
		return "", err
	}

	if len(options) == 0 {
		return "", fmt.Errorf("no options provided")
	}

	cursor := defaultIndex
	if cursor < 0 || cursor >= len(options) {
		cursor = 0
	}

	m := SelectModel{
		Options: options,
		Cursor:  cursor,
		Title:   title,
	}

	p := tea.NewProgram(m, tea.WithInput(os.Stdin), tea.WithOutput(os.Stdout))
	model, err := p.Run()
	if err != nil {
		return "", err
	}

	if finalModel, ok := model.(SelectModel); ok {
		if finalModel.Err != nil {
			return "", finalModel.Err
		}
		return finalModel.Selected, nil
	}

	return "", fmt.Errorf("unexpected model type")
}
