package cli

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// TeaPrompter asks yes/no questions with a small Bubble Tea program
type TeaPrompter struct {
	in  io.Reader
	out io.Writer
}

// NewTeaPrompter creates a prompter reading keys from in
func NewTeaPrompter(in io.Reader, out io.Writer) *TeaPrompter {
	return &TeaPrompter{in: in, out: out}
}

// Confirm blocks until the user answers. Enter accepts the default (yes);
// ctrl+c and esc count as no.
func (p *TeaPrompter) Confirm(ctx context.Context, question string) (bool, error) {
	program := tea.NewProgram(
		newConfirmModel(question),
		tea.WithContext(ctx),
		tea.WithInput(p.in),
		tea.WithOutput(p.out),
	)

	final, err := program.Run()
	if err != nil {
		return false, fmt.Errorf("prompt failed: %w", err)
	}
	return final.(confirmModel).answer, nil
}

// confirmModel holds the state of one yes/no question
type confirmModel struct {
	question string
	answer   bool
	done     bool
}

func newConfirmModel(question string) confirmModel {
	return confirmModel{question: question}
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "y", "Y", "enter":
		m.answer = true
	case "n", "N", "ctrl+c", "esc":
		m.answer = false
	default:
		return m, nil
	}
	m.done = true
	return m, tea.Quit
}

func (m confirmModel) View() string {
	question := lipgloss.NewStyle().Bold(true).Render("? " + m.question)
	if m.done {
		answer := "No"
		if m.answer {
			answer = "Yes"
		}
		return fmt.Sprintf("%s %s\n", question, lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Render(answer))
	}

	hint := lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Render("(Y/n)")
	return fmt.Sprintf("%s %s ", question, hint)
}
