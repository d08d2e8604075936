package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/daiimus/paracord/internal/adapters/remote/discord"
	"github.com/daiimus/paracord/internal/domain"
)

type validateDoneMsg struct {
	client   *discord.Client
	identity domain.Identity
	err      error
}

type validateSpinnerModel struct {
	spinner  spinner.Model
	label    string
	validate tea.Cmd
	result   validateDoneMsg
	done     bool
}

func newValidateSpinnerModel(label string, validate tea.Cmd) validateSpinnerModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("69"))),
	)

	return validateSpinnerModel{
		spinner:  s,
		label:    label,
		validate: validate,
	}
}

func (m validateSpinnerModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.validate)
}

func (m validateSpinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case validateDoneMsg:
		m.done = true
		m.result = msg
		return m, tea.Quit
	default:
		return m, nil
	}
}

func (m validateSpinnerModel) View() string {
	if m.done {
		return ""
	}

	return fmt.Sprintf("%s %s", m.spinner.View(), m.label)
}

func runValidateSpinner(ctx context.Context, output io.Writer, app *app, flagToken string) (*discord.Client, domain.Identity, error) {
	validateCmd := func() tea.Msg {
		client, identity, err := app.validate(ctx, flagToken)
		return validateDoneMsg{client: client, identity: identity, err: err}
	}

	p := tea.NewProgram(
		newValidateSpinnerModel("Validating token...", validateCmd),
		tea.WithInput(nil),
		tea.WithOutput(output),
		tea.WithContext(ctx),
	)

	finalModel, err := p.Run()
	if err != nil {
		return nil, domain.Identity{}, err
	}

	model, ok := finalModel.(validateSpinnerModel)
	if !ok {
		return nil, domain.Identity{}, fmt.Errorf("unexpected spinner model type %T", finalModel)
	}

	result := model.result
	return result.client, result.identity, result.err
}
