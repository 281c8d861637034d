// Package uploadview renders resumable upload progress as a terminal
// progress bar. It is used by the CLI when stdout is a terminal;
// non-interactive runs fall back to plain log lines.
package uploadview

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/gwork-cli/internal/core/domain"
)

var (
	nameStyle = lipgloss.NewStyle().Bold(true)
	doneStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	failStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// progressMsg carries one chunk-boundary update.
type progressMsg domain.UploadProgress

// doneMsg ends the program.
type doneMsg struct {
	fileID string
	err    error
}

// Model is the bubbletea model for one upload.
type Model struct {
	bar     progress.Model
	name    string
	percent float64
	bytes   string
	done    bool
	err     error
}

// newModel creates the view for one named upload.
func newModel(name string) Model {
	return Model{
		bar:  progress.New(progress.WithDefaultGradient()),
		name: name,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.bar.Width = msg.Width - 4
		return m, nil
	case progressMsg:
		p := domain.UploadProgress(msg)
		m.percent = p.Percent() / 100
		if p.Total >= 0 {
			m.bytes = fmt.Sprintf("%d/%d bytes", p.Uploaded, p.Total)
		} else {
			m.bytes = fmt.Sprintf("%d bytes", p.Uploaded)
		}
		return m, nil
	case doneMsg:
		m.done = true
		m.err = msg.err
		if msg.err == nil {
			m.percent = 1
		}
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}
	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	status := m.bytes
	if m.done {
		if m.err != nil {
			status = failStyle.Render("failed: " + m.err.Error())
		} else {
			status = doneStyle.Render("done")
		}
	}
	return fmt.Sprintf("%s\n%s %s\n",
		nameStyle.Render(m.name), m.bar.ViewAs(m.percent), status)
}

// Run displays upload progress while start performs the upload. start
// receives a ProgressFunc wired to the view and returns the new file
// ID. Run returns the file ID and the upload error.
func Run(ctx context.Context, name string, start func(progress domain.ProgressFunc) (string, error)) (string, error) {
	p := tea.NewProgram(newModel(name), tea.WithContext(ctx))

	var fileID string
	var uploadErr error
	go func() {
		fileID, uploadErr = start(func(u domain.UploadProgress) {
			p.Send(progressMsg(u))
		})
		p.Send(doneMsg{fileID: fileID, err: uploadErr})
	}()

	if _, err := p.Run(); err != nil {
		return "", err
	}
	return fileID, uploadErr
}
