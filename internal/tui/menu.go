// ABOUTME: Interactive bubbletea menu for running similarity searches.
// ABOUTME: Lets the user switch embedding/output files, search words, and view best scores.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/2389-research/wordsim/internal/report"
	"github.com/2389-research/wordsim/internal/session"
)

// Step represents the current menu screen.
type Step int

const (
	StepMenu Step = iota
	StepEmbeddingsPath
	StepOutputPath
	StepWords
	StepConfigEmbeddings
	StepConfigOutput
	StepWorking
	StepProgress
	StepResults
	StepBest
)

// progressTick is the interval between progress bar increments.
const progressTick = 10 * time.Millisecond

// Searcher is the search session the menu drives.
type Searcher interface {
	SetEmbeddingsPath(path string) error
	SetOutputPath(path string) error
	Search(ctx context.Context, input string) (*session.Batch, error)
	Persist(text string) error
	BestScores() (map[string]float64, error)
	Info() session.Info
}

// tableLoadedMsg carries the result of switching embedding files.
type tableLoadedMsg struct {
	err error
}

// searchDoneMsg carries a finished batch search and its write outcome.
type searchDoneMsg struct {
	batch    *session.Batch
	err      error
	writeErr error
}

// bestScoresMsg carries scores decoded from the output file.
type bestScoresMsg struct {
	scores map[string]float64
	err    error
}

type progressTickMsg struct{}

// cancelHolder shares a cancel function across bubbletea model copies.
// It MUST be a pointer field so value-receiver methods can store the cancel
// func and have it visible to every copy of the model.
type cancelHolder struct {
	cancel context.CancelFunc
}

// MenuModel is the bubbletea model for the interactive menu.
type MenuModel struct {
	step       Step
	searcher   Searcher
	input      textinput.Model
	spinner    spinner.Model
	progress   progress.Model
	percent    float64
	cancelCtx  *cancelHolder
	pendingEmb string
	working    string
	status     string
	statusErr  bool
	batch      *session.Batch
	writeErr   error
	best       []string
	quitting   bool
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	brandStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	optionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	promptStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("82"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

// menuOptions mirrors the numbered choices accepted on the menu screen.
var menuOptions = []string{
	"(1) Specify Embedding File",
	"(2) Specify an Output File",
	"(3) Enter a Word or Text",
	"(4) Configure Options",
	"(5) Highest similarity",
	"(q) Quit",
}

// NewMenuModel creates the menu model around a search session.
func NewMenuModel(searcher Searcher) MenuModel {
	in := textinput.New()
	in.Width = 60

	s := spinner.New()
	s.Spinner = spinner.Dot

	return MenuModel{
		step:      StepMenu,
		searcher:  searcher,
		input:     in,
		spinner:   s,
		progress:  progress.New(progress.WithDefaultGradient(), progress.WithWidth(50)),
		cancelCtx: &cancelHolder{},
	}
}

// Init implements tea.Model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			m.quitting = true
			if m.cancelCtx.cancel != nil {
				m.cancelCtx.cancel()
			}
			return m, tea.Quit
		}

		switch m.step {
		case StepMenu:
			return m.updateMenu(msg)
		case StepEmbeddingsPath, StepOutputPath, StepWords, StepConfigEmbeddings, StepConfigOutput:
			return m.updateInput(msg)
		case StepResults, StepBest:
			m.step = StepMenu
			return m, nil
		}

	case tableLoadedMsg:
		m.step = StepMenu
		if msg.err != nil {
			m.setError(fmt.Sprintf("Could not load embeddings: %v", msg.err))
		} else {
			info := m.searcher.Info()
			m.setStatus(fmt.Sprintf("Loaded %d words from %s", info.Entries, info.EmbeddingsPath))
		}
		return m, nil

	case searchDoneMsg:
		m.cancelCtx.cancel = nil
		if msg.err != nil {
			m.step = StepMenu
			m.setError(fmt.Sprintf("Search failed: %v", msg.err))
			return m, nil
		}
		m.batch = msg.batch
		m.writeErr = msg.writeErr
		m.step = StepProgress
		m.percent = 0
		return m, tickProgress()

	case progressTickMsg:
		if m.step != StepProgress {
			return m, nil
		}
		m.percent += 0.01
		if m.percent >= 1 {
			m.percent = 1
			m.step = StepResults
			return m, nil
		}
		return m, tickProgress()

	case bestScoresMsg:
		m.step = StepBest
		m.best = report.SummaryLines(msg.scores)
		m.status = ""
		if msg.err != nil {
			m.setError(fmt.Sprintf("Could not read output file: %v", msg.err))
		}
		return m, nil

	case spinner.TickMsg:
		if m.step == StepWorking {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m MenuModel) updateMenu(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEscape {
		m.quitting = true
		return m, tea.Quit
	}
	if msg.Type != tea.KeyRunes || len(msg.Runes) == 0 {
		return m, nil
	}

	m.status = ""
	switch msg.Runes[0] {
	case '1':
		return m.prompt(StepEmbeddingsPath, m.searcher.Info().EmbeddingsPath)
	case '2':
		return m.prompt(StepOutputPath, m.searcher.Info().OutputPath)
	case '3':
		return m.prompt(StepWords, "")
	case '4':
		return m.prompt(StepConfigEmbeddings, m.searcher.Info().EmbeddingsPath)
	case '5':
		m.step = StepWorking
		m.working = "Reading output file..."
		return m, tea.Batch(m.readBestScores(), m.spinner.Tick)
	case 'q':
		m.quitting = true
		return m, tea.Quit
	default:
		m.setError("Invalid choice. Please try again")
		return m, nil
	}
}

func (m MenuModel) prompt(step Step, value string) (tea.Model, tea.Cmd) {
	m.step = step
	m.input.Reset()
	m.input.SetValue(value)
	cmd := m.input.Focus()
	return m, tea.Batch(cmd, textinput.Blink)
}

func (m MenuModel) updateInput(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEscape:
		m.input.Blur()
		m.step = StepMenu
		return m, nil
	case tea.KeyEnter:
		return m.submit()
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m MenuModel) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}

	switch m.step {
	case StepEmbeddingsPath:
		m.input.Blur()
		m.step = StepWorking
		m.working = "Loading embeddings..."
		return m, tea.Batch(m.loadTable(value, ""), m.spinner.Tick)

	case StepOutputPath:
		m.input.Blur()
		m.step = StepMenu
		if err := m.searcher.SetOutputPath(value); err != nil {
			m.setError(fmt.Sprintf("Could not set output file: %v", err))
		} else {
			m.setStatus("Output file: " + m.searcher.Info().OutputPath)
		}
		return m, nil

	case StepWords:
		m.input.Blur()
		m.step = StepWorking
		m.working = "Searching..."
		return m, tea.Batch(m.startSearch(value), m.spinner.Tick)

	case StepConfigEmbeddings:
		m.pendingEmb = value
		return m.prompt(StepConfigOutput, m.searcher.Info().OutputPath)

	case StepConfigOutput:
		m.input.Blur()
		m.step = StepWorking
		m.working = "Applying configuration..."
		return m, tea.Batch(m.loadTable(m.pendingEmb, value), m.spinner.Tick)
	}
	return m, nil
}

func (m MenuModel) loadTable(embPath, outPath string) tea.Cmd {
	searcher := m.searcher
	return func() tea.Msg {
		if outPath != "" {
			if err := searcher.SetOutputPath(outPath); err != nil {
				return tableLoadedMsg{err: err}
			}
		}
		return tableLoadedMsg{err: searcher.SetEmbeddingsPath(embPath)}
	}
}

func (m MenuModel) startSearch(input string) tea.Cmd {
	ctx, cancel := context.WithCancel(context.Background())
	m.cancelCtx.cancel = cancel
	searcher := m.searcher
	return func() tea.Msg {
		defer cancel()
		batch, err := searcher.Search(ctx, input)
		if err != nil {
			return searchDoneMsg{err: err}
		}
		return searchDoneMsg{batch: batch, writeErr: searcher.Persist(batch.Text)}
	}
}

func (m MenuModel) readBestScores() tea.Cmd {
	searcher := m.searcher
	return func() tea.Msg {
		scores, err := searcher.BestScores()
		return bestScoresMsg{scores: scores, err: err}
	}
}

func tickProgress() tea.Cmd {
	return tea.Tick(progressTick, func(time.Time) tea.Msg {
		return progressTickMsg{}
	})
}

func (m *MenuModel) setStatus(s string) {
	m.status = s
	m.statusErr = false
}

func (m *MenuModel) setError(s string) {
	m.status = s
	m.statusErr = true
}

// View implements tea.Model.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(brandStyle.Render("   WORDSIM"))
	b.WriteString(titleStyle.Render(" - Similarity Search with Word Embeddings"))
	b.WriteString("\n\n")

	switch m.step {
	case StepMenu:
		info := m.searcher.Info()
		b.WriteString(promptStyle.Render(fmt.Sprintf("  Embeddings: %s (%d words)", info.EmbeddingsPath, info.Entries)))
		b.WriteString("\n")
		b.WriteString(promptStyle.Render(fmt.Sprintf("  Output:     %s", info.OutputPath)))
		b.WriteString("\n\n")
		for _, opt := range menuOptions {
			b.WriteString(optionStyle.Render(opt))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("Select option [1-5]>"))
		b.WriteString("\n")

	case StepEmbeddingsPath:
		m.writePrompt(&b, "Specify the path of the embeddings file:")
	case StepOutputPath:
		m.writePrompt(&b, "Specify an output file:")
	case StepWords:
		m.writePrompt(&b, "Enter words you would like to find in the map (separated by spaces):")
	case StepConfigEmbeddings:
		b.WriteString(titleStyle.Render("Configure options"))
		b.WriteString("\n")
		m.writePrompt(&b, "Enter the path of the embeddings file:")
	case StepConfigOutput:
		b.WriteString(titleStyle.Render("Configure options"))
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("  Embeddings: %s\n", m.pendingEmb))
		m.writePrompt(&b, "Enter the path of the output file:")

	case StepWorking:
		b.WriteString(m.spinner.View())
		b.WriteString(" " + m.working)
		b.WriteString("\n")

	case StepProgress:
		b.WriteString(m.progress.ViewAs(m.percent))
		b.WriteString("\n")

	case StepResults:
		if m.batch != nil {
			b.WriteString("Results for all entered words:\n")
			b.WriteString(m.batch.Text)
			b.WriteString("\n")
			b.WriteString(promptStyle.Render(fmt.Sprintf("Running time: %s", m.batch.Elapsed)))
			b.WriteString("\n")
		}
		if m.writeErr != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("✗ %v", m.writeErr)))
		} else {
			b.WriteString(successStyle.Render("✓ Results have been written to the output file: " + m.searcher.Info().OutputPath))
		}
		b.WriteString("\n\n")
		b.WriteString(promptStyle.Render("(press any key to return to the menu)"))
		b.WriteString("\n")

	case StepBest:
		b.WriteString(titleStyle.Render("Highest Similarity"))
		b.WriteString("\n")
		if len(m.best) == 0 {
			b.WriteString(report.NoScoresMessage)
			b.WriteString("\n")
		}
		for _, line := range m.best {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(promptStyle.Render("(press any key to return to the menu)"))
		b.WriteString("\n")
	}

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString(errorStyle.Render(m.status))
		} else {
			b.WriteString(successStyle.Render(m.status))
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m MenuModel) writePrompt(b *strings.Builder, label string) {
	b.WriteString(label)
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(promptStyle.Render("(enter to confirm, esc to go back)"))
	b.WriteString("\n")
}

// Quitting returns true once the user has left the menu.
func (m MenuModel) Quitting() bool {
	return m.quitting
}
