package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pillbox/internal/registry"
	"github.com/vovakirdan/pillbox/internal/storage"
)

const boardRows = 100 // rows loaded per view

// BoardView selects what the scoreboard lists.
type BoardView int

const (
	ViewScores BoardView = iota
	ViewHistory
)

func (v BoardView) heading() string {
	if v == ViewHistory {
		return "ROUND HISTORY"
	}
	return "HIGH SCORES"
}

// boardKeys are the scoreboard bindings; they double as the help bar.
type boardKeys struct {
	Scroll key.Binding
	Mode   key.Binding
	View   key.Binding
	Back   key.Binding
	Quit   key.Binding
}

func (k boardKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Scroll, k.Mode, k.View, k.Back, k.Quit}
}

func (k boardKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

func newBoardKeys() boardKeys {
	return boardKeys{
		Scroll: key.NewBinding(key.WithKeys("up", "down", "k", "j"), key.WithHelp("↑/↓", "scroll")),
		Mode:   key.NewBinding(key.WithKeys("left", "right", "h", "l"), key.WithHelp("←/→", "mode")),
		View:   key.NewBinding(key.WithKeys("v", "tab"), key.WithHelp("v/tab", "scores/history")),
		Back:   key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

var (
	boardTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	boardTabStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	boardActiveTab  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	boardFrameStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(0, 1)
	boardEmptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(2, 4)
	boardStatsStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// ScoreboardModel shows high scores or round history for one mode at a time.
type ScoreboardModel struct {
	games     []registry.GameInfo
	mode      int // index into games
	view      BoardView
	store     *storage.Store
	scores    []storage.ScoreEntry
	rounds    []storage.RoundRecord
	stats     *storage.GameStats
	loadErr   error
	table     table.Model
	help      help.Model
	keys      boardKeys
	width     int
	height    int
	quitting  bool
	goingBack bool
}

// NewScoreboardModel creates a scoreboard opened on the first mode.
func NewScoreboardModel(store *storage.Store, width, height int, view BoardView) ScoreboardModel {
	m := ScoreboardModel{
		games:  registry.List(),
		view:   view,
		store:  store,
		keys:   newBoardKeys(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.newTable()
	m.reload()
	return m
}

func (m *ScoreboardModel) columns() []table.Column {
	// Spare width goes to the player column, up to a point
	spare := func(used int) int { return max(0, min(m.width-used-8, 12)) }

	if m.view == ViewHistory {
		cols := []table.Column{
			{Title: "Lvl", Width: 4},
			{Title: "Result", Width: 7},
			{Title: "Viruses", Width: 8},
			{Title: "Pills", Width: 6},
			{Title: "Chain", Width: 6},
			{Title: "Score", Width: 8},
			{Title: "Player", Width: 10},
			{Title: "Date", Width: 13},
		}
		cols[6].Width += spare(78)
		return cols
	}

	cols := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Score", Width: 10},
		{Title: "Level", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Date", Width: 13},
	}
	cols[3].Width += spare(57)
	return cols
}

func (m *ScoreboardModel) newTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-12)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)
	return t
}

// currentGameID returns the selected mode, or "" when none is registered.
func (m *ScoreboardModel) currentGameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.mode].ID
}

// reload fetches rows and stats for the selected mode and view.
func (m *ScoreboardModel) reload() {
	m.scores, m.rounds, m.stats, m.loadErr = nil, nil, nil, nil

	if id := m.currentGameID(); m.store != nil && id != "" {
		if m.view == ViewHistory {
			m.rounds, m.loadErr = m.store.RecentRounds(id, boardRows)
		} else {
			m.scores, m.loadErr = m.store.TopScores(id, boardRows)
		}
		if m.loadErr == nil {
			m.stats, m.loadErr = m.store.GetGameStats(id)
		}
	}

	// Rows must be cleared before the column count changes
	m.table.SetRows(nil)
	m.table.SetColumns(m.columns())
	m.table.SetRows(m.rows())
	m.table.GotoTop()
}

func (m *ScoreboardModel) rows() []table.Row {
	if m.view == ViewHistory {
		rows := make([]table.Row, len(m.rounds))
		for i, r := range m.rounds {
			rows[i] = table.Row{
				strconv.Itoa(r.Level),
				r.Outcome,
				fmt.Sprintf("%d/%d", r.Cleared, r.Contaminants),
				strconv.Itoa(r.Pieces),
				fmt.Sprintf("x%d", r.LongestChain),
				strconv.Itoa(r.Score),
				r.Player,
				r.CreatedAt.Format("Jan 02 15:04"),
			}
		}
		return rows
	}

	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			strconv.Itoa(s.Score),
			strconv.Itoa(s.Level),
			s.Player,
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.View):
			m.view = 1 - m.view
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.Mode):
			if n := len(m.games); n > 0 {
				step := 1
				if s := msg.String(); s == "left" || s == "h" {
					step = n - 1
				}
				m.mode = (m.mode + step) % n
				m.reload()
			}
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.table = m.newTable()
		m.reload()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(boardTitleStyle.Render(m.view.heading()), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.renderTabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(boardFrameStyle.Render(m.renderBody()), m.width))
	b.WriteString("\n")
	if stats := m.renderStats(); stats != "" {
		b.WriteString(centerText(boardStatsStyle.Render(stats), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

func (m ScoreboardModel) renderTabs() string {
	tabs := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.mode {
			tabs[i] = boardActiveTab.Render(g.Title)
		} else {
			tabs[i] = boardTabStyle.Render(g.Title)
		}
	}
	return strings.Join(tabs, " ")
}

func (m ScoreboardModel) renderBody() string {
	switch {
	case m.store == nil:
		return boardEmptyStyle.Render("Scores database unavailable.")
	case m.loadErr != nil:
		return boardEmptyStyle.Render(fmt.Sprintf("Could not load data:\n%v", m.loadErr))
	case m.view == ViewHistory && len(m.rounds) == 0:
		return boardEmptyStyle.Render("No rounds played yet.")
	case m.view == ViewScores && len(m.scores) == 0:
		return boardEmptyStyle.Render("No scores recorded yet.\nClear a bottle to set a high score!")
	}
	return m.table.View()
}

func (m ScoreboardModel) renderStats() string {
	s := m.stats
	if s == nil || s.GamesCount+s.RoundsWon+s.RoundsLost == 0 {
		return ""
	}
	return fmt.Sprintf("Games %d  Best %d  Avg %.0f  Best level %d  Rounds %dW/%dL  Viruses %d  Longest chain x%d",
		s.GamesCount, s.HighScore, s.AvgScore, s.BestLevel, s.RoundsWon, s.RoundsLost, s.Cleared, s.LongestChain)
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program.
// It reports whether the player went back rather than quitting.
func RunScoreboard(store *storage.Store, width, height int, view BoardView) (goBack bool, err error) {
	p := tea.NewProgram(NewScoreboardModel(store, width, height, view), tea.WithAltScreen())

	final, err := p.Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
