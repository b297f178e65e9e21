package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/pillbox/internal/config"
	"github.com/vovakirdan/pillbox/internal/core"
	"github.com/vovakirdan/pillbox/internal/games/virus"
	"github.com/vovakirdan/pillbox/internal/storage"
)

// menuEntry is one line of the main menu.
type menuEntry int

const (
	entryCampaign menuEntry = iota
	entryEndless
	entrySelectLevel
	entryDifficulty
	entryScores
	entryHistory
	entryQuit
)

var menuEntries = []menuEntry{
	entryCampaign,
	entryEndless,
	entrySelectLevel,
	entryDifficulty,
	entryScores,
	entryHistory,
	entryQuit,
}

// difficulties lists the presets the menu cycles through.
var difficulties = []config.DifficultyPreset{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
	config.DifficultyFixed,
}

var (
	menuTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	menuCursorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	menuDimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Selection is what the player picked in the menu.
type Selection struct {
	GameID     string
	Level      int // 0 = start from beginning, 1-10 = specific campaign level
	Difficulty config.DifficultyPreset
}

// MenuModel is the Bubble Tea model for the main menu.
type MenuModel struct {
	cursor        int
	levelCursor   int
	inLevelSelect bool
	difficulty    int
	width         int
	height        int
	store         *storage.Store
	config        core.RuntimeConfig
	keyMapper     *KeyMapper
	selected      *Selection
	quitting      bool
	scoreboard    bool
	history       bool
}

// NewMenuModel creates a new menu model.
func NewMenuModel(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) MenuModel {
	m := MenuModel{
		width:      cfg.ScreenW,
		height:     cfg.ScreenH,
		store:      store,
		config:     cfg,
		keyMapper:  NewKeyMapper(),
		difficulty: 1,
	}
	for i, d := range difficulties {
		if d == preset {
			m.difficulty = i
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		action := m.keyMapper.MapKeyToMenuAction(msg)
		if m.inLevelSelect {
			return m.handleLevelSelectKey(action)
		}
		return m.handleKey(action)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit, MenuActionBack:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(menuEntries)-1 {
			m.cursor++
		}

	case MenuActionLeft, MenuActionRight:
		if menuEntries[m.cursor] == entryDifficulty {
			m.cycleDifficulty(action == MenuActionRight)
		}

	case MenuActionScoreboard:
		m.scoreboard = true
		return m, tea.Quit

	case MenuActionSelect:
		switch menuEntries[m.cursor] {
		case entryCampaign:
			return m.choose("virus", 0)
		case entryEndless:
			return m.choose("virus_endless", 0)
		case entrySelectLevel:
			m.inLevelSelect = true
			m.levelCursor = 0
		case entryDifficulty:
			m.cycleDifficulty(true)
		case entryScores:
			m.scoreboard = true
			return m, tea.Quit
		case entryHistory:
			m.history = true
			return m, tea.Quit
		case entryQuit:
			m.quitting = true
			return m, tea.Quit
		}
	}

	return m, nil
}

func (m MenuModel) handleLevelSelectKey(action MenuAction) (tea.Model, tea.Cmd) {
	switch action {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.levelCursor > 0 {
			m.levelCursor--
		}
	case MenuActionDown:
		if m.levelCursor < virus.LevelCount()-1 {
			m.levelCursor++
		}
	case MenuActionSelect:
		return m.choose("virus", m.levelCursor+1)
	case MenuActionBack:
		m.inLevelSelect = false
	}

	return m, nil
}

func (m *MenuModel) cycleDifficulty(forward bool) {
	if forward {
		m.difficulty = (m.difficulty + 1) % len(difficulties)
	} else {
		m.difficulty = (m.difficulty + len(difficulties) - 1) % len(difficulties)
	}
}

func (m MenuModel) choose(gameID string, level int) (tea.Model, tea.Cmd) {
	m.selected = &Selection{
		GameID:     gameID,
		Level:      level,
		Difficulty: difficulties[m.difficulty],
	}
	return m, tea.Quit
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}
	if m.inLevelSelect {
		return m.viewLevelSelect()
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("P I L L B O X"), m.width))
	b.WriteString("\n\n")
	if high := m.highScore(); high > 0 {
		b.WriteString(centerText(menuDimStyle.Render(fmt.Sprintf("Best campaign score: %d", high)), m.width))
		b.WriteString("\n\n")
	}

	for i, entry := range menuEntries {
		line := "  " + m.entryLabel(entry)
		if i == m.cursor {
			line = menuCursorStyle.Render("> " + m.entryLabel(entry))
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Navigate  |  Left/Right: Difficulty  |  Enter: Select  |  Tab: Scores  |  Q: Quit"
	b.WriteString(centerText(menuDimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) entryLabel(e menuEntry) string {
	switch e {
	case entryCampaign:
		return fmt.Sprintf("Campaign (%d levels)", virus.LevelCount())
	case entryEndless:
		return "Endless Mode"
	case entrySelectLevel:
		return "Select Level..."
	case entryDifficulty:
		return fmt.Sprintf("Difficulty: < %s >", difficulties[m.difficulty])
	case entryScores:
		return "High Scores"
	case entryHistory:
		return "Round History"
	default:
		return "Quit"
	}
}

func (m MenuModel) viewLevelSelect() string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(menuTitleStyle.Render("SELECT LEVEL"), m.width))
	b.WriteString("\n\n")

	for i, lvl := range virus.Levels {
		line := fmt.Sprintf("%2d. %-14s %2d viruses", lvl.ID, lvl.Name, lvl.Contaminants)
		if i == m.levelCursor {
			line = menuCursorStyle.Render("> " + line)
		} else {
			line = "  " + line
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(menuDimStyle.Render("Enter: Select  |  Esc: Back  |  Q: Quit"), m.width))

	return b.String()
}

func (m MenuModel) highScore() int {
	if m.store == nil {
		return 0
	}
	high, err := m.store.HighScore("virus")
	if err != nil {
		return 0
	}
	return high
}

// Selected returns the selection, or nil if none was made.
func (m MenuModel) Selected() *Selection {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.scoreboard
}

// WantsHistory returns true if user requested the round history.
func (m MenuModel) WantsHistory() bool {
	return m.history
}

// Config returns the current runtime config (may have been updated by resize).
func (m MenuModel) Config() core.RuntimeConfig {
	return m.config
}

// centerText centers text within given width, measuring display cells.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	return strings.Repeat(" ", (width-w)/2) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	Selection       *Selection
	Config          core.RuntimeConfig
	WantsScoreboard bool
	WantsHistory    bool
	Quit            bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, cfg core.RuntimeConfig, preset config.DifficultyPreset) (MenuResult, error) {
	model := NewMenuModel(store, cfg, preset)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Config: cfg}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Config: cfg, Quit: true}, nil
	}

	result := MenuResult{
		Config:          m.Config(),
		Selection:       m.Selected(),
		WantsScoreboard: m.WantsScoreboard(),
		WantsHistory:    m.WantsHistory(),
	}
	if m.IsQuitting() || (result.Selection == nil && !result.WantsScoreboard && !result.WantsHistory) {
		result.Quit = true
	}
	return result, nil
}
