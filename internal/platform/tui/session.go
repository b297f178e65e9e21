package tui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/pillbox/internal/config"
	"github.com/vovakirdan/pillbox/internal/core"
	"github.com/vovakirdan/pillbox/internal/games/virus"
	"github.com/vovakirdan/pillbox/internal/logging"
	"github.com/vovakirdan/pillbox/internal/registry"
	"github.com/vovakirdan/pillbox/internal/storage"
)

// GameFor builds the game a menu selection describes. The base config is copied,
// so concurrent sessions never share difficulty or start level.
func GameFor(sel Selection, base config.VirusConfig) registry.Game {
	cfg := base
	if sel.Difficulty != "" {
		config.ApplyVirusPreset(&cfg, sel.Difficulty)
	}
	mode := virus.ModeCampaign
	if sel.GameID == "virus_endless" {
		mode = virus.ModeEndless
	}
	return virus.NewWithConfig(mode, cfg).WithStartLevel(sel.Level)
}

type sessionScreen int

const (
	screenMenu sessionScreen = iota
	screenGame
	screenBoard
)

// SessionModel manages the full session flow: menu -> game or scoreboard -> menu.
// It is the top-level model for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	config   core.RuntimeConfig
	username string
	gameCfg  config.VirusConfig
	preset   config.DifficultyPreset
	logger   *log.Logger
	screen   sessionScreen
	menu     MenuModel
	game     Model
	board    ScoreboardModel
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg core.RuntimeConfig, username string, gameCfg config.VirusConfig, logger *log.Logger) SessionModel {
	if logger == nil {
		logger = logging.Discard()
	}
	return SessionModel{
		store:    store,
		config:   cfg,
		username: username,
		gameCfg:  gameCfg,
		preset:   config.DifficultyNormal,
		logger:   logger,
		menu:     NewMenuModel(store, cfg, config.DifficultyNormal),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Handle window resize globally
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.config.ScreenW = wsm.Width
		m.config.ScreenH = wsm.Height
	}

	switch m.screen {
	case screenGame:
		return m.updateGame(msg)
	case screenBoard:
		return m.updateBoard(msg)
	default:
		return m.updateMenu(msg)
	}
}

// backToMenu returns to a fresh menu, keeping the chosen difficulty.
func (m SessionModel) backToMenu() (tea.Model, tea.Cmd) {
	m.screen = screenMenu
	m.menu = NewMenuModel(m.store, m.config, m.preset)
	return m, m.menu.Init()
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard(), m.menu.WantsHistory():
		view := ViewScores
		if m.menu.WantsHistory() {
			view = ViewHistory
		}
		m.board = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH, view)
		m.screen = screenBoard
		return m, m.board.Init()

	case m.menu.Selected() != nil:
		sel := *m.menu.Selected()
		m.preset = sel.Difficulty
		m.logger.Info("game selected", "game", sel.GameID, "level", sel.Level, "difficulty", sel.Difficulty)

		m.config.Seed = 0 // Fresh seed per game
		m.game = NewModel(GameFor(sel, m.gameCfg), m.store, m.config, Options{
			Player:   m.username,
			Logger:   m.logger,
			Embedded: true,
		})
		m.screen = screenGame
		return m, m.game.Init()
	}

	return m, cmd
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.game.BackToMenu() {
		return m.backToMenu()
	}

	return m, cmd
}

// updateBoard handles updates when the scoreboard is shown.
func (m SessionModel) updateBoard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newBoard, cmd := m.board.Update(msg)
	if board, ok := newBoard.(ScoreboardModel); ok {
		m.board = board
	}

	if m.board.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.board.IsGoingBack() {
		return m.backToMenu()
	}

	return m, cmd
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.screen {
	case screenGame:
		return m.game.View()
	case screenBoard:
		return m.board.View()
	default:
		return m.menu.View()
	}
}
