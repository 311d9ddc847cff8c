package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"leafglide/internal/audio"
	"leafglide/internal/config"
	"leafglide/internal/core"
	"leafglide/internal/game"
	"leafglide/internal/storage"
)

// Model is the Bubble Tea model wrapping the frame loop. The loop advances
// the simulation on its own goroutine; the model only renders snapshots and
// forwards player input.
type Model struct {
	loop      *game.Loop
	screen    *core.Screen
	store     *storage.Store
	player    *audio.Player
	config    core.RuntimeConfig
	keyMapper *KeyMapper
	username  string

	nameInput    textinput.Model
	enteringName bool
	scoreSaved   bool
	lastScore    int

	quitting bool
}

// NewModel builds the engine, the frame loop, and the surrounding UI state.
// The store and audio player may be nil; scores and cues are then skipped.
func NewModel(cfg config.GameConfig, rt core.RuntimeConfig, store *storage.Store, player *audio.Player, logger *log.Logger, username string) Model {
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}

	// Hooks run on the loop goroutine; cue playback is fire-and-forget and
	// never calls back into the loop.
	hooks := game.Hooks{}
	if player != nil {
		hooks.OnScore = func(int) { player.Score() }
		hooks.OnLevelUp = func(int) { player.LevelUp() }
		hooks.OnPowerUp = func(game.PowerKind) { player.PowerUp() }
		hooks.OnGameOver = func(int) { player.GameOver() }
	}

	eng := game.NewEngine(cfg, rt.Seed, hooks)
	loop := game.NewLoop(eng, rt.TickRate, logger)

	nameInput := textinput.New()
	nameInput.Placeholder = "your name"
	nameInput.CharLimit = 24
	nameInput.Width = 26

	return Model{
		loop:      loop,
		screen:    core.NewScreen(rt.ScreenW, gameHeight(rt.ScreenH)),
		store:     store,
		player:    player,
		config:    rt,
		keyMapper: NewKeyMapper(),
		username:  username,
		nameInput: nameInput,
	}
}

// gameHeight reserves the bottom row for the status bar.
func gameHeight(screenH int) int {
	return core.Max(screenH-1, 1)
}

// Init starts the frame loop and the redraw ticker.
func (m Model) Init() tea.Cmd {
	m.loop.Reset()
	m.loop.Start()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, gameHeight(msg.Height))
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.enteringName {
		return m.handleNameEntry(msg)
	}

	switch m.keyMapper.MapKey(msg) {
	case ActionQuit:
		m.quitting = true
		m.loop.Stop()
		return m, tea.Quit

	case ActionFlap:
		switch m.loop.Snapshot().Phase {
		case game.PhaseReady:
			m.loop.StartRun()
			m.scoreSaved = false
		case game.PhasePlaying:
			m.loop.Flap()
			if m.player != nil {
				m.player.Flap()
			}
		}

	case ActionRestart:
		snap := m.loop.Snapshot()
		if snap.Phase == game.PhaseEnded || m.loop.Faulted() {
			m.loop.Reset()
			if !m.loop.Running() {
				m.loop.Start()
			}
			m.scoreSaved = false
		}

	case ActionMute:
		if m.player != nil {
			m.player.Mute()
		}
	}

	return m, nil
}

// handleNameEntry routes keys to the score name prompt.
func (m Model) handleNameEntry(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.saveScore(m.nameInput.Value())
		m.enteringName = false
		m.nameInput.Blur()
		return m, nil
	case "esc", "ctrl+c":
		// Skip saving
		m.scoreSaved = true
		m.enteringName = false
		m.nameInput.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

// handleTick redraws and, on a fresh game over, opens the name prompt.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	snap := m.loop.Snapshot()

	if snap.Phase == game.PhaseEnded && !m.scoreSaved && !m.enteringName {
		m.lastScore = snap.Score
		if m.store != nil && snap.Score > 0 {
			m.enteringName = true
			m.nameInput.SetValue("")
			m.nameInput.Focus()
		} else {
			m.scoreSaved = true
		}
	}

	return m, tickCmd(m.config.TickRate)
}

// saveScore persists the finished run. Failures are best-effort.
func (m *Model) saveScore(name string) {
	m.scoreSaved = true
	if m.store == nil {
		return
	}
	//nolint:errcheck // Best-effort save, game continues regardless
	m.store.SaveScore(name, m.username, m.lastScore)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.loop.Render(m.screen)

	if m.enteringName {
		m.drawNamePrompt()
	}

	return m.screen.String() + "\n" + m.statusBar()
}

// drawNamePrompt overlays the score entry box on the game screen.
func (m Model) drawNamePrompt() {
	w := 36
	h := 5
	x := (m.screen.Width() - w) / 2
	y := (m.screen.Height() - h) / 2

	m.screen.FillRect(x, y, w, h, ' ')
	m.screen.DrawBox(x, y, w, h)
	m.screen.DrawText(x+2, y+1, fmt.Sprintf("Final score: %d", m.lastScore))
	m.screen.DrawText(x+2, y+2, "Name: "+m.nameInput.Value()+"█")
	m.screen.DrawText(x+2, y+3, "enter save · esc skip")
}

// statusBar renders the bottom help line.
func (m Model) statusBar() string {
	snap := m.loop.Snapshot()

	var text string
	switch {
	case m.loop.Faulted():
		text = "simulation halted · r restart · q quit"
	case m.enteringName:
		text = "enter your name and press enter"
	case snap.Phase == game.PhaseReady:
		text = "space flap · m mute · q quit"
	case snap.Phase == game.PhaseEnded:
		text = "r restart · q quit"
	default:
		text = fmt.Sprintf("score %d · level %d · space flap · q quit", snap.Score, snap.Level)
	}

	return statusBarStyle.Width(m.config.ScreenW).Render(text)
}

// Run starts the Bubble Tea program with the given model.
func Run(cfg config.GameConfig, rt core.RuntimeConfig, store *storage.Store, player *audio.Player, logger *log.Logger, username string) error {
	model := NewModel(cfg, rt, store, player, logger, username)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	model.loop.Stop()
	return err
}
