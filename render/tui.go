package render

import (
	"context"
	"errors"
	"time"

	"stoneage/game"

	tea "github.com/charmbracelet/bubbletea"
)

// Source yields the latest snapshot, false when there is none yet.
type Source interface {
	Snapshot() (game.Snapshot, bool)
}

type TickMsg time.Time

func tickCmd(every time.Duration) tea.Cmd {
	return tea.Tick(every, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// Viewer is a bubbletea model that polls a Source and redraws the board.
type Viewer struct {
	source   Source
	refresh  time.Duration
	snapshot game.Snapshot
	ok       bool
}

func NewViewer(source Source, refresh time.Duration) Viewer {
	if refresh <= 0 {
		refresh = 3 * time.Second
	}
	return Viewer{source: source, refresh: refresh}
}

func (m Viewer) poll() Viewer {
	if s, ok := m.source.Snapshot(); ok {
		m.snapshot, m.ok = s, true
	}
	return m
}

func (m Viewer) Init() tea.Cmd {
	return func() tea.Msg { return TickMsg(time.Now()) }
}

func (m Viewer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	case TickMsg:
		m = m.poll()
		return m, tickCmd(m.refresh)
	}
	return m, nil
}

func (m Viewer) View() string {
	s := "waiting for the game to start...\n"
	if m.ok {
		s = Full(m.snapshot) + "\n"
	}
	s += mutedStyle.Render("refreshing every "+m.refresh.String()+" - press q to quit") + "\n"
	return s
}

// RunViewer shows the live viewer until the user quits or ctx is done.
func RunViewer(ctx context.Context, source Source, refresh time.Duration) error {
	p := tea.NewProgram(NewViewer(source, refresh), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
	return nil
}
