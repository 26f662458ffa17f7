// Package tui provides the Bubble Tea integration for the gem arcade.
// It handles the terminal UI loop, input mapping, menus and the SSH server.
package tui

import (
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// TickMsg is sent to trigger a game simulation tick.
type TickMsg struct {
	At   time.Time
	Loop uint64 // Tick loop that scheduled the message
}

var loopIDs atomic.Uint64

// nextLoop returns a fresh tick loop ID. A model only acts on ticks of its
// own loop, so a tick left over from a closed game is dropped.
func nextLoop() uint64 {
	return loopIDs.Add(1)
}

// tickCmd returns a Bubble Tea command that sends tick messages at the specified rate.
func tickCmd(tickRate int, loop uint64) tea.Cmd {
	interval := time.Second / time.Duration(tickRate)
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return TickMsg{At: t, Loop: loop}
	})
}
