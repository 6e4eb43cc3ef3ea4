package app

import tea "github.com/charmbracelet/bubbletea"

// action is the abstract input event a key press decodes to.
type action int

const (
	actionNone action = iota
	actionQuit
	actionRefresh
	actionSelectNext
	actionSelectPrevious
	actionToggleFilter
	actionRequestPurge
	actionConfirmPurge
	actionCancelPurge
)

// actionForKey is the static binding table. Any unbound key decodes to
// actionNone.
func actionForKey(msg tea.KeyMsg) action {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return actionQuit
	case "r":
		return actionRefresh
	case "f":
		return actionToggleFilter
	case "down", "j":
		return actionSelectNext
	case "up", "k":
		return actionSelectPrevious
	case "X":
		return actionRequestPurge
	case "y", "Y":
		return actionConfirmPurge
	case "n", "N":
		return actionCancelPurge
	}
	return actionNone
}
