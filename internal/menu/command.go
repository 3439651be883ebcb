package menu

import "github.com/appengine-ltd/walkabout/internal/nav"

// Command is a host-independent menu input. Hosts translate their own key
// events into commands and hand them to Do.
type Command int

const (
	CmdNone Command = iota
	CmdTogglePause
	CmdUp
	CmdDown
	CmdLeft
	CmdRight
	CmdActivate
	CmdClose
	CmdBack
	CmdForward
	CmdQuit
)

var commandNames = map[Command]string{
	CmdNone:        "none",
	CmdTogglePause: "toggle-pause",
	CmdUp:          "up",
	CmdDown:        "down",
	CmdLeft:        "left",
	CmdRight:       "right",
	CmdActivate:    "activate",
	CmdClose:       "close",
	CmdBack:        "back",
	CmdForward:     "forward",
	CmdQuit:        "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// Do applies cmd. Navigation commands other than CmdTogglePause and CmdQuit
// are ignored while the game runs. Running out of history is not reported.
func (m *InGame) Do(cmd Command) error {
	switch cmd {
	case CmdNone:
		return nil
	case CmdTogglePause:
		m.TogglePause()
		return nil
	case CmdQuit:
		m.Exit()
		return nil
	}
	if !m.paused {
		return nil
	}

	var err error
	switch cmd {
	case CmdUp:
		m.MoveCursor(-1)
	case CmdDown:
		m.MoveCursor(1)
	case CmdLeft:
		err = m.Adjust(-1)
	case CmdRight:
		err = m.Adjust(1)
	case CmdActivate:
		err = m.Activate()
	case CmdClose:
		err = m.CloseCurrentMenu()
	case CmdBack:
		err = m.Back()
	case CmdForward:
		err = m.Forward()
	}
	if nav.IsExhausted(err) {
		return nil
	}
	return err
}
