// Package nav tracks which menu screen is visible during a UI interaction.
//
// A Stack records one Node per menu opened during an interaction. Each node
// links the screen that was visible before the transition (Previous) to the
// screen the transition opened (Next). A cursor marks the node whose Next is
// on screen; GoBack and GoForward move the cursor along the Previous chain
// without adding or removing nodes, while OpenNewMenu and CloseCurrentMenu
// push and pop. GoForward shows the Next of the node above the cursor, which
// is the screen the matching GoBack left.
//
// Exactly one screen is shown while an interaction is active. The Stack is
// not safe for concurrent use; callers drive it from the UI goroutine.
package nav

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/appengine-ltd/walkabout/internal/logging"
)

// Screen is a displayable surface the stack can show and hide.
// Show and Hide must tolerate repeated calls.
type Screen interface {
	Name() string
	Show()
	Hide()
}

// Node is one entry in the navigation history.
type Node struct {
	Previous Screen // nil only for the first node
	Next     Screen
}

// Stack is the navigation history for one UI subsystem.
type Stack struct {
	nodes         []Node
	cursor        int
	interactionID string
	log           *slog.Logger
}

// NewStack creates an empty stack. A nil logger discards output.
func NewStack(logger *slog.Logger) *Stack {
	return &Stack{
		nodes: make([]Node, 0, 4),
		log:   logging.OrDiscard(logger),
	}
}

// StartNewInteraction begins an interaction with screen as the only node and
// shows it. It fails with ErrInvalidState if an interaction is already
// running; end that one first so none of its screens stay visible.
func (s *Stack) StartNewInteraction(screen Screen) error {
	if screen == nil {
		return opError("start", ErrNilScreen)
	}
	if len(s.nodes) > 0 {
		return opError("start", ErrInvalidState)
	}

	s.nodes = append(s.nodes[:0], Node{Previous: nil, Next: screen})
	s.cursor = 0
	s.interactionID = uuid.NewString()

	screen.Show()
	s.log.Debug("ui interaction started", "interaction", s.interactionID, "screen", screen.Name())
	return nil
}

// OpenNewMenu hides the visible screen and pushes screen on top of it.
// Nodes above the cursor, left behind by GoBack, are discarded first.
func (s *Stack) OpenNewMenu(screen Screen) error {
	if screen == nil {
		return opError("open", ErrNilScreen)
	}
	if len(s.nodes) == 0 {
		return opError("open", ErrInvalidState)
	}

	s.truncateForward()
	visible := s.nodes[s.cursor].Next
	visible.Hide()

	s.nodes = append(s.nodes, Node{Previous: visible, Next: screen})
	s.cursor++

	screen.Show()
	s.log.Debug("ui menu opened", "interaction", s.interactionID, "screen", screen.Name(), "depth", len(s.nodes))
	return nil
}

// CloseCurrentMenu hides and pops the visible screen and shows the one
// beneath it. It returns the closed screen. When the closed screen was the
// last one the stack becomes empty and the error is ErrHistoryExhausted;
// the returned screen is still valid in that case.
func (s *Stack) CloseCurrentMenu() (Screen, error) {
	if len(s.nodes) == 0 {
		return nil, opError("close", ErrInvalidState)
	}

	s.truncateForward()
	last := len(s.nodes) - 1
	closed := s.nodes[last].Next
	closed.Hide()

	s.nodes[last] = Node{}
	s.nodes = s.nodes[:last]
	s.cursor--

	if len(s.nodes) == 0 {
		s.cursor = 0
		s.log.Debug("no more ui menus to go back to", "interaction", s.interactionID, "closed", closed.Name())
		s.interactionID = ""
		return closed, opError("close", ErrHistoryExhausted)
	}

	s.nodes[s.cursor].Next.Show()
	s.log.Debug("ui menu closed", "interaction", s.interactionID, "closed", closed.Name(), "depth", len(s.nodes))
	return closed, nil
}

// GoBack moves the cursor one node down the Previous chain, hiding the
// visible screen and showing the one that preceded it.
func (s *Stack) GoBack() error {
	if len(s.nodes) < 2 || s.cursor == 0 {
		s.log.Debug("no previous ui menu to go back to", "interaction", s.interactionID)
		return opError("back", ErrHistoryExhausted)
	}

	s.nodes[s.cursor].Next.Hide()
	s.nodes[s.cursor].Previous.Show()
	s.cursor--
	return nil
}

// GoForward moves the cursor one node up, re-showing the screen that GoBack
// left behind.
func (s *Stack) GoForward() error {
	if len(s.nodes) < 2 || s.cursor+1 >= len(s.nodes) {
		s.log.Debug("no next ui menu to go forward to", "interaction", s.interactionID)
		return opError("forward", ErrHistoryExhausted)
	}

	// The node above the cursor links back to the visible screen.
	s.nodes[s.cursor+1].Previous.Hide()
	s.cursor++
	s.nodes[s.cursor].Next.Show()
	return nil
}

// EndInteraction hides every screen in the history, newest first, and
// clears it. Calling it on an empty stack does nothing.
func (s *Stack) EndInteraction() {
	if len(s.nodes) == 0 {
		return
	}
	for i := len(s.nodes) - 1; i >= 0; i-- {
		s.nodes[i].Next.Hide()
		s.nodes[i] = Node{}
	}
	s.log.Debug("ui interaction ended", "interaction", s.interactionID)
	s.nodes = s.nodes[:0]
	s.cursor = 0
	s.interactionID = ""
}

// Active reports whether an interaction is in progress.
func (s *Stack) Active() bool {
	return len(s.nodes) > 0
}

// Len returns the number of nodes in the history.
func (s *Stack) Len() int {
	return len(s.nodes)
}

// Cursor returns the index of the node whose Next is visible.
// It is meaningless while the stack is empty.
func (s *Stack) Cursor() int {
	return s.cursor
}

// Current returns the visible screen, or nil when no interaction is active.
func (s *Stack) Current() Screen {
	if len(s.nodes) == 0 {
		return nil
	}
	return s.nodes[s.cursor].Next
}

// Nodes returns a copy of the history, oldest first.
func (s *Stack) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// InteractionID identifies the running interaction in log records.
func (s *Stack) InteractionID() string {
	return s.interactionID
}

func (s *Stack) truncateForward() {
	for i := s.cursor + 1; i < len(s.nodes); i++ {
		s.nodes[i] = Node{}
	}
	s.nodes = s.nodes[:s.cursor+1]
}
