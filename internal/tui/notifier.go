package tui

import (
	"sync/atomic"
	"vendepass-client/internal/ports"

	tea "github.com/charmbracelet/bubbletea"
)

// noticeMsg carries a dispatcher notice into the event loop.
type noticeMsg ports.Notice

// ProgramNotifier implements ports.Notifier by sending notices to a running
// program. Notices sent before SetProgram are dropped.
//
// Notify blocks until the event loop accepts the message, so it must only be
// called from command goroutines, never from Update.
type ProgramNotifier struct {
	program atomic.Pointer[tea.Program]
}

func NewProgramNotifier() *ProgramNotifier {
	return &ProgramNotifier{}
}

func (n *ProgramNotifier) SetProgram(p *tea.Program) {
	n.program.Store(p)
}

func (n *ProgramNotifier) Notify(notice ports.Notice) {
	if p := n.program.Load(); p != nil {
		p.Send(noticeMsg(notice))
	}
}
