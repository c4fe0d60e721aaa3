package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"
)

// Pager shows a document full screen until the user leaves it
type Pager interface {
	Show(content string) error
}

// OvPager runs the ov pager in place of the Bubble Tea screen
type OvPager struct {
	program *tea.Program // reference to Bubble Tea program for terminal management
}

// NewOvPager creates a pager; SetProgram must be called before Show
func NewOvPager() *OvPager {
	return &OvPager{}
}

// SetProgram sets the program reference for terminal management
func (p *OvPager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show releases the terminal, runs ov over content and restores the terminal
func (p *OvPager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// give ov time to leave the alternate screen
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}
