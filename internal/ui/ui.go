// Package ui renders the customer table and reports user intents to the
// table engine. All state transitions happen on the bubbletea update loop;
// store round trips run as commands and come back as resolution messages.
package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Run starts the TUI and blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if opts.Engine == nil {
		return fmt.Errorf("ui requires a table engine")
	}
	if opts.Store == nil {
		return fmt.Errorf("ui requires a customer store")
	}
	if opts.Handoff == nil {
		return fmt.Errorf("ui requires a handoff channel")
	}

	program := tea.NewProgram(New(opts), tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
