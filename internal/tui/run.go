package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vbonduro/ecoleta/internal/selection"
	"github.com/vbonduro/ecoleta/internal/service"
)

// Run starts the search screen with region and city pre-filled and blocks
// until the user quits.
func Run(ctrl *selection.Controller, items []service.ItemView, region, city string) error {
	p := tea.NewProgram(New(ctrl, items), tea.WithAltScreen())

	// Send blocks until the program reads the message, and observers may run
	// on the program's own goroutine.
	ctrl.Subscribe(func(selection.State) {
		go p.Send(StateChangedMsg{})
	})
	ctrl.Dispatch(selection.Enter{Region: region, City: city})

	_, err := p.Run()
	return err
}
