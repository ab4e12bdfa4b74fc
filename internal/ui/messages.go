package ui

import (
	"github.com/haukew/kartei/internal/api"
	"github.com/haukew/kartei/internal/table"
)

// customersLoadedMsg carries the initial (or reloaded) customer list.
type customersLoadedMsg struct {
	records []api.Customer
	err     error
}

// opResolvedMsg reports the result of one store round trip for a pending
// engine operation. The op id is the engine's sequence token; the engine
// decides whether the resolution still applies.
type opResolvedMsg struct {
	id  table.OpID
	err error
}

// formSavedMsg reports the result of saving the full edit form.
type formSavedMsg struct {
	recordID string
	err      error
}

// appointmentsLoadedMsg carries the appointment history view data.
type appointmentsLoadedMsg struct {
	items []api.Appointment
	err   error
}

// dueLoadedMsg carries the due-inspections view data.
type dueLoadedMsg struct {
	items []api.DueItem
	err   error
}

// columnsSavedMsg reports a preference write; failures are logged, never
// surfaced.
type columnsSavedMsg struct {
	err error
}
