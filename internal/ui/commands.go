package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/haukew/kartei/internal/api"
	"github.com/haukew/kartei/internal/prefs"
	"github.com/haukew/kartei/internal/table"
)

const storeTimeout = 15 * time.Second

func (m Model) loadCustomersCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		records, err := store.ListCustomers(ctx)
		return customersLoadedMsg{records: records, err: err}
	}
}

// runOpCmd performs the store round trip for one pending engine operation and
// reports back with the operation's sequence token. The engine discards
// resolutions that arrive after the operation was superseded.
func (m Model) runOpCmd(op table.PendingOp) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()

		var err error
		switch op.Kind {
		case table.OpDelete:
			err = store.DeleteCustomer(ctx, op.RecordID)
		default:
			err = store.PatchCustomer(ctx, op.RecordID, op.Patch)
		}
		return opResolvedMsg{id: op.ID, err: err}
	}
}

func (m Model) saveFormCmd(recordID string, patch api.CustomerPatch) tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		err := store.PatchCustomer(ctx, recordID, patch)
		return formSavedMsg{recordID: recordID, err: err}
	}
}

func (m Model) loadAppointmentsCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		items, err := store.ListAppointments(ctx)
		return appointmentsLoadedMsg{items: items, err: err}
	}
}

func (m Model) loadDueCmd() tea.Cmd {
	store := m.store
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), storeTimeout)
		defer cancel()
		items, err := store.ListDue(ctx)
		return dueLoadedMsg{items: items, err: err}
	}
}

// saveColumnsCmd persists the visibility mapping on every change.
func (m Model) saveColumnsCmd() tea.Cmd {
	path := m.columnsPath
	cols := m.engine.VisibleColumns()
	return func() tea.Msg {
		out := make(map[string]bool, len(cols))
		for c, v := range cols {
			out[string(c)] = v
		}
		return columnsSavedMsg{err: prefs.SaveColumns(path, out)}
	}
}
