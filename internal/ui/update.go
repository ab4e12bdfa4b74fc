package ui

import (
	"fmt"
	"log"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/haukew/kartei/internal/api"
	"github.com/haukew/kartei/internal/handoff"
	"github.com/haukew/kartei/internal/table"
)

// Update routes messages to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case customersLoadedMsg:
		return m.handleCustomersLoaded(msg)

	case opResolvedMsg:
		return m.handleOpResolved(msg)

	case formSavedMsg:
		return m.handleFormSaved(msg)

	case appointmentsLoadedMsg:
		m.appts = msg.items
		m.apptErr = msg.err
		return m, nil

	case dueLoadedMsg:
		m.due = msg.items
		m.apptErr = msg.err
		return m, nil

	case columnsSavedMsg:
		if msg.err != nil {
			log.Printf("persist columns failed: %v", msg.err)
		}
		return m, nil

	case tea.MouseMsg:
		m.highlightID = ""
		return m, nil

	case tea.KeyMsg:
		// The post-edit highlight is one-shot and dismissed by the next
		// input anywhere, deliberately not scoped to the row.
		m.highlightID = ""
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeSearch:
		return m.updateSearch(msg)
	case modeEditCell:
		return m.updateEditCell(msg)
	case modeConfirmDelete:
		return m.updateConfirmDelete(msg)
	case modeColumns:
		return m.updateColumns(msg)
	case modeForm:
		return m.updateForm(msg)
	case modeAppointments:
		return m.updateAppointments(msg)
	}
	return m.updateTable(msg)
}

func (m Model) handleCustomersLoaded(msg customersLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	m.loadErr = msg.err
	if msg.err != nil {
		return m, nil
	}

	m.engine.ReplaceAll(msg.records)
	m.cursor = 0
	m.refreshRows()

	// Scroll restoration fires once, on the first render after data loads.
	if id, ok := m.hand.Take(handoff.KeyLastViewedID); ok {
		m.selectRow(id)
	}
	if id, ok := m.hand.Take(handoff.KeyLastEditedID); ok {
		m.highlightID = id
		m.selectRow(id)
	}
	return m, nil
}

func (m Model) handleOpResolved(msg opResolvedMsg) (tea.Model, tea.Cmd) {
	out := m.engine.Resolve(msg.id, msg.err)
	if !out.Applied {
		return m, nil
	}

	if out.Err != nil {
		kind := "network failure"
		if api.IsStoreRejection(out.Err) {
			kind = "store rejection"
		}
		log.Printf("operation on %s failed (%s): %v", out.Op.RecordID, kind, out.Err)

		switch out.Op.Kind {
		case table.OpDelete:
			m.setNotice("delete failed – record kept", true)
		case table.OpToggle:
			m.setNotice("status change failed – reverted", true)
		default:
			m.setNotice("save failed – change reverted", true)
		}
	} else if out.Removed {
		m.setNotice("record deleted", false)
	}

	m.refreshRows()
	return m, nil
}

func (m *Model) setNotice(text string, isErr bool) {
	m.notice = text
	m.noticeErr = isErr
}

func (m Model) updateTable(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys
	switch {
	case key.Matches(msg, keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, keys.Down):
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case key.Matches(msg, keys.Top):
		m.cursor = 0
	case key.Matches(msg, keys.Bottom):
		if len(m.rows) > 0 {
			m.cursor = len(m.rows) - 1
		}
	case key.Matches(msg, keys.Left):
		if m.colCursor > 0 {
			m.colCursor--
		}
	case key.Matches(msg, keys.Right):
		if m.colCursor < len(m.visibleFields())-1 {
			m.colCursor++
		}

	case key.Matches(msg, keys.Search):
		m.mode = modeSearch
		m.searchPrev = m.engine.Config().Query
		m.input.SetValue(m.engine.Config().Query)
		m.input.Placeholder = "name, city, zip, street, email, phone, customer no."
		m.input.Focus()

	case key.Matches(msg, keys.Status):
		m.engine.SetStatus(nextStatus(m.engine.Config().Status))
		m.refreshRows()

	case key.Matches(msg, keys.Sort):
		cfg := m.engine.Config()
		m.engine.SetSort(nextSortKey(cfg.SortKey), cfg.SortDir)
		m.refreshRows()

	case key.Matches(msg, keys.Reverse):
		cfg := m.engine.Config()
		dir := table.SortAsc
		if cfg.SortDir == table.SortAsc {
			dir = table.SortDesc
		}
		m.engine.SetSort(cfg.SortKey, dir)
		m.refreshRows()

	case key.Matches(msg, keys.Columns):
		m.mode = modeColumns
		m.colPick = 0

	case key.Matches(msg, keys.Appts):
		m.mode = modeAppointments
		m.dueView = false
		return m, m.loadAppointmentsCmd()

	case key.Matches(msg, keys.Reload):
		m.loading = true
		return m, m.loadCustomersCmd()

	case key.Matches(msg, keys.Edit):
		return m.startCellEdit()

	case key.Matches(msg, keys.EditForm):
		if row, ok := m.selectedRow(); ok {
			// Remember where we left, the way the full-page flow does.
			m.hand.Put(handoff.KeyLastViewedID, row.ID)
			m.form = newFormState(row)
			m.mode = modeForm
		}

	case key.Matches(msg, keys.Toggle):
		if row, ok := m.selectedRow(); ok {
			op, err := m.engine.ToggleActive(row.ID)
			if err != nil {
				log.Printf("toggle skipped: %v", err)
				return m, nil
			}
			m.setNotice("", false)
			m.refreshRows()
			return m, m.runOpCmd(*op)
		}

	case key.Matches(msg, keys.Delete):
		if row, ok := m.selectedRow(); ok {
			m.mode = modeConfirmDelete
			m.confirmID = row.ID
			m.confirmName = row.Name
		}
	}
	return m, nil
}

func (m Model) startCellEdit() (tea.Model, tea.Cmd) {
	row, ok := m.selectedRow()
	if !ok {
		return m, nil
	}
	fields := m.visibleFields()
	if len(fields) == 0 {
		return m, nil
	}
	if m.colCursor >= len(fields) {
		m.colCursor = len(fields) - 1
	}
	field := fields[m.colCursor]

	if err := m.engine.StartEdit(row.ID, field); err != nil {
		log.Printf("start edit skipped: %v", err)
		return m, nil
	}
	sess, _ := m.engine.Session()
	m.mode = modeEditCell
	m.input.Placeholder = ""
	m.input.SetValue(sess.Draft)
	m.input.CursorEnd()
	m.input.Focus()
	m.setNotice("", false)
	return m, nil
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		m.mode = modeTable
		m.input.Blur()
		return m, nil
	case tea.KeyEsc:
		// Abandoning the search restores the previous query.
		m.engine.SetQuery(m.searchPrev)
		m.refreshRows()
		m.mode = modeTable
		m.input.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.engine.SetQuery(m.input.Value())
	m.refreshRows()
	return m, cmd
}

func (m Model) updateEditCell(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		op, err := m.engine.CommitEdit()
		if err != nil {
			if table.IsValidation(err) {
				// The stale draft stays visible for correction.
				m.setNotice(err.Error(), true)
				return m, nil
			}
			log.Printf("commit skipped: %v", err)
			m.mode = modeTable
			m.input.Blur()
			return m, nil
		}
		m.mode = modeTable
		m.input.Blur()
		m.refreshRows()
		if op == nil {
			return m, nil // no-op commit, nothing sent
		}
		return m, m.runOpCmd(*op)

	case tea.KeyEsc:
		m.engine.CancelEdit()
		m.mode = modeTable
		m.input.Blur()
		return m, nil

	case tea.KeyCtrlC:
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.engine.SetDraft(m.input.Value())
	return m, cmd
}

func (m Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		id := m.confirmID
		m.mode = modeTable
		m.confirmID = ""
		m.confirmName = ""

		op, err := m.engine.BeginDelete(id)
		if err != nil {
			log.Printf("delete skipped: %v", err)
			return m, nil
		}
		m.setNotice("deleting…", false)
		return m, m.runOpCmd(*op)

	case key.Matches(msg, m.keys.Cancel), msg.Type == tea.KeyCtrlC:
		m.mode = modeTable
		m.confirmID = ""
		m.confirmName = ""
	}
	return m, nil
}

func (m Model) updateColumns(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.colPick > 0 {
			m.colPick--
		}
	case key.Matches(msg, m.keys.Down):
		if m.colPick < len(table.AllColumns)-1 {
			m.colPick++
		}
	case key.Matches(msg, m.keys.ToggleMark):
		col := table.AllColumns[m.colPick]
		m.engine.SetColumnVisible(col, !m.engine.ColumnVisible(col))
		if m.colCursor >= len(m.visibleFields()) {
			m.colCursor = 0
		}
		return m, m.saveColumnsCmd()
	case key.Matches(msg, m.keys.Cancel), msg.Type == tea.KeyEnter:
		m.mode = modeTable
	case msg.Type == tea.KeyCtrlC:
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) updateAppointments(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.mode = modeTable
		m.apptErr = nil
	case msg.String() == "d":
		m.dueView = !m.dueView
		if m.dueView {
			return m, m.loadDueCmd()
		}
		return m, m.loadAppointmentsCmd()
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	}
	return m, nil
}

func nextStatus(s table.StatusFilter) table.StatusFilter {
	switch s {
	case table.StatusAll:
		return table.StatusActive
	case table.StatusActive:
		return table.StatusInactive
	}
	return table.StatusAll
}

func nextSortKey(k table.SortKey) table.SortKey {
	for i, sk := range table.SortKeys {
		if sk == k {
			return table.SortKeys[(i+1)%len(table.SortKeys)]
		}
	}
	return table.SortKeys[0]
}

func statusLabel(s table.StatusFilter) string {
	switch s {
	case table.StatusActive:
		return "active"
	case table.StatusInactive:
		return "inactive"
	}
	return "all"
}

func sortLabel(k table.SortKey, d table.SortDir) string {
	arrow := "↑"
	if d == table.SortDesc {
		arrow = "↓"
	}
	return fmt.Sprintf("%s %s", k, arrow)
}
