package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/haukew/kartei/internal/api"
	"github.com/haukew/kartei/internal/table"
)

var columnLabels = map[table.Column]string{
	table.ColumnName:     "Name",
	table.ColumnCity:     "City",
	table.ColumnZipCode:  "Zip",
	table.ColumnStreet:   "Street",
	table.ColumnEmail:    "Email",
	table.ColumnPhone:    "Phone",
	table.ColumnLegacyID: "Cust.No",
	table.ColumnIsActive: "Status",
	table.ColumnActions:  "Actions",
}

var columnWidths = map[table.Column]int{
	table.ColumnName:     24,
	table.ColumnCity:     14,
	table.ColumnZipCode:  6,
	table.ColumnStreet:   20,
	table.ColumnEmail:    24,
	table.ColumnPhone:    14,
	table.ColumnLegacyID: 8,
	table.ColumnIsActive: 8,
	table.ColumnActions:  10,
}

// View renders the active screen.
func (m Model) View() string {
	switch {
	case m.loading:
		return "loading customers…\n"
	case m.loadErr != nil:
		return m.st.Danger.Render(fmt.Sprintf("load failed: %v", m.loadErr)) +
			"\n\npress R to retry, q to quit\n"
	}

	switch m.mode {
	case modeForm:
		return m.viewForm()
	case modeAppointments:
		return m.viewAppointments()
	case modeColumns:
		return m.viewColumns()
	case modeConfirmDelete:
		return m.viewConfirmDelete()
	}
	return m.viewTable()
}

func (m Model) viewTable() string {
	var b strings.Builder

	b.WriteString(m.st.Title.Render("Customers"))
	b.WriteString("\n")
	b.WriteString(m.viewFilterBar())
	b.WriteString("\n\n")

	cols := m.renderedColumns()
	b.WriteString(m.viewHeaderRow(cols))
	b.WriteString("\n")

	for i, row := range m.rows {
		b.WriteString(m.viewRow(row, cols, i == m.cursor))
		b.WriteString("\n")
	}
	if len(m.rows) == 0 {
		b.WriteString(m.st.Muted.Render("  no matching customers"))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.st.Muted.Render(fmt.Sprintf("matches: %d / %d", len(m.rows), m.engine.Len())))
	b.WriteString("\n")

	if m.notice != "" {
		style := m.st.Notice
		if m.noticeErr {
			style = m.st.Danger
		}
		b.WriteString(style.Render(m.notice))
		b.WriteString("\n")
	}

	b.WriteString(m.st.Muted.Render("enter edit · space status · e form · x delete · / search · f filter · s/r sort · c columns · a appointments · q quit"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewFilterBar() string {
	cfg := m.engine.Config()

	query := cfg.Query
	if m.mode == modeSearch {
		query = m.input.View()
	} else if query == "" {
		query = m.st.Muted.Render("(none)")
	}

	return m.st.FilterBar.Render(fmt.Sprintf("search: %s  status: %s  sort: %s",
		query, statusLabel(cfg.Status), sortLabel(cfg.SortKey, cfg.SortDir)))
}

// renderedColumns lists the visible data columns in display order, excluding
// the actions column which has no cell content in a keyboard-driven UI.
func (m Model) renderedColumns() []table.Column {
	out := make([]table.Column, 0, len(table.AllColumns))
	for _, c := range table.AllColumns {
		if c == table.ColumnActions {
			continue
		}
		if m.engine.ColumnVisible(c) {
			out = append(out, c)
		}
	}
	return out
}

func (m Model) viewHeaderRow(cols []table.Column) string {
	cells := make([]string, 0, len(cols)+1)
	cells = append(cells, "  ")
	for _, c := range cols {
		cells = append(cells, m.st.HeaderCell.Render(pad(columnLabels[c], columnWidths[c])))
	}
	return strings.Join(cells, " ")
}

func (m Model) viewRow(row api.Customer, cols []table.Column, selected bool) string {
	fields := m.visibleFields()
	var editField table.Field
	if selected && len(fields) > 0 {
		i := m.colCursor
		if i >= len(fields) {
			i = len(fields) - 1
		}
		editField = fields[i]
	}
	sess, editing := m.engine.Session()

	cells := make([]string, 0, len(cols)+1)
	marker := "  "
	if selected {
		marker = "> "
	}
	cells = append(cells, marker)

	for _, c := range cols {
		width := columnWidths[c]

		if c == table.ColumnIsActive {
			badge := m.st.InactiveTag.Render(pad("inactive", width))
			if row.IsActive {
				badge = m.st.ActiveBadge.Render(pad("active", width))
			}
			cells = append(cells, badge)
			continue
		}

		field := table.Field(c)
		text := table.DisplayValue(row, field)

		switch {
		case editing && sess.RecordID == row.ID && sess.Field == field && m.mode == modeEditCell:
			cells = append(cells, m.st.EditCell.Render(pad(m.input.View(), width)))
		case m.engine.Saving(row.ID, field):
			cells = append(cells, m.st.Muted.Render(pad(text+" …", width)))
		case selected && field == editField && m.mode == modeTable:
			cells = append(cells, m.st.SelectedRow.Render(pad(text, width)))
		default:
			cells = append(cells, m.st.Cell.Render(pad(text, width)))
		}
	}

	line := strings.Join(cells, " ")
	if m.engine.Deleting(row.ID) {
		return m.st.Muted.Render(line)
	}
	if m.highlightID == row.ID {
		return m.st.Highlight.Render(line)
	}
	return line
}

func (m Model) viewConfirmDelete() string {
	body := fmt.Sprintf("Delete customer %q?\n\n%s",
		m.confirmName,
		m.st.Muted.Render("y delete · esc cancel"))
	return m.overlay(m.st.ModalBox.Render(body))
}

func (m Model) viewColumns() string {
	var b strings.Builder
	b.WriteString(m.st.Title.Render("Columns"))
	b.WriteString("\n\n")
	for i, c := range table.AllColumns {
		marker := "[ ]"
		if m.engine.ColumnVisible(c) {
			marker = "[x]"
		}
		line := fmt.Sprintf("%s %s", marker, columnLabels[c])
		if i == m.colPick {
			line = m.st.SelectedRow.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(m.st.Muted.Render("space toggle · esc back"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewForm() string {
	f := m.form
	if f == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(m.st.Title.Render("Edit customer"))
	b.WriteString("\n\n")
	for i, field := range formFields {
		label := pad(formLabels[field], 10)
		if i == f.focus {
			label = m.st.HeaderCell.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s %s\n", label, f.inputs[i].View()))
	}
	b.WriteString("\n")
	if f.notice != "" {
		b.WriteString(m.st.Notice.Render(f.notice))
		b.WriteString("\n")
	}
	b.WriteString(m.st.Muted.Render("tab next · enter save · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) viewAppointments() string {
	var b strings.Builder
	if m.dueView {
		b.WriteString(m.st.Title.Render("Due inspections"))
	} else {
		b.WriteString(m.st.Title.Render("Past appointments"))
	}
	b.WriteString("\n\n")

	if m.apptErr != nil {
		b.WriteString(m.st.Danger.Render(fmt.Sprintf("load failed: %v", m.apptErr)))
		b.WriteString("\n")
	} else if m.dueView {
		b.WriteString(m.st.HeaderCell.Render(pad("Customer", 24) + " " + pad("City", 14) + " " + pad("Last", 12) + " " + pad("Due", 12) + " " + pad("Quarter", 8)))
		b.WriteString("\n")
		for _, d := range m.due {
			b.WriteString(fmt.Sprintf("%s %s %s %s %s\n",
				pad(d.Customer.Name, 24),
				pad(derefStr(d.Customer.City), 14),
				pad(d.LastStartTime, 12),
				pad(d.DueDate, 12),
				pad(d.Quarter, 8)))
		}
		if len(m.due) == 0 {
			b.WriteString(m.st.Muted.Render("nothing due"))
			b.WriteString("\n")
		}
	} else {
		b.WriteString(m.st.HeaderCell.Render(pad("Date", 18) + " " + pad("Customer", 24) + " " + pad("City", 14) + " " + pad("Title", 28)))
		b.WriteString("\n")
		for _, a := range m.appts {
			b.WriteString(fmt.Sprintf("%s %s %s %s\n",
				pad(a.StartTime, 18),
				pad(a.Customer.Name, 24),
				pad(derefStr(a.Customer.City), 14),
				pad(a.Title, 28)))
		}
		if len(m.appts) == 0 {
			b.WriteString(m.st.Muted.Render("no appointments"))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.st.Muted.Render("d toggle due view · esc back"))
	b.WriteString("\n")
	return b.String()
}

func (m Model) overlay(box string) string {
	if m.width <= 0 || m.height <= 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

func pad(s string, width int) string {
	if lipgloss.Width(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-lipgloss.Width(s))
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
