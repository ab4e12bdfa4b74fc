package ui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/haukew/kartei/internal/api"
	"github.com/haukew/kartei/internal/handoff"
	"github.com/haukew/kartei/internal/table"
)

// mode selects which view owns the keyboard.
type mode int

const (
	modeTable mode = iota
	modeSearch
	modeEditCell
	modeConfirmDelete
	modeColumns
	modeForm
	modeAppointments
)

// Options configure the UI program.
type Options struct {
	Store       api.CustomerStore
	Engine      *table.Engine
	Handoff     *handoff.Channel
	ColumnsPath string
}

// Model is the bubbletea model for the customer portal. It consumes the
// engine's derived view and translates key presses into engine intents.
type Model struct {
	engine      *table.Engine
	store       api.CustomerStore
	hand        *handoff.Channel
	columnsPath string

	mode mode
	keys keyMap
	st   Styles

	rows      []api.Customer
	cursor    int
	colCursor int

	loading bool
	loadErr error

	input       textinput.Model
	searchPrev  string
	confirmID   string
	confirmName string
	colPick     int

	form *formState

	appts   []api.Appointment
	due     []api.DueItem
	dueView bool
	apptErr error

	// highlightID marks the row returned to after a form edit; cleared on
	// the next input event anywhere, not just on that row.
	highlightID string
	notice      string
	noticeErr   bool

	width  int
	height int
}

// New builds the initial model. The engine is expected to carry the persisted
// column mapping already.
func New(opts Options) Model {
	input := textinput.New()
	input.CharLimit = 256
	input.Width = 40

	return Model{
		engine:      opts.Engine,
		store:       opts.Store,
		hand:        opts.Handoff,
		columnsPath: opts.ColumnsPath,
		keys:        defaultKeyMap(),
		st:          defaultStyles(),
		loading:     true,
		input:       input,
	}
}

// Init kicks off the initial customer load.
func (m Model) Init() tea.Cmd {
	return m.loadCustomersCmd()
}

// refreshRows recomputes the derived view and clamps the selection. Called
// synchronously after every committed mutation so the rendered view is never
// stale relative to the working set.
func (m *Model) refreshRows() {
	var selected string
	if m.cursor >= 0 && m.cursor < len(m.rows) {
		selected = m.rows[m.cursor].ID
	}

	m.rows = m.engine.Rows()

	if selected != "" {
		if i := rowIndex(m.rows, selected); i >= 0 {
			m.cursor = i
			return
		}
	}
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectRow moves the cursor to the record with the given id, if visible.
func (m *Model) selectRow(id string) {
	if i := rowIndex(m.rows, id); i >= 0 {
		m.cursor = i
	}
}

func (m Model) selectedRow() (api.Customer, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return api.Customer{}, false
	}
	return m.rows[m.cursor], true
}

// visibleFields lists the editable fields whose columns are shown, in table
// order. The cell cursor moves over these.
func (m Model) visibleFields() []table.Field {
	out := make([]table.Field, 0, len(table.EditableFields))
	for _, f := range table.EditableFields {
		if m.engine.ColumnVisible(table.Column(f)) {
			out = append(out, f)
		}
	}
	return out
}

func rowIndex(rows []api.Customer, id string) int {
	for i := range rows {
		if rows[i].ID == id {
			return i
		}
	}
	return -1
}
