package ui

import (
	"log"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/haukew/kartei/internal/api"
	"github.com/haukew/kartei/internal/handoff"
	"github.com/haukew/kartei/internal/table"
)

// formFields lists the fields editable on the full record form, in display
// order. The legacy customer number stays inline-only, as in the table flow
// this form replaces.
var formFields = []table.Field{
	table.FieldName,
	table.FieldStreet,
	table.FieldZipCode,
	table.FieldCity,
	table.FieldEmail,
	table.FieldPhone,
}

var formLabels = map[table.Field]string{
	table.FieldName:    "Name",
	table.FieldStreet:  "Street",
	table.FieldZipCode: "Zip code",
	table.FieldCity:    "City",
	table.FieldEmail:   "Email",
	table.FieldPhone:   "Phone",
}

// formState is the full-record edit screen: one input per field, seeded from
// the record being edited.
type formState struct {
	recordID string
	original api.Customer
	inputs   []textinput.Model
	focus    int
	saving   bool
	notice   string
}

func newFormState(c api.Customer) *formState {
	inputs := make([]textinput.Model, len(formFields))
	for i, f := range formFields {
		in := textinput.New()
		in.CharLimit = 256
		in.Width = 48
		in.Prompt = ""
		in.SetValue(table.DisplayValue(c, f))
		inputs[i] = in
	}
	inputs[0].Focus()

	return &formState{
		recordID: c.ID,
		original: c,
		inputs:   inputs,
	}
}

// patch builds the PATCH body from fields whose normalized value differs from
// the stored record. An empty patch means nothing changed.
func (f *formState) patch() api.CustomerPatch {
	patch := api.CustomerPatch{}
	for i, field := range formFields {
		value, err := table.NormalizeDraft(field, f.inputs[i].Value())
		if err != nil {
			// Only legacyId can fail normalization and it is not on the form.
			continue
		}
		if !table.ValuesEqual(f.original, field, value) {
			patch[string(field)] = value
		}
	}
	return patch
}

func (f *formState) setFocus(i int) {
	if i < 0 {
		i = len(f.inputs) - 1
	}
	if i >= len(f.inputs) {
		i = 0
	}
	f.inputs[f.focus].Blur()
	f.focus = i
	f.inputs[f.focus].Focus()
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	f := m.form
	if f == nil {
		m.mode = modeTable
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeTable
		m.form = nil
		m.hand.Drop(handoff.KeyLastViewedID)
		return m, nil

	case tea.KeyCtrlC:
		return m, tea.Quit

	case tea.KeyTab, tea.KeyDown:
		f.setFocus(f.focus + 1)
		return m, nil

	case tea.KeyShiftTab, tea.KeyUp:
		f.setFocus(f.focus - 1)
		return m, nil

	case tea.KeyEnter:
		if f.saving {
			return m, nil
		}
		patch := f.patch()
		if len(patch) == 0 {
			m.mode = modeTable
			m.form = nil
			m.hand.Drop(handoff.KeyLastViewedID)
			return m, nil
		}
		f.saving = true
		f.notice = "saving…"
		return m, m.saveFormCmd(f.recordID, patch)
	}

	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return m, cmd
}

func (m Model) handleFormSaved(msg formSavedMsg) (tea.Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}
	if msg.err != nil {
		log.Printf("form save for %s failed: %v", msg.recordID, msg.err)
		m.form.saving = false
		m.form.notice = "save failed"
		return m, nil
	}

	// The round trip back to the table: mark the edited record so the list
	// highlights and scrolls to it after the reload.
	m.hand.Put(handoff.KeyLastEditedID, msg.recordID)
	m.mode = modeTable
	m.form = nil
	m.loading = true
	return m, m.loadCustomersCmd()
}
