package table

import (
	"fmt"

	"golang.org/x/text/collate"

	"github.com/haukew/kartei/internal/api"
)

// OpID is the sequence token of one in-flight mutation. Resolutions carrying
// an unknown or superseded token are discarded, which makes abandoned and
// raced responses explicit no-ops.
type OpID uint64

// OpKind distinguishes the three mutation shapes.
type OpKind int

const (
	OpPatch OpKind = iota
	OpToggle
	OpDelete
)

// opKey identifies the logical slot a pending operation occupies. A later
// operation on the same slot supersedes the earlier one (last-issued-wins).
type opKey struct {
	recordID string
	slot     string
}

// PendingOp is the bookkeeping for one in-flight mutation: what was asked for
// and the pre-mutation snapshot that enables exact rollback.
type PendingOp struct {
	ID       OpID
	Kind     OpKind
	RecordID string
	Field    Field // set for OpPatch
	Patch    api.CustomerPatch
	snapshot api.Customer
}

func (op PendingOp) key() opKey {
	switch op.Kind {
	case OpToggle:
		return opKey{recordID: op.RecordID, slot: "status"}
	case OpDelete:
		return opKey{recordID: op.RecordID, slot: "delete"}
	}
	return opKey{recordID: op.RecordID, slot: string(op.Field)}
}

// EditSession is the single in-progress inline edit. At most one exists at a
// time; "no edit in progress" is the absent value.
type EditSession struct {
	RecordID string
	Field    Field
	Draft    string
}

// Outcome reports how a resolution changed the working set.
type Outcome struct {
	Op         PendingOp
	Applied    bool // false for unknown or superseded tokens
	Err        error
	RolledBack bool // optimistic state was reverted
	Removed    bool // record left the working set (confirmed delete)
}

// Engine owns the in-memory working set of customer records, the active view
// configuration, the single edit session, and all pending mutations. It is
// driven from a single goroutine (the UI event loop); all mutation is
// synchronous from the renderer's point of view, with network suspension
// handled by the caller between issue and Resolve.
type Engine struct {
	records  []api.Customer
	cfg      ViewConfig
	cols     map[Column]bool
	session  *EditSession
	pending  map[OpID]PendingOp
	latest   map[opKey]OpID
	nextID   OpID
	collator *collate.Collator
}

// New returns an engine with an empty working set and default view state.
func New() *Engine {
	cols := make(map[Column]bool, len(AllColumns))
	for _, c := range AllColumns {
		cols[c] = true
	}
	return &Engine{
		cfg:      DefaultViewConfig(),
		cols:     cols,
		pending:  make(map[OpID]PendingOp),
		latest:   make(map[opKey]OpID),
		collator: NewCollator(),
	}
}

// ReplaceAll installs a fresh record set after the initial load. Uniqueness
// of ids is the store's contract; pending operations and any edit session are
// dropped since their targets may no longer exist.
func (e *Engine) ReplaceAll(records []api.Customer) {
	e.records = make([]api.Customer, len(records))
	copy(e.records, records)
	e.session = nil
	e.pending = make(map[OpID]PendingOp)
	e.latest = make(map[opKey]OpID)
}

// Len returns the size of the unfiltered working set.
func (e *Engine) Len() int { return len(e.records) }

// Get returns a copy of the record with the given id.
func (e *Engine) Get(id string) (api.Customer, bool) {
	if i := e.index(id); i >= 0 {
		return e.records[i], true
	}
	return api.Customer{}, false
}

// Rows derives the filtered, sorted sequence to render. Pure with respect to
// engine state: calling it twice without intervening mutation yields the
// same result.
func (e *Engine) Rows() []api.Customer {
	return Derive(e.records, e.cfg, e.collator)
}

// Config returns the active view configuration.
func (e *Engine) Config() ViewConfig { return e.cfg }

// SetQuery updates the search filter.
func (e *Engine) SetQuery(q string) { e.cfg.Query = q }

// SetStatus updates the status filter.
func (e *Engine) SetStatus(s StatusFilter) { e.cfg.Status = s }

// SetSort updates the sort key and direction together.
func (e *Engine) SetSort(key SortKey, dir SortDir) {
	e.cfg.SortKey = key
	e.cfg.SortDir = dir
}

// ColumnVisible reports whether a column should be rendered. Unknown columns
// default to visible.
func (e *Engine) ColumnVisible(c Column) bool {
	v, ok := e.cols[c]
	return !ok || v
}

// SetColumnVisible toggles one column's visibility.
func (e *Engine) SetColumnVisible(c Column, visible bool) {
	e.cols[c] = visible
}

// VisibleColumns returns a copy of the full column mapping; every known
// column has an entry.
func (e *Engine) VisibleColumns() map[Column]bool {
	out := make(map[Column]bool, len(AllColumns))
	for _, c := range AllColumns {
		out[c] = e.ColumnVisible(c)
	}
	return out
}

// InstallColumns merges a persisted visibility mapping over the all-visible
// defaults. Unknown keys are ignored; missing entries stay visible.
func (e *Engine) InstallColumns(saved map[Column]bool) {
	for _, c := range AllColumns {
		e.cols[c] = true
	}
	for c, v := range saved {
		if _, known := e.cols[c]; known {
			e.cols[c] = v
		}
	}
}

// StartEdit opens an edit session on one cell, seeding the draft with the
// current display value. Any previous session is discarded.
func (e *Engine) StartEdit(id string, field Field) error {
	i := e.index(id)
	if i < 0 {
		return fmt.Errorf("start edit %s/%s: %w", id, field, ErrNotFound)
	}
	e.session = &EditSession{
		RecordID: id,
		Field:    field,
		Draft:    DisplayValue(e.records[i], field),
	}
	return nil
}

// Session returns the current edit session, if any.
func (e *Engine) Session() (EditSession, bool) {
	if e.session == nil {
		return EditSession{}, false
	}
	return *e.session, true
}

// SetDraft replaces the draft text of the current session.
func (e *Engine) SetDraft(text string) {
	if e.session != nil {
		e.session.Draft = text
	}
}

// CancelEdit discards the draft, never the record.
func (e *Engine) CancelEdit() { e.session = nil }

// CommitEdit normalizes the draft and, when it changes the record, applies it
// optimistically and returns the pending operation to execute against the
// store. A nil op with nil error means the commit was a no-op (no session, or
// draft equal to the stored value). A ValidationError keeps the session open
// for correction.
func (e *Engine) CommitEdit() (*PendingOp, error) {
	if e.session == nil {
		return nil, nil
	}
	sess := *e.session

	i := e.index(sess.RecordID)
	if i < 0 {
		e.session = nil
		return nil, fmt.Errorf("commit edit %s/%s: %w", sess.RecordID, sess.Field, ErrNotFound)
	}

	value, err := NormalizeDraft(sess.Field, sess.Draft)
	if err != nil {
		return nil, err
	}

	if ValuesEqual(e.records[i], sess.Field, value) {
		e.session = nil
		return nil, nil
	}

	snapshot := e.records[i]
	applyFieldValue(&e.records[i], sess.Field, value)
	e.session = nil

	op := e.issue(PendingOp{
		Kind:     OpPatch,
		RecordID: sess.RecordID,
		Field:    sess.Field,
		Patch:    api.CustomerPatch{string(sess.Field): value},
		snapshot: snapshot,
	})
	return &op, nil
}

// ToggleActive optimistically flips a record's active flag and returns the
// pending operation for the store round trip.
func (e *Engine) ToggleActive(id string) (*PendingOp, error) {
	i := e.index(id)
	if i < 0 {
		return nil, fmt.Errorf("toggle %s: %w", id, ErrNotFound)
	}

	snapshot := e.records[i]
	next := !e.records[i].IsActive
	e.records[i].IsActive = next

	op := e.issue(PendingOp{
		Kind:     OpToggle,
		RecordID: id,
		Patch:    api.CustomerPatch{"isActive": next},
		snapshot: snapshot,
	})
	return &op, nil
}

// BeginDelete registers a delete operation. Unlike patch and toggle the
// record stays in the working set until the store confirms; a failed delete
// leaving a ghost-removed row would be worse than a brief delay.
func (e *Engine) BeginDelete(id string) (*PendingOp, error) {
	i := e.index(id)
	if i < 0 {
		return nil, fmt.Errorf("delete %s: %w", id, ErrNotFound)
	}

	op := e.issue(PendingOp{
		Kind:     OpDelete,
		RecordID: id,
		snapshot: e.records[i],
	})
	return &op, nil
}

// Deleting reports whether a delete is in flight for the record.
func (e *Engine) Deleting(id string) bool {
	opID, ok := e.latest[opKey{recordID: id, slot: "delete"}]
	if !ok {
		return false
	}
	_, pending := e.pending[opID]
	return pending
}

// Saving reports whether a patch is in flight for the given cell.
func (e *Engine) Saving(id string, field Field) bool {
	opID, ok := e.latest[opKey{recordID: id, slot: string(field)}]
	if !ok {
		return false
	}
	_, pending := e.pending[opID]
	return pending
}

// Resolve reconciles a completed store round trip against the working set.
// Success finalizes the optimistic state (and removes the record for
// deletes); failure restores the pre-mutation snapshot verbatim. Unknown or
// superseded operation ids resolve as no-ops.
func (e *Engine) Resolve(id OpID, err error) Outcome {
	op, ok := e.pending[id]
	if !ok {
		return Outcome{}
	}
	delete(e.pending, id)

	key := op.key()
	if e.latest[key] != id {
		// A later operation on the same slot owns the outcome now; neither
		// the stale snapshot nor the stale response may touch the record.
		return Outcome{Op: op}
	}
	delete(e.latest, key)

	out := Outcome{Op: op, Applied: true, Err: err}
	if err == nil {
		if op.Kind == OpDelete {
			if i := e.index(op.RecordID); i >= 0 {
				e.records = append(e.records[:i], e.records[i+1:]...)
				out.Removed = true
			}
		}
		return out
	}

	if op.Kind == OpPatch || op.Kind == OpToggle {
		out.RolledBack = e.rollbackOne(op.RecordID, op.snapshot)
	}
	return out
}

// rollbackOne restores a record verbatim from a prior snapshot.
func (e *Engine) rollbackOne(id string, snapshot api.Customer) bool {
	i := e.index(id)
	if i < 0 {
		return false
	}
	e.records[i] = snapshot
	return true
}

func (e *Engine) issue(op PendingOp) PendingOp {
	e.nextID++
	op.ID = e.nextID
	e.pending[op.ID] = op
	e.latest[op.key()] = op.ID
	return op
}

func (e *Engine) index(id string) int {
	for i := range e.records {
		if e.records[i].ID == id {
			return i
		}
	}
	return -1
}
