package table

import (
	"errors"
	"reflect"
	"testing"

	"github.com/haukew/kartei/internal/api"
)

func newEngineWith(t *testing.T, records []api.Customer) *Engine {
	t.Helper()
	e := New()
	e.ReplaceAll(records)
	return e
}

func TestCommitEdit_OptimisticThenConfirmed(t *testing.T) {
	e := newEngineWith(t, sampleRecords())

	if err := e.StartEdit("1", FieldCity); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	sess, ok := e.Session()
	if !ok || sess.Draft != "Berlin" {
		t.Fatalf("session = %#v, want draft seeded with current value", sess)
	}

	e.SetDraft("München")
	op, err := e.CommitEdit()
	if err != nil {
		t.Fatalf("CommitEdit: %v", err)
	}
	if op == nil {
		t.Fatalf("CommitEdit returned no operation")
	}
	if !reflect.DeepEqual(op.Patch, api.CustomerPatch{"city": "München"}) {
		t.Fatalf("patch = %#v, want only the changed field", op.Patch)
	}

	// Optimistic: visible before the store answers.
	rec, _ := e.Get("1")
	if rec.City == nil || *rec.City != "München" {
		t.Fatalf("city = %v, want optimistic München", rec.City)
	}
	if !e.Saving("1", FieldCity) {
		t.Fatalf("Saving = false during in-flight patch")
	}
	if _, open := e.Session(); open {
		t.Fatalf("session still open after commit")
	}

	out := e.Resolve(op.ID, nil)
	if !out.Applied || out.Err != nil || out.RolledBack {
		t.Fatalf("outcome = %#v, want clean success", out)
	}
	rec, _ = e.Get("1")
	if rec.City == nil || *rec.City != "München" {
		t.Fatalf("city reverted on success: %v", rec.City)
	}
	if e.Saving("1", FieldCity) {
		t.Fatalf("Saving = true after resolution")
	}
}

func TestCommitEdit_FailureRollsBackVerbatim(t *testing.T) {
	e := newEngineWith(t, sampleRecords())
	before, _ := e.Get("1")

	if err := e.StartEdit("1", FieldCity); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	e.SetDraft("München")
	op, err := e.CommitEdit()
	if err != nil || op == nil {
		t.Fatalf("CommitEdit: op=%v err=%v", op, err)
	}

	out := e.Resolve(op.ID, errors.New("store rejected"))
	if !out.Applied || out.Err == nil || !out.RolledBack {
		t.Fatalf("outcome = %#v, want applied rollback with error", out)
	}

	after, _ := e.Get("1")
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("record not restored verbatim: before=%#v after=%#v", before, after)
	}
}

func TestCommitEdit_ValidationKeepsDraftAndRecord(t *testing.T) {
	e := newEngineWith(t, sampleRecords())
	before, _ := e.Get("1")

	if err := e.StartEdit("1", FieldLegacyID); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	e.SetDraft("-3")
	op, err := e.CommitEdit()
	if op != nil {
		t.Fatalf("operation issued for invalid draft: %#v", op)
	}
	if !IsValidation(err) {
		t.Fatalf("err = %v, want ValidationError", err)
	}

	after, _ := e.Get("1")
	if !reflect.DeepEqual(before, after) {
		t.Fatalf("record changed on rejected draft")
	}
	sess, open := e.Session()
	if !open || sess.Draft != "-3" {
		t.Fatalf("session = %#v open=%v, want stale draft retained", sess, open)
	}
}

func TestCommitEdit_NoopShortCircuit(t *testing.T) {
	e := newEngineWith(t, sampleRecords())

	if err := e.StartEdit("1", FieldCity); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	e.SetDraft("  Berlin  ") // normalizes to the stored value
	op, err := e.CommitEdit()
	if op != nil || err != nil {
		t.Fatalf("no-op commit issued op=%v err=%v", op, err)
	}
	if _, open := e.Session(); open {
		t.Fatalf("session not discarded on no-op")
	}
}

func TestCommitEdit_ClearingFieldPatchesNull(t *testing.T) {
	e := newEngineWith(t, sampleRecords())

	if err := e.StartEdit("1", FieldLegacyID); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	e.SetDraft("   ")
	op, err := e.CommitEdit()
	if err != nil || op == nil {
		t.Fatalf("CommitEdit: op=%v err=%v", op, err)
	}
	if v, present := op.Patch["legacyId"]; !present || v != nil {
		t.Fatalf("patch = %#v, want explicit nil legacyId", op.Patch)
	}
	rec, _ := e.Get("1")
	if rec.LegacyID != nil {
		t.Fatalf("legacyId = %v, want cleared", *rec.LegacyID)
	}
}

func TestToggleActive_RoundTripAndRollback(t *testing.T) {
	e := newEngineWith(t, sampleRecords())

	op, err := e.ToggleActive("1")
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}
	if !reflect.DeepEqual(op.Patch, api.CustomerPatch{"isActive": false}) {
		t.Fatalf("patch = %#v, want flipped isActive", op.Patch)
	}
	if rec, _ := e.Get("1"); rec.IsActive {
		t.Fatalf("toggle not applied optimistically")
	}

	out := e.Resolve(op.ID, errors.New("network down"))
	if !out.RolledBack {
		t.Fatalf("outcome = %#v, want rollback", out)
	}
	if rec, _ := e.Get("1"); !rec.IsActive {
		t.Fatalf("isActive not restored after failure")
	}
}

func TestDelete_IsNotOptimistic(t *testing.T) {
	e := newEngineWith(t, sampleRecords())

	op, err := e.BeginDelete("2")
	if err != nil {
		t.Fatalf("BeginDelete: %v", err)
	}
	if _, ok := e.Get("2"); !ok {
		t.Fatalf("record removed before the store confirmed")
	}
	if !e.Deleting("2") {
		t.Fatalf("Deleting = false during in-flight delete")
	}

	out := e.Resolve(op.ID, nil)
	if !out.Removed {
		t.Fatalf("outcome = %#v, want removal", out)
	}
	if _, ok := e.Get("2"); ok {
		t.Fatalf("record still present after confirmed delete")
	}
}

func TestDelete_FailureKeepsRecord(t *testing.T) {
	e := newEngineWith(t, sampleRecords())

	op, err := e.BeginDelete("2")
	if err != nil {
		t.Fatalf("BeginDelete: %v", err)
	}
	out := e.Resolve(op.ID, errors.New("store rejected"))
	if out.Removed || out.RolledBack {
		t.Fatalf("outcome = %#v, want record untouched", out)
	}
	if _, ok := e.Get("2"); !ok {
		t.Fatalf("record lost on failed delete")
	}
}

func TestResolve_UnknownAndSupersededTokensAreNoops(t *testing.T) {
	e := newEngineWith(t, sampleRecords())

	out := e.Resolve(OpID(999), nil)
	if out.Applied {
		t.Fatalf("unknown token applied: %#v", out)
	}

	// Two rapid commits on the same cell: the first response must not win.
	if err := e.StartEdit("1", FieldCity); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	e.SetDraft("München")
	first, err := e.CommitEdit()
	if err != nil || first == nil {
		t.Fatalf("first commit: op=%v err=%v", first, err)
	}
	if err := e.StartEdit("1", FieldCity); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	e.SetDraft("Köln")
	second, err := e.CommitEdit()
	if err != nil || second == nil {
		t.Fatalf("second commit: op=%v err=%v", second, err)
	}

	// The first round trip fails late; its stale snapshot must not revert
	// the later edit.
	out = e.Resolve(first.ID, errors.New("timeout"))
	if out.Applied || out.RolledBack {
		t.Fatalf("superseded resolution applied: %#v", out)
	}
	if rec, _ := e.Get("1"); rec.City == nil || *rec.City != "Köln" {
		t.Fatalf("city = %v, want Köln untouched by stale rollback", rec.City)
	}

	out = e.Resolve(second.ID, nil)
	if !out.Applied {
		t.Fatalf("latest resolution dropped: %#v", out)
	}
}

func TestOperationsOnDifferentRecordsOverlap(t *testing.T) {
	e := newEngineWith(t, sampleRecords())

	opA, err := e.ToggleActive("1")
	if err != nil {
		t.Fatalf("ToggleActive(1): %v", err)
	}
	opB, err := e.ToggleActive("2")
	if err != nil {
		t.Fatalf("ToggleActive(2): %v", err)
	}

	// A's failure rolls back record 1 only.
	if out := e.Resolve(opA.ID, errors.New("boom")); !out.RolledBack {
		t.Fatalf("outcome A = %#v", out)
	}
	if out := e.Resolve(opB.ID, nil); !out.Applied || out.Err != nil {
		t.Fatalf("outcome B = %#v", out)
	}

	recA, _ := e.Get("1")
	recB, _ := e.Get("2")
	if !recA.IsActive {
		t.Fatalf("record 1 not rolled back")
	}
	if !recB.IsActive {
		t.Fatalf("record 2 lost its confirmed toggle")
	}
}

func TestPreconditionViolationsSurfaceErrNotFound(t *testing.T) {
	e := newEngineWith(t, sampleRecords())

	if err := e.StartEdit("missing", FieldName); !errors.Is(err, ErrNotFound) {
		t.Fatalf("StartEdit err = %v, want ErrNotFound", err)
	}
	if _, err := e.ToggleActive("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ToggleActive err = %v, want ErrNotFound", err)
	}
	if _, err := e.BeginDelete("missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("BeginDelete err = %v, want ErrNotFound", err)
	}
}

func TestColumnVisibility_DefaultsAndInstall(t *testing.T) {
	e := New()

	for _, c := range AllColumns {
		if !e.ColumnVisible(c) {
			t.Fatalf("column %s not visible by default", c)
		}
	}

	e.InstallColumns(map[Column]bool{
		ColumnPhone: false,
		"bogus":     false, // unknown keys are dropped
	})
	if e.ColumnVisible(ColumnPhone) {
		t.Fatalf("phone column still visible after install")
	}
	cols := e.VisibleColumns()
	if len(cols) != len(AllColumns) {
		t.Fatalf("mapping has %d entries, want one per known column", len(cols))
	}
	if _, ok := cols["bogus"]; ok {
		t.Fatalf("unknown column survived install")
	}
}

func TestReplaceAll_DropsSessionAndPending(t *testing.T) {
	e := newEngineWith(t, sampleRecords())

	if err := e.StartEdit("1", FieldName); err != nil {
		t.Fatalf("StartEdit: %v", err)
	}
	op, err := e.ToggleActive("2")
	if err != nil {
		t.Fatalf("ToggleActive: %v", err)
	}

	e.ReplaceAll(sampleRecords())
	if _, open := e.Session(); open {
		t.Fatalf("session survived ReplaceAll")
	}
	if out := e.Resolve(op.ID, nil); out.Applied {
		t.Fatalf("pre-replace operation still applied: %#v", out)
	}
}
