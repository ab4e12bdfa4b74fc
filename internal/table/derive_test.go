package table

import (
	"reflect"
	"testing"

	"github.com/haukew/kartei/internal/api"
)

func strp(s string) *string { return &s }
func intp(n int64) *int64   { return &n }

func sampleRecords() []api.Customer {
	return []api.Customer{
		{ID: "1", Name: "Acme", City: strp("Berlin"), IsActive: true, LegacyID: intp(5)},
		{ID: "2", Name: "Zeta", City: strp("Hamburg"), IsActive: false},
		{ID: "3", Name: "Öko Praxis", City: strp("Oldenburg"), IsActive: true, LegacyID: intp(2)},
	}
}

func ids(rows []api.Customer) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.ID
	}
	return out
}

func TestDerive_IsPure(t *testing.T) {
	records := sampleRecords()
	cfg := ViewConfig{Query: "a", Status: StatusAll, SortKey: SortByName, SortDir: SortAsc}
	col := NewCollator()

	first := Derive(records, cfg, col)
	second := Derive(records, cfg, col)
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("derive not idempotent: %v vs %v", ids(first), ids(second))
	}
	if !reflect.DeepEqual(records, sampleRecords()) {
		t.Fatalf("derive mutated its input: %#v", records)
	}
}

func TestDerive_StatusFilter(t *testing.T) {
	records := []api.Customer{
		{ID: "1", Name: "Acme", IsActive: true, LegacyID: intp(5)},
		{ID: "2", Name: "Zeta", IsActive: false},
	}
	col := NewCollator()

	cases := []struct {
		status StatusFilter
		want   []string
	}{
		{StatusActive, []string{"1"}},
		{StatusInactive, []string{"2"}},
		{StatusAll, []string{"1", "2"}},
	}
	for _, tc := range cases {
		cfg := ViewConfig{Status: tc.status, SortKey: SortByName, SortDir: SortAsc}
		got := ids(Derive(records, cfg, col))
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("status %q: rows = %v, want %v", tc.status, got, tc.want)
		}
	}
}

func TestDerive_QueryMatchesAnyFieldCaseInsensitively(t *testing.T) {
	records := sampleRecords()
	col := NewCollator()

	cases := []struct {
		query string
		want  []string
	}{
		{"ZeTa", []string{"2"}},
		{"berlin", []string{"1"}},
		{"5", []string{"1"}}, // legacy customer number
		{"", []string{"1", "3", "2"}},
		{"nothing-matches", nil},
	}
	for _, tc := range cases {
		cfg := ViewConfig{Query: tc.query, Status: StatusAll, SortKey: SortByName, SortDir: SortAsc}
		got := ids(Derive(records, cfg, col))
		if len(got) == 0 && len(tc.want) == 0 {
			continue
		}
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("query %q: rows = %v, want %v", tc.query, got, tc.want)
		}
	}
}

func TestDerive_FilteredRowsSatisfyPredicates(t *testing.T) {
	records := sampleRecords()
	cfg := ViewConfig{Query: "o", Status: StatusActive, SortKey: SortByName, SortDir: SortAsc}

	for _, row := range Derive(records, cfg, NewCollator()) {
		if !row.IsActive {
			t.Fatalf("row %s fails the status predicate", row.ID)
		}
		if !matchesQuery(row, "o") {
			t.Fatalf("row %s fails the substring predicate", row.ID)
		}
	}
}

func TestDerive_GermanCollationSortsUmlautNearBase(t *testing.T) {
	records := []api.Customer{
		{ID: "p", Name: "Peters"},
		{ID: "o1", Name: "Öko Praxis"},
		{ID: "o2", Name: "Obermann"},
	}
	cfg := ViewConfig{Status: StatusAll, SortKey: SortByName, SortDir: SortAsc}
	got := ids(Derive(records, cfg, NewCollator()))
	// "Ö" collates with "O": both O-names precede Peters.
	want := []string{"o2", "o1", "p"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
}

func TestDerive_LegacyIDNullSortsLast(t *testing.T) {
	records := []api.Customer{
		{ID: "null", Name: "Zeta"},
		{ID: "five", Name: "Acme", LegacyID: intp(5)},
	}
	cfg := ViewConfig{Status: StatusAll, SortKey: SortByLegacyID, SortDir: SortAsc}
	got := ids(Derive(records, cfg, NewCollator()))
	want := []string{"five", "null"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("asc rows = %v, want %v", got, want)
	}
}

func TestDerive_ActiveSortsBeforeInactive(t *testing.T) {
	records := []api.Customer{
		{ID: "off", Name: "Acme", IsActive: false},
		{ID: "on", Name: "Zeta", IsActive: true},
	}
	cfg := ViewConfig{Status: StatusAll, SortKey: SortByIsActive, SortDir: SortAsc}
	got := ids(Derive(records, cfg, NewCollator()))
	want := []string{"on", "off"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("rows = %v, want %v", got, want)
	}
}

func TestDerive_DescReversesOrder(t *testing.T) {
	records := sampleRecords()
	col := NewCollator()

	asc := ids(Derive(records, ViewConfig{Status: StatusAll, SortKey: SortByName, SortDir: SortAsc}, col))
	desc := ids(Derive(records, ViewConfig{Status: StatusAll, SortKey: SortByName, SortDir: SortDesc}, col))

	for i := range asc {
		if asc[i] != desc[len(desc)-1-i] {
			t.Fatalf("desc is not the reverse of asc: %v vs %v", asc, desc)
		}
	}
}

func TestDerive_SortIsStableForEqualKeys(t *testing.T) {
	records := []api.Customer{
		{ID: "a", Name: "Same", LegacyID: intp(1)},
		{ID: "b", Name: "Same", LegacyID: intp(2)},
		{ID: "c", Name: "Same", LegacyID: intp(3)},
	}
	cfg := ViewConfig{Status: StatusAll, SortKey: SortByName, SortDir: SortAsc}
	got := ids(Derive(records, cfg, NewCollator()))
	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("equal-key order not preserved: %v, want %v", got, want)
	}
}
