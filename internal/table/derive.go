package table

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/haukew/kartei/internal/api"
)

// StatusFilter narrows the table to active or inactive records.
type StatusFilter string

const (
	StatusAll      StatusFilter = "all"
	StatusActive   StatusFilter = "active"
	StatusInactive StatusFilter = "inactive"
)

// SortKey names a sortable column.
type SortKey string

const (
	SortByName     SortKey = "name"
	SortByCity     SortKey = "city"
	SortByZipCode  SortKey = "zipCode"
	SortByLegacyID SortKey = "legacyId"
	SortByIsActive SortKey = "isActive"
)

// SortDir is the sort direction.
type SortDir string

const (
	SortAsc  SortDir = "asc"
	SortDesc SortDir = "desc"
)

// SortKeys lists the sortable columns in cycle order.
var SortKeys = []SortKey{SortByName, SortByCity, SortByZipCode, SortByLegacyID, SortByIsActive}

// ViewConfig is the session-local filter and sort state. Column visibility is
// a render-time projection and deliberately not part of the derivation input.
type ViewConfig struct {
	Query   string
	Status  StatusFilter
	SortKey SortKey
	SortDir SortDir
}

// DefaultViewConfig matches the table's initial presentation.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		Status:  StatusAll,
		SortKey: SortByName,
		SortDir: SortAsc,
	}
}

// NewCollator builds the comparator used for string-keyed sorts. German
// collation keeps umlauts near their base letters.
func NewCollator() *collate.Collator {
	return collate.New(language.German, collate.IgnoreCase)
}

// Derive computes the filtered, sorted row sequence for rendering. It is a
// pure function of its inputs: the input slice is never modified and the
// result is freshly allocated on every call.
func Derive(records []api.Customer, cfg ViewConfig, col *collate.Collator) []api.Customer {
	query := strings.ToLower(strings.TrimSpace(cfg.Query))

	filtered := make([]api.Customer, 0, len(records))
	for _, c := range records {
		if !matchesStatus(c, cfg.Status) {
			continue
		}
		if query != "" && !matchesQuery(c, query) {
			continue
		}
		filtered = append(filtered, c)
	}

	dir := 1
	if cfg.SortDir == SortDesc {
		dir = -1
	}
	sort.SliceStable(filtered, func(i, j int) bool {
		return dir*compareRecords(filtered[i], filtered[j], cfg.SortKey, col) < 0
	})
	return filtered
}

func matchesStatus(c api.Customer, filter StatusFilter) bool {
	switch filter {
	case StatusActive:
		return c.IsActive
	case StatusInactive:
		return !c.IsActive
	}
	return true
}

// matchesQuery checks the case-folded haystack of every searchable field,
// including the decimal rendering of the legacy customer number.
func matchesQuery(c api.Customer, query string) bool {
	parts := []string{
		c.Name,
		deref(c.City),
		deref(c.ZipCode),
		deref(c.Street),
		deref(c.Email),
		deref(c.Phone),
		DisplayValue(c, FieldLegacyID),
	}
	hay := strings.ToLower(strings.Join(parts, " "))
	return strings.Contains(hay, query)
}

func compareRecords(a, b api.Customer, key SortKey, col *collate.Collator) int {
	switch key {
	case SortByName:
		return compareStrings(a.Name, b.Name, col)
	case SortByCity:
		return compareStrings(deref(a.City), deref(b.City), col)
	case SortByZipCode:
		return compareStrings(deref(a.ZipCode), deref(b.ZipCode), col)
	case SortByLegacyID:
		return compareLegacyIDs(a.LegacyID, b.LegacyID)
	case SortByIsActive:
		// Active sorts before inactive in ascending order.
		return boolRank(b.IsActive) - boolRank(a.IsActive)
	}
	return 0
}

func compareStrings(a, b string, col *collate.Collator) int {
	if col != nil {
		return col.CompareString(strings.ToLower(a), strings.ToLower(b))
	}
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareLegacyIDs places cleared numbers after all concrete values in
// ascending order.
func compareLegacyIDs(a, b *int64) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case *a < *b:
		return -1
	case *a > *b:
		return 1
	}
	return 0
}

func boolRank(v bool) int {
	if v {
		return 1
	}
	return 0
}
