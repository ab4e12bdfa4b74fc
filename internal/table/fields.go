package table

import (
	"strconv"

	"github.com/haukew/kartei/internal/api"
)

// Field names one editable attribute of a customer record. Values match the
// JSON keys of the store's PATCH body.
type Field string

const (
	FieldLegacyID Field = "legacyId"
	FieldName     Field = "name"
	FieldCity     Field = "city"
	FieldZipCode  Field = "zipCode"
	FieldStreet   Field = "street"
	FieldEmail    Field = "email"
	FieldPhone    Field = "phone"
)

// EditableFields lists the inline-editable fields in table column order.
var EditableFields = []Field{
	FieldName,
	FieldCity,
	FieldZipCode,
	FieldStreet,
	FieldEmail,
	FieldPhone,
	FieldLegacyID,
}

// Column identifies one table column, editable or not.
type Column string

const (
	ColumnName     Column = "name"
	ColumnCity     Column = "city"
	ColumnZipCode  Column = "zipCode"
	ColumnStreet   Column = "street"
	ColumnEmail    Column = "email"
	ColumnPhone    Column = "phone"
	ColumnLegacyID Column = "legacyId"
	ColumnIsActive Column = "isActive"
	ColumnActions  Column = "actions"
)

// AllColumns lists every known column in display order.
var AllColumns = []Column{
	ColumnName,
	ColumnCity,
	ColumnZipCode,
	ColumnStreet,
	ColumnEmail,
	ColumnPhone,
	ColumnLegacyID,
	ColumnIsActive,
	ColumnActions,
}

// DisplayValue renders a field for the table cell and for seeding an edit
// draft. Cleared fields render as the empty string.
func DisplayValue(c api.Customer, f Field) string {
	switch f {
	case FieldLegacyID:
		if c.LegacyID == nil {
			return ""
		}
		return strconv.FormatInt(*c.LegacyID, 10)
	case FieldName:
		return c.Name
	case FieldCity:
		return deref(c.City)
	case FieldZipCode:
		return deref(c.ZipCode)
	case FieldStreet:
		return deref(c.Street)
	case FieldEmail:
		return deref(c.Email)
	case FieldPhone:
		return deref(c.Phone)
	}
	return ""
}

// ValuesEqual reports whether a normalized value equals the stored value of
// the field, with cleared fields comparing equal to nil.
func ValuesEqual(c api.Customer, f Field, value any) bool {
	return fieldValue(c, f) == value
}

// fieldValue returns the stored value of a field in normalized form: nil for
// cleared optional fields, otherwise string or int64. Used for the no-op
// short-circuit comparison.
func fieldValue(c api.Customer, f Field) any {
	switch f {
	case FieldLegacyID:
		if c.LegacyID == nil {
			return nil
		}
		return *c.LegacyID
	case FieldName:
		if c.Name == "" {
			return nil
		}
		return c.Name
	case FieldCity:
		return strPtrValue(c.City)
	case FieldZipCode:
		return strPtrValue(c.ZipCode)
	case FieldStreet:
		return strPtrValue(c.Street)
	case FieldEmail:
		return strPtrValue(c.Email)
	case FieldPhone:
		return strPtrValue(c.Phone)
	}
	return nil
}

// applyFieldValue writes a normalized value into the record in place.
func applyFieldValue(c *api.Customer, f Field, value any) {
	switch f {
	case FieldLegacyID:
		if value == nil {
			c.LegacyID = nil
			return
		}
		n := value.(int64)
		c.LegacyID = &n
	case FieldName:
		if value == nil {
			c.Name = ""
			return
		}
		c.Name = value.(string)
	case FieldCity:
		c.City = toStrPtr(value)
	case FieldZipCode:
		c.ZipCode = toStrPtr(value)
	case FieldStreet:
		c.Street = toStrPtr(value)
	case FieldEmail:
		c.Email = toStrPtr(value)
	case FieldPhone:
		c.Phone = toStrPtr(value)
	}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtrValue(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

func toStrPtr(value any) *string {
	if value == nil {
		return nil
	}
	s := value.(string)
	return &s
}
