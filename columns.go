package smartsheet

// ColumnType is the main type of a column.
type ColumnType string

const (
	AbstractDateTime ColumnType = "ABSTRACT_DATETIME"
	Checkbox         ColumnType = "CHECKBOX"
	ContactList      ColumnType = "CONTACT_LIST"
	Date             ColumnType = "DATE"
	DateTime         ColumnType = "DATETIME"
	Duration         ColumnType = "DURATION"
	MultiContactList ColumnType = "MULTI_CONTACT_LIST"
	MultiPicklist    ColumnType = "MULTI_PICKLIST"
	Picklist         ColumnType = "PICKLIST"
	Predecessor      ColumnType = "PREDECESSOR"
	TextNumber       ColumnType = "TEXT_NUMBER"
)

// ColumnTypes lists every column type the service defines.
var ColumnTypes = []ColumnType{
	AbstractDateTime, Checkbox, ContactList, Date, DateTime, Duration,
	MultiContactList, MultiPicklist, Picklist, Predecessor, TextNumber,
}

// Valid reports whether t is a known column type.
func (t ColumnType) Valid() bool {
	for _, c := range ColumnTypes {
		if c == t {
			return true
		}
	}
	return false
}

// RequiresOptions reports whether the type is a choice list that must carry
// an option set.
func (t ColumnType) RequiresOptions() bool {
	return t == Picklist || t == MultiPicklist
}

// SystemColumnType adds service-maintained behavior on top of a column type:
// auto numbering and created/modified stamps. System columns are read-only.
type SystemColumnType string

const (
	AutoNumber   SystemColumnType = "AUTO_NUMBER"
	CreatedBy    SystemColumnType = "CREATED_BY"
	CreatedDate  SystemColumnType = "CREATED_DATE"
	ModifiedBy   SystemColumnType = "MODIFIED_BY"
	ModifiedDate SystemColumnType = "MODIFIED_DATE"
)

// Symbol is a display symbol for a picklist column.
type Symbol string

const StarRating Symbol = "STAR_RATING"

// AutoNumberFormat configures an AUTO_NUMBER system column.
type AutoNumberFormat struct {
	Prefix string `json:"prefix,omitempty" yaml:"prefix"`
	Suffix string `json:"suffix,omitempty" yaml:"suffix"`
	Fill   string `json:"fill,omitempty" yaml:"fill"` // string of zeros, e.g. "0000"
}

// NewColumn is the payload for creating a column.
type NewColumn struct {
	Title            string            `json:"title"`
	Type             ColumnType        `json:"type"`
	SystemColumnType SystemColumnType  `json:"systemColumnType,omitempty"`
	Primary          bool              `json:"primary,omitempty"`
	Options          []string          `json:"options,omitempty"`
	Symbol           Symbol            `json:"symbol,omitempty"`
	Validation       bool              `json:"validation,omitempty"`
	AutoNumberFormat *AutoNumberFormat `json:"autoNumberFormat,omitempty"`
	Format           string            `json:"format,omitempty"`
}

// Column is a column of a live sheet. The id is assigned by the service and
// never changes.
type Column struct {
	ID               int64             `json:"id"`
	Index            int               `json:"index"`
	Title            string            `json:"title"`
	Type             ColumnType        `json:"type"`
	SystemColumnType SystemColumnType  `json:"systemColumnType,omitempty"`
	Primary          bool              `json:"primary,omitempty"`
	Options          []string          `json:"options,omitempty"`
	Symbol           Symbol            `json:"symbol,omitempty"`
	Validation       bool              `json:"validation,omitempty"`
	AutoNumberFormat *AutoNumberFormat `json:"autoNumberFormat,omitempty"`
	Format           string            `json:"format,omitempty"`
	Hidden           bool              `json:"hidden,omitempty"`
	Width            int               `json:"width,omitempty"`
}
