package catalog

// DataType identifies the value type of a searchable property column.
type DataType string

const (
	String   DataType = "STRING"
	DateTime DataType = "DATETIME"
	Int16    DataType = "INT16"
	Int32    DataType = "INT32"
	Int64    DataType = "INT64"
	Decimal  DataType = "DECIMAL"
	Double   DataType = "DOUBLE"
	Single   DataType = "SINGLE"
	Byte     DataType = "BYTE"
	Boolean  DataType = "BOOLEAN"
	Guid     DataType = "GUID"
	Binary   DataType = "BINARY"
)

// IsNumeric reports whether the data type holds a numeric value.
func (d DataType) IsNumeric() bool {
	switch d {
	case Int16, Int32, Int64, Decimal, Double, Single, Byte:
		return true
	}
	return false
}

// ColumnRef describes the physical column a search token resolves to.
type ColumnRef struct {
	// ColumnName is the physical column name on the resource table.
	ColumnName string `json:"column_name" msgpack:"column_name" db:"column_name"`

	// DataType is the column's value type.
	DataType DataType `json:"data_type" msgpack:"data_type" db:"data_type"`

	// IsFullTextIndexed indicates the column participates in the full-text
	// index, enabling CONTAINS predicates instead of LIKE patterns.
	IsFullTextIndexed bool `json:"full_text_indexed" msgpack:"full_text_indexed" db:"full_text_indexed"`

	// MaxLength is the declared column length. Zero means unbounded.
	MaxLength int `json:"max_length" msgpack:"max_length" db:"max_length"`
}

// SpecialToken is a search keyword that expands to several related columns.
// A resource matches the token when any of the columns matches.
type SpecialToken struct {
	Token      string      `json:"token" msgpack:"token"`
	Properties []ColumnRef `json:"properties" msgpack:"properties"`
}

// PredicateInfo describes one relationship a predicate token maps to.
// A single token may map to relationships defined from multiple source types.
type PredicateInfo struct {
	// PredicateName is the relationship name as stored on relationship rows.
	PredicateName string `json:"predicate_name" msgpack:"predicate_name" db:"predicate_name"`

	// ReverseRelation indicates the relationship is traversed from object to
	// subject rather than subject to object.
	ReverseRelation bool `json:"reverse_relation" msgpack:"reverse_relation" db:"reverse_relation"`
}
