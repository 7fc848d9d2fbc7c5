package query

// Column is a filterable column of the steps table.
type Column string

const (
	ColumnKind  Column = "kind"
	ColumnI     Column = "i"
	ColumnJ     Column = "j"
	ColumnValue Column = "value"
)

// Columns returns every filterable column.
func Columns() []Column {
	return []Column{ColumnKind, ColumnI, ColumnJ, ColumnValue}
}

// Predicate is a filter condition.
//
// This is a sealed interface - only types in this package implement it,
// which keeps the compiler's type switch exhaustive.
type Predicate interface {
	predicateNode()
}

// Equals matches rows where Column equals Value.
//
// Value is a kind name (string) for ColumnKind and an int64 for the
// positional columns. Rows whose column is NULL (value on non-overwrite
// steps) never match.
type Equals struct {
	Column Column
	Value  any
}

func (Equals) predicateNode() {}

// In matches rows where Column equals any of Values. Values must be
// non-empty.
type In struct {
	Column Column
	Values []any
}

func (In) predicateNode() {}

// And matches rows satisfying every predicate. An empty And matches all rows.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Filter selects steps of one stored run.
type Filter struct {
	// RunID is required.
	RunID string
	// Where is optional; nil matches every step of the run.
	Where Predicate
	// Limit caps the result size; zero means unlimited.
	Limit int
}
