package models

// Cell is one editable cell of the form grid. A cell is either textual or a
// checkbox affordance; the core does not care about any other widget detail.
type Cell struct {
	Text     string
	Checked  bool
	Checkbox bool
}

// Value returns the scalar the cell currently holds.
func (c Cell) Value() any {
	if c.Checkbox {
		return c.Checked
	}
	return c.Text
}

// Schema names the columns that capture needs to recognise. An index of -1
// means the column is absent from the form.
type Schema struct {
	TimeIn   int
	TimeOut  int
	DiveTime int
}

// NoSchema is a Schema with every special column absent.
var NoSchema = Schema{TimeIn: -1, TimeOut: -1, DiveTime: -1}

// Snapshot is the form state a Page captures from and restores to. It is
// passed in explicitly; the core never touches a presentation layer.
type Snapshot struct {
	// CurrentUID identifies the Page the form is bound to.
	CurrentUID int64

	Site     string
	Date     string
	Manager  string
	Boat     string
	Weather  string
	Comments string

	Rows   [][]Cell
	Schema Schema
}

// NewSnapshot builds a blank form grid of rows×columns textual cells.
func NewSnapshot(rows, columns int, schema Schema) *Snapshot {
	grid := make([][]Cell, rows)
	for i := range grid {
		grid[i] = make([]Cell, columns)
	}
	return &Snapshot{Rows: grid, Schema: schema}
}
