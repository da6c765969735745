package cli

import "github.com/cdot/divelog/internal/client/models"

// column describes one cell of a form row. The column set is a UI concern;
// the core only sees the schema indexes below.
type column struct {
	head     string
	title    string
	checkbox bool
}

var columns = []column{
	{head: "Name", title: "Diver name"},
	{head: "Grade", title: "Diver qualification"},
	{head: "Led", title: "Was this diver leading the pair?", checkbox: true},
	{head: "CTC", title: "Current Tissue Code"},
	{head: "Cylinders", title: "What cylinders were used"},
	{head: "Gas in", title: "Bar"},
	{head: "Time in", title: "HH:MM"},
	{head: "Time out", title: "HH:MM"},
	{head: "Gas out", title: "Bar"},
	{head: "Max depth", title: "metres"},
	{head: "Dive time", title: "minutes"},
}

// formRows is the number of editable rows on a page.
const formRows = 10

func columnIndex(head string) int {
	for i, c := range columns {
		if c.head == head {
			return i
		}
	}
	return -1
}

func formSchema() models.Schema {
	return models.Schema{
		TimeIn:   columnIndex("Time in"),
		TimeOut:  columnIndex("Time out"),
		DiveTime: columnIndex("Dive time"),
	}
}

// newFormSnapshot builds the blank form grid the logbook binds to.
func newFormSnapshot() *models.Snapshot {
	snap := models.NewSnapshot(formRows, len(columns), formSchema())
	for i := range snap.Rows {
		for c := range snap.Rows[i] {
			snap.Rows[i][c].Checkbox = columns[c].checkbox
		}
	}
	return snap
}
