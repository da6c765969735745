package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 6, 15, 10, 30, 0, 0, time.UTC)

// diveSchema mirrors the form layout used by the CLI: name, led, time in,
// time out, dive time.
var diveSchema = Schema{TimeIn: 2, TimeOut: 3, DiveTime: 4}

func textRow(values ...string) []Cell {
	row := make([]Cell, len(values))
	for i, v := range values {
		row[i] = Cell{Text: v}
	}
	return row
}

func TestNewBlankPage_Defaults(t *testing.T) {
	p := NewBlankPage(testTime)

	assert.Equal(t, testTime.UnixMilli(), p.UID)
	assert.Equal(t, "2024-06-15", p.Date)
	assert.Empty(t, p.Site)
	assert.Empty(t, p.Rows)
	assert.False(t, p.WorthUploading())
}

func TestCaptureFrom_DropsRowsWithEmptyLeadingField(t *testing.T) {
	snap := NewSnapshot(4, 5, diveSchema)
	snap.Rows[0] = textRow("Alice", "A", "", "", "")
	snap.Rows[1] = textRow("", "B", "", "", "")
	snap.Rows[2] = textRow("   ", "C", "", "", "")
	snap.Rows[3] = textRow("Bob", "D", "", "", "")

	p := NewBlankPage(testTime).CaptureFrom(snap)

	require.Len(t, p.Rows, 2)
	assert.Equal(t, "Alice", p.Rows[0][0])
	assert.Equal(t, "Bob", p.Rows[1][0])
	assert.True(t, p.WorthUploading())
}

func TestCaptureFrom_ComputesDiveTime(t *testing.T) {
	tests := []struct {
		name    string
		timeIn  string
		timeOut string
		want    string
	}{
		{"same day", "10:00", "10:45", "45"},
		{"midnight wrap", "23:50", "00:10", "20"},
		{"exact hour", "09:00", "10:00", "60"},
		{"zero duration", "12:00", "12:00", "0"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			snap := NewSnapshot(1, 5, diveSchema)
			snap.Rows[0] = textRow("Alice", "A", tc.timeIn, tc.timeOut, "")

			p := NewBlankPage(testTime).CaptureFrom(snap)

			require.Len(t, p.Rows, 1)
			assert.Equal(t, tc.want, p.Rows[0][4])
			// The computed value is pushed back into the form as well.
			assert.Equal(t, tc.want, snap.Rows[0][4].Text)
		})
	}
}

func TestCaptureFrom_LeavesDiveTimeWhenTimesMissing(t *testing.T) {
	snap := NewSnapshot(1, 5, diveSchema)
	snap.Rows[0] = textRow("Alice", "A", "10:00", "", "99")

	p := NewBlankPage(testTime).CaptureFrom(snap)

	require.Len(t, p.Rows, 1)
	assert.Equal(t, "99", p.Rows[0][4])
}

func TestCaptureFrom_CheckboxCapturesAsBool(t *testing.T) {
	snap := NewSnapshot(1, 3, NoSchema)
	snap.Rows[0] = []Cell{
		{Text: "Alice"},
		{Checkbox: true, Checked: true},
		{Checkbox: true},
	}

	p := NewBlankPage(testTime).CaptureFrom(snap)

	require.Len(t, p.Rows, 1)
	assert.Equal(t, Row{"Alice", true, false}, p.Rows[0])
}

func TestCaptureFrom_DefaultsMissingDateToCreationDate(t *testing.T) {
	snap := NewSnapshot(1, 1, NoSchema)
	snap.Rows[0] = textRow("Alice")

	p := NewBlankPage(testTime).CaptureFrom(snap)
	assert.Equal(t, "2024-06-15", p.Date)

	snap.Date = "2024-01-01"
	p.CaptureFrom(snap)
	assert.Equal(t, "2024-01-01", p.Date)
}

func TestCapturePage_BindsSnapshotToFreshUID(t *testing.T) {
	snap := NewSnapshot(1, 1, NoSchema)
	snap.Rows[0] = textRow("Alice")

	p := CapturePage(snap, testTime)

	assert.Equal(t, testTime.UnixMilli(), p.UID)
	assert.Equal(t, p.UID, snap.CurrentUID)
}

func TestRestoreTo_ClearsStaleCells(t *testing.T) {
	snap := NewSnapshot(3, 3, NoSchema)
	for i := range snap.Rows {
		snap.Rows[i] = []Cell{
			{Text: "stale"},
			{Text: "stale"},
			{Checkbox: true, Checked: true},
		}
	}

	p := NewBlankPage(testTime)
	p.Site = "Reef"
	p.Rows = []Row{{"Alice", "A", true}}

	p.RestoreTo(snap)

	assert.Equal(t, p.UID, snap.CurrentUID)
	assert.Equal(t, "Reef", snap.Site)

	assert.Equal(t, "Alice", snap.Rows[0][0].Text)
	assert.True(t, snap.Rows[0][2].Checked)

	// Rows beyond the stored data must be blank.
	for i := 1; i < 3; i++ {
		for c := 0; c < 3; c++ {
			assert.Empty(t, snap.Rows[i][c].Text, "row %d col %d", i, c)
			assert.False(t, snap.Rows[i][c].Checked, "row %d col %d", i, c)
		}
	}
}

func TestPrepareUpload_OneRecordPerRow(t *testing.T) {
	p := NewBlankPage(testTime)
	p.Date = "2024-01-01"
	p.Site = "Reef"
	p.Manager = "Mgr"
	p.Boat = "Boaty"
	p.Weather = "Calm"
	p.Comments = "none"
	p.Rows = []Row{
		{"Alice", "A", true},
		{"Bob", "B", false},
	}

	records := p.PrepareUpload()

	require.Len(t, records, 2)
	assert.Equal(t, Row{"2024-01-01", "Reef", "Alice", "A", true, "Mgr", "Boaty", "Calm", "none"}, records[0])
	assert.Equal(t, Row{"2024-01-01", "Reef", "Bob", "B", false, "Mgr", "Boaty", "Calm", "none"}, records[1])
}

func TestPrepareUpload_EmptyPage(t *testing.T) {
	assert.Empty(t, NewBlankPage(testTime).PrepareUpload())
}

func TestDescribe(t *testing.T) {
	p := NewBlankPage(testTime)
	assert.Equal(t, "?:2024-06-15", p.Describe())

	p.Site = "Reef"
	assert.Equal(t, "Reef:2024-06-15", p.Describe())
}

func TestDiveMinutes(t *testing.T) {
	tests := []struct {
		in, out string
		want    int
		ok      bool
	}{
		{"23:50", "00:10", 20, true},
		{"10:00", "11:30", 90, true},
		{"00:00", "23:59", 1439, true},
		{"bad", "10:00", 0, false},
		{"10:00", "", 0, false},
	}

	for _, tc := range tests {
		got, ok := DiveMinutes(tc.in, tc.out)
		assert.Equal(t, tc.ok, ok, "%s->%s", tc.in, tc.out)
		assert.Equal(t, tc.want, got, "%s->%s", tc.in, tc.out)
	}
}
