// Package models defines the client-side data model of the logbook: the
// Page, its rows, and the form snapshot pages capture from and restore to.
package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the wire format of all date metadata.
const DateLayout = "2006-01-02"

// clockLayout parses the "HH:MM" time-of-day values of the time columns.
const clockLayout = "15:04"

// minutesPerDay bounds the dive-time calculation; an end time earlier than
// the start time means the dive crossed midnight.
const minutesPerDay = 24 * 60

// Row is one record of a Page: an ordered sequence of scalars. Values are
// strings except for checkbox columns, which capture as bool.
type Row []any

// Page is one capturable sheet of tabular dive data plus shared metadata.
// UID is the creation timestamp in milliseconds and never changes.
type Page struct {
	UID      int64  `json:"uid"`
	Date     string `json:"date"`
	Site     string `json:"site"`
	Manager  string `json:"manager"`
	Boat     string `json:"boat"`
	Weather  string `json:"weather"`
	Comments string `json:"comments"`
	Rows     []Row  `json:"rows"`
}

// NewBlankPage returns a fresh Page with defaulted metadata: UID taken from
// now, date today, everything else empty.
func NewBlankPage(now time.Time) *Page {
	return &Page{
		UID:  now.UnixMilli(),
		Date: now.Format(DateLayout),
		Rows: []Row{},
	}
}

// CapturePage assigns a fresh UID and fills the Page from the form snapshot.
func CapturePage(snap *Snapshot, now time.Time) *Page {
	p := &Page{UID: now.UnixMilli()}
	snap.CurrentUID = p.UID
	p.CaptureFrom(snap)
	return p
}

// CreationDate returns the Page's creation day in the wire date format.
func (p *Page) CreationDate() string {
	return time.UnixMilli(p.UID).Format(DateLayout)
}

// CaptureFrom re-reads every bound field from the snapshot. Dive time is
// recomputed for each row that has both time values, and written back into
// the snapshot so the user sees it. Rows with an empty leading field are
// dropped. A missing date defaults to the Page's creation date.
//
// The caller is responsible for persisting the Page immediately afterwards.
func (p *Page) CaptureFrom(snap *Snapshot) *Page {
	rows := []Row{}
	for i := range snap.Rows {
		computeDiveTime(snap, i)
		cells := snap.Rows[i]
		if len(cells) == 0 || strings.TrimSpace(cells[0].Text) == "" {
			continue
		}
		row := make(Row, len(cells))
		for c, cell := range cells {
			row[c] = cell.Value()
		}
		rows = append(rows, row)
	}

	p.Site = snap.Site
	p.Date = snap.Date
	p.Manager = snap.Manager
	p.Boat = snap.Boat
	p.Weather = snap.Weather
	p.Comments = snap.Comments
	p.Rows = rows

	if p.Date == "" {
		p.Date = p.CreationDate()
	}
	return p
}

// RestoreTo writes the Page back out to the snapshot. Cells beyond the
// stored values are cleared so nothing from a previously shown Page remains
// visible.
func (p *Page) RestoreTo(snap *Snapshot) {
	snap.CurrentUID = p.UID
	snap.Site = p.Site
	snap.Date = p.Date
	snap.Manager = p.Manager
	snap.Boat = p.Boat
	snap.Weather = p.Weather
	snap.Comments = p.Comments

	for i := range snap.Rows {
		for c := range snap.Rows[i] {
			cell := &snap.Rows[i][c]
			cell.Text = ""
			cell.Checked = false
			if i >= len(p.Rows) || c >= len(p.Rows[i]) {
				continue
			}
			switch v := p.Rows[i][c].(type) {
			case bool:
				cell.Checked = v
			case string:
				cell.Text = v
			default:
				cell.Text = fmt.Sprint(v)
			}
		}
	}
}

// WorthUploading reports whether the Page holds at least one retained row.
func (p *Page) WorthUploading() bool {
	return len(p.Rows) > 0
}

// PrepareUpload flattens the Page into upload records, one per row:
// [date, site, ...row values, manager, boat, weather, comments].
func (p *Page) PrepareUpload() []Row {
	records := make([]Row, 0, len(p.Rows))
	for _, row := range p.Rows {
		record := make(Row, 0, len(row)+6)
		record = append(record, p.Date, p.Site)
		record = append(record, row...)
		record = append(record, p.Manager, p.Boat, p.Weather, p.Comments)
		records = append(records, record)
	}
	return records
}

// Describe returns the human-readable list label "<site or '?'>:<date>".
func (p *Page) Describe() string {
	site := p.Site
	if site == "" {
		site = "?"
	}
	return site + ":" + p.Date
}

// DiveMinutes returns the elapsed minutes between two "HH:MM" times of day,
// wrapping across midnight when the end is earlier than the start.
func DiveMinutes(timeIn, timeOut string) (int, bool) {
	start, err := time.Parse(clockLayout, timeIn)
	if err != nil {
		return 0, false
	}
	end, err := time.Parse(clockLayout, timeOut)
	if err != nil {
		return 0, false
	}
	diff := int(end.Sub(start).Minutes())
	if diff < 0 {
		diff += minutesPerDay
	}
	return diff, true
}

// computeDiveTime fills row i's dive-time cell when both time cells hold a
// value and the schema names all three columns.
func computeDiveTime(snap *Snapshot, i int) {
	s := snap.Schema
	cells := snap.Rows[i]
	if s.TimeIn < 0 || s.TimeOut < 0 || s.DiveTime < 0 {
		return
	}
	if s.TimeIn >= len(cells) || s.TimeOut >= len(cells) || s.DiveTime >= len(cells) {
		return
	}
	timeIn := cells[s.TimeIn].Text
	timeOut := cells[s.TimeOut].Text
	if timeIn == "" || timeOut == "" {
		return
	}
	if mins, ok := DiveMinutes(timeIn, timeOut); ok {
		cells[s.DiveTime].Text = strconv.Itoa(mins)
	}
}
