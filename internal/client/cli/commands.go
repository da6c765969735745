package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cdot/divelog/internal/client/cloudstore"
	"github.com/cdot/divelog/internal/keycodec"
)

// List prints the page catalogue, newest first, and whether an upload would
// do anything.
func (a *App) List(ctx context.Context) error {
	view := a.service.RefreshList()
	current := a.snap.CurrentUID
	for _, item := range view.Items {
		marker := " "
		if item.UID == current {
			marker = "*"
		}
		fmt.Fprintf(a.out, "%s %d  %s\n", marker, item.UID, item.Label)
	}
	if !view.UploadEnabled {
		fmt.Fprintln(a.out, "(nothing worth uploading)")
	}
	return nil
}

// NewPage starts a fresh blank page and makes it current.
func (a *App) NewPage(ctx context.Context) error {
	p, err := a.service.CreatePage(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Started page %d\n", p.UID)
	return nil
}

// Select makes the page with the given UID current.
func (a *App) Select(ctx context.Context, arg string) error {
	uid, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		return fmt.Errorf("bad page uid %q", arg)
	}
	return a.service.SetCurrent(ctx, uid)
}

// Edit prompts for each metadata field of the current page; an empty reply
// keeps the shown value. The page is captured and persisted afterwards.
func (a *App) Edit(ctx context.Context) error {
	fields := []struct {
		name  string
		value *string
	}{
		{"Site", &a.snap.Site},
		{"Date (YYYY-MM-DD)", &a.snap.Date},
		{"Dive manager", &a.snap.Manager},
		{"Boat", &a.snap.Boat},
		{"Weather", &a.snap.Weather},
		{"Comments", &a.snap.Comments},
	}
	for _, f := range fields {
		v, err := GetDefaultedText(a.reader, f.name, *f.value, a.out)
		if err != nil {
			return err
		}
		*f.value = v
	}
	return a.service.CaptureCurrent(ctx)
}

// AddRow fills the first free form row, prompting per column. Checkbox
// columns accept y/n. The page is captured and persisted afterwards; a row
// without a diver name is dropped by capture.
func (a *App) AddRow(ctx context.Context) error {
	row := -1
	for i := range a.snap.Rows {
		if a.snap.Rows[i][0].Text == "" {
			row = i
			break
		}
	}
	if row < 0 {
		return fmt.Errorf("page is full (%d rows)", len(a.snap.Rows))
	}

	for c, col := range columns {
		cell := &a.snap.Rows[row][c]
		prompt := col.head
		if col.title != "" {
			prompt += " (" + col.title + ")"
		}
		v, err := GetSimpleText(a.reader, prompt, a.out)
		if err != nil {
			return err
		}
		if cell.Checkbox {
			cell.Checked = strings.HasPrefix(strings.ToLower(v), "y")
		} else {
			cell.Text = v
		}
	}
	return a.service.CaptureCurrent(ctx)
}

// Show prints the current page in full.
func (a *App) Show(ctx context.Context) error {
	p := a.service.Current()
	if p == nil {
		return fmt.Errorf("no current page")
	}
	fmt.Fprintf(a.out, "Page %d  %s\n", p.UID, p.Describe())
	fmt.Fprintf(a.out, "  Manager: %s  Boat: %s  Weather: %s\n", p.Manager, p.Boat, p.Weather)
	if p.Comments != "" {
		fmt.Fprintf(a.out, "  Comments: %s\n", p.Comments)
	}
	heads := make([]string, len(columns))
	for i, c := range columns {
		heads[i] = c.head
	}
	fmt.Fprintln(a.out, "  "+strings.Join(heads, " | "))
	for _, row := range p.Rows {
		cells := make([]string, len(row))
		for i, v := range row {
			cells[i] = fmt.Sprint(v)
		}
		fmt.Fprintln(a.out, "  "+strings.Join(cells, " | "))
	}
	return nil
}

// Upload sends every upload-worthy page to the configured backend and, on
// success, retires the uploaded pages.
func (a *App) Upload(ctx context.Context) error {
	backend, err := a.newStore(a.storeKey)
	if err != nil {
		return err
	}
	if err := a.service.Upload(ctx, backend); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Uploads complete, thank you")
	return a.List(ctx)
}

// SetKey stores a raw pipe-delimited backend credential.
func (a *App) SetKey(ctx context.Context, raw string) error {
	if err := cloudstore.SaveKey(ctx, a.repos.KV, raw); err != nil {
		return err
	}
	a.storeKey = cloudstore.ParseKey(raw)
	fmt.Fprintf(a.out, "Backend is now %q\n", a.storeKey.Field(0))
	return nil
}

// ImportKey loads an obfuscated id bundle written by keytool, decodes it
// with a passphrase supplied out-of-band, and stores the assembled backend
// credential.
func (a *App) ImportKey(ctx context.Context, file string) error {
	data, err := os.ReadFile(file)
	if err != nil {
		return err
	}
	var tokens map[string]string
	if err := json.Unmarshal(data, &tokens); err != nil {
		return fmt.Errorf("bad bundle file: %w", err)
	}

	passphrase, err := GetPassphrase(a.out, "Bundle passphrase")
	if err != nil {
		return err
	}

	ids, err := keycodec.DecodeBundle(tokens, passphrase)
	if err != nil {
		return err
	}

	// Bundle names map to credential fields in positional order.
	parts := []string{ids["backend"], ids["auth"], ids["destination"]}
	for len(parts) > 1 && parts[len(parts)-1] == "" {
		parts = parts[:len(parts)-1]
	}
	return a.SetKey(ctx, strings.Join(parts, "|"))
}
