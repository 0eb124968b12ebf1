// Package sheet stores the corpus in an xlsx workbook, one item per row
// under a header row.
package sheet

import (
	"context"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/abhisek/lingodrill/internal/corpus"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

// defaultSheet is the sheet excelize creates in a new workbook.
const defaultSheet = "Sheet1"

// Workbook is a corpus.Storage backed by an xlsx file.
type Workbook struct {
	path  string
	sheet string
	log   *zap.Logger

	mu     sync.Mutex
	layout layout
}

var _ corpus.Storage = (*Workbook)(nil)

// Options configures a Workbook.
type Options struct {
	// Sheet is the sheet holding the corpus. Empty means the first sheet.
	Sheet string
	Log   *zap.Logger
}

// Open returns a Workbook for path. The file does not have to exist yet.
func Open(path string, opts Options) *Workbook {
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	return &Workbook{
		path:   path,
		sheet:  opts.Sheet,
		log:    opts.Log,
		layout: defaultLayout(),
	}
}

// Path returns the workbook file path.
func (w *Workbook) Path() string { return w.path }

// Load reads every data row. A missing file is an empty corpus.
func (w *Workbook) Load(ctx context.Context) ([]corpus.Record, error) {
	f, err := excelize.OpenFile(w.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	w.mu.Lock()
	defer w.mu.Unlock()

	if w.sheet == "" {
		w.sheet = f.GetSheetName(0)
	}
	rows, err := f.GetRows(w.sheet)
	if err != nil {
		return nil, fmt.Errorf("read sheet %q: %w", w.sheet, err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	w.layout = parseHeader(rows[0])
	if w.layout.index[fieldTarget] < 0 {
		return nil, fmt.Errorf("sheet %q has no target text column", w.sheet)
	}

	out := make([]corpus.Record, 0, len(rows)-1)
	for i, row := range rows[1:] {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out = append(out, w.parseRow(row, i+2))
	}
	return out, nil
}

func (w *Workbook) parseRow(row []string, rowNum int) corpus.Record {
	l := w.layout
	rec := corpus.Record{
		TargetText:    l.cell(row, fieldTarget),
		TTSText:       l.cell(row, fieldTTS),
		Pronunciation: l.cell(row, fieldPronunciation),
		Meaning:       l.cell(row, fieldMeaning),
		Category:      l.cell(row, fieldCategory),
	}

	if v := l.cell(row, fieldMastery); v != "" {
		if m, ok := parseMastery(v); ok {
			rec.Mastery = &m
		} else {
			w.log.Warn("unparseable mastery, using 0", zap.Int("row", rowNum), zap.String("value", v))
		}
	}
	if v := l.cell(row, fieldNextDue); v != "" {
		if d, err := parseDue(v); err == nil {
			rec.NextDue = &d
		} else {
			w.log.Warn("unparseable next due date, using today", zap.Int("row", rowNum), zap.String("value", v))
		}
	}
	return rec
}

// parseMastery accepts integers and whole-valued decimals such as "3.0",
// which spreadsheets produce for numeric cells.
func parseMastery(v string) (int, bool) {
	if n, err := strconv.Atoi(v); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, false
	}
	return int(f), true
}

// parseDue accepts the persisted date layout, timestamps and date cells
// that excelize renders as serial numbers.
func parseDue(v string) (time.Time, error) {
	if d, err := corpus.ParseDate(v); err == nil {
		return d, nil
	}
	if serial, err := strconv.ParseFloat(v, 64); err == nil && serial > 0 {
		t, err := excelize.ExcelDateToTime(serial, false)
		if err != nil {
			return time.Time{}, err
		}
		return corpus.Day(t), nil
	}
	return time.Time{}, fmt.Errorf("parse date %q", v)
}

// Save writes all records to a temporary file next to the workbook and
// renames it into place, so readers never see a half-written file.
func (w *Workbook) Save(ctx context.Context, records []corpus.Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	sheet := w.sheet
	if sheet == "" {
		sheet = defaultSheet
	}

	f := excelize.NewFile()
	defer f.Close()
	if sheet != defaultSheet {
		idx, err := f.NewSheet(sheet)
		if err != nil {
			return fmt.Errorf("create sheet %q: %w", sheet, err)
		}
		f.SetActiveSheet(idx)
		f.DeleteSheet(defaultSheet)
	}

	header := make([]any, numFields)
	for i, h := range w.layout.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return err
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := recordRow(rec)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}
	if err := f.SetColWidth(sheet, "A", "D", 24); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}

	return w.writeAtomic(f)
}

func recordRow(rec corpus.Record) []any {
	mastery := 0
	if rec.Mastery != nil {
		mastery = *rec.Mastery
	}
	due := ""
	if rec.NextDue != nil {
		due = corpus.FormatDate(*rec.NextDue)
	}
	return []any{
		rec.TargetText, rec.TTSText, rec.Pronunciation, rec.Meaning,
		rec.Category, mastery, due,
	}
}

func (w *Workbook) writeAtomic(f *excelize.File) error {
	dir := filepath.Dir(w.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".lingodrill-*.xlsx")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := f.Write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("write workbook: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("sync workbook: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close workbook: %w", err)
	}
	if err := os.Rename(tmpName, w.path); err != nil {
		return fmt.Errorf("replace workbook: %w", err)
	}
	return nil
}
