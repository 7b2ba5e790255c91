/*
Package matrix persists daily ranked lists into a month-per-sheet workbook
and reads back the previous day's ranks for delta computation. Each month
sheet is a day-by-rank grid: column A labels the 100 rank slots, one column
per calendar day, rewritten in place on re-runs.
*/
package matrix

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"brandrank/internal/brand"
)

const (
	titleRow     = 1
	dayRow       = 2
	weekdayRow   = 3
	noteRow      = 4
	firstRankRow = 5

	labelColWidth = 8
	dayColWidth   = 18

	sheetTitle   = "브랜드 순위 (올리브영 앱 기준)"
	defaultSheet = "Sheet1"
)

var weekdayLabels = [7]string{"일", "월", "화", "수", "목", "금", "토"}

// Store owns the workbook file. It is the only writer of day columns.
type Store struct {
	path string
}

func NewStore(path string) *Store {
	return &Store{path: path}
}

// SheetName returns the month sheet name for t, e.g. "26년 8월".
func SheetName(t time.Time) string {
	return fmt.Sprintf("%s년 %d월", t.Format("06"), int(t.Month()))
}

// Commit writes list into today's column, creating the workbook and the
// month sheet as needed, and returns yesterday's name-to-rank map read
// before the write. Workbook I/O errors propagate: a broken snapshot must
// not look like success.
func (s *Store) Commit(list []string, today time.Time) (map[string]int, error) {
	f, created, err := s.open()
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheet := SheetName(today)
	if !hasSheet(f, sheet) {
		if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("create month sheet %q: %w", sheet, err)
		}
		if err := layoutSheet(f, sheet, today); err != nil {
			return nil, fmt.Errorf("lay out month sheet %q: %w", sheet, err)
		}
		if created {
			_ = f.DeleteSheet(defaultSheet)
		}
	}

	yesterdayRanks, err := readRankColumn(f, today.AddDate(0, 0, -1))
	if err != nil {
		return nil, err
	}

	col := 1 + today.Day()
	for i := 0; i < brand.MaxRank; i++ {
		cell, err := excelize.CoordinatesToCellName(col, firstRankRow+i)
		if err != nil {
			return nil, fmt.Errorf("today cell: %w", err)
		}
		value := ""
		if i < len(list) {
			value = list[i]
		}
		if err := f.SetCellValue(sheet, cell, value); err != nil {
			return nil, fmt.Errorf("write rank %d: %w", i+1, err)
		}
	}

	if err := s.save(f, created); err != nil {
		return nil, err
	}
	return yesterdayRanks, nil
}

// readRankColumn reads the rank column for day from its month sheet. A
// missing sheet means no snapshot exists for that day: empty map, no error.
func readRankColumn(f *excelize.File, day time.Time) (map[string]int, error) {
	ranks := make(map[string]int)
	sheet := SheetName(day)
	if !hasSheet(f, sheet) {
		return ranks, nil
	}
	col := 1 + day.Day()
	for i := 0; i < brand.MaxRank; i++ {
		cell, err := excelize.CoordinatesToCellName(col, firstRankRow+i)
		if err != nil {
			return nil, fmt.Errorf("previous-day cell: %w", err)
		}
		value, err := f.GetCellValue(sheet, cell)
		if err != nil {
			return nil, fmt.Errorf("read previous-day rank %d: %w", i+1, err)
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if _, dup := ranks[value]; !dup {
			ranks[value] = i + 1
		}
	}
	return ranks, nil
}

func layoutSheet(f *excelize.File, sheet string, t time.Time) error {
	set := func(col, row int, value any) error {
		cell, err := excelize.CoordinatesToCellName(col, row)
		if err != nil {
			return err
		}
		return f.SetCellValue(sheet, cell, value)
	}

	lastDay := daysInMonth(t)

	if err := set(1, titleRow, sheetTitle); err != nil {
		return err
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Size: 12}}); err == nil {
		_ = f.SetCellStyle(sheet, "A1", "A1", style)
	}
	endCell, err := excelize.CoordinatesToCellName(1+lastDay, titleRow)
	if err != nil {
		return err
	}
	if err := f.MergeCell(sheet, "A1", endCell); err != nil {
		return err
	}

	if err := set(1, dayRow, "일자"); err != nil {
		return err
	}
	if err := set(1, weekdayRow, "요일"); err != nil {
		return err
	}
	if err := set(1, noteRow, "비고"); err != nil {
		return err
	}
	for d := 1; d <= lastDay; d++ {
		if err := set(1+d, dayRow, fmt.Sprintf("%d일", d)); err != nil {
			return err
		}
		wd := time.Date(t.Year(), t.Month(), d, 0, 0, 0, 0, t.Location()).Weekday()
		if err := set(1+d, weekdayRow, weekdayLabels[wd]); err != nil {
			return err
		}
	}
	for r := 1; r <= brand.MaxRank; r++ {
		if err := set(1, noteRow+r, r); err != nil {
			return err
		}
	}

	if err := f.SetColWidth(sheet, "A", "A", labelColWidth); err != nil {
		return err
	}
	lastColName, err := excelize.ColumnNumberToName(1 + lastDay)
	if err != nil {
		return err
	}
	return f.SetColWidth(sheet, "B", lastColName, dayColWidth)
}

func (s *Store) open() (*excelize.File, bool, error) {
	if _, err := os.Stat(s.path); err != nil {
		if os.IsNotExist(err) {
			return excelize.NewFile(), true, nil
		}
		return nil, false, fmt.Errorf("stat workbook: %w", err)
	}
	f, err := excelize.OpenFile(s.path)
	if err != nil {
		return nil, false, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	return f, false, nil
}

func (s *Store) save(f *excelize.File, created bool) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if created {
		if err := f.SaveAs(s.path); err != nil {
			return fmt.Errorf("save workbook %s: %w", s.path, err)
		}
		return nil
	}
	if err := f.Save(); err != nil {
		return fmt.Errorf("save workbook %s: %w", s.path, err)
	}
	return nil
}

func hasSheet(f *excelize.File, name string) bool {
	for _, s := range f.GetSheetList() {
		if s == name {
			return true
		}
	}
	return false
}

func daysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, t.Location()).Day()
}
