package spreadsheet

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"sagra/internal/domain/entity"
	"sagra/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/xuri/excelize/v2"
)

const (
	extXLSX = ".xlsx"
	extXLS  = ".xls"
)

var ErrProtocolNotFound = errors.New("protocol not found")

// ProtocolLoader reads injury protocol spreadsheets from a directory. The file base
// name is the protocol name; the first sheet holds a header row followed by
// (day offset, value) rows.
type ProtocolLoader struct {
	dir string
	log *logrus.Logger
}

func NewProtocolLoader(dir string, log *logrus.Logger) *ProtocolLoader {
	return &ProtocolLoader{dir: dir, log: log}
}

// Load reads every spreadsheet in the directory, creating the directory when it is
// missing. Files that cannot be used are reported as issues and skipped.
func (l *ProtocolLoader) Load() (map[string]entity.Protocol, []entity.ProtocolIssue, error) {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("create protocols directory: %w", err)
	}

	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read protocols directory: %w", err)
	}

	protocols := make(map[string]entity.Protocol)
	var issues []entity.ProtocolIssue

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != extXLSX && ext != extXLS {
			continue
		}

		path := filepath.Join(l.dir, entry.Name())
		protocol, err := readProtocol(path)
		if err != nil {
			l.log.Warnf("Skipping protocol file %s: %v", entry.Name(), err)
			issues = append(issues, entity.ProtocolIssue{File: entry.Name(), Reason: err.Error()})
			continue
		}
		protocols[protocol.Name] = protocol
	}

	sort.Slice(issues, func(i, j int) bool { return issues[i].File < issues[j].File })
	return protocols, issues, nil
}

// Path resolves the spreadsheet file of a protocol by name.
func (l *ProtocolLoader) Path(name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return "", ErrProtocolNotFound
	}
	for _, ext := range []string{extXLSX, extXLS} {
		path := filepath.Join(l.dir, name+ext)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path, nil
		}
	}
	return "", ErrProtocolNotFound
}

func readProtocol(path string) (entity.Protocol, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

	if strings.EqualFold(filepath.Ext(path), extXLS) {
		return entity.Protocol{}, errors.New("legacy .xls workbooks are not supported, save the file as .xlsx")
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return entity.Protocol{}, fmt.Errorf("open workbook: %w", err)
	}
	defer f.Close()

	sheetName := f.GetSheetName(0)
	if sheetName == "" {
		return entity.Protocol{}, errors.New("workbook has no sheets")
	}

	rows, err := f.GetRows(sheetName)
	if err != nil {
		return entity.Protocol{}, fmt.Errorf("read sheet %s: %w", sheetName, err)
	}
	if len(rows) < 2 {
		return entity.Protocol{}, errors.New("sheet is empty")
	}

	columns := rows[0]
	if len(columns) < 2 {
		return entity.Protocol{}, fmt.Errorf("sheet has %d columns, need at least 2", len(columns))
	}

	raw := make([]entity.RawRow, 0, len(rows)-1)
	var dayNumeric, valueNumeric bool
	for _, row := range rows[1:] {
		r := entity.RawRow{Day: cellAt(row, 0), Value: cellAt(row, 1)}
		dayNumeric = dayNumeric || service.IsNumeric(r.Day)
		valueNumeric = valueNumeric || service.IsNumeric(r.Value)
		raw = append(raw, r)
	}
	if !dayNumeric {
		return entity.Protocol{}, fmt.Errorf("column %q has no numeric day offsets", columns[0])
	}
	if !valueNumeric {
		return entity.Protocol{}, fmt.Errorf("column %q has no numeric values", columns[1])
	}

	return entity.Protocol{
		Name:    name,
		Path:    path,
		Columns: columns,
		Rows:    raw,
	}, nil
}

// cellAt returns nil for cells excelize trimmed from the end of a row
func cellAt(row []string, i int) any {
	if i >= len(row) {
		return nil
	}
	return row[i]
}
