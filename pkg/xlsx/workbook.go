package xlsx

import (
	"bytes"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is one data row of the first sheet: the Excel row number (1-based,
// header included in the count, so data starts at 2) plus the cells keyed by
// header name.
type Row struct {
	Number int
	Fields map[string]string
}

// Get returns the trimmed cell value for a header, or "" when absent.
func (r Row) Get(key string) string {
	return strings.TrimSpace(r.Fields[key])
}

// ParseWorkbook reads the first sheet of an xlsx document. Row 1 is the
// header; rows with no non-blank cell are skipped.
func ParseWorkbook(reader io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, excelize.ErrSheetNotExist{SheetName: ""}
	}

	raw, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, err
	}
	if len(raw) < 1 {
		return []Row{}, nil
	}

	headers := make([]string, len(raw[0]))
	for i, h := range raw[0] {
		headers[i] = strings.TrimSpace(h)
	}

	rows := make([]Row, 0, len(raw)-1)
	for i := 1; i < len(raw); i++ {
		fields := make(map[string]string, len(headers))
		blank := true
		for c, header := range headers {
			if header == "" {
				continue
			}
			var val string
			if c < len(raw[i]) {
				val = strings.TrimSpace(raw[i][c])
			}
			if val != "" {
				blank = false
			}
			fields[header] = val
		}
		if blank {
			continue
		}
		rows = append(rows, Row{Number: i + 1, Fields: fields})
	}
	return rows, nil
}

// Sheet is an in-memory sheet for BuildWorkbook.
type Sheet struct {
	Name    string
	Headers []string
	Rows    [][]interface{}
}

// BuildWorkbook renders the sheets into xlsx bytes with a bold header row.
func BuildWorkbook(sheets ...Sheet) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		name := sheet.Name
		if i == 0 {
			f.SetSheetName("Sheet1", name)
		} else {
			if _, err := f.NewSheet(name); err != nil {
				return nil, err
			}
		}

		headers := sheet.Headers
		if err := f.SetSheetRow(name, "A1", &headers); err != nil {
			return nil, err
		}
		style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
		if err != nil {
			return nil, err
		}
		lastCol, _ := excelize.CoordinatesToCellName(len(headers), 1)
		if err := f.SetCellStyle(name, "A1", lastCol, style); err != nil {
			return nil, err
		}

		for r, row := range sheet.Rows {
			cell, _ := excelize.CoordinatesToCellName(1, r+2)
			rowCopy := row
			if err := f.SetSheetRow(name, cell, &rowCopy); err != nil {
				return nil, err
			}
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
