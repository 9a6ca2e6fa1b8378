package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/example/checkin/internal/ports/secondary"
)

// CSVEncoder writes a table dump as CSV with a header row.
type CSVEncoder struct {
	charset encoding.Encoding // nil means UTF-8
}

// NewCSVEncoder returns an encoder for charset: "" or "utf-8", or
// "windows-1252" for spreadsheet tools that expect a legacy code page.
func NewCSVEncoder(charset string) (*CSVEncoder, error) {
	switch strings.ToLower(charset) {
	case "", "utf-8", "utf8":
		return &CSVEncoder{}, nil
	case "windows-1252", "cp1252":
		return &CSVEncoder{charset: charmap.Windows1252}, nil
	default:
		return nil, fmt.Errorf("unsupported charset %q", charset)
	}
}

// EncodeTable writes dump to w.
func (e *CSVEncoder) EncodeTable(w io.Writer, dump *secondary.TableDump) error {
	if e.charset == nil {
		return writeCSV(w, dump)
	}

	tw := transform.NewWriter(w, encoding.ReplaceUnsupported(e.charset.NewEncoder()))
	if err := writeCSV(tw, dump); err != nil {
		tw.Close()
		return err
	}
	if err := tw.Close(); err != nil {
		return fmt.Errorf("failed to flush %s csv: %w", dump.Table, err)
	}
	return nil
}

func writeCSV(w io.Writer, dump *secondary.TableDump) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(dump.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(dump.Rows); err != nil {
		return err
	}
	return cw.Error()
}

// XLSXEncoder writes a table dump as a single-sheet workbook.
type XLSXEncoder struct{}

// EncodeTable writes dump to w.
func (XLSXEncoder) EncodeTable(w io.Writer, dump *secondary.TableDump) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := string(dump.Table)
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	for i, name := range dump.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, name); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
	}

	for r, row := range dump.Rows {
		cell, err := excelize.CoordinatesToCellName(1, r+2)
		if err != nil {
			return err
		}
		values := make([]any, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", r+1, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}
